package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack.
type popViewMsg struct{}

// flashMsg sets the one-line status shown under the active view.
type flashMsg struct {
	text string
	err  bool
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel pops the wizard view, then runs nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// refreshViewMsg asks every view on the stack to reload its data.
type refreshViewMsg struct{}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func flash(text string) tea.Cmd {
	return func() tea.Msg { return flashMsg{text: text} }
}

func flashError(err error) tea.Cmd {
	return func() tea.Msg { return flashMsg{text: err.Error(), err: true} }
}

func refresh() tea.Msg { return refreshViewMsg{} }
