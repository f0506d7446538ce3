package cli

import (
	"github.com/alexanderramin/plantmap/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// plantmapHuhTheme matches huh forms to the formatter palette.
func plantmapHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardView wraps a huh.Form as a View on the navigation stack. On
// completion it runs done; on Esc it runs cancel. Both results are handed
// to the appModel in a wizardCompleteMsg, which pops the wizard.
type wizardView struct {
	state    *SharedState
	form     *huh.Form
	titleStr string
	done     func() tea.Cmd
	cancel   func() tea.Cmd
	finished bool
}

func newWizardView(state *SharedState, title string, form *huh.Form, done, cancel func() tea.Cmd) *wizardView {
	return &wizardView{
		state:    state,
		form:     form.WithTheme(plantmapHuhTheme()).WithShowHelp(false),
		titleStr: title,
		done:     done,
		cancel:   cancel,
	}
}

func (v *wizardView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *wizardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v.finished {
		return v, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, v.finish(v.cancel)
	}
	if _, ok := msg.(refreshViewMsg); ok {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateCompleted:
		return v, tea.Batch(cmd, v.finish(v.done))
	case huh.StateAborted:
		return v, v.finish(v.cancel)
	}
	return v, cmd
}

// finish runs the callback now, so its writes land before the views
// underneath refresh.
func (v *wizardView) finish(fn func() tea.Cmd) tea.Cmd {
	v.finished = true
	var next tea.Cmd
	if fn != nil {
		next = fn()
	}
	return func() tea.Msg { return wizardCompleteMsg{nextCmd: next} }
}

func (v *wizardView) View() string {
	return formatter.RenderBox(v.titleStr, v.form.View())
}

func (v *wizardView) ID() ViewID { return ViewForm }
func (v *wizardView) Title() string { return v.titleStr }
func (v *wizardView) CapturesInput() bool { return true }
func (v *wizardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}
