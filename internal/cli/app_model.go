package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/plantmap/internal/app"
	"github.com/alexanderramin/plantmap/internal/cli/formatter"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/notify"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	keyQuit       = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	keyToggleRole = key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "switch role"))
)

// projectsLoadedMsg carries the project list for the footer panel.
type projectsLoadedMsg struct {
	projects []*domain.Project
	err      error
}

// appModel is the root bubbletea Model for the TUI. It manages the view
// stack, the status line and the footer with notifications and active
// projects.
type appModel struct {
	state     *SharedState
	viewStack []View
	help      help.Model
	quitting  bool
	projects  []*domain.Project

	flash    string
	flashErr bool
}

func newAppModel(a *App) appModel {
	state := &SharedState{
		App:  a,
		Ctrl: a.NewController(a.Role),
	}
	return appModel{
		state:     state,
		viewStack: []View{newOverviewView(state)},
		help:      help.New(),
	}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

func (m *appModel) forward(msg tea.Msg) tea.Cmd {
	v := m.activeView()
	if v == nil {
		return nil
	}
	updated, cmd := v.Update(msg)
	m.setActiveView(updated.(View))
	return cmd
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadProjects()}
	if v := m.activeView(); v != nil {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m appModel) loadProjects() tea.Cmd {
	board := m.state.Ctrl.Board()
	return func() tea.Msg {
		projects, err := board.Projects(context.Background())
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.help.Width = msg.Width
		return m, m.forward(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		msg.Y -= headerLines
		if msg.Y < 0 {
			return m, nil
		}
		return m, m.forward(msg)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, refresh

	case projectsLoadedMsg:
		if msg.err != nil {
			m.flash, m.flashErr = msg.err.Error(), true
			return m, nil
		}
		m.projects = msg.projects
		return m, nil

	case flashMsg:
		m.flash = msg.text
		m.flashErr = msg.err
		return m, nil

	case wizardCompleteMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, tea.Batch(msg.nextCmd, refresh)

	case refreshViewMsg:
		// Every view reloads so views under a form see its writes.
		cmds := []tea.Cmd{m.loadProjects()}
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, m.forward(msg)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		return m, m.forward(msg)
	}

	m.flash = ""
	switch {
	case key.Matches(msg, keyQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keyToggleRole):
		if _, err := m.state.Dispatch(app.ToggleRole{}); err != nil {
			m.flash, m.flashErr = err.Error(), true
			return m, nil
		}
		m.flash, m.flashErr = "Switched to "+string(m.state.Session().Role), false
		return m, refresh
	}

	return m, m.forward(msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderFlash(), m.renderFooter(), m.renderHelp())

	result := strings.Join(sections, "\n")

	// Pad to terminal height so the alt-screen renderer clears stale lines.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("plantmap")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	line := title + breadcrumb + "  " + formatter.RoleBadge(m.state.Session().Role)
	width := max(m.state.Width, 40)
	return line + "\n" + formatter.Dim(strings.Repeat("─", width))
}

func (m *appModel) renderFlash() string {
	switch {
	case m.flash == "":
		return ""
	case m.flashErr:
		return formatter.StyleRed.Render("✖ " + m.flash)
	default:
		return formatter.StyleGreen.Render("✔ " + m.flash)
	}
}

// renderFooter places the notification feed and the active projects panel
// side by side.
func (m *appModel) renderFooter() string {
	left := m.renderNotifications()
	right := formatter.FormatActiveProjects(m.projects, m.state.App.now())
	width := max(m.state.Width, 80)
	leftWidth := width * 3 / 5
	// Clip before padding so a long notification never wraps.
	clipped := lipgloss.NewStyle().MaxWidth(leftWidth - 1).Render(left)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(leftWidth).Render(clipped),
		lipgloss.NewStyle().MaxWidth(width-leftWidth).Render(right),
	)
}

func (m *appModel) renderNotifications() string {
	feed := m.state.App.Feed
	if feed == nil || feed.Len() == 0 {
		return formatter.Dim("No notifications.")
	}
	out := formatter.FormatNotifications(feed.Items(), m.state.App.now())
	return strings.TrimSuffix(out, "\n") + strings.Repeat("\n", notify.Capacity-feed.Len())
}

func (m *appModel) renderHelp() string {
	var bindings []key.Binding
	if v := m.activeView(); v != nil {
		bindings = append(bindings, v.ShortHelp()...)
	}
	bindings = append(bindings, keyToggleRole, keyQuit)
	return m.help.ShortHelpView(bindings)
}
