package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/plantmap/internal/app"
	"github.com/alexanderramin/plantmap/internal/cli/formatter"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/zone"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	keyEditZone   = key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit"))
	keyDeleteZone = key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete"))
)

type manageableLoadedMsg struct {
	rows []zone.ManagedZone
	err  error
}

// manageZonesView lists built-in and added zones for editing and deletion.
type manageZonesView struct {
	state   *SharedState
	rows    []zone.ManagedZone
	cursor  int
	loading bool
	err     error
}

func newManageZonesView(state *SharedState) *manageZonesView {
	return &manageZonesView{state: state, loading: true}
}

func (v *manageZonesView) ID() ViewID { return ViewManageZones }
func (v *manageZonesView) Title() string { return "Manage zones" }

func (v *manageZonesView) ShortHelp() []key.Binding {
	return []key.Binding{keyEditZone, keyDeleteZone, keyBack}
}

func (v *manageZonesView) Init() tea.Cmd {
	return v.load()
}

func (v *manageZonesView) load() tea.Cmd {
	zones := v.state.Ctrl.Zones()
	return func() tea.Msg {
		rows, err := zones.Manageable(context.Background())
		return manageableLoadedMsg{rows: rows, err: err}
	}
}

func (v *manageZonesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case manageableLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.rows = msg.rows
			v.cursor = min(v.cursor, max(len(v.rows)-1, 0))
		}
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *manageZonesView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keyUp):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, keyDown):
		if v.cursor < len(v.rows)-1 {
			v.cursor++
		}
	case key.Matches(msg, keyEditZone):
		row, ok := v.selected()
		if !ok {
			return nil
		}
		if v.state.Session().ZoneFormOpen() {
			return pushView(newZoneFormView(v.state))
		}
		if _, err := v.state.Dispatch(app.EditZone{Row: row}); err != nil {
			return forbiddenOr(err)
		}
		return pushView(newZoneFormView(v.state))
	case key.Matches(msg, keyDeleteZone):
		row, ok := v.selected()
		if !ok {
			return nil
		}
		if v.state.Session().Role != domain.RoleAdmin {
			return forbiddenOr(app.ErrForbidden)
		}
		return pushView(newDeleteZoneView(v.state, row))
	case key.Matches(msg, keyBack):
		return popView()
	}
	return nil
}

func (v *manageZonesView) selected() (zone.ManagedZone, bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return zone.ManagedZone{}, false
	}
	return v.rows[v.cursor], true
}

func forbiddenOr(err error) tea.Cmd {
	if errors.Is(err, app.ErrForbidden) {
		return flashError(errors.New("only admins can change zones; press R to switch role"))
	}
	return flashError(err)
}

func (v *manageZonesView) View() string {
	if v.loading {
		return formatter.Dim("Loading zones...")
	}
	if v.err != nil {
		return formatter.StyleRed.Render(v.err.Error())
	}
	if len(v.rows) == 0 {
		return formatter.Dim("No zones defined.")
	}

	var b strings.Builder
	for i, row := range v.rows {
		pointer := "  "
		name := row.Name
		if i == v.cursor {
			pointer = formatter.StyleHeader.Render("▸ ")
			name = formatter.Bold(name)
		}
		b.WriteString(pointer + name + "  " + formatter.ZoneOrigin(row))
		if row.CanNavigate() {
			b.WriteString("  " + formatter.StyleGreen.Render("→ "+row.NavigationTarget))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
