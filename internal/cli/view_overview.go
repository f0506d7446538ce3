package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/plantmap/internal/app"
	"github.com/alexanderramin/plantmap/internal/cli/formatter"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/drafter"
	"github.com/alexanderramin/plantmap/internal/zone"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	keyNewZone    = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new zone"))
	keyManage     = key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "manage zones"))
	keyNextZone   = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next zone"))
	keyOpen       = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open"))
	keyReopenForm = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "zone form"))
	keyCancel     = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
)

// zonesLoadedMsg carries the effective zone set.
type zonesLoadedMsg struct {
	zones map[string]domain.Zone
	err   error
}

// overviewView draws the plant map. Admins drag on it to draft zones;
// clicking a navigable zone opens its grid.
type overviewView struct {
	state   *SharedState
	zones   map[string]domain.Zone
	focus   int
	loading bool
	err     error
}

func newOverviewView(state *SharedState) *overviewView {
	return &overviewView{state: state, loading: true}
}

func (v *overviewView) ID() ViewID { return ViewOverview }
func (v *overviewView) Title() string { return "Overview" }

func (v *overviewView) ShortHelp() []key.Binding {
	st := v.state.Session()
	switch {
	case st.Drafter.Pending():
		return []key.Binding{keyReopenForm, keyCancel}
	case st.Drafter.Armed:
		return []key.Binding{keyCancel}
	}
	bindings := []key.Binding{keyNextZone, keyOpen}
	if st.Role == domain.RoleAdmin {
		bindings = append(bindings, keyNewZone, keyManage)
	}
	return bindings
}

func (v *overviewView) Init() tea.Cmd {
	return loadZones(v.state)
}

func loadZones(state *SharedState) tea.Cmd {
	zones := state.Ctrl.Zones()
	return func() tea.Msg {
		z, err := zones.Effective(context.Background())
		return zonesLoadedMsg{zones: z, err: err}
	}
}

func (v *overviewView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case zonesLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.zones = msg.zones
		}
		return v, nil

	case refreshViewMsg:
		return v, loadZones(v.state)

	case tea.MouseMsg:
		return v, v.handleMouse(msg)

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *overviewView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return nil
	}
	col := min(max(msg.X, 0), formatter.CanvasCols-1)
	row := min(max(msg.Y, 0), formatter.CanvasRows-1)
	x, y := formatter.ToOverview(col, row)
	at := drafter.Point{X: x, Y: y}

	st := v.state.Session()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Y >= formatter.CanvasRows {
			return nil
		}
		if st.Drafter.Armed {
			return v.dispatch(app.PointerDown{At: at})
		}
		if z, ok := zone.At(v.zones, x, y); ok {
			return v.open(z)
		}
	case tea.MouseActionMotion:
		return v.dispatch(app.PointerMove{At: at})
	case tea.MouseActionRelease:
		if st.Drafter.Phase != drafter.Dragging {
			return nil
		}
		// The release point is the far corner, so it covers the whole cell.
		far := drafter.Point{X: x + zone.OverviewWidth/formatter.CanvasCols, Y: y + zone.OverviewHeight/formatter.CanvasRows}
		if far.X < st.Drafter.Start.X {
			far.X = x
		}
		if far.Y < st.Drafter.Start.Y {
			far.Y = y
		}
		if cmd := v.dispatch(app.PointerUp{At: far}); cmd != nil {
			return cmd
		}
		if v.state.Session().ZoneFormOpen() {
			return pushView(newZoneFormView(v.state))
		}
	}
	return nil
}

func (v *overviewView) handleKey(msg tea.KeyMsg) tea.Cmd {
	st := v.state.Session()
	switch {
	case key.Matches(msg, keyCancel):
		if st.Drafter.Armed || st.Drafter.Pending() {
			if cmd := v.dispatch(app.CancelZone{}); cmd != nil {
				return cmd
			}
			return flash("Zone creation cancelled")
		}
	case key.Matches(msg, keyReopenForm):
		if st.ZoneFormOpen() {
			return pushView(newZoneFormView(v.state))
		}
	case key.Matches(msg, keyNewZone):
		if cmd := v.dispatch(app.ArmZoneCreation{}); cmd != nil {
			return cmd
		}
		return flash("Drag on the map to draw the new zone")
	case key.Matches(msg, keyManage):
		return pushView(newManageZonesView(v.state))
	case key.Matches(msg, keyNextZone):
		if nav := v.navigable(); len(nav) > 0 {
			v.focus = (v.focus + 1) % len(nav)
		}
	case key.Matches(msg, keyOpen):
		if nav := v.navigable(); len(nav) > 0 {
			return v.open(nav[v.focus%len(nav)])
		}
	}
	return nil
}

// navigable lists the zones that open a grid, in map order.
func (v *overviewView) navigable() []domain.Zone {
	var out []domain.Zone
	for _, z := range zone.Sorted(v.zones) {
		if z.CanNavigate() {
			out = append(out, z)
		}
	}
	return out
}

func (v *overviewView) open(z domain.Zone) tea.Cmd {
	if cmd := v.dispatch(app.OpenZone{Zone: z}); cmd != nil {
		return cmd
	}
	if v.state.Session().OnOverview() {
		return nil
	}
	return pushView(newZoneGridView(v.state))
}

// dispatch runs cmd and returns a flash command on error, nil otherwise.
func (v *overviewView) dispatch(cmd app.Command) tea.Cmd {
	if _, err := v.state.Dispatch(cmd); err != nil {
		return forbiddenOr(err)
	}
	return nil
}

func (v *overviewView) View() string {
	if v.loading {
		return formatter.Dim("Loading zones...")
	}
	if v.err != nil {
		return formatter.StyleRed.Render(v.err.Error())
	}

	st := v.state.Session()
	var draft *domain.Bounds
	if b, ok := st.Drafter.Preview(); ok {
		draft = &b
	} else if st.Drafter.Pending() && !st.Editing() {
		b := st.Drafter.Draft.Bounds
		draft = &b
	}

	var b strings.Builder
	b.WriteString(formatter.RenderOverview(v.zones, draft))
	b.WriteString("\n")
	b.WriteString(v.statusLine(st))
	return b.String()
}

func (v *overviewView) statusLine(st app.State) string {
	switch {
	case st.Drafter.Phase == drafter.Dragging:
		return formatter.StyleYellow.Render("Release to finish the zone")
	case st.Drafter.Armed:
		return formatter.StyleYellow.Render("Create-zone mode: drag a rectangle on the map")
	case st.Drafter.Pending():
		return formatter.StyleYellow.Render("Zone draft waiting for details")
	}
	nav := v.navigable()
	if len(nav) == 0 {
		return formatter.Dim("No zone opens a grid yet")
	}
	return formatter.Dim("Selected: ") + formatter.Bold(nav[v.focus%len(nav)].Name) + "  " + formatter.CompactLegend()
}
