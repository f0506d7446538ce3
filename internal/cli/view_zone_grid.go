package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/plantmap/internal/app"
	"github.com/alexanderramin/plantmap/internal/cli/formatter"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	keyToggleCell   = key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle/inspect"))
	keyBeginProject = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "new project"))
	keySubmit       = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save project"))
	keyDateFilter   = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "date filter"))
	keyTypeFilter   = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type filter"))
	keyBack         = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	keyUp           = key.NewBinding(key.WithKeys("up", "k"))
	keyDown         = key.NewBinding(key.WithKeys("down", "j"))
	keyLeft         = key.NewBinding(key.WithKeys("left", "h"))
	keyRight        = key.NewBinding(key.WithKeys("right", "l"))
)

// gridLoadedMsg carries the rendered cell summaries of the open zone.
type gridLoadedMsg struct {
	rows [][]app.CellView
	err  error
}

// zoneGridView shows the 40x25 grid of one zone. Cells are toggled into
// the selection while creating a project and inspected otherwise.
type zoneGridView struct {
	state   *SharedState
	viewID  string
	name    string
	rows    [][]app.CellView
	cursor  domain.Cell
	loading bool
	err     error
}

func newZoneGridView(state *SharedState) *zoneGridView {
	st := state.Session()
	return &zoneGridView{
		state:   state,
		viewID:  st.ViewID,
		name:    st.ZoneName,
		loading: true,
	}
}

func (v *zoneGridView) ID() ViewID { return ViewZoneGrid }
func (v *zoneGridView) Title() string { return v.name }

func (v *zoneGridView) ShortHelp() []key.Binding {
	if v.state.Session().CreatingProject {
		return []key.Binding{keyToggleCell, keySubmit, keyCancel}
	}
	return []key.Binding{keyToggleCell, keyBeginProject, keyDateFilter, keyTypeFilter, keyBack}
}

func (v *zoneGridView) Init() tea.Cmd {
	return v.load()
}

func (v *zoneGridView) load() tea.Cmd {
	board := v.state.Ctrl.Board()
	st := v.state.Session()
	viewID := v.viewID
	return func() tea.Msg {
		rows, err := board.Grid(context.Background(), viewID, st.Criteria, st.Selection)
		return gridLoadedMsg{rows: rows, err: err}
	}
}

func (v *zoneGridView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case gridLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.rows = msg.rows
		}
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return v, nil
		}
		// The first content line is the zone title.
		c := domain.Cell{X: msg.X / formatter.CellWidth, Y: msg.Y - 1}
		if !c.InBounds() {
			return v, nil
		}
		v.cursor = c
		return v, v.dispatch(app.ToggleCell{Cell: c})

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *zoneGridView) handleKey(msg tea.KeyMsg) tea.Cmd {
	st := v.state.Session()
	switch {
	case key.Matches(msg, keyUp):
		v.cursor.Y = max(v.cursor.Y-1, 0)
	case key.Matches(msg, keyDown):
		v.cursor.Y = min(v.cursor.Y+1, domain.GridHeight-1)
	case key.Matches(msg, keyLeft):
		v.cursor.X = max(v.cursor.X-1, 0)
	case key.Matches(msg, keyRight):
		v.cursor.X = min(v.cursor.X+1, domain.GridWidth-1)
	case key.Matches(msg, keyToggleCell):
		return v.dispatch(app.ToggleCell{Cell: v.cursor})
	case key.Matches(msg, keyBeginProject):
		if !st.CreatingProject {
			if cmd := v.dispatch(app.BeginProject{}); cmd != nil {
				return cmd
			}
			return flash("Select cells, then press s to save the project")
		}
	case key.Matches(msg, keySubmit):
		if !st.CreatingProject {
			return nil
		}
		if st.Selection.Len() == 0 {
			return flashError(domain.ErrNoCells)
		}
		return pushView(newProjectFormView(v.state))
	case key.Matches(msg, keyDateFilter):
		return v.dispatch(app.SetDateBucket{Bucket: nextBucket(st.Criteria.Date)})
	case key.Matches(msg, keyTypeFilter):
		return v.dispatch(app.SetTypeSelector{Selector: nextSelector(st.Criteria.Type)})
	case key.Matches(msg, keyBack):
		switch {
		case st.CreatingProject:
			return v.dispatch(app.CancelProject{})
		case st.Inspected != nil:
			return v.dispatch(app.CloseInspector{})
		}
		if cmd := v.dispatch(app.BackToOverview{}); cmd != nil {
			return cmd
		}
		return popView()
	}
	return nil
}

// dispatch runs cmd and reloads the grid, or flashes the error.
func (v *zoneGridView) dispatch(cmd app.Command) tea.Cmd {
	if _, err := v.state.Dispatch(cmd); err != nil {
		return flashError(err)
	}
	return v.load()
}

func nextBucket(b domain.DateBucket) domain.DateBucket {
	for i, cur := range domain.DateBuckets {
		if cur == b {
			return domain.DateBuckets[(i+1)%len(domain.DateBuckets)]
		}
	}
	return domain.DateBuckets[0]
}

func nextSelector(s domain.TypeSelector) domain.TypeSelector {
	order := make([]domain.TypeSelector, 0, len(domain.ProjectTypes)+1)
	order = append(order, domain.TypeAll)
	for _, info := range domain.ProjectTypes {
		order = append(order, domain.TypeSelector(info.Type))
	}
	for i, cur := range order {
		if cur == s {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

func (v *zoneGridView) View() string {
	if v.loading {
		return formatter.Dim("Loading grid...")
	}
	if v.err != nil {
		return formatter.StyleRed.Render(v.err.Error())
	}

	st := v.state.Session()
	title := formatter.Bold(v.name) + " " + formatter.Dim(v.viewID) + "  " + formatter.FormatCriteria(st.Criteria.Date, st.Criteria.Type)
	if st.CreatingProject {
		title += "  " + formatter.StyleYellow.Render(fmt.Sprintf("new project: %s selected", formatter.Plural(st.Selection.Len(), "cell")))
	}

	cursor := v.cursor
	grid := formatter.RenderGrid(v.rows, &cursor)
	side := v.sidePanel(st)
	body := lipgloss.JoinHorizontal(lipgloss.Top, grid, "  ", side)
	return title + "\n" + body
}

func (v *zoneGridView) sidePanel(st app.State) string {
	c := v.cursor
	if st.Inspected != nil {
		c = *st.Inspected
	}
	if c.Y >= len(v.rows) || c.X >= len(v.rows[c.Y]) {
		return ""
	}
	cell := v.rows[c.Y][c.X]
	content := strings.TrimSuffix(formatter.FormatCellInspect(cell, v.state.App.now()), "\n")
	if st.Inspected == nil {
		return formatter.Dim("Cursor ") + content
	}
	return formatter.RenderBox("Inspector", content)
}
