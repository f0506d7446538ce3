package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/plantmap/internal/app"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/zone"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// zoneFields holds form-bound values for the zone metadata form.
type zoneFields struct {
	name      string
	clickable bool
	target    string
	image     string
}

func (f *zoneFields) command() app.ConfirmZone {
	return app.ConfirmZone{
		Name:               f.name,
		Clickable:          f.clickable,
		NavigationTarget:   f.target,
		BackgroundImageRef: f.image,
	}
}

// newZoneFormView collects metadata for the pending draft. The draft's
// current values prefill the form, so edits start from the existing zone.
func newZoneFormView(state *SharedState) View {
	st := state.Session()
	draft := st.Drafter.Draft
	f := &zoneFields{
		name:      draft.Name,
		clickable: draft.Clickable,
		target:    draft.NavigationTarget,
		image:     draft.BackgroundImageRef,
	}

	title := "New Zone"
	if st.Editing() {
		title = "Edit Zone"
	}
	b := draft.Bounds

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Bounds").
				Description(fmt.Sprintf("x %d  y %d  width %d  height %d", b.X, b.Y, b.Width, b.Height)),
			huh.NewInput().
				Title("Name").
				Value(&f.name).
				Validate(validateRequired("a zone name")),
			huh.NewConfirm().
				Title("Opens a detail view?").
				Affirmative("Yes").
				Negative("No").
				Value(&f.clickable),
			huh.NewInput().
				Title("Navigation target").
				Description("Grid view id, for example assembly-a. Ignored for display-only zones.").
				Value(&f.target),
			huh.NewInput().
				Title("Background image (optional)").
				Value(&f.image),
		),
	)

	done := func() tea.Cmd { return submitZone(state, f) }
	cancel := func() tea.Cmd {
		if _, err := state.Dispatch(app.CancelZone{}); err != nil {
			return flashError(err)
		}
		return flash("Zone draft discarded")
	}
	return newWizardView(state, title, form, done, cancel)
}

// submitZone confirms the pending draft. A rejected draft stays pending
// so the form can be reopened.
func submitZone(state *SharedState, f *zoneFields) tea.Cmd {
	editing := state.Session().Editing()
	res, err := state.Dispatch(f.command())
	if err != nil {
		if errors.Is(err, zone.ErrDuplicateZone) || errors.Is(err, domain.ErrNameRequired) {
			return flashError(fmt.Errorf("%w; press e to reopen the form", err))
		}
		return flashError(err)
	}
	if editing {
		return flash(fmt.Sprintf("Zone %q updated", strings.TrimSpace(f.name)))
	}
	if res.Zone != nil {
		return flash(fmt.Sprintf("Zone %q created", res.Zone.Name))
	}
	return nil
}

// projectFields holds form-bound values for the project form.
type projectFields struct {
	title       string
	engineer    string
	typ         domain.ProjectType
	duration    string
	priority    domain.Priority
	description string
}

func (f *projectFields) command() app.SubmitProject {
	return app.SubmitProject{
		Title:        f.title,
		Engineer:     f.engineer,
		Type:         f.typ,
		DurationDays: parsePositiveInt(f.duration, 0),
		Description:  f.description,
		Priority:     f.priority,
	}
}

func typeOptions() []huh.Option[domain.ProjectType] {
	opts := make([]huh.Option[domain.ProjectType], 0, len(domain.ProjectTypes))
	for _, info := range domain.ProjectTypes {
		opts = append(opts, huh.NewOption(info.Label, info.Type))
	}
	return opts
}

func priorityOptions() []huh.Option[domain.Priority] {
	opts := make([]huh.Option[domain.Priority], 0, len(domain.Priorities))
	for _, p := range domain.Priorities {
		label := string(p)
		opts = append(opts, huh.NewOption(strings.ToUpper(label[:1])+label[1:], p))
	}
	return opts
}

// newProjectFormView collects the project details for the selected cells.
func newProjectFormView(state *SharedState) View {
	st := state.Session()
	f := &projectFields{
		typ:      domain.TypeMaintenance,
		duration: "1",
		priority: domain.PriorityMedium,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(st.ZoneName).
				Description(fmt.Sprintf("%d cells selected", st.Selection.Len())),
			huh.NewInput().
				Title("Title").
				Value(&f.title).
				Validate(validateRequired("a title")),
			huh.NewInput().
				Title("Engineer").
				Value(&f.engineer).
				Validate(validateRequired("the engineer's name")),
			huh.NewSelect[domain.ProjectType]().
				Title("Type").
				Options(typeOptions()...).
				Value(&f.typ),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Duration (days)").
				Value(&f.duration).
				Validate(validatePositiveInt),
			huh.NewSelect[domain.Priority]().
				Title("Priority").
				Options(priorityOptions()...).
				Value(&f.priority),
			huh.NewText().
				Title("Description (optional)").
				Value(&f.description),
		),
	)

	done := func() tea.Cmd { return submitProject(state, f) }
	cancel := func() tea.Cmd { return flash("Project not saved; the selection is kept") }
	return newWizardView(state, "New Project", form, done, cancel)
}

func submitProject(state *SharedState, f *projectFields) tea.Cmd {
	res, err := state.Dispatch(f.command())
	if err != nil {
		return flashError(err)
	}
	return flash(fmt.Sprintf("Project %q started on %d cells", res.Project.Title, len(res.Project.Cells)))
}

// newDeleteZoneView asks for confirmation before deleting row.
func newDeleteZoneView(state *SharedState, row zone.ManagedZone) View {
	confirmed := false
	desc := "The zone is removed from the overview."
	if row.IsBuiltIn {
		desc = "Built-in zones stay deleted for the rest of the session."
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", row.Name)).
				Description(desc).
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		),
	)
	done := func() tea.Cmd {
		if !confirmed {
			return flash("Nothing deleted")
		}
		return deleteZone(state, row)
	}
	return newWizardView(state, "Delete Zone", form, done, nil)
}

func deleteZone(state *SharedState, row zone.ManagedZone) tea.Cmd {
	if _, err := state.Dispatch(app.DeleteZone{Target: row.Target()}); err != nil {
		return flashError(err)
	}
	return flash(fmt.Sprintf("Zone %q deleted", row.Name))
}

func validateRequired(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("enter %s", what)
		}
		return nil
	}
}

func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}
