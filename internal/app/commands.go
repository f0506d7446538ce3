package app

import (
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/drafter"
	"github.com/alexanderramin/plantmap/internal/zone"
)

// Command is one discrete user action.
type Command interface{ command() }

type ToggleRole struct{}

// ArmZoneCreation enters create-zone mode on the overview.
type ArmZoneCreation struct{}

type PointerDown struct{ At drafter.Point }
type PointerMove struct{ At drafter.Point }
type PointerUp struct{ At drafter.Point }

// ConfirmZone submits the zone form for the pending draft.
type ConfirmZone struct {
	Name               string
	Clickable          bool
	NavigationTarget   string
	BackgroundImageRef string
}

type CancelZone struct{}

// EditZone opens the zone form for an existing zone.
type EditZone struct{ Row zone.ManagedZone }

type DeleteZone struct{ Target zone.Target }

// OpenZone navigates into a zone's grid. Display-only zones are ignored.
type OpenZone struct{ Zone domain.Zone }

type BackToOverview struct{}

// BeginProject starts selecting cells for a new project.
type BeginProject struct{}

// ToggleCell flips a cell in the selection while creating a project and
// inspects the cell otherwise.
type ToggleCell struct{ Cell domain.Cell }

// SubmitProject submits the project form over the current selection.
type SubmitProject struct {
	Title        string
	Engineer     string
	Type         domain.ProjectType
	DurationDays int
	Description  string
	Priority     domain.Priority
}

type CancelProject struct{}

type SetDateBucket struct{ Bucket domain.DateBucket }
type SetTypeSelector struct{ Selector domain.TypeSelector }

type InspectCell struct{ Cell domain.Cell }
type CloseInspector struct{}

func (ToggleRole) command()      {}
func (ArmZoneCreation) command() {}
func (PointerDown) command()     {}
func (PointerMove) command()     {}
func (PointerUp) command()       {}
func (ConfirmZone) command()     {}
func (CancelZone) command()      {}
func (EditZone) command()        {}
func (DeleteZone) command()      {}
func (OpenZone) command()        {}
func (BackToOverview) command()  {}
func (BeginProject) command()    {}
func (ToggleCell) command()      {}
func (SubmitProject) command()   {}
func (CancelProject) command()   {}
func (SetDateBucket) command()   {}
func (SetTypeSelector) command() {}
func (InspectCell) command()     {}
func (CloseInspector) command()  {}

// Effect is a write Reduce asks the Controller to perform. The new state is
// adopted only if the effect succeeds.
type Effect interface{ effect() }

type CreateZoneEffect struct{ Zone domain.Zone }

type EditZoneEffect struct {
	Target zone.Target
	Zone   domain.Zone
}

type DeleteZoneEffect struct{ Target zone.Target }

type CreateProjectEffect struct{ Request CreateProjectRequest }

func (CreateZoneEffect) effect()    {}
func (EditZoneEffect) effect()      {}
func (DeleteZoneEffect) effect()    {}
func (CreateProjectEffect) effect() {}
