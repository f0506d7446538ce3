package domain

// OverlayKind names the variant of an OverlayOp.
type OverlayKind string

const (
	OverlayAdd    OverlayKind = "add"
	OverlayModify OverlayKind = "modify"
	OverlayDelete OverlayKind = "delete"
)

// OverlayOp is an administrator edit layered over the base zone catalog.
// The set of implementations is closed: AddZone, ModifyBaseZone and
// DeleteBaseZone.
type OverlayOp interface {
	Kind() OverlayKind
	overlayOp()
}

// AddZone introduces a zone that is not part of the base catalog.
type AddZone struct {
	ID   string
	Zone Zone
}

// ModifyBaseZone supersedes a base-catalog zone while remembering the
// name it had in the catalog.
type ModifyBaseZone struct {
	OriginalName string
	Replacement  Zone
}

// DeleteBaseZone suppresses a base-catalog zone.
type DeleteBaseZone struct {
	OriginalName string
}

func (AddZone) Kind() OverlayKind        { return OverlayAdd }
func (ModifyBaseZone) Kind() OverlayKind { return OverlayModify }
func (DeleteBaseZone) Kind() OverlayKind { return OverlayDelete }

func (AddZone) overlayOp()        {}
func (ModifyBaseZone) overlayOp() {}
func (DeleteBaseZone) overlayOp() {}
