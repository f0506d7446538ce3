package zone

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/plantmap/internal/domain"
)

var (
	ErrDuplicateZone = errors.New("a zone with this name already exists")
	ErrUnknownZone   = errors.New("zone not found")
)

// Log is the ordered list of administrator overlay records. Every edit
// returns a new Log; a Log value is never changed after construction.
type Log struct {
	ops []domain.OverlayOp
}

// NewLog builds a log from ops in the order given.
func NewLog(ops ...domain.OverlayOp) Log {
	out := make([]domain.OverlayOp, len(ops))
	copy(out, ops)
	return Log{ops: out}
}

// Ops returns a copy of the records in log order.
func (l Log) Ops() []domain.OverlayOp {
	out := make([]domain.OverlayOp, len(l.ops))
	copy(out, l.ops)
	return out
}

// Len returns the number of live records.
func (l Log) Len() int { return len(l.ops) }

// Add appends a new administrator zone.
func (l Log) Add(id string, z domain.Zone) Log {
	return l.with(domain.AddZone{ID: id, Zone: z})
}

// ModifyBase records a replacement for a base zone, superseding any
// earlier modification of the same base zone.
func (l Log) ModifyBase(originalName string, replacement domain.Zone) Log {
	next := l.without(func(op domain.OverlayOp) bool {
		m, ok := op.(domain.ModifyBaseZone)
		return ok && m.OriginalName == originalName
	})
	return next.with(domain.ModifyBaseZone{OriginalName: originalName, Replacement: replacement})
}

// DeleteBase suppresses a base zone. Earlier delete markers and the
// modification of the same base zone are dropped, as is any added zone
// that carries the same name.
func (l Log) DeleteBase(originalName string) Log {
	next := l.without(func(op domain.OverlayOp) bool {
		switch o := op.(type) {
		case domain.DeleteBaseZone:
			return o.OriginalName == originalName
		case domain.ModifyBaseZone:
			return o.OriginalName == originalName
		case domain.AddZone:
			return o.Zone.Name == originalName
		}
		return false
	})
	return next.with(domain.DeleteBaseZone{OriginalName: originalName})
}

// UpdateAdded replaces the added zone with the given ID in place.
func (l Log) UpdateAdded(id string, z domain.Zone) (Log, error) {
	idx := l.indexOfAdded(id)
	if idx < 0 {
		return l, fmt.Errorf("added zone %q: %w", id, ErrUnknownZone)
	}
	next := NewLog(l.ops...)
	next.ops[idx] = domain.AddZone{ID: id, Zone: z}
	return next, nil
}

// RemoveAdded drops the added zone with the given ID.
func (l Log) RemoveAdded(id string) (Log, error) {
	if l.indexOfAdded(id) < 0 {
		return l, fmt.Errorf("added zone %q: %w", id, ErrUnknownZone)
	}
	return l.without(func(op domain.OverlayOp) bool {
		a, ok := op.(domain.AddZone)
		return ok && a.ID == id
	}), nil
}

// Edit applies a zone edit to whichever record the target identifies.
func (l Log) Edit(t Target, z domain.Zone) (Log, error) {
	if t.BuiltIn {
		return l.ModifyBase(t.OriginalName, z), nil
	}
	return l.UpdateAdded(t.ID, z)
}

// Delete removes the zone the target identifies.
func (l Log) Delete(t Target) (Log, error) {
	if t.BuiltIn {
		return l.DeleteBase(t.OriginalName), nil
	}
	return l.RemoveAdded(t.ID)
}

// Deleted returns the set of base zone names with a live delete marker.
func (l Log) Deleted() map[string]bool {
	out := make(map[string]bool)
	for _, op := range l.ops {
		if d, ok := op.(domain.DeleteBaseZone); ok {
			out[d.OriginalName] = true
		}
	}
	return out
}

// Modification returns the live modification of a base zone, if any.
func (l Log) Modification(originalName string) (domain.ModifyBaseZone, bool) {
	for _, op := range l.ops {
		if m, ok := op.(domain.ModifyBaseZone); ok && m.OriginalName == originalName {
			return m, true
		}
	}
	return domain.ModifyBaseZone{}, false
}

func (l Log) indexOfAdded(id string) int {
	for i, op := range l.ops {
		if a, ok := op.(domain.AddZone); ok && a.ID == id {
			return i
		}
	}
	return -1
}

func (l Log) with(op domain.OverlayOp) Log {
	out := make([]domain.OverlayOp, 0, len(l.ops)+1)
	out = append(out, l.ops...)
	out = append(out, op)
	return Log{ops: out}
}

func (l Log) without(drop func(domain.OverlayOp) bool) Log {
	out := make([]domain.OverlayOp, 0, len(l.ops))
	for _, op := range l.ops {
		if !drop(op) {
			out = append(out, op)
		}
	}
	return Log{ops: out}
}
