package zone

import (
	"sort"

	"github.com/alexanderramin/plantmap/internal/domain"
)

const builtInIDPrefix = "builtin-"

// Target identifies the overlay record an edit or delete applies to.
// Base zones are addressed by their catalog name, added zones by ID.
type Target struct {
	BuiltIn      bool
	OriginalName string
	ID           string
}

// ManagedZone is one row of the zone management listing.
type ManagedZone struct {
	domain.Zone
	ID                string
	IsBuiltIn         bool
	IsModifiedBuiltIn bool
	OriginalName      string
}

// Target returns the edit target for this row.
func (m ManagedZone) Target() Target {
	if m.IsBuiltIn {
		return Target{BuiltIn: true, OriginalName: m.OriginalName, ID: m.ID}
	}
	return Target{ID: m.ID}
}

// Resolve combines the catalog and the overlay log into the effective zone
// set keyed by name. Delete markers are applied first, then modifications
// in log order, then added zones not shadowed by a delete marker.
func Resolve(c Catalog, l Log) map[string]domain.Zone {
	zones := make(map[string]domain.Zone, len(c.zones)+len(l.ops))
	for _, z := range c.zones {
		zones[z.Name] = z
	}

	deleted := l.Deleted()
	for name := range deleted {
		delete(zones, name)
	}

	for _, op := range l.ops {
		m, ok := op.(domain.ModifyBaseZone)
		if !ok || deleted[m.OriginalName] {
			continue
		}
		delete(zones, m.OriginalName)
		zones[m.Replacement.Name] = m.Replacement
	}

	for _, op := range l.ops {
		a, ok := op.(domain.AddZone)
		if !ok || deleted[a.Zone.Name] {
			continue
		}
		zones[a.Zone.Name] = a.Zone
	}

	return zones
}

// ListManageable returns the zones an administrator can edit: base zones in
// catalog order (modified ones in place of their original), then added
// zones in log order. Deleted base zones are omitted.
func ListManageable(c Catalog, l Log) []ManagedZone {
	deleted := l.Deleted()
	out := make([]ManagedZone, 0, len(c.zones)+len(l.ops))

	for _, base := range c.zones {
		if deleted[base.Name] {
			continue
		}
		row := ManagedZone{
			Zone:         base,
			ID:           builtInIDPrefix + base.Name,
			IsBuiltIn:    true,
			OriginalName: base.Name,
		}
		if m, ok := l.Modification(base.Name); ok {
			row.Zone = m.Replacement
			row.IsModifiedBuiltIn = true
		}
		out = append(out, row)
	}

	for _, op := range l.ops {
		a, ok := op.(domain.AddZone)
		if !ok || deleted[a.Zone.Name] {
			continue
		}
		out = append(out, ManagedZone{Zone: a.Zone, ID: a.ID})
	}

	return out
}

// NameTaken reports whether name is unavailable to the zone identified by
// self. A name is taken when another manageable zone uses it, or when it
// is a catalog name and self is not that base zone: catalog names stay
// reserved after their base zone is renamed or deleted, because a delete
// marker shadows any added zone of the same name. A nil self is a new zone.
func NameTaken(c Catalog, l Log, name string, self *Target) bool {
	if c.Has(name) && !isBase(self, name) {
		return true
	}
	for _, row := range ListManageable(c, l) {
		if row.Name != name {
			continue
		}
		if self != nil && sameTarget(row.Target(), *self) {
			continue
		}
		return true
	}
	return false
}

func isBase(t *Target, name string) bool {
	return t != nil && t.BuiltIn && t.OriginalName == name
}

// Lookup returns the manageable row the target identifies. Deleted base
// zones and removed added zones are not found.
func Lookup(c Catalog, l Log, t Target) (ManagedZone, bool) {
	for _, row := range ListManageable(c, l) {
		if sameTarget(row.Target(), t) {
			return row, true
		}
	}
	return ManagedZone{}, false
}

// Find returns the row in a management listing with the given name.
func Find(rows []ManagedZone, name string) (ManagedZone, bool) {
	for _, row := range rows {
		if row.Name == name {
			return row, true
		}
	}
	return ManagedZone{}, false
}

// Sorted returns the zones ordered top-to-bottom, left-to-right, then by name.
func Sorted(zones map[string]domain.Zone) []domain.Zone {
	out := make([]domain.Zone, 0, len(zones))
	for _, z := range zones {
		out = append(out, z)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Bounds.Y != b.Bounds.Y {
			return a.Bounds.Y < b.Bounds.Y
		}
		if a.Bounds.X != b.Bounds.X {
			return a.Bounds.X < b.Bounds.X
		}
		return a.Name < b.Name
	})
	return out
}

// At returns the topmost zone containing the overview point (x, y). Zones
// later in Sorted order win on overlap.
func At(zones map[string]domain.Zone, x, y int) (domain.Zone, bool) {
	sorted := Sorted(zones)
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Bounds.Contains(x, y) {
			return sorted[i], true
		}
	}
	return domain.Zone{}, false
}

func sameTarget(a, b Target) bool {
	if a.BuiltIn != b.BuiltIn {
		return false
	}
	if a.BuiltIn {
		return a.OriginalName == b.OriginalName
	}
	return a.ID == b.ID
}
