// Package zone resolves the effective set of overview zones from the fixed
// base catalog and the administrator overlay log.
package zone

import "github.com/alexanderramin/plantmap/internal/domain"

const (
	// OverviewWidth and OverviewHeight are the size of the plant overview
	// surface in screen units.
	OverviewWidth  = 800
	OverviewHeight = 500
)

// Catalog is an ordered, immutable set of base zones.
type Catalog struct {
	zones []domain.Zone
}

// NewCatalog builds a catalog from zones in display order. Later entries
// with a duplicate name are ignored.
func NewCatalog(zones ...domain.Zone) Catalog {
	seen := make(map[string]bool, len(zones))
	out := make([]domain.Zone, 0, len(zones))
	for _, z := range zones {
		if seen[z.Name] {
			continue
		}
		seen[z.Name] = true
		out = append(out, z)
	}
	return Catalog{zones: out}
}

// BaseCatalog returns the hard-coded plant layout.
func BaseCatalog() Catalog {
	return NewCatalog(
		domain.Zone{
			Name:             "Assembly Line A",
			Bounds:           domain.Bounds{X: 200, Y: 150, Width: 300, Height: 100},
			Clickable:        true,
			NavigationTarget: "assembly-a",
		},
		domain.Zone{
			Name:   "Assembly Line B",
			Bounds: domain.Bounds{X: 200, Y: 280, Width: 300, Height: 100},
		},
		domain.Zone{
			Name:   "Quality Control",
			Bounds: domain.Bounds{X: 520, Y: 150, Width: 120, Height: 80},
		},
	)
}

// Zones returns a copy of the catalog entries in order.
func (c Catalog) Zones() []domain.Zone {
	out := make([]domain.Zone, len(c.zones))
	copy(out, c.zones)
	return out
}

// Lookup returns the base zone with the given name.
func (c Catalog) Lookup(name string) (domain.Zone, bool) {
	for _, z := range c.zones {
		if z.Name == name {
			return z, true
		}
	}
	return domain.Zone{}, false
}

// Has reports whether name is a base-catalog zone.
func (c Catalog) Has(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}
