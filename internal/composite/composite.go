// Package composite derives one display colour from the project types
// occupying a grid cell.
package composite

import (
	"sort"
	"strings"

	"github.com/alexanderramin/plantmap/internal/domain"
)

const (
	// Neutral is returned for type combinations without a blend entry.
	Neutral = "#6b7280"
	// Selection is the colour of a cell picked for a new project.
	Selection = "#94a3b8"
)

// blends maps an unordered pair of types, keyed by pairKey, to its colour.
// Only pairs are defined; three or more distinct types fall back to Neutral.
var blends = map[string]string{
	pairKey(domain.TypeMaintenance, domain.TypeInstallation):  "#8b5cf6",
	pairKey(domain.TypeMaintenance, domain.TypeSafety):        "#f97316",
	pairKey(domain.TypeInstallation, domain.TypeSafety):       "#06b6d4",
	pairKey(domain.TypeMaintenance, domain.TypeUpgrade):       "#84cc16",
	pairKey(domain.TypeInstallation, domain.TypeUpgrade):      "#10b981",
	pairKey(domain.TypeSafety, domain.TypeUpgrade):            "#f59e0b",
	pairKey(domain.TypeMaintenance, domain.TypeTesting):       "#ec4899",
	pairKey(domain.TypeInstallation, domain.TypeTesting):      "#6366f1",
	pairKey(domain.TypeSafety, domain.TypeTesting):            "#8b5cf6",
	pairKey(domain.TypeUpgrade, domain.TypeTesting):           "#06b6d4",
	pairKey(domain.TypeMaintenance, domain.TypeConstruction):  "#dc2626",
	pairKey(domain.TypeInstallation, domain.TypeConstruction): "#7c3aed",
	pairKey(domain.TypeSafety, domain.TypeConstruction):       "#ea580c",
	pairKey(domain.TypeUpgrade, domain.TypeConstruction):      "#059669",
	pairKey(domain.TypeTesting, domain.TypeConstruction):      "#7c2d12",
}

// BaseColor returns the colour of a single project type, or Neutral for
// tags outside the enumeration.
func BaseColor(t domain.ProjectType) string {
	if info, ok := domain.LookupProjectType(t); ok {
		return info.Color
	}
	return Neutral
}

// Color returns the composite colour for the given type tags. The result
// does not depend on the order of types.
func Color(types []domain.ProjectType) string {
	distinct := Key(types)
	switch len(distinct) {
	case 0:
		return Neutral
	case 1:
		return BaseColor(distinct[0])
	case 2:
		if c, ok := blends[pairKey(distinct[0], distinct[1])]; ok {
			return c
		}
	}
	return Neutral
}

// Key returns the sorted, deduplicated type tags.
func Key(types []domain.ProjectType) []domain.ProjectType {
	seen := make(map[domain.ProjectType]bool, len(types))
	out := make([]domain.ProjectType, 0, len(types))
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// KeyString joins Key(types) with commas.
func KeyString(types []domain.ProjectType) string {
	parts := make([]string, 0, len(types))
	for _, t := range Key(types) {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ",")
}

// Blend is one entry of the pairwise blend table.
type Blend struct {
	A, B  domain.ProjectType
	Color string
}

// Blends lists the blend table in a stable order, for legends.
func Blends() []Blend {
	out := make([]Blend, 0, len(blends))
	for i, a := range domain.ProjectTypes {
		for _, b := range domain.ProjectTypes[i+1:] {
			if c, ok := blends[pairKey(a.Type, b.Type)]; ok {
				out = append(out, Blend{A: a.Type, B: b.Type, Color: c})
			}
		}
	}
	return out
}

func pairKey(a, b domain.ProjectType) string {
	if b < a {
		a, b = b, a
	}
	return string(a) + "," + string(b)
}
