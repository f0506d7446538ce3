// Package grid holds the cell selection used while drawing a project area.
package grid

import "github.com/alexanderramin/plantmap/internal/domain"

// Selection is an ordered set of grid cells. Toggling a cell twice
// returns the set to its previous membership.
type Selection struct {
	cells []domain.Cell
}

// NewSelection builds a selection, keeping the first occurrence of each cell.
func NewSelection(cells ...domain.Cell) Selection {
	var s Selection
	for _, c := range cells {
		if !s.Has(c) {
			s.cells = append(s.cells, c)
		}
	}
	return s
}

// Toggle returns a copy of s with c added if absent or removed if present.
func (s Selection) Toggle(c domain.Cell) Selection {
	out := make([]domain.Cell, 0, len(s.cells)+1)
	removed := false
	for _, existing := range s.cells {
		if existing == c {
			removed = true
			continue
		}
		out = append(out, existing)
	}
	if !removed {
		out = append(out, c)
	}
	return Selection{cells: out}
}

func (s Selection) Has(c domain.Cell) bool {
	for _, existing := range s.cells {
		if existing == c {
			return true
		}
	}
	return false
}

func (s Selection) Len() int { return len(s.cells) }

// Cells returns the selected cells in selection order.
func (s Selection) Cells() []domain.Cell {
	return append([]domain.Cell(nil), s.cells...)
}
