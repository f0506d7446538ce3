package formatter

import (
	"strings"

	"github.com/alexanderramin/plantmap/internal/composite"
	"github.com/alexanderramin/plantmap/internal/domain"
)

// FormatLegend lists every project type with its colour.
func FormatLegend() string {
	var b strings.Builder
	b.WriteString(Header("Project types") + "\n")
	for _, info := range domain.ProjectTypes {
		b.WriteString(Swatch(info.Color, 2) + " " + info.Label + " " + Dim(string(info.Type)) + "\n")
	}
	b.WriteString(Swatch(composite.Neutral, 2) + " " + Dim("three or more types") + "\n")
	b.WriteString(Swatch(composite.Selection, 2) + " " + Dim("selected") + "\n")
	return b.String()
}

// FormatBlends renders the two-type blend table.
func FormatBlends() string {
	blends := composite.Blends()
	rows := make([][]string, 0, len(blends))
	for _, bl := range blends {
		rows = append(rows, []string{
			TypeBadge(bl.A),
			TypeBadge(bl.B),
			Swatch(bl.Color, 4) + " " + Dim(bl.Color),
		})
	}
	var b strings.Builder
	b.WriteString(Header("Overlaps") + "\n")
	b.WriteString(RenderTable([]string{"TYPE", "WITH", "COLOUR"}, rows))
	return b.String()
}

// CompactLegend is a single-line legend for the TUI status area.
func CompactLegend() string {
	parts := make([]string, 0, len(domain.ProjectTypes))
	for _, info := range domain.ProjectTypes {
		parts = append(parts, Swatch(info.Color, 1)+" "+Dim(string(info.Type)))
	}
	return strings.Join(parts, "  ")
}
