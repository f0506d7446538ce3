package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/zone"
)

func formatBounds(b domain.Bounds) string {
	return fmt.Sprintf("%d,%d %d×%d", b.X, b.Y, b.Width, b.Height)
}

func formatNavigation(z domain.Zone) string {
	if z.CanNavigate() {
		return StyleGreen.Render("→ " + z.NavigationTarget)
	}
	return Dim("display only")
}

// FormatZones renders the effective zone set as a table.
func FormatZones(zones map[string]domain.Zone) string {
	if len(zones) == 0 {
		return Dim("No zones defined.") + "\n"
	}
	rows := make([][]string, 0, len(zones))
	for _, z := range zone.Sorted(zones) {
		rows = append(rows, []string{
			Bold(z.Name),
			formatBounds(z.Bounds),
			formatNavigation(z),
			Dim(z.BackgroundImageRef),
		})
	}
	var b strings.Builder
	b.WriteString(Header("Zones") + "\n")
	b.WriteString(RenderTable([]string{"NAME", "BOUNDS", "OPENS", "IMAGE"}, rows))
	return b.String()
}

// ZoneOrigin describes where a managed zone comes from.
func ZoneOrigin(m zone.ManagedZone) string {
	switch {
	case m.IsModifiedBuiltIn:
		return StyleYellow.Render("built-in, modified")
	case m.IsBuiltIn:
		return StyleBlue.Render("built-in")
	default:
		return StylePurple.Render("added")
	}
}

// FormatManagedZones renders the zone management listing.
func FormatManagedZones(rows []zone.ManagedZone) string {
	if len(rows) == 0 {
		return Dim("No zones defined.") + "\n"
	}
	out := make([][]string, 0, len(rows))
	for _, m := range rows {
		key := TruncID(m.ID)
		if m.IsBuiltIn {
			key = Dim(m.OriginalName)
		}
		out = append(out, []string{
			Bold(m.Name),
			ZoneOrigin(m),
			key,
			formatBounds(m.Bounds),
			formatNavigation(m.Zone),
		})
	}
	var b strings.Builder
	b.WriteString(Header("Manage zones") + "\n")
	b.WriteString(RenderTable([]string{"NAME", "ORIGIN", "KEY", "BOUNDS", "OPENS"}, out))
	return b.String()
}
