package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorFloor  = lipgloss.Color("#282828")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PriorityStyle returns the style used for a project priority.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityUrgent:
		return StyleRed.Bold(true)
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityMedium:
		return StyleYellow
	default:
		return StyleDim
	}
}

// PriorityBadge renders a priority as an upper-case label.
func PriorityBadge(p domain.Priority) string {
	return PriorityStyle(p).Render(strings.ToUpper(string(p)))
}

// Swatch renders a block of width cells filled with the hex colour. An
// empty colour renders as plain spaces.
func Swatch(hex string, width int) string {
	fill := strings.Repeat(" ", width)
	if hex == "" {
		return fill
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(fill)
}

// TypeBadge renders a project type label in its own colour.
func TypeBadge(t domain.ProjectType) string {
	info, ok := domain.LookupProjectType(t)
	if !ok {
		return StyleDim.Render(string(t))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(info.Color)).Render(info.Label)
}

// RoleBadge renders the active role.
func RoleBadge(r domain.Role) string {
	if r == domain.RoleAdmin {
		return StyleRed.Bold(true).Render("● ADMIN")
	}
	return StyleBlue.Render("● ENGINEER")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
