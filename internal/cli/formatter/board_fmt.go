package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/plantmap/internal/app"
	"github.com/alexanderramin/plantmap/internal/composite"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// CellWidth is the number of terminal columns used per grid cell.
const CellWidth = 2

// RenderGrid draws a zone grid. Each cell is CellWidth columns wide and
// painted with its composite colour; cells with more than one occupant
// show the count. A nil cursor draws no focus marker.
func RenderGrid(rows [][]app.CellView, cursor *domain.Cell) string {
	var b strings.Builder
	for y, row := range rows {
		for x, v := range row {
			b.WriteString(renderCell(v, cursor != nil && cursor.X == x && cursor.Y == y))
		}
		if y < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderCell(v app.CellView, focused bool) string {
	text := "··"
	if v.Color != "" {
		text = strings.Repeat(" ", CellWidth)
	}
	if v.Count > 1 {
		text = fmt.Sprintf("%*s", CellWidth, strconv.Itoa(min(v.Count, 99)))
	}
	if focused {
		text = "[]"
	}

	style := lipgloss.NewStyle()
	switch {
	case v.Color != "":
		style = style.Background(lipgloss.Color(v.Color)).Foreground(lipgloss.Color("#ffffff")).Bold(true)
	case focused:
		style = StyleHeader
	default:
		style = StyleDim.Faint(true)
	}
	return style.Render(text)
}

// FormatCellInspect lists the projects occupying one cell.
func FormatCellInspect(v app.CellView, now time.Time) string {
	var b strings.Builder
	b.WriteString(Bold(fmt.Sprintf("Cell %s", v.Cell)))
	if v.Color != "" {
		b.WriteString(" " + Swatch(v.Color, 2))
	}
	b.WriteString("\n")
	if len(v.Occupants) == 0 {
		b.WriteString(Dim("No projects in this cell.") + "\n")
		return b.String()
	}
	b.WriteString(Dim(Plural(len(v.Occupants), "project")) + "\n\n")
	for _, p := range v.Occupants {
		b.WriteString(FormatProjectCard(p, now))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatProjectCard renders the details of one project.
func FormatProjectCard(p *domain.Project, now time.Time) string {
	var b strings.Builder
	b.WriteString(Bold(p.Title) + " " + TruncID(p.ID) + "\n")
	b.WriteString("  " + TypeBadge(p.Type) + "  " + PriorityBadge(p.Priority) + "\n")
	if p.Engineer != "" {
		b.WriteString("  " + Dim("engineer ") + p.Engineer + "\n")
	}
	b.WriteString("  " + Dim("runs     ") + fmt.Sprintf("%s → %s (%s)",
		p.StartDate.Format("Jan 2"), p.EndDate.Format("Jan 2"), Plural(p.DurationDays, "day")) + "\n")
	b.WriteString("  " + Dim("starts   ") + RelativeDateFrom(p.StartDate, now) + "\n")
	if p.Description != "" {
		b.WriteString("  " + Dim(p.Description) + "\n")
	}
	return b.String()
}

// FormatProjects renders a project table.
func FormatProjects(projects []*domain.Project, now time.Time) string {
	if len(projects) == 0 {
		return Dim("No projects yet.") + "\n"
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Title),
			TypeBadge(p.Type),
			p.ZoneName,
			p.Engineer,
			PriorityBadge(p.Priority),
			RelativeDateFrom(p.StartDate, now),
			p.EndDate.Format("Jan 2"),
			strconv.Itoa(len(p.Cells)),
		})
	}
	var b strings.Builder
	b.WriteString(Header("Projects") + "\n")
	b.WriteString(RenderTable([]string{"ID", "TITLE", "TYPE", "ZONE", "ENGINEER", "PRIORITY", "START", "END", "CELLS"}, rows))
	return b.String()
}

// ActivePanelRows is the height of the active projects panel, title
// included. It matches the notification panel it sits beside.
const ActivePanelRows = 5

// FormatActiveProjects renders the compact "Active Projects" panel: one
// line per active project, each listed once however many cells it covers.
// Projects beyond the panel height are summarised on the last line.
func FormatActiveProjects(projects []*domain.Project, now time.Time) string {
	var active []*domain.Project
	for _, p := range projects {
		if p.Status == "" || p.Status == domain.ProjectActive {
			active = append(active, p)
		}
	}

	lines := []string{StyleHeader.Render("Active Projects")}
	if len(active) == 0 {
		return lines[0] + "\n" + Dim("No active projects.")
	}

	room := ActivePanelRows - 1
	shown := active
	if len(active) > room {
		shown = active[:room-1]
	}
	for _, p := range shown {
		lines = append(lines, Swatch(composite.BaseColor(p.Type), 1)+" "+Bold(p.Title)+" "+
			Dim(p.ZoneName+" · "+p.Engineer+" · ends "+RelativeDateFrom(p.EndDate, now)))
	}
	if len(shown) < len(active) {
		lines = append(lines, Dim(fmt.Sprintf("+%d more", len(active)-len(shown))))
	}
	return strings.Join(lines, "\n")
}

// FormatNotifications renders the feed, newest first.
func FormatNotifications(items []domain.Notification, now time.Time) string {
	if len(items) == 0 {
		return Dim("No notifications.") + "\n"
	}
	var b strings.Builder
	for _, n := range items {
		b.WriteString(StyleGreen.Render("●") + " " + n.Message + " " + Dim(HumanTimestamp(n.Timestamp, now)) + "\n")
	}
	return b.String()
}

// FormatCriteria describes the active filter.
func FormatCriteria(date domain.DateBucket, selector domain.TypeSelector) string {
	d, t := string(date), string(selector)
	if d == "" {
		d = string(domain.BucketAll)
	}
	if t == "" || t == domain.TypeAll {
		t = "all types"
	} else {
		t = domain.ProjectType(t).Label()
	}
	return Dim("date ") + StyleYellow.Render(d) + Dim("  type ") + StyleYellow.Render(t)
}
