package formatter

import (
	"strings"

	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/zone"
	"github.com/charmbracelet/lipgloss"
)

// The overview map is drawn on a fixed character canvas. Each column spans
// 10 overview units and each row 20.
const (
	CanvasCols = 80
	CanvasRows = 25
)

// ToOverview converts a canvas position to overview units.
func ToOverview(col, row int) (x, y int) {
	return col * zone.OverviewWidth / CanvasCols, row * zone.OverviewHeight / CanvasRows
}

// ToCanvas converts overview units to a canvas position.
func ToCanvas(x, y int) (col, row int) {
	return x * CanvasCols / zone.OverviewWidth, y * CanvasRows / zone.OverviewHeight
}

type ink int

const (
	inkFloor ink = iota
	inkZone
	inkZoneNav
	inkLabel
	inkDraft
)

var inkStyles = map[ink]lipgloss.Style{
	inkFloor:   StyleDim.Faint(true),
	inkZone:    StyleDim,
	inkZoneNav: StyleGreen,
	inkLabel:   StyleBold,
	inkDraft:   StyleYellow,
}

type glyph struct {
	r rune
	k ink
}

type canvas [][]glyph

func newCanvas() canvas {
	c := make(canvas, CanvasRows)
	for y := range c {
		c[y] = make([]glyph, CanvasCols)
		for x := range c[y] {
			c[y][x] = glyph{r: '·', k: inkFloor}
		}
	}
	return c
}

func (c canvas) set(col, row int, r rune, k ink) {
	if row < 0 || row >= len(c) || col < 0 || col >= CanvasCols {
		return
	}
	c[row][col] = glyph{r: r, k: k}
}

// span returns the canvas rectangle covered by b, clamped to the canvas.
func span(b domain.Bounds) (c0, r0, c1, r1 int) {
	c0, r0 = ToCanvas(b.X, b.Y)
	c1, r1 = ToCanvas(b.X+b.Width-1, b.Y+b.Height-1)
	return max(c0, 0), max(r0, 0), min(c1, CanvasCols-1), min(r1, CanvasRows-1)
}

func (c canvas) box(b domain.Bounds, k ink) {
	c0, r0, c1, r1 := span(b)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			r := ' '
			switch {
			case row == r0 && col == c0:
				r = '┌'
			case row == r0 && col == c1:
				r = '┐'
			case row == r1 && col == c0:
				r = '└'
			case row == r1 && col == c1:
				r = '┘'
			case row == r0 || row == r1:
				r = '─'
			case col == c0 || col == c1:
				r = '│'
			}
			c.set(col, row, r, k)
		}
	}
}

func (c canvas) label(b domain.Bounds, text string) {
	c0, r0, c1, _ := span(b)
	room := c1 - c0 - 1
	if room <= 0 {
		return
	}
	runes := []rune(text)
	if len(runes) > room {
		runes = runes[:room]
	}
	for i, r := range runes {
		c.set(c0+1+i, r0, r, inkLabel)
	}
}

func (c canvas) fill(b domain.Bounds, r rune, k ink) {
	c0, r0, c1, r1 := span(b)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			c.set(col, row, r, k)
		}
	}
}

func (c canvas) String() string {
	var b strings.Builder
	for y, row := range c {
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].k == row[start].k {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, g := range row[start:x] {
				run = append(run, g.r)
			}
			b.WriteString(inkStyles[row[start].k].Render(string(run)))
			start = x
		}
		if y < len(c)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderOverview draws the zones on the overview canvas. Navigable zones
// are highlighted; draft, when non-nil, is shaded on top.
func RenderOverview(zones map[string]domain.Zone, draft *domain.Bounds) string {
	c := newCanvas()
	for _, z := range zone.Sorted(zones) {
		k := inkZone
		if z.CanNavigate() {
			k = inkZoneNav
		}
		c.box(z.Bounds, k)
		c.label(z.Bounds, z.Name)
	}
	if draft != nil && draft.Width > 0 && draft.Height > 0 {
		c.fill(*draft, '░', inkDraft)
	}
	return c.String()
}
