package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-natal/internal/astro"
	"github.com/litescript/ls-natal/internal/chart"
)

// WheelModel draws the chart as a ring: signs on the rim, bodies inside it,
// house numbers nearest the centre. The Ascendant sits at nine o'clock and
// longitude increases counterclockwise.
type WheelModel struct {
	width  int
	height int
	chart  *chart.Chart
}

// NewWheelModel creates a new wheel view model.
func NewWheelModel() WheelModel {
	return WheelModel{}
}

// SetSize updates the viewport size.
func (m WheelModel) SetSize(width, height int) WheelModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData sets the chart to draw.
func (m WheelModel) UpdateData(c *chart.Chart) WheelModel {
	m.chart = c
	return m
}

// View renders the wheel view.
func (m WheelModel) View() string {
	if m.width < 40 || m.height < 12 {
		return "Terminal too small for chart wheel"
	}
	if m.chart == nil {
		return "No chart"
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.buildCanvas(), m.renderHUD())
}

// screenAngle maps an ecliptic longitude to a screen angle in radians,
// measured counterclockwise from three o'clock.
func screenAngle(lon, asc float64) float64 {
	return astro.DegToRad(astro.Normalize(180 + lon - asc))
}

// project returns the grid cell for a longitude at radius r. Rows are
// squashed by half since terminal cells are about twice as tall as wide.
func project(cx, cy int, r, lon, asc float64) (int, int) {
	theta := screenAngle(lon, asc)
	x := cx + int(math.Round(r*math.Cos(theta)))
	y := cy - int(math.Round(r*math.Sin(theta)*0.5))
	return x, y
}

func (m WheelModel) radius() float64 {
	canvasH := m.height - 3
	r := math.Min(float64(m.width)/2-4, float64(canvasH-2))
	return math.Max(r, 6)
}

func (m WheelModel) buildCanvas() string {
	canvasH := m.height - 3
	canvasW := m.width

	grid := make([][]rune, canvasH)
	for y := range grid {
		grid[y] = make([]rune, canvasW)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	cx, cy := canvasW/2, canvasH/2
	outer := m.radius()
	c := m.chart
	asc := c.Ascendant

	drawRing(grid, cx, cy, outer)
	drawRing(grid, cx, cy, outer*0.45)

	// Cusp spokes between the inner and outer rings.
	for i, cusp := range c.Cusps {
		glyph := '·'
		if i%3 == 0 {
			glyph = '+'
		}
		for r := outer * 0.45; r <= outer; r += 1 {
			put(grid, cx, cy, r, cusp, asc, glyph)
		}
	}

	// Sign abbreviations on the rim at mid-sign.
	for s := 0; s < 12; s++ {
		x, y := project(cx, cy, outer+2, float64(s*30+15), asc)
		putString(grid, x-1, y, astro.Sign(s).Abbrev())
	}

	// House numbers inside the inner ring at mid-house.
	for i := range c.Cusps {
		mid := c.Cusps[i] + c.Cusps.Arc(i+1)/2
		x, y := project(cx, cy, outer*0.3, mid, asc)
		label := fmt.Sprint(i + 1)
		putString(grid, x-len(label)/2, y, label)
	}

	// Angle labels just outside the rim.
	ax, ay := project(cx, cy, outer+1, c.Ascendant, asc)
	putString(grid, ax-2, ay, "AC")
	mx, my := project(cx, cy, outer+1, c.Midheaven, asc)
	putString(grid, mx, my, "MC")

	// Bodies, nudged inward when a cell is already taken.
	for _, p := range c.Placements {
		glyph := []rune(p.Body.Glyph())[0]
		for r := outer * 0.8; r > outer*0.35; r -= 0.5 {
			x, y := project(cx, cy, r, p.Longitude, asc)
			if inGrid(grid, x, y) && !isBodyGlyph(grid[y][x]) {
				grid[y][x] = glyph
				break
			}
		}
	}

	return renderGrid(grid)
}

func (m WheelModel) renderHUD() string {
	c := m.chart
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	return fmt.Sprintf("  %s %s   %s %s   %s %s",
		dim.Render("ASC"), accent.Render(astro.FormatLongitude(c.Ascendant)),
		dim.Render("MC"), accent.Render(astro.FormatLongitude(c.Midheaven)),
		dim.Render("LST"), accent.Render(fmt.Sprintf("%.2f°", c.LST)))
}

func drawRing(grid [][]rune, cx, cy int, r float64) {
	steps := int(2 * math.Pi * r)
	if steps < 8 {
		steps = 8
	}
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(math.Round(r*math.Cos(theta)))
		y := cy - int(math.Round(r*math.Sin(theta)*0.5))
		if inGrid(grid, x, y) && grid[y][x] == ' ' {
			grid[y][x] = '·'
		}
	}
}

func put(grid [][]rune, cx, cy int, r, lon, asc float64, ch rune) {
	x, y := project(cx, cy, r, lon, asc)
	if inGrid(grid, x, y) {
		grid[y][x] = ch
	}
}

func putString(grid [][]rune, x, y int, s string) {
	for i, ch := range []rune(s) {
		if inGrid(grid, x+i, y) {
			grid[y][x+i] = ch
		}
	}
}

func inGrid(grid [][]rune, x, y int) bool {
	return y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y])
}

const bodyGlyphs = "☉☽☿♀♂♃♄♅♆♇"

func isBodyGlyph(ch rune) bool {
	return strings.ContainsRune(bodyGlyphs, ch)
}

func renderGrid(grid [][]rune) string {
	var b strings.Builder

	ringStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	angleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	houseStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("249"))

	for y, row := range grid {
		for _, ch := range row {
			var style lipgloss.Style
			switch {
			case ch == ' ':
				b.WriteRune(ch)
				continue
			case ch == '·':
				style = ringStyle
			case ch == '+':
				style = angleStyle
			case isBodyGlyph(ch):
				style = bodyStyle
			case ch >= '0' && ch <= '9':
				style = houseStyle
			default:
				style = labelStyle
			}
			b.WriteString(style.Render(string(ch)))
		}
		if y < len(grid)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}
