package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-natal/internal/aspects"
	"github.com/litescript/ls-natal/internal/astro"
	"github.com/litescript/ls-natal/internal/chart"
	"github.com/litescript/ls-natal/internal/ephem"
)

// Styles for the table views
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	exactStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

var houseNumerals = [...]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII"}

// PositionsModel lists body placements with a cursor. The aspects of the
// selected body are shown below the table.
type PositionsModel struct {
	width  int
	height int
	cursor int
	chart  *chart.Chart
}

// NewPositionsModel creates a new positions view model.
func NewPositionsModel() PositionsModel {
	return PositionsModel{}
}

// SetSize updates the viewport size.
func (m PositionsModel) SetSize(width, height int) PositionsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData sets the chart to list. The cursor stays on the same row.
func (m PositionsModel) UpdateData(c *chart.Chart) PositionsModel {
	m.chart = c
	if n := len(c.Placements); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	return m
}

// Update handles messages.
func (m PositionsModel) Update(msg tea.Msg) (PositionsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.chart != nil {
		n := len(m.chart.Placements)
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			m.cursor = max(n-1, 0)
		}
	}
	return m, nil
}

// Selected returns the body under the cursor.
func (m PositionsModel) Selected() (ephem.Body, bool) {
	if m.chart == nil || m.cursor >= len(m.chart.Placements) {
		return "", false
	}
	return m.chart.Placements[m.cursor].Body, true
}

// View renders the positions table.
func (m PositionsModel) View() string {
	if m.chart == nil {
		return "No chart"
	}
	var b strings.Builder

	b.WriteString(titleStyle.Render("Positions"))
	b.WriteString("\n")
	header := fmt.Sprintf("%-3s %-9s %-18s %9s %5s", "", "Body", "Position", "Longitude", "House")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for i, p := range m.chart.Placements {
		row := fmt.Sprintf("%-3s %-9s %-18s %9.4f %5s",
			p.Body.Glyph(), p.Body.Name(), astro.FormatLongitude(p.Longitude), p.Longitude, houseNumerals[p.House-1])
		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			b.WriteString(rowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	if body, ok := m.Selected(); ok {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(body.Name() + " aspects"))
		b.WriteString("\n")
		found := false
		for _, a := range m.chart.Aspects {
			if !a.Involves(body) {
				continue
			}
			found = true
			b.WriteString("  " + aspectRow(a) + "\n")
		}
		if !found {
			b.WriteString(mutedStyle.Render("  none") + "\n")
		}
	}

	return b.String()
}

// HousesModel lists house cusps and the bodies in each house.
type HousesModel struct {
	width  int
	height int
	chart  *chart.Chart
}

// NewHousesModel creates a new houses view model.
func NewHousesModel() HousesModel {
	return HousesModel{}
}

// SetSize updates the viewport size.
func (m HousesModel) SetSize(width, height int) HousesModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData sets the chart to list.
func (m HousesModel) UpdateData(c *chart.Chart) HousesModel {
	m.chart = c
	return m
}

// View renders the cusp table.
func (m HousesModel) View() string {
	if m.chart == nil {
		return "No chart"
	}
	c := m.chart
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Houses (%s)", c.HouseSystem)))
	b.WriteString("\n")
	header := fmt.Sprintf("%-5s %-18s %7s  %s", "House", "Cusp", "Size", "Occupants")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	occupants := make([][]string, 12)
	for _, p := range c.Placements {
		occupants[p.House-1] = append(occupants[p.House-1], p.Body.Glyph())
	}

	for i, cusp := range c.Cusps {
		row := fmt.Sprintf("%-5s %-18s %6.2f°  %s",
			houseNumerals[i], astro.FormatLongitude(cusp), c.Cusps.Arc(i+1), strings.Join(occupants[i], " "))
		b.WriteString(rowStyle.Render(row))
		b.WriteString("\n")
	}

	return b.String()
}

// AspectsModel is a scrollable aspect list, optionally limited to exact aspects.
type AspectsModel struct {
	width     int
	height    int
	offset    int
	exactOnly bool
	chart     *chart.Chart
}

// NewAspectsModel creates a new aspects view model.
func NewAspectsModel() AspectsModel {
	return AspectsModel{}
}

// SetSize updates the viewport size.
func (m AspectsModel) SetSize(width, height int) AspectsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData sets the chart to list and resets scrolling.
func (m AspectsModel) UpdateData(c *chart.Chart) AspectsModel {
	m.chart = c
	m.offset = 0
	return m
}

// Update handles messages.
func (m AspectsModel) Update(msg tea.Msg) (AspectsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < len(m.visible())-m.maxRows() {
				m.offset++
			}
		case "e":
			m.exactOnly = !m.exactOnly
			m.offset = 0
		}
	}
	return m, nil
}

func (m AspectsModel) maxRows() int {
	return max(m.height-6, 5)
}

func (m AspectsModel) visible() []aspects.Aspect {
	if m.chart == nil {
		return nil
	}
	if !m.exactOnly {
		return m.chart.Aspects
	}
	var out []aspects.Aspect
	for _, a := range m.chart.Aspects {
		if a.Exact {
			out = append(out, a)
		}
	}
	return out
}

// View renders the aspect list.
func (m AspectsModel) View() string {
	if m.chart == nil {
		return "No chart"
	}
	var b strings.Builder

	title := "Aspects"
	if m.exactOnly {
		title += " (exact only)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	list := m.visible()
	if len(list) == 0 {
		b.WriteString("  No aspects\n")
		return b.String()
	}

	end := min(m.offset+m.maxRows(), len(list))
	for _, a := range list[m.offset:end] {
		b.WriteString("  " + aspectRow(a) + "\n")
	}
	if len(list) > m.maxRows() {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d aspects", m.offset+1, end, len(list)))
	}

	return b.String()
}

func aspectRow(a aspects.Aspect) string {
	row := fmt.Sprintf("%s %-8s %s %s %-8s %-11s orb %5.2f°",
		a.Bodies[0].Glyph(), a.Bodies[0].Name(), a.Kind.Symbol(),
		a.Bodies[1].Glyph(), a.Bodies[1].Name(), a.Kind, a.Orb)
	switch {
	case a.Exact:
		return exactStyle.Render(row + " exact")
	case a.Applying:
		return rowStyle.Render(row + " applying")
	default:
		return mutedStyle.Render(row)
	}
}
