package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-natal/internal/astro"
	"github.com/litescript/ls-natal/internal/chart"
)

const ruleWidth = 64

var headingStyle = lipgloss.NewStyle().Bold(true)

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, headingStyle.Render(title))
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
}

// WriteSummary writes a plain-text chart summary: angles, body placements,
// house cusps and aspects.
func WriteSummary(w io.Writer, c *chart.Chart, location string) {
	title := fmt.Sprintf("Natal chart @ %s", c.Moment)
	if location != "" {
		title += " · " + location
	}
	heading(w, title)
	fmt.Fprintf(w, "%-12s %s\n", "Place", c.Place)
	fmt.Fprintf(w, "%-12s %.5f\n", "Julian Day", c.JulianDay)
	fmt.Fprintf(w, "%-12s %8.4f°\n", "LST", c.LST)
	fmt.Fprintf(w, "%-12s %s\n", "Ascendant", astro.FormatLongitude(c.Ascendant))
	fmt.Fprintf(w, "%-12s %s\n", "Midheaven", astro.FormatLongitude(c.Midheaven))
	fmt.Fprintf(w, "%-12s %s\n", "Ephemeris", c.Provider)

	fmt.Fprintln(w)
	heading(w, "Positions")
	fmt.Fprintf(w, "%-3s %-9s %-18s %9s %5s\n", "", "Body", "Position", "Longitude", "House")
	for _, p := range c.Placements {
		fmt.Fprintf(w, "%-3s %-9s %-18s %9.4f %5d\n",
			p.Body.Glyph(), p.Body.Name(), astro.FormatLongitude(p.Longitude), p.Longitude, p.House)
	}

	fmt.Fprintln(w)
	heading(w, fmt.Sprintf("Houses (%s)", c.HouseSystem))
	for i, cusp := range c.Cusps {
		fmt.Fprintf(w, "%5s  %-18s %6.2f°\n", roman(i+1), astro.FormatLongitude(cusp), c.Cusps.Arc(i+1))
	}

	fmt.Fprintln(w)
	heading(w, "Aspects")
	if len(c.Aspects) == 0 {
		fmt.Fprintln(w, "No aspects")
		return
	}
	for _, a := range c.Aspects {
		flags := ""
		if a.Exact {
			flags = "exact"
		}
		if a.Applying {
			flags = strings.TrimSpace(flags + " applying")
		}
		fmt.Fprintf(w, "%-9s %s %-9s %-11s orb %5.2f° %s\n",
			a.Bodies[0].Name(), a.Kind.Symbol(), a.Bodies[1].Name(), a.Kind, a.Orb, flags)
	}
	fmt.Fprintf(w, "\nTotal: %d aspects\n", len(c.Aspects))
}

// WriteCuspComparison writes the cusps of several charts for the same moment
// side by side, one column per house system.
func WriteCuspComparison(w io.Writer, charts []*chart.Chart) {
	if len(charts) == 0 {
		return
	}
	heading(w, fmt.Sprintf("House cusps @ %s", charts[0].Moment))

	fmt.Fprintf(w, "%5s", "")
	for _, c := range charts {
		fmt.Fprintf(w, "  %-18s", c.HouseSystem)
	}
	fmt.Fprintln(w)
	for i := 0; i < 12; i++ {
		fmt.Fprintf(w, "%5s", roman(i+1))
		for _, c := range charts {
			fmt.Fprintf(w, "  %-18s", astro.FormatLongitude(c.Cusps[i]))
		}
		fmt.Fprintln(w)
	}
}

var numerals = [...]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII"}

// roman returns the Roman numeral for a house number (1-12).
func roman(n int) string {
	if n < 1 || n > 12 {
		return "?"
	}
	return numerals[n-1]
}
