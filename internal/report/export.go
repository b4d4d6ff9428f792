// Package report renders computed charts as text tables and JSON.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-natal/internal/aspects"
	"github.com/litescript/ls-natal/internal/astro"
	"github.com/litescript/ls-natal/internal/chart"
)

// ChartExport is the JSON-serializable representation of a chart.
type ChartExport struct {
	ID          uuid.UUID           `json:"id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Moment      chart.BirthMoment   `json:"moment"`
	Place       chart.GeoCoordinate `json:"place"`
	Location    string              `json:"location,omitempty"`

	JulianDay float64 `json:"julian_day"`
	GMST      float64 `json:"gmst"`
	LST       float64 `json:"lst"`
	Obliquity float64 `json:"obliquity"`

	Ascendant   AngleExport   `json:"ascendant"`
	Midheaven   AngleExport   `json:"midheaven"`
	HouseSystem string        `json:"house_system"`
	Cusps       []AngleExport `json:"cusps"`

	Ephemeris  string            `json:"ephemeris"`
	Placements []PlacementExport `json:"placements"`
	Aspects    []aspects.Aspect  `json:"aspects"`
}

// AngleExport is a longitude with its zodiac breakdown.
type AngleExport struct {
	Longitude float64 `json:"longitude"`
	Sign      string  `json:"sign"`
	Degree    float64 `json:"degree"`
	Formatted string  `json:"formatted"`
}

// PlacementExport is a JSON-friendly body placement.
type PlacementExport struct {
	Body string `json:"body"`
	AngleExport
	House int `json:"house"`
}

func angle(lon float64) AngleExport {
	return AngleExport{
		Longitude: lon,
		Sign:      astro.SignOf(lon).String(),
		Degree:    astro.DegreeInSign(lon),
		Formatted: astro.FormatLongitude(lon),
	}
}

// Export converts a chart to an exportable format with a fresh id and the
// current time.
func Export(c *chart.Chart, location string) *ChartExport {
	return ExportAt(c, location, uuid.New(), time.Now().UTC())
}

// ExportAt is Export with a caller-chosen id and timestamp.
func ExportAt(c *chart.Chart, location string, id uuid.UUID, at time.Time) *ChartExport {
	export := &ChartExport{
		ID:          id,
		GeneratedAt: at,
		Moment:      c.Moment,
		Place:       c.Place,
		Location:    location,
		JulianDay:   c.JulianDay,
		GMST:        c.GMST,
		LST:         c.LST,
		Obliquity:   c.Obliquity,
		Ascendant:   angle(c.Ascendant),
		Midheaven:   angle(c.Midheaven),
		HouseSystem: c.HouseSystem.String(),
		Ephemeris:   c.Provider,
		Aspects:     c.Aspects,
	}
	if export.Aspects == nil {
		export.Aspects = []aspects.Aspect{}
	}

	for _, cusp := range c.Cusps {
		export.Cusps = append(export.Cusps, angle(cusp))
	}
	for _, p := range c.Placements {
		export.Placements = append(export.Placements, PlacementExport{
			Body:        string(p.Body),
			AngleExport: angle(p.Longitude),
			House:       p.House,
		})
	}
	return export
}

// WriteJSON writes the export as indented JSON to the given writer.
func (e *ChartExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
