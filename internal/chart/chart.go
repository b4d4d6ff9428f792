// Package chart assembles a complete natal chart from a birth moment and place.
package chart

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-natal/internal/aspects"
	"github.com/litescript/ls-natal/internal/astro"
	"github.com/litescript/ls-natal/internal/ephem"
	"github.com/litescript/ls-natal/internal/houses"
)

// Options selects the models used by Compute. The zero value is usable.
type Options struct {
	HouseSystem houses.System
	// Obliquity of the ecliptic in degrees; 0 means astro.DefaultObliquity.
	Obliquity float64
	// Aspects defaults to aspects.NewDetector().
	Aspects *aspects.Detector
	// Provider defaults to the mean-element approximator.
	Provider ephem.Provider
}

// DefaultOptions returns Placidus houses, the default obliquity and aspect table,
// and the mean-element ephemeris.
func DefaultOptions() Options {
	return Options{
		HouseSystem: houses.SystemPlacidus,
		Obliquity:   astro.DefaultObliquity,
		Aspects:     aspects.NewDetector(),
		Provider:    ephem.NewApproximator(ephem.DefaultTerms()),
	}
}

func (o Options) withDefaults() Options {
	if o.Obliquity == 0 {
		o.Obliquity = astro.DefaultObliquity
	}
	if o.Aspects == nil {
		o.Aspects = aspects.NewDetector()
	}
	if o.Provider == nil {
		o.Provider = ephem.NewApproximator(ephem.DefaultTerms())
	}
	return o
}

// Placement locates one body in the zodiac and the houses.
type Placement struct {
	Body      ephem.Body `json:"body"`
	Longitude float64    `json:"longitude"`
	Sign      astro.Sign `json:"-"`
	House     int        `json:"house"`
}

// Chart is a computed natal chart. It is a plain value; nothing in it is shared.
type Chart struct {
	Moment BirthMoment
	Place  GeoCoordinate

	JulianDay float64
	GMST      float64
	LST       float64
	Obliquity float64

	Ascendant float64
	Midheaven float64

	HouseSystem houses.System
	Cusps       houses.Cusps

	Provider   string
	Positions  ephem.Positions
	Placements []Placement
	Aspects    []aspects.Aspect
}

// Placement returns the placement of b, if present.
func (c *Chart) Placement(b ephem.Body) (Placement, bool) {
	for _, p := range c.Placements {
		if p.Body == b {
			return p, true
		}
	}
	return Placement{}, false
}

// Compute runs the full pipeline: calendar to Julian Day, sidereal time, angles,
// cusps, body longitudes, house placements and aspects. Every rejection is an
// astro.ValidationError, possibly wrapped.
func Compute(m BirthMoment, place GeoCoordinate, opts Options) (*Chart, error) {
	if err := validateInput(m); err != nil {
		return nil, fmt.Errorf("birth moment: %w", err)
	}
	if err := validateInput(place); err != nil {
		return nil, fmt.Errorf("location: %w", err)
	}
	opts = opts.withDefaults()

	jd, err := astro.JulianDay(m.Year, m.Month, m.Day, m.Hour, m.Minute, m.Second, m.TZOffset)
	if err != nil {
		return nil, fmt.Errorf("birth moment: %w", err)
	}
	gmst := astro.GMST(jd)
	lst := astro.LST(gmst, place.Longitude)

	asc, err := astro.Ascendant(lst, place.Latitude, opts.Obliquity)
	if err != nil {
		return nil, fmt.Errorf("ascendant: %w", err)
	}

	calc, err := houses.For(opts.HouseSystem, opts.Obliquity)
	if err != nil {
		return nil, err
	}
	cusps, err := calc.Cusps(lst, place.Latitude, asc)
	if err != nil {
		return nil, fmt.Errorf("%s houses: %w", opts.HouseSystem, err)
	}

	positions := opts.Provider.Longitudes(jd)

	placements := make([]Placement, 0, len(positions))
	for _, b := range positions.Bodies() {
		lon := positions[b]
		placements = append(placements, Placement{
			Body:      b,
			Longitude: lon,
			Sign:      astro.SignOf(lon),
			House:     houses.HouseOf(lon, cusps),
		})
	}

	return &Chart{
		Moment:      m,
		Place:       place,
		JulianDay:   jd,
		GMST:        gmst,
		LST:         lst,
		Obliquity:   opts.Obliquity,
		Ascendant:   asc,
		Midheaven:   astro.Midheaven(lst),
		HouseSystem: opts.HouseSystem,
		Cusps:       cusps,
		Provider:    opts.Provider.Name(),
		Positions:   positions,
		Placements:  placements,
		Aspects:     opts.Aspects.Find(positions),
	}, nil
}

// Request is one input to ComputeMany.
type Request struct {
	Moment  BirthMoment
	Place   GeoCoordinate
	Options Options
}

// ComputeMany computes charts concurrently, at most limit at a time (limit <= 0
// means no limit). Results are in request order. The first error cancels the
// remaining work and is returned.
func ComputeMany(ctx context.Context, reqs []Request, limit int) ([]*Chart, error) {
	out := make([]*Chart, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, r := range reqs {
		i, r := i, r
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := Compute(r.Moment, r.Place, r.Options)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
