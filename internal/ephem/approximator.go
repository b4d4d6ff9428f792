package ephem

import "github.com/litescript/ls-natal/internal/astro"

// Approximator computes low-precision geocentric longitudes from mean elements.
//
// Earth and the planets travel Keplerian ellipses truncated to the equation of
// the centre, with inclinations ignored; the Sun is seen opposite the Earth. The
// Moon is its mean longitude plus a few periodic terms. Expect errors of a few
// tenths of a degree for the Sun and Moon and up to a couple of degrees for the
// planets; this is not an ephemeris for sub-arcminute work.
type Approximator struct {
	terms Terms
}

// NewApproximator creates an Approximator with the given coefficient set.
func NewApproximator(terms Terms) *Approximator {
	return &Approximator{terms: terms}
}

// Name implements Provider.
func (a *Approximator) Name() string { return "mean-elements" }

// Longitudes implements Provider. A NaN jd yields NaN for every body that has terms.
func (a *Approximator) Longitudes(jd float64) Positions {
	d := jd - astro.J2000

	earth := a.terms.Earth.Position(d)

	out := make(Positions, len(allBodies))
	out[Sun] = geocentricLongitude(astro.Vec3{}, earth)
	out[Moon] = astro.Normalize(a.terms.Moon.longitude(d))

	for _, b := range allBodies[2:] {
		orbit, ok := a.terms.Planets[b]
		if !ok {
			out[b] = 0
			continue
		}
		out[b] = geocentricLongitude(orbit.Position(d), earth)
	}

	return out
}

// geocentricLongitude returns the longitude of a heliocentric position seen from earth.
func geocentricLongitude(helio, earth astro.Vec3) float64 {
	v := helio.Sub(earth)
	if v.Norm() == 0 {
		return 0
	}
	return astro.EclipticLongitude(v)
}
