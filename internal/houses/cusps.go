package houses

import (
	"fmt"
	"math"

	"github.com/litescript/ls-natal/internal/astro"
)

// Cusps holds the twelve house cusps as ecliptic longitudes in [0, 360).
// Index 0 is the 1st house cusp (the Ascendant); index 9 is the 10th.
type Cusps [12]float64

// Ascendant returns the 1st house cusp.
func (c Cusps) Ascendant() float64 { return c[0] }

// Midheaven returns the 10th house cusp. Placidus and Koch put the MC there,
// or the IC when the Ascendant lies west of the meridian. Equal cusps hold
// asc+270 at cusp 10, which is generally not the MC.
func (c Cusps) Midheaven() float64 { return c[9] }

// Arc returns the size in degrees of house (1-12), or NaN for any other number.
func (c Cusps) Arc(house int) float64 {
	if house < 1 || house > 12 {
		return math.NaN()
	}
	return astro.ForwardArc(c[house-1], c[house%12])
}

// Validate reports whether the cusps form twelve non-empty houses that
// cover the ecliptic exactly once, with opposite cusps 180° apart.
func (c Cusps) Validate() error {
	total := 0.0
	for i, lon := range c {
		if !(lon >= 0 && lon < 360) {
			return &astro.ValidationError{Field: fmt.Sprintf("cusp %d", i+1), Value: lon, Reason: "must be within [0, 360)"}
		}
		arc := astro.ForwardArc(lon, c[(i+1)%12])
		if arc == 0 {
			return &astro.ValidationError{Field: fmt.Sprintf("cusp %d", i+1), Value: lon, Reason: "coincides with the next cusp"}
		}
		total += arc
	}
	if math.Abs(total-360) > 1e-6 {
		return &astro.ValidationError{Field: "cusps", Value: total, Reason: "are out of order"}
	}
	for i := 0; i < 6; i++ {
		if d := astro.ShortestSeparation(c[i], c[i+6]); math.Abs(d-180) > 1e-9 {
			return &astro.ValidationError{Field: fmt.Sprintf("cusp %d", i+1), Value: c[i], Reason: fmt.Sprintf("is %v° from its opposite", d)}
		}
	}
	return nil
}

// HouseOf returns the house (1-12) containing lon. A house runs from its cusp
// up to, but not including, the next one; the interval that wraps through 0°
// is handled explicitly. If no interval matches (NaN input or degenerate cusps)
// the result is house 1.
func HouseOf(lon float64, c Cusps) int {
	lon = astro.Normalize(lon)
	for i := 0; i < 12; i++ {
		start, end := c[i], c[(i+1)%12]
		if start <= end {
			if lon >= start && lon < end {
				return i + 1
			}
		} else if lon >= start || lon < end {
			return i + 1
		}
	}
	return 1
}

// minQuadrant is the narrowest eastern quadrant, in degrees, that is divided
// into three houses.
const minQuadrant = 1e-6

// upperMeridian returns the meridian point that opens the quadrant ending at
// asc, and the size of that quadrant. This is normally mc. Inside the polar
// circles asc can lie west of the meridian; the IC then takes the place of
// the MC and cusp 10 falls on it. An asc sitting on the meridian gets 90°
// quadrants.
func upperMeridian(mc, asc float64) (top, q float64) {
	top = mc
	q = astro.ForwardArc(top, asc)
	if q >= 180 {
		top = astro.Normalize(mc + 180)
		q = astro.ForwardArc(top, asc)
	}
	if q < minQuadrant || q > 180-minQuadrant {
		top = astro.Normalize(asc - 90)
		q = astro.ForwardArc(top, asc)
	}
	return top, q
}

// thirds replaces fractions that do not split a quadrant into three
// non-empty parts with an even split.
func thirds(f [2]float64) [2]float64 {
	if f[0] > 0 && f[0] < f[1] && f[1] < 1 {
		return f
	}
	return [2]float64{1.0 / 3, 2.0 / 3}
}

// fromQuadrants assembles cusps from the four angles and the fractions at
// which the intermediate cusps divide the two eastern quadrants. upper holds
// the positions of cusps 11 and 12 along MC→ASC; lower those of cusps 2 and 3
// along ASC→IC.
// The western half mirrors the eastern half, so opposite cusps are 180° apart.
func fromQuadrants(mc, asc float64, upper, lower [2]float64) Cusps {
	top, q := upperMeridian(mc, asc)
	upper, lower = thirds(upper), thirds(lower)

	var c Cusps
	c[9] = top
	c[10] = astro.Normalize(top + upper[0]*q)
	c[11] = astro.Normalize(top + upper[1]*q)
	c[0] = asc
	c[1] = astro.Normalize(asc + lower[0]*(180-q))
	c[2] = astro.Normalize(asc + lower[1]*(180-q))

	for i := 0; i < 3; i++ {
		c[i+6] = astro.Normalize(c[i] + 180)
		c[i+3] = astro.Normalize(c[i+9] + 180)
	}
	return c
}
