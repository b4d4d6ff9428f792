package houses

import (
	"math"

	"github.com/litescript/ls-natal/internal/astro"
)

// MaxPlacidusLatitude is the largest |latitude| for which Placidus cusps are computed.
const MaxPlacidusLatitude = 60.0

// Equal places each cusp 30° after the previous one, starting at the Ascendant.
type Equal struct{}

func (Equal) System() System { return SystemEqual }

// Cusps ignores lst and lat. It never fails; a NaN asc yields NaN cusps.
func (Equal) Cusps(_, _, asc float64) (Cusps, error) {
	var c Cusps
	for i := range c {
		c[i] = astro.Normalize(asc + 30*float64(i))
	}
	return c, nil
}

// Placidus trisects the time each point of the ecliptic takes to travel from
// the horizon to the meridian. The semi-arc of an intermediate cusp is found
// from the declination of the ecliptic point at that fraction of the quadrant
// and its ascensional difference at the given latitude.
type Placidus struct {
	Obliquity float64
}

func (Placidus) System() System { return SystemPlacidus }

func (p Placidus) Cusps(lst, lat, asc float64) (Cusps, error) {
	if !(math.Abs(lat) <= MaxPlacidusLatitude) {
		return Cusps{}, &astro.ValidationError{
			Field:  "latitude",
			Value:  lat,
			Reason: "Placidus houses are undefined beyond ±60°",
		}
	}
	full := p.ascensionalDifference(1, lat)
	diurnal := func(f float64) float64 {
		return f * (90 + p.ascensionalDifference(f, lat)) / (90 + full)
	}
	nocturnal := func(f float64) float64 {
		return f * (90 - p.ascensionalDifference(f, lat)) / (90 - full)
	}

	// Nocturnal fractions are measured back from the IC.
	return fromQuadrants(astro.Midheaven(lst), asc,
		[2]float64{diurnal(1.0 / 3), diurnal(2.0 / 3)},
		[2]float64{1 - nocturnal(2.0/3), 1 - nocturnal(1.0/3)},
	), nil
}

// ascensionalDifference returns, in degrees, asin(tan D·tan φ) for the
// declination D = asin(sin ε·sin(f·90°)).
func (p Placidus) ascensionalDifference(f, lat float64) float64 {
	d := math.Asin(math.Sin(astro.DegToRad(p.Obliquity)) * math.Sin(astro.DegToRad(f*90)))
	return astro.RadToDeg(math.Asin(math.Tan(d) * math.Tan(astro.DegToRad(lat))))
}

// Koch interpolates right ascension linearly between the meridian and the
// Ascendant, converts the interpolated points back to the ecliptic, and places
// the cusps at the corresponding fractions of each quadrant.
//
// There is no latitude limit. Beyond the polar circles the Ascendant can fall
// west of the meridian; the quadrants are then divided from the IC, which
// becomes cusp 10.
type Koch struct {
	Obliquity float64
}

func (Koch) System() System { return SystemKoch }

func (k Koch) Cusps(lst, _, asc float64) (Cusps, error) {
	mc := astro.Midheaven(lst)
	top, _ := upperMeridian(mc, asc)

	// Interpolate from whichever meridian opens the eastern quadrant.
	ramc := lst
	if top != mc {
		ramc = astro.Normalize(lst + top - mc)
	}
	raAsc := astro.EclipticToRA(asc, k.Obliquity)
	meridian := astro.RAToEcliptic(ramc, k.Obliquity)

	upper := k.divide(ramc, raAsc, meridian, asc)
	lower := k.divide(raAsc, ramc+180, asc, astro.Normalize(meridian+180))
	return fromQuadrants(mc, asc, upper, lower), nil
}

// divide returns where the points one and two thirds of the way from raFrom
// to raTo in right ascension fall along the ecliptic arc from lonFrom to lonTo,
// as fractions of that arc.
func (k Koch) divide(raFrom, raTo, lonFrom, lonTo float64) [2]float64 {
	span := astro.ForwardArc(raFrom, raTo)
	arc := astro.ForwardArc(lonFrom, lonTo)

	var out [2]float64
	for i, t := range []float64{1.0 / 3, 2.0 / 3} {
		lon := astro.RAToEcliptic(raFrom+t*span, k.Obliquity)
		out[i] = astro.ForwardArc(lonFrom, lon) / arc
	}
	return out
}
