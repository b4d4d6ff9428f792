package ephem

import (
	"math"

	"github.com/litescript/ls-natal/internal/astro"
)

// Linear is an angle that grows linearly with time: At0 degrees at J2000.0
// plus Rate degrees per day.
type Linear struct {
	At0  float64
	Rate float64
}

// At returns the angle d days after J2000.0, unnormalized.
func (l Linear) At(d float64) float64 {
	return l.At0 + l.Rate*d
}

// perCentury builds a Linear from a value at J2000.0 and a rate in degrees per Julian century.
func perCentury(at0, rate float64) Linear {
	return Linear{At0: at0, Rate: rate / 36525}
}

// Orbit holds the mean elements of a heliocentric orbit, ignoring inclination.
type Orbit struct {
	MeanLongitude Linear
	Perihelion    Linear // longitude of perihelion
	Eccentricity  float64
	SemiMajorAU   float64
}

// Position returns the heliocentric ecliptic position d days after J2000.0.
// The true longitude is the mean longitude plus the equation of the centre,
// expanded to third order in eccentricity. With zero eccentricity the body
// moves uniformly on a circle.
func (o Orbit) Position(d float64) astro.Vec3 {
	e := o.Eccentricity
	L := o.MeanLongitude.At(d)
	M := (L - o.Perihelion.At(d)) * math.Pi / 180

	C := (2*e-e*e*e/4)*math.Sin(M) +
		1.25*e*e*math.Sin(2*M) +
		(13.0/12.0)*e*e*e*math.Sin(3*M)

	r := o.SemiMajorAU * (1 - e*e) / (1 + e*math.Cos(M+C))
	return astro.CircularOrbit(r, L+C*180/math.Pi)
}

// PeriodicTerm is one sine term of a lunar longitude series:
//
//	Amplitude · sin(D·elongation + M·sunAnomaly + Mm·moonAnomaly + F·argLatitude)
type PeriodicTerm struct {
	Amplitude float64
	D, M, Mm  float64
	F         float64
}

// MoonTerms holds the Moon's fundamental arguments and periodic corrections.
type MoonTerms struct {
	MeanLongitude Linear
	Elongation    Linear // D
	SunAnomaly    Linear // M
	Anomaly       Linear // Mm
	ArgLatitude   Linear // F
	Periodic      []PeriodicTerm
}

// longitude returns the Moon's corrected longitude d days after J2000.0, unnormalized.
func (m MoonTerms) longitude(d float64) float64 {
	D := m.Elongation.At(d) * math.Pi / 180
	M := m.SunAnomaly.At(d) * math.Pi / 180
	Mm := m.Anomaly.At(d) * math.Pi / 180
	F := m.ArgLatitude.At(d) * math.Pi / 180

	lon := m.MeanLongitude.At(d)
	for _, p := range m.Periodic {
		lon += p.Amplitude * math.Sin(p.D*D+p.M*M+p.Mm*Mm+p.F*F)
	}
	return lon
}

// Terms is the full coefficient set used by the Approximator.
// Planets absent from the map are reported at 0°.
type Terms struct {
	Earth   Orbit
	Moon    MoonTerms
	Planets map[Body]Orbit
}

// DefaultTerms returns mean elements referred to J2000.0.
// Earth and planet elements are the Standish (JPL) mean elements valid
// 1800-2050; the Moon uses its six largest periodic terms.
func DefaultTerms() Terms {
	return Terms{
		Earth: Orbit{
			MeanLongitude: perCentury(100.46457166, 35999.37244981),
			Perihelion:    perCentury(102.93768193, 0.32327364),
			Eccentricity:  0.01671123,
			SemiMajorAU:   1.00000261,
		},
		Moon: MoonTerms{
			MeanLongitude: Linear{At0: 218.3164477, Rate: 13.17639648},
			Elongation:    Linear{At0: 297.8501921, Rate: 12.19074912},
			SunAnomaly:    Linear{At0: 357.5291092, Rate: 0.98560028},
			Anomaly:       Linear{At0: 134.9633964, Rate: 13.06499295},
			ArgLatitude:   Linear{At0: 93.2720950, Rate: 13.22935024},
			Periodic: []PeriodicTerm{
				{Amplitude: 6.289, Mm: 1},        // equation of the centre
				{Amplitude: 1.274, D: 2, Mm: -1}, // evection
				{Amplitude: 0.658, D: 2},         // variation
				{Amplitude: 0.214, Mm: 2},        // second centre term
				{Amplitude: -0.186, M: 1},        // annual equation
				{Amplitude: -0.114, F: 2},        // reduction to the ecliptic
			},
		},
		Planets: map[Body]Orbit{
			Mercury: {
				MeanLongitude: perCentury(252.25032350, 149472.67411175),
				Perihelion:    perCentury(77.45779628, 0.16047689),
				Eccentricity:  0.20563593,
				SemiMajorAU:   0.38709927,
			},
			Venus: {
				MeanLongitude: perCentury(181.97909950, 58517.81538729),
				Perihelion:    perCentury(131.60246718, 0.00268329),
				Eccentricity:  0.00677672,
				SemiMajorAU:   0.72333566,
			},
			Mars: {
				MeanLongitude: perCentury(-4.55343205, 19140.30268499),
				Perihelion:    perCentury(-23.94362959, 0.44441088),
				Eccentricity:  0.09339410,
				SemiMajorAU:   1.52371034,
			},
			Jupiter: {
				MeanLongitude: perCentury(34.39644051, 3034.74612775),
				Perihelion:    perCentury(14.72847983, 0.21252668),
				Eccentricity:  0.04838624,
				SemiMajorAU:   5.20288700,
			},
			Saturn: {
				MeanLongitude: perCentury(49.95424423, 1222.49362201),
				Perihelion:    perCentury(92.59887831, -0.41897216),
				Eccentricity:  0.05386179,
				SemiMajorAU:   9.53667594,
			},
			Uranus: {
				MeanLongitude: perCentury(313.23810451, 428.48202785),
				Perihelion:    perCentury(170.95427630, 0.40805281),
				Eccentricity:  0.04725744,
				SemiMajorAU:   19.18916464,
			},
			Neptune: {
				MeanLongitude: perCentury(-55.12002969, 218.45945325),
				Perihelion:    perCentury(44.96476227, -0.32241464),
				Eccentricity:  0.00859048,
				SemiMajorAU:   30.06992276,
			},
			Pluto: {
				MeanLongitude: perCentury(238.92903833, 145.20780515),
				Perihelion:    perCentury(224.06891629, -0.04062942),
				Eccentricity:  0.24882730,
				SemiMajorAU:   39.48211675,
			},
		},
	}
}
