// Package astro provides the angle, calendar and sidereal-time math that every
// chart calculation is built on.
package astro

import "math"

// Normalize maps any angle in degrees into [0, 360).
// NaN and ±Inf come back as NaN so callers can detect them.
func Normalize(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	// -1e-15 + 360 rounds to exactly 360.
	if a >= 360 {
		a = 0
	}
	return a
}

// ShortestSeparation returns the shortest arc between two angles, in [0, 180].
func ShortestSeparation(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// ForwardArc returns the arc travelled when moving from `from` to `to` in the
// direction of increasing longitude, in [0, 360).
func ForwardArc(from, to float64) float64 {
	return Normalize(to - from)
}

// SignedArc returns the arc from `from` to `to` in (-180, 180].
// Positive values point in the direction of increasing longitude.
func SignedArc(from, to float64) float64 {
	d := ForwardArc(from, to)
	if d > 180 {
		d -= 360
	}
	return d
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
