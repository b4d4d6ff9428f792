package astro

import "math"

// Vec3 represents a 3D vector in the ecliptic frame, in AU.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// CircularOrbit returns the position on a circular ecliptic orbit of radius rAU
// at mean longitude lonDeg.
func CircularOrbit(rAU, lonDeg float64) Vec3 {
	l := DegToRad(lonDeg)
	return Vec3{X: rAU * math.Cos(l), Y: rAU * math.Sin(l)}
}

// EclipticLongitude returns the ecliptic longitude in degrees for a vector, in [0, 360).
func EclipticLongitude(v Vec3) float64 {
	return Normalize(RadToDeg(math.Atan2(v.Y, v.X)))
}
