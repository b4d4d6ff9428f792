package astro

import "math"

// Ascendant returns the ecliptic longitude rising on the eastern horizon, in degrees.
// lst is local sidereal time, lat the geographic latitude, obliquity the tilt of the
// ecliptic, all in degrees.
//
//	ASC = atan2(cos LST, -sin LST·cos ε - tan φ·sin ε)
//
// The tangent of the latitude is undefined at the poles, so |lat| >= 90 is rejected.
func Ascendant(lst, lat, obliquity float64) (float64, error) {
	if !(math.Abs(lat) < 90) {
		return 0, invalid("latitude", lat, "ascendant is undefined at or beyond the poles")
	}

	lstRad := DegToRad(lst)
	latRad := DegToRad(lat)
	oblRad := DegToRad(obliquity)

	y := math.Cos(lstRad)
	x := -math.Sin(lstRad)*math.Cos(oblRad) - math.Tan(latRad)*math.Sin(oblRad)

	return Normalize(RadToDeg(math.Atan2(y, x))), nil
}

// Midheaven returns the culminating point, which this model takes to be LST itself.
func Midheaven(lst float64) float64 {
	return Normalize(lst)
}

// EclipticToRA returns the right ascension, in degrees, of the ecliptic point at lon.
func EclipticToRA(lon, obliquity float64) float64 {
	l := DegToRad(lon)
	e := DegToRad(obliquity)
	return Normalize(RadToDeg(math.Atan2(math.Sin(l)*math.Cos(e), math.Cos(l))))
}

// RAToEcliptic returns the ecliptic longitude of the point on the ecliptic whose
// right ascension is ra. It is the inverse of EclipticToRA.
func RAToEcliptic(ra, obliquity float64) float64 {
	r := DegToRad(ra)
	e := DegToRad(obliquity)
	return Normalize(RadToDeg(math.Atan2(math.Sin(r), math.Cos(r)*math.Cos(e))))
}

// EclipticDeclination returns the declination of the ecliptic point at lon.
func EclipticDeclination(lon, obliquity float64) float64 {
	return RadToDeg(math.Asin(math.Sin(DegToRad(obliquity)) * math.Sin(DegToRad(lon))))
}
