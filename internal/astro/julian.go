package astro

import (
	"math"
	"time"
)

// J2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// Supported calendar range. The Gregorian reform took effect in 1582.
const (
	MinYear = 1582
	MaxYear = 2100
)

// Time zone offsets in use worldwide, in hours east of UTC.
const (
	MinTZOffset = -12.0
	MaxTZOffset = 14.0
)

// JulianDay converts a local Gregorian calendar date and clock time to a Julian Day.
// tzOffsetHours is the local offset east of UTC (e.g. -5 for EST); the local time
// is shifted by -tzOffsetHours to get UT before conversion.
func JulianDay(year, month, day, hour, minute, second int, tzOffsetHours float64) (float64, error) {
	if err := checkRange("year", float64(year), MinYear, MaxYear); err != nil {
		return 0, err
	}
	if err := checkRange("month", float64(month), 1, 12); err != nil {
		return 0, err
	}
	if err := checkRange("day", float64(day), 1, float64(DaysInMonth(year, month))); err != nil {
		return 0, err
	}
	if err := checkRange("hour", float64(hour), 0, 23); err != nil {
		return 0, err
	}
	if err := checkRange("minute", float64(minute), 0, 59); err != nil {
		return 0, err
	}
	if err := checkRange("second", float64(second), 0, 59); err != nil {
		return 0, err
	}
	if err := checkRange("tz_offset", tzOffsetHours, MinTZOffset, MaxTZOffset); err != nil {
		return 0, err
	}

	hours := float64(hour) + float64(minute)/60 + float64(second)/3600 - tzOffsetHours
	return gregorianToJD(float64(year), float64(month), float64(day)+hours/24), nil
}

// JulianDayFromTime converts an instant to a Julian Day without range checks.
func JulianDayFromTime(t time.Time) float64 {
	t = t.UTC()

	h := float64(t.Hour())
	min := float64(t.Minute())
	sec := float64(t.Second())
	ns := float64(t.Nanosecond())

	dayFrac := (h + min/60 + sec/3600 + ns/3600e9) / 24.0

	return gregorianToJD(float64(t.Year()), float64(t.Month()), float64(t.Day())+dayFrac)
}

// TimeFromJulianDay converts a Julian Day back to a UTC instant.
func TimeFromJulianDay(jd float64) time.Time {
	const unixEpochJD = 2440587.5
	ms := math.Round((jd - unixEpochJD) * 86400e3)
	return time.UnixMilli(int64(ms)).UTC()
}

// gregorianToJD implements the standard Meeus algorithm. day may carry a
// fractional part, including values outside [1, 32) after a time zone shift.
func gregorianToJD(y, m, day float64) float64 {
	// Treat January/February as months 13/14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction
	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		day + B - 1524.5
}

// DaysInMonth returns the number of days in a Gregorian month, or 0 for an invalid month.
func DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// JulianCenturies returns the number of Julian centuries since J2000.0.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / 36525.0
}

// GMST returns Greenwich Mean Sidereal Time in degrees, in [0, 360).
// Uses the IAU 1982 expression in Julian Day and Julian centuries:
//
//	GMST = 280.46061837 + 360.98564736629*(JD-2451545) + 0.000387933*T^2 - T^3/38710000
func GMST(jd float64) float64 {
	T := JulianCenturies(jd)

	gmst := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return Normalize(gmst)
}

// LST returns Local Sidereal Time in degrees for an observer at lonDeg (east positive).
// Arguments are ordered (gmst, longitude); swapping them gives a different result.
func LST(gmst, lonDeg float64) float64 {
	return Normalize(gmst + lonDeg)
}

// DefaultObliquity is the fixed obliquity of the ecliptic used by the chart pipeline.
const DefaultObliquity = 23.4367

// MeanObliquity returns the mean obliquity of the ecliptic in degrees for a Julian Day.
func MeanObliquity(jd float64) float64 {
	T := JulianCenturies(jd)
	return 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
}
