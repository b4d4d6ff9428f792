package astro

import (
	"fmt"
	"math"
)

// Sign is one of the twelve 30° divisions of the tropical zodiac.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// String returns the sign name.
func (s Sign) String() string {
	if s < Aries || s > Pisces {
		return "Unknown"
	}
	return signNames[s]
}

// Abbrev returns a three-letter sign code ("Ari", "Tau", ...).
func (s Sign) Abbrev() string {
	return s.String()[:3]
}

// SignOf returns the sign containing an ecliptic longitude.
func SignOf(lon float64) Sign {
	return Sign(int(Normalize(lon)/30) % 12)
}

// DegreeInSign returns the offset of lon from the start of its sign, in [0, 30).
func DegreeInSign(lon float64) float64 {
	return math.Mod(Normalize(lon), 30)
}

// FormatLongitude formats an ecliptic longitude as degrees and minutes within its sign,
// e.g. "15°30' Gemini".
func FormatLongitude(lon float64) string {
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return "NaN"
	}
	sign := SignOf(lon)
	d := DegreeInSign(lon)
	deg := int(d)
	min := int(math.Round((d - float64(deg)) * 60))
	if min == 60 {
		deg++
		min = 0
	}
	// 29°59.6' rounds into the next sign.
	if deg == 30 {
		deg = 0
		sign = (sign + 1) % 12
	}
	return fmt.Sprintf("%d°%02d' %s", deg, min, sign)
}
