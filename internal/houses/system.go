// Package houses divides the ecliptic into the twelve astrological houses.
package houses

import (
	"fmt"
	"strings"

	"github.com/litescript/ls-natal/internal/astro"
)

// System selects a house division algorithm.
type System int

const (
	SystemPlacidus System = iota // default
	SystemKoch
	SystemEqual
)

// Systems lists every supported system in display order.
var Systems = []System{SystemPlacidus, SystemKoch, SystemEqual}

// String returns the system name.
func (s System) String() string {
	switch s {
	case SystemEqual:
		return "equal"
	case SystemPlacidus:
		return "placidus"
	case SystemKoch:
		return "koch"
	default:
		return "unknown"
	}
}

// Next returns the system after s in display order, wrapping around.
func (s System) Next() System {
	for i, x := range Systems {
		if x == s {
			return Systems[(i+1)%len(Systems)]
		}
	}
	return Systems[0]
}

// ParseSystem parses a system name case-insensitively.
func ParseSystem(s string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equal":
		return SystemEqual, nil
	case "placidus":
		return SystemPlacidus, nil
	case "koch":
		return SystemKoch, nil
	default:
		return 0, fmt.Errorf("unknown house system %q", s)
	}
}

// Calculator computes house cusps for one system.
type Calculator interface {
	System() System
	// Cusps returns the twelve cusps for the given local sidereal time, latitude
	// and Ascendant, all in degrees. Cusp 0 is always asc.
	Cusps(lst, lat, asc float64) (Cusps, error)
}

// For returns the calculator for system s using the given obliquity of the ecliptic.
func For(s System, obliquity float64) (Calculator, error) {
	switch s {
	case SystemEqual:
		return Equal{}, nil
	case SystemPlacidus:
		return Placidus{Obliquity: obliquity}, nil
	case SystemKoch:
		return Koch{Obliquity: obliquity}, nil
	default:
		return nil, fmt.Errorf("unknown house system %d", int(s))
	}
}

// Calculate computes cusps for system s with the default obliquity.
func Calculate(s System, lst, lat, asc float64) (Cusps, error) {
	calc, err := For(s, astro.DefaultObliquity)
	if err != nil {
		return Cusps{}, err
	}
	return calc.Cusps(lst, lat, asc)
}
