package ephem

import (
	"slices"
	"strings"
)

// Body identifies a chart body. The string value is its stable key.
type Body string

const (
	Sun     Body = "SUN"
	Moon    Body = "MOON"
	Mercury Body = "MERCURY"
	Venus   Body = "VENUS"
	Mars    Body = "MARS"
	Jupiter Body = "JUPITER"
	Saturn  Body = "SATURN"
	Uranus  Body = "URANUS"
	Neptune Body = "NEPTUNE"
	Pluto   Body = "PLUTO"
)

var allBodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}

// AllBodies returns every body in canonical order (Sun, Moon, then planets outward).
func AllBodies() []Body {
	out := make([]Body, len(allBodies))
	copy(out, allBodies)
	return out
}

// Index returns the canonical position of b, or -1 if b is not a known body.
func (b Body) Index() int {
	for i, x := range allBodies {
		if x == b {
			return i
		}
	}
	return -1
}

// Name returns the display name ("Sun", "Mercury", ...).
func (b Body) Name() string {
	s := string(b)
	if s == "" {
		return ""
	}
	return s[:1] + strings.ToLower(s[1:])
}

// Glyph returns the astronomical symbol for the body.
func (b Body) Glyph() string {
	switch b {
	case Sun:
		return "☉"
	case Moon:
		return "☽"
	case Mercury:
		return "☿"
	case Venus:
		return "♀"
	case Mars:
		return "♂"
	case Jupiter:
		return "♃"
	case Saturn:
		return "♄"
	case Uranus:
		return "♅"
	case Neptune:
		return "♆"
	case Pluto:
		return "♇"
	default:
		return "?"
	}
}

// ParseBody parses a body name case-insensitively.
func ParseBody(s string) (Body, bool) {
	b := Body(strings.ToUpper(strings.TrimSpace(s)))
	return b, b.Index() >= 0
}

// Positions maps each body to its ecliptic longitude in degrees.
type Positions map[Body]float64

// Bodies returns the bodies present in p, in canonical order. Unknown keys follow,
// sorted by name.
func (p Positions) Bodies() []Body {
	out := make([]Body, 0, len(p))
	for _, b := range allBodies {
		if _, ok := p[b]; ok {
			out = append(out, b)
		}
	}
	var extra []Body
	for b := range p {
		if b.Index() < 0 {
			extra = append(extra, b)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}
