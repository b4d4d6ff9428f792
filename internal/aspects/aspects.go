// Package aspects finds angular relationships between pairs of bodies.
package aspects

import (
	"math"
	"strings"

	"github.com/litescript/ls-natal/internal/astro"
	"github.com/litescript/ls-natal/internal/ephem"
)

// Kind names an aspect type.
type Kind string

const (
	Conjunction Kind = "conjunction"
	Sextile     Kind = "sextile"
	Square      Kind = "square"
	Trine       Kind = "trine"
	Opposition  Kind = "opposition"
)

// Symbol returns the conventional glyph for the major aspects.
func (k Kind) Symbol() string {
	switch k {
	case Conjunction:
		return "☌"
	case Sextile:
		return "⚹"
	case Square:
		return "□"
	case Trine:
		return "△"
	case Opposition:
		return "☍"
	default:
		return strings.ToUpper(string(k))
	}
}

// Definition describes one aspect type: its exact angle and the largest
// deviation from it that still counts.
type Definition struct {
	Kind  Kind
	Angle float64
	Orb   float64
}

// DefaultExactOrb is the orb within which an aspect is reported as exact.
const DefaultExactOrb = 1.0

// DefaultTable returns the five major aspects with their standard orbs.
// The buckets do not overlap, so a pair matches at most one entry.
func DefaultTable() []Definition {
	return []Definition{
		{Kind: Conjunction, Angle: 0, Orb: 8},
		{Kind: Sextile, Angle: 60, Orb: 6},
		{Kind: Square, Angle: 90, Orb: 8},
		{Kind: Trine, Angle: 120, Orb: 8},
		{Kind: Opposition, Angle: 180, Orb: 8},
	}
}

// Aspect is a relationship found between two bodies. The pair is unordered;
// Bodies lists it in canonical body order.
type Aspect struct {
	Bodies     [2]ephem.Body `json:"bodies"`
	Kind       Kind          `json:"type"`
	ExactAngle float64       `json:"exactAngle"`
	Separation float64       `json:"separation"`
	Orb        float64       `json:"orb"`
	// Applying is true while the separation is still short of the exact
	// angle. Without body velocities this is a static approximation, not
	// the true applying/separating state.
	Applying bool `json:"isApplying"`
	Exact    bool `json:"isExact"`
}

// Involves reports whether b is one of the aspect's bodies.
func (a Aspect) Involves(b ephem.Body) bool {
	return a.Bodies[0] == b || a.Bodies[1] == b
}

// Detector matches body pairs against an aspect table.
type Detector struct {
	Table    []Definition
	ExactOrb float64
}

// NewDetector returns a Detector using the default table and exact orb.
func NewDetector() *Detector {
	return &Detector{Table: DefaultTable(), ExactOrb: DefaultExactOrb}
}

// Find returns every aspect formed between distinct bodies in p, ordered by
// the canonical order of the first body and then the second. When a custom
// table has overlapping entries the closest match wins. Pairs involving a
// NaN longitude never match.
func (d *Detector) Find(p ephem.Positions) []Aspect {
	bodies := p.Bodies()

	var out []Aspect
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if asp, ok := d.match(p[a], p[b]); ok {
				asp.Bodies = [2]ephem.Body{a, b}
				out = append(out, asp)
			}
		}
	}
	return out
}

// Between tests a single pair of longitudes.
func (d *Detector) Between(a, b float64) (Aspect, bool) {
	return d.match(a, b)
}

func (d *Detector) match(lonA, lonB float64) (Aspect, bool) {
	sep := astro.ShortestSeparation(lonA, lonB)

	best := -1
	bestOrb := math.Inf(1)
	for i, def := range d.Table {
		orb := math.Abs(sep - def.Angle)
		if orb <= def.Orb && orb < bestOrb {
			best, bestOrb = i, orb
		}
	}
	if best < 0 {
		return Aspect{}, false
	}

	def := d.Table[best]
	return Aspect{
		Kind:       def.Kind,
		ExactAngle: def.Angle,
		Separation: sep,
		Orb:        bestOrb,
		Applying:   sep < def.Angle,
		Exact:      bestOrb <= d.ExactOrb,
	}, true
}

// Find detects aspects with the default table.
func Find(p ephem.Positions) []Aspect {
	return NewDetector().Find(p)
}
