// Package ephem provides ecliptic longitudes for the Sun, Moon and planets.
package ephem

// Provider defines the interface for longitude sources.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// Longitudes returns the geocentric ecliptic longitude of every body at jd,
	// in degrees within [0, 360). All ten bodies are always present.
	Longitudes(jd float64) Positions
}

// Fixed is a Provider that reports the same positions at every instant.
// Bodies missing from the map are reported at 0°.
type Fixed Positions

// Name implements Provider.
func (f Fixed) Name() string { return "fixed" }

// Longitudes implements Provider.
func (f Fixed) Longitudes(float64) Positions {
	out := make(Positions, len(allBodies))
	for _, b := range allBodies {
		out[b] = f[b]
	}
	return out
}
