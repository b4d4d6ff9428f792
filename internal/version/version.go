// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Koch houses, config file watching, cusp comparison across systems
// 0.2.0 - Placidus houses, aspect detector with applying/exact flags, JSON export
// 0.1.0 - Initial release: mean-element ephemeris, equal houses, chart wheel TUI
