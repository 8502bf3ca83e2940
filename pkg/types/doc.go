// Package types defines the core interfaces and data structures for Provider Finder.
// It includes the loader and registry contracts, the resolution error taxonomy,
// and the metric event structures used across the finder packages.
package types
