package searchstate

import "github.com/naokirin/chrome-ext-pattern-lens-sub000/match"

// Config holds the tunable constants named by the command surface: the
// fuzzy multi-keyword distance heuristic and the results-list context
// window bounds. The embedding extension shell constructs one and passes
// it in; the core keeps no persisted configuration of its own.
type Config struct {
	Distance match.DistanceConfig

	DefaultResultsListContextLength int
	MinResultsListContextLength     int
	MaxResultsListContextLength     int
}

// DefaultConfig returns the values named in the command surface.
func DefaultConfig() Config {
	return Config{
		Distance:                        match.DefaultDistanceConfig(),
		DefaultResultsListContextLength: 30,
		MinResultsListContextLength:     10,
		MaxResultsListContextLength:     100,
	}
}

// clampContextLength applies the external-caller clamp to [MIN, MAX];
// internal callers that want no context at all pass 0 through unclamped.
func (c Config) clampContextLength(n int) int {
	if n <= 0 {
		return 0
	}
	if n < c.MinResultsListContextLength {
		return c.MinResultsListContextLength
	}
	if n > c.MaxResultsListContextLength {
		return c.MaxResultsListContextLength
	}
	return n
}
