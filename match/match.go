// Package match runs literal, regular-expression, and fuzzy search over a
// virtual text layer and reports matches as half-open ranges of virtual-text
// indices. Literal and regex modes run directly against vtl.VirtualText;
// fuzzy mode runs against the normaliser's output and lifts matches back
// through its position map before returning them in the same coordinate
// space as the other two modes, so callers never need to know which mode
// produced a given Span.
package match

import (
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/vtl"
)

// Span is a half-open range of vtl.VirtualText indices.
type Span struct {
	Start, End int
}

// discardBoundaryCrossing drops any span that contains a block boundary
// marker: a match is never allowed to span two distinct block-level
// regions of the source document. For regex matches this is a backstop,
// not the primary defense — excludeBoundaryFromDot already keeps a
// greedy `.`/`.*` from crossing the marker while searching, so this only
// catches a pattern that reaches the marker some other way (an explicit
// negated class, an alternation, and so on).
func discardBoundaryCrossing(v vtl.VirtualText, spans []Span) []Span {
	out := spans[:0]
	for _, s := range spans {
		crosses := false
		for i := s.Start; i < s.End; i++ {
			if v[i] == vtl.BlockBoundaryMarker {
				crosses = true
				break
			}
		}
		if !crosses {
			out = append(out, s)
		}
	}
	return out
}
