// Package rangemap reconstructs a source document range from a virtual-text
// span and the char map the vtl builder produced alongside it.
package rangemap

import (
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/internal/domtree"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/vtl"
)

// DocRange is a reconstructed source range: a (node, offset) start point
// and a (node, offset) end point, end-exclusive like the virtual-text span
// it came from.
type DocRange struct {
	StartNode   *domtree.Node
	StartOffset int
	EndNode     *domtree.Node
	EndOffset   int
}

// Span is a half-open range of vtl.VirtualText indices, mirroring
// match.Span without importing the match package: rangemap and match do
// not depend on each other, and searchstate, which uses both, converts
// match.Span values into this type.
type Span struct {
	Start, End int
}

// Reconstruct converts a virtual-text span back into a DocRange by reading
// the char map at its boundary indices. It rejects spans whose start or
// last index is a block boundary marker entry: a marker never belongs to
// source text, so a range touching one cannot be reconstructed.
func Reconstruct(span Span, m vtl.CharMap) (DocRange, bool) {
	if span.Start < 0 || span.End > len(m) || span.Start >= span.End {
		return DocRange{}, false
	}

	startEntry := m[span.Start]
	endEntry := m[span.End-1]
	if startEntry.Kind == vtl.BlockBoundary || endEntry.Kind == vtl.BlockBoundary {
		return DocRange{}, false
	}

	return DocRange{
		StartNode:   startEntry.Node,
		StartOffset: startEntry.Offset,
		EndNode:     endEntry.Node,
		EndOffset:   endEntry.Offset + 1, // end-exclusive in the source node too
	}, true
}
