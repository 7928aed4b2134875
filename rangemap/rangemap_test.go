package rangemap

import (
	"strings"
	"testing"

	"github.com/naokirin/chrome-ext-pattern-lens-sub000/internal/domtree"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/internal/perftune"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/vtl"
)

func TestReconstructSimpleRange(t *testing.T) {
	root, err := domtree.Parse(strings.NewReader("<p>hello world</p>"))
	if err != nil {
		t.Fatal(err)
	}
	V, M := vtl.Build(root, "", perftune.Budget{NodeCeiling: 1000, DepthCeiling: 100, MaxCombinations: 100})

	idx := strings.Index(string(V), "world")
	if idx < 0 {
		t.Fatalf("expected to find 'world' in %q", string(V))
	}

	rng, ok := Reconstruct(Span{idx, idx + 5}, M)
	if !ok {
		t.Fatal("expected successful reconstruction")
	}
	if rng.StartOffset != idx {
		t.Fatalf("got start offset %d, want %d", rng.StartOffset, idx)
	}
	text := []rune(rng.StartNode.Text)
	got := string(text[rng.StartOffset:rng.EndOffset])
	if got != "world" {
		t.Fatalf("got %q", got)
	}
}

func TestReconstructRejectsBoundaryCrossing(t *testing.T) {
	root, err := domtree.Parse(strings.NewReader("<p>one</p><p>two</p>"))
	if err != nil {
		t.Fatal(err)
	}
	V, M := vtl.Build(root, "", perftune.Budget{NodeCeiling: 1000, DepthCeiling: 100, MaxCombinations: 100})

	markerIdx := strings.IndexRune(string(V), vtl.BlockBoundaryMarker)
	if markerIdx < 0 {
		t.Fatal("expected a boundary marker between paragraphs")
	}

	if _, ok := Reconstruct(Span{markerIdx, markerIdx + 1}, M); ok {
		t.Fatal("expected reconstruction of a marker-only span to fail")
	}
	if _, ok := Reconstruct(Span{markerIdx - 1, markerIdx + 1}, M); ok {
		t.Fatal("expected reconstruction spanning a boundary marker to fail")
	}
}

func TestReconstructOutOfRange(t *testing.T) {
	root, err := domtree.Parse(strings.NewReader("<p>hi</p>"))
	if err != nil {
		t.Fatal(err)
	}
	_, M := vtl.Build(root, "", perftune.Budget{NodeCeiling: 1000, DepthCeiling: 100, MaxCombinations: 100})

	if _, ok := Reconstruct(Span{0, len(M) + 10}, M); ok {
		t.Fatal("expected out-of-range span to fail")
	}
	if _, ok := Reconstruct(Span{2, 2}, M); ok {
		t.Fatal("expected empty span to fail")
	}
}
