package overlay

import (
	"testing"

	"github.com/naokirin/chrome-ext-pattern-lens-sub000/rangemap"
)

type fakeProvider struct {
	rects []Rect
	clips []Rect
}

func (f fakeProvider) LineRects(rangemap.DocRange) []Rect { return f.rects }
func (f fakeProvider) ClipChain(rangemap.DocRange) []Rect { return f.clips }

func TestGroupAndMergeSameLineAdjacent(t *testing.T) {
	rects := []Rect{
		{Left: 50, Top: 10, Width: 20, Height: 16},
		{Left: 0, Top: 10, Width: 50, Height: 16},
	}
	merged := GroupAndMerge(rects, DefaultTolerance)
	if len(merged) != 1 {
		t.Fatalf("got %d rects, want 1: %v", len(merged), merged)
	}
	if merged[0].Left != 0 || merged[0].Width != 70 {
		t.Fatalf("got %+v", merged[0])
	}
}

func TestGroupAndMergeKeepsDistantRectsSeparate(t *testing.T) {
	rects := []Rect{
		{Left: 0, Top: 10, Width: 20, Height: 16},
		{Left: 100, Top: 10, Width: 20, Height: 16},
	}
	merged := GroupAndMerge(rects, DefaultTolerance)
	if len(merged) != 2 {
		t.Fatalf("got %d rects, want 2: %v", len(merged), merged)
	}
}

func TestGroupAndMergeSeparatesDifferentLines(t *testing.T) {
	rects := []Rect{
		{Left: 0, Top: 10, Width: 20, Height: 16},
		{Left: 0, Top: 40, Width: 20, Height: 16},
	}
	merged := GroupAndMerge(rects, DefaultTolerance)
	if len(merged) != 2 {
		t.Fatalf("got %d rects, want 2", len(merged))
	}
}

func TestBuildFiltersRectsOutsideViewport(t *testing.T) {
	p := fakeProvider{
		rects: []Rect{
			{Left: 0, Top: 10, Width: 20, Height: 16},
			{Left: 0, Top: 5000, Width: 20, Height: 16},
		},
		clips: []Rect{{Left: 0, Top: 0, Width: 800, Height: 600}},
	}
	specs := Build(rangemap.DocRange{}, p, DefaultTolerance, true)
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1: %v", len(specs), specs)
	}
}

func TestBuildFiltersRectsClippedByScrollAncestor(t *testing.T) {
	p := fakeProvider{
		rects: []Rect{{Left: 0, Top: 10, Width: 20, Height: 16}},
		clips: []Rect{
			{Left: 0, Top: 0, Width: 800, Height: 600},
			{Left: 100, Top: 100, Width: 50, Height: 50}, // scroll container clip excludes this rect
		},
	}
	specs := Build(rangemap.DocRange{}, p, DefaultTolerance, true)
	if len(specs) != 0 {
		t.Fatalf("expected rect clipped by scroll ancestor to be dropped, got %v", specs)
	}
}

func TestBuildMarksOnlyFirstRectCurrent(t *testing.T) {
	p := fakeProvider{
		rects: []Rect{
			{Left: 0, Top: 10, Width: 20, Height: 16},
			{Left: 0, Top: 40, Width: 20, Height: 16},
		},
		clips: []Rect{{Left: 0, Top: 0, Width: 800, Height: 600}},
	}
	specs := Build(rangemap.DocRange{}, p, DefaultTolerance, true)
	if len(specs) != 2 {
		t.Fatalf("got %d specs, want 2", len(specs))
	}
	if !specs[0].Current || specs[1].Current {
		t.Fatalf("expected only the first spec to be current, got %+v", specs)
	}
}

func TestBuildNotCurrentWhenNotActiveMatch(t *testing.T) {
	p := fakeProvider{
		rects: []Rect{{Left: 0, Top: 10, Width: 20, Height: 16}},
		clips: []Rect{{Left: 0, Top: 0, Width: 800, Height: 600}},
	}
	specs := Build(rangemap.DocRange{}, p, DefaultTolerance, false)
	if len(specs) != 1 || specs[0].Current {
		t.Fatalf("expected non-active match to carry no current rect, got %v", specs)
	}
}

func TestBuildReturnsNilWhenNoRects(t *testing.T) {
	p := fakeProvider{}
	specs := Build(rangemap.DocRange{}, p, DefaultTolerance, true)
	if specs != nil {
		t.Fatalf("expected nil specs for empty rect list, got %v", specs)
	}
}
