// Package overlay turns the client-rectangle sequence a reconstructed range
// occupies on screen into a small set of highlight rectangles: adjacent
// rectangles on the same line are merged, rectangles outside the viewport
// or clipped away by a scrollable ancestor are dropped, and the active
// match's first surviving rectangle is flagged current.
//
// Obtaining the raw rectangles a DocRange occupies is a layout-engine
// question this package does not answer itself; callers supply them (see
// RectProvider). Everything downstream of that — grouping, merging,
// viewport and clip-chain filtering — is pure geometry and is what this
// package actually does.
package overlay

import (
	"math"
	"sort"

	"github.com/naokirin/chrome-ext-pattern-lens-sub000/rangemap"
)

// DefaultTolerance is the maximum horizontal gap, in pixels, between two
// rectangles on the same line that still get merged into one.
const DefaultTolerance = 1.0

// Rect is an axis-aligned rectangle in viewport coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

func (r Rect) right() float64  { return r.Left + r.Width }
func (r Rect) bottom() float64 { return r.Top + r.Height }

// Intersects reports whether r and other share any area.
func (r Rect) Intersects(other Rect) bool {
	return r.Left < other.right() && other.Left < r.right() &&
		r.Top < other.bottom() && other.Top < r.bottom()
}

// OverlaySpec is an absolute-positioned rectangle the renderer draws as a
// highlight. Current marks the active match's first surviving rectangle.
type OverlaySpec struct {
	Left, Top, Width, Height float64
	Current                  bool
}

// RectProvider supplies the line-rectangles a reconstructed range occupies,
// in document order, and the clip chain (viewport first, then every
// scrollable ancestor's clip rectangle walking up from the range) that
// must contain a rectangle for it to be visible.
type RectProvider interface {
	LineRects(r rangemap.DocRange) []Rect
	ClipChain(r rangemap.DocRange) []Rect
}

// Build produces the overlay specs for one reconstructed range. isCurrent
// marks this range as the active match; only its first surviving rectangle
// carries Current = true, per the navigation contract's single active
// highlight.
func Build(r rangemap.DocRange, p RectProvider, tolerance float64, isCurrent bool) []OverlaySpec {
	rects := p.LineRects(r)
	if len(rects) == 0 {
		return nil
	}
	clips := p.ClipChain(r)

	merged := GroupAndMerge(rects, tolerance)

	var specs []OverlaySpec
	markedCurrent := false
	for _, m := range merged {
		if !visibleWithinClips(m, clips) {
			continue
		}
		cur := isCurrent && !markedCurrent
		if cur {
			markedCurrent = true
		}
		specs = append(specs, OverlaySpec{Left: m.Left, Top: m.Top, Width: m.Width, Height: m.Height, Current: cur})
	}
	return specs
}

func visibleWithinClips(r Rect, clips []Rect) bool {
	for _, c := range clips {
		if !r.Intersects(c) {
			return false
		}
	}
	return true
}

// GroupAndMerge groups rectangles by rounded top coordinate (rectangles
// that render on the same visual line), sorts each line left to right, and
// merges any two rectangles whose horizontal gap does not exceed
// tolerance into a single rectangle spanning both.
func GroupAndMerge(rects []Rect, tolerance float64) []Rect {
	if len(rects) == 0 {
		return nil
	}

	lines := map[int][]Rect{}
	var lineKeys []int
	for _, r := range rects {
		key := int(math.Round(r.Top))
		if _, ok := lines[key]; !ok {
			lineKeys = append(lineKeys, key)
		}
		lines[key] = append(lines[key], r)
	}
	sort.Ints(lineKeys)

	var out []Rect
	for _, key := range lineKeys {
		line := lines[key]
		sort.Slice(line, func(i, j int) bool { return line[i].Left < line[j].Left })

		cur := line[0]
		for _, next := range line[1:] {
			if next.Left-cur.right() <= tolerance {
				cur = mergeRects(cur, next)
				continue
			}
			out = append(out, cur)
			cur = next
		}
		out = append(out, cur)
	}
	return out
}

func mergeRects(a, b Rect) Rect {
	top := math.Min(a.Top, b.Top)
	left := math.Min(a.Left, b.Left)
	bottom := math.Max(a.bottom(), b.bottom())
	right := math.Max(a.right(), b.right())
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}
