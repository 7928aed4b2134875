package searchstate

import (
	"fmt"

	"github.com/naokirin/chrome-ext-pattern-lens-sub000/internal/domtree"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/internal/obslog"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/internal/perftune"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/match"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/overlay"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/rangemap"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/vtl"
)

// Machine is the navigation/lifecycle state machine: the single owner of
// matches, elements, cursor, and overlays for one document. It holds no
// reference to anything outside the document it was built against; the
// embedding extension shell owns the Machine itself and routes UI commands
// into Dispatch.
type Machine struct {
	root     *domtree.Node
	ignoreID string
	budget   perftune.Budget
	config   Config
	rects    overlay.RectProvider // nil: overlays are never generated

	state    State
	query    QuerySpec
	matches  []MatchRecord
	elements []ElementRef
	cursor   int // -1 means no current match
	overlays []overlay.OverlaySpec

	virtualText vtl.VirtualText
}

// New constructs a Machine in the Idle state. rects may be nil, in which
// case searches still succeed but never carry overlay geometry (error
// kind (c): rectangle acquisition failure never blocks navigation).
func New(root *domtree.Node, ignoreID string, budget perftune.Budget, config Config, rects overlay.RectProvider) *Machine {
	return &Machine{
		root:     root,
		ignoreID: ignoreID,
		budget:   budget,
		config:   config,
		rects:    rects,
		state:    Idle,
		cursor:   -1,
	}
}

// Command carries the inputs for whichever action Dispatch receives; only
// the fields relevant to that action are read.
type Command struct {
	Query         QuerySpec
	Index         int
	ContextLength int
}

// Dispatch routes one command-surface action to its transition, per the
// command table: search, clear, navigate_next, navigate_prev,
// jump_to_match, get_state, get_results_list, start_observing,
// stop_observing, re_search. An unrecognised action returns the
// unknown-action error response without touching state.
func (m *Machine) Dispatch(action string, cmd Command) Response {
	switch action {
	case "search":
		return m.search(cmd.Query)
	case "clear":
		return m.clear()
	case "navigate_next":
		return m.navigate(1)
	case "navigate_prev":
		return m.navigate(-1)
	case "jump_to_match":
		return m.jumpTo(cmd.Index)
	case "get_state":
		return m.getState()
	case "get_results_list":
		return m.getResultsList(cmd.ContextLength)
	case "start_observing":
		return m.startObserving(cmd.Query)
	case "stop_observing":
		return m.stopObserving()
	case "re_search":
		return m.reSearch()
	default:
		return errResponse(fmt.Errorf("unknown action %q", action))
	}
}

func (m *Machine) search(spec QuerySpec) Response {
	matches, elements, err := m.computeMatches(spec)
	if err != nil {
		return errResponse(err)
	}

	m.state = Active
	m.query = spec
	m.matches = matches
	m.elements = elements
	m.setCursorAfterSearch(m.resultCount())
	m.rebuildOverlays()

	n := m.resultCount()
	return Response{Ok: true, Count: n, CurrentIndex: m.cursor, TotalMatches: n}
}

func (m *Machine) clear() Response {
	m.state = Idle
	m.query = QuerySpec{}
	m.matches = nil
	m.elements = nil
	m.overlays = nil
	m.virtualText = nil
	m.cursor = -1
	return Response{Ok: true, CurrentIndex: -1}
}

func (m *Machine) navigate(delta int) Response {
	n := m.resultCount()
	if m.state == Idle || n == 0 {
		return Response{Ok: true, CurrentIndex: -1, TotalMatches: 0}
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
	m.rebuildOverlays()
	return Response{Ok: true, CurrentIndex: m.cursor, TotalMatches: n}
}

func (m *Machine) jumpTo(i int) Response {
	n := m.resultCount()
	if i >= 0 && i < n {
		m.cursor = i
		m.rebuildOverlays()
	}
	return Response{Ok: true, CurrentIndex: m.cursor, TotalMatches: n}
}

func (m *Machine) getState() Response {
	return Response{Ok: true, State: m.state.String(), CurrentIndex: m.cursor, TotalMatches: m.resultCount()}
}

func (m *Machine) startObserving(spec QuerySpec) Response {
	resp := m.search(spec)
	if !resp.Ok {
		return resp
	}
	m.state = Observing
	return resp
}

func (m *Machine) stopObserving() Response {
	if m.state == Observing {
		m.state = Active
	}
	return Response{Ok: true, CurrentIndex: m.cursor, TotalMatches: m.resultCount()}
}

// reSearch recomputes matches with the stored query_spec (the
// re_search transition: observer-only, preserves cursor by the
// nearest-available rule rather than always resetting to 0).
func (m *Machine) reSearch() Response {
	if m.state != Observing {
		return errResponse(fmt.Errorf("re_search is only valid while observing"))
	}

	previousCursor := m.cursor
	matches, elements, err := m.computeMatches(m.query)
	if err != nil {
		return errResponse(err)
	}

	m.matches = matches
	m.elements = elements
	newN := m.resultCount()
	m.cursor = m.preserveCursor(previousCursor, newN)
	m.rebuildOverlays()

	return Response{Ok: true, Count: newN, CurrentIndex: m.cursor, TotalMatches: newN}
}

// preserveCursor implements the re_search cursor rule: with no matches
// there is no current match; otherwise keep the previous cursor if it still
// indexes a match; otherwise clamp a past-the-end cursor to the new last
// index; otherwise (there was no previous cursor) pick the match nearest
// the viewport centre.
func (m *Machine) preserveCursor(previousCursor, newN int) int {
	if newN == 0 {
		return -1
	}
	if previousCursor >= 0 && previousCursor < newN {
		return previousCursor
	}
	if previousCursor >= newN {
		return newN - 1
	}
	return m.nearestToViewportCentre(newN)
}

// nearestToViewportCentre picks the match whose vertical centre is closest
// to the viewport centre, per the re_search fallback rule, using the
// configured RectProvider. With no RectProvider (or no geometry available)
// it falls back to the first match, which is the least surprising default
// when there is no layout to measure against.
func (m *Machine) nearestToViewportCentre(newN int) int {
	if m.rects == nil {
		return 0
	}
	best, bestDist := 0, -1.0
	for i := 0; i < newN; i++ {
		rng := m.rangeAt(i)
		rects := m.rects.LineRects(rng)
		if len(rects) == 0 {
			continue
		}
		clips := m.rects.ClipChain(rng)
		viewport := overlay.Rect{}
		if len(clips) > 0 {
			viewport = clips[0]
		}
		centre := rects[0].Top + rects[0].Height/2
		viewportCentre := viewport.Top + viewport.Height/2
		dist := centre - viewportCentre
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func (m *Machine) setCursorAfterSearch(n int) {
	if n > 0 {
		m.cursor = 0
	} else {
		m.cursor = -1
	}
}

func (m *Machine) resultCount() int {
	if m.query.UseElementSearch {
		return len(m.elements)
	}
	return len(m.matches)
}

// rangeAt returns the DocRange a RectProvider should measure for result i.
// Element-search results have no text offsets to speak of; by convention
// they carry the element node as both StartNode and EndNode with zero
// offsets, and a RectProvider is expected to special-case that shape into
// an element bounding-rect lookup instead of a text-range one.
func (m *Machine) rangeAt(i int) rangemap.DocRange {
	if m.query.UseElementSearch {
		return rangemap.DocRange{StartNode: m.elements[i].Node, EndNode: m.elements[i].Node}
	}
	return m.matches[i].DocumentRange
}

// computeMatches runs the VTL builder and matcher (or the element
// selector engine) for spec, swallowing per-range reconstruction failures
// (error kind (b)): a match whose range cannot be reconstructed
// contributes nothing rather than aborting the whole search.
func (m *Machine) computeMatches(spec QuerySpec) ([]MatchRecord, []ElementRef, error) {
	if spec.UseElementSearch {
		var nodes []*domtree.Node
		var err error
		switch spec.ElementMode {
		case XPathMode:
			nodes, err = QueryXPath(m.root, spec.Query)
		default:
			nodes, err = QueryCSS(m.root, spec.Query)
		}
		if err != nil {
			return nil, nil, err
		}
		elements := make([]ElementRef, len(nodes))
		for i, n := range nodes {
			elements[i] = ElementRef{Node: n}
		}
		return nil, elements, nil
	}

	V, M := vtl.Build(m.root, m.ignoreID, m.budget)
	m.virtualText = V

	var spans []match.Span
	var err error
	switch {
	case spec.UseFuzzy:
		spans, err = match.FuzzyMulti(V, spec.Query, m.budget, m.config.Distance)
	case spec.UseRegex:
		spans, err = match.Regex(V, spec.Query, spec.CaseSensitive)
	default:
		spans, err = match.Literal(V, spec.Query, spec.CaseSensitive)
	}
	if err != nil {
		return nil, nil, err
	}

	var matches []MatchRecord
	for _, s := range spans {
		rng, ok := rangemap.Reconstruct(rangemap.Span{Start: s.Start, End: s.End}, M)
		if !ok {
			obslog.Diagnosef("searchstate: skipping match [%d, %d): range could not be reconstructed", s.Start, s.End)
			continue
		}
		matches = append(matches, MatchRecord{
			SpanInV:       rangemap.Span{Start: s.Start, End: s.End},
			DocumentRange: rng,
		})
	}
	return matches, nil, nil
}

// rebuildOverlays regenerates overlay specs from the stored ranges without
// recomputing matches, matching the scroll/resize contract: ranges are not
// recomputed because the DOM has not changed.
func (m *Machine) rebuildOverlays() {
	if m.rects == nil || m.state == Idle {
		m.overlays = nil
		return
	}

	n := m.resultCount()
	var specs []overlay.OverlaySpec
	for i := 0; i < n; i++ {
		specs = append(specs, overlay.Build(m.rangeAt(i), m.rects, overlay.DefaultTolerance, i == m.cursor)...)
	}
	m.overlays = specs
}

// Resync handles a scroll/resize event: it recomputes overlay geometry
// only, leaving matches and cursor untouched, per the contract that
// ranges are not recomputed because the DOM has not changed.
func (m *Machine) Resync() {
	m.rebuildOverlays()
}
