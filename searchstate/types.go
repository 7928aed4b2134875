// Package searchstate owns the navigation/lifecycle state machine: it
// drives the virtual text layer builder, normaliser, and matcher to
// produce matches, reconstructs document ranges, generates overlay specs,
// and exposes the command surface a host message router dispatches user
// actions through.
package searchstate

import (
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/internal/domtree"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/overlay"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/rangemap"
)

// ElementMode selects the selector grammar used by element-search mode.
type ElementMode int

const (
	CSSMode ElementMode = iota
	XPathMode
)

// QuerySpec is the input to a search or re_search transition.
type QuerySpec struct {
	Query            string
	UseRegex         bool
	CaseSensitive    bool
	UseElementSearch bool
	ElementMode      ElementMode
	UseFuzzy         bool
}

// MatchRecord is one located match: its span over the virtual text and the
// document range it reconstructs to. AllKeywordSpans is never populated:
// match.FuzzyMulti reports only the covering span of each combination, so
// the field is always nil, multi-keyword fuzzy matches included.
type MatchRecord struct {
	SpanInV         rangemap.Span
	DocumentRange   rangemap.DocRange
	AllKeywordSpans []rangemap.Span
}

// ElementRef is one element-search result.
type ElementRef struct {
	Node *domtree.Node
}

// State names the machine's lifecycle phase.
type State int

const (
	Idle State = iota
	Active
	Observing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Observing:
		return "observing"
	default:
		return "unknown"
	}
}

// ResultItem is one entry in a get_results_list response.
type ResultItem struct {
	Index         int
	MatchedText   string
	ContextBefore string
	ContextAfter  string
	FullText      string
}

// Response is the command surface's uniform reply envelope. CurrentIndex
// is -1 when there is no current match, per the clear/empty-result
// contract.
type Response struct {
	Ok           bool
	Error        string
	Count        int
	CurrentIndex int
	TotalMatches int
	State        string
	Items        []ResultItem
}

func errResponse(err error) Response {
	return Response{Ok: false, Error: err.Error(), CurrentIndex: -1}
}

// Overlays exposes the machine's current overlay specs (read-only
// snapshot); nil outside Active/Observing or when no RectProvider was
// configured.
func (m *Machine) Overlays() []overlay.OverlaySpec {
	return m.overlays
}
