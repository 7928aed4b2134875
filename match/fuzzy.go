package match

import (
	"sort"
	"strings"
	"unicode"

	"github.com/naokirin/chrome-ext-pattern-lens-sub000/internal/obslog"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/internal/perftune"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/normalize"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/vtl"
)

// Fuzzy runs the single-keyword fuzzy path: normalise both v and query,
// expand the query's accented-letter substitution spellings, run a literal
// search for every expansion over the normalised text, then lift each match
// back through μ into virtual-text coordinates. A query that literally
// spells an accented letter (ä, ö, ü, ß, œ, æ) is never expanded and is
// additionally restricted, via accentRequirementSatisfied, to source text
// that spells that same accented letter: a query of "müller" matches only
// text spelled with the umlaut, not text spelled "mueller".
func Fuzzy(v vtl.VirtualText, query string) ([]Span, error) {
	n, mu := normalize.Normalize([]rune(v))
	variants, required, hasAccent := fuzzyVariants([]rune(query))

	var all []Span
	for _, variant := range variants {
		vn := vtl.VirtualText(n)
		matches, err := Literal(vn, string(variant), false)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if hasAccent && !accentRequirementSatisfied(v, mu, required, m) {
				continue
			}
			orig, ok := normalize.ToOriginal(mu, normalize.Span{Start: m.Start, End: m.End})
			if !ok {
				continue
			}
			all = append(all, Span{Start: orig.Start, End: orig.End})
		}
	}

	all = dedupeAndMergeSpans(all)
	return discardBoundaryCrossing(v, all), nil
}

// fuzzyVariants normalises raw (a whole query or a single keyword) and
// builds its match variants. The accent gate is decided from raw, before
// folding could erase a literal ä/ö/ü/ß/œ/æ into its multi-letter
// substitution spelling, per normalize.ExpandQueryFrom; requiredAccents
// names the normalised-text positions (in the source's own coordinate
// space, via mu) a match must trace back to that same accented letter,
// populated only when hasAccent is true.
func fuzzyVariants(raw []rune) (variants [][]rune, requiredAccents []rune, hasAccent bool) {
	qn, qmu := normalize.Normalize(raw)
	hasAccent = normalize.HasMultiCodepointAccent(raw)
	variants = normalize.ExpandQueryFrom(raw, qn)
	requiredAccents = normalize.RequiredAccentRunes(raw, qn, qmu)
	return variants, requiredAccents, hasAccent
}

// accentRequirementSatisfied checks a candidate match m (positions in the
// normalised source text n) against requiredAccents: at every position
// requiredAccents marks nonzero, m must map (via mu, back into the
// original source text v) to a single codepoint that case-insensitively
// equals the required accented letter. A match of the wrong length, or
// one whose accented position was produced by composing more than one
// source codepoint, fails the requirement.
func accentRequirementSatisfied(v vtl.VirtualText, mu []normalize.Span, requiredAccents []rune, m Span) bool {
	if m.End-m.Start != len(requiredAccents) {
		return false
	}
	for d, want := range requiredAccents {
		if want == 0 {
			continue
		}
		src := mu[m.Start+d]
		if src.End-src.Start != 1 {
			return false
		}
		if unicode.ToLower(v[src.Start]) != unicode.ToLower(want) {
			return false
		}
	}
	return true
}

// DistanceConfig holds the (multiplier, min, max) triple that scales the
// maximum allowed spread between a multi-keyword combination's first and
// last character with the query's total length. It is supplied by the
// embedding caller rather than hard-coded, so a host can tune how loosely
// keywords may be scattered across text.
type DistanceConfig struct {
	Multiplier int
	Min        int
	Max        int
}

// DefaultDistanceConfig matches the constants used before DistanceConfig
// existed as a caller-supplied value.
func DefaultDistanceConfig() DistanceConfig {
	return DistanceConfig{Multiplier: 3, Min: 10, Max: 200}
}

// FuzzyMulti runs the multi-keyword fuzzy path: each whitespace-separated
// keyword must independently match somewhere in the normalised text; a
// bounded Cartesian-product walk over each keyword's match positions then
// looks for combinations whose total spread does not exceed a
// length-scaled distance bound, discarding any combination whose minimal
// covering range crosses a block boundary or where one keyword's match
// range is wholly contained inside another's (the overlapping-containment
// exclusion: two keywords should never be satisfied by the same text).
func FuzzyMulti(v vtl.VirtualText, query string, budget perftune.Budget, dc DistanceConfig) ([]Span, error) {
	keywords := strings.Fields(query)
	if len(keywords) == 0 {
		return nil, nil
	}
	if len(keywords) == 1 {
		return Fuzzy(v, keywords[0])
	}

	n, mu := normalize.Normalize([]rune(v))

	// Fuzzy normalises its input itself, which would normalise n a second
	// time here; each keyword's candidate positions are found directly
	// against the already-normalised n with the literal matcher instead.
	perKeyword := make([][]Span, len(keywords))
	for i, kw := range keywords {
		variants, required, hasAccent := fuzzyVariants([]rune(kw))
		var spans []Span
		for _, variant := range variants {
			m, err := Literal(vtl.VirtualText(n), string(variant), false)
			if err != nil {
				return nil, err
			}
			for _, s := range m {
				if hasAccent && !accentRequirementSatisfied(v, mu, required, s) {
					continue
				}
				spans = append(spans, s)
			}
		}
		spans = dedupeAndMergeSpans(spans)
		if len(spans) == 0 {
			return nil, nil
		}
		perKeyword[i] = spans
	}

	maxDistance := clampDistance(keywords, dc)

	combos := walkCombinations(perKeyword, maxDistance, budget.MaxCombinations)

	var all []Span
	for _, combo := range combos {
		lo, hi := combo[0].Start, combo[0].End
		for _, s := range combo[1:] {
			if s.Start < lo {
				lo = s.Start
			}
			if s.End > hi {
				hi = s.End
			}
		}
		orig, ok := normalize.ToOriginal(mu, normalize.Span{Start: lo, End: hi})
		if !ok {
			continue
		}
		all = append(all, Span{Start: orig.Start, End: orig.End})
	}

	// discard crossing combinations before merging, so a crossing one cannot
	// absorb a valid neighbour into a union that is then dropped as a whole
	all = discardBoundaryCrossing(v, all)
	return dedupeAndMergeSpans(all), nil
}

// clampDistance scales the maximum allowed spread between a multi-keyword
// combination's first and last character with the total query length, so a
// longer query tolerates a proportionally wider gap between keywords.
func clampDistance(keywords []string, dc DistanceConfig) int {
	total := 0
	for _, k := range keywords {
		total += len([]rune(k))
	}
	d := total * dc.Multiplier
	if d < dc.Min {
		d = dc.Min
	}
	if d > dc.Max {
		d = dc.Max
	}
	return d
}

// walkCombinations performs the bounded Cartesian-product walk over
// per-keyword candidate positions, bounded by maxCombinations to defend
// against keywords with many matches in a large document.
func walkCombinations(perKeyword [][]Span, maxDistance, maxCombinations int) [][]Span {
	var results [][]Span
	visited := 0
	idx := make([]int, len(perKeyword))

	for {
		visited++
		if visited > maxCombinations {
			obslog.Diagnosef("match: multi-keyword combination walk truncated at %d combinations", maxCombinations)
			break
		}

		combo := make([]Span, len(perKeyword))
		for i, spans := range perKeyword {
			combo[i] = spans[idx[i]]
		}

		if comboValid(combo, maxDistance) {
			results = append(results, combo)
		}

		// advance idx like an odometer
		k := len(idx) - 1
		for k >= 0 {
			idx[k]++
			if idx[k] < len(perKeyword[k]) {
				break
			}
			idx[k] = 0
			k--
		}
		if k < 0 {
			break
		}
	}

	return results
}

// comboValid checks the distance bound and the overlapping-containment
// exclusion rule: no keyword's match range may be wholly contained inside
// another keyword's match range in the same combination.
func comboValid(combo []Span, maxDistance int) bool {
	lo, hi := combo[0].Start, combo[0].End
	for _, s := range combo[1:] {
		if s.Start < lo {
			lo = s.Start
		}
		if s.End > hi {
			hi = s.End
		}
	}
	if hi-lo > maxDistance {
		return false
	}

	for i := range combo {
		for j := range combo {
			if i == j {
				continue
			}
			if contains(combo[j], combo[i]) {
				return false
			}
		}
	}
	return true
}

func contains(outer, inner Span) bool {
	return outer.Start <= inner.Start && inner.End <= outer.End
}

// dedupeAndMergeSpans sorts spans and merges exact duplicates and
// overlapping ranges into their union.
func dedupeAndMergeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})

	merged := []Span{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.Start < last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
