package normalize

// maxQueryExpansions bounds the Cartesian product ExpandQuery can produce,
// so a query packed with many expandable letters (e.g. "sasasasas") cannot
// blow up combinatorially; expansion beyond this count is dropped silently
// in favour of the unexpanded query, which still matches literally.
const maxQueryExpansions = 256

// substitutionSpellings maps a query codepoint's normalised base letter to
// the ASCII spelling and its German-style substitution spelling.
var substitutionSpellings = map[string][]string{
	"a": {"a", "ae"},
	"o": {"o", "oe"},
	"u": {"u", "ue"},
	"s": {"s", "ss"},
}

// HasMultiCodepointAccent reports whether query contains a codepoint whose
// fold expands to more than one ASCII letter (ä, ö, ü, ß, œ, æ and their
// upper-case forms). When true, ExpandQuery returns the query unexpanded:
// a user who already typed the accented letter does not need the
// substitution-spelling variants as well.
func HasMultiCodepointAccent(query []rune) bool {
	for _, r := range query {
		if multiCodepointAccents[r] {
			return true
		}
	}
	return false
}

// ExpandQuery returns the Cartesian product of substitution-spelling
// variants for a query with no multi-codepoint accented letter: each
// codepoint whose normalised base is a, o, u, or s is expanded to both the
// plain letter and its substitution spelling (a→{a,ae}, o→{o,oe}, u→{u,ue},
// s→{s,ss}); all others pass through unchanged. If HasMultiCodepointAccent
// is true, or the product would exceed maxQueryExpansions, ExpandQuery
// returns just the original query.
//
// ExpandQuery decides and expands from the same slice; callers who already
// hold a separately-normalised query (so the accent signal in the raw
// query would otherwise be lost to folding before this runs) should use
// ExpandQueryFrom instead.
func ExpandQuery(query []rune) [][]rune {
	return ExpandQueryFrom(query, query)
}

// ExpandQueryFrom is ExpandQuery split into its two inputs: rawQuery is
// consulted only for the HasMultiCodepointAccent gate (a query holding a
// literal ä/ö/ü/ß/œ/æ must still read as accented even after rawQuery has
// since been folded into normalisedQuery for matching); normalisedQuery is
// what the substitution-spelling candidates are actually built from, so
// matching still happens in the coordinate space the source text was
// normalised into (digit-run grouping, kana composition, and the rest of
// the fold chain already applied).
func ExpandQueryFrom(rawQuery, normalisedQuery []rune) [][]rune {
	if HasMultiCodepointAccent(rawQuery) {
		return [][]rune{normalisedQuery}
	}

	candidates := make([][]string, len(normalisedQuery))
	total := 1
	for i, r := range normalisedQuery {
		base := foldSingleBase(r)
		if opts, ok := substitutionSpellings[base]; ok {
			candidates[i] = opts
		} else {
			candidates[i] = []string{string(r)}
		}
		total *= len(candidates[i])
	}

	if total <= 0 || total > maxQueryExpansions {
		return [][]rune{normalisedQuery}
	}

	return cartesianProduct(candidates)
}

// RequiredAccentRunes reports, for each position in a normalised query qn
// (with qmu the position map Normalize returned alongside it), the
// original accented rune from rawQuery that position was folded from, or 0
// if that position did not come from a multi-codepoint accent fold. A
// fuzzy match is only restricted to the literal accented spelling at
// positions where this is nonzero.
func RequiredAccentRunes(rawQuery []rune, qn []rune, qmu []Span) []rune {
	required := make([]rune, len(qn))
	for k := range qn {
		span := qmu[k]
		if span.End-span.Start != 1 {
			continue
		}
		r := rawQuery[span.Start]
		if multiCodepointAccents[r] {
			required[k] = r
		}
	}
	return required
}

func cartesianProduct(candidates [][]string) [][]rune {
	results := [][]rune{{}}
	for _, options := range candidates {
		var next [][]rune
		for _, prefix := range results {
			for _, opt := range options {
				combined := append(append([]rune{}, prefix...), []rune(opt)...)
				next = append(next, combined)
			}
		}
		results = next
	}
	return results
}
