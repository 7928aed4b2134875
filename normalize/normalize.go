package normalize

import "github.com/naokirin/chrome-ext-pattern-lens-sub000/vtl"

// Normalize runs the single left-to-right pass described in the package
// doc: at each position it tries, in order, boundary-marker passthrough,
// digit-run consumption, dakuten/handakuten composition, the ordered
// single-codepoint fold chain, and finally identity copy-through. It
// returns the normalised text N and the mapping μ, where μ[j] is the
// half-open span of v indices that produced N[j].
func Normalize(v []rune) (n []rune, mu []Span) {
	i := 0
	for i < len(v) {
		r := v[i]

		if r == vtl.BlockBoundaryMarker {
			n = append(n, r)
			mu = append(mu, Span{i, i + 1})
			i++
			continue
		}

		if consumed, out := consumeDigitRun(v, i); consumed > 0 {
			for range out {
				mu = append(mu, Span{i, i + consumed})
			}
			n = append(n, out...)
			i += consumed
			continue
		}

		if i+1 < len(v) {
			if combined, ok := composeKana(r, v[i+1]); ok {
				n = append(n, combined)
				mu = append(mu, Span{i, i + 2})
				i += 2
				continue
			}
		}

		if out, ok := foldSingle(r); ok {
			folded := []rune(out)
			for range folded {
				mu = append(mu, Span{i, i + 1})
			}
			n = append(n, folded...)
			i++
			continue
		}

		n = append(n, r)
		mu = append(mu, Span{i, i + 1})
		i++
	}
	return n, mu
}

// ToOriginal inverts a normalised-text span back into the virtual-text
// index range that produced it, using the μ mapping Normalize returned
// alongside N. It returns false for an empty or out-of-range span.
func ToOriginal(mu []Span, span Span) (Span, bool) {
	if span.Start < 0 || span.End > len(mu) || span.Start >= span.End {
		return Span{}, false
	}
	return Span{mu[span.Start].Start, mu[span.End-1].End}, true
}
