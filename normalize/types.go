// Package normalize implements a Unicode normaliser: width folding, case
// folding, katakana→hiragana, combining dakuten/handakuten composition,
// accented-letter folding (including multi-character expansions such as
// ä→ae and ß→ss), and number-separator canonicalisation. It emits both the
// normalised text and a position mapping back to the original codepoint
// indices.
//
// Normalize (normalize.go) tries one ordered list of steps per position:
// boundary passthrough, digit-run consumption, kana composition, then the
// single-codepoint fold chain in fold.go; the first success wins. This
// replaces what a straight-line sequence of string.Replace calls would
// otherwise become: an ordered chain makes the precedence between, say,
// digit-run consumption and kana composition explicit instead of
// accidental.
package normalize

// Span is a half-open range into the virtual text: a normalisation mapping
// entry.
type Span struct {
	Start, End int
}

// Len reports the number of virtual-text positions this span covers.
func (s Span) Len() int { return s.End - s.Start }
