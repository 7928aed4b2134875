package normalize

import "unicode"

// foldSingle runs the ordered single-codepoint fold chain: full-width
// letter, superscript/subscript/circled numeral, katakana→hiragana, symbol
// table, ASCII upper→lower, accent table. The first entry to match wins;
// callers fall back to copying r through unchanged if none match.
//
// Full-width and kanji digits are not handled here: Normalize always tries
// consumeDigitRun first, so any digit codepoint is already consumed by the
// time foldSingle runs.
func foldSingle(r rune) (string, bool) {
	if out, ok := foldFullWidthLetter(r); ok {
		return out, true
	}
	if out, ok := superSubCircledDigits[r]; ok {
		return out, true
	}
	if h, ok := katakanaToHiragana(r); ok {
		return string(h), true
	}
	if out, ok := symbolTable[r]; ok {
		return out, true
	}
	if r >= 'A' && r <= 'Z' {
		return string(r + 32), true
	}
	if out, ok := accentTable[r]; ok {
		return out, true
	}
	return "", false
}

// foldFullWidthLetter folds full-width Latin letters (U+FF21-FF3A,
// U+FF41-FF5A) to their lower-case ASCII equivalent.
func foldFullWidthLetter(r rune) (string, bool) {
	switch {
	case r >= 'Ａ' && r <= 'Ｚ':
		return string(rune('a' + (r - 'Ａ'))), true
	case r >= 'ａ' && r <= 'ｚ':
		return string(rune('a' + (r - 'ａ'))), true
	}
	return "", false
}

// foldSingleBase runs the same ordered chain as foldSingle but is used by
// query expansion to classify a single query codepoint's normalised base
// letter. Where foldSingle reports no fold (plain ASCII lower-case letters
// among them), it returns r itself.
func foldSingleBase(r rune) string {
	if out, ok := foldSingle(r); ok {
		return out
	}
	if r >= 'a' && r <= 'z' {
		return string(r)
	}
	if unicode.IsLower(r) {
		return string(r)
	}
	return string(r)
}
