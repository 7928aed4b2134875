package match

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/naokirin/chrome-ext-pattern-lens-sub000/vtl"
)

// Literal finds every occurrence of query in v. The query is compiled to an
// anchor-free regular expression: each run of literal text is escaped with
// regexp.QuoteMeta, and runs of whitespace in the query are collapsed to a
// `\s+` gap so a query typed with one space still matches text the virtual
// text layer reflows across a line break or pads with repeated spaces.
// Matching is case-insensitive unless caseSensitive is set. Matches that
// contain a block boundary marker are discarded.
func Literal(v vtl.VirtualText, query string, caseSensitive bool) ([]Span, error) {
	pattern := literalPattern(query)
	if pattern == "" {
		return nil, nil
	}
	return compileAndFind(v, pattern, caseSensitive)
}

// Regex finds every match of pattern in v, treating it as a
// caller-authored regular expression (not escaped). Matching is
// case-insensitive unless caseSensitive is set. Every unescaped `.` is
// rewritten to a class excluding the block boundary marker and newline
// before compiling, so a greedy `.` or `.*` can never extend a match
// across two distinct block-level regions while searching.
func Regex(v vtl.VirtualText, pattern string, caseSensitive bool) ([]Span, error) {
	return compileAndFind(v, excludeBoundaryFromDot(pattern), caseSensitive)
}

func literalPattern(query string) string {
	fields := strings.Fields(query)
	for i, f := range fields {
		fields[i] = regexp.QuoteMeta(f)
	}
	return strings.Join(fields, `\s+`)
}

// EscapedDotPlaceholder is the opaque sentinel excludeBoundaryFromDot uses
// to shield already-escaped dots (`\.`) while it rewrites every other dot;
// it must not collide with any substring a caller's pattern could contain,
// hence the embedded NUL bytes.
const EscapedDotPlaceholder = "\x00ESCAPED_DOT_PLACEHOLDER\x00"

// boundaryExcludingDotClass replaces the regex metacharacter `.` so it can
// never consume the block boundary marker (or a newline, which `.` already
// excludes by default in Go's regexp but which we keep explicit here for
// clarity alongside the marker exclusion).
const boundaryExcludingDotClass = `[^\x{e000}\n]`

// excludeBoundaryFromDot substitutes every unescaped `.` in pattern with
// boundaryExcludingDotClass, preserving escaped dots (`\.`) unchanged. A
// dot that is free to match the block boundary marker would let `.` or
// `.*` extend a match across two distinct blocks; discarding the whole
// match after the fact (as discardBoundaryCrossing does) is not
// equivalent, since it would also discard a shorter, legitimate match
// that exists wholly within one block.
func excludeBoundaryFromDot(pattern string) string {
	shielded := strings.ReplaceAll(pattern, `\.`, EscapedDotPlaceholder)
	rewritten := strings.ReplaceAll(shielded, ".", boundaryExcludingDotClass)
	return strings.ReplaceAll(rewritten, EscapedDotPlaceholder, `\.`)
}

func compileAndFind(v vtl.VirtualText, pattern string, caseSensitive bool) ([]Span, error) {
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	text := string(v)
	offs := runeByteOffsets(v)

	// FindAllStringIndex already advances past zero-length matches by one
	// rune on its own, so no manual loop is needed here.
	locs := re.FindAllStringIndex(text, -1)

	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		spans = append(spans, Span{
			Start: runeIndexForByte(offs, loc[0]),
			End:   runeIndexForByte(offs, loc[1]),
		})
	}

	return discardBoundaryCrossing(v, spans), nil
}

// runeByteOffsets returns the byte offset of each rune index in v, with a
// trailing sentinel for len(v); entry i is the byte offset at which rune i
// begins in string(v).
func runeByteOffsets(v vtl.VirtualText) []int {
	offs := make([]int, len(v)+1)
	b := 0
	for i, r := range v {
		offs[i] = b
		b += utf8.RuneLen(r)
	}
	offs[len(v)] = b
	return offs
}

// runeIndexForByte converts a byte offset (as returned by the regexp
// package) back into a rune index, via binary search over the monotonic
// offs table built by runeByteOffsets.
func runeIndexForByte(offs []int, b int) int {
	lo, hi := 0, len(offs)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if offs[mid] < b {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
