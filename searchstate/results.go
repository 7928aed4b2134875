package searchstate

import (
	"strings"

	"github.com/naokirin/chrome-ext-pattern-lens-sub000/internal/domtree"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/vtl"
)

// getResultsList builds one ResultItem per active match (or element),
// with context gathered up to contextLength codepoints on each side.
// contextLength is clamped to [MIN, MAX] here, since get_results_list is
// always an external-caller action; an internal caller that wants no
// context would call a lower-level helper directly instead.
func (m *Machine) getResultsList(contextLength int) Response {
	n := m.resultCount()
	length := contextLength
	if length <= 0 {
		length = m.config.DefaultResultsListContextLength
	}
	length = m.config.clampContextLength(length)

	items := make([]ResultItem, n)
	for i := 0; i < n; i++ {
		if m.query.UseElementSearch {
			items[i] = elementResultItem(i, m.elements[i], length)
			continue
		}
		items[i] = textResultItem(i, m.matches[i], m.virtualText, length)
	}

	return Response{Ok: true, Items: items, TotalMatches: n}
}

func textResultItem(index int, rec MatchRecord, v vtl.VirtualText, contextLength int) ResultItem {
	start, end := rec.SpanInV.Start, rec.SpanInV.End
	matchedText := string(v[start:end])
	before, after := gatherContext(v, start, end, contextLength)
	return ResultItem{
		Index:         index,
		MatchedText:   matchedText,
		ContextBefore: before,
		ContextAfter:  after,
		FullText:      before + matchedText + after,
	}
}

func elementResultItem(index int, ref ElementRef, contextLength int) ResultItem {
	content := strings.TrimSpace(textContent(ref.Node))
	return ResultItem{
		Index:       index,
		MatchedText: elementTag(ref.Node),
		FullText:    elementTag(ref.Node) + " " + truncateRunes(content, contextLength) + "…",
	}
}

// gatherContext extends backward and forward from [start, end) over v, up
// to length codepoints each way, stopping at a block boundary marker: a
// match's context should never bleed in text from an unrelated block.
func gatherContext(v vtl.VirtualText, start, end, length int) (before, after string) {
	b := start
	for b > 0 && start-b < length && v[b-1] != vtl.BlockBoundaryMarker {
		b--
	}
	before = string(v[b:start])

	a := end
	for a < len(v) && a-end < length && v[a] != vtl.BlockBoundaryMarker {
		a++
	}
	after = string(v[end:a])
	return before, after
}

// elementTag renders "<tag#id.class1.class2>" for an element-search result.
func elementTag(n *domtree.Node) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(strings.ToLower(n.Tag))
	if n.ID != "" {
		b.WriteByte('#')
		b.WriteString(n.ID)
	}
	for _, c := range strings.Fields(n.Class) {
		b.WriteByte('.')
		b.WriteString(c)
	}
	b.WriteByte('>')
	return b.String()
}

// textContent concatenates the text of every descendant text node, in
// document order.
func textContent(n *domtree.Node) string {
	if n == nil {
		return ""
	}
	if n.Kind == domtree.TextNode {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children() {
		b.WriteString(textContent(c))
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n])
}
