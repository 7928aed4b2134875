package vtl

import (
	"strings"
	"testing"

	"github.com/naokirin/chrome-ext-pattern-lens-sub000/internal/domtree"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/internal/perftune"
)

func parse(t *testing.T, html string) *domtree.Node {
	t.Helper()
	root, err := domtree.Parse(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return root
}

func budget(t *testing.T) perftune.Budget {
	t.Helper()
	return perftune.Budget{NodeCeiling: 100_000, DepthCeiling: 1000, MaxCombinations: 10_000}
}

func TestBuildNoAdjacentBoundaryMarkers(t *testing.T) {
	root := parse(t, `<p>first</p><p>second</p>`)
	V, M := Build(root, "", budget(t))

	for i := 1; i < len(V); i++ {
		if V[i] == BlockBoundaryMarker && V[i-1] == BlockBoundaryMarker {
			t.Fatalf("adjacent boundary markers at %d", i)
		}
	}
	if len(V) > 0 && V[0] == BlockBoundaryMarker {
		t.Fatal("leading boundary marker")
	}
	if len(V) > 0 && V[len(V)-1] == BlockBoundaryMarker {
		t.Fatal("trailing boundary marker")
	}
	for i, m := range M {
		if (V[i] == BlockBoundaryMarker) != (m.Kind == BlockBoundary) {
			t.Fatalf("M[%d].Kind=%v but V[%d]==marker is %v", i, m.Kind, i, V[i] == BlockBoundaryMarker)
		}
	}
}

// two paragraphs insert a boundary marker between them so a literal search
// spanning the gap never matches across the paragraph break.
func TestBuildParagraphBoundaryPreventsCrossMatch(t *testing.T) {
	root := parse(t, `<p>end of first</p><p>start of second</p>`)
	V, _ := Build(root, "", budget(t))

	s := string(V)
	if !strings.Contains(s, string(BlockBoundaryMarker)) {
		t.Fatalf("expected a boundary marker between paragraphs, got %q", s)
	}
	if strings.Contains(s, "firststart") {
		t.Fatalf("paragraphs concatenated without boundary: %q", s)
	}
}

// adjacent inline spans concatenate without any boundary marker.
func TestBuildInlineSpansConcatenateWithoutBoundary(t *testing.T) {
	root := parse(t, `<p><span>mkdir</span><span>-p</span></p>`)
	V, _ := Build(root, "", budget(t))

	s := string(V)
	if s != "mkdir-p" {
		t.Fatalf("got %q, want %q", s, "mkdir-p")
	}
}

func TestBuildSkipsHiddenSubtrees(t *testing.T) {
	root := parse(t, `<div style="display:none">hidden</div><p>visible</p>`)
	V, _ := Build(root, "", budget(t))

	s := string(V)
	if strings.Contains(s, "hidden") {
		t.Fatalf("hidden text leaked into virtual text: %q", s)
	}
	if !strings.Contains(s, "visible") {
		t.Fatalf("visible text missing: %q", s)
	}
}

func TestBuildSkipsScriptAndStyle(t *testing.T) {
	root := parse(t, `<script>var x = "should not appear";</script><style>.a{color:red}</style><p>kept</p>`)
	V, _ := Build(root, "", budget(t))

	s := string(V)
	if strings.Contains(s, "should not appear") || strings.Contains(s, "color:red") {
		t.Fatalf("script/style content leaked: %q", s)
	}
	if s != "kept" {
		t.Fatalf("got %q, want %q", s, "kept")
	}
}

func TestBuildRespectsIgnoreID(t *testing.T) {
	root := parse(t, `<div id="overlay-root"><p>overlay text</p></div><p>page text</p>`)
	V, _ := Build(root, "overlay-root", budget(t))

	s := string(V)
	if strings.Contains(s, "overlay text") {
		t.Fatalf("ignored subtree leaked: %q", s)
	}
	if !strings.Contains(s, "page text") {
		t.Fatalf("page text missing: %q", s)
	}
}

func TestBuildCharMapRoundTrip(t *testing.T) {
	root := parse(t, `<p>hello world</p>`)
	V, M := Build(root, "", budget(t))

	if len(V) != len(M) {
		t.Fatalf("len(V)=%d != len(M)=%d", len(V), len(M))
	}
	for i, m := range M {
		if m.Kind != TextRef {
			continue
		}
		runes := []rune(m.Node.Text)
		if m.Offset < 0 || m.Offset >= len(runes) {
			t.Fatalf("M[%d] offset %d out of range for node text %q", i, m.Offset, m.Node.Text)
		}
		if runes[m.Offset] != V[i] {
			t.Fatalf("M[%d] points at %q, V[%d] is %q", i, runes[m.Offset], i, V[i])
		}
	}
}

func TestBuildNodeCeilingTruncates(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<div>")
	for i := 0; i < 50; i++ {
		sb.WriteString("<p>x</p>")
	}
	sb.WriteString("</div>")
	root := parse(t, sb.String())

	tight := perftune.Budget{NodeCeiling: 10, DepthCeiling: 1000, MaxCombinations: 10_000}
	V, M := Build(root, "", tight)
	if len(V) == 0 {
		t.Fatal("expected partial output under a tight node ceiling, got none")
	}
	if len(V) != len(M) {
		t.Fatalf("len(V)=%d != len(M)=%d after truncation", len(V), len(M))
	}
}

func TestBuildEmptyRoot(t *testing.T) {
	V, M := Build(nil, "", budget(t))
	if len(V) != 0 || len(M) != 0 {
		t.Fatalf("expected empty output for nil root, got V=%v M=%v", V, M)
	}
}
