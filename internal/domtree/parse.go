package domtree

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// defaultDisplay approximates the user-agent stylesheet's default `display`
// for common tags. A real extension reads window.getComputedStyle instead;
// this table only backs the CLI harness and tests.
var defaultDisplay = map[string]string{
	"DIV": "block", "P": "block", "SECTION": "block", "ARTICLE": "block",
	"HEADER": "block", "FOOTER": "block", "NAV": "block", "MAIN": "block",
	"ASIDE": "block", "FIGURE": "block", "FIGCAPTION": "block",
	"UL": "block", "OL": "block", "LI": "list-item", "DL": "block",
	"DT": "block", "DD": "block", "BLOCKQUOTE": "block", "PRE": "block",
	"FORM": "block", "FIELDSET": "block", "ADDRESS": "block",
	"H1": "block", "H2": "block", "H3": "block", "H4": "block", "H5": "block", "H6": "block",
	"TABLE": "table", "TR": "table-row", "TD": "table-cell", "TH": "table-cell",
	"TBODY": "table-row-group", "THEAD": "table-row-group", "TFOOT": "table-row-group",
	"HTML": "block", "BODY": "block",
}

// Parse turns an HTML document into a domtree for the VTL builder to walk.
// It never fails on malformed markup — golang.org/x/net/html repairs it the
// way a browser would — but returns an error if the reader itself fails.
func Parse(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return convert(doc, nil), nil
}

func convert(n *html.Node, parent *Node) *Node {
	switch n.Type {
	case html.TextNode:
		out := &Node{Kind: TextNode, Text: n.Data, Parent: parent}
		return out
	case html.ElementNode:
		tag := strings.ToUpper(n.Data)
		out := &Node{Kind: ElementNode, Tag: tag, Parent: parent}
		out.Style.Display = defaultDisplay[tag]
		if out.Style.Display == "" {
			out.Style.Display = "inline"
		}
		out.Style.Visibility = "visible"
		for _, a := range n.Attr {
			switch strings.ToLower(a.Key) {
			case "id":
				out.ID = a.Val
			case "class":
				out.Class = a.Val
			case "style":
				applyInlineStyle(out, a.Val)
			}
		}
		if tag == "SCRIPT" || tag == "STYLE" || tag == "NOSCRIPT" || tag == "TEMPLATE" {
			out.Style.Display = "none"
		}
		var prev *Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			cn := convert(c, out)
			if cn == nil {
				continue
			}
			if prev == nil {
				out.FirstChild = cn
			} else {
				prev.NextSib = cn
			}
			prev = cn
		}
		return out
	default:
		// document/comment/doctype nodes: splice children into parent's level
		var first, prev *Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			cn := convert(c, parent)
			if cn == nil {
				continue
			}
			if first == nil {
				first = cn
			}
			if prev != nil {
				prev.NextSib = cn
			}
			prev = cn
		}
		return first
	}
}

// applyInlineStyle parses the handful of style declarations the visibility
// and block-level predicates in vtl care about: display and visibility.
func applyInlineStyle(n *Node, style string) {
	for _, decl := range strings.Split(style, ";") {
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(parts[0]))
		val := strings.ToLower(strings.TrimSpace(parts[1]))
		switch prop {
		case "display":
			n.Style.Display = val
		case "visibility":
			n.Style.Visibility = val
		}
	}
}
