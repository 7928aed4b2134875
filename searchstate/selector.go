package searchstate

import (
	"fmt"
	"strings"

	"github.com/naokirin/chrome-ext-pattern-lens-sub000/internal/domtree"
)

// compoundSelector is one simple CSS selector: an optional tag name (empty
// or "*" matches any tag) plus id/class filters, all of which must hold.
type compoundSelector struct {
	tag     string
	id      string
	classes []string
}

func (c compoundSelector) matches(n *domtree.Node) bool {
	if n.Kind != domtree.ElementNode {
		return false
	}
	if c.tag != "" && c.tag != "*" && c.tag != n.Tag {
		return false
	}
	if c.id != "" && c.id != n.ID {
		return false
	}
	nodeClasses := strings.Fields(n.Class)
	for _, want := range c.classes {
		if !containsString(nodeClasses, want) {
			return false
		}
	}
	return true
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// parseCompound parses one whitespace-free selector token like
// "div.item#main" or "*" or ".highlight" into a compoundSelector.
func parseCompound(token string) (compoundSelector, error) {
	var c compoundSelector
	i := 0
	// leading tag name, if any
	start := i
	for i < len(token) && token[i] != '.' && token[i] != '#' {
		i++
	}
	if i > start {
		c.tag = strings.ToUpper(token[start:i])
	}
	for i < len(token) {
		switch token[i] {
		case '.':
			i++
			start := i
			for i < len(token) && token[i] != '.' && token[i] != '#' {
				i++
			}
			if i == start {
				return compoundSelector{}, fmt.Errorf("element selector: empty class name in %q", token)
			}
			c.classes = append(c.classes, token[start:i])
		case '#':
			i++
			start := i
			for i < len(token) && token[i] != '.' && token[i] != '#' {
				i++
			}
			if i == start {
				return compoundSelector{}, fmt.Errorf("element selector: empty id in %q", token)
			}
			c.id = token[start:i]
		default:
			return compoundSelector{}, fmt.Errorf("element selector: unexpected character %q in %q", token[i], token)
		}
	}
	return c, nil
}

// QueryCSS implements a descendant-combinator subset of CSS selectors:
// whitespace-separated compound selectors (tag, #id, .class, any
// combination, "*" wildcard) where each selector after the first must match
// a descendant of some match of the previous one. Sibling combinators,
// attribute selectors, and pseudo-classes are not supported.
func QueryCSS(root *domtree.Node, selector string) ([]*domtree.Node, error) {
	tokens := strings.Fields(selector)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("element selector: empty selector")
	}

	compounds := make([]compoundSelector, len(tokens))
	for i, tok := range tokens {
		c, err := parseCompound(tok)
		if err != nil {
			return nil, err
		}
		compounds[i] = c
	}

	candidates := []*domtree.Node{root}
	for _, c := range compounds {
		var next []*domtree.Node
		seen := map[*domtree.Node]bool{}
		for _, anchor := range candidates {
			for _, n := range descendants(anchor) {
				if c.matches(n) && !seen[n] {
					seen[n] = true
					next = append(next, n)
				}
			}
		}
		candidates = next
		if len(candidates) == 0 {
			break
		}
	}
	return candidates, nil
}

func descendants(n *domtree.Node) []*domtree.Node {
	var out []*domtree.Node
	var walk func(*domtree.Node)
	walk = func(cur *domtree.Node) {
		for _, c := range cur.Children() {
			out = append(out, c)
			walk(c)
		}
	}
	walk(n)
	return out
}

// QueryXPath implements a single-step subset of XPath: "//tag",
// "//*", optionally with one predicate "[@id='value']" or
// "[@class='value']". Multi-step paths and other axes are not supported.
func QueryXPath(root *domtree.Node, expr string) ([]*domtree.Node, error) {
	expr = strings.TrimSpace(expr)
	if !strings.HasPrefix(expr, "//") {
		return nil, fmt.Errorf("element selector: xpath expression must start with //, got %q", expr)
	}
	step := expr[2:]

	var tag, attr, value string
	if br := strings.IndexByte(step, '['); br >= 0 {
		if !strings.HasSuffix(step, "]") {
			return nil, fmt.Errorf("element selector: unterminated predicate in %q", expr)
		}
		tag = step[:br]
		pred := step[br+1 : len(step)-1]
		var err error
		attr, value, err = parseXPathPredicate(pred)
		if err != nil {
			return nil, err
		}
	} else {
		tag = step
	}

	if tag == "" {
		return nil, fmt.Errorf("element selector: missing tag name in %q", expr)
	}

	var out []*domtree.Node
	for _, n := range descendants(root) {
		if n.Kind != domtree.ElementNode {
			continue
		}
		if tag != "*" && strings.ToUpper(tag) != n.Tag {
			continue
		}
		switch attr {
		case "":
		case "id":
			if n.ID != value {
				continue
			}
		case "class":
			if !containsString(strings.Fields(n.Class), value) {
				continue
			}
		default:
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func parseXPathPredicate(pred string) (attr, value string, err error) {
	pred = strings.TrimSpace(pred)
	if !strings.HasPrefix(pred, "@") {
		return "", "", fmt.Errorf("element selector: only attribute predicates are supported, got %q", pred)
	}
	eq := strings.IndexByte(pred, '=')
	if eq < 0 {
		return "", "", fmt.Errorf("element selector: malformed predicate %q", pred)
	}
	attr = pred[1:eq]
	raw := strings.TrimSpace(pred[eq+1:])
	if len(raw) < 2 || (raw[0] != '\'' && raw[0] != '"') || raw[len(raw)-1] != raw[0] {
		return "", "", fmt.Errorf("element selector: predicate value must be quoted, got %q", raw)
	}
	return attr, raw[1 : len(raw)-1], nil
}
