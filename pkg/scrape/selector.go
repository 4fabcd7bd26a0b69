package scrape

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Selector is a parsed CSS-style selector supporting a useful
// subset of the real grammar: tag names, "#id", ".class", compounds
// like "div.note", and descendant chains like "article p.lead".
type Selector struct {
	parts []simpleSelector
}

type simpleSelector struct {
	tag     string
	id      string
	classes []string
}

// ParseSelector compiles a selector string. It fails on empty input
// and on syntax it does not support (combinators other than
// whitespace, attribute selectors, pseudo-classes).
func ParseSelector(s string) (*Selector, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty selector")
	}

	sel := &Selector{}
	for _, field := range fields {
		if strings.ContainsAny(field, "[>+~:,") {
			return nil, fmt.Errorf("unsupported selector syntax %q (only tag, #id, .class and descendants)", field)
		}
		part, err := parseSimple(field)
		if err != nil {
			return nil, err
		}
		sel.parts = append(sel.parts, part)
	}
	return sel, nil
}

func parseSimple(s string) (simpleSelector, error) {
	var part simpleSelector
	rest := s
	for rest != "" {
		marker := byte(0)
		if rest[0] == '#' || rest[0] == '.' {
			marker = rest[0]
			rest = rest[1:]
		}
		end := strings.IndexAny(rest, "#.")
		if end == -1 {
			end = len(rest)
		}
		name := rest[:end]
		rest = rest[end:]
		if name == "" {
			return simpleSelector{}, fmt.Errorf("malformed selector %q", s)
		}

		switch marker {
		case '#':
			part.id = name
		case '.':
			part.classes = append(part.classes, name)
		default:
			part.tag = strings.ToLower(name)
		}
	}
	return part, nil
}

func (p simpleSelector) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if p.tag != "" && p.tag != n.Data {
		return false
	}
	if p.id != "" && attr(n, "id") != p.id {
		return false
	}
	if len(p.classes) > 0 {
		have := strings.Fields(attr(n, "class"))
		for _, want := range p.classes {
			found := false
			for _, c := range have {
				if c == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

// Find returns the nodes under root matching the selector, in
// document order. Descendant parts match at any depth.
func (s *Selector) Find(root *html.Node) []*html.Node {
	if len(s.parts) == 0 {
		return nil
	}
	current := []*html.Node{root}
	for _, part := range s.parts {
		var next []*html.Node
		for _, scope := range current {
			collectMatches(scope, part, &next)
		}
		current = dedupeNodes(next)
	}
	return current
}

// collectMatches walks the subtree under scope. The scope node
// itself is never a candidate, only its descendants.
func collectMatches(scope *html.Node, part simpleSelector, out *[]*html.Node) {
	for c := scope.FirstChild; c != nil; c = c.NextSibling {
		if part.matches(c) {
			*out = append(*out, c)
		}
		collectMatches(c, part, out)
	}
}

// dedupeNodes drops duplicates that arise when nested scopes both
// contain the same match, preserving first-seen order.
func dedupeNodes(nodes []*html.Node) []*html.Node {
	seen := make(map[*html.Node]bool, len(nodes))
	var out []*html.Node
	for _, n := range nodes {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
