package memdom

import "strings"

// Query returns the first descendant of n matching sel, or nil.
// Supported selectors are tag, #id, .class and combinations such as
// p.note or div#root.
func (n *Node) Query(sel string) *Node {
	m := parseSelector(sel)
	var found *Node
	n.walkUntil(func(c *Node) bool {
		if m.match(c) {
			found = c
			return true
		}
		return false
	})
	return found
}

// QueryAll returns every descendant of n matching sel in document order.
func (n *Node) QueryAll(sel string) []*Node {
	m := parseSelector(sel)
	var out []*Node
	n.walk(func(c *Node) {
		if m.match(c) {
			out = append(out, c)
		}
	})
	return out
}

func (n *Node) walkUntil(fn func(*Node) bool) bool {
	for _, c := range n.Children {
		if fn(c) || c.walkUntil(fn) {
			return true
		}
	}
	return false
}

type selector struct {
	tag     string
	id      string
	classes []string
}

func parseSelector(sel string) selector {
	var s selector
	sel = strings.TrimSpace(sel)
	cut := strings.IndexAny(sel, "#.")
	if cut < 0 {
		s.tag = sel
		return s
	}
	s.tag = sel[:cut]
	rest := sel[cut:]
	for rest != "" {
		kind := rest[0]
		rest = rest[1:]
		end := strings.IndexAny(rest, "#.")
		if end < 0 {
			end = len(rest)
		}
		part := rest[:end]
		rest = rest[end:]
		if kind == '#' {
			s.id = part
		} else {
			s.classes = append(s.classes, part)
		}
	}
	return s
}

func (s selector) match(n *Node) bool {
	if n.Type != ElementNode {
		return false
	}
	if s.tag != "" && s.tag != n.Tag {
		return false
	}
	if s.id != "" && n.attrs["id"] != s.id {
		return false
	}
	if len(s.classes) > 0 {
		have := strings.Fields(n.attrs["class"])
		for _, want := range s.classes {
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
