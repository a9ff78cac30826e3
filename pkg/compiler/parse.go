package compiler

import (
	"strings"

	"github.com/vango-dev/minivue/internal/errors"
)

const (
	openDelimiter  = "{{"
	closeDelimiter = "}}"
)

type parser struct {
	template string
	offset   int
	// ancestors is the stack of open elements.
	ancestors []*Node
}

// BaseParse parses template into a Root node. Errors are *errors.Error
// values carrying the template line and column.
func BaseParse(template string) (*Node, error) {
	p := &parser{template: template}
	children, err := p.parseChildren()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		// Only an end tag without a matching open element stops the
		// top-level loop early.
		return nil, p.errorf("C002", p.offset, "unexpected %s", p.peekTag())
	}
	return &Node{Type: NodeRoot, Children: children, Loc: p.pos(0)}, nil
}

func (p *parser) source() string { return p.template[p.offset:] }

func (p *parser) eof() bool { return p.offset >= len(p.template) }

func (p *parser) advance(n int) { p.offset += n }

func (p *parser) parseChildren() ([]*Node, error) {
	var nodes []*Node
	for !p.isEnd() {
		s := p.source()
		var (
			node *Node
			err  error
		)
		switch {
		case strings.HasPrefix(s, openDelimiter):
			node, err = p.parseInterpolation()
		case strings.HasPrefix(s, "</"):
			if len(p.ancestors) == 0 {
				return nodes, nil
			}
			return nil, p.errorf("C002", p.offset, "%s does not close <%s>", p.peekTag(), p.ancestors[len(p.ancestors)-1].Tag)
		case len(s) > 1 && s[0] == '<' && isLetter(s[1]):
			node, err = p.parseElement()
		default:
			node = p.parseText()
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// isEnd reports whether the source is exhausted or starts with the end tag
// of any open element.
func (p *parser) isEnd() bool {
	s := p.source()
	if strings.HasPrefix(s, "</") {
		for i := len(p.ancestors) - 1; i >= 0; i-- {
			if startsWithEndTagOpen(s, p.ancestors[i].Tag) {
				return true
			}
		}
	}
	return s == ""
}

func startsWithEndTagOpen(s, tag string) bool {
	return strings.HasPrefix(s, "</") &&
		len(s) >= 2+len(tag) &&
		strings.EqualFold(s[2:2+len(tag)], tag)
}

func (p *parser) parseText() *Node {
	start := p.offset
	s := p.source()
	end := len(s)
	// A '<' that does not open a tag is text; search past it.
	from := 0
	if s[0] == '<' {
		from = 1
	}
	for _, tok := range []string{openDelimiter, "<"} {
		if i := strings.Index(s[from:], tok); i >= 0 && from+i < end {
			end = from + i
		}
	}
	p.advance(end)
	return &Node{Type: NodeText, Content: s[:end], Loc: p.pos(start)}
}

func (p *parser) parseInterpolation() (*Node, error) {
	start := p.offset
	s := p.source()
	closeIndex := strings.Index(s[len(openDelimiter):], closeDelimiter)
	if closeIndex < 0 {
		return nil, p.errorf("C003", start, "missing %s", closeDelimiter)
	}
	raw := s[len(openDelimiter) : len(openDelimiter)+closeIndex]
	content := strings.TrimSpace(raw)
	if content == "" {
		return nil, p.errorf("C005", start, "")
	}
	p.advance(len(openDelimiter) + closeIndex + len(closeDelimiter))
	return &Node{
		Type: NodeInterpolation,
		Expr: &Node{Type: NodeSimpleExpression, Content: content, Loc: p.pos(start + len(openDelimiter))},
		Loc:  p.pos(start),
	}, nil
}

func (p *parser) parseElement() (*Node, error) {
	start := p.offset
	tag, err := p.parseTag(false)
	if err != nil {
		return nil, err
	}
	el := &Node{Type: NodeElement, Tag: tag, Loc: p.pos(start)}

	p.ancestors = append(p.ancestors, el)
	children, err := p.parseChildren()
	p.ancestors = p.ancestors[:len(p.ancestors)-1]
	if err != nil {
		return nil, err
	}
	el.Children = children

	if !startsWithEndTagOpen(p.source(), tag) {
		return nil, p.errorf("C001", start, "<%s> is never closed", tag)
	}
	if _, err := p.parseTag(true); err != nil {
		return nil, err
	}
	return el, nil
}

// parseTag consumes <tag> or </tag> and returns the tag name.
func (p *parser) parseTag(end bool) (string, error) {
	start := p.offset
	s := p.source()
	i := 1
	if end {
		i = 2
	}
	nameStart := i
	for i < len(s) && isTagChar(s[i]) {
		i++
	}
	if i == nameStart || i >= len(s) || s[i] != '>' {
		return "", p.errorf("C004", start, "near %q", clip(s, 16))
	}
	p.advance(i + 1)
	return s[nameStart:i], nil
}

func (p *parser) peekTag() string {
	s := p.source()
	if i := strings.IndexByte(s, '>'); i >= 0 {
		return s[:i+1]
	}
	return clip(s, 16)
}

// pos converts a byte offset into a Position.
func (p *parser) pos(offset int) Position {
	line, col := 1, 1
	for _, r := range p.template[:offset] {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Offset: offset, Line: line, Column: col}
}

func (p *parser) errorf(code string, offset int, format string, args ...any) error {
	pos := p.pos(offset)
	e := errors.New(code).WithSource("template", p.template, pos.Line, pos.Column)
	if format != "" {
		e = e.WithDetailf(format, args...)
	}
	return e
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isTagChar(c byte) bool {
	return isLetter(c) || c >= '0' && c <= '9' || c == '-'
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
