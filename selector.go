package reveal

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrInvalidSelector is wrapped by selector parse errors.
var ErrInvalidSelector = errors.New("reveal: invalid selector")

// Selector matches nodes by name, class and ancestry.
//
//	card            Name matches the glob "card" (path.Match syntax)
//	*               any node
//	#pricing        Name is exactly "pricing"
//	.feature.wide   carries both classes
//	#list > .item   child combinator
//	#page .item     descendant combinator
//	.a, .b          either selector
//
// Ancestor matching never looks above the scope node passed to Match or
// Select; the scope itself may match an ancestor compound.
type Selector struct {
	source string
	groups []complexSelector
}

type combinator uint8

const (
	combDescendant combinator = iota
	combChild
)

type compound struct {
	glob    string // empty or "*" matches any name
	id      string
	classes []string
}

// complexSelector is a chain of compounds; combs[i] joins parts[i] and parts[i+1].
type complexSelector struct {
	parts []compound
	combs []combinator
}

// ParseSelector compiles a selector string.
func ParseSelector(s string) (*Selector, error) {
	sel := &Selector{source: s}
	for _, group := range strings.Split(s, ",") {
		cx, err := parseComplex(strings.TrimSpace(group))
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, s, err)
		}
		sel.groups = append(sel.groups, cx)
	}
	return sel, nil
}

// MustParseSelector is like ParseSelector but panics on error.
func MustParseSelector(s string) *Selector {
	sel, err := ParseSelector(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// String returns the source text.
func (sel *Selector) String() string {
	return sel.source
}

func parseComplex(s string) (complexSelector, error) {
	var cx complexSelector
	if s == "" {
		return cx, errors.New("empty selector")
	}
	pending := combDescendant
	haveComb := false
	i := 0
	for i < len(s) {
		switch c := s[i]; {
		case c == ' ' || c == '\t' || c == '\n':
			i++
			if len(cx.parts) > 0 {
				haveComb = true
			}
		case c == '>':
			if len(cx.parts) == 0 {
				return cx, errors.New("combinator without left operand")
			}
			if haveComb && pending == combChild {
				return cx, errors.New("repeated '>'")
			}
			pending = combChild
			haveComb = true
			i++
		default:
			comp, n, err := parseCompound(s[i:])
			if err != nil {
				return cx, err
			}
			if len(cx.parts) > 0 {
				if !haveComb {
					return cx, fmt.Errorf("unexpected %q", s[i:i+n])
				}
				cx.combs = append(cx.combs, pending)
			}
			cx.parts = append(cx.parts, comp)
			pending = combDescendant
			haveComb = false
			i += n
		}
	}
	if haveComb && pending == combChild {
		return cx, errors.New("dangling '>'")
	}
	return cx, nil
}

// parseCompound reads one compound from the start of s and returns the
// number of bytes consumed.
func parseCompound(s string) (compound, int, error) {
	var comp compound
	i := 0
	start := i
	for i < len(s) && isGlobByte(s[i]) {
		i++
	}
	if i > start {
		comp.glob = s[start:i]
		if _, err := path.Match(comp.glob, ""); err != nil {
			return comp, i, fmt.Errorf("name pattern %q: %v", comp.glob, err)
		}
	}
	for i < len(s) && (s[i] == '#' || s[i] == '.') {
		marker := s[i]
		i++
		start = i
		for i < len(s) && isIdentByte(s[i]) {
			i++
		}
		if i == start {
			return comp, i, fmt.Errorf("empty name after %q", marker)
		}
		if marker == '#' {
			if comp.id != "" {
				return comp, i, errors.New("multiple #names in one compound")
			}
			comp.id = s[start:i]
		} else {
			comp.classes = append(comp.classes, s[start:i])
		}
	}
	if i == 0 {
		return comp, 0, fmt.Errorf("unexpected %q", s[:1])
	}
	return comp, i, nil
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-' || c == '_'
}

func isGlobByte(c byte) bool {
	return isIdentByte(c) || c == '*' || c == '?' || c == '[' || c == ']' || c == '^'
}

func (c *compound) matches(n *Node) bool {
	if c.id != "" && n.Name != c.id {
		return false
	}
	if c.glob != "" && c.glob != "*" {
		if ok, _ := path.Match(c.glob, n.Name); !ok {
			return false
		}
	}
	for _, class := range c.classes {
		if !n.HasClass(class) {
			return false
		}
	}
	return true
}

// Match reports whether n matches the selector with ancestry confined to
// scope. The scope itself never matches as the subject.
func (sel *Selector) Match(n, scope *Node) bool {
	if n == nil || n == scope || !isAncestor(scope, n) {
		return false
	}
	for i := range sel.groups {
		cx := &sel.groups[i]
		if cx.matchAt(n, len(cx.parts)-1, scope) {
			return true
		}
	}
	return false
}

func (cx *complexSelector) matchAt(n *Node, idx int, scope *Node) bool {
	if !cx.parts[idx].matches(n) {
		return false
	}
	if idx == 0 {
		return true
	}
	if n == scope {
		return false
	}
	switch cx.combs[idx-1] {
	case combChild:
		return n.Parent != nil && cx.matchAt(n.Parent, idx-1, scope)
	default:
		for p := n.Parent; p != nil; p = p.Parent {
			if cx.matchAt(p, idx-1, scope) {
				return true
			}
			if p == scope {
				break
			}
		}
		return false
	}
}

// Select returns every descendant of scope matching the selector, in
// document (pre-order) order.
func (sel *Selector) Select(scope *Node) []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, child := range n.children {
			if sel.Match(child, scope) {
				out = append(out, child)
			}
			walk(child)
		}
	}
	if scope != nil {
		walk(scope)
	}
	return out
}

// First returns the first match under scope in document order, or nil.
func (sel *Selector) First(scope *Node) *Node {
	if m := sel.Select(scope); len(m) > 0 {
		return m[0]
	}
	return nil
}
