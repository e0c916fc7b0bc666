// Package ast defines the compiled in-memory representation of a template:
// a tree of parts.  Rendering a template is a walk of this tree.
package ast

import (
	"bytes"
	"fmt"
	"strconv"
)

// Node represents any singular piece of a template: a span of raw text, an
// echo directive, a conditional, and so on.
type Node interface {
	String() string // String returns the canonical source form of this node.
	Position() Pos  // byte position of start of node in the original input
}

// ParentNode is any Node with descendent nodes.
type ParentNode interface {
	Node
	Children() []Node
}

// Pos represents a byte position in the original input text from which this
// template was parsed.  It is useful to construct helpful error messages.
type Pos int

// Position returns this position.  It is implemented as a method so that
// nodes may embed a Pos and fulfill this part of the Node interface for free.
func (p Pos) Position() Pos {
	return p
}

// ListNode holds a sequence of parts, rendered in document order.  It is the
// root of every template and the body of every block directive.
type ListNode struct {
	Pos
	Nodes []Node // the element nodes, in lexical order
}

func (l *ListNode) String() string {
	var b bytes.Buffer
	for _, n := range l.Nodes {
		fmt.Fprint(&b, n)
	}
	return b.String()
}

func (l *ListNode) Children() []Node {
	return l.Nodes
}

// RawTextNode is a literal span of template text, copied verbatim to output.
type RawTextNode struct {
	Pos
	Text string // may span newlines
}

func (t *RawTextNode) String() string {
	return t.Text
}

// EchoNode writes the value found at a query path, or nothing if absent.
type EchoNode struct {
	Pos
	Query string
}

func (n *EchoNode) String() string {
	return "<?= " + n.Query + " ?>"
}

// GuardKind selects how a conditional branch's guard evaluates.
type GuardKind int

const (
	// GuardTruthy passes when the query resolves to a truthy value.
	GuardTruthy GuardKind = iota
	// GuardExists passes when the query resolves to any present value,
	// truthy or not.
	GuardExists
	// GuardElse always passes.  It carries no query.
	GuardElse
)

// CondNode is one (guard, body) branch of a conditional.
type CondNode struct {
	Pos
	Kind  GuardKind
	Query string // empty for GuardElse
	Body  *ListNode
}

func (n *CondNode) Children() []Node {
	return []Node{n.Body}
}

func (n *CondNode) String() string {
	switch n.Kind {
	case GuardExists:
		return "<? ifexist " + n.Query + " ?>" + n.Body.String()
	case GuardElse:
		return "<? else ?>" + n.Body.String()
	default:
		return "<? if " + n.Query + " ?>" + n.Body.String()
	}
}

// IfNode dispatches to the body of the first branch whose guard passes.
// An else branch, when present, is a trailing GuardElse condition.
type IfNode struct {
	Pos
	Conds []*CondNode
}

func (n *IfNode) String() string {
	var b bytes.Buffer
	for i, cond := range n.Conds {
		if i == 0 {
			b.WriteString(cond.String())
			continue
		}
		switch cond.Kind {
		case GuardElse:
			b.WriteString("<? else ?>")
		default:
			b.WriteString("<? elsif " + cond.Query + " ?>")
		}
		b.WriteString(cond.Body.String())
	}
	b.WriteString("<? endif ?>")
	return b.String()
}

func (n *IfNode) Children() []Node {
	var nodes = make([]Node, len(n.Conds))
	for i, c := range n.Conds {
		nodes[i] = c
	}
	return nodes
}

// ForNode renders its body once per element of the list found at Query,
// binding each element to Var for the body's queries.
type ForNode struct {
	Pos
	Var   string
	Query string
	Body  *ListNode
}

func (n *ForNode) String() string {
	return "<? for " + n.Var + " " + n.Query + " ?>" + n.Body.String() + "<? endfor ?>"
}

func (n *ForNode) Children() []Node {
	return []Node{n.Body}
}

// IncludeNode delegates rendering to the compiled template at Path, with the
// same data context.  Path is resolved at parse time against the including
// template's location when a file exists there.
type IncludeNode struct {
	Pos
	Path string
}

func (n *IncludeNode) String() string {
	return "<? include " + strconv.Quote(n.Path) + " ?>"
}
