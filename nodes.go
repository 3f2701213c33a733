package facalc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an input line. Each node
// exclusively owns its children; trees are built bottom-up during parsing,
// so cycles cannot occur.
type node struct {
	kind nodeKind

	// val and pct describe number literals.
	val float64
	pct bool
	// grouped marks a subexpression that was parenthesized in the source.
	// A grouped literal is not read as a rate percentage.
	grouped bool
	// name is the variable, function, or assignment target name.
	name string

	left  *node
	right *node
	// args holds call arguments in order.
	args []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum    // literal; val, pct
	nodeName   // variable reference
	nodeCall   // name(args...); dispatch happens at evaluation
	nodeAssign // name = left; only legal as the root

	nodeNeg // negate left
	nodeAdd // left + right
	nodeSub // left - right
	nodeMul // left * right
	nodeDiv // left / right
	nodePow // left ^ right
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeName:
		return "Name"
	case nodeCall:
		return "Call"
	case nodeAssign:
		return "Assign"
	case nodeNeg:
		return "Neg"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	case nodePow:
		return "Pow"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes a fully parenthesized rendering of the tree, which the parser
// tests compare against.
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNone:
		b.WriteString("$invalid$")
	case nodeNum:
		b.WriteString(strconv.FormatFloat(n.val, 'g', -1, 64))
		if n.pct {
			b.WriteByte('%')
		}
	case nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		for i, a := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.fmt(b)
		}
		b.WriteByte(')')
	case nodeAssign:
		b.WriteString(n.name)
		b.WriteString(" = ")
		n.left.fmt(b)
	case nodeNeg:
		b.WriteString("(-")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString(opstr(n.kind))
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		panic("facalc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func opstr(k nodeKind) string {
	switch k {
	case nodeAdd:
		return " + "
	case nodeSub:
		return " - "
	case nodeMul:
		return " * "
	case nodeDiv:
		return " / "
	case nodePow:
		return " ^ "
	default:
		panic("facalc: not a binary operator: " + k.String())
	}
}
