package exprtree

import (
	"strconv"
	"strings"

	"github.com/zephyrtronium/exprtree/ratio"
)

// Mode selects how constants are written when rendering a tree.
type Mode int8

const (
	// Decimal writes constants with two digits after the point.
	Decimal Mode = iota
	// Fraction writes constants as the nearest fraction with a denominator
	// of at most MaxDenominator.
	Fraction
)

// MaxDenominator bounds the denominators of constants rendered in Fraction
// mode.
const MaxDenominator = 10000

func (m Mode) String() string {
	switch m {
	case Decimal:
		return "decimal"
	case Fraction:
		return "fraction"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Render writes the tree rooted at n in infix form, with every operator
// parenthesized and function calls written as name(input).
func Render(n *Node, mode Mode) string {
	var b strings.Builder
	n.fmt(&b, mode)
	return b.String()
}

// Render is a shortcut for Render(n, mode).
func (n *Node) Render(mode Mode) string {
	return Render(n, mode)
}

// String renders n in Decimal mode.
func (n *Node) String() string {
	return Render(n, Decimal)
}

func (n *Node) fmt(b *strings.Builder, mode Mode) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	switch n.kind {
	case kindNone:
		b.WriteString("<released>")
	case KindConstant:
		b.WriteString(number(n.value, mode))
	case KindVariable:
		b.WriteString(n.name)
	case KindOperator:
		b.WriteByte('(')
		n.left.fmt(b, mode)
		b.WriteByte(' ')
		b.WriteByte(n.op)
		b.WriteByte(' ')
		n.right.fmt(b, mode)
		b.WriteByte(')')
	case KindFunction:
		b.WriteString(n.name)
		b.WriteByte('(')
		n.left.fmt(b, mode)
		if n.value != 0 {
			b.WriteString(", ")
			b.WriteString(number(n.value, mode))
		}
		b.WriteByte(')')
	default:
		panic("exprtree: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// number formats a constant. Values with no fraction under the bound, such as
// NaN or the infinities, use the decimal form in either mode.
func number(x float64, mode Mode) string {
	if mode == Fraction {
		if f, err := ratio.Approx(x, MaxDenominator); err == nil {
			return f.String()
		}
	}
	return strconv.FormatFloat(x, 'f', 2, 64)
}
