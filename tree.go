package exprtree

import (
	"math"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/xlab/treeprint"

	"github.com/zephyrtronium/exprtree/ratio"
)

// Tree draws the tree rooted at n, one node per line, with constants written
// in the given mode.
func Tree(n *Node, mode Mode) string {
	if n == nil {
		return "<nil>\n"
	}
	t := treeprint.NewWithRoot(n.heading(mode))
	n.branches(t, mode)
	return t.String()
}

func (n *Node) branches(t treeprint.Tree, mode Mode) {
	for _, c := range [...]*Node{n.left, n.right} {
		if c == nil {
			continue
		}
		if c.left == nil && c.right == nil {
			t.AddNode(c.heading(mode))
			continue
		}
		c.branches(t.AddBranch(c.heading(mode)), mode)
	}
}

// heading is the line for n alone in a tree diagram.
func (n *Node) heading(mode Mode) string {
	switch n.kind {
	case KindConstant:
		return number(n.value, mode)
	case KindOperator:
		return string(n.op)
	case KindFunction:
		if n.value != 0 {
			return n.name + " base " + number(n.value, mode)
		}
		return n.name
	default:
		return n.label()
	}
}

// jsonNode is the JSON form of a node.
type jsonNode struct {
	Kind     string    `json:"kind"`
	Value    *float64  `json:"value,omitempty"`
	Text     string    `json:"text,omitempty"`
	Fraction string    `json:"fraction,omitempty"`
	Name     string    `json:"name,omitempty"`
	Op       string    `json:"op,omitempty"`
	Base     *float64  `json:"base,omitempty"`
	Left     *jsonNode `json:"left,omitempty"`
	Right    *jsonNode `json:"right,omitempty"`
	Input    *jsonNode `json:"input,omitempty"`
}

// MarshalJSON encodes the tree rooted at n as nested objects keyed by
// "kind". Finite constants carry both their value and their fraction;
// others carry only their text.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	if n == nil {
		return nil
	}
	j := jsonNode{Kind: n.kind.String()}
	switch n.kind {
	case KindConstant:
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			j.Text = strconv.FormatFloat(n.value, 'g', -1, 64)
			break
		}
		v := n.value
		j.Value = &v
		if f, err := ratio.Approx(v, MaxDenominator); err == nil {
			j.Fraction = f.String()
		}
	case KindVariable:
		j.Name = n.name
	case KindOperator:
		j.Op = string(n.op)
		j.Left = n.left.toJSON()
		j.Right = n.right.toJSON()
	case KindFunction:
		j.Name = n.name
		if n.value != 0 {
			b := n.value
			j.Base = &b
		}
		j.Input = n.left.toJSON()
	}
	return &j
}
