package exprtree

import "strconv"

// Node is a node in an expression tree. Nodes are created by Constant,
// Variable, Operator, and Function, and are immutable once created. Every
// node other than the root of a tree is owned by exactly one parent.
//
// Evaluating and rendering a tree only read it, so both are safe from
// several goroutines at once. Building or releasing a tree is not.
type Node struct {
	kind Kind

	value float64 // constant value, or function base
	name  string  // variable letter or function name
	op    byte
	fn    Func

	left  *Node // function input
	right *Node

	owned bool
}

// Kind identifies the variant of a node.
type Kind int8

const (
	// kindNone marks a released node.
	kindNone Kind = iota

	KindConstant // value
	KindVariable // name is one letter
	KindOperator // op applied to left and right
	KindFunction // fn called on left with value as base
)

func (k Kind) String() string {
	switch k {
	case kindNone:
		return "released"
	case KindConstant:
		return "constant"
	case KindVariable:
		return "variable"
	case KindOperator:
		return "operator"
	case KindFunction:
		return "function"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Constant creates a constant node.
func Constant(value float64) *Node {
	return &Node{kind: KindConstant, value: value}
}

// Variable creates a node that evaluates to the binding for name, which must
// be a lowercase ASCII letter.
func Variable(name byte) (*Node, error) {
	if _, ok := slot(name); !ok {
		return nil, &VariableNameError{Name: name}
	}
	return &Node{kind: KindVariable, name: string(name)}, nil
}

// Operator creates a node applying op, one of + - * /, to left and right.
// On success the new node owns both children. On failure neither is adopted.
func Operator(op byte, left, right *Node) (*Node, error) {
	switch op {
	case '+', '-', '*', '/': // do nothing
	default:
		return nil, &OperatorError{Operator: op}
	}
	if err := adoptable(string(op), 1, left); err != nil {
		return nil, err
	}
	if err := adoptable(string(op), 2, right); err != nil {
		return nil, err
	}
	if left == right {
		return nil, &OwnershipError{Parent: string(op), Arg: 2, Reason: reasonAliased}
	}
	left.owned, right.owned = true, true
	return &Node{kind: KindOperator, op: op, left: left, right: right}, nil
}

// Function creates a node calling the built-in function name on input. base
// parameterizes functions such as log and root; see Funcs. On success the
// new node owns input.
func Function(name string, input *Node, base float64) (*Node, error) {
	fn := builtins[name]
	if fn == nil {
		return nil, &FunctionError{Name: name}
	}
	return FunctionOf(name, fn, input, base)
}

// FunctionOf creates a function node named name which evaluates by calling
// fn on input. On success the new node owns input.
func FunctionOf(name string, fn Func, input *Node, base float64) (*Node, error) {
	if name == "" || fn == nil {
		return nil, &FunctionError{Name: name}
	}
	if err := adoptable(name, 1, input); err != nil {
		return nil, err
	}
	input.owned = true
	return &Node{kind: KindFunction, name: name, fn: fn, value: base, left: input}, nil
}

// Must returns n if err is nil and panics otherwise. It is intended for trees
// fixed at compile time.
func Must(n *Node, err error) *Node {
	if err != nil {
		panic(err)
	}
	return n
}

// adoptable checks that n can become a child of a new parent.
func adoptable(parent string, arg int, n *Node) error {
	switch {
	case n == nil:
		return &OwnershipError{Parent: parent, Arg: arg, Reason: reasonMissing}
	case n.kind == kindNone:
		return &OwnershipError{Parent: parent, Arg: arg, Reason: reasonReleased}
	case n.owned:
		return &OwnershipError{Parent: parent, Arg: arg, Reason: reasonOwned}
	}
	return nil
}

// Release tears down the tree rooted at n, releasing children before their
// parents, and returns the number of nodes released. Released nodes evaluate
// to ErrReleased. Releasing nil or an already released tree releases nothing.
// Only the holder of a root may release it; a node owned by a parent is
// released along with that parent.
func Release(n *Node) (int, error) {
	if n == nil || n.kind == kindNone {
		return 0, nil
	}
	if n.owned {
		return 0, &OwnershipError{Parent: n.label(), Reason: reasonOwned}
	}
	return n.release(), nil
}

func (n *Node) release() int {
	k := 0
	if n.left != nil {
		k += n.left.release()
	}
	if n.right != nil {
		k += n.right.release()
	}
	*n = Node{}
	return k + 1
}

// Kind returns the variant of n.
func (n *Node) Kind() Kind {
	return n.kind
}

// Released returns whether n has been torn down by Release.
func (n *Node) Released() bool {
	return n.kind == kindNone
}

// Value returns the value of a constant node and zero for any other.
func (n *Node) Value() float64 {
	if n.kind != KindConstant {
		return 0
	}
	return n.value
}

// Name returns the letter of a variable node, the function name of a function
// node, and "" for any other.
func (n *Node) Name() string {
	switch n.kind {
	case KindVariable, KindFunction:
		return n.name
	}
	return ""
}

// Op returns the operator symbol of an operator node and 0 for any other.
func (n *Node) Op() byte {
	return n.op
}

// Base returns the base parameter of a function node and zero for any other.
func (n *Node) Base() float64 {
	if n.kind != KindFunction {
		return 0
	}
	return n.value
}

// Left returns the left operand of an operator node.
func (n *Node) Left() *Node {
	if n.kind != KindOperator {
		return nil
	}
	return n.left
}

// Right returns the right operand of an operator node.
func (n *Node) Right() *Node {
	if n.kind != KindOperator {
		return nil
	}
	return n.right
}

// Input returns the argument of a function node.
func (n *Node) Input() *Node {
	if n.kind != KindFunction {
		return nil
	}
	return n.left
}

// NodeCount returns the number of nodes in the tree rooted at n.
func (n *Node) NodeCount() int {
	if n == nil || n.kind == kindNone {
		return 0
	}
	k := 1
	if n.left != nil {
		k += n.left.NodeCount()
	}
	if n.right != nil {
		k += n.right.NodeCount()
	}
	return k
}

// Depth returns the number of nodes on the longest path from n to a leaf.
func (n *Node) Depth() int {
	if n == nil || n.kind == kindNone {
		return 0
	}
	return 1 + max(n.left.Depth(), n.right.Depth())
}

// label is a short name for n in error messages.
func (n *Node) label() string {
	switch n.kind {
	case KindConstant:
		return strconv.FormatFloat(n.value, 'g', -1, 64)
	case KindVariable, KindFunction:
		return n.name
	case KindOperator:
		return string(n.op)
	default:
		return n.kind.String()
	}
}

// slot returns the bindings index for a variable name.
func slot(name byte) (int, bool) {
	if name < 'a' || name > 'z' {
		return 0, false
	}
	return int(name - 'a'), true
}
