package exprtree

import (
	"errors"
	"strconv"
)

// VariableNameError is an error indicating a variable name that is not a
// lowercase ASCII letter.
type VariableNameError struct {
	// Name is the rejected name.
	Name byte
}

func (err *VariableNameError) Error() string {
	return "invalid variable name " + strconv.QuoteRune(rune(err.Name)) + " (want a-z)"
}

// OperatorError is an error indicating an operator symbol other than
// + - * /.
type OperatorError struct {
	// Operator is the rejected symbol.
	Operator byte
}

func (err *OperatorError) Error() string {
	return "unknown binary operator " + strconv.QuoteRune(rune(err.Operator))
}

// FunctionError is an error indicating a function node with no function to
// call.
type FunctionError struct {
	// Name is the function name that was requested.
	Name string
}

func (err *FunctionError) Error() string {
	if err.Name == "" {
		return "function node with no name"
	}
	return "unknown function " + strconv.Quote(err.Name)
}

const (
	reasonMissing  = "missing"
	reasonOwned    = "already owned by another node"
	reasonReleased = "released"
	reasonAliased  = "same node as argument 1"
)

// OwnershipError is an error indicating a child node that cannot be adopted,
// or a node that cannot be released, because it would break the tree.
type OwnershipError struct {
	// Parent names the node being built or released.
	Parent string
	// Arg is the 1-based index of the offending child, or 0 for Release.
	Arg int
	// Reason describes what was wrong with the child.
	Reason string
}

func (err *OwnershipError) Error() string {
	if err.Arg == 0 {
		return "cannot release " + strconv.Quote(err.Parent) + ": " + err.Reason
	}
	return "argument " + strconv.Itoa(err.Arg) + " of " + strconv.Quote(err.Parent) + ": " + err.Reason
}

// NameError is an error from a lookup for a variable that was never bound in
// a context that requires bindings.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// DivisionError is an error indicating a division by exactly zero in a
// context that does not suppress it.
type DivisionError struct {
	// Dividend is the value of the left operand.
	Dividend float64
}

func (err *DivisionError) Error() string {
	return "division by zero: " + strconv.FormatFloat(err.Dividend, 'g', -1, 64) + " / 0"
}

// DomainError is an error returned when a function is called on arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Arg is the 1-based index of the argument. The base is argument 2.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

// DepthError is an error indicating a tree deeper than a context allows.
type DepthError struct {
	// Max is the depth limit that was exceeded.
	Max int
}

func (err *DepthError) Error() string {
	return "expression deeper than " + strconv.Itoa(err.Max) + " nodes"
}

// ErrReleased is returned when evaluating a tree that has been released.
var ErrReleased = errors.New("exprtree: use of released node")
