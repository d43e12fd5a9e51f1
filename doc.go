// Package exprtree implements expression trees over real numbers with
// single-letter variables.
//
// A tree is built from the leaves up: constants and variables first, then
// operators and functions that take ownership of the nodes passed to them.
// A node belongs to at most one parent, so every tree is a true tree. The
// same tree can then be evaluated under many variable bindings, or rendered
// as text with constants written as decimals or as fractions found by
// package ratio.
//
//	x := exprtree.Must(exprtree.Variable('x'))
//	q := exprtree.Must(exprtree.Operator('/', exprtree.Constant(5), x))
//	var b exprtree.Bindings
//	b.Set('x', 78)
//	v, _ := exprtree.Eval(q, &b) // 0.0641...
//	s := q.Render(exprtree.Fraction) // "(5/1 / x)"
//
// Evaluation is a recursive walk, so stack use grows with tree depth. Use the
// MaxDepth option when evaluating trees from untrusted sources.
package exprtree
