package exprtree

import (
	"errors"
	"math"
	"math/big"
	"sort"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals with a real parameter, the base of
// the function node calling it. Function nodes evaluate their input, then call
// their Func with the result.
type Func interface {
	// Call evaluates the function at x. base is the base of the node, zero
	// when the node was created without one. Arguments outside the
	// function's domain should give a *DomainError.
	Call(ctx *Context, x, base float64) (float64, error)
}

// builtins are the functions available to Function. They are computed in
// big.Float at the context's precision and rounded to float64.
//
// The set is an extension point: FunctionOf accepts any Func.
var builtins = map[string]Func{
	"sqrt": Monadic((*big.Float).Sqrt),
	"ln":   Monadic(positive(bigfloat.Log)),
	"log":  Dyadic(logBase, 10),
	"exp":  Monadic(exp),
	"root": Dyadic(root, 2),
}

// Funcs returns the names of the built-in functions in sorted order.
//
//	sqrt(x)       square root, x >= 0
//	ln(x)         natural logarithm, x > 0
//	log(x, b)     logarithm base b, x > 0, b > 0, b != 1; b = 0 means 10
//	exp(x)        e to the x
//	root(x, n)    n-th root for a positive integer n, x < 0 only for odd n;
//	              n = 0 means 2
func Funcs() []string {
	r := make([]string, 0, len(builtins))
	for k := range builtins {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx *Context, x, base float64) (r float64, err error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, &DomainError{X: x, Arg: 1}
	}
	defer recoverDomain(x, &err)
	in := new(big.Float).SetPrec(ctx.Prec()).SetFloat64(x)
	out := new(big.Float).SetPrec(ctx.Prec())
	r, _ = m.f(out, in).Float64()
	return r, nil
}

// Monadic wraps a function of one variable into a Func that ignores the base.
// f must set out to its result, to the precision of out, and return out. If f
// is called on an argument outside its domain, it should panic with a
// big.ErrNaN or a *DomainError.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type dyadic struct {
	f   func(out, in, base *big.Float) *big.Float
	def float64
}

func (d dyadic) Call(ctx *Context, x, base float64) (r float64, err error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, &DomainError{X: x, Arg: 1}
	}
	if math.IsNaN(base) || math.IsInf(base, 0) {
		return 0, &DomainError{X: base, Arg: 2}
	}
	if base == 0 {
		base = d.def
	}
	defer recoverDomain(x, &err)
	in := new(big.Float).SetPrec(ctx.Prec()).SetFloat64(x)
	b := new(big.Float).SetPrec(ctx.Prec()).SetFloat64(base)
	out := new(big.Float).SetPrec(ctx.Prec())
	r, _ = d.f(out, in, b).Float64()
	return r, nil
}

// Dyadic wraps a function of a variable and a base into a Func. A zero base
// is replaced with def. f follows the same rules as for Monadic; a base
// outside its domain should panic with a *DomainError having Arg 2.
func Dyadic(f func(out, in, base *big.Float) *big.Float, def float64) Func {
	return dyadic{f, def}
}

// recoverDomain turns a domain panic from a big.Float function into an
// error. Other panics continue.
func recoverDomain(x float64, err *error) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(error)
	if !ok {
		panic(r)
	}
	var d *DomainError
	switch {
	case errors.As(e, &d):
		*err = d
	case errors.As(e, new(big.ErrNaN)):
		*err = &DomainError{X: x, Arg: 1}
	default:
		panic(r)
	}
}

// positive restricts f to positive arguments.
func positive(f func(out, in *big.Float) *big.Float) func(out, in *big.Float) *big.Float {
	return func(out, in *big.Float) *big.Float {
		if in.Sign() <= 0 {
			x, _ := in.Float64()
			panic(&DomainError{X: x, Arg: 1})
		}
		return f(out, in)
	}
}

// exp is e^x, saturating where float64 results would overflow or underflow.
func exp(out, in *big.Float) *big.Float {
	x, _ := in.Float64()
	switch {
	case x > 710:
		return out.SetInf(false)
	case x < -746:
		return out.SetFloat64(0)
	}
	return bigfloat.Exp(out, in)
}

func logBase(out, in, base *big.Float) *big.Float {
	if in.Sign() <= 0 {
		x, _ := in.Float64()
		panic(&DomainError{X: x, Arg: 1})
	}
	if base.Sign() <= 0 || base.Cmp(big.NewFloat(1)) == 0 {
		b, _ := base.Float64()
		panic(&DomainError{X: b, Arg: 2})
	}
	bigfloat.Log(out, in)
	lb := bigfloat.Log(new(big.Float).SetPrec(out.Prec()), base)
	return out.Quo(out, lb)
}

func root(out, in, base *big.Float) *big.Float {
	if !base.IsInt() || base.Sign() <= 0 {
		b, _ := base.Float64()
		panic(&DomainError{X: b, Arg: 2})
	}
	if in.Sign() == 0 {
		return out.SetFloat64(0)
	}
	odd := false
	if n, acc := base.Int64(); acc == big.Exact {
		odd = n%2 != 0
	}
	neg := in.Signbit()
	if neg && !odd {
		x, _ := in.Float64()
		panic(&DomainError{X: x, Arg: 1})
	}
	a := new(big.Float).SetPrec(out.Prec()).Abs(in)
	e := new(big.Float).SetPrec(out.Prec()).SetInt64(1)
	e.Quo(e, base)
	out.Set(bigfloat.Pow(out, a, e))
	if neg {
		out.Neg(out)
	}
	return out
}
