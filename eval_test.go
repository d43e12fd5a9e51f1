package exprtree_test

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/zephyrtronium/exprtree"
)

func TestEval(t *testing.T) {
	type vv struct {
		n byte
		v float64
	}
	cases := []struct {
		name string
		expr *exprtree.Node
		vars []vv
		r    float64
	}{
		{"num", num(1.5), nil, 1.5},
		{"ident", vr('x'), []vv{{'x', 4}}, 4},
		{"unbound", vr('y'), []vv{{'x', 4}}, 0},
		{"add", op('+', num(4), num(5)), nil, 9},
		{"sub", op('-', num(4), num(5)), nil, -1},
		{"mul", op('*', num(4), num(5)), nil, 20},
		{"div", op('/', num(4), num(5)), nil, 4.0 / 5.0},
		{"demo", op('/', num(5), vr('x')), []vv{{'x', 78}}, 5.0 / 78.0},
		{"nested", op('*', op('+', vr('x'), num(2)), op('-', vr('y'), num(1))), []vv{{'x', 3}, {'y', 5}}, 20},
		{"left-first", op('-', op('-', num(10), num(4)), num(3)), nil, 3},
		{"div-zero", op('/', num(5), num(0)), nil, 0},
		{"div-neg-zero", op('/', num(5), num(math.Copysign(0, -1))), nil, 0},
		{"div-zero-zero", op('/', num(0), num(0)), nil, 0},
		{"div-unbound", op('/', vr('x'), vr('y')), []vv{{'x', 7}}, 0},
		{"div-zero-nested", op('+', num(1), op('/', num(5), op('-', vr('z'), vr('z')))), []vv{{'z', 2}}, 1},
		{"sqrt", fn("sqrt", num(16), 0), nil, 4},
		{"log", fn("log", num(1000), 0), nil, 3},
		{"log-base", fn("log", num(8), 2), nil, 3},
		{"func-of-expr", fn("sqrt", op('*', vr('a'), vr('a')), 0), []vv{{'a', 3}}, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var b exprtree.Bindings
			for _, x := range c.vars {
				if err := b.Set(x.n, x.v); err != nil {
					t.Fatal(err)
				}
			}
			r, err := exprtree.Eval(c.expr, &b)
			if err != nil {
				t.Fatalf("evaluation error: %v", err)
			}
			if r != c.r {
				t.Errorf("wrong result: want %g, got %g", c.r, r)
			}
			ctx := exprtree.NewContext(exprtree.Bind(&b))
			q, err := ctx.Eval(c.expr)
			if err != nil {
				t.Fatalf("evaluation error in context: %v", err)
			}
			if q != r {
				t.Errorf("different results: Eval returned %g, Context.Eval returned %g", r, q)
			}
		})
	}
}

func TestEvalNilBindings(t *testing.T) {
	r, err := exprtree.Eval(op('+', vr('q'), num(2)), nil)
	if err != nil {
		t.Fatal(err)
	}
	if r != 2 {
		t.Errorf("want 2, got %g", r)
	}
}

func TestEvalNilContext(t *testing.T) {
	var ctx *exprtree.Context
	r, err := ctx.Eval(op('/', fn("sqrt", num(16), 0), vr('x')))
	if r != 0 || err != nil {
		t.Errorf("nil context gave %g, %v", r, err)
	}
	if r, err := ctx.Eval(op('-', num(7), num(2))); r != 5 || err != nil {
		t.Errorf("nil context gave %g, %v", r, err)
	}
}

func TestEvalStrictNames(t *testing.T) {
	cases := []struct {
		name string
		expr *exprtree.Node
		miss string
	}{
		{"ident", vr('y'), "y"},
		{"add-lhs", op('+', vr('y'), num(1)), "y"},
		{"add-rhs", op('+', num(1), vr('y')), "y"},
		{"left-first", op('*', vr('b'), vr('c')), "b"},
		{"div-lhs", op('/', vr('y'), num(0)), "y"},
		{"div-rhs", op('/', num(1), vr('y')), "y"},
		{"call", fn("exp", vr('y'), 0), "y"},
	}
	ctx := exprtree.NewContext(exprtree.StrictNames(), exprtree.SetVar('x', 1))
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := ctx.Eval(c.expr)
			if r != 0 {
				t.Errorf("got non-zero result %g", r)
			}
			var e *exprtree.NameError
			if !errors.As(err, &e) {
				t.Fatalf("error was %#v, not NameError", err)
			}
			if e.Name != c.miss {
				t.Errorf("NameError on %q, want %q", e.Name, c.miss)
			}
		})
	}
	if r, err := ctx.Eval(vr('x')); r != 1 || err != nil {
		t.Errorf("bound variable gave %g, %v", r, err)
	}
	var b exprtree.Bindings
	all := ctx.Clone(exprtree.Bind(&b))
	if r, err := all.Eval(vr('y')); r != 0 || err != nil {
		t.Errorf("variable bound by Bind gave %g, %v", r, err)
	}
}

func TestEvalStrictDivision(t *testing.T) {
	cases := []struct {
		name string
		expr *exprtree.Node
		lhs  float64
	}{
		{"const", op('/', num(5), num(0)), 5},
		{"zero-zero", op('/', num(0), num(0)), 0},
		{"neg-zero", op('/', num(-2), num(math.Copysign(0, -1))), -2},
		{"var", op('/', vr('x'), vr('y')), 7},
		{"nested", op('+', num(1), op('/', num(3), op('-', vr('x'), vr('x')))), 3},
		{"in-call", fn("sqrt", op('/', num(9), num(0)), 0), 9},
	}
	ctx := exprtree.NewContext(exprtree.StrictDivision(), exprtree.SetVars(map[byte]float64{'x': 7, 'y': 0}))
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := ctx.Eval(c.expr)
			if r != 0 {
				t.Errorf("got non-zero result %g", r)
			}
			var e *exprtree.DivisionError
			if !errors.As(err, &e) {
				t.Fatalf("error was %#v, not DivisionError", err)
			}
			if e.Dividend != c.lhs {
				t.Errorf("dividend %g, want %g", e.Dividend, c.lhs)
			}
		})
	}
	if r, err := ctx.Eval(op('/', num(1), num(4))); r != 0.25 || err != nil {
		t.Errorf("ordinary division gave %g, %v", r, err)
	}
}

func TestEvalBothOperands(t *testing.T) {
	// A suppressed division still evaluates its divisor.
	expr := op('/', num(5), op('*', num(0), fn("sqrt", num(-1), 0)))
	_, err := exprtree.Eval(expr, nil)
	if !errors.As(err, new(*exprtree.DomainError)) {
		t.Errorf("error was %#v, not DomainError", err)
	}
}

func TestEvalDepth(t *testing.T) {
	chain := vr('x')
	for i := 1; i < 10; i++ {
		chain = op('+', chain, num(1))
	}
	if d := chain.Depth(); d != 10 {
		t.Fatalf("chain has depth %d, want 10", d)
	}
	cases := []struct {
		max int
		ok  bool
	}{
		{0, true},
		{1, false},
		{5, false},
		{9, false},
		{10, true},
		{100, true},
	}
	for _, c := range cases {
		ctx := exprtree.NewContext(exprtree.MaxDepth(c.max), exprtree.SetVar('x', 1))
		r, err := ctx.Eval(chain)
		if c.ok {
			if err != nil || r != 10 {
				t.Errorf("max %d: got %g, %v", c.max, r, err)
			}
			continue
		}
		var e *exprtree.DepthError
		if !errors.As(err, &e) {
			t.Errorf("max %d: error was %#v, not DepthError", c.max, err)
			continue
		}
		if e.Max != c.max {
			t.Errorf("max %d: error reports %d", c.max, e.Max)
		}
	}
}

func TestEvalConcurrent(t *testing.T) {
	expr := op('+', op('*', vr('x'), vr('x')), fn("sqrt", vr('y'), 0))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var b exprtree.Bindings
			b.Set('x', float64(i))
			b.Set('y', 4)
			r, err := exprtree.Eval(expr, &b)
			if err != nil {
				t.Errorf("goroutine %d: %v", i, err)
				return
			}
			if want := float64(i*i) + 2; r != want {
				t.Errorf("goroutine %d: want %g, got %g", i, want, r)
			}
		}(i)
	}
	wg.Wait()
}

func TestContext(t *testing.T) {
	ctx := exprtree.NewContext(exprtree.SetVar('x', 3), exprtree.Prec(128))
	if err := ctx.Set('y', 4); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Set('Y', 4); !errors.As(err, new(*exprtree.VariableNameError)) {
		t.Errorf("Set('Y') gave %#v", err)
	}
	if v, ok := ctx.Lookup('y'); v != 4 || !ok {
		t.Errorf("Lookup('y') gave %g, %t", v, ok)
	}
	if v, ok := ctx.Lookup('z'); v != 0 || ok {
		t.Errorf("Lookup('z') gave %g, %t", v, ok)
	}
	if ctx.Prec() != 128 {
		t.Errorf("precision %d, want 128", ctx.Prec())
	}
	c := ctx.Clone(exprtree.SetVar('x', 5))
	if v, _ := ctx.Lookup('x'); v != 3 {
		t.Errorf("Clone changed the original: x is %g", v)
	}
	b := c.Bindings()
	if b.Lookup('x') != 5 || b.Lookup('y') != 4 {
		t.Errorf("clone bindings x=%g y=%g", b.Lookup('x'), b.Lookup('y'))
	}
	defer func() {
		if recover() == nil {
			t.Error("SetVar with a bad name did not panic")
		}
	}()
	exprtree.NewContext(exprtree.SetVar('!', 1))
}
