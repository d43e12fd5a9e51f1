package exprtree

import (
	"errors"
	"strconv"

	"github.com/hashicorp/go-hclog"
)

// Bindings holds the value of every variable, indexed by letter minus 'a'.
// The zero value binds every variable to 0.
type Bindings [26]float64

// Set sets the value of the variable name.
func (b *Bindings) Set(name byte, value float64) error {
	i, ok := slot(name)
	if !ok {
		return &VariableNameError{Name: name}
	}
	b[i] = value
	return nil
}

// Lookup returns the value of the variable name, or 0 if name is not a
// variable name.
func (b *Bindings) Lookup(name byte) float64 {
	i, ok := slot(name)
	if !ok {
		return 0
	}
	return b[i]
}

// defaultPrec is the precision in bits of intermediate function values.
const defaultPrec = 64

// Context is a context for evaluating expressions: variable bindings and the
// policies for unbound variables, division by zero, and tree depth. A Context
// may evaluate expressions from several goroutines at once, but it must not
// be modified with Set while it does.
type Context struct {
	vars   Bindings
	bound  uint32 // bit i set when vars[i] has been assigned
	prec   uint
	strict struct {
		names bool
		div   bool
	}
	maxDepth int
	log      hclog.Logger
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name byte
		val  float64
	}
	varsopt   map[byte]float64
	bindopt   Bindings
	precopt   uint
	namesopt  struct{}
	divopt    struct{}
	depthopt  int
	loggeropt struct{ l hclog.Logger }
)

func (varopt) ctxOption()    {}
func (varsopt) ctxOption()   {}
func (bindopt) ctxOption()   {}
func (precopt) ctxOption()   {}
func (namesopt) ctxOption()  {}
func (divopt) ctxOption()    {}
func (depthopt) ctxOption()  {}
func (loggeropt) ctxOption() {}

// SetVar sets the value of a variable in the context. The context constructor
// panics if name is not a lowercase letter.
func SetVar(name byte, val float64) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[byte]float64) ContextOption {
	return varsopt(vars)
}

// Bind sets the values of all variables in the context at once. Every
// variable counts as bound afterward.
func Bind(b *Bindings) ContextOption {
	return bindopt(*b)
}

// Prec sets the precision in bits of intermediate values in function calls.
// The default is 64.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// StrictNames makes evaluating a variable that was never set in the context
// fail with a *NameError. By default, unset variables evaluate to 0.
func StrictNames() ContextOption {
	return namesopt{}
}

// StrictDivision makes division by zero fail with a *DivisionError. By
// default, a quotient whose divisor is exactly zero is 0.
func StrictDivision() ContextOption {
	return divopt{}
}

// MaxDepth limits the depth of trees the context evaluates. Deeper trees
// fail with a *DepthError. Zero, the default, means no limit.
func MaxDepth(n int) ContextOption {
	return depthopt(n)
}

// Logger sets the logger to which the context reports suppressed divisions.
// The default discards everything.
func Logger(l hclog.Logger) ContextOption {
	return loggeropt{l}
}

// NewContext creates a new evaluation context.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: defaultPrec, log: hclog.NewNullLogger()}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := *ctx
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.mustSet(opt.name, opt.val)
		case varsopt:
			for k, v := range opt {
				n.mustSet(k, v)
			}
		case bindopt:
			n.vars = Bindings(opt)
			n.bound = 1<<len(n.vars) - 1
		case precopt:
			n.prec = uint(opt)
		case namesopt:
			n.strict.names = true
		case divopt:
			n.strict.div = true
		case depthopt:
			n.maxDepth = int(opt)
		case loggeropt:
			n.log = opt.l
			if n.log == nil {
				n.log = hclog.NewNullLogger()
			}
		default:
			panic("exprtree: unknown option type")
		}
	}
	return &n
}

func (ctx *Context) mustSet(name byte, val float64) {
	if err := ctx.Set(name, val); err != nil {
		panic(err)
	}
}

// Set sets the value of a variable.
func (ctx *Context) Set(name byte, value float64) error {
	i, ok := slot(name)
	if !ok {
		return &VariableNameError{Name: name}
	}
	ctx.vars[i] = value
	ctx.bound |= 1 << i
	return nil
}

// Lookup returns the value of a variable and whether it has been set.
func (ctx *Context) Lookup(name byte) (float64, bool) {
	i, ok := slot(name)
	if !ok {
		return 0, false
	}
	return ctx.vars[i], ctx.bound&(1<<i) != 0
}

// Bindings returns a copy of the context's variable values.
func (ctx *Context) Bindings() Bindings {
	return ctx.vars
}

// Prec returns the precision in bits of intermediate values in function
// calls.
func (ctx *Context) Prec() uint {
	if ctx == nil {
		return defaultPrec
	}
	return ctx.prec
}

// Eval evaluates the tree rooted at n. Both operands of an operator are always
// evaluated, left first. Any error aborts the whole evaluation. A nil context
// evaluates like NewContext().
func (ctx *Context) Eval(n *Node) (float64, error) {
	if ctx == nil {
		ctx = NewContext()
	}
	if n == nil {
		return 0, errors.New("exprtree: Eval of nil node")
	}
	return n.eval(ctx, 1)
}

// Eval evaluates the tree rooted at n with the given variable values, which
// may be nil to bind every variable to 0. A divisor of exactly zero gives a
// quotient of 0.
func Eval(n *Node, b *Bindings) (float64, error) {
	ctx := NewContext()
	if b != nil {
		ctx.vars = *b
	}
	return ctx.Eval(n)
}

// eval computes the value of the node at the given depth.
func (n *Node) eval(ctx *Context, depth int) (float64, error) {
	if ctx.maxDepth > 0 && depth > ctx.maxDepth {
		return 0, &DepthError{Max: ctx.maxDepth}
	}
	switch n.kind {
	case KindConstant:
		return n.value, nil
	case KindVariable:
		i, _ := slot(n.name[0])
		if ctx.strict.names && ctx.bound&(1<<i) == 0 {
			return 0, &NameError{Name: n.name}
		}
		return ctx.vars[i], nil
	case KindOperator:
		l, err := n.left.eval(ctx, depth+1)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(ctx, depth+1)
		if err != nil {
			return 0, err
		}
		switch n.op {
		case '+':
			return l + r, nil
		case '-':
			return l - r, nil
		case '*':
			return l * r, nil
		case '/':
			if r == 0 {
				if ctx.strict.div {
					return 0, &DivisionError{Dividend: l}
				}
				ctx.log.Debug("division by zero suppressed", "dividend", l)
				return 0, nil
			}
			return l / r, nil
		}
		panic("exprtree: invalid operator " + strconv.QuoteRune(rune(n.op)))
	case KindFunction:
		x, err := n.left.eval(ctx, depth+1)
		if err != nil {
			return 0, err
		}
		r, err := n.fn.Call(ctx, x, n.value)
		if err != nil {
			var d *DomainError
			if errors.As(err, &d) && d.Func == "" {
				d.Func = n.name
			}
			return 0, err
		}
		return r, nil
	case kindNone:
		return 0, ErrReleased
	default:
		panic("exprtree: invalid node kind " + n.kind.String())
	}
}
