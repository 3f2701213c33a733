package facalc

import (
	"math"
	"strconv"
)

// Environment maps variable names to values. Names are case-sensitive.
type Environment map[string]float64

// Clone returns an independent copy of the environment.
func (env Environment) Clone() Environment {
	c := make(Environment, len(env))
	for k, v := range env {
		c[k] = v
	}
	return c
}

// Eval evaluates the expression against env and returns the result. env is
// never modified; assignments are bound by Session.Eval, and calling Eval
// directly on an assignment evaluates its right-hand side.
func (e *Expr) Eval(env Environment) (float64, error) {
	n := e.n
	if n.kind == nodeAssign {
		n = n.left
	}
	return n.eval(env)
}

// EvalString is a shortcut to parse and evaluate a single line.
func EvalString(src string, env Environment) (float64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return e.Eval(env)
}

func (n *node) eval(env Environment) (float64, error) {
	switch n.kind {
	case nodeNum:
		// A percent literal is its value over 100 everywhere it appears.
		if n.pct {
			return n.val / 100, nil
		}
		return n.val, nil
	case nodeName:
		v, ok := env[n.name]
		if !ok {
			return 0, &NameError{Name: n.name}
		}
		return v, nil
	case nodeCall:
		return n.call(env)
	case nodeNeg:
		v, err := n.left.eval(env)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case nodeAdd:
		l, r, err := n.operands(env)
		if err != nil {
			return 0, err
		}
		return l + r, nil
	case nodeSub:
		l, r, err := n.operands(env)
		if err != nil {
			return 0, err
		}
		return l - r, nil
	case nodeMul:
		l, r, err := n.operands(env)
		if err != nil {
			return 0, err
		}
		return l * r, nil
	case nodeDiv:
		l, r, err := n.operands(env)
		if err != nil {
			return 0, err
		}
		if r == 0 {
			return 0, &DivisionByZeroError{}
		}
		return l / r, nil
	case nodePow:
		l, r, err := n.operands(env)
		if err != nil {
			return 0, err
		}
		v := math.Pow(l, r)
		// A NaN out of finite operands means e.g. a negative base with a
		// fractional exponent.
		if math.IsNaN(v) && !math.IsNaN(l) && !math.IsNaN(r) {
			return 0, &DomainError{X: l, Func: "^"}
		}
		return v, nil
	default:
		panic("facalc: invalid AST node " + n.kind.String())
	}
}

func (n *node) operands(env Environment) (l, r float64, err error) {
	l, err = n.left.eval(env)
	if err != nil {
		return 0, 0, err
	}
	r, err = n.right.eval(env)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

// call dispatches a function call over the builtin table.
func (n *node) call(env Environment) (float64, error) {
	fn, ok := builtins[n.name]
	if !ok {
		return 0, &UnknownFuncError{Name: n.name}
	}
	if len(n.args) != fn.arity {
		return 0, &ArityError{Func: n.name, Want: fn.arity, Got: len(n.args)}
	}
	args := make([]float64, len(n.args))
	for k, a := range n.args {
		// The interest rate supplied to a factor is a percentage when it is
		// written as a literal, with or without the % sign: A_P(5, 10) and
		// A_P(5%, 10) both mean i = 0.05. Anything else in that position (a
		// variable, a nested call, arithmetic, a parenthesized expression)
		// has already resolved to a decimal and is used as-is.
		if k == 0 && fn.rate && a.kind == nodeNum && !a.grouped {
			args[k] = a.val / 100
			continue
		}
		v, err := a.eval(env)
		if err != nil {
			return 0, err
		}
		args[k] = v
	}
	r := fn.fn(args)
	if math.IsNaN(r) && !anyNaN(args) {
		return 0, &DomainError{X: args[0], Func: n.name}
	}
	return r, nil
}

func anyNaN(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}

// NameError is an error from a lookup for a variable that is missing from
// the current environment.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// DivisionByZeroError is an error from dividing by an exactly-zero divisor.
type DivisionByZeroError struct{}

func (err *DivisionByZeroError) Error() string {
	return "division by zero"
}
