package facalc

import (
	"math"
	"sort"
	"strconv"
)

// builtin is an entry in the evaluator's closed dispatch table. Every
// callable name in the language is listed here; evaluation never reaches for
// anything outside this table.
type builtin struct {
	arity int
	// rate marks the interest factors: when the first argument at a call
	// site is a numeric literal, it is read as a percentage and divided by
	// 100, % sign or not.
	rate bool
	fn   func(args []float64) float64
}

func factor(f func(i, n float64) float64) builtin {
	return builtin{arity: 2, rate: true, fn: func(a []float64) float64 { return f(a[0], a[1]) }}
}

func monadic(f func(float64) float64) builtin {
	return builtin{arity: 1, fn: func(a []float64) float64 { return f(a[0]) }}
}

var builtins = map[string]builtin{
	// interest factors
	"F_P": factor(FP),
	"P_F": factor(PF),
	"P_A": factor(PA),
	"A_P": factor(AP),
	"F_A": factor(FA),
	"A_F": factor(AF),
	"A_G": factor(AG),
	"P_G": factor(PG),

	// abs strips the sign itself rather than delegating anywhere.
	"abs": monadic(func(x float64) float64 {
		if x < 0 {
			return -x
		}
		return x
	}),

	// general math
	"sqrt":  monadic(math.Sqrt),
	"exp":   monadic(math.Exp),
	"log":   monadic(math.Log),
	"log10": monadic(math.Log10),
	"log2":  monadic(math.Log2),
	"sin":   monadic(math.Sin),
	"cos":   monadic(math.Cos),
	"tan":   monadic(math.Tan),
	"asin":  monadic(math.Asin),
	"acos":  monadic(math.Acos),
	"atan":  monadic(math.Atan),
	"sinh":  monadic(math.Sinh),
	"cosh":  monadic(math.Cosh),
	"tanh":  monadic(math.Tanh),
	"floor": monadic(math.Floor),
	"ceil":  monadic(math.Ceil),
}

// Builtins returns the names of all callable functions, sorted.
func Builtins() []string {
	v := make([]string, 0, len(builtins))
	for k := range builtins {
		v = append(v, k)
	}
	sort.Strings(v)
	return v
}

// IsFactor reports whether name is one of the interest-factor functions,
// whose first argument is an interest rate.
func IsFactor(name string) bool {
	return builtins[name].rate
}

// UnknownFuncError is an error from calling a name that is not in the
// builtin dispatch table.
type UnknownFuncError struct {
	// Name is the name that was called.
	Name string
}

func (err *UnknownFuncError) Error() string {
	return "unknown function: " + strconv.Quote(err.Name)
}

// ArityError is an error from calling a function with the wrong number of
// arguments.
type ArityError struct {
	// Func is the function name that was called.
	Func string
	// Want and Got are the expected and supplied argument counts.
	Want, Got int
}

func (err *ArityError) Error() string {
	s := " arguments, got "
	if err.Want == 1 {
		s = " argument, got "
	}
	return err.Func + " takes " + strconv.Itoa(err.Want) + s + strconv.Itoa(err.Got)
}

// DomainError is an error from applying a function or operator to arguments
// outside its domain, e.g. the log of a negative number.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is a name identifying the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}
