package facalc

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	// want is the fully parenthesized rendering of the parse tree.
	cases := []struct {
		src  string
		want string
	}{
		// atoms
		{"0", "0"},
		{"1.5", "1.5"},
		{"43%", "43%"},
		{"x", "x"},
		{"pi", "pi"},
		{"(((1)))", "1"},
		// precedence and associativity
		{"1+2", "(1 + 2)"},
		{"1-2-3", "((1 - 2) - 3)"},
		{"1+2*3", "(1 + (2 * 3))"},
		{"(1+2)*3", "((1 + 2) * 3)"},
		{"6/2/3", "((6 / 2) / 3)"},
		{"2^3^2", "(2 ^ (3 ^ 2))"},
		{"2*3^2", "(2 * (3 ^ 2))"},
		// unary minus binds tighter than * but looser than ^
		{"-3", "(-3)"},
		{"--3", "(-(-3))"},
		{"-2^2", "(-(2 ^ 2))"},
		{"2^-3", "(2 ^ (-3))"},
		{"-2*3", "((-2) * 3)"},
		{"1--2", "(1 - (-2))"},
		// calls
		{"f()", "f()"},
		{"abs(-3)", "abs((-3))"},
		{"A_P(5%, 10)", "A_P(5%, 10)"},
		{"A_P(5%,10)*1000", "(A_P(5%, 10) * 1000)"},
		{"F_P(rate, n+1)", "F_P(rate, (n + 1))"},
		{"P_G(A_P(5%,10), 2)", "P_G(A_P(5%, 10), 2)"},
		// assignment
		{"x = 4", "x = 4"},
		{"x=43%", "x = 43%"},
		{"pv = A_P(5%, 10) * 1000", "pv = (A_P(5%, 10) * 1000)"},
		{"  spaced   =  1 + 2 ", "spaced = (1 + 2)"},
	}
	for _, c := range cases {
		e, err := Parse(c.src)
		if err != nil {
			t.Errorf("parsing %q: unexpected error %v", c.src, err)
			continue
		}
		if got := e.String(); got != c.want {
			t.Errorf("parsing %q: want %q, got %q", c.src, c.want, got)
		}
	}
}

func TestParseAssignment(t *testing.T) {
	e, err := Parse("rate = 5%")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if name, ok := e.Assignment(); !ok || name != "rate" {
		t.Errorf("want assignment to rate, got %q, %v", name, ok)
	}
	e, err = Parse("rate + 1")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if name, ok := e.Assignment(); ok {
		t.Errorf("want no assignment, got %q", name)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src  string
		want error
	}{
		// nothing to parse
		{"", &EmptyExpressionError{}},
		{"   ", &EmptyExpressionError{}},
		{"()", &EmptyExpressionError{}},
		{"1+", &EmptyExpressionError{}},
		{"1*()", &EmptyExpressionError{}},
		{"A_P(5%, )", &EmptyExpressionError{}},
		{"x =", &EmptyExpressionError{}},
		// operators out of place
		{"*3", &OperatorError{}},
		{"+3", &OperatorError{}},
		{"1*/2", &OperatorError{}},
		// brackets
		{"(2", &BracketError{}},
		{"2)", &BracketError{}},
		{"A_P(5%, 10", &BracketError{}},
		{"(1))", &BracketError{}},
		// separators
		{"1,2", &SeparatorError{}},
		{",", &SeparatorError{}},
		{"(1,2)", &SeparatorError{}},
		// no implicit multiplication
		{"2 3", &TrailingError{}},
		{"2 x", &TrailingError{}},
		{"x y", &TrailingError{}},
		{"2(3)", &TrailingError{}},
		// malformed assignment
		{"3 = 4", &AssignError{}},
		{"(x) = 4", &AssignError{}},
		{"x == 4", &AssignError{}},
		{"x = y = 4", &AssignError{}},
		{"f(x = 4)", &AssignError{}},
		// lexical
		{"4 $ 5", &LexError{}},
		{"x%", &LexError{}},
	}
	for _, c := range cases {
		_, err := Parse(c.src)
		if err == nil {
			t.Errorf("parsing %q: no error", c.src)
			continue
		}
		if reflect.TypeOf(err) != reflect.TypeOf(c.want) {
			t.Errorf("parsing %q: want %T, got %T (%v)", c.src, c.want, err, err)
		}
		var ie InputError
		if !errors.As(err, &ie) {
			t.Errorf("parsing %q: %T does not implement InputError", c.src, err)
			continue
		}
		if ie.Pos() < 1 {
			t.Errorf("parsing %q: nonpositive position %d", c.src, ie.Pos())
		}
	}
}
