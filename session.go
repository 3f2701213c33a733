package facalc

import (
	"math"
	"sort"
	"strings"
)

// Entry is one line of visible history: the raw input and the rendered
// output, as the shell chose to display it.
type Entry struct {
	In  string
	Out string
}

// OutcomeKind discriminates what Session.Eval did with a line.
type OutcomeKind int

const (
	// OutcomeValue: the line was an expression; Value holds the result.
	OutcomeValue OutcomeKind = iota
	// OutcomeAssign: Name was bound to Value. Assignment is silent on
	// success; shells report nothing.
	OutcomeAssign
	// OutcomeCaseStart: a new scope was entered.
	OutcomeCaseStart
	// OutcomeCaseEnd: the innermost scope was closed and the enclosing
	// environment and transcript restored.
	OutcomeCaseEnd
	// OutcomeCleared: the visible transcript was cleared.
	OutcomeCleared
)

// Outcome describes the effect of one evaluated line.
type Outcome struct {
	Kind  OutcomeKind
	Name  string
	Value float64
}

type frame struct {
	env        Environment
	transcript []Entry
}

// Session bundles all evaluator state: the current environment and
// transcript plus the stack of scopes opened by case. The zero Session is
// not useful; use NewSession. A Session is not safe for concurrent use; a
// caller running multiple sessions owns the serialization of each.
type Session struct {
	env        Environment
	transcript []Entry
	stack      []frame
}

// NewSession creates a session whose outer environment is seeded with the
// usual math constants. The constants are ordinary variables and may be
// shadowed or overwritten.
func NewSession() *Session {
	return &Session{env: Environment{
		"pi":  math.Pi,
		"e":   math.E,
		"tau": 2 * math.Pi,
	}}
}

// Eval interprets one input line: a scope command (case, endcase, cls), an
// assignment, or an expression. On error the environment, transcript, and
// scope stack are untouched, and the session remains usable.
func (s *Session) Eval(line string) (Outcome, error) {
	// Commands are case-insensitive; variable and function names are not.
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "cls":
		s.transcript = nil
		return Outcome{Kind: OutcomeCleared}, nil
	case "case":
		// The snapshot keeps the enclosing environment itself; the inner
		// scope works on a copy, so outer bindings are visible and
		// shadowable but never mutated through it.
		s.stack = append(s.stack, frame{env: s.env, transcript: s.transcript})
		s.env = s.env.Clone()
		s.transcript = nil
		return Outcome{Kind: OutcomeCaseStart}, nil
	case "endcase":
		if len(s.stack) == 0 {
			return Outcome{}, &ScopeError{}
		}
		top := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		s.env = top.env
		s.transcript = top.transcript
		return Outcome{Kind: OutcomeCaseEnd}, nil
	}
	e, err := Parse(line)
	if err != nil {
		return Outcome{}, err
	}
	v, err := e.Eval(s.env)
	if err != nil {
		return Outcome{}, err
	}
	if name, ok := e.Assignment(); ok {
		s.env[name] = v
		return Outcome{Kind: OutcomeAssign, Name: name, Value: v}, nil
	}
	return Outcome{Kind: OutcomeValue, Value: v}, nil
}

// Record appends one rendered line to the visible transcript.
func (s *Session) Record(in, out string) {
	s.transcript = append(s.transcript, Entry{In: in, Out: out})
}

// Transcript returns a copy of the visible history, oldest first.
func (s *Session) Transcript() []Entry {
	return append([]Entry(nil), s.transcript...)
}

// Depth returns the number of open cases.
func (s *Session) Depth() int {
	return len(s.stack)
}

// Lookup returns the value of a variable in the current scope.
func (s *Session) Lookup(name string) (float64, bool) {
	v, ok := s.env[name]
	return v, ok
}

// Names returns every name the current scope can resolve: builtin functions
// plus variables, sorted. Shells use this for completion.
func (s *Session) Names() []string {
	v := Builtins()
	for k := range s.env {
		v = append(v, k)
	}
	sort.Strings(v)
	return v
}

// ScopeError is the error from endcase with no case open.
type ScopeError struct{}

func (err *ScopeError) Error() string {
	return "no case to end"
}
