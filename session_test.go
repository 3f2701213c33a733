package facalc_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facalc"
)

func TestSessionConstants(t *testing.T) {
	s := facalc.NewSession()
	for name, want := range map[string]float64{
		"pi":  math.Pi,
		"e":   math.E,
		"tau": 2 * math.Pi,
	} {
		v, ok := s.Lookup(name)
		require.True(t, ok, "constant %s is not seeded", name)
		assert.Equal(t, want, v, "constant %s", name)
	}

	// Constants are ordinary variables.
	oc, err := s.Eval("pi = 3")
	require.NoError(t, err)
	assert.Equal(t, facalc.OutcomeAssign, oc.Kind)
	v, _ := s.Lookup("pi")
	assert.Equal(t, 3.0, v)
}

func TestSessionEvalOutcomes(t *testing.T) {
	s := facalc.NewSession()

	oc, err := s.Eval("1 + 2")
	require.NoError(t, err)
	assert.Equal(t, facalc.OutcomeValue, oc.Kind)
	assert.Equal(t, 3.0, oc.Value)

	oc, err = s.Eval("x = 43%")
	require.NoError(t, err)
	assert.Equal(t, facalc.OutcomeAssign, oc.Kind)
	assert.Equal(t, "x", oc.Name)
	assert.Equal(t, 0.43, oc.Value)

	// Assigning with and without the % sign differs by the factor of 100.
	oc, err = s.Eval("y = 43")
	require.NoError(t, err)
	assert.Equal(t, 43.0, oc.Value)

	oc, err = s.Eval("x")
	require.NoError(t, err)
	assert.Equal(t, facalc.OutcomeValue, oc.Kind)
	assert.Equal(t, 0.43, oc.Value)

	// A bound variable participates in later lines.
	oc, err = s.Eval("A_P(x, 10)")
	require.NoError(t, err)
	assert.Equal(t, facalc.AP(0.43, 10), oc.Value)
}

func TestSessionCommandsCaseInsensitive(t *testing.T) {
	s := facalc.NewSession()
	oc, err := s.Eval("  Case ")
	require.NoError(t, err)
	assert.Equal(t, facalc.OutcomeCaseStart, oc.Kind)
	assert.Equal(t, 1, s.Depth())

	oc, err = s.Eval("ENDCASE")
	require.NoError(t, err)
	assert.Equal(t, facalc.OutcomeCaseEnd, oc.Kind)
	assert.Equal(t, 0, s.Depth())

	oc, err = s.Eval("CLS")
	require.NoError(t, err)
	assert.Equal(t, facalc.OutcomeCleared, oc.Kind)
}

func TestSessionScopes(t *testing.T) {
	s := facalc.NewSession()
	_, err := s.Eval("a = 1")
	require.NoError(t, err)

	_, err = s.Eval("case")
	require.NoError(t, err)
	require.Equal(t, 1, s.Depth())

	// Outer bindings are visible inside the case.
	oc, err := s.Eval("a + 1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, oc.Value)

	// Shadow the outer binding and add a local one.
	_, err = s.Eval("a = 2")
	require.NoError(t, err)
	_, err = s.Eval("b = 5")
	require.NoError(t, err)
	oc, err = s.Eval("a * b")
	require.NoError(t, err)
	assert.Equal(t, 10.0, oc.Value)

	// endcase restores the enclosing scope exactly.
	_, err = s.Eval("endcase")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Depth())
	v, ok := s.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	_, ok = s.Lookup("b")
	assert.False(t, ok, "local binding leaked out of the case")
}

func TestSessionNestedScopes(t *testing.T) {
	s := facalc.NewSession()
	_, err := s.Eval("r = 1")
	require.NoError(t, err)
	for i := 1; i <= 3; i++ {
		_, err = s.Eval("case")
		require.NoError(t, err)
		require.Equal(t, i, s.Depth())
		_, err = s.Eval("r = r * 10")
		require.NoError(t, err)
	}
	v, _ := s.Lookup("r")
	assert.Equal(t, 1000.0, v)
	for i := 3; i >= 1; i-- {
		_, err = s.Eval("endcase")
		require.NoError(t, err)
		require.Equal(t, i-1, s.Depth())
	}
	v, _ = s.Lookup("r")
	assert.Equal(t, 1.0, v)
}

func TestSessionStrayEndcase(t *testing.T) {
	s := facalc.NewSession()
	_, err := s.Eval("a = 7")
	require.NoError(t, err)
	s.Record("a = 7", "")

	_, err = s.Eval("endcase")
	var serr *facalc.ScopeError
	require.ErrorAs(t, err, &serr)

	// The failed command changed nothing, and the session still works.
	assert.Equal(t, 0, s.Depth())
	v, ok := s.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, 7.0, v)
	assert.Len(t, s.Transcript(), 1)
	oc, err := s.Eval("a + 1")
	require.NoError(t, err)
	assert.Equal(t, 8.0, oc.Value)
}

func TestSessionTranscript(t *testing.T) {
	s := facalc.NewSession()
	s.Record("1 + 1", "Result: 2")
	s.Record("a = 1", "")
	require.Len(t, s.Transcript(), 2)

	// cls clears the visible transcript but no variables.
	_, err := s.Eval("a = 1")
	require.NoError(t, err)
	oc, err := s.Eval("cls")
	require.NoError(t, err)
	assert.Equal(t, facalc.OutcomeCleared, oc.Kind)
	assert.Empty(t, s.Transcript())
	// A second cls is the same no-op.
	oc, err = s.Eval("cls")
	require.NoError(t, err)
	assert.Equal(t, facalc.OutcomeCleared, oc.Kind)
	assert.Empty(t, s.Transcript())
	_, ok := s.Lookup("a")
	assert.True(t, ok)

	// A case starts with an empty transcript; endcase restores the outer one.
	s.Record("outer", "Result: 1")
	_, err = s.Eval("case")
	require.NoError(t, err)
	assert.Empty(t, s.Transcript())
	s.Record("inner", "Result: 2")
	require.Len(t, s.Transcript(), 1)
	_, err = s.Eval("endcase")
	require.NoError(t, err)
	require.Len(t, s.Transcript(), 1)
	assert.Equal(t, facalc.Entry{In: "outer", Out: "Result: 1"}, s.Transcript()[0])
}

func TestSessionErrorLeavesStateUntouched(t *testing.T) {
	s := facalc.NewSession()
	_, err := s.Eval("a = 2")
	require.NoError(t, err)
	s.Record("a = 2", "")

	for _, line := range []string{"1/0", "b + 1", "nope(1)", "a +", "x%"} {
		_, err := s.Eval(line)
		require.Error(t, err, "line %q", line)
	}

	assert.Equal(t, 0, s.Depth())
	assert.Len(t, s.Transcript(), 1)
	v, _ := s.Lookup("a")
	assert.Equal(t, 2.0, v)
}

func TestSessionNames(t *testing.T) {
	s := facalc.NewSession()
	_, err := s.Eval("myrate = 5%")
	require.NoError(t, err)

	names := s.Names()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "A_P")
	assert.Contains(t, names, "sqrt")
	assert.Contains(t, names, "pi")
	assert.Contains(t, names, "myrate")
}
