package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpreter_Start(t *testing.T) {
	interp := NewInterpreter(newParity(t))

	// Before start, there is no state and sends are ignored
	assert.True(t, interp.State().IsDead())
	assert.False(t, interp.Done())
	interp.Send("1")
	assert.Equal(t, 0, interp.Computation().Len())

	interp.Start()
	assert.Equal(t, Live("q0"), interp.State())

	// Start is idempotent
	interp.Start()
	assert.Equal(t, 1, interp.Computation().Len())
}

func TestInterpreter_MatchesRecord(t *testing.T) {
	m := newParity(t)
	input := []string{"1", "0", "0", "1", "1"}

	interp := NewInterpreter(m)
	interp.Start()
	for _, a := range input {
		interp.Send(a)
	}

	want, err := m.Record(input)
	require.NoError(t, err)
	assert.Equal(t, want, interp.Computation())
	assert.True(t, interp.Accepting())
}

func TestInterpreter_StopsAtDead(t *testing.T) {
	interp := NewInterpreter(newParity(t))
	interp.Start()

	assert.Equal(t, Live("q1"), interp.Send("1"))
	assert.True(t, interp.Send("bogus").IsDead())
	assert.True(t, interp.Done())
	assert.False(t, interp.Accepting())

	// Further symbols are not recorded
	interp.Send("1")
	assert.Equal(t, 3, interp.Computation().Len())

	interp.Reset()
	assert.False(t, interp.Done())
	interp.Start()
	assert.Equal(t, Live("q0"), interp.State())
}

func TestInterpreter_ComputationIsCopy(t *testing.T) {
	interp := NewInterpreter(newParity(t))
	interp.Start()
	interp.Send("1")

	c := interp.Computation()
	c.Steps[0].From = "mutated"
	assert.Equal(t, "q0", interp.Computation().Steps[0].From)
}

func TestBranchInterpreter_MatchesRecord(t *testing.T) {
	m := newChain(t)
	input := []string{"a", "b", "a"}

	interp := NewBranchInterpreter(m)
	assert.True(t, interp.State().IsDead())
	interp.Send("a")

	interp.Start()
	assert.True(t, interp.State().Equal(BranchesOf("s", "t", "u")))
	for _, a := range input {
		interp.Send(a)
	}

	want, err := m.Record(input)
	require.NoError(t, err)
	got := interp.Computation()
	require.Equal(t, want.Len(), got.Len())
	for i := range want.Steps {
		assert.True(t, want.Steps[i].From.Equal(got.Steps[i].From), "step %d", i)
		assert.Equal(t, want.Steps[i].Symbol, got.Steps[i].Symbol, "step %d", i)
		assert.True(t, want.Steps[i].To.Equal(got.Steps[i].To), "step %d", i)
	}
	assert.True(t, interp.Done())
}

func TestBranchInterpreter_KeepsRecordingWhenHalted(t *testing.T) {
	interp := NewBranchInterpreter(newEpsilon(t))
	interp.Start()

	interp.Send("x")
	assert.True(t, interp.Accepting())
	interp.Send("x")
	interp.Send("x")

	assert.True(t, interp.Done())
	assert.False(t, interp.Accepting())
	assert.Equal(t, 4, interp.Computation().Len())

	interp.Reset()
	assert.Equal(t, 0, interp.Computation().Len())
}
