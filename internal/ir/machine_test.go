package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeterministic_CopiesInputs(t *testing.T) {
	desc := parityDescription()
	table := parityTable()
	m := NewDeterministic(desc, table)

	desc.States[0] = "changed"
	desc.Accept.Add("q0")
	table[On("q0", "0")] = "q1"

	assert.Equal(t, []string{"q0", "q1"}, m.States)
	assert.False(t, m.IsAccept("q0"))
	next, ok := m.Next("q0", "0")
	require.True(t, ok)
	assert.Equal(t, "q0", next)
}

func TestDescription_Kinds(t *testing.T) {
	desc := parityDescription()
	m := NewDeterministic(desc, parityTable())
	assert.True(t, m.IsAcceptor())
	assert.False(t, m.IsTransducer())

	desc.Accept = nil
	desc.Moore = map[string]string{"q0": "a", "q1": "b"}
	m = NewDeterministic(desc, parityTable())
	assert.False(t, m.IsAcceptor())
	assert.True(t, m.IsMoore())
	assert.False(t, m.IsMealy())
	assert.True(t, m.IsTransducer())
}

func TestDescription_Order(t *testing.T) {
	m := NewNondeterministic(Description[string, string, string]{
		States: []string{"c", "a", "b"},
		Start:  "c",
	}, nil)

	got := m.Order(NewSet("a", "b", "c", "zz", "yy"))
	assert.Equal(t, []string{"c", "a", "b", "yy", "zz"}, got)
}

func TestDescription_LookupsOnLiteral(t *testing.T) {
	desc := parityDescription()
	desc.Outputs = []string{"even", "odd"}

	assert.True(t, desc.HasState("q0"))
	assert.True(t, desc.HasState("q1"))
	assert.False(t, desc.HasState("q2"))
	assert.True(t, desc.HasSymbol("1"))
	assert.False(t, desc.HasSymbol("2"))
	assert.True(t, desc.HasOutput("odd"))
	assert.False(t, desc.HasOutput("zero"))
	assert.True(t, desc.IsAccept("q1"))
	assert.Equal(t, []string{"q0", "q1", "zz"}, desc.Order(NewSet("zz", "q1", "q0")))

	built := NewDeterministic(desc, parityTable())
	for _, s := range []string{"q0", "q1", "q2"} {
		assert.Equal(t, desc.HasState(s), built.HasState(s), "state %s", s)
	}
	assert.Equal(t, desc.Order(NewSet("q1", "q0")), built.Order(NewSet("q1", "q0")))

	var transducer Description[string, string, string]
	assert.False(t, transducer.IsAccept("q0"))
	assert.Empty(t, transducer.Order(nil))
}

func TestDeterministic_Edges(t *testing.T) {
	m := NewDeterministic(parityDescription(), parityTable())

	edges := m.Edges()
	require.Len(t, edges, 4)
	assert.Equal(t, Edge[string, string]{From: "q0", Symbol: Sym("0"), To: "q0"}, edges[0])
	assert.Equal(t, Edge[string, string]{From: "q0", Symbol: Sym("1"), To: "q1"}, edges[1])
	assert.Equal(t, Edge[string, string]{From: "q1", Symbol: Sym("1"), To: "q0"}, edges[3])
}

func TestNondeterministic_Edges(t *testing.T) {
	m := NewNondeterministic(Description[string, string, string]{
		States:   []string{"a", "b", "c"},
		Alphabet: []string{"x"},
		Start:    "a",
	}, map[Key[string, string]]Set[string]{
		On("a", "x"):                     NewSet("c", "b"),
		EpsilonFrom[string, string]("a"): NewSet("b"),
	})

	edges := m.Edges()
	require.Len(t, edges, 3)
	assert.True(t, edges[0].Symbol.IsEpsilon())
	assert.Equal(t, "b", edges[0].To)
	assert.Equal(t, "b", edges[1].To)
	assert.Equal(t, "c", edges[2].To)
}

func TestSymbolAndKey_String(t *testing.T) {
	assert.Equal(t, "ε", Epsilon[string]().String())
	assert.Equal(t, "x", Sym("x").String())
	assert.Equal(t, "(q0, 1)", On("q0", 1).String())
	assert.Equal(t, "(q0, ε)", EpsilonFrom[string, int]("q0").String())

	a, ok := Sym(3).Value()
	assert.True(t, ok)
	assert.Equal(t, 3, a)
	_, ok = Epsilon[int]().Value()
	assert.False(t, ok)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "deterministic", KindDeterministic.String())
	assert.Equal(t, "nondeterministic", KindNondeterministic.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
