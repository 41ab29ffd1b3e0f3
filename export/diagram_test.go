package export

import (
	"testing"

	"github.com/felixgeelhaar/automaton"
)

func buildParity(t *testing.T) *automaton.DFSM[string, string, string] {
	t.Helper()
	m, err := automaton.NewMachine[string, string, string]("parity").
		WithStart("q0").
		WithAlphabet("0", "1").
		State("q0").On("0").Target("q0").On("1").Target("q1").Done().
		State("q1").Accept().On("0").Target("q1").On("1").Target("q0").Done().
		BuildDFSM()
	if err != nil {
		t.Fatalf("failed to build machine: %v", err)
	}
	return m
}

func buildMealy(t *testing.T) *automaton.DFSM[string, int, string] {
	t.Helper()
	m, err := automaton.NewMachine[string, int, string]("mealy").
		WithStart("even").
		WithAlphabet(0, 1).
		WithOutputs("e", "o").
		State("even").On(0).Target("even").Emit("e").On(1).Target("odd").Emit("o").Done().
		State("odd").On(0).Target("odd").Emit("o").On(1).Target("even").Emit("e").Done().
		BuildDFSM()
	if err != nil {
		t.Fatalf("failed to build machine: %v", err)
	}
	return m
}

func buildBranching(t *testing.T) *automaton.NFSM[string, string, string] {
	t.Helper()
	m, err := automaton.NewMachine[string, string, string]("branching").
		WithStart("a").
		WithAlphabet("x").
		State("a").OnEpsilon().Target("b").On("x").Target("a", "c").Done().
		State("b").On("x").Target("c").Done().
		State("c").Accept().Done().
		BuildNFSM()
	if err != nil {
		t.Fatalf("failed to build machine: %v", err)
	}
	return m
}

func TestNewDiagram_Acceptor(t *testing.T) {
	d := NewDiagram(buildParity(t))

	if d.ID != "parity" || d.Kind != "deterministic" || d.Start != "q0" {
		t.Errorf("unexpected header: %+v", d)
	}
	if !d.Acceptor || d.Mealy || d.Moore {
		t.Errorf("expected a plain acceptor, got %+v", d)
	}
	if len(d.States) != 2 || d.States[1].Name != "q1" || !d.States[1].Accept {
		t.Errorf("unexpected states: %+v", d.States)
	}
	if len(d.Edges) != 4 {
		t.Fatalf("expected 4 edges, got %d", len(d.Edges))
	}
	if e := d.Edges[1]; e.From != "q0" || e.Symbol != "1" || len(e.To) != 1 || e.To[0] != "q1" {
		t.Errorf("expected q0 -1-> q1, got %+v", e)
	}
}

func TestNewDiagram_Mealy(t *testing.T) {
	d := NewDiagram(buildMealy(t))

	if !d.Mealy || d.Acceptor {
		t.Errorf("expected a Mealy transducer, got %+v", d)
	}
	if len(d.Alphabet) != 2 || d.Alphabet[1] != "1" {
		t.Errorf("expected alphabet [0 1], got %v", d.Alphabet)
	}
	if e := d.Edges[1]; e.To[0] != "odd" || e.Emit != "o" {
		t.Errorf("expected even -1/o-> odd, got %+v", e)
	}
}

func TestNewDiagram_GroupsTargets(t *testing.T) {
	d := NewDiagram(buildBranching(t))

	if d.Kind != "nondeterministic" {
		t.Errorf("expected nondeterministic, got %s", d.Kind)
	}
	// a: epsilon first, then x with two targets
	if len(d.Edges) != 3 {
		t.Fatalf("expected 3 grouped edges, got %+v", d.Edges)
	}
	if e := d.Edges[0]; !e.Epsilon || e.Symbol != "ε" || e.To[0] != "b" {
		t.Errorf("expected epsilon edge a -> b, got %+v", e)
	}
	if e := d.Edges[1]; e.Symbol != "x" || len(e.To) != 2 || e.To[0] != "a" || e.To[1] != "c" {
		t.Errorf("expected a -x-> {a, c}, got %+v", e)
	}

	if s, ok := d.State("c"); !ok || !s.Accept {
		t.Errorf("expected accepting c, got %+v", s)
	}
	if _, ok := d.State("missing"); ok {
		t.Error("expected unknown state lookup to fail")
	}
}
