package export

import (
	"fmt"

	"github.com/felixgeelhaar/automaton"
	"github.com/google/uuid"
)

// LinearTrace is the path taken by a deterministic computation
type LinearTrace struct {
	RunID    string      `json:"runId" yaml:"runId"`
	Machine  string      `json:"machine" yaml:"machine"`
	Read     []string    `json:"read" yaml:"read"`
	Steps    []TraceStep `json:"steps" yaml:"steps"`
	Final    string      `json:"final" yaml:"final"`
	Halted   bool        `json:"halted" yaml:"halted"`
	Accepted *bool       `json:"accepted,omitempty" yaml:"accepted,omitempty"`
}

// TraceStep is one recorded step. Step zero has no symbol.
type TraceStep struct {
	Index  int    `json:"index" yaml:"index"`
	From   string `json:"from" yaml:"from"`
	Symbol string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	To     string `json:"to" yaml:"to"`
	Dead   bool   `json:"dead,omitempty" yaml:"dead,omitempty"`
}

// NewLinearTrace projects a computation of m. Accepted is only set for acceptors.
func NewLinearTrace[S, I, O comparable](m *automaton.DFSM[S, I, O], c automaton.Computation[S, I]) *LinearTrace {
	t := &LinearTrace{
		RunID:   uuid.NewString(),
		Machine: m.ID(),
		Read:    []string{},
		Steps:   make([]TraceStep, 0, c.Len()),
		Final:   c.Final().String(),
		Halted:  c.Halted(),
	}

	for i, step := range c.Steps {
		ts := TraceStep{
			Index: i,
			From:  fmt.Sprint(step.From),
			To:    step.To.String(),
			Dead:  step.To.IsDead(),
		}
		if a, ok := step.Symbol.Value(); ok {
			ts.Symbol = fmt.Sprint(a)
			t.Read = append(t.Read, ts.Symbol)
		}
		t.Steps = append(t.Steps, ts)
	}

	if m.IsAcceptor() {
		s, live := c.Final().State()
		accepted := live && m.IsAccept(s)
		t.Accepted = &accepted
	}
	return t
}

// BranchTrace is the layered branch tree of a nondeterministic computation.
// Layer i holds the configuration after step i, each state linked to the
// states of layer i-1 it was reached from.
type BranchTrace struct {
	RunID    string        `json:"runId" yaml:"runId"`
	Machine  string        `json:"machine" yaml:"machine"`
	Read     []string      `json:"read" yaml:"read"`
	Layers   []BranchLayer `json:"layers" yaml:"layers"`
	Final    []string      `json:"final" yaml:"final"`
	Halted   bool          `json:"halted" yaml:"halted"`
	Accepted *bool         `json:"accepted,omitempty" yaml:"accepted,omitempty"`
}

// BranchLayer is the configuration after one step
type BranchLayer struct {
	Index  int          `json:"index" yaml:"index"`
	Symbol string       `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Nodes  []BranchNode `json:"nodes" yaml:"nodes"`
	Halted bool         `json:"halted,omitempty" yaml:"halted,omitempty"`
}

// BranchNode is a live state of a layer
type BranchNode struct {
	State   string   `json:"state" yaml:"state"`
	Parents []string `json:"parents,omitempty" yaml:"parents,omitempty"`
}

// NewBranchTrace projects a computation of m. Parent links are recovered
// from the machine's table, so c must have been recorded by m.
func NewBranchTrace[S, I, O comparable](m *automaton.NFSM[S, I, O], c automaton.BranchComputation[S, I]) *BranchTrace {
	t := &BranchTrace{
		RunID:   uuid.NewString(),
		Machine: m.ID(),
		Read:    []string{},
		Layers:  make([]BranchLayer, 0, c.Len()),
		Final:   render(m.Order(c.Final().States())),
		Halted:  c.Halted(),
	}
	if t.Final == nil {
		t.Final = []string{}
	}

	for i, step := range c.Steps {
		layer := BranchLayer{Index: i, Nodes: []BranchNode{}, Halted: step.To.IsDead()}

		// Step zero reads nothing: its branches come from the start state's closure
		reached := make(map[S]automaton.Set[S])
		parents := m.Order(step.From.States())
		if a, ok := step.Symbol.Value(); ok {
			layer.Symbol = fmt.Sprint(a)
			t.Read = append(t.Read, layer.Symbol)
			for _, p := range parents {
				reached[p] = m.ClosureOf(m.Successors(p, a))
			}
		} else {
			for _, p := range parents {
				reached[p] = m.ClosureOf(automaton.NewSet(p))
			}
		}

		for _, s := range m.Order(step.To.States()) {
			node := BranchNode{State: fmt.Sprint(s)}
			for _, p := range parents {
				if reached[p].Contains(s) && (i > 0 || p != s) {
					node.Parents = append(node.Parents, fmt.Sprint(p))
				}
			}
			layer.Nodes = append(layer.Nodes, node)
		}
		t.Layers = append(t.Layers, layer)
	}

	if m.IsAcceptor() {
		accepted := c.Final().Intersects(m.AcceptStates())
		t.Accepted = &accepted
	}
	return t
}
