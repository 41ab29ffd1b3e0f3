// Package export builds read-only projections of finished machines and
// computations, and writes them as JSON, YAML, Graphviz DOT or XState JSON.
package export

import (
	"fmt"

	"github.com/felixgeelhaar/automaton"
)

// Machine is the read-only view of a DFSM or NFSM that a Diagram is built from.
// Both *automaton.DFSM and *automaton.NFSM implement it.
type Machine[S, I, O comparable] interface {
	ID() string
	Kind() automaton.Kind
	Start() S
	States() []S
	Alphabet() []I
	Outputs() []O
	IsAccept(s S) bool
	IsAcceptor() bool
	IsMealy() bool
	IsMoore() bool
	MealyOutput(key automaton.Key[S, I]) (O, bool)
	MooreOutput(s S) (O, bool)
	Edges() []automaton.Edge[S, I]
}

// Diagram is the state diagram of a machine with every value rendered as text
type Diagram struct {
	ID       string         `json:"id" yaml:"id"`
	Kind     string         `json:"kind" yaml:"kind"`
	Start    string         `json:"start" yaml:"start"`
	Acceptor bool           `json:"acceptor,omitempty" yaml:"acceptor,omitempty"`
	Mealy    bool           `json:"mealy,omitempty" yaml:"mealy,omitempty"`
	Moore    bool           `json:"moore,omitempty" yaml:"moore,omitempty"`
	Alphabet []string       `json:"alphabet" yaml:"alphabet"`
	Outputs  []string       `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	States   []DiagramState `json:"states" yaml:"states"`
	Edges    []DiagramEdge  `json:"edges" yaml:"edges"`
}

// DiagramState is a node of the diagram
type DiagramState struct {
	Name   string `json:"name" yaml:"name"`
	Accept bool   `json:"accept,omitempty" yaml:"accept,omitempty"`
	Emit   string `json:"emit,omitempty" yaml:"emit,omitempty"`
}

// DiagramEdge groups the targets of one transition key
type DiagramEdge struct {
	From    string   `json:"from" yaml:"from"`
	Symbol  string   `json:"symbol" yaml:"symbol"`
	Epsilon bool     `json:"epsilon,omitempty" yaml:"epsilon,omitempty"`
	To      []string `json:"to" yaml:"to"`
	Emit    string   `json:"emit,omitempty" yaml:"emit,omitempty"`
}

// NewDiagram projects m into a Diagram. States, symbols and edges keep the
// machine's declaration order.
func NewDiagram[S, I, O comparable](m Machine[S, I, O]) *Diagram {
	d := &Diagram{
		ID:       m.ID(),
		Kind:     m.Kind().String(),
		Start:    fmt.Sprint(m.Start()),
		Acceptor: m.IsAcceptor(),
		Mealy:    m.IsMealy(),
		Moore:    m.IsMoore(),
		Alphabet: render(m.Alphabet()),
		Outputs:  render(m.Outputs()),
	}

	for _, s := range m.States() {
		node := DiagramState{Name: fmt.Sprint(s), Accept: m.IsAccept(s)}
		if o, ok := m.MooreOutput(s); ok {
			node.Emit = fmt.Sprint(o)
		}
		d.States = append(d.States, node)
	}

	// Edges arrive grouped by key, so consecutive entries share a DiagramEdge
	var last automaton.Key[S, I]
	for i, e := range m.Edges() {
		key := automaton.Key[S, I]{State: e.From, Symbol: e.Symbol}
		if i > 0 && key == last {
			edge := &d.Edges[len(d.Edges)-1]
			edge.To = append(edge.To, fmt.Sprint(e.To))
			continue
		}
		last = key

		edge := DiagramEdge{
			From:    fmt.Sprint(e.From),
			Symbol:  e.Symbol.String(),
			Epsilon: e.Symbol.IsEpsilon(),
			To:      []string{fmt.Sprint(e.To)},
		}
		if o, ok := m.MealyOutput(key); ok {
			edge.Emit = fmt.Sprint(o)
		}
		d.Edges = append(d.Edges, edge)
	}

	return d
}

// State returns the named state node
func (d *Diagram) State(name string) (DiagramState, bool) {
	for _, s := range d.States {
		if s.Name == name {
			return s, true
		}
	}
	return DiagramState{}, false
}

func render[T any](values []T) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}
	return out
}
