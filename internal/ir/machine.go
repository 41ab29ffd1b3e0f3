package ir

import (
	"fmt"
	"slices"
	"sort"
)

// Description is the static, immutable part of a finite-state machine.
// The optional fields select its behaviour: a non-nil Accept makes it an
// acceptor, a non-nil Mealy or Moore map makes it a transducer.
type Description[S, I, O comparable] struct {
	ID       string
	States   []S
	Alphabet []I
	Outputs  []O
	Start    S
	Accept   Set[S]
	Mealy    map[Key[S, I]]O
	Moore    map[S]O

	// Built by the constructors. A Description literal has none and its
	// lookups scan the declaration slices instead.
	stateIndex map[S]int
	symbols    Set[I]
	outputs    Set[O]
}

// Deterministic is a description plus a total single-target transition table
type Deterministic[S, I, O comparable] struct {
	Description[S, I, O]
	Transitions map[Key[S, I]]S
}

// Nondeterministic is a description plus a set-valued transition table.
// HasEpsilon is filled in by Validate.
type Nondeterministic[S, I, O comparable] struct {
	Description[S, I, O]
	Transitions map[Key[S, I]]Set[S]
	HasEpsilon  bool
}

// NewDeterministic copies desc and transitions into a new Deterministic.
// Later changes to the arguments do not affect the result.
func NewDeterministic[S, I, O comparable](desc Description[S, I, O], transitions map[Key[S, I]]S) *Deterministic[S, I, O] {
	table := make(map[Key[S, I]]S, len(transitions))
	for k, v := range transitions {
		table[k] = v
	}
	return &Deterministic[S, I, O]{
		Description: desc.clone(),
		Transitions: table,
	}
}

// NewNondeterministic copies desc and transitions into a new Nondeterministic
func NewNondeterministic[S, I, O comparable](desc Description[S, I, O], transitions map[Key[S, I]]Set[S]) *Nondeterministic[S, I, O] {
	table := make(map[Key[S, I]]Set[S], len(transitions))
	for k, v := range transitions {
		table[k] = CloneSet(v)
	}
	return &Nondeterministic[S, I, O]{
		Description: desc.clone(),
		Transitions: table,
	}
}

// clone deep-copies the description and builds its lookup indexes
func (d Description[S, I, O]) clone() Description[S, I, O] {
	c := Description[S, I, O]{
		ID:       d.ID,
		States:   append([]S(nil), d.States...),
		Alphabet: append([]I(nil), d.Alphabet...),
		Outputs:  append([]O(nil), d.Outputs...),
		Start:    d.Start,
	}
	if d.Accept != nil {
		c.Accept = CloneSet(d.Accept)
	}
	if d.Mealy != nil {
		c.Mealy = make(map[Key[S, I]]O, len(d.Mealy))
		for k, v := range d.Mealy {
			c.Mealy[k] = v
		}
	}
	if d.Moore != nil {
		c.Moore = make(map[S]O, len(d.Moore))
		for k, v := range d.Moore {
			c.Moore[k] = v
		}
	}

	c.stateIndex = indexStates(c.States)
	c.symbols = NewSet(c.Alphabet...)
	c.outputs = NewSet(c.Outputs...)
	return c
}

// IsAcceptor returns true if the machine has an accept-state set
func (d *Description[S, I, O]) IsAcceptor() bool {
	return d.Accept != nil
}

// IsMealy returns true if the machine translates transitions
func (d *Description[S, I, O]) IsMealy() bool {
	return d.Mealy != nil
}

// IsMoore returns true if the machine translates states
func (d *Description[S, I, O]) IsMoore() bool {
	return d.Moore != nil
}

// IsTransducer returns true if either translation map is present
func (d *Description[S, I, O]) IsTransducer() bool {
	return d.IsMealy() || d.IsMoore()
}

// indexStates maps every state to the position of its first declaration
func indexStates[S comparable](states []S) map[S]int {
	index := make(map[S]int, len(states))
	for i, s := range states {
		if _, ok := index[s]; !ok {
			index[s] = i
		}
	}
	return index
}

// HasState reports whether s is a declared state
func (d *Description[S, I, O]) HasState(s S) bool {
	if d.stateIndex == nil {
		return slices.Contains(d.States, s)
	}
	_, ok := d.stateIndex[s]
	return ok
}

// HasSymbol reports whether a is in the input alphabet
func (d *Description[S, I, O]) HasSymbol(a I) bool {
	if d.symbols == nil {
		return slices.Contains(d.Alphabet, a)
	}
	return d.symbols.ContainsOne(a)
}

// HasOutput reports whether o is in the output alphabet
func (d *Description[S, I, O]) HasOutput(o O) bool {
	if d.outputs == nil {
		return slices.Contains(d.Outputs, o)
	}
	return d.outputs.ContainsOne(o)
}

// IsAccept reports whether s is an accept state
func (d *Description[S, I, O]) IsAccept(s S) bool {
	return d.Accept != nil && d.Accept.ContainsOne(s)
}

// Order returns the items of set in declaration order.
// Undeclared states follow, sorted by their printed form.
func (d *Description[S, I, O]) Order(set Set[S]) []S {
	index := d.stateIndex
	if index == nil {
		index = indexStates(d.States)
	}

	ordered := make([]S, 0, SetLen(set))
	var extra []S
	for _, s := range SetItems(set) {
		if _, ok := index[s]; ok {
			ordered = append(ordered, s)
		} else {
			extra = append(extra, s)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		return index[ordered[i]] < index[ordered[j]]
	})
	sort.Slice(extra, func(i, j int) bool {
		return fmt.Sprint(extra[i]) < fmt.Sprint(extra[j])
	})
	return append(ordered, extra...)
}

// Next returns the target of (s, a), or false when no transition exists
func (m *Deterministic[S, I, O]) Next(s S, a I) (S, bool) {
	t, ok := m.Transitions[On(s, a)]
	return t, ok
}

// Edges lists the table in declaration order of states then symbols
func (m *Deterministic[S, I, O]) Edges() []Edge[S, I] {
	edges := make([]Edge[S, I], 0, len(m.Transitions))
	for _, s := range m.States {
		for _, a := range m.Alphabet {
			if t, ok := m.Next(s, a); ok {
				edges = append(edges, Edge[S, I]{From: s, Symbol: Sym(a), To: t})
			}
		}
	}
	return edges
}

// table returns the transition table viewed as set-valued, for validation
func (m *Deterministic[S, I, O]) table() map[Key[S, I]][]S {
	view := make(map[Key[S, I]][]S, len(m.Transitions))
	for k, v := range m.Transitions {
		view[k] = []S{v}
	}
	return view
}

// Targets returns the target set of key, or nil when absent.
// The returned set belongs to the machine and must not be modified.
func (m *Nondeterministic[S, I, O]) Targets(key Key[S, I]) Set[S] {
	return m.Transitions[key]
}

// Edges lists the table in declaration order: for each state, its epsilon
// transitions first, then each alphabet symbol; targets in declaration order
func (m *Nondeterministic[S, I, O]) Edges() []Edge[S, I] {
	var edges []Edge[S, I]
	symbols := make([]Symbol[I], 0, len(m.Alphabet)+1)
	symbols = append(symbols, Epsilon[I]())
	for _, a := range m.Alphabet {
		symbols = append(symbols, Sym(a))
	}
	for _, s := range m.States {
		for _, sym := range symbols {
			targets := m.Transitions[Key[S, I]{State: s, Symbol: sym}]
			for _, t := range m.Order(targets) {
				edges = append(edges, Edge[S, I]{From: s, Symbol: sym, To: t})
			}
		}
	}
	return edges
}

// table returns the transition table with targets as slices, for validation
func (m *Nondeterministic[S, I, O]) table() map[Key[S, I]][]S {
	view := make(map[Key[S, I]][]S, len(m.Transitions))
	for k, v := range m.Transitions {
		view[k] = SetItems(v)
	}
	return view
}
