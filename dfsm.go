package automaton

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/automaton/internal/ir"
)

// DFSM is a validated deterministic finite-state machine.
// It is immutable and safe for concurrent use.
type DFSM[S, I, O comparable] struct {
	m *ir.Deterministic[S, I, O]
}

// NewDFSM validates desc and transitions and returns the machine.
// The table must be total over states × alphabet and may not contain epsilon keys.
// Any problem is reported as a *ValidationError listing every issue found.
func NewDFSM[S, I, O comparable](desc Description[S, I, O], transitions map[Key[S, I]]S) (*DFSM[S, I, O], error) {
	m := ir.NewDeterministic(desc, transitions)
	if err := ir.ValidateDeterministic(m); err != nil {
		return nil, err
	}
	return &DFSM[S, I, O]{m: m}, nil
}

// ID returns the machine identifier
func (d *DFSM[S, I, O]) ID() string { return d.m.ID }

// Kind returns KindDeterministic
func (d *DFSM[S, I, O]) Kind() Kind { return KindDeterministic }

// Start returns the start state
func (d *DFSM[S, I, O]) Start() S { return d.m.Start }

// States returns the declared states in declaration order
func (d *DFSM[S, I, O]) States() []S { return append([]S(nil), d.m.States...) }

// Alphabet returns the input alphabet in declaration order
func (d *DFSM[S, I, O]) Alphabet() []I { return append([]I(nil), d.m.Alphabet...) }

// Outputs returns the output alphabet in declaration order
func (d *DFSM[S, I, O]) Outputs() []O { return append([]O(nil), d.m.Outputs...) }

// AcceptStates returns a copy of the accept-state set, nil for transducers
func (d *DFSM[S, I, O]) AcceptStates() Set[S] {
	if d.m.Accept == nil {
		return nil
	}
	return ir.CloneSet(d.m.Accept)
}

// IsAccept reports whether s is an accept state
func (d *DFSM[S, I, O]) IsAccept(s S) bool { return d.m.IsAccept(s) }

// IsAcceptor reports whether the machine has an accept-state set
func (d *DFSM[S, I, O]) IsAcceptor() bool { return d.m.IsAcceptor() }

// IsMealy reports whether the machine carries transition translations
func (d *DFSM[S, I, O]) IsMealy() bool { return d.m.IsMealy() }

// IsMoore reports whether the machine carries state translations
func (d *DFSM[S, I, O]) IsMoore() bool { return d.m.IsMoore() }

// MealyOutput returns the translation of key
func (d *DFSM[S, I, O]) MealyOutput(key Key[S, I]) (O, bool) {
	o, ok := d.m.Mealy[key]
	return o, ok
}

// MooreOutput returns the translation of s
func (d *DFSM[S, I, O]) MooreOutput(s S) (O, bool) {
	o, ok := d.m.Moore[s]
	return o, ok
}

// Order returns the members of set in declaration order
func (d *DFSM[S, I, O]) Order(set Set[S]) []S { return d.m.Order(set) }

// Edges lists every transition in declaration order
func (d *DFSM[S, I, O]) Edges() []Edge[S, I] { return d.m.Edges() }

// Step advances s by one symbol. A missing transition yields Dead.
func (d *DFSM[S, I, O]) Step(s S, a I) Target[S] {
	next, ok := d.m.Next(s, a)
	if !ok {
		return Dead[S]()
	}
	return Live(next)
}

// Record runs the machine over input and returns every step, starting with
// step zero. The record ends at the first step that reaches Dead.
// A nil input is rejected with ErrNullInput; an empty one yields step zero only.
func (d *DFSM[S, I, O]) Record(input []I) (Computation[S, I], error) {
	return d.RecordContext(context.Background(), input)
}

// RecordContext is Record with cancellation checked before every step
func (d *DFSM[S, I, O]) RecordContext(ctx context.Context, input []I) (Computation[S, I], error) {
	if input == nil {
		return Computation[S, I]{}, ErrNullInput
	}

	steps := make([]Step[S, I], 0, len(input)+1)
	steps = append(steps, Step[S, I]{
		From:   d.m.Start,
		Symbol: Epsilon[I](),
		To:     Live(d.m.Start),
	})

	current := d.m.Start
	for i, a := range input {
		if err := ctx.Err(); err != nil {
			return Computation[S, I]{}, fmt.Errorf("computation interrupted at symbol %d: %w", i, err)
		}
		next := d.Step(current, a)
		steps = append(steps, Step[S, I]{From: current, Symbol: Sym(a), To: next})

		s, live := next.State()
		if !live {
			break
		}
		current = s
	}

	return Computation[S, I]{Steps: steps}, nil
}

// Classify returns the outcome of the last recorded step
func (d *DFSM[S, I, O]) Classify(input []I) (Target[S], error) {
	c, err := d.Record(input)
	if err != nil {
		return Target[S]{}, err
	}
	return c.Final(), nil
}

// Accepts reports whether the run over input ends in an accept state.
// A run that reached Dead is never accepted.
func (d *DFSM[S, I, O]) Accepts(input []I) (bool, error) {
	final, err := d.Classify(input)
	if err != nil {
		return false, err
	}
	s, live := final.State()
	return live && d.m.IsAccept(s), nil
}

// Recognizes reports whether every input in inputs is accepted.
// An empty, non-nil set is recognized iff no accept state is reachable.
func (d *DFSM[S, I, O]) Recognizes(inputs [][]I) (bool, error) {
	if err := checkInputs(inputs); err != nil {
		return false, err
	}
	if len(inputs) == 0 {
		return !Intersects(d.Reachable(), d.m.Accept), nil
	}
	for _, input := range inputs {
		ok, err := d.Accepts(input)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Reachable returns every state reachable from the start state
func (d *DFSM[S, I, O]) Reachable() Set[S] {
	seen := NewSet(d.m.Start)
	queue := []S{d.m.Start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, a := range d.m.Alphabet {
			if t, ok := d.m.Next(s, a); ok && seen.Add(t) {
				queue = append(queue, t)
			}
		}
	}
	return seen
}

// TransduceMealy emits the translation of every transition taken.
// Output stops at a step that reaches Dead.
func (d *DFSM[S, I, O]) TransduceMealy(input []I) ([]O, error) {
	if !d.m.IsMealy() {
		return nil, ErrNoTranslations
	}
	c, err := d.Record(input)
	if err != nil {
		return nil, err
	}

	out := make([]O, 0, len(input))
	for _, step := range c.Steps[1:] {
		if step.To.IsDead() {
			break
		}
		o, ok := d.m.Mealy[step.Key()]
		if !ok {
			return nil, ir.NewInternalConsistencyError("mealy", step.Key())
		}
		out = append(out, o)
	}
	return out, nil
}

// TransduceMoore emits the translation of every state visited, the start
// state included. Output stops at a step that reaches Dead.
func (d *DFSM[S, I, O]) TransduceMoore(input []I) ([]O, error) {
	if !d.m.IsMoore() {
		return nil, ErrNoTranslations
	}
	c, err := d.Record(input)
	if err != nil {
		return nil, err
	}

	out := make([]O, 0, len(input)+1)
	for _, step := range c.Steps {
		s, live := step.To.State()
		if !live {
			break
		}
		o, ok := d.m.Moore[s]
		if !ok {
			return nil, ir.NewInternalConsistencyError("moore", s)
		}
		out = append(out, o)
	}
	return out, nil
}

// checkInputs rejects a nil input set or any nil member
func checkInputs[I any](inputs [][]I) error {
	if inputs == nil {
		return ErrNullInput
	}
	for i, input := range inputs {
		if input == nil {
			return fmt.Errorf("input %d: %w", i, ErrNullInput)
		}
	}
	return nil
}
