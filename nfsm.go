package automaton

import (
	"context"
	"fmt"
	"slices"

	"github.com/felixgeelhaar/automaton/internal/ir"
)

// NFSM is a validated nondeterministic finite-state machine.
// It is immutable and safe for concurrent use.
type NFSM[S, I, O comparable] struct {
	m *ir.Nondeterministic[S, I, O]
}

// NewNFSM validates desc and transitions and returns the machine.
// The table may be partial, and acceptors may use epsilon keys.
func NewNFSM[S, I, O comparable](desc Description[S, I, O], transitions map[Key[S, I]]Set[S]) (*NFSM[S, I, O], error) {
	m := ir.NewNondeterministic(desc, transitions)
	if err := ir.ValidateNondeterministic(m); err != nil {
		return nil, err
	}
	return &NFSM[S, I, O]{m: m}, nil
}

// ID returns the machine identifier
func (n *NFSM[S, I, O]) ID() string { return n.m.ID }

// Kind returns KindNondeterministic
func (n *NFSM[S, I, O]) Kind() Kind { return KindNondeterministic }

// Start returns the start state
func (n *NFSM[S, I, O]) Start() S { return n.m.Start }

// States returns the declared states in declaration order
func (n *NFSM[S, I, O]) States() []S { return append([]S(nil), n.m.States...) }

// Alphabet returns the input alphabet in declaration order
func (n *NFSM[S, I, O]) Alphabet() []I { return append([]I(nil), n.m.Alphabet...) }

// Outputs returns the output alphabet in declaration order
func (n *NFSM[S, I, O]) Outputs() []O { return append([]O(nil), n.m.Outputs...) }

// AcceptStates returns a copy of the accept-state set, nil for transducers
func (n *NFSM[S, I, O]) AcceptStates() Set[S] {
	if n.m.Accept == nil {
		return nil
	}
	return ir.CloneSet(n.m.Accept)
}

// IsAccept reports whether s is an accept state
func (n *NFSM[S, I, O]) IsAccept(s S) bool { return n.m.IsAccept(s) }

// IsAcceptor reports whether the machine has an accept-state set
func (n *NFSM[S, I, O]) IsAcceptor() bool { return n.m.IsAcceptor() }

// IsMealy reports whether the machine carries transition translations
func (n *NFSM[S, I, O]) IsMealy() bool { return n.m.IsMealy() }

// IsMoore reports whether the machine carries state translations
func (n *NFSM[S, I, O]) IsMoore() bool { return n.m.IsMoore() }

// MealyOutput returns the translation of key
func (n *NFSM[S, I, O]) MealyOutput(key Key[S, I]) (O, bool) {
	o, ok := n.m.Mealy[key]
	return o, ok
}

// MooreOutput returns the translation of s
func (n *NFSM[S, I, O]) MooreOutput(s S) (O, bool) {
	o, ok := n.m.Moore[s]
	return o, ok
}

// HasEpsilon reports whether the table contains any epsilon transition
func (n *NFSM[S, I, O]) HasEpsilon() bool { return n.m.HasEpsilon }

// Order returns the members of set in declaration order
func (n *NFSM[S, I, O]) Order(set Set[S]) []S { return n.m.Order(set) }

// Edges lists every transition in declaration order
func (n *NFSM[S, I, O]) Edges() []Edge[S, I] { return n.m.Edges() }

// Successors returns the targets of (s, a) without closure.
// The result is a fresh set, empty when no transition exists.
func (n *NFSM[S, I, O]) Successors(s S, a I) Set[S] {
	return ir.CloneSet(n.m.Targets(On(s, a)))
}

// Closure returns every state reachable from s through zero or more
// epsilon transitions. The result always contains s.
func (n *NFSM[S, I, O]) Closure(s S) Set[S] {
	return n.ClosureOf(NewSet(s))
}

// ClosureOf returns the union of the closures of every member of states.
// Without epsilon transitions it is a copy of states.
func (n *NFSM[S, I, O]) ClosureOf(states Set[S]) Set[S] {
	closure := ir.CloneSet(states)
	if !n.m.HasEpsilon {
		return closure
	}

	frontier := n.m.Order(closure)
	for len(frontier) > 0 {
		s := frontier[0]
		frontier = frontier[1:]
		for _, t := range n.m.Order(n.m.Targets(EpsilonFrom[S, I](s))) {
			if closure.Add(t) {
				frontier = append(frontier, t)
			}
		}
	}
	return closure
}

// Step advances every branch of cfg by one symbol and closes the result.
// Branches without a transition on a die; if none survive the result is Halted.
func (n *NFSM[S, I, O]) Step(cfg Configuration[S], a I) Configuration[S] {
	raw := NewSet[S]()
	cfg.Each(func(s S) {
		raw.Append(ir.SetItems(n.m.Targets(On(s, a)))...)
	})
	if raw.IsEmpty() {
		return Halted[S]()
	}
	return Branches(n.ClosureOf(raw))
}

// Record runs the machine over input and returns one step per symbol plus
// step zero, whose result is the closure of the start state. The record is
// never truncated: once halted, every later step is Halted to Halted.
func (n *NFSM[S, I, O]) Record(input []I) (BranchComputation[S, I], error) {
	return n.RecordContext(context.Background(), input)
}

// RecordContext is Record with cancellation checked before every step
func (n *NFSM[S, I, O]) RecordContext(ctx context.Context, input []I) (BranchComputation[S, I], error) {
	if input == nil {
		return BranchComputation[S, I]{}, ErrNullInput
	}

	steps := make([]BranchStep[S, I], 0, len(input)+1)
	current := Branches(n.Closure(n.m.Start))
	steps = append(steps, BranchStep[S, I]{
		From:   BranchesOf(n.m.Start),
		Symbol: Epsilon[I](),
		To:     current,
	})

	for i, a := range input {
		if err := ctx.Err(); err != nil {
			return BranchComputation[S, I]{}, fmt.Errorf("computation interrupted at symbol %d: %w", i, err)
		}
		next := n.Step(current, a)
		steps = append(steps, BranchStep[S, I]{From: current, Symbol: Sym(a), To: next})
		current = next
	}

	return BranchComputation[S, I]{Steps: steps}, nil
}

// Classify returns the configuration after the last step
func (n *NFSM[S, I, O]) Classify(input []I) (Configuration[S], error) {
	c, err := n.Record(input)
	if err != nil {
		return Halted[S](), err
	}
	return c.Final(), nil
}

// Accepts reports whether any surviving branch ends in an accept state
func (n *NFSM[S, I, O]) Accepts(input []I) (bool, error) {
	final, err := n.Classify(input)
	if err != nil {
		return false, err
	}
	return final.Intersects(n.m.Accept), nil
}

// Recognizes reports whether every input in inputs is accepted.
// An empty, non-nil set is recognized iff no accept state is reachable.
func (n *NFSM[S, I, O]) Recognizes(inputs [][]I) (bool, error) {
	if err := checkInputs(inputs); err != nil {
		return false, err
	}
	if len(inputs) == 0 {
		return !Intersects(n.Reachable(), n.m.Accept), nil
	}
	for _, input := range inputs {
		ok, err := n.Accepts(input)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Reachable returns every state reachable from the start state through
// any sequence of symbol or epsilon transitions
func (n *NFSM[S, I, O]) Reachable() Set[S] {
	symbols := make([]Symbol[I], 0, len(n.m.Alphabet)+1)
	symbols = append(symbols, Epsilon[I]())
	for _, a := range n.m.Alphabet {
		symbols = append(symbols, Sym(a))
	}

	seen := n.Closure(n.m.Start)
	queue := n.m.Order(seen)
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, sym := range symbols {
			for _, t := range n.m.Order(n.m.Targets(Key[S, I]{State: s, Symbol: sym})) {
				if seen.Add(t) {
					queue = append(queue, t)
				}
			}
		}
	}
	return seen
}

// branchPath is the output produced so far along one branch
type branchPath[S, O comparable] struct {
	state S
	out   []O
}

// TransduceMealy returns one output sequence per surviving branch, each
// extended by the translation of every transition it takes. Duplicate
// sequences are merged; the result follows the declaration order of the
// states the branches end in. If every branch dies the result is empty.
func (n *NFSM[S, I, O]) TransduceMealy(input []I) ([][]O, error) {
	if !n.m.IsMealy() {
		return nil, ErrNoTranslations
	}
	return n.transduce(input, nil, func(key Key[S, I], _ S) (O, error) {
		o, ok := n.m.Mealy[key]
		if !ok {
			return o, ir.NewInternalConsistencyError("mealy", key)
		}
		return o, nil
	})
}

// TransduceMoore returns one output sequence per surviving branch, each
// starting with the translation of the start state and extended by the
// translation of every state entered.
func (n *NFSM[S, I, O]) TransduceMoore(input []I) ([][]O, error) {
	if !n.m.IsMoore() {
		return nil, ErrNoTranslations
	}
	emit := func(_ Key[S, I], s S) (O, error) {
		o, ok := n.m.Moore[s]
		if !ok {
			return o, ir.NewInternalConsistencyError("moore", s)
		}
		return o, nil
	}
	return n.transduce(input, emit, emit)
}

// transduce follows every branch path over input. initial, when set,
// produces the first output of each path from its starting state; step
// produces the output of each transition taken.
func (n *NFSM[S, I, O]) transduce(
	input []I,
	initial func(Key[S, I], S) (O, error),
	step func(Key[S, I], S) (O, error),
) ([][]O, error) {
	if input == nil {
		return nil, ErrNullInput
	}

	var paths []branchPath[S, O]
	for _, s := range n.m.Order(n.Closure(n.m.Start)) {
		p := branchPath[S, O]{state: s, out: make([]O, 0, len(input)+1)}
		if initial != nil {
			o, err := initial(EpsilonFrom[S, I](s), s)
			if err != nil {
				return nil, err
			}
			p.out = append(p.out, o)
		}
		paths = append(paths, p)
	}

	for _, a := range input {
		var next []branchPath[S, O]
		for _, p := range paths {
			key := On(p.state, a)
			for _, t := range n.m.Order(n.m.Targets(key)) {
				o, err := step(key, t)
				if err != nil {
					return nil, err
				}
				out := append(slices.Clip(p.out), o)
				next = appendPath(next, branchPath[S, O]{state: t, out: out})
			}
		}
		paths = next
	}

	return n.collect(paths), nil
}

// appendPath adds p unless an identical path is already present
func appendPath[S, O comparable](paths []branchPath[S, O], p branchPath[S, O]) []branchPath[S, O] {
	for _, q := range paths {
		if q.state == p.state && slices.Equal(q.out, p.out) {
			return paths
		}
	}
	return append(paths, p)
}

// collect orders paths by end state and drops repeated sequences
func (n *NFSM[S, I, O]) collect(paths []branchPath[S, O]) [][]O {
	byState := make(map[S][]branchPath[S, O], len(paths))
	ends := NewSet[S]()
	for _, p := range paths {
		byState[p.state] = append(byState[p.state], p)
		ends.Add(p.state)
	}

	result := make([][]O, 0, len(paths))
	for _, s := range n.m.Order(ends) {
		for _, p := range byState[s] {
			if !slices.ContainsFunc(result, func(out []O) bool { return slices.Equal(out, p.out) }) {
				result = append(result, p.out)
			}
		}
	}
	return result
}
