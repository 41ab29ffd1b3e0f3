package automaton

import (
	"fmt"

	"github.com/felixgeelhaar/automaton/internal/ir"
)

// MachineBuilder provides a fluent API for constructing finite-state machines
type MachineBuilder[S, I, O comparable] struct {
	id       string
	start    S
	hasStart bool
	acceptor bool
	alphabet []I
	outputs  []O
	states   []*StateBuilder[S, I, O]
}

// StateBuilder provides a fluent API for constructing states
type StateBuilder[S, I, O comparable] struct {
	machine     *MachineBuilder[S, I, O]
	id          S
	accept      bool
	emit        O
	emits       bool
	transitions []*TransitionBuilder[S, I, O]
}

// TransitionBuilder provides a fluent API for constructing transitions
type TransitionBuilder[S, I, O comparable] struct {
	state   *StateBuilder[S, I, O]
	symbol  Symbol[I]
	targets []S
	emit    O
	emits   bool
}

// NewMachine creates a new MachineBuilder with the given ID
func NewMachine[S, I, O comparable](id string) *MachineBuilder[S, I, O] {
	return &MachineBuilder[S, I, O]{id: id}
}

// WithStart sets the start state
func (b *MachineBuilder[S, I, O]) WithStart(start S) *MachineBuilder[S, I, O] {
	b.start = start
	b.hasStart = true
	return b
}

// WithAlphabet appends symbols to the input alphabet
func (b *MachineBuilder[S, I, O]) WithAlphabet(symbols ...I) *MachineBuilder[S, I, O] {
	b.alphabet = append(b.alphabet, symbols...)
	return b
}

// WithOutputs appends symbols to the output alphabet
func (b *MachineBuilder[S, I, O]) WithOutputs(outputs ...O) *MachineBuilder[S, I, O] {
	b.outputs = append(b.outputs, outputs...)
	return b
}

// Acceptor marks the machine as an acceptor even if no state accepts.
// Machines without translations are acceptors anyway.
func (b *MachineBuilder[S, I, O]) Acceptor() *MachineBuilder[S, I, O] {
	b.acceptor = true
	return b
}

// State starts building a new state with the given ID
func (b *MachineBuilder[S, I, O]) State(id S) *StateBuilder[S, I, O] {
	sb := &StateBuilder[S, I, O]{
		machine: b,
		id:      id,
	}
	b.states = append(b.states, sb)
	return sb
}

// BuildDFSM constructs and validates a deterministic machine. Each
// transition must have exactly one target and no epsilon transitions are allowed.
func (b *MachineBuilder[S, I, O]) BuildDFSM() (*DFSM[S, I, O], error) {
	desc, errs := b.description()
	table := make(map[Key[S, I]]S)
	b.eachTransition(errs, func(key Key[S, I], tb *TransitionBuilder[S, I, O]) {
		if len(tb.targets) != 1 {
			errs.AddIssue(ir.ErrCodeMultipleTargets,
				fmt.Sprintf("deterministic transition %s has %d targets", key, len(tb.targets)),
				"states", fmt.Sprint(key.State), "on", key.Symbol.String())
			if len(tb.targets) == 0 {
				return
			}
		}
		table[key] = tb.targets[0]
	})

	m := ir.NewDeterministic(desc, table)
	errs.Merge(ir.ValidateDeterministic(m))
	if errs.HasIssues() {
		errs.Sort()
		return nil, errs
	}
	return &DFSM[S, I, O]{m: m}, nil
}

// BuildNFSM constructs and validates a nondeterministic machine
func (b *MachineBuilder[S, I, O]) BuildNFSM() (*NFSM[S, I, O], error) {
	desc, errs := b.description()
	table := make(map[Key[S, I]]Set[S])
	b.eachTransition(errs, func(key Key[S, I], tb *TransitionBuilder[S, I, O]) {
		table[key] = NewSet(tb.targets...)
	})

	m := ir.NewNondeterministic(desc, table)
	errs.Merge(ir.ValidateNondeterministic(m))
	if errs.HasIssues() {
		errs.Sort()
		return nil, errs
	}
	return &NFSM[S, I, O]{m: m}, nil
}

// description assembles the static part of the machine and reports
// builder-level problems: a missing start state or a state declared twice
func (b *MachineBuilder[S, I, O]) description() (Description[S, I, O], *ValidationError) {
	errs := &ValidationError{}
	if !b.hasStart {
		errs.AddIssue(ir.ErrCodeMissingStart, "machine has no start state")
	}

	desc := Description[S, I, O]{
		ID:       b.id,
		Start:    b.start,
		Alphabet: b.alphabet,
		Outputs:  b.outputs,
	}

	seen := NewSet[S]()
	accept := NewSet[S]()
	var mealy map[Key[S, I]]O
	var moore map[S]O
	for _, sb := range b.states {
		if !seen.Add(sb.id) {
			errs.AddIssue(ir.ErrCodeDuplicateState,
				fmt.Sprintf("state %v is declared more than once", sb.id),
				"states", fmt.Sprint(sb.id))
			continue
		}
		desc.States = append(desc.States, sb.id)
		if sb.accept {
			accept.Add(sb.id)
		}
		if sb.emits {
			if moore == nil {
				moore = make(map[S]O)
			}
			moore[sb.id] = sb.emit
		}
		for _, tb := range sb.transitions {
			if tb.emits {
				if mealy == nil {
					mealy = make(map[Key[S, I]]O)
				}
				mealy[tb.key()] = tb.emit
			}
		}
	}

	desc.Mealy = mealy
	desc.Moore = moore
	if b.acceptor || accept.Cardinality() > 0 || (mealy == nil && moore == nil) {
		desc.Accept = accept
	}
	return desc, errs
}

// eachTransition calls fn once per distinct transition key, reporting
// any key declared twice
func (b *MachineBuilder[S, I, O]) eachTransition(errs *ValidationError, fn func(Key[S, I], *TransitionBuilder[S, I, O])) {
	seen := make(map[Key[S, I]]bool)
	for _, sb := range b.states {
		for _, tb := range sb.transitions {
			key := tb.key()
			if seen[key] {
				errs.AddIssue(ir.ErrCodeDuplicateTransition,
					fmt.Sprintf("transition %s is declared more than once", key),
					"states", fmt.Sprint(key.State), "on", key.Symbol.String())
				continue
			}
			seen[key] = true
			fn(key, tb)
		}
	}
}

// --- StateBuilder methods ---

// Accept marks this state as an accept state
func (b *StateBuilder[S, I, O]) Accept() *StateBuilder[S, I, O] {
	b.accept = true
	return b
}

// Emit sets the Moore output of this state
func (b *StateBuilder[S, I, O]) Emit(output O) *StateBuilder[S, I, O] {
	b.emit = output
	b.emits = true
	return b
}

// On starts building a new transition reading symbol
func (b *StateBuilder[S, I, O]) On(symbol I) *TransitionBuilder[S, I, O] {
	return b.transition(Sym(symbol))
}

// OnEpsilon starts building a new epsilon transition
func (b *StateBuilder[S, I, O]) OnEpsilon() *TransitionBuilder[S, I, O] {
	return b.transition(Epsilon[I]())
}

func (b *StateBuilder[S, I, O]) transition(symbol Symbol[I]) *TransitionBuilder[S, I, O] {
	tb := &TransitionBuilder[S, I, O]{
		state:  b,
		symbol: symbol,
	}
	b.transitions = append(b.transitions, tb)
	return tb
}

// Done completes the state definition and returns to the machine builder
func (b *StateBuilder[S, I, O]) Done() *MachineBuilder[S, I, O] {
	return b.machine
}

// --- TransitionBuilder methods ---

// Target adds target states to the transition.
// Deterministic machines require exactly one.
func (b *TransitionBuilder[S, I, O]) Target(targets ...S) *TransitionBuilder[S, I, O] {
	b.targets = append(b.targets, targets...)
	return b
}

// Emit sets the Mealy output of the transition
func (b *TransitionBuilder[S, I, O]) Emit(output O) *TransitionBuilder[S, I, O] {
	b.emit = output
	b.emits = true
	return b
}

// On starts a new transition on the same state (chainable)
func (b *TransitionBuilder[S, I, O]) On(symbol I) *TransitionBuilder[S, I, O] {
	return b.state.On(symbol)
}

// OnEpsilon starts a new epsilon transition on the same state (chainable)
func (b *TransitionBuilder[S, I, O]) OnEpsilon() *TransitionBuilder[S, I, O] {
	return b.state.OnEpsilon()
}

// Done completes the state definition and returns to the machine builder
func (b *TransitionBuilder[S, I, O]) Done() *MachineBuilder[S, I, O] {
	return b.state.Done()
}

func (b *TransitionBuilder[S, I, O]) key() Key[S, I] {
	return Key[S, I]{State: b.state.id, Symbol: b.symbol}
}
