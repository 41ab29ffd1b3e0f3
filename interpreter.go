package automaton

// Interpreter runs a DFSM one symbol at a time. It is not safe for
// concurrent use; create one interpreter per caller.
type Interpreter[S, I, O comparable] struct {
	machine *DFSM[S, I, O]
	steps   []Step[S, I]
	started bool
}

// NewInterpreter creates a new interpreter for the given machine
func NewInterpreter[S, I, O comparable](machine *DFSM[S, I, O]) *Interpreter[S, I, O] {
	return &Interpreter[S, I, O]{machine: machine}
}

// Start records step zero and enters the start state
func (i *Interpreter[S, I, O]) Start() {
	if i.started {
		return
	}
	i.started = true

	start := i.machine.Start()
	i.steps = append(i.steps, Step[S, I]{
		From:   start,
		Symbol: Epsilon[I](),
		To:     Live(start),
	})
}

// Reset discards the run so far; Start must be called again
func (i *Interpreter[S, I, O]) Reset() {
	i.steps = nil
	i.started = false
}

// State returns the current outcome, Dead before Start
func (i *Interpreter[S, I, O]) State() Target[S] {
	if len(i.steps) == 0 {
		return Dead[S]()
	}
	return i.steps[len(i.steps)-1].To
}

// Done returns true once the machine has reached Dead
func (i *Interpreter[S, I, O]) Done() bool {
	return i.started && i.State().IsDead()
}

// Accepting reports whether the current state is an accept state
func (i *Interpreter[S, I, O]) Accepting() bool {
	s, live := i.State().State()
	return i.started && live && i.machine.IsAccept(s)
}

// Send reads one symbol. It is ignored before Start and after Done.
func (i *Interpreter[S, I, O]) Send(symbol I) Target[S] {
	if !i.started || i.Done() {
		return i.State()
	}

	current, _ := i.State().State()
	next := i.machine.Step(current, symbol)
	i.steps = append(i.steps, Step[S, I]{From: current, Symbol: Sym(symbol), To: next})
	return next
}

// Computation returns a copy of the steps recorded so far
func (i *Interpreter[S, I, O]) Computation() Computation[S, I] {
	return Computation[S, I]{Steps: append([]Step[S, I](nil), i.steps...)}
}

// BranchInterpreter runs an NFSM one symbol at a time. It is not safe for
// concurrent use; create one interpreter per caller.
type BranchInterpreter[S, I, O comparable] struct {
	machine *NFSM[S, I, O]
	steps   []BranchStep[S, I]
	started bool
}

// NewBranchInterpreter creates a new interpreter for the given machine
func NewBranchInterpreter[S, I, O comparable](machine *NFSM[S, I, O]) *BranchInterpreter[S, I, O] {
	return &BranchInterpreter[S, I, O]{machine: machine}
}

// Start records step zero and enters the closure of the start state
func (i *BranchInterpreter[S, I, O]) Start() {
	if i.started {
		return
	}
	i.started = true

	start := i.machine.Start()
	i.steps = append(i.steps, BranchStep[S, I]{
		From:   BranchesOf(start),
		Symbol: Epsilon[I](),
		To:     Branches(i.machine.Closure(start)),
	})
}

// Reset discards the run so far; Start must be called again
func (i *BranchInterpreter[S, I, O]) Reset() {
	i.steps = nil
	i.started = false
}

// State returns the current configuration, Halted before Start
func (i *BranchInterpreter[S, I, O]) State() Configuration[S] {
	if len(i.steps) == 0 {
		return Halted[S]()
	}
	return i.steps[len(i.steps)-1].To
}

// Done returns true once every branch has died
func (i *BranchInterpreter[S, I, O]) Done() bool {
	return i.started && i.State().IsDead()
}

// Accepting reports whether any current branch is an accept state
func (i *BranchInterpreter[S, I, O]) Accepting() bool {
	return i.started && i.State().Intersects(i.machine.m.Accept)
}

// Send reads one symbol. It is ignored before Start. A halted machine keeps
// recording Halted steps so the record holds one step per symbol sent.
func (i *BranchInterpreter[S, I, O]) Send(symbol I) Configuration[S] {
	if !i.started {
		return i.State()
	}

	current := i.State()
	next := i.machine.Step(current, symbol)
	i.steps = append(i.steps, BranchStep[S, I]{From: current, Symbol: Sym(symbol), To: next})
	return next
}

// Computation returns a copy of the steps recorded so far
func (i *BranchInterpreter[S, I, O]) Computation() BranchComputation[S, I] {
	return BranchComputation[S, I]{Steps: append([]BranchStep[S, I](nil), i.steps...)}
}
