package automaton

// Step is one entry of a deterministic computation: the state before the
// step, the symbol read, and the outcome. Step zero reads no symbol and
// has From equal to the start state.
type Step[S, I comparable] struct {
	From   S
	Symbol Symbol[I]
	To     Target[S]
}

// Key returns the transition key taken by this step
func (s Step[S, I]) Key() Key[S, I] {
	return Key[S, I]{State: s.From, Symbol: s.Symbol}
}

// Computation is the full record of a deterministic run.
// It is truncated at the first dead step.
type Computation[S, I comparable] struct {
	Steps []Step[S, I]
}

// Len returns the number of recorded steps, including step zero
func (c Computation[S, I]) Len() int {
	return len(c.Steps)
}

// Final returns the outcome of the last recorded step
func (c Computation[S, I]) Final() Target[S] {
	if len(c.Steps) == 0 {
		return Dead[S]()
	}
	return c.Steps[len(c.Steps)-1].To
}

// Halted reports whether the run reached the dead state
func (c Computation[S, I]) Halted() bool {
	return c.Final().IsDead()
}

// BranchStep is one entry of a nondeterministic computation. Step zero has
// From equal to {start} and To equal to its epsilon closure.
type BranchStep[S, I comparable] struct {
	From   Configuration[S]
	Symbol Symbol[I]
	To     Configuration[S]
}

// BranchComputation is the full record of a nondeterministic run.
// It always holds one step per input symbol plus step zero.
type BranchComputation[S, I comparable] struct {
	Steps []BranchStep[S, I]
}

// Len returns the number of recorded steps, including step zero
func (c BranchComputation[S, I]) Len() int {
	return len(c.Steps)
}

// Final returns the configuration after the last step
func (c BranchComputation[S, I]) Final() Configuration[S] {
	if len(c.Steps) == 0 {
		return Halted[S]()
	}
	return c.Steps[len(c.Steps)-1].To
}

// Halted reports whether every branch died
func (c BranchComputation[S, I]) Halted() bool {
	return c.Final().IsDead()
}
