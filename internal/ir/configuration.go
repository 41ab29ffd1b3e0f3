package ir

import "fmt"

// Target is the outcome of a deterministic step: a live state, or dead
// when no transition exists. Dead is absorbing.
type Target[S comparable] struct {
	state S
	live  bool
}

// Live wraps a reachable state
func Live[S comparable](s S) Target[S] {
	return Target[S]{state: s, live: true}
}

// Dead returns the halted outcome
func Dead[S comparable]() Target[S] {
	return Target[S]{}
}

// State returns the live state, or false when dead
func (t Target[S]) State() (S, bool) {
	return t.state, t.live
}

// IsDead reports whether the machine has halted
func (t Target[S]) IsDead() bool {
	return !t.live
}

// String returns the state, or "∅" when dead
func (t Target[S]) String() string {
	if !t.live {
		return "∅"
	}
	return fmt.Sprint(t.state)
}

// Configuration is the active branch set of a nondeterministic computation.
// It is either a non-empty set of live states or halted, meaning no branch
// survived. A Configuration never shares its set with the caller.
type Configuration[S comparable] struct {
	states Set[S]
}

// Branches builds a configuration from a set of states.
// An empty set yields the halted configuration.
func Branches[S comparable](states Set[S]) Configuration[S] {
	if SetLen(states) == 0 {
		return Halted[S]()
	}
	return Configuration[S]{states: CloneSet(states)}
}

// BranchesOf builds a configuration from individual states
func BranchesOf[S comparable](states ...S) Configuration[S] {
	return Branches(NewSet(states...))
}

// Halted returns the configuration in which every branch has died
func Halted[S comparable]() Configuration[S] {
	return Configuration[S]{}
}

// IsDead reports whether no branch survived
func (c Configuration[S]) IsDead() bool {
	return SetLen(c.states) == 0
}

// Contains reports whether s is an active branch
func (c Configuration[S]) Contains(s S) bool {
	return c.states != nil && c.states.ContainsOne(s)
}

// Len returns the number of active branches
func (c Configuration[S]) Len() int {
	return SetLen(c.states)
}

// States returns a copy of the active states; empty when halted
func (c Configuration[S]) States() Set[S] {
	return CloneSet(c.states)
}

// Intersects reports whether any active branch is in other
func (c Configuration[S]) Intersects(other Set[S]) bool {
	return Intersects(c.states, other)
}

// Equal reports whether both configurations hold the same branches
func (c Configuration[S]) Equal(other Configuration[S]) bool {
	if c.IsDead() || other.IsDead() {
		return c.IsDead() == other.IsDead()
	}
	return c.states.Equal(other.states)
}

// Each calls fn for every active state without copying the set
func (c Configuration[S]) Each(fn func(S)) {
	if c.states == nil {
		return
	}
	c.states.Each(func(s S) bool {
		fn(s)
		return false
	})
}

// String returns the branch set, or "∅" when halted
func (c Configuration[S]) String() string {
	if c.IsDead() {
		return "∅"
	}
	return FormatSet(c.states)
}
