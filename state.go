package vpa

import "cmp"

// State is one automaton state: its outgoing transitions, layered first by
// optional stack-top symbol ([StackTop]) and then by triggering token
// ([Wildcard]), plus whether the state accepts.
type State[A cmp.Ordered, S cmp.Ordered, C Ctrl[C], V comparable] struct {
	Transitions StackTop[S, A, Edge[S, C, V]]
	Accepting   bool
}

// Merge fuses two states: transitions merge layer by layer (overlapping
// entries must merge without conflict), and the result accepts if either
// input does. Determinize does not use it; it combines subset members with
// combineStackTops, which unions destinations on identical ranges.
func (s State[A, S, C, V]) Merge(other State[A, S, C, V]) (State[A, S, C, V], error) {
	merged, err := s.Transitions.Merge(other.Transitions)
	if err != nil {
		return State[A, S, C, V]{}, err
	}
	return State[A, S, C, V]{
		Transitions: merged,
		Accepting:   s.Accepting || other.Accepting,
	}, nil
}

// Automaton is a visibly pushdown automaton over token type A and stack
// symbol type S, whose transitions target either a single state
// ([Single], a [Deterministic] automaton) or a set of states ([Set], a
// [Nondeterministic] automaton). Classify assigns every token of type A
// its [Kind]; it must agree with every edge's Kind (see [Check]).
type Automaton[A cmp.Ordered, S cmp.Ordered, C Ctrl[C], V comparable] struct {
	States    []State[A, S, C, V]
	Initial   C
	Classify  Classifier[A]
}

// Deterministic is an Automaton whose transitions target exactly one
// state: the result of [Determinize], and the form [Run]/[Accept] execute
// directly.
type Deterministic[A cmp.Ordered, S cmp.Ordered, V comparable] = Automaton[A, S, Single, V]

// Nondeterministic is an Automaton whose transitions may target a set of
// states: the natural form to hand-author, since two edges out of the
// same (state, stack-top, token) need not be merged by the caller.
type Nondeterministic[A cmp.Ordered, S cmp.Ordered, V comparable] = Automaton[A, S, Set, V]

// NumStates reports how many states the automaton has.
func (a Automaton[A, S, C, V]) NumStates() int { return len(a.States) }
