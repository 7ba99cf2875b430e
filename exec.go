package vpa

import "cmp"

// Execution drives any Automaton[A,S,C,V] — [Deterministic] (C = [Single])
// or [Nondeterministic] (C = [Set]) alike — over a token stream one token
// at a time. It is a lazy iterator: tokens are consumed from the backing
// slice only as Step is called, so a caller can inspect intermediate
// control/stack after any prefix without running the whole input.
//
// Running the same driver over either Control form is what lets [Accept]
// express property 5 (accept(N, w) == accept(D, w) for N's determinization
// D) and the empty automaton (zero states, empty initial [Set]) directly,
// instead of requiring callers to determinize first.
type Execution[A cmp.Ordered, S cmp.Ordered, C Ctrl[C], V comparable] struct {
	automaton Automaton[A, S, C, V]
	ctrl      C
	stack     []S
	tokens    []A
	pos       int
	rejected  bool
	err       error
}

// NewExecution starts an execution of a over tokens, positioned before the
// first token.
func NewExecution[A cmp.Ordered, S cmp.Ordered, C Ctrl[C], V comparable](a Automaton[A, S, C, V], tokens []A) *Execution[A, S, C, V] {
	return &Execution[A, S, C, V]{
		automaton: a,
		ctrl:      a.Initial,
		tokens:    tokens,
	}
}

// Done reports whether the execution has consumed every token, has
// already rejected, or has already hit a structural fault.
func (e *Execution[A, S, C, V]) Done() bool {
	return e.rejected || e.err != nil || e.pos >= len(e.tokens)
}

// State returns the current control and a copy of the current stack.
func (e *Execution[A, S, C, V]) State() (C, []S) {
	stack := make([]S, len(e.stack))
	copy(stack, e.stack)
	return e.ctrl, stack
}

// Rejected reports whether the execution has already hit a dead
// configuration (no matching edge out of any state the control names, or
// a return edge against an empty stack). Once true it stays true; Step
// becomes a no-op.
func (e *Execution[A, S, C, V]) Rejected() bool { return e.rejected }

// Err returns the structural fault, if any, that stopped this execution:
// an out-of-bounds control index, a mega_edge fold conflict, or a
// detected Kind/token mismatch. It is distinct from an ordinary rejection
// (see Rejected), which leaves Err nil.
func (e *Execution[A, S, C, V]) Err() error { return e.err }

// Step consumes exactly one token. Per spec §4.8 it: collects the edge
// (if any) out of every state the current control names, folds them with
// [Edge.Merge] into a single mega_edge, applies the mega_edge's stack
// effect, and moves the control to its destination. It returns true when
// the token was consumed and handled, including an ordinary rejection; it
// returns false with a nil error if the execution was already Done, and
// false with the fault if a structural fault stopped it on this token.
//
// A token with no matching edge out of any named state, or a return token
// against an empty stack, marks the execution rejected: running out of
// matching transitions is an ordinary language-rejection outcome. A fold
// conflict between two matched edges, an out-of-bounds control index, or
// a Specific-matched edge whose Kind disagrees with the token's
// classified Kind is instead a structural fault, surfaced as *IllFormed
// via Err (and propagated through Run/Accept) rather than silently
// rejecting or requiring a separate Check pass. A match reached only
// through a wildcard Any layer is exempt from the Kind check, matching
// Check's own treatment of Any (see check.go): an Any edge answers every
// token alike, so no single token's Kind can convict it of inconsistency.
func (e *Execution[A, S, C, V]) Step() (bool, error) {
	if e.Done() {
		return false, e.err
	}
	tok := e.tokens[e.pos]
	e.pos++

	var top S
	hasTop := len(e.stack) > 0
	if hasTop {
		top = e.stack[len(e.stack)-1]
	}

	var edges []Edge[S, C, V]
	allViaAny := true
	firstSrc := -1
	for _, idx := range e.ctrl.Iter() {
		if idx < 0 || idx >= len(e.automaton.States) {
			e.err = &IllFormed{Kind: OutOfBounds, Index: idx}
			return false, e.err
		}
		edge, isAny, ok := e.automaton.States[idx].Transitions.GetEdge(hasTop, top, tok)
		if !ok {
			continue
		}
		if !isAny {
			allViaAny = false
		}
		if firstSrc < 0 {
			firstSrc = idx
		}
		edges = append(edges, edge)
	}
	if len(edges) == 0 {
		e.rejected = true
		return true, nil
	}

	mega := edges[0]
	for _, other := range edges[1:] {
		merged, err := mega.Merge(other)
		if err != nil {
			e.err = err
			return false, err
		}
		mega = merged
	}

	if !allViaAny && e.automaton.Classify != nil {
		if got := e.automaton.Classify(tok); got != mega.Kind {
			e.err = &IllFormed{Kind: InconsistentKind, State: firstSrc, TokenKind: got, FoundKind: mega.Kind}
			return false, e.err
		}
	}

	if mega.Apply(&e.stack) {
		e.rejected = true
		return true, nil
	}
	e.ctrl = mega.Dst
	return true, nil
}

// Accepted reports the execution's final verdict: true only if every
// token was consumed without rejecting or faulting, the stack emptied,
// and at least one state the current control names accepts. "At least
// one" rather than "the one state" is what makes the same check correct
// whether C is Single or Set.
func (e *Execution[A, S, C, V]) Accepted() (bool, error) {
	if e.err != nil {
		return false, e.err
	}
	if e.rejected || e.pos < len(e.tokens) {
		return false, nil
	}
	if len(e.stack) != 0 {
		return false, nil
	}
	for _, idx := range e.ctrl.Iter() {
		if idx < 0 || idx >= len(e.automaton.States) {
			return false, &IllFormed{Kind: OutOfBounds, Index: idx}
		}
		if e.automaton.States[idx].Accepting {
			return true, nil
		}
	}
	return false, nil
}

// Run drives a to completion over tokens and reports the final
// accept/reject verdict, or the *IllFormed structural fault that stopped
// it early.
func Run[A cmp.Ordered, S cmp.Ordered, C Ctrl[C], V comparable](a Automaton[A, S, C, V], tokens []A) (bool, error) {
	exec := NewExecution(a, tokens)
	for !exec.Done() {
		if _, err := exec.Step(); err != nil {
			return false, err
		}
	}
	return exec.Accepted()
}

// Accept is an alias for [Run], named for the common case of asking only
// "does this automaton accept this input".
func Accept[A cmp.Ordered, S cmp.Ordered, C Ctrl[C], V comparable](a Automaton[A, S, C, V], tokens []A) (bool, error) {
	return Run(a, tokens)
}
