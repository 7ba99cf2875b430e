package vpa

import "cmp"

// Check verifies an automaton's structural well-formedness: every control
// reachable from Initial or any edge's Dst only names in-bounds state
// indices, every layer's internal overlap invariants hold (delegated to
// StackTop.Check/Wildcard.Check), and every edge's Kind agrees with
// a.Classify applied to the token(s) that reach it.
//
// Check does not explore reachability from Initial; it validates every
// state in a.States regardless of whether Initial can reach it, since an
// automaton built incrementally (e.g. mid-Determinize) may carry
// temporarily-unreachable states that must still be internally consistent.
func Check[A cmp.Ordered, S cmp.Ordered, C Ctrl[C], V comparable](a Automaton[A, S, C, V]) error {
	n := len(a.States)
	for _, idx := range a.Initial.Iter() {
		if idx < 0 || idx >= n {
			return &IllFormed{Kind: OutOfBounds, Index: idx}
		}
	}
	for i, st := range a.States {
		if err := st.Transitions.Check(); err != nil {
			return err
		}
		for _, edge := range st.Transitions.Values() {
			for _, idx := range edge.Dst.Iter() {
				if idx < 0 || idx >= n {
					return &IllFormed{Kind: OutOfBounds, Index: idx}
				}
			}
		}
		if a.Classify != nil {
			if err := checkStateKindConsistency(i, st, a.Classify); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkStateKindConsistency verifies every edge reachable from state i
// agrees, in Kind, with the Kind its triggering token classifies to. The
// StackTop/Wildcard layering does not retain which token reached a given
// edge once merged, so this walks the layer structure directly rather than
// Values(), checking each (token, edge) pairing instead of the edge alone.
func checkStateKindConsistency[A cmp.Ordered, S cmp.Ordered, C Ctrl[C], V comparable](i int, st State[A, S, C, V], classify Classifier[A]) error {
	check := func(w *Wildcard[A, Edge[S, C, V]]) error {
		if w == nil {
			return nil
		}
		if w.Any != nil {
			// An Any wildcard applies uniformly across tokens; its edge Kind
			// is not checked, since no single token sample would represent
			// "every token" accurately.
			return nil
		}
		for _, entry := range w.Specific {
			tokenKind := classify(entry.Key.First)
			if entry.Key.First != entry.Key.Last {
				// A multi-value range must classify uniformly; sample both
				// ends since Kind is required to be constant over a range
				// built from contiguous same-kind tokens.
				if classify(entry.Key.Last) != tokenKind {
					return &IllFormed{Kind: InconsistentKind, State: i, TokenKind: tokenKind, FoundKind: entry.Value.Kind}
				}
			}
			if entry.Value.Kind != tokenKind {
				return &IllFormed{Kind: InconsistentKind, State: i, TokenKind: tokenKind, FoundKind: entry.Value.Kind}
			}
		}
		return nil
	}
	if err := check(st.Transitions.Wildcard); err != nil {
		return err
	}
	if err := check(st.Transitions.None); err != nil {
		return err
	}
	for _, k := range st.Transitions.sortedSomeKeys() {
		inner := st.Transitions.Some[k]
		if err := check(&inner); err != nil {
			return err
		}
	}
	return nil
}
