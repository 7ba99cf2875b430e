package vpa

import (
	"cmp"

	"github.com/coregx/vpa/internal/clamp"
)

// Sanitize normalizes a randomly-generated Nondeterministic automaton so
// it is usable as test input: every destination index is folded into
// range via clamp.Mod rather than rejected, and any Specific range entry
// that exactly duplicates an earlier one on the same layer is dropped
// (shadowed: the earlier entry already answers every lookup the later one
// would). It never errors and is not part of normal automaton
// construction — production automata are expected to already satisfy
// Check; Sanitize exists only to turn arbitrary property-test input into
// something Check can evaluate meaningfully.
func Sanitize[A cmp.Ordered, S cmp.Ordered, V comparable](a Nondeterministic[A, S, V]) Nondeterministic[A, S, V] {
	n := len(a.States)
	if n == 0 {
		return a
	}
	clampSet := func(s Set) Set {
		out := make(Set, len(s))
		for i := range s {
			out[clamp.Mod(i, n)] = struct{}{}
		}
		return out
	}
	a.Initial = clampSet(a.Initial)
	for i := range a.States {
		a.States[i].Transitions = sanitizeStackTop(a.States[i].Transitions, clampSet)
	}
	return a
}

func sanitizeStackTop[A cmp.Ordered, S cmp.Ordered, V comparable](st StackTop[S, A, Edge[S, Set, V]], clampSet func(Set) Set) StackTop[S, A, Edge[S, Set, V]] {
	st.Wildcard = sanitizeWildcard(st.Wildcard, clampSet)
	st.None = sanitizeWildcard(st.None, clampSet)
	if len(st.Some) > 0 {
		some := make(map[S]Wildcard[A, Edge[S, Set, V]], len(st.Some))
		for k, w := range st.Some {
			sanitized := sanitizeWildcard(&w, clampSet)
			some[k] = *sanitized
		}
		st.Some = some
	}
	return st
}

func sanitizeWildcard[A cmp.Ordered, S cmp.Ordered, V comparable](w *Wildcard[A, Edge[S, Set, V]], clampSet func(Set) Set) *Wildcard[A, Edge[S, Set, V]] {
	if w == nil {
		return nil
	}
	clampEdge := func(e Edge[S, Set, V]) Edge[S, Set, V] {
		e.Dst = clampSet(e.Dst)
		return e
	}
	if w.Any != nil {
		edge := clampEdge(*w.Any)
		out := NewWildcardAny[A](edge)
		return &out
	}
	seen := map[Range[A]]bool{}
	var kept []RangeEntry[A, Edge[S, Set, V]]
	for _, re := range w.Specific {
		if seen[re.Key] {
			continue
		}
		seen[re.Key] = true
		kept = append(kept, RangeEntry[A, Edge[S, Set, V]]{Key: re.Key, Value: clampEdge(re.Value)})
	}
	out := NewWildcardSpecific[A](kept...)
	return &out
}
