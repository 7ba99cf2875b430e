package vpa

import "cmp"

// Edge is everything about a transition except the source state and the
// token that triggers it: where it goes, what (opaque) action it carries,
// and — for a call edge — what stack symbol it pushes.
//
// Kind reuses the token [Kind] enum directly: the engine's core invariant
// (the kind of an edge must agree with the kind of the token that
// triggered it, see [Check]) becomes a plain equality check instead of a
// separate cross-type comparison.
type Edge[S cmp.Ordered, C Ctrl[C], V comparable] struct {
	Kind Kind
	// Dst is the state(s) this edge transitions to.
	Dst C
	// Action is the opaque, equality-comparable value the caller attaches;
	// the engine never invokes it.
	Action Call[V]
	// Push is the stack symbol pushed by a KindCall edge. Ignored for
	// KindReturn and KindLocal edges.
	Push S
}

// Apply performs the edge's stack effect: push for a call edge, pop for a
// return edge, nothing for a local edge. It reports whether the edge is
// rejected because a return edge was applied to an empty stack — that is
// a language rejection, not an ill-formedness (see SPEC_FULL.md §5/§7).
func (e Edge[S, C, V]) Apply(stack *[]S) (rejected bool) {
	switch e.Kind {
	case KindCall:
		*stack = append(*stack, e.Push)
	case KindReturn:
		if len(*stack) == 0 {
			return true
		}
		*stack = (*stack)[:len(*stack)-1]
	}
	return false
}

// Merge fuses two edges into one with identical semantics, or reports why
// they cannot be fused. See spec §4.3 for the full rule table.
func (e Edge[S, C, V]) Merge(other Edge[S, C, V]) (Edge[S, C, V], error) {
	if e.Kind != other.Kind {
		return Edge[S, C, V]{}, &IllFormed{Kind: EdgeMergeConflict, EdgeA: e.Kind, EdgeB: other.Kind}
	}
	dst, err := e.Dst.Merge(other.Dst)
	if err != nil {
		return Edge[S, C, V]{}, err
	}
	if !e.Action.Equal(other.Action) {
		return Edge[S, C, V]{}, &IllFormed{Kind: CallMergeConflict}
	}
	if e.Kind == KindCall && e.Push != other.Push {
		return Edge[S, C, V]{}, &IllFormed{Kind: PushMergeConflict, PushA: e.Push, PushB: other.Push}
	}
	return Edge[S, C, V]{Kind: e.Kind, Dst: dst, Action: e.Action, Push: e.Push}, nil
}
