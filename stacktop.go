package vpa

import (
	"cmp"
	"sort"
)

// StackTop is the outer lookup layer, keyed by the optional top-of-stack
// symbol. Lookup order (see Get) is: Wildcard first regardless of stack
// top, then None if the stack is empty, then Some[symbol] if it is not.
//
// This is the Go realization of the source's CurryOpt: a Go map plays the
// role of BTreeMap<Arg, Etc>, with ordering recovered on demand (Merge,
// Check) by sorting keys, since plain maps have no ordered iteration.
type StackTop[S cmp.Ordered, A cmp.Ordered, V Mergeable[V]] struct {
	Wildcard *Wildcard[A, V]
	None     *Wildcard[A, V]
	Some     map[S]Wildcard[A, V]
}

// Get resolves (stackTop, token) to a value. hasTop distinguishes "stack
// is empty" (hasTop=false) from "stack top is the zero value of S"
// (hasTop=true, top=zero) — a zero stack symbol must not be confused with
// an empty stack.
func (c StackTop[S, A, V]) Get(hasTop bool, top S, token A) (V, bool) {
	v, _, ok := c.GetEdge(hasTop, top, token)
	return v, ok
}

// GetEdge is Get plus whether the match came through a Wildcard's Any
// form rather than one of its Specific ranges. An Any match answers every
// possible token with the same value, so a caller checking per-token
// invariants (Execution's Kind-consistency guard, see exec.go) cannot
// hold it to the same single-token standard a Specific match can — the
// same exemption Check already grants Any layers (see check.go).
func (c StackTop[S, A, V]) GetEdge(hasTop bool, top S, token A) (value V, matchedAny bool, ok bool) {
	if c.Wildcard != nil {
		if v, matched, found := c.Wildcard.get(token); found {
			return v, matched, true
		}
	}
	if !hasTop {
		if c.None != nil {
			v, matched, found := c.None.get(token)
			return v, matched, found
		}
		var zero V
		return zero, false, false
	}
	if inner, ok := c.Some[top]; ok {
		v, matched, found := inner.get(token)
		return v, matched, found
	}
	var zero V
	return zero, false, false
}

// sortedSomeKeys returns c.Some's keys in ascending order, for
// deterministic iteration during Merge/Check.
func (c StackTop[S, A, V]) sortedSomeKeys() []S {
	keys := make([]S, 0, len(c.Some))
	for k := range c.Some {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Check verifies the layer's internal invariants: each inner Wildcard's
// ranges are non-overlapping (via Wildcard.Check), and if Wildcard is
// populated, its key-set does not overlap any None/Some entry's key-set.
func (c StackTop[S, A, V]) Check() error {
	if c.Wildcard != nil {
		if err := c.Wildcard.Check(); err != nil {
			return err
		}
	}
	if c.None != nil {
		if err := c.None.Check(); err != nil {
			return err
		}
		if c.Wildcard != nil {
			if r, ok := keysetOverlap(*c.Wildcard, *c.None); ok {
				return &IllFormed{Kind: CurryOptMergeConflict, StackTop: nil, RangeDesc: formatRange(r)}
			}
		}
	}
	for _, k := range c.sortedSomeKeys() {
		inner := c.Some[k]
		if err := inner.Check(); err != nil {
			return err
		}
		if c.Wildcard != nil {
			if r, ok := keysetOverlap(*c.Wildcard, inner); ok {
				return &IllFormed{Kind: CurryOptMergeConflict, StackTop: k, RangeDesc: formatRange(r)}
			}
		}
	}
	return nil
}

// keysetOverlap reports a conflicting token range, if any, between two
// wildcard layers' key-sets. An Any layer's key-set is "everything", so
// it conflicts with any non-empty other layer.
func keysetOverlap[A cmp.Ordered, V Mergeable[V]](a, b Wildcard[A, V]) (Range[A], bool) {
	if a.IsAny() {
		if b.IsAny() {
			var zero Range[A]
			return zero, true
		}
		if len(b.Specific) > 0 {
			return b.Specific[0].Key, true
		}
		return Range[A]{}, false
	}
	if b.IsAny() {
		return keysetOverlap(b, a)
	}
	for _, ea := range a.Specific {
		for _, eb := range b.Specific {
			if r, ok := ea.Key.Intersection(eb.Key); ok {
				return r, true
			}
		}
	}
	return Range[A]{}, false
}

// Merge fuses two stack-top layers componentwise (Wildcard, None, and
// Some, the last key-by-key), then verifies the merged Wildcard (if
// populated) does not conflict with the merged None/Some.
func (c StackTop[S, A, V]) Merge(other StackTop[S, A, V]) (StackTop[S, A, V], error) {
	wild, err := mergeOptionalWildcard(c.Wildcard, other.Wildcard)
	if err != nil {
		return StackTop[S, A, V]{}, err
	}
	none, err := mergeOptionalWildcard(c.None, other.None)
	if err != nil {
		return StackTop[S, A, V]{}, err
	}
	some := make(map[S]Wildcard[A, V], len(c.Some)+len(other.Some))
	for k, v := range c.Some {
		some[k] = v
	}
	for _, k := range other.sortedSomeKeys() {
		v := other.Some[k]
		if existing, ok := some[k]; ok {
			merged, err := existing.Merge(v)
			if err != nil {
				return StackTop[S, A, V]{}, err
			}
			some[k] = merged
		} else {
			some[k] = v
		}
	}
	merged := StackTop[S, A, V]{Wildcard: wild, None: none, Some: some}
	if err := merged.Check(); err != nil {
		return StackTop[S, A, V]{}, err
	}
	return merged, nil
}

func mergeOptionalWildcard[A cmp.Ordered, V Mergeable[V]](a, b *Wildcard[A, V]) (*Wildcard[A, V], error) {
	switch {
	case a == nil && b == nil:
		return nil, nil
	case a != nil && b == nil:
		return a, nil
	case a == nil && b != nil:
		return b, nil
	default:
		m, err := a.Merge(*b)
		if err != nil {
			return nil, err
		}
		return &m, nil
	}
}

// Values iterates every leaf value reachable through this layer, ignoring
// keys.
func (c StackTop[S, A, V]) Values() []V {
	var out []V
	if c.Wildcard != nil {
		out = append(out, c.Wildcard.Values()...)
	}
	if c.None != nil {
		out = append(out, c.None.Values()...)
	}
	for _, k := range c.sortedSomeKeys() {
		out = append(out, c.Some[k].Values()...)
	}
	return out
}
