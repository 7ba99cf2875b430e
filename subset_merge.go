package vpa

import "cmp"

// combineStackTops unions the transition layers of every NFA state in a
// subset-construction worklist item. The result is still keyed by
// (stack-top, token) the same way a single state's transitions would be,
// but each layer's leaf Set destinations union across members instead of
// conflicting on overlap (the core of subset construction: "be in all of
// these NFA states' shoes at once").
func combineStackTops[A cmp.Ordered, S cmp.Ordered, V comparable](members []State[A, S, Set, V]) (StackTop[S, A, Edge[S, Set, V]], error) {
	wildcards := make([]Wildcard[A, Edge[S, Set, V]], 0, len(members))
	nones := make([]Wildcard[A, Edge[S, Set, V]], 0, len(members))
	someByKey := map[S][]Wildcard[A, Edge[S, Set, V]]{}
	var someKeyOrder []S

	for _, m := range members {
		if m.Transitions.Wildcard != nil {
			wildcards = append(wildcards, *m.Transitions.Wildcard)
		}
		if m.Transitions.None != nil {
			nones = append(nones, *m.Transitions.None)
		}
		for k, w := range m.Transitions.Some {
			if _, seen := someByKey[k]; !seen {
				someKeyOrder = append(someKeyOrder, k)
			}
			someByKey[k] = append(someByKey[k], w)
		}
	}

	combinedWildcard, err := combineWildcardGroup(wildcards)
	if err != nil {
		return StackTop[S, A, Edge[S, Set, V]]{}, err
	}
	combinedNone, err := combineWildcardGroup(nones)
	if err != nil {
		return StackTop[S, A, Edge[S, Set, V]]{}, err
	}
	var some map[S]Wildcard[A, Edge[S, Set, V]]
	if len(someKeyOrder) > 0 {
		some = make(map[S]Wildcard[A, Edge[S, Set, V]], len(someKeyOrder))
		for _, k := range someKeyOrder {
			combined, err := combineWildcardGroup(someByKey[k])
			if err != nil {
				return StackTop[S, A, Edge[S, Set, V]]{}, err
			}
			some[k] = combined
		}
	}
	return StackTop[S, A, Edge[S, Set, V]]{Wildcard: combinedWildcard, None: combinedNone, Some: some}, nil
}

// combineWildcardGroup merges a group of Wildcard layers drawn from
// different NFA states into one, unioning destinations on exact-range
// agreement and erroring on a genuine partial overlap (see Determinize's
// doc comment for why partial overlaps are not split).
func combineWildcardGroup[A cmp.Ordered, S cmp.Ordered, V comparable](group []Wildcard[A, Edge[S, Set, V]]) (*Wildcard[A, Edge[S, Set, V]], error) {
	if len(group) == 0 {
		return nil, nil
	}

	var anyEdges []Edge[S, Set, V]
	var specifics []RangeEntry[A, Edge[S, Set, V]]
	for _, w := range group {
		if w.Any != nil {
			anyEdges = append(anyEdges, *w.Any)
		}
		specifics = append(specifics, w.Specific...)
	}

	if len(anyEdges) > 0 {
		if len(specifics) > 0 {
			return nil, &IllFormed{Kind: WildcardMergeConflict, RangeDesc: formatRanges(specifics)}
		}
		merged := anyEdges[0]
		for _, e := range anyEdges[1:] {
			var err error
			merged, err = merged.Merge(e)
			if err != nil {
				return nil, err
			}
		}
		result := NewWildcardAny[A](merged)
		return &result, nil
	}

	// Group by exact (First, Last): entries with identical bounds union
	// their destinations; distinct bounds must not partially overlap.
	type bucket struct {
		key     Range[A]
		entries []RangeEntry[A, Edge[S, Set, V]]
	}
	var buckets []bucket
	for _, re := range specifics {
		placed := false
		for bi := range buckets {
			if buckets[bi].key.First == re.Key.First && buckets[bi].key.Last == re.Key.Last {
				buckets[bi].entries = append(buckets[bi].entries, re)
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{key: re.Key, entries: []RangeEntry[A, Edge[S, Set, V]]{re}})
		}
	}
	for i := range buckets {
		for j := i + 1; j < len(buckets); j++ {
			if r, ok := buckets[i].key.Intersection(buckets[j].key); ok {
				return nil, &IllFormed{Kind: VecMergeConflict, RangeDesc: formatRange(r)}
			}
		}
	}

	merged := make([]RangeEntry[A, Edge[S, Set, V]], 0, len(buckets))
	for _, b := range buckets {
		edge := b.entries[0].Value
		for _, re := range b.entries[1:] {
			var err error
			edge, err = edge.Merge(re.Value)
			if err != nil {
				return nil, err
			}
		}
		merged = append(merged, RangeEntry[A, Edge[S, Set, V]]{Key: b.key, Value: edge})
	}
	result := NewWildcardSpecific[A](merged...)
	return &result, nil
}

// mapStackTopDst rebuilds a StackTop layer with every leaf edge's
// destination control converted by resolve, preserving the (stack-top,
// token) key structure unchanged. Used by Determinize (Set -> Single, as
// each subset is assigned its DVA state index) and Generalize (Single ->
// Set, embedding a deterministic destination as a singleton set).
func mapStackTopDst[S cmp.Ordered, A cmp.Ordered, V comparable, CIn Ctrl[CIn], COut Ctrl[COut]](
	st StackTop[S, A, Edge[S, CIn, V]],
	resolve func(CIn) (COut, error),
) (StackTop[S, A, Edge[S, COut, V]], error) {
	wild, err := mapWildcardDst(st.Wildcard, resolve)
	if err != nil {
		return StackTop[S, A, Edge[S, COut, V]]{}, err
	}
	none, err := mapWildcardDst(st.None, resolve)
	if err != nil {
		return StackTop[S, A, Edge[S, COut, V]]{}, err
	}
	var some map[S]Wildcard[A, Edge[S, COut, V]]
	if len(st.Some) > 0 {
		some = make(map[S]Wildcard[A, Edge[S, COut, V]], len(st.Some))
		for _, k := range st.sortedSomeKeys() {
			inner := st.Some[k]
			mapped, err := mapWildcardDst(&inner, resolve)
			if err != nil {
				return StackTop[S, A, Edge[S, COut, V]]{}, err
			}
			some[k] = *mapped
		}
	}
	return StackTop[S, A, Edge[S, COut, V]]{Wildcard: wild, None: none, Some: some}, nil
}

func mapWildcardDst[S cmp.Ordered, A cmp.Ordered, V comparable, CIn Ctrl[CIn], COut Ctrl[COut]](
	w *Wildcard[A, Edge[S, CIn, V]],
	resolve func(CIn) (COut, error),
) (*Wildcard[A, Edge[S, COut, V]], error) {
	if w == nil {
		return nil, nil
	}
	mapEdge := func(e Edge[S, CIn, V]) (Edge[S, COut, V], error) {
		dst, err := resolve(e.Dst)
		if err != nil {
			return Edge[S, COut, V]{}, err
		}
		return Edge[S, COut, V]{Kind: e.Kind, Dst: dst, Action: e.Action, Push: e.Push}, nil
	}
	if w.Any != nil {
		edge, err := mapEdge(*w.Any)
		if err != nil {
			return nil, err
		}
		out := NewWildcardAny[A](edge)
		return &out, nil
	}
	entries := make([]RangeEntry[A, Edge[S, COut, V]], len(w.Specific))
	for i, re := range w.Specific {
		edge, err := mapEdge(re.Value)
		if err != nil {
			return nil, err
		}
		entries[i] = RangeEntry[A, Edge[S, COut, V]]{Key: re.Key, Value: edge}
	}
	out := NewWildcardSpecific[A](entries...)
	return &out, nil
}
