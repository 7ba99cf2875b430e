package vpa

import (
	"cmp"
	"fmt"
	"sort"
)

// Mergeable constrains a wildcard layer's value type so that Wildcard
// itself can provide a generic Merge: the leaf value (ultimately an Edge)
// must know how to fuse with another of the same type.
type Mergeable[V any] interface {
	Merge(other V) (V, error)
}

// RangeEntry pairs a key range with the value reached through it, the
// building block of a Wildcard's Specific form.
type RangeEntry[A cmp.Ordered, V any] struct {
	Key   Range[A]
	Value V
}

// Wildcard is a lookup layer keyed by a single token: either it matches
// every possible key (Any), or it matches only the keys falling in one of
// a set of pairwise non-overlapping ranges (Specific). Exactly one of Any
// or Specific is populated on any value built through [NewWildcardAny] or
// [NewWildcardSpecific]; a zero Wildcard is an empty Specific layer (a
// total miss on every lookup), not a wildcard that matches everything.
type Wildcard[A cmp.Ordered, V Mergeable[V]] struct {
	Any      *V
	Specific []RangeEntry[A, V]
}

// NewWildcardAny builds an Any-form wildcard.
func NewWildcardAny[A cmp.Ordered, V Mergeable[V]](v V) Wildcard[A, V] {
	return Wildcard[A, V]{Any: &v}
}

// NewWildcardSpecific builds a Specific-form wildcard. entries need not be
// pre-sorted: they are sorted by First here (and again by Merge), which
// Get's binary search relies on; Get itself never sorts.
func NewWildcardSpecific[A cmp.Ordered, V Mergeable[V]](entries ...RangeEntry[A, V]) Wildcard[A, V] {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key.First < entries[j].Key.First })
	return Wildcard[A, V]{Specific: entries}
}

// IsAny reports whether w is the Any form.
func (w Wildcard[A, V]) IsAny() bool { return w.Any != nil }

// Get looks up key, returning the matched value and whether it matched.
// Any always matches; Specific scans its (assumed non-overlapping) ranges.
// The source this engine is grounded on left lookup as a linear scan with
// a "TODO: binary search?"; here entries are sorted by First once (at
// construction/merge time, not per lookup) so Get can binary search.
func (w Wildcard[A, V]) Get(key A) (V, bool) {
	v, _, ok := w.get(key)
	return v, ok
}

// get is Get plus whether the match was the Any form. Unexported: the
// Any/Specific distinction is plumbing for Execution's Kind-consistency
// guard (see stacktop.go's GetEdge and exec.go), not part of the lookup
// API callers outside this package need.
func (w Wildcard[A, V]) get(key A) (value V, matchedAny bool, ok bool) {
	if w.Any != nil {
		return *w.Any, true, true
	}
	entries := w.Specific
	i := sort.Search(len(entries), func(i int) bool { return entries[i].Key.Last >= key })
	if i < len(entries) && entries[i].Key.Contains(key) == Equal {
		return entries[i].Value, false, true
	}
	var zero V
	return zero, false, false
}

// Check verifies that Specific's ranges are pairwise non-overlapping,
// sorted or not: it compares every pair of entries, not just neighbours.
func (w Wildcard[A, V]) Check() error {
	if w.Any != nil {
		return nil
	}
	for i, e := range w.Specific {
		for j := i + 1; j < len(w.Specific); j++ {
			if r, ok := e.Key.Intersection(w.Specific[j].Key); ok {
				return &IllFormed{Kind: VecMergeConflict, RangeDesc: formatRange(r)}
			}
		}
	}
	return nil
}

// Merge fuses two wildcard layers. See spec §4.4 for the rule table:
// Any⊕Any fuses the values, Any⊕empty-Specific is the Any unchanged (and
// symmetrically), Any⊕non-empty-Specific conflicts, and Specific⊕Specific
// concatenates provided no ranges intersect.
func (w Wildcard[A, V]) Merge(other Wildcard[A, V]) (Wildcard[A, V], error) {
	switch {
	case w.Any != nil && other.Any != nil:
		merged, err := (*w.Any).Merge(*other.Any)
		if err != nil {
			return Wildcard[A, V]{}, err
		}
		return NewWildcardAny[A](merged), nil
	case w.Any != nil && other.Any == nil:
		if len(other.Specific) == 0 {
			return w, nil
		}
		return Wildcard[A, V]{}, &IllFormed{Kind: WildcardMergeConflict, RangeDesc: formatRanges(other.Specific)}
	case w.Any == nil && other.Any != nil:
		if len(w.Specific) == 0 {
			return other, nil
		}
		return Wildcard[A, V]{}, &IllFormed{Kind: WildcardMergeConflict, RangeDesc: formatRanges(w.Specific)}
	default:
		merged := make([]RangeEntry[A, V], 0, len(w.Specific)+len(other.Specific))
		merged = append(merged, w.Specific...)
		for _, re := range other.Specific {
			for _, existing := range w.Specific {
				if r, ok := existing.Key.Intersection(re.Key); ok {
					return Wildcard[A, V]{}, &IllFormed{Kind: VecMergeConflict, RangeDesc: formatRange(r)}
				}
			}
			merged = append(merged, re)
		}
		sort.Slice(merged, func(i, j int) bool { return merged[i].Key.First < merged[j].Key.First })
		return Wildcard[A, V]{Specific: merged}, nil
	}
}

// Values iterates the leaf values only, ignoring keys.
func (w Wildcard[A, V]) Values() []V {
	if w.Any != nil {
		return []V{*w.Any}
	}
	out := make([]V, len(w.Specific))
	for i, e := range w.Specific {
		out[i] = e.Value
	}
	return out
}

func formatRange[A cmp.Ordered](r Range[A]) string {
	return fmt.Sprintf("[%v, %v]", r.First, r.Last)
}

func formatRanges[A cmp.Ordered, V any](entries []RangeEntry[A, V]) string {
	out := "["
	for i, e := range entries {
		if i > 0 {
			out += ", "
		}
		out += formatRange(e.Key)
	}
	return out + "]"
}
