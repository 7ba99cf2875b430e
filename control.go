package vpa

import "sort"

// Ctrl is the capability set shared by every representation of "the
// automaton's current state(s)". Automaton is generic over C so that a
// [Deterministic] automaton (C = [Single]) and a [Nondeterministic]
// automaton (C = [Set]) can share the transition, merge, and execution
// code — the two concrete structs below implement this one interface
// instead of the engine branching on determinism everywhere.
type Ctrl[C any] interface {
	// Iter returns the member state indices in ascending order.
	Iter() []int
	// Map applies f to every index, returning a control of the same kind.
	Map(f func(int) int) C
	// FlatMap replaces each index with the control f produces for it,
	// unioning the results into one control of the same kind.
	FlatMap(f func(int) C) C
	// Merge fallibly combines two controls into one with identical
	// semantics: equal for [Single], set union for [Set].
	Merge(other C) (C, error)
}

// Single is the deterministic control: exactly one current state.
type Single int

// Iter implements Ctrl.
func (s Single) Iter() []int { return []int{int(s)} }

// Map implements Ctrl.
func (s Single) Map(f func(int) int) Single { return Single(f(int(s))) }

// FlatMap implements Ctrl.
func (s Single) FlatMap(f func(int) Single) Single { return f(int(s)) }

// Merge implements Ctrl. Two distinct single states cannot be merged into
// one without losing information, so a mismatch is ill-formed.
func (s Single) Merge(other Single) (Single, error) {
	if s == other {
		return s, nil
	}
	return 0, &IllFormed{Kind: IndexMergeConflict, A: int(s), B: int(other)}
}

// CollectSingle builds a Single from an iterator's worth of indices. It
// fails if idxs is empty or holds more than one distinct index.
func CollectSingle(idxs []int) (Single, error) {
	if len(idxs) == 0 {
		return 0, ErrEmptyControl
	}
	first := idxs[0]
	for _, i := range idxs[1:] {
		if i != first {
			return 0, ErrNotSingle
		}
	}
	return Single(first), nil
}

// Set is the nondeterministic control: a set of current states. It is a
// plain map[int]struct{}, the same "set of small integers" idiom used
// throughout the example pack (see DESIGN.md) — and, unlike a
// fixed-universe sparse set, buildable from a direct struct/map literal.
type Set map[int]struct{}

// SetOf builds a Set from the given indices.
func SetOf(idxs ...int) Set {
	s := make(Set, len(idxs))
	for _, i := range idxs {
		s[i] = struct{}{}
	}
	return s
}

// Iter implements Ctrl.
func (s Set) Iter() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Map implements Ctrl.
func (s Set) Map(f func(int) int) Set {
	out := make(Set, len(s))
	for i := range s {
		out[f(i)] = struct{}{}
	}
	return out
}

// FlatMap implements Ctrl.
func (s Set) FlatMap(f func(int) Set) Set {
	out := make(Set, len(s))
	for i := range s {
		for j := range f(i) {
			out[j] = struct{}{}
		}
	}
	return out
}

// Merge implements Ctrl: set union, always succeeds.
func (s Set) Merge(other Set) (Set, error) {
	out := make(Set, len(s)+len(other))
	for i := range s {
		out[i] = struct{}{}
	}
	for i := range other {
		out[i] = struct{}{}
	}
	return out, nil
}

// CollectSet builds a Set from an iterator's worth of indices. It fails
// only if idxs is empty.
func CollectSet(idxs []int) (Set, error) {
	if len(idxs) == 0 {
		return nil, ErrEmptyControl
	}
	return SetOf(idxs...), nil
}
