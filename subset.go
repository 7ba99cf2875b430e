package vpa

import (
	"cmp"
	"fmt"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// DeterminizeStats summarizes one Determinize run, following the pack's
// convention (go-misc/benchmany) of reporting both an arithmetic and a
// geometric mean where a run produces several per-item ratios.
type DeterminizeStats struct {
	// NumNFAStates and NumDVAStates are the input and output state counts.
	NumNFAStates, NumDVAStates int
	// MeanSubsetSize is the arithmetic mean, over every DVA state, of how
	// many NFA states it subsumes.
	MeanSubsetSize float64
	// GeoMeanBranchingFactor is the geometric mean, over every DVA state,
	// of its out-degree (distinct reachable (stack-top, token) edges) plus
	// one, so a state with no outgoing edges contributes 1 rather than 0;
	// a measure of how "bushy" the determinized automaton turned out.
	GeoMeanBranchingFactor float64
}

// Determinize computes an equivalent Deterministic automaton from nfa by
// subset construction: each DVA state is a set of NFA states, discovered
// by a worklist BFS starting from nfa's initial set and stopping once no
// new subset is reachable. An empty subset gets the fixed dead state
// (spec §4.9 step 4a) instead of an empty-transition one; once discovery
// finishes, every reachable subset is renumbered into lexicographic order
// by its member-index sequence (spec §4.9 step 5) so the result's
// numbering does not depend on worklist scheduling.
//
// Determinize requires that when two or more subset members define
// Specific token ranges on the same layer, those ranges are either
// disjoint or exactly identical — a partial overlap (e.g. [0,5] from one
// member against [3,8] from another) is reported as IllFormed{VecMergeConflict}
// rather than split into atomic sub-ranges. Splitting arbitrary overlapping
// ranges generically requires incrementing/decrementing a cmp.Ordered key,
// which Go's type system does not expose; hand-authored VPAs normally
// describe each call/return/local token with an exact range per edge
// (often a Unit range), which never triggers this limitation. See
// DESIGN.md for this Open Question's resolution.
func Determinize[A cmp.Ordered, S cmp.Ordered, V comparable](nfa Nondeterministic[A, S, V], cfg DeterminizeConfig) (Deterministic[A, S, V], DeterminizeStats, error) {
	if err := cfg.Validate(); err != nil {
		return Deterministic[A, S, V]{}, DeterminizeStats{}, err
	}

	type discoveredSubset struct {
		set Set
	}
	var discovered []discoveredSubset
	keyIndex := map[string]int{}

	lookup := func(s Set) (int, bool) {
		if cfg.Memoize {
			idx, ok := keyIndex[setKey(s)]
			return idx, ok
		}
		for i, d := range discovered {
			if setEqual(d.set, s) {
				return i, true
			}
		}
		return 0, false
	}
	register := func(s Set) int {
		idx := len(discovered)
		discovered = append(discovered, discoveredSubset{set: s})
		if cfg.Memoize {
			keyIndex[setKey(s)] = idx
		}
		return idx
	}

	initIdx := register(nfa.Initial)
	worklist := []int{initIdx}
	dvaStates := make([]State[A, S, Single, V], 1)

	for len(worklist) > 0 {
		if cfg.Budget > 0 && len(discovered) > cfg.Budget {
			return Deterministic[A, S, V]{}, DeterminizeStats{}, ErrBudgetExceeded
		}
		cur := worklist[0]
		worklist = worklist[1:]
		subset := discovered[cur].set

		var combined StackTop[S, A, Edge[S, Set, V]]
		accepting := false

		if len(subset) == 0 {
			// Spec §4.9 step 4a: the empty subset gets a fixed dead state
			// rather than an empty-transition one, so it is a literal,
			// inspectable part of the automaton instead of an emergent
			// absence of edges. Its self-loop always resolves back to this
			// same dead subset (resolve below memoizes on set equality, and
			// the empty Set is unique), and it never accepts.
			deadEdge := Edge[S, Set, V]{Kind: KindLocal, Dst: SetOf()}
			wild := NewWildcardAny[A](deadEdge)
			combined = StackTop[S, A, Edge[S, Set, V]]{Wildcard: &wild}
		} else {
			members := make([]State[A, S, Set, V], 0, len(subset))
			for _, idx := range subset.Iter() {
				if idx < 0 || idx >= len(nfa.States) {
					return Deterministic[A, S, V]{}, DeterminizeStats{}, &IllFormed{Kind: OutOfBounds, Index: idx}
				}
				st := nfa.States[idx]
				members = append(members, st)
				if st.Accepting {
					accepting = true
				}
			}

			var err error
			combined, err = combineStackTops[A, S, V](members)
			if err != nil {
				return Deterministic[A, S, V]{}, DeterminizeStats{}, err
			}
		}

		resolve := func(dst Set) (Single, error) {
			idx, ok := lookup(dst)
			if !ok {
				idx = register(dst)
				worklist = append(worklist, idx)
			}
			return Single(idx), nil
		}
		dvaTransitions, err := mapStackTopDst(combined, resolve)
		if err != nil {
			return Deterministic[A, S, V]{}, DeterminizeStats{}, err
		}

		for len(dvaStates) <= cur {
			dvaStates = append(dvaStates, State[A, S, Single, V]{})
		}
		dvaStates[cur] = State[A, S, Single, V]{Transitions: dvaTransitions, Accepting: accepting}
	}

	// Spec §4.9 step 5: reindex the reachable subsets lexicographically by
	// member-index sequence rather than leaving them numbered in BFS
	// discovery order, so that determinizing the same NFA always yields
	// the same DVA numbering regardless of worklist scheduling.
	order := make([]int, len(discovered))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return lexLess(discovered[order[i]].set.Iter(), discovered[order[j]].set.Iter())
	})
	oldToNew := make([]int, len(discovered))
	for newIdx, oldIdx := range order {
		oldToNew[oldIdx] = newIdx
	}

	newStates := make([]State[A, S, Single, V], len(dvaStates))
	for oldIdx, st := range dvaStates {
		remapped, err := mapStackTopDst(st.Transitions, func(s Single) (Single, error) {
			return Single(oldToNew[int(s)]), nil
		})
		if err != nil {
			return Deterministic[A, S, V]{}, DeterminizeStats{}, err
		}
		newStates[oldToNew[oldIdx]] = State[A, S, Single, V]{Transitions: remapped, Accepting: st.Accepting}
	}

	result := Deterministic[A, S, V]{
		States:   newStates,
		Initial:  Single(oldToNew[initIdx]),
		Classify: nfa.Classify,
	}
	subsetSizes := make([]int, len(discovered))
	for oldIdx, d := range discovered {
		subsetSizes[oldToNew[oldIdx]] = len(d.set)
	}
	return result, computeStats(len(nfa.States), newStates, subsetSizes), nil
}

// lexLess orders two ascending index sequences lexicographically: compare
// elementwise, and a sequence that is a strict prefix of the other sorts
// first.
func lexLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// Generalize embeds a Deterministic automaton into a Nondeterministic one
// with identical behavior: every Single destination becomes the singleton
// Set containing the same index. Useful for composing a determinized
// automaton with hand-authored nondeterministic ones.
func Generalize[A cmp.Ordered, S cmp.Ordered, V comparable](dva Deterministic[A, S, V]) Nondeterministic[A, S, V] {
	states := make([]State[A, S, Set, V], len(dva.States))
	for i, st := range dva.States {
		transitions, err := mapStackTopDst(st.Transitions, func(s Single) (Set, error) {
			return SetOf(int(s)), nil
		})
		if err != nil {
			// The resolve function above never errors; a non-nil err here
			// would mean mapStackTopDst itself is broken.
			panic(err)
		}
		states[i] = State[A, S, Set, V]{Transitions: transitions, Accepting: st.Accepting}
	}
	return Nondeterministic[A, S, V]{
		States:   states,
		Initial:  SetOf(int(dva.Initial)),
		Classify: dva.Classify,
	}
}

func computeStats[A cmp.Ordered, S cmp.Ordered, V comparable](numNFA int, dvaStates []State[A, S, Single, V], subsetSizes []int) DeterminizeStats {
	sizes := make([]float64, 0, len(subsetSizes))
	for _, n := range subsetSizes {
		sizes = append(sizes, float64(n))
	}
	branching := make([]float64, 0, len(dvaStates))
	for _, st := range dvaStates {
		n := len(st.Transitions.Values())
		branching = append(branching, float64(n)+1)
	}
	var mean, geo float64
	if len(sizes) > 0 {
		mean = stats.Mean(sizes)
	}
	if len(branching) > 0 {
		geo = stats.GeoMean(branching)
	}
	return DeterminizeStats{
		NumNFAStates:           numNFA,
		NumDVAStates:           len(dvaStates),
		MeanSubsetSize:         mean,
		GeoMeanBranchingFactor: geo,
	}
}

func setKey(s Set) string {
	idxs := s.Iter()
	b := strings.Builder{}
	for i, v := range idxs {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	return b.String()
}

func setEqual(a, b Set) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
