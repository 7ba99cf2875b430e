package vpa

// matchedParensDVA builds the same one-state deterministic automaton as
// ExampleAccept, for reuse across exec/check/state tests.
func matchedParensDVA() Deterministic[rune, rune, struct{}] {
	classify := func(r rune) Kind {
		switch r {
		case '(':
			return KindCall
		case ')':
			return KindReturn
		default:
			return KindLocal
		}
	}
	call := Edge[rune, Single, struct{}]{Kind: KindCall, Dst: Single(0), Push: '('}
	ret := Edge[rune, Single, struct{}]{Kind: KindReturn, Dst: Single(0)}
	onParen := NewWildcardSpecific[rune](
		RangeEntry[rune, Edge[rune, Single, struct{}]]{Key: Unit(rune('(')), Value: call},
		RangeEntry[rune, Edge[rune, Single, struct{}]]{Key: Unit(rune(')')), Value: ret},
	)
	return Deterministic[rune, rune, struct{}]{
		States: []State[rune, rune, Single, struct{}]{
			{
				Transitions: StackTop[rune, rune, Edge[rune, Single, struct{}]]{Wildcard: &onParen},
				Accepting:   true,
			},
		},
		Initial:  Single(0),
		Classify: classify,
	}
}

// matchedParensNVA builds an equivalent two-path nondeterministic automaton:
// state 0 is the start/accept state with a call edge to states {0, 1}
// (matching '(') and a return edge to state 0; state 1 is a duplicate accept state
// reached only via the call edge, folded back by a return edge to state 0.
// Exercises Determinize needing to merge states 0 and 1's transitions.
func matchedParensNVA() Nondeterministic[rune, rune, struct{}] {
	classify := func(r rune) Kind {
		switch r {
		case '(':
			return KindCall
		case ')':
			return KindReturn
		default:
			return KindLocal
		}
	}
	call0 := Edge[rune, Set, struct{}]{Kind: KindCall, Dst: SetOf(0, 1), Push: '('}
	ret0 := Edge[rune, Set, struct{}]{Kind: KindReturn, Dst: SetOf(0)}
	call1 := Edge[rune, Set, struct{}]{Kind: KindCall, Dst: SetOf(1), Push: '('}
	ret1 := Edge[rune, Set, struct{}]{Kind: KindReturn, Dst: SetOf(0)}

	w0 := NewWildcardSpecific[rune](
		RangeEntry[rune, Edge[rune, Set, struct{}]]{Key: Unit(rune('(')), Value: call0},
		RangeEntry[rune, Edge[rune, Set, struct{}]]{Key: Unit(rune(')')), Value: ret0},
	)
	w1 := NewWildcardSpecific[rune](
		RangeEntry[rune, Edge[rune, Set, struct{}]]{Key: Unit(rune('(')), Value: call1},
		RangeEntry[rune, Edge[rune, Set, struct{}]]{Key: Unit(rune(')')), Value: ret1},
	)

	return Nondeterministic[rune, rune, struct{}]{
		States: []State[rune, rune, Set, struct{}]{
			{Transitions: StackTop[rune, rune, Edge[rune, Set, struct{}]]{Wildcard: &w0}, Accepting: true},
			{Transitions: StackTop[rune, rune, Edge[rune, Set, struct{}]]{Wildcard: &w1}, Accepting: true},
		},
		Initial:  SetOf(0),
		Classify: classify,
	}
}
