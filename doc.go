package vpa

import "fmt"

// ExampleAccept builds a one-state deterministic automaton over rune
// tokens that treats '(' as a call (pushing itself) and ')' as a return
// (popping), and runs it against a few inputs.
func ExampleAccept() {
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

	matched := Deterministic[rune, rune, struct{}]{
		States: []State[rune, rune, Single, struct{}]{
			{
				Transitions: StackTop[rune, rune, Edge[rune, Single, struct{}]]{Wildcard: &onParen},
				Accepting:   true,
			},
		},
		Initial:  Single(0),
		Classify: classify,
	}

	for _, input := range []string{"(())", "(()", ")("} {
		ok, err := Accept(matched, []rune(input))
		if err != nil {
			panic(err)
		}
		fmt.Println(ok)
	}

	// Output:
	// true
	// false
	// false
}
