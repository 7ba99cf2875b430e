package vpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_ClampsOutOfBoundsDestinations(t *testing.T) {
	edge := Edge[rune, Set, struct{}]{Kind: KindLocal, Dst: SetOf(57)}
	w := NewWildcardAny[rune](edge)
	a := Nondeterministic[rune, rune, struct{}]{
		States: []State[rune, rune, Set, struct{}]{
			{Transitions: StackTop[rune, rune, Edge[rune, Set, struct{}]]{Wildcard: &w}},
			{},
			{},
		},
		Initial: SetOf(57),
	}

	sanitized := Sanitize(a)
	require.NoError(t, Check(sanitized))
	for idx := range sanitized.Initial {
		assert.Less(t, idx, 3)
	}
}

func TestSanitize_PrunesShadowedDuplicateRanges(t *testing.T) {
	first := Edge[rune, Set, struct{}]{Kind: KindLocal, Dst: SetOf(0)}
	dup := Edge[rune, Set, struct{}]{Kind: KindLocal, Dst: SetOf(0)}
	w := Wildcard[rune, Edge[rune, Set, struct{}]]{Specific: []RangeEntry[rune, Edge[rune, Set, struct{}]]{
		{Key: Unit(rune('x')), Value: first},
		{Key: Unit(rune('x')), Value: dup},
	}}
	a := Nondeterministic[rune, rune, struct{}]{
		States: []State[rune, rune, Set, struct{}]{
			{Transitions: StackTop[rune, rune, Edge[rune, Set, struct{}]]{Wildcard: &w}},
		},
		Initial: SetOf(0),
	}

	sanitized := Sanitize(a)
	assert.Len(t, sanitized.States[0].Transitions.Wildcard.Specific, 1)
}

func TestSanitize_EmptyAutomatonIsNoop(t *testing.T) {
	a := Nondeterministic[rune, rune, struct{}]{}
	assert.Equal(t, a, Sanitize(a))
}
