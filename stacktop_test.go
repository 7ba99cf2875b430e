package vpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackTop_Get_WildcardBeatsAll(t *testing.T) {
	wild := NewWildcardAny[rune](stringEdge("wild"))
	some := map[rune]Wildcard[rune, stringEdge]{
		'(': NewWildcardAny[rune](stringEdge("some")),
	}
	ct := StackTop[rune, rune, stringEdge]{Wildcard: &wild, Some: some}

	v, ok := ct.Get(true, '(', 'x')
	require.True(t, ok)
	assert.Equal(t, stringEdge("wild"), v)
}

func TestStackTop_Get_NoneWhenEmptyStack(t *testing.T) {
	none := NewWildcardAny[rune](stringEdge("none"))
	ct := StackTop[rune, rune, stringEdge]{None: &none}

	v, ok := ct.Get(false, 0, 'x')
	require.True(t, ok)
	assert.Equal(t, stringEdge("none"), v)

	_, ok = ct.Get(true, '(', 'x')
	assert.False(t, ok)
}

func TestStackTop_Get_SomeKeyedByTop(t *testing.T) {
	some := map[rune]Wildcard[rune, stringEdge]{
		'(': NewWildcardAny[rune](stringEdge("paren")),
	}
	ct := StackTop[rune, rune, stringEdge]{Some: some}

	v, ok := ct.Get(true, '(', 'x')
	require.True(t, ok)
	assert.Equal(t, stringEdge("paren"), v)

	_, ok = ct.Get(true, '[', 'x')
	assert.False(t, ok)
}

func TestStackTop_Merge_SomeKeysUnion(t *testing.T) {
	a := StackTop[rune, rune, stringEdge]{Some: map[rune]Wildcard[rune, stringEdge]{
		'(': NewWildcardAny[rune](stringEdge("a")),
	}}
	b := StackTop[rune, rune, stringEdge]{Some: map[rune]Wildcard[rune, stringEdge]{
		'[': NewWildcardAny[rune](stringEdge("b")),
	}}
	merged, err := a.Merge(b)
	require.NoError(t, err)
	assert.Len(t, merged.Some, 2)
}

func TestStackTop_Merge_SomeKeyConflict(t *testing.T) {
	a := StackTop[rune, rune, stringEdge]{Some: map[rune]Wildcard[rune, stringEdge]{
		'(': NewWildcardAny[rune](stringEdge("a")),
	}}
	b := StackTop[rune, rune, stringEdge]{Some: map[rune]Wildcard[rune, stringEdge]{
		'(': NewWildcardAny[rune](stringEdge("b")),
	}}
	_, err := a.Merge(b)
	require.Error(t, err)
}
