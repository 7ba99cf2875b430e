package vpa

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringEdge string

func (s stringEdge) Merge(other stringEdge) (stringEdge, error) {
	if s != other {
		return "", &IllFormed{Kind: CallMergeConflict}
	}
	return s, nil
}

func TestWildcard_Get_Specific(t *testing.T) {
	w := NewWildcardSpecific[int](
		RangeEntry[int, stringEdge]{Key: Range[int]{First: 0, Last: 9}, Value: "low"},
		RangeEntry[int, stringEdge]{Key: Range[int]{First: 10, Last: 19}, Value: "high"},
	)
	v, ok := w.Get(5)
	require.True(t, ok)
	assert.Equal(t, stringEdge("low"), v)

	v, ok = w.Get(15)
	require.True(t, ok)
	assert.Equal(t, stringEdge("high"), v)

	_, ok = w.Get(100)
	assert.False(t, ok)
}

func TestWildcard_Get_Any(t *testing.T) {
	w := NewWildcardAny[int](stringEdge("always"))
	v, ok := w.Get(12345)
	require.True(t, ok)
	assert.Equal(t, stringEdge("always"), v)
}

func TestWildcard_Check_OverlapDetected(t *testing.T) {
	w := Wildcard[int, stringEdge]{Specific: []RangeEntry[int, stringEdge]{
		{Key: Range[int]{First: 0, Last: 5}},
		{Key: Range[int]{First: 3, Last: 8}},
	}}
	err := w.Check()
	require.Error(t, err)
	var ill *IllFormed
	require.True(t, errors.As(err, &ill))
	assert.Equal(t, VecMergeConflict, ill.Kind)
}

func TestWildcard_Merge_AnyAny(t *testing.T) {
	a := NewWildcardAny[int](stringEdge("x"))
	b := NewWildcardAny[int](stringEdge("x"))
	merged, err := a.Merge(b)
	require.NoError(t, err)
	assert.True(t, merged.IsAny())
}

func TestWildcard_Merge_AnyVsEmptySpecific(t *testing.T) {
	a := NewWildcardAny[int](stringEdge("x"))
	b := Wildcard[int, stringEdge]{}
	merged, err := a.Merge(b)
	require.NoError(t, err)
	assert.True(t, merged.IsAny())

	merged2, err := b.Merge(a)
	require.NoError(t, err)
	assert.True(t, merged2.IsAny())
}

func TestWildcard_Merge_AnyVsNonEmptySpecific_Conflicts(t *testing.T) {
	a := NewWildcardAny[int](stringEdge("x"))
	b := NewWildcardSpecific[int](RangeEntry[int, stringEdge]{Key: Unit(1), Value: "y"})
	_, err := a.Merge(b)
	require.Error(t, err)
	var ill *IllFormed
	require.True(t, errors.As(err, &ill))
	assert.Equal(t, WildcardMergeConflict, ill.Kind)
}

func TestWildcard_Merge_SpecificConcatenation(t *testing.T) {
	a := NewWildcardSpecific[int](RangeEntry[int, stringEdge]{Key: Unit(1), Value: "a"})
	b := NewWildcardSpecific[int](RangeEntry[int, stringEdge]{Key: Unit(2), Value: "b"})
	merged, err := a.Merge(b)
	require.NoError(t, err)
	assert.Equal(t, []stringEdge{"a", "b"}, merged.Values())
}

func TestWildcard_Merge_SpecificOverlap_Conflicts(t *testing.T) {
	a := NewWildcardSpecific[int](RangeEntry[int, stringEdge]{Key: Range[int]{First: 0, Last: 5}, Value: "a"})
	b := NewWildcardSpecific[int](RangeEntry[int, stringEdge]{Key: Range[int]{First: 3, Last: 8}, Value: "b"})
	_, err := a.Merge(b)
	require.Error(t, err)
	var ill *IllFormed
	require.True(t, errors.As(err, &ill))
	assert.Equal(t, VecMergeConflict, ill.Kind)
}
