package vpa

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingle_Merge(t *testing.T) {
	merged, err := Single(3).Merge(Single(3))
	require.NoError(t, err)
	assert.Equal(t, Single(3), merged)

	_, err = Single(3).Merge(Single(4))
	require.Error(t, err)
	var ill *IllFormed
	require.True(t, errors.As(err, &ill))
	assert.Equal(t, IndexMergeConflict, ill.Kind)
}

func TestCollectSingle(t *testing.T) {
	_, err := CollectSingle(nil)
	assert.ErrorIs(t, err, ErrEmptyControl)

	_, err = CollectSingle([]int{1, 2})
	assert.ErrorIs(t, err, ErrNotSingle)

	s, err := CollectSingle([]int{4, 4, 4})
	require.NoError(t, err)
	assert.Equal(t, Single(4), s)
}

func TestSet_Merge(t *testing.T) {
	a := SetOf(1, 2)
	b := SetOf(2, 3)
	merged, err := a.Merge(b)
	require.NoError(t, err)
	assert.Equal(t, SetOf(1, 2, 3), merged)
}

func TestSet_Iter_Sorted(t *testing.T) {
	s := SetOf(5, 1, 3)
	assert.Equal(t, []int{1, 3, 5}, s.Iter())
}

func TestCollectSet(t *testing.T) {
	_, err := CollectSet(nil)
	assert.ErrorIs(t, err, ErrEmptyControl)

	s, err := CollectSet([]int{2, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, SetOf(1, 2), s)
}

func TestSingle_FlatMap(t *testing.T) {
	s := Single(2)
	out := s.FlatMap(func(i int) Single { return Single(i * 10) })
	assert.Equal(t, Single(20), out)
}

func TestSet_FlatMap(t *testing.T) {
	s := SetOf(1, 2)
	out := s.FlatMap(func(i int) Set { return SetOf(i, i+10) })
	assert.Equal(t, SetOf(1, 11, 2, 12), out)
}
