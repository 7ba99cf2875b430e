package vpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange_Contains(t *testing.T) {
	r := Range[int]{First: 3, Last: 7}
	assert.Equal(t, Less, r.Contains(2))
	assert.Equal(t, Equal, r.Contains(3))
	assert.Equal(t, Equal, r.Contains(5))
	assert.Equal(t, Equal, r.Contains(7))
	assert.Equal(t, Greater, r.Contains(8))
}

func TestRange_Unit(t *testing.T) {
	u := Unit(5)
	assert.Equal(t, Equal, u.Contains(5))
	assert.Equal(t, Less, u.Contains(4))
	assert.Equal(t, Greater, u.Contains(6))
}

func TestRange_Intersection_Overlapping(t *testing.T) {
	a := Range[int]{First: 0, Last: 5}
	b := Range[int]{First: 3, Last: 8}
	r, ok := a.Intersection(b)
	require.True(t, ok)
	assert.Equal(t, Range[int]{First: 3, Last: 5}, r)
	assert.True(t, a.Overlap(b))
}

func TestRange_Intersection_Disjoint(t *testing.T) {
	a := Range[int]{First: 0, Last: 2}
	b := Range[int]{First: 3, Last: 5}
	_, ok := a.Intersection(b)
	require.False(t, ok)
	assert.False(t, a.Overlap(b))
}

func TestRange_Intersection_Adjacent(t *testing.T) {
	a := Range[int]{First: 0, Last: 3}
	b := Range[int]{First: 3, Last: 5}
	r, ok := a.Intersection(b)
	require.True(t, ok)
	assert.Equal(t, Unit(3), r)
}
