package numeric_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/fibercalc/pkg/domain/numeric"
)

// TestGCD covers Euclid on signed inputs and the zero identities.
func TestGCD(t *testing.T) {
	cases := []struct {
		a, b, want int
	}{
		{12, 18, 6},
		{18, 12, 6},
		{7, 13, 1},
		{-12, 18, 6},
		{12, -18, 6},
		{9, 0, 9},
		{-9, 0, 9},
		{0, 0, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, numeric.GCD(c.a, c.b), "GCD(%d, %d)", c.a, c.b)
	}
}

// TestLCM checks pairwise LCM including zero operands.
func TestLCM(t *testing.T) {
	assert.Equal(t, 6, numeric.LCM(2, 3))
	assert.Equal(t, 12, numeric.LCM(4, 6))
	assert.Equal(t, 12, numeric.LCM(-4, 6))
	assert.Equal(t, 0, numeric.LCM(0, 6))
	assert.Equal(t, 7, numeric.LCM(7, 7))
}

// TestLCMOfSequence verifies the fold is seeded with 1.
func TestLCMOfSequence(t *testing.T) {
	assert.Equal(t, 1, numeric.LCMOfSequence(nil))
	assert.Equal(t, 5, numeric.LCMOfSequence([]int{5}))
	assert.Equal(t, 6, numeric.LCMOfSequence([]int{3, 2}))
	assert.Equal(t, 60, numeric.LCMOfSequence([]int{4, 6, 10}))
}

// TestCheckedLCM_Overflow ensures overflow is reported instead of wrapping.
func TestCheckedLCM_Overflow(t *testing.T) {
	_, ok := numeric.CheckedLCM(math.MaxInt, math.MaxInt-1)
	assert.False(t, ok, "coprime near-MaxInt operands must overflow")

	v, ok := numeric.CheckedLCM(1<<20, 1<<21)
	require.True(t, ok)
	assert.Equal(t, 1<<21, v)
}

// TestCheckedLCMOfSequence_Limit stops as soon as the running LCM passes the limit.
func TestCheckedLCMOfSequence_Limit(t *testing.T) {
	v, ok := numeric.CheckedLCMOfSequence([]int{4, 6, 10}, 100)
	require.True(t, ok)
	assert.Equal(t, 60, v)

	_, ok = numeric.CheckedLCMOfSequence([]int{4, 6, 10, 7}, 100)
	assert.False(t, ok, "420 exceeds the limit of 100")

	v, ok = numeric.CheckedLCMOfSequence([]int{9973, 9967}, 0)
	require.True(t, ok, "limit 0 disables the bound")
	assert.Equal(t, 9973*9967, v)
}
