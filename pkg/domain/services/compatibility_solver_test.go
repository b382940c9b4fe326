package services_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/fibercalc/pkg/domain/entities"
	"github.com/vsinha/fibercalc/pkg/domain/services"
)

func rules(pairs ...int) []entities.PatternConstraint {
	out := make([]entities.PatternConstraint, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, entities.PatternConstraint{Multiple: pairs[i], Remainder: pairs[i+1]})
	}
	return out
}

// TestSolve_FeasibleExample: multiples of 3 and 2 over [10,30] give the LCM-6 ladder.
func TestSolve_FeasibleExample(t *testing.T) {
	result, err := services.NewCompatibilitySolver().Solve(rules(3, 0, 2, 0), 10, 30, 0)
	require.NoError(t, err)

	assert.Equal(t, 6, result.LCMOfMultiples)
	assert.True(t, result.Feasible())
	assert.Equal(t, 0, result.BaseResidue)
	assert.Equal(t, []int{12, 18, 24, 30}, result.CandidateCounts)
}

// TestSolve_Infeasible: "even" and "1 mod 4" never meet; that is an empty
// result, not an error.
func TestSolve_Infeasible(t *testing.T) {
	result, err := services.NewCompatibilitySolver().Solve(rules(2, 0, 4, 1), 1, 200, 0)
	require.NoError(t, err)

	assert.False(t, result.Feasible())
	assert.Equal(t, 4, result.LCMOfMultiples)
	assert.Empty(t, result.CandidateCounts)
	assert.NotNil(t, result.CandidateCounts, "empty, not nil, so callers can range and encode it")

	counts, err := services.SolveCompatibleCounts(rules(2, 0, 4, 1), 1, 200, 0)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

// TestSolve_EdgeStitches: edge stitches are removed before matching and added back after.
func TestSolve_EdgeStitches(t *testing.T) {
	counts, err := services.SolveCompatibleCounts(rules(6, 2), 40, 80, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{40, 46, 52, 58, 64, 70, 76}, counts)
}

// TestSolve_PatternMinimumIsOne: counts below one pattern stitch are never offered.
func TestSolve_PatternMinimumIsOne(t *testing.T) {
	counts, err := services.SolveCompatibleCounts(rules(4, 0), -10, 12, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 8, 12}, counts)

	counts, err = services.SolveCompatibleCounts(rules(5, 0), 0, 3, 4)
	require.NoError(t, err)
	assert.Empty(t, counts, "maxWidth below edge stitches leaves no room for the pattern")
}

// TestSolve_RemainderAboveMultiple treats 4+6 as the congruence class of 2 mod 4.
func TestSolve_RemainderAboveMultiple(t *testing.T) {
	counts, err := services.SolveCompatibleCounts(rules(4, 6), 1, 14, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 6, 10, 14}, counts)
}

// TestSolve_NonCoprimeFeasible: 6+2 and 4+2 share modulus 2 and agree on it.
func TestSolve_NonCoprimeFeasible(t *testing.T) {
	result, err := services.NewCompatibilitySolver().Solve(rules(6, 2, 4, 2), 1, 40, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, result.LCMOfMultiples)
	assert.Equal(t, 2, result.BaseResidue)
	assert.Equal(t, []int{2, 14, 26, 38}, result.CandidateCounts)
}

// TestSolve_InvalidInput rejects degenerate arguments with sentinel errors.
func TestSolve_InvalidInput(t *testing.T) {
	solver := services.NewCompatibilitySolver()

	_, err := solver.Solve(nil, 1, 10, 0)
	assert.ErrorIs(t, err, entities.ErrInvalidInput, "zero constraints")

	_, err = solver.Solve(rules(0, 0), 1, 10, 0)
	assert.ErrorIs(t, err, entities.ErrInvalidConstraint, "zero multiple")

	_, err = solver.Solve(rules(entities.MaxMultiple+1, 0), 1, 10, 0)
	assert.ErrorIs(t, err, entities.ErrInvalidConstraint, "multiple above ceiling")

	_, err = solver.Solve(rules(4, -1), 1, 10, 0)
	assert.ErrorIs(t, err, entities.ErrInvalidConstraint, "negative remainder")

	_, err = solver.Solve(rules(4, 0), 20, 10, 0)
	assert.ErrorIs(t, err, entities.ErrInvalidInput, "min above max")

	_, err = solver.Solve(rules(4, 0), 1, 10, -2)
	assert.ErrorIs(t, err, entities.ErrInvalidInput, "negative edge")
}

// TestSolve_Limits guards the residue scan and the enumeration.
func TestSolve_Limits(t *testing.T) {
	solver := services.NewCompatibilitySolver()

	_, err := solver.Solve(rules(9973, 0, 9967, 0, 9949, 0), 1, 100, 0)
	assert.ErrorIs(t, err, entities.ErrCycleTooLong)

	_, err = solver.Solve(rules(2, 0), 1, entities.MaxSearchSpan+10, 0)
	assert.ErrorIs(t, err, entities.ErrRangeTooWide)

	small := services.NewCompatibilitySolverWithConfig(services.SolverConfig{MaxCycleLength: 10})
	_, err = small.Solve(rules(3, 0, 4, 0), 1, 100, 0)
	assert.ErrorIs(t, err, entities.ErrCycleTooLong, "lcm 12 exceeds configured limit 10")
}

// TestSolve_Properties checks soundness, range, completeness and determinism
// against a brute-force scan on random small inputs.
func TestSolve_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	solver := services.NewCompatibilitySolver()

	for iter := 0; iter < 300; iter++ {
		n := 1 + rng.Intn(3)
		constraints := make([]entities.PatternConstraint, n)
		for i := range constraints {
			m := 1 + rng.Intn(12)
			constraints[i] = entities.PatternConstraint{Multiple: m, Remainder: rng.Intn(2 * m)}
		}
		minW := rng.Intn(60)
		maxW := minW + rng.Intn(120)
		edge := rng.Intn(6)

		first, err := solver.Solve(constraints, minW, maxW, edge)
		require.NoError(t, err)
		second, err := solver.Solve(constraints, minW, maxW, edge)
		require.NoError(t, err)
		require.Equal(t, first.CandidateCounts, second.CandidateCounts, "determinism")

		var want []int
		for c := max(minW, edge+1); c <= maxW; c++ {
			ok := true
			for _, k := range constraints {
				if (c-edge-k.Remainder)%k.Multiple != 0 {
					ok = false
					break
				}
			}
			if ok {
				want = append(want, c)
			}
		}

		if len(want) == 0 {
			assert.Empty(t, first.CandidateCounts, "iteration %d: %v [%d,%d] edge %d", iter, constraints, minW, maxW, edge)
			continue
		}
		assert.Equal(t, want, first.CandidateCounts, "iteration %d: %v [%d,%d] edge %d", iter, constraints, minW, maxW, edge)

		for i, c := range first.CandidateCounts {
			assert.GreaterOrEqual(t, c, minW)
			assert.LessOrEqual(t, c, maxW)
			if i > 0 {
				assert.Greater(t, c, first.CandidateCounts[i-1], "strictly ascending")
			}
		}
	}
}

func BenchmarkSolve_WideRange(b *testing.B) {
	solver := services.NewCompatibilitySolver()
	constraints := rules(6, 2, 8, 2, 12, 2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := solver.Solve(constraints, 1, 100000, 4); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolve_LongCycle(b *testing.B) {
	solver := services.NewCompatibilitySolver()
	// Pairwise coprime multiples: the residue scan covers the whole cycle.
	constraints := rules(7, 3, 11, 5, 13, 0, 17, 9)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := solver.Solve(constraints, 1, 50000, 0); err != nil {
			b.Fatal(err)
		}
	}
}
