package services

import (
	"fmt"

	"github.com/vsinha/fibercalc/pkg/domain/entities"
	"github.com/vsinha/fibercalc/pkg/domain/numeric"
)

// SolverConfig bounds the work a single solve may do
type SolverConfig struct {
	MaxCycleLength int
	MaxSearchSpan  int
}

// CompatibilitySolver finds stitch counts that satisfy several
// "multiple of N plus K" rules at once
type CompatibilitySolver struct {
	config SolverConfig
}

// NewCompatibilitySolver creates a solver with the default limits
func NewCompatibilitySolver() *CompatibilitySolver {
	return NewCompatibilitySolverWithConfig(SolverConfig{
		MaxCycleLength: entities.MaxCycleLength,
		MaxSearchSpan:  entities.MaxSearchSpan,
	})
}

// NewCompatibilitySolverWithConfig creates a solver with custom limits.
// Non-positive limits fall back to the defaults.
func NewCompatibilitySolverWithConfig(config SolverConfig) *CompatibilitySolver {
	if config.MaxCycleLength <= 0 {
		config.MaxCycleLength = entities.MaxCycleLength
	}
	if config.MaxSearchSpan <= 0 {
		config.MaxSearchSpan = entities.MaxSearchSpan
	}
	return &CompatibilitySolver{config: config}
}

// SolveCompatibleCounts returns every count in [minWidth, maxWidth] that,
// after removing edgeStitches, satisfies all constraints. An infeasible
// constraint set yields an empty slice and a nil error.
func SolveCompatibleCounts(
	constraints []entities.PatternConstraint,
	minWidth, maxWidth, edgeStitches int,
) ([]int, error) {
	result, err := NewCompatibilitySolver().Solve(constraints, minWidth, maxWidth, edgeStitches)
	if err != nil {
		return nil, err
	}
	return result.CandidateCounts, nil
}

// Solve runs the residue search and enumerates candidates in ascending order.
//
// Both bounds include edge stitches. Pattern counts are searched in
// [max(1, minWidth-edgeStitches), maxWidth-edgeStitches] and edge stitches
// are added back to every candidate.
func (s *CompatibilitySolver) Solve(
	constraints []entities.PatternConstraint,
	minWidth, maxWidth, edgeStitches int,
) (*entities.CompatibilityResult, error) {
	if err := s.validate(constraints, minWidth, maxWidth, edgeStitches); err != nil {
		return nil, err
	}

	patternMin := max(1, minWidth-edgeStitches)
	patternMax := maxWidth - edgeStitches
	if patternMax >= patternMin && patternMax-patternMin > s.config.MaxSearchSpan {
		return nil, fmt.Errorf("%w: %d stitches exceeds limit %d",
			entities.ErrRangeTooWide, patternMax-patternMin, s.config.MaxSearchSpan)
	}

	multiples := make([]int, len(constraints))
	for i, c := range constraints {
		multiples[i] = c.Multiple
	}
	step, ok := numeric.CheckedLCMOfSequence(multiples, s.config.MaxCycleLength)
	if !ok {
		return nil, fmt.Errorf("%w: lcm of %v exceeds limit %d",
			entities.ErrCycleTooLong, multiples, s.config.MaxCycleLength)
	}

	result := &entities.CompatibilityResult{
		LCMOfMultiples:  step,
		CandidateCounts: []int{},
		EdgeStitches:    edgeStitches,
	}

	residue, found := baseResidue(constraints, step)
	if !found {
		return result, nil
	}
	result.BaseResidue = residue
	result.HasResidue = true

	if patternMax < patternMin {
		return result, nil
	}

	for c := firstAtOrAbove(residue, step, patternMin); c <= patternMax; c += step {
		result.CandidateCounts = append(result.CandidateCounts, c+edgeStitches)
		if c > patternMax-step {
			break
		}
	}

	return result, nil
}

func (s *CompatibilitySolver) validate(
	constraints []entities.PatternConstraint,
	minWidth, maxWidth, edgeStitches int,
) error {
	if len(constraints) == 0 {
		return fmt.Errorf("%w: at least one pattern constraint is required", entities.ErrInvalidInput)
	}
	for i, c := range constraints {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("constraint %d: %w", i+1, err)
		}
	}
	if edgeStitches < 0 {
		return fmt.Errorf("%w: edge stitches cannot be negative, got %d", entities.ErrInvalidInput, edgeStitches)
	}
	if minWidth > maxWidth {
		return fmt.Errorf("%w: minimum width %d is greater than maximum width %d",
			entities.ErrInvalidInput, minWidth, maxWidth)
	}
	return nil
}

// baseResidue scans one LCM cycle for a residue satisfying every
// constraint. The scan strides by the largest multiple, starting at that
// constraint's own residue, so only its members are tested.
func baseResidue(constraints []entities.PatternConstraint, step int) (int, bool) {
	pivot := constraints[0]
	for _, c := range constraints[1:] {
		if c.Multiple > pivot.Multiple {
			pivot = c
		}
	}

	for r := pivot.Remainder % pivot.Multiple; r < step; r += pivot.Multiple {
		if satisfiesAll(constraints, r) {
			return r, true
		}
	}
	return 0, false
}

func satisfiesAll(constraints []entities.PatternConstraint, count int) bool {
	for _, c := range constraints {
		if !c.Satisfies(count) {
			return false
		}
	}
	return true
}

// firstAtOrAbove returns the smallest residue + k*step (k >= 0) that is >= floor.
func firstAtOrAbove(residue, step, floor int) int {
	if residue >= floor {
		return residue
	}
	gap := floor - residue
	k := gap / step
	if gap%step != 0 {
		k++
	}
	return residue + k*step
}
