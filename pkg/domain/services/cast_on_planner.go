package services

import (
	"math"

	"github.com/vsinha/fibercalc/pkg/domain/entities"
)

// CastOnPlanner picks the compatible stitch count closest to a target width
type CastOnPlanner struct {
	solver *CompatibilitySolver
}

// NewCastOnPlanner creates a planner on top of a solver
func NewCastOnPlanner(solver *CompatibilitySolver) *CastOnPlanner {
	if solver == nil {
		solver = NewCompatibilitySolver()
	}
	return &CastOnPlanner{solver: solver}
}

// Plan rounds targetWidth × stitchesPerUnit to the ideal count and returns
// the nearest compatible count, preferring the larger one on a tie.
// It returns nil, nil when width or gauge is not positive, and a plan with
// HasRecommendation false when the constraints are infeasible.
func (p *CastOnPlanner) Plan(
	targetWidth, stitchesPerUnit float64,
	constraints []entities.PatternConstraint,
	edgeStitches int,
) (*entities.CastOnPlan, error) {
	if !(targetWidth > 0) || !(stitchesPerUnit > 0) {
		return nil, nil
	}
	exact := targetWidth * stitchesPerUnit
	if math.IsInf(exact, 0) || exact > float64(math.MaxInt32) {
		return nil, nil
	}
	ideal := max(1, int(math.Round(exact)))

	// A zero-width range still validates the constraints and yields the cycle.
	probe, err := p.solver.Solve(constraints, ideal, ideal, edgeStitches)
	if err != nil {
		return nil, err
	}

	plan := &entities.CastOnPlan{
		IdealCount:     ideal,
		LCMOfMultiples: probe.LCMOfMultiples,
		EdgeStitches:   edgeStitches,
	}
	if !probe.Feasible() {
		return plan, nil
	}

	step := probe.LCMOfMultiples
	target := ideal - edgeStitches

	upper := firstAtOrAbove(probe.BaseResidue, step, max(1, target))
	plan.UpperCount = upper + edgeStitches

	lower := upper - step
	if upper == target {
		lower = upper
	}
	if lower >= 1 {
		plan.LowerCount = lower + edgeStitches
	}

	plan.RecommendedCount = plan.UpperCount
	if plan.LowerCount > 0 && ideal-plan.LowerCount < plan.UpperCount-ideal {
		plan.RecommendedCount = plan.LowerCount
	}
	plan.HasRecommendation = true
	plan.ActualWidth = float64(plan.RecommendedCount) / stitchesPerUnit

	return plan, nil
}
