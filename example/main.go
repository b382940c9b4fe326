package main

import (
	"fmt"

	"github.com/vsinha/fibercalc/pkg/domain/entities"
	"github.com/vsinha/fibercalc/pkg/domain/numeric"
	"github.com/vsinha/fibercalc/pkg/domain/services"
	"github.com/vsinha/fibercalc/pkg/infrastructure/repositories/memory"
)

func main() {
	// A sweater body: 2x2 rib at the hem, then a 6-stitch lace panel plus 1
	// to centre it, with 2 selvedge stitches.
	constraints := []entities.PatternConstraint{
		{Multiple: 4, Remainder: 0, Label: "rib"},
		{Multiple: 6, Remainder: 1, Label: "lace"},
	}

	fmt.Println("🧶 Finding compatible cast-on counts...")
	counts, err := services.SolveCompatibleCounts(constraints, 180, 240, 2)
	if err != nil {
		fmt.Printf("❌ Solve failed: %v\n", err)
		return
	}
	if len(counts) == 0 {
		fmt.Println("No compatible count - try widening the range")
		return
	}
	fmt.Printf("Compatible counts between 180 and 240: %v\n\n", counts)

	// Nearest compatible count to a 40 inch chest at 5 stitches per inch
	planner := services.NewCastOnPlanner(nil)
	plan, err := planner.Plan(40, 5, constraints, 2)
	if err != nil {
		fmt.Printf("❌ Planning failed: %v\n", err)
		return
	}
	fmt.Printf("Ideal count %d -> cast on %d (%.2f in)\n\n", plan.IdealCount, plan.RecommendedCount, plan.ActualWidth)

	// How much worsted yarn the body needs
	calibration := memory.NewCalibrationRepository()
	estimator := services.NewYardageEstimator(calibration)

	project, err := entities.NewYarnProject("sweater body", 40, 24, entities.Worsted, entities.Rectangle, 1.1, 220, 100, nil)
	if err != nil {
		fmt.Printf("❌ Invalid project: %v\n", err)
		return
	}

	result := estimator.Estimate(*project)
	if result == nil {
		fmt.Println("enter values to see results")
		return
	}

	fmt.Println("📊 Yarn Estimate")
	fmt.Println("================")
	fmt.Printf("Yardage: %s yd (%s m)\n",
		numeric.FormatFixed(result.BufferedLength, 1),
		numeric.FormatFixed(numeric.YardsToMeters(result.BufferedLength), 1))
	fmt.Printf("Weight:  %s g\n", numeric.FormatFixed(result.TotalWeight, 1))
	fmt.Printf("Skeins:  %d x 220 yd\n", result.SkeinsNeeded)
}
