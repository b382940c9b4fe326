package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/vsinha/fibercalc/pkg/domain/entities"
	"github.com/vsinha/fibercalc/pkg/domain/numeric"
	"github.com/vsinha/fibercalc/pkg/infrastructure/events"
	"github.com/vsinha/fibercalc/pkg/infrastructure/repositories/memory"
)

// Helper to create a service over the built-in tables
func newTestCalculator() (*CalculatorService, *events.InMemoryEventStore, *memory.PreferenceRepository) {
	store := events.NewInMemoryEventStore()
	prefs := memory.NewPreferenceRepository()
	return NewCalculatorService(memory.NewCalibrationRepository(), prefs, store, nil), store, prefs
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCalculatorService_Solve(t *testing.T) {
	ctx := context.Background()
	calc, store, _ := newTestCalculator()

	constraints, err := ParseRules([]string{"2", "3"})
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}

	report, err := calc.Solve(ctx, constraints, 10, 30, 0)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	expected := []int{12, 18, 24, 30}
	if len(report.Counts) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, report.Counts)
	}
	for i, c := range expected {
		if report.Counts[i] != c {
			t.Errorf("count %d: expected %d, got %d", i, c, report.Counts[i])
		}
	}
	if report.LCM != 6 || !report.Feasible() {
		t.Errorf("Expected feasible report with lcm 6, got %+v", report)
	}

	all, _ := store.ReadAllEvents(0)
	if len(all) != 1 || all[0].Type() != events.SolveCompletedEvent {
		t.Errorf("Expected one solve.completed event, got %d", len(all))
	}
}

func TestCalculatorService_Solve_Infeasible(t *testing.T) {
	calc, _, _ := newTestCalculator()
	constraints, _ := ParseRules([]string{"2", "4+1"})

	report, err := calc.Solve(context.Background(), constraints, 1, 100, 0)
	if err != nil {
		t.Fatalf("Infeasible constraints should not error: %v", err)
	}
	if report.Feasible() || len(report.Counts) != 0 {
		t.Errorf("Expected infeasible empty report, got %+v", report)
	}
	if report.Counts == nil {
		t.Error("Counts should be an empty slice, not nil")
	}
}

func TestCalculatorService_Solve_Rejected(t *testing.T) {
	calc, store, _ := newTestCalculator()

	_, err := calc.Solve(context.Background(), []entities.PatternConstraint{{Multiple: 0}}, 1, 10, 0)
	if !errors.Is(err, entities.ErrInvalidConstraint) {
		t.Fatalf("Expected ErrInvalidConstraint, got %v", err)
	}
	if !IsUserError(err) {
		t.Error("Invalid constraint should be a user error")
	}

	all, _ := store.ReadAllEvents(0)
	if len(all) != 1 || all[0].Type() != events.SolveRejectedEvent {
		t.Errorf("Expected one solve.rejected event")
	}
}

func TestCalculatorService_Estimate_Blanket(t *testing.T) {
	calc, store, _ := newTestCalculator()

	report, err := calc.Estimate(context.Background(), EstimateInput{
		Name:        "blanket",
		Width:       40,
		Height:      60,
		YarnWeight:  "worsted",
		SkeinLength: 220,
	})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if !report.Complete {
		t.Fatal("Expected complete report")
	}
	if !approxEqual(report.BufferedYards, 1980) {
		t.Errorf("Expected 1980 yards, got %g", report.BufferedYards)
	}
	if !approxEqual(report.Grams, 990) {
		t.Errorf("Expected 990 g, got %g", report.Grams)
	}
	if report.Skeins != 9 {
		t.Errorf("Expected 9 skeins, got %d", report.Skeins)
	}
	if report.Shape != "rectangle" || report.Units != "imperial" {
		t.Errorf("Unexpected labels: %+v", report)
	}

	all, _ := store.ReadEvents(events.YardageStream, 0)
	if len(all) != 1 || all[0].Type() != events.YardageEstimatedEvent {
		t.Errorf("Expected one yardage.estimated event")
	}
}

func TestCalculatorService_Estimate_MetricMatchesImperial(t *testing.T) {
	calc, _, _ := newTestCalculator()
	ctx := context.Background()

	imperial, err := calc.Estimate(ctx, EstimateInput{
		Width: 40, Height: 60, YarnWeight: "dk", SkeinLength: 220,
		Gauge: &entities.Gauge{StitchesPerUnit: 5.5, RowsPerUnit: 7},
	})
	if err != nil {
		t.Fatal(err)
	}

	metric, err := calc.Estimate(ctx, EstimateInput{
		Width:       numeric.InchesToCentimeters(40),
		Height:      numeric.InchesToCentimeters(60),
		Units:       entities.Metric,
		YarnWeight:  "dk",
		SkeinLength: numeric.YardsToMeters(220),
		Gauge: &entities.Gauge{
			StitchesPerUnit: numeric.PerInchToPerCentimeter(5.5),
			RowsPerUnit:     numeric.PerInchToPerCentimeter(7),
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if !approxEqual(imperial.GaugeRatio, 1.0) {
		t.Errorf("Baseline gauge should give ratio 1.0, got %g", imperial.GaugeRatio)
	}
	if math.Abs(imperial.BufferedYards-metric.BufferedYards) > 1e-3 {
		t.Errorf("Metric and imperial input disagree: %g vs %g", metric.BufferedYards, imperial.BufferedYards)
	}
	if imperial.Skeins != metric.Skeins {
		t.Errorf("Skein counts disagree: %d vs %d", imperial.Skeins, metric.Skeins)
	}
}

func TestCalculatorService_Estimate_Incomplete(t *testing.T) {
	calc, store, _ := newTestCalculator()
	ctx := context.Background()

	tests := []struct {
		name  string
		input EstimateInput
	}{
		{"no width", EstimateInput{Height: 10, YarnWeight: "dk"}},
		{"no weight", EstimateInput{Width: 10, Height: 10}},
		{"negative multiplier", EstimateInput{Width: 10, Height: 10, YarnWeight: "dk", StitchMultiplier: -1}},
		{"zero gauge rows", EstimateInput{Width: 10, Height: 10, YarnWeight: "dk", Gauge: &entities.Gauge{StitchesPerUnit: 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := calc.Estimate(ctx, tt.input)
			if err != nil {
				t.Fatalf("Incomplete input should not error: %v", err)
			}
			if report.Complete || report.BufferedYards != 0 {
				t.Errorf("Expected incomplete report, got %+v", report)
			}
		})
	}

	all, _ := store.ReadEvents(events.YardageStream, 0)
	if len(all) != len(tests) {
		t.Errorf("Expected %d yardage.incomplete events, got %d", len(tests), len(all))
	}
}

func TestCalculatorService_Estimate_NameErrors(t *testing.T) {
	calc, _, _ := newTestCalculator()
	ctx := context.Background()

	if _, err := calc.Estimate(ctx, EstimateInput{Width: 1, Height: 1, YarnWeight: "mohair"}); !errors.Is(err, entities.ErrUnknownYarnWeight) {
		t.Errorf("Expected ErrUnknownYarnWeight, got %v", err)
	}
	if _, err := calc.Estimate(ctx, EstimateInput{Width: 1, Height: 1, YarnWeight: "dk", Shape: "hexagon"}); !errors.Is(err, entities.ErrUnknownShape) {
		t.Errorf("Expected ErrUnknownShape, got %v", err)
	}
	if _, err := calc.Estimate(ctx, EstimateInput{Width: 1, Height: 1, YarnWeight: "dk", Pattern: "nonesuch"}); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := calc.Estimate(ctx, EstimateInput{Width: 1, Height: 1, YarnWeight: "dk", Pattern: "cables", StitchMultiplier: 1.2}); !errors.Is(err, entities.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for pattern plus multiplier, got %v", err)
	}
}

func TestCalculatorService_Estimate_UsesPreferences(t *testing.T) {
	calc, _, prefs := newTestCalculator()

	saved := entities.DefaultPreferences()
	saved.DefaultYarnWeight = "worsted"
	saved.DefaultSkeinYards = 220
	if err := prefs.Save(saved); err != nil {
		t.Fatal(err)
	}

	report, err := calc.Estimate(context.Background(), EstimateInput{Width: 40, Height: 60})
	if err != nil {
		t.Fatal(err)
	}
	if report.YarnWeight != "worsted" || report.Skeins != 9 {
		t.Errorf("Expected preference defaults to apply, got %+v", report)
	}
}

func TestCalculatorService_Estimate_DefaultSkeinIsYardsUnderMetric(t *testing.T) {
	calc, _, prefs := newTestCalculator()

	saved := entities.DefaultPreferences()
	saved.UnitSystem = entities.Metric
	saved.DefaultSkeinYards = 220
	if err := prefs.Save(saved); err != nil {
		t.Fatal(err)
	}

	report, err := calc.Estimate(context.Background(), EstimateInput{
		Width:      numeric.InchesToCentimeters(40),
		Height:     numeric.InchesToCentimeters(60),
		YarnWeight: "worsted",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !approxEqual(report.SkeinLength, 220) {
		t.Errorf("Expected the 220 yd default unchanged, got %g", report.SkeinLength)
	}
	if report.Skeins != 9 {
		t.Errorf("Expected 9 skeins as in imperial, got %d", report.Skeins)
	}
}

func TestCalculatorService_EstimateBatch(t *testing.T) {
	calc, _, _ := newTestCalculator()

	blanket, _ := entities.NewYarnProject("blanket", 40, 60, entities.Worsted, entities.Rectangle, 0, 220, 0, nil)
	hat, _ := entities.NewYarnProject("hat", 20, 9, entities.Worsted, entities.Hat, 0, 220, 0, nil)

	reports, err := calc.EstimateBatch(context.Background(), []*entities.YarnProject{blanket, hat})
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 2 {
		t.Fatalf("Expected 2 reports, got %d", len(reports))
	}
	if reports[0].Name != "blanket" || reports[0].Skeins != 9 {
		t.Errorf("blanket: %+v", reports[0])
	}
	if !reports[1].Complete || reports[1].Shape != "hat" {
		t.Errorf("hat: %+v", reports[1])
	}
}

func TestCalculatorService_PlanCastOn(t *testing.T) {
	calc, _, _ := newTestCalculator()
	ctx := context.Background()

	constraints, _ := ParseRules([]string{"6+2"})
	report, err := calc.PlanCastOn(ctx, CastOnInput{Width: 20, StitchesPerUnit: 5, Constraints: constraints, EdgeStitches: 2})
	if err != nil {
		t.Fatal(err)
	}
	if !report.HasRecommendation || report.RecommendedCount != 100 || !approxEqual(report.ActualWidth, 20) {
		t.Errorf("Expected exact 100 stitch recommendation, got %+v", report)
	}

	eights, _ := ParseRules([]string{"8"})
	report, err = calc.PlanCastOn(ctx, CastOnInput{Width: 20, StitchesPerUnit: 5, Constraints: eights})
	if err != nil {
		t.Fatal(err)
	}
	if report.LowerCount != 96 || report.UpperCount != 104 || report.RecommendedCount != 104 {
		t.Errorf("Expected tie 96/104 resolved upward, got %+v", report)
	}

	report, err = calc.PlanCastOn(ctx, CastOnInput{Width: 0, StitchesPerUnit: 5, Constraints: eights})
	if err != nil {
		t.Fatal(err)
	}
	if report.Complete {
		t.Errorf("Zero width should give an incomplete report")
	}
}

func TestCalculatorService_Convert(t *testing.T) {
	calc, _, _ := newTestCalculator()
	ctx := context.Background()

	report, err := calc.Convert(ctx, 10, "in", "cm")
	if err != nil {
		t.Fatal(err)
	}
	if report.Result != 25.4 || report.From != "in" || report.To != "cm" {
		t.Errorf("Expected 25.4 cm, got %+v", report)
	}

	if _, err := calc.Convert(ctx, 10, "in", "g"); !errors.Is(err, numeric.ErrIncompatibleUnits) {
		t.Errorf("Expected ErrIncompatibleUnits, got %v", err)
	}
	if _, err := calc.Convert(ctx, 10, "furlong", "m"); !errors.Is(err, numeric.ErrUnknownUnit) {
		t.Errorf("Expected ErrUnknownUnit, got %v", err)
	}
}

func TestCalculatorService_LookupNeedle(t *testing.T) {
	calc, _, _ := newTestCalculator()
	ctx := context.Background()

	tests := []struct {
		query string
		mm    float64
		exact bool
	}{
		{"4.5", 4.5, true},
		{"4.5mm", 4.5, true},
		{"4.4", 4.5, false},
		{"us 8", 5.0, true},
		{"US8", 5.0, true},
		{"uk 9", 3.5, true},
		{"H-8", 5.0, true},
		{"h8", 5.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			report, err := calc.LookupNeedle(ctx, tt.query)
			if err != nil {
				t.Fatalf("LookupNeedle(%q): %v", tt.query, err)
			}
			if report.Match.Millimeters != tt.mm || report.Exact != tt.exact {
				t.Errorf("Expected %gmm exact=%v, got %+v", tt.mm, tt.exact, report)
			}
		})
	}

	if _, err := calc.LookupNeedle(ctx, "zz"); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := calc.LookupNeedle(ctx, "-3"); !errors.Is(err, entities.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestCalculatorService_Counter(t *testing.T) {
	calc, store, prefs := newTestCalculator()
	ctx := context.Background()

	steps := []struct {
		op    CounterOp
		value int
	}{
		{CounterIncrement, 1},
		{CounterIncrement, 2},
		{CounterDecrement, 1},
		{CounterShow, 1},
		{CounterDecrement, 0},
		{CounterDecrement, 0},
		{CounterIncrement, 1},
		{CounterReset, 0},
	}

	for i, step := range steps {
		report, err := calc.Counter(ctx, step.op, "sleeve")
		if err != nil {
			t.Fatalf("step %d (%s): %v", i, step.op, err)
		}
		if report.Value != step.value {
			t.Errorf("step %d (%s): expected %d, got %d", i, step.op, step.value, report.Value)
		}
	}

	saved, _ := prefs.Load()
	if v, ok := saved.Counters["sleeve"]; !ok || v != 0 {
		t.Errorf("Expected persisted counter 0, got %v (present=%v)", v, ok)
	}

	changes, _ := store.ReadEvents(events.CounterStream, 0)
	if len(changes) != len(steps)-1 {
		t.Errorf("Expected %d counter.changed events, got %d", len(steps)-1, len(changes))
	}

	if _, err := calc.Counter(ctx, CounterIncrement, "  "); !errors.Is(err, entities.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestParseCounterOp(t *testing.T) {
	for input, expected := range map[string]CounterOp{
		"inc": CounterIncrement, "+": CounterIncrement,
		"DEC": CounterDecrement, "reset": CounterReset, "": CounterShow,
	} {
		got, err := ParseCounterOp(input)
		if err != nil || got != expected {
			t.Errorf("ParseCounterOp(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := ParseCounterOp("double"); err == nil {
		t.Error("Expected error for unknown op")
	}
}

func TestCalculatorService_CancelledContext(t *testing.T) {
	calc, _, _ := newTestCalculator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := calc.Solve(ctx, nil, 1, 10, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
