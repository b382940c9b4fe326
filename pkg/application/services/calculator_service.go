package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/fibercalc/pkg/application/dto"
	"github.com/vsinha/fibercalc/pkg/domain/entities"
	"github.com/vsinha/fibercalc/pkg/domain/numeric"
	"github.com/vsinha/fibercalc/pkg/domain/repositories"
	domainservices "github.com/vsinha/fibercalc/pkg/domain/services"
	"github.com/vsinha/fibercalc/pkg/infrastructure/events"
)

// CalculatorService validates user input, runs the domain calculators and
// publishes one event per calculation
type CalculatorService struct {
	solver      *domainservices.CompatibilitySolver
	estimator   *domainservices.YardageEstimator
	planner     *domainservices.CastOnPlanner
	calibration repositories.CalibrationRepository
	preferences repositories.PreferenceRepository
	eventStore  events.EventStore
	logger      *slog.Logger
}

// NewCalculatorService wires the calculators to their tables. eventStore
// and logger may be nil.
func NewCalculatorService(
	calibration repositories.CalibrationRepository,
	preferences repositories.PreferenceRepository,
	eventStore events.EventStore,
	logger *slog.Logger,
) *CalculatorService {
	if logger == nil {
		logger = slog.Default()
	}
	solver := domainservices.NewCompatibilitySolver()
	return &CalculatorService{
		solver:      solver,
		estimator:   domainservices.NewYardageEstimator(calibration),
		planner:     domainservices.NewCastOnPlanner(solver),
		calibration: calibration,
		preferences: preferences,
		eventStore:  eventStore,
		logger:      logger,
	}
}

// ParseRules parses rule strings such as "6+2" or "rib=4 plus 1"
func ParseRules(rules []string) ([]entities.PatternConstraint, error) {
	constraints := make([]entities.PatternConstraint, 0, len(rules))
	for _, rule := range rules {
		c, err := entities.ParsePatternConstraint(rule)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, *c)
	}
	return constraints, nil
}

// Preferences returns the stored user preferences
func (s *CalculatorService) Preferences() (entities.Preferences, error) {
	return s.preferences.Load()
}

// Solve finds every compatible count between minWidth and maxWidth
func (s *CalculatorService) Solve(
	ctx context.Context,
	constraints []entities.PatternConstraint,
	minWidth, maxWidth, edgeStitches int,
) (*dto.SolveReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.solver.Solve(constraints, minWidth, maxWidth, edgeStitches)
	if err != nil {
		s.publish(events.SolverStream, events.NewSolveRejectedEvent(err))
		s.logger.Info("solve rejected", "err", err)
		return nil, err
	}

	report := &dto.SolveReport{
		Rules:        append([]entities.PatternConstraint(nil), constraints...),
		Constraints:  dto.ConstraintStrings(constraints),
		MinWidth:     minWidth,
		MaxWidth:     maxWidth,
		EdgeStitches: edgeStitches,
		LCM:          result.LCMOfMultiples,
		Counts:       result.CandidateCounts,
	}
	if result.HasResidue {
		residue := result.BaseResidue
		report.BaseResidue = &residue
	}

	s.publish(events.SolverStream, events.NewSolveCompletedEvent(constraints, minWidth, maxWidth, edgeStitches, result))
	s.logger.Debug("solve completed",
		"constraints", len(constraints),
		"lcm", result.LCMOfMultiples,
		"candidates", len(result.CandidateCounts))

	return report, nil
}

// EstimateInput is a yardage request as the user typed it. Names are
// resolved against the calibration tables; metric dimensions are in
// centimetres, gauge per centimetre and skein length in metres.
type EstimateInput struct {
	Name             string
	Width            float64
	Height           float64
	Units            entities.UnitSystem
	YarnWeight       string
	Shape            string
	Pattern          string
	StitchMultiplier float64
	SkeinLength      float64
	SkeinWeight      float64
	Gauge            *entities.Gauge
}

// Estimate resolves input into a project and estimates it. Unknown names
// are errors; missing or non-positive numbers give an incomplete report.
func (s *CalculatorService) Estimate(ctx context.Context, input EstimateInput) (*dto.EstimateReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefs, err := s.preferences.Load()
	if err != nil {
		s.logger.Warn("preferences unavailable, using defaults", "err", err)
		prefs = entities.DefaultPreferences()
	}
	if input.Units == "" {
		input.Units = prefs.UnitSystem
	}
	if input.YarnWeight == "" {
		input.YarnWeight = prefs.DefaultYarnWeight
	}

	project, err := s.resolveProject(input)
	if err != nil {
		return nil, err
	}
	// The saved default is in yards, so it applies after metric conversion.
	if project.SkeinLength == 0 && prefs.DefaultSkeinYards > 0 {
		project.SkeinLength = prefs.DefaultSkeinYards
	}
	return s.estimateProject(project, input.Units), nil
}

// EstimateBatch estimates projects whose dimensions are already in inches
// and yards, such as rows loaded from CSV.
func (s *CalculatorService) EstimateBatch(ctx context.Context, projects []*entities.YarnProject) ([]*dto.EstimateReport, error) {
	reports := make([]*dto.EstimateReport, 0, len(projects))
	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		reports = append(reports, s.estimateProject(*project, entities.Imperial))
	}
	return reports, nil
}

func (s *CalculatorService) resolveProject(input EstimateInput) (entities.YarnProject, error) {
	project := entities.YarnProject{
		Name:             input.Name,
		WidthUnits:       input.Width,
		HeightUnits:      input.Height,
		YarnWeight:       entities.NoYarnWeight,
		StitchMultiplier: input.StitchMultiplier,
		SkeinLength:      input.SkeinLength,
		SkeinWeight:      input.SkeinWeight,
	}

	if input.YarnWeight != "" {
		weight, err := entities.ParseYarnWeight(input.YarnWeight)
		if err != nil {
			return project, err
		}
		project.YarnWeight = weight
	}

	shape, err := entities.ParseProjectShape(input.Shape)
	if err != nil {
		return project, err
	}
	project.Shape = shape

	if input.Pattern != "" {
		if input.StitchMultiplier != 0 {
			return project, fmt.Errorf("%w: give a stitch pattern or a multiplier, not both", entities.ErrInvalidInput)
		}
		pattern, err := s.calibration.GetStitchPattern(input.Pattern)
		if err != nil {
			return project, err
		}
		project.StitchMultiplier = pattern.Multiplier
	}
	if project.StitchMultiplier == 0 {
		project.StitchMultiplier = 1.0
	}

	if input.Gauge != nil {
		g := *input.Gauge
		project.Gauge = &g
	}

	if input.Units == entities.Metric {
		project.WidthUnits = numeric.CentimetersToInches(input.Width)
		project.HeightUnits = numeric.CentimetersToInches(input.Height)
		project.SkeinLength = numeric.MetersToYards(input.SkeinLength)
		if project.Gauge != nil {
			project.Gauge.StitchesPerUnit = numeric.PerCentimeterToPerInch(project.Gauge.StitchesPerUnit)
			project.Gauge.RowsPerUnit = numeric.PerCentimeterToPerInch(project.Gauge.RowsPerUnit)
		}
	}

	return project, nil
}

func (s *CalculatorService) estimateProject(project entities.YarnProject, units entities.UnitSystem) *dto.EstimateReport {
	report := &dto.EstimateReport{
		Name:             project.Name,
		Shape:            project.Shape.String(),
		Units:            string(units),
		WidthInches:      project.WidthUnits,
		HeightInches:     project.HeightUnits,
		StitchMultiplier: project.StitchMultiplier,
	}
	if project.YarnWeight.Valid() {
		report.YarnWeight = project.YarnWeight.String()
	}

	result := s.estimator.Estimate(project)
	if result == nil {
		s.publish(events.YardageStream, events.NewYardageIncompleteEvent(project))
		s.logger.Debug("estimate incomplete", "project", project.Name)
		return report
	}

	report.Complete = true
	report.GaugeRatio = result.GaugeRatio
	report.Area = result.Area
	report.RawYards = result.RawLength
	report.BufferedYards = result.BufferedLength
	report.Meters = numeric.YardsToMeters(result.BufferedLength)
	report.Grams = result.TotalWeight
	report.Ounces = numeric.GramsToOunces(result.TotalWeight)
	report.SkeinLength = project.SkeinLength
	report.Skeins = result.SkeinsNeeded

	s.publish(events.YardageStream, events.NewYardageEstimatedEvent(project, *result))
	s.logger.Debug("estimate completed",
		"project", project.Name,
		"yards", result.BufferedLength,
		"skeins", result.SkeinsNeeded)

	return report
}

// CastOnInput is a cast-on request. Width and gauge share one unit.
type CastOnInput struct {
	Width           float64
	Units           entities.UnitSystem
	StitchesPerUnit float64
	Constraints     []entities.PatternConstraint
	EdgeStitches    int
}

// PlanCastOn recommends the compatible count nearest the target width
func (s *CalculatorService) PlanCastOn(ctx context.Context, input CastOnInput) (*dto.CastOnReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.Units == "" {
		input.Units = entities.Imperial
	}

	plan, err := s.planner.Plan(input.Width, input.StitchesPerUnit, input.Constraints, input.EdgeStitches)
	if err != nil {
		s.publish(events.CastOnStream, events.NewSolveRejectedEvent(err))
		return nil, err
	}

	report := &dto.CastOnReport{
		Constraints:     dto.ConstraintStrings(input.Constraints),
		TargetWidth:     input.Width,
		Units:           string(input.Units),
		StitchesPerUnit: input.StitchesPerUnit,
		EdgeStitches:    input.EdgeStitches,
	}
	if plan == nil {
		return report, nil
	}

	report.Complete = true
	report.IdealCount = plan.IdealCount
	report.LCM = plan.LCMOfMultiples
	report.HasRecommendation = plan.HasRecommendation
	report.RecommendedCount = plan.RecommendedCount
	report.LowerCount = plan.LowerCount
	report.UpperCount = plan.UpperCount
	report.ActualWidth = plan.ActualWidth

	s.publish(events.CastOnStream, events.NewCastOnPlannedEvent(*plan))
	return report, nil
}

// Convert converts value between two units of the same dimension
func (s *CalculatorService) Convert(ctx context.Context, value float64, from, to string) (*dto.ConversionReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%w: value must be finite", entities.ErrInvalidInput)
	}

	fromUnit, err := numeric.ParseUnit(from)
	if err != nil {
		return nil, err
	}
	toUnit, err := numeric.ParseUnit(to)
	if err != nil {
		return nil, err
	}

	converted, err := numeric.ConvertDecimal(decimal.NewFromFloat(value), fromUnit, toUnit)
	if err != nil {
		return nil, err
	}

	s.publish(events.ConversionStream, events.NewConversionPerformedEvent(fromUnit.String(), toUnit.String()))
	return &dto.ConversionReport{
		Value:  value,
		From:   fromUnit.String(),
		To:     toUnit.String(),
		Result: converted.InexactFloat64(),
	}, nil
}

// LookupNeedle finds a needle or hook size. A bare number is millimetres and
// falls back to the nearest size; "us 8", "uk 6" and hook letters such as
// "H-8" must match a table row.
func (s *CalculatorService) LookupNeedle(ctx context.Context, query string) (*dto.NeedleReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sizes, err := s.calibration.GetNeedleSizes()
	if err != nil {
		return nil, err
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: needle table is empty", entities.ErrNotFound)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	report := &dto.NeedleReport{Query: query}

	if mm, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(q, "mm")), 64); err == nil {
		if !(mm > 0) || math.IsInf(mm, 0) {
			return nil, fmt.Errorf("%w: needle size must be positive, got %q", entities.ErrInvalidInput, query)
		}
		best := sizes[0]
		for _, size := range sizes[1:] {
			if math.Abs(size.Millimeters-mm) < math.Abs(best.Millimeters-mm) {
				best = size
			}
		}
		report.Match = best
		report.Exact = math.Abs(best.Millimeters-mm) < 0.001
		return report, nil
	}

	var column func(entities.NeedleSize) string
	key := q
	switch {
	case strings.HasPrefix(q, "us"):
		column = func(n entities.NeedleSize) string { return n.US }
		key = strings.TrimPrefix(q, "us")
	case strings.HasPrefix(q, "uk"):
		column = func(n entities.NeedleSize) string { return n.UK }
		key = strings.TrimPrefix(q, "uk")
	default:
		column = func(n entities.NeedleSize) string { return n.Hook }
		key = strings.TrimPrefix(q, "hook")
	}
	key = needleKey(key)

	for _, size := range sizes {
		if v := column(size); v != "" && needleKey(v) == key {
			report.Match = size
			report.Exact = true
			return report, nil
		}
	}
	return nil, fmt.Errorf("%w: needle size %q", entities.ErrNotFound, query)
}

func needleKey(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "/", "", "size", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

// CounterOp is a row counter operation
type CounterOp string

const (
	CounterIncrement CounterOp = "inc"
	CounterDecrement CounterOp = "dec"
	CounterReset     CounterOp = "reset"
	CounterShow      CounterOp = "show"
)

// ParseCounterOp accepts the short operation names and their long forms
func ParseCounterOp(s string) (CounterOp, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inc", "increment", "+":
		return CounterIncrement, nil
	case "dec", "decrement", "-":
		return CounterDecrement, nil
	case "reset", "clear":
		return CounterReset, nil
	case "show", "get", "":
		return CounterShow, nil
	default:
		return "", fmt.Errorf("%w: counter operation %q", entities.ErrInvalidInput, s)
	}
}

// Counter applies op to the named counter and persists the result.
// Counters never go below zero.
func (s *CalculatorService) Counter(ctx context.Context, op CounterOp, name string) (*dto.CounterReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: counter name is required", entities.ErrInvalidInput)
	}

	prefs, err := s.preferences.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load counters: %w", err)
	}
	if prefs.Counters == nil {
		prefs.Counters = make(map[string]int)
	}

	value := prefs.Counters[name]
	switch op {
	case CounterIncrement:
		value++
	case CounterDecrement:
		value = max(0, value-1)
	case CounterReset:
		value = 0
	case CounterShow:
		return &dto.CounterReport{Name: name, Operation: string(op), Value: value}, nil
	default:
		return nil, fmt.Errorf("%w: counter operation %q", entities.ErrInvalidInput, op)
	}

	prefs.Counters[name] = value
	if err := s.preferences.Save(prefs); err != nil {
		return nil, fmt.Errorf("failed to save counter %s: %w", name, err)
	}

	s.publish(events.CounterStream, events.NewCounterChangedEvent(name, value))
	return &dto.CounterReport{Name: name, Operation: string(op), Value: value}, nil
}

// IsUserError reports whether err comes from bad input rather than I/O
func IsUserError(err error) bool {
	for _, target := range []error{
		entities.ErrInvalidConstraint,
		entities.ErrInvalidInput,
		entities.ErrCycleTooLong,
		entities.ErrRangeTooWide,
		entities.ErrUnknownYarnWeight,
		entities.ErrUnknownShape,
		entities.ErrNotFound,
		numeric.ErrUnknownUnit,
		numeric.ErrIncompatibleUnits,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *CalculatorService) publish(streamID string, event events.Event) {
	if s.eventStore == nil {
		return
	}
	if err := s.eventStore.AppendEvent(streamID, event); err != nil {
		s.logger.Warn("failed to publish event", "type", event.Type(), "err", err)
	}
}
