package events

import (
	"github.com/vsinha/fibercalc/pkg/domain/entities"
)

const (
	SolveCompletedEvent = "solve.completed"
	SolveRejectedEvent  = "solve.rejected"

	YardageEstimatedEvent  = "yardage.estimated"
	YardageIncompleteEvent = "yardage.incomplete"

	CastOnPlannedEvent = "cast_on.planned"

	ConversionPerformedEvent = "conversion.performed"

	CounterChangedEvent = "counter.changed"
)

// AllEventTypes lists every calculation event, for subscribers that want all of them.
var AllEventTypes = []string{
	SolveCompletedEvent,
	SolveRejectedEvent,
	YardageEstimatedEvent,
	YardageIncompleteEvent,
	CastOnPlannedEvent,
	ConversionPerformedEvent,
	CounterChangedEvent,
}

// Stream identifiers, one per calculator.
const (
	SolverStream     = "solver"
	YardageStream    = "yardage"
	CastOnStream     = "cast-on"
	ConversionStream = "conversion"
	CounterStream    = "counter"
)

// SolveCompleted summarises a solve; feasible or not, it is a completed calculation.
type SolveCompleted struct {
	Constraints  []entities.PatternConstraint `json:"constraints"`
	MinWidth     int                          `json:"min_width"`
	MaxWidth     int                          `json:"max_width"`
	EdgeStitches int                          `json:"edge_stitches"`
	LCM          int                          `json:"lcm"`
	Candidates   int                          `json:"candidates"`
	Feasible     bool                         `json:"feasible"`
}

// CalculationRejected carries the validation error of a refused solve.
type CalculationRejected struct {
	Reason string `json:"reason"`
}

// YardageEstimated pairs a project with its estimate. Lengths are in yards.
type YardageEstimated struct {
	Project entities.YarnProject   `json:"project"`
	Result  entities.YardageResult `json:"result"`
}

// YardageIncomplete records a project that lacked the inputs to estimate.
type YardageIncomplete struct {
	Project entities.YarnProject `json:"project"`
}

type CastOnPlanned struct {
	Plan entities.CastOnPlan `json:"plan"`
}

type ConversionPerformed struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CounterChanged holds a row counter value after inc, dec or reset.
type CounterChanged struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// NewSolveCompletedEvent copies constraints so later edits by the caller
// do not change the recorded event.
func NewSolveCompletedEvent(
	constraints []entities.PatternConstraint,
	minWidth, maxWidth, edgeStitches int,
	result *entities.CompatibilityResult,
) Event {
	return NewEvent(SolveCompletedEvent, SolverStream, SolveCompleted{
		Constraints:  append([]entities.PatternConstraint(nil), constraints...),
		MinWidth:     minWidth,
		MaxWidth:     maxWidth,
		EdgeStitches: edgeStitches,
		LCM:          result.LCMOfMultiples,
		Candidates:   len(result.CandidateCounts),
		Feasible:     result.Feasible(),
	})
}

// NewSolveRejectedEvent records err as the rejection reason.
func NewSolveRejectedEvent(err error) Event {
	return NewEvent(SolveRejectedEvent, SolverStream, CalculationRejected{Reason: err.Error()})
}

func NewYardageEstimatedEvent(project entities.YarnProject, result entities.YardageResult) Event {
	return NewEvent(YardageEstimatedEvent, YardageStream, YardageEstimated{Project: project, Result: result})
}

// NewYardageIncompleteEvent is published instead of YardageEstimated when
// the estimator returns no result.
func NewYardageIncompleteEvent(project entities.YarnProject) Event {
	return NewEvent(YardageIncompleteEvent, YardageStream, YardageIncomplete{Project: project})
}

func NewCastOnPlannedEvent(plan entities.CastOnPlan) Event {
	return NewEvent(CastOnPlannedEvent, CastOnStream, CastOnPlanned{Plan: plan})
}

func NewConversionPerformedEvent(from, to string) Event {
	return NewEvent(ConversionPerformedEvent, ConversionStream, ConversionPerformed{From: from, To: to})
}

func NewCounterChangedEvent(name string, value int) Event {
	return NewEvent(CounterChangedEvent, CounterStream, CounterChanged{Name: name, Value: value})
}
