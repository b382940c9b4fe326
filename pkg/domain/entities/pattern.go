package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// Solver limits. Stitch repeats are small in practice; the ceilings keep
// the residue scan and the candidate enumeration bounded.
const (
	MaxMultiple    = 10000
	MaxCycleLength = 10_000_000
	MaxSearchSpan  = 1_000_000
)

// PatternConstraint is one stitch-repeat rule: a valid count c satisfies
// c ≡ Remainder (mod Multiple).
type PatternConstraint struct {
	Multiple  int
	Remainder int
	Label     string
}

// NewPatternConstraint creates a validated PatternConstraint
func NewPatternConstraint(multiple, remainder int, label string) (*PatternConstraint, error) {
	c := PatternConstraint{Multiple: multiple, Remainder: remainder, Label: label}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the constraint invariants.
func (c PatternConstraint) Validate() error {
	if c.Multiple < 1 {
		return fmt.Errorf("%w: multiple must be at least 1, got %d", ErrInvalidConstraint, c.Multiple)
	}
	if c.Multiple > MaxMultiple {
		return fmt.Errorf("%w: multiple %d exceeds limit %d", ErrInvalidConstraint, c.Multiple, MaxMultiple)
	}
	if c.Remainder < 0 {
		return fmt.Errorf("%w: remainder cannot be negative, got %d", ErrInvalidConstraint, c.Remainder)
	}
	return nil
}

// Satisfies reports whether count ≡ Remainder (mod Multiple).
func (c PatternConstraint) Satisfies(count int) bool {
	if c.Multiple < 1 {
		return false
	}
	return mod(count-c.Remainder, c.Multiple) == 0
}

// String renders the rule the way pattern books write it.
func (c PatternConstraint) String() string {
	rule := fmt.Sprintf("multiple of %d", c.Multiple)
	if c.Remainder != 0 {
		rule += fmt.Sprintf(" plus %d", c.Remainder)
	}
	if c.Label != "" {
		return c.Label + " (" + rule + ")"
	}
	return rule
}

// ParsePatternConstraint parses the short rule forms "6", "6+2" and
// "6 plus 2". An optional "label=" prefix sets the label.
func ParsePatternConstraint(s string) (*PatternConstraint, error) {
	label := ""
	rule := strings.TrimSpace(s)
	if i := strings.Index(rule, "="); i >= 0 {
		label = strings.TrimSpace(rule[:i])
		rule = strings.TrimSpace(rule[i+1:])
	}
	if rule == "" {
		return nil, fmt.Errorf("%w: empty rule %q", ErrInvalidConstraint, s)
	}

	rule = strings.ReplaceAll(strings.ToLower(rule), "plus", "+")
	parts := strings.SplitN(rule, "+", 2)

	multiple, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid multiple in %q", ErrInvalidConstraint, s)
	}
	remainder := 0
	if len(parts) == 2 {
		remainder, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid remainder in %q", ErrInvalidConstraint, s)
		}
	}

	return NewPatternConstraint(multiple, remainder, label)
}

// CompatibilityResult is the outcome of one solve. HasResidue is false when
// the constraint set is infeasible; CandidateCounts is then empty.
type CompatibilityResult struct {
	LCMOfMultiples  int
	CandidateCounts []int
	BaseResidue     int
	HasResidue      bool
	EdgeStitches    int
}

// Feasible reports whether any count can satisfy every constraint.
func (r *CompatibilityResult) Feasible() bool {
	return r != nil && r.HasResidue
}

// mod returns the non-negative remainder of a divided by m.
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// CastOnPlan is the stitch count closest to a target width that satisfies a
// set of pattern constraints.
type CastOnPlan struct {
	IdealCount        int
	RecommendedCount  int
	HasRecommendation bool
	LowerCount        int
	UpperCount        int
	ActualWidth       float64
	LCMOfMultiples    int
	EdgeStitches      int
}
