package dto

import (
	"github.com/vsinha/fibercalc/pkg/domain/entities"
)

// SolveReport is the outcome of one compatibility search
type SolveReport struct {
	Rules        []entities.PatternConstraint `json:"-"`
	Constraints  []string                     `json:"constraints"`
	MinWidth     int                          `json:"min_width"`
	MaxWidth     int                          `json:"max_width"`
	EdgeStitches int                          `json:"edge_stitches"`
	LCM          int                          `json:"lcm"`
	BaseResidue  *int                         `json:"base_residue,omitempty"`
	Counts       []int                        `json:"counts"`
}

// Feasible reports whether any count can satisfy the constraints at all
func (r *SolveReport) Feasible() bool {
	return r.BaseResidue != nil
}

// EstimateReport is one yardage estimate. When Complete is false every
// computed field is zero and the input was not sufficient.
type EstimateReport struct {
	Name             string  `json:"name,omitempty"`
	YarnWeight       string  `json:"yarn_weight,omitempty"`
	Shape            string  `json:"shape"`
	Units            string  `json:"units"`
	WidthInches      float64 `json:"width_in"`
	HeightInches     float64 `json:"height_in"`
	StitchMultiplier float64 `json:"stitch_multiplier"`
	Complete         bool    `json:"complete"`

	GaugeRatio    float64 `json:"gauge_ratio,omitempty"`
	Area          float64 `json:"area_sq_in,omitempty"`
	RawYards      float64 `json:"raw_yards,omitempty"`
	BufferedYards float64 `json:"yards,omitempty"`
	Meters        float64 `json:"meters,omitempty"`
	Grams         float64 `json:"grams,omitempty"`
	Ounces        float64 `json:"ounces,omitempty"`
	SkeinLength   float64 `json:"skein_length_yd,omitempty"`
	Skeins        int     `json:"skeins,omitempty"`
}

// CastOnReport is a cast-on recommendation for a target width
type CastOnReport struct {
	Constraints       []string `json:"constraints"`
	TargetWidth       float64  `json:"target_width"`
	Units             string   `json:"units"`
	StitchesPerUnit   float64  `json:"stitches_per_unit"`
	EdgeStitches      int      `json:"edge_stitches"`
	Complete          bool     `json:"complete"`
	IdealCount        int      `json:"ideal_count,omitempty"`
	LCM               int      `json:"lcm,omitempty"`
	HasRecommendation bool     `json:"has_recommendation"`
	RecommendedCount  int      `json:"recommended_count,omitempty"`
	LowerCount        int      `json:"lower_count,omitempty"`
	UpperCount        int      `json:"upper_count,omitempty"`
	ActualWidth       float64  `json:"actual_width,omitempty"`
}

// ConversionReport is one unit conversion
type ConversionReport struct {
	Value  float64 `json:"value"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
}

// NeedleReport is the table row matching a needle or hook query
type NeedleReport struct {
	Query string              `json:"query"`
	Exact bool                `json:"exact"`
	Match entities.NeedleSize `json:"match"`
}

// CounterReport is the state of a row counter after an operation
type CounterReport struct {
	Name      string `json:"name"`
	Operation string `json:"operation"`
	Value     int    `json:"value"`
}

// ConstraintStrings renders constraints in their display form
func ConstraintStrings(constraints []entities.PatternConstraint) []string {
	out := make([]string, len(constraints))
	for i, c := range constraints {
		out[i] = c.String()
	}
	return out
}
