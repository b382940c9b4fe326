package entities

import (
	"fmt"
	"math"
)

// SafetyBuffer is the fixed margin applied to every yardage estimate to
// absorb swatch and tension variance.
const SafetyBuffer = 1.10

// Gauge is a measured swatch: stitches and rows per unit length.
type Gauge struct {
	StitchesPerUnit float64
	RowsPerUnit     float64
}

// Valid reports whether both gauge fields are positive and finite.
func (g Gauge) Valid() bool {
	return positive(g.StitchesPerUnit) && positive(g.RowsPerUnit)
}

// YarnProject is one yardage calculation request. Dimensions share one
// unit (inches); callers normalize metric input before building it.
type YarnProject struct {
	Name             string
	WidthUnits       float64
	HeightUnits      float64
	YarnWeight       YarnWeight
	Shape            ProjectShape
	StitchMultiplier float64
	SkeinLength      float64
	SkeinWeight      float64
	Gauge            *Gauge
}

// NewYarnProject creates a validated YarnProject. A zero stitch multiplier
// is replaced by the 1.0 baseline.
func NewYarnProject(
	name string,
	width, height float64,
	weight YarnWeight,
	shape ProjectShape,
	stitchMultiplier float64,
	skeinLength, skeinWeight float64,
	gauge *Gauge,
) (*YarnProject, error) {
	if !positive(width) {
		return nil, fmt.Errorf("%w: width must be positive, got %g", ErrInvalidInput, width)
	}
	if !positive(height) {
		return nil, fmt.Errorf("%w: height must be positive, got %g", ErrInvalidInput, height)
	}
	if !weight.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownYarnWeight, weight)
	}
	if shape < Rectangle || shape > Amigurumi {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, shape)
	}
	if stitchMultiplier < 0 || math.IsNaN(stitchMultiplier) {
		return nil, fmt.Errorf("%w: stitch multiplier cannot be negative, got %g", ErrInvalidInput, stitchMultiplier)
	}
	if stitchMultiplier == 0 {
		stitchMultiplier = 1.0
	}
	if skeinLength < 0 {
		return nil, fmt.Errorf("%w: skein length cannot be negative, got %g", ErrInvalidInput, skeinLength)
	}
	if skeinWeight < 0 {
		return nil, fmt.Errorf("%w: skein weight cannot be negative, got %g", ErrInvalidInput, skeinWeight)
	}
	if gauge != nil && !gauge.Valid() {
		return nil, fmt.Errorf("%w: gauge stitches and rows must be positive, got %gx%g",
			ErrInvalidInput, gauge.StitchesPerUnit, gauge.RowsPerUnit)
	}

	p := &YarnProject{
		Name:             name,
		WidthUnits:       width,
		HeightUnits:      height,
		YarnWeight:       weight,
		Shape:            shape,
		StitchMultiplier: stitchMultiplier,
		SkeinLength:      skeinLength,
		SkeinWeight:      skeinWeight,
	}
	if gauge != nil {
		g := *gauge
		p.Gauge = &g
	}
	return p, nil
}

// Complete reports whether the project has enough input to estimate.
func (p YarnProject) Complete() bool {
	if !positive(p.WidthUnits) || !positive(p.HeightUnits) {
		return false
	}
	if p.Gauge != nil && !p.Gauge.Valid() {
		return false
	}
	return p.YarnWeight.Valid() && p.StitchMultiplier >= 0
}

// YardageResult is the estimator output. Lengths are in yards, weight in grams.
type YardageResult struct {
	Area           float64
	YardsPerArea   float64
	GaugeRatio     float64
	RawLength      float64
	BufferedLength float64
	TotalWeight    float64
	SkeinsNeeded   int
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1) && !math.IsNaN(f)
}
