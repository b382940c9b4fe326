package services

import (
	"math"

	"github.com/vsinha/fibercalc/pkg/domain/entities"
	"github.com/vsinha/fibercalc/pkg/domain/repositories"
)

// YardageEstimator converts project geometry and yarn characteristics into
// length, weight and skein count
type YardageEstimator struct {
	calibration repositories.CalibrationRepository
}

// NewYardageEstimator creates an estimator reading the given tables
func NewYardageEstimator(calibration repositories.CalibrationRepository) *YardageEstimator {
	return &YardageEstimator{calibration: calibration}
}

// Estimate returns nil when the project is incomplete: non-positive
// dimensions, a non-positive gauge field, a negative multiplier or a yarn
// weight missing from the tables. A non-positive skein length leaves
// SkeinsNeeded at zero.
func (e *YardageEstimator) Estimate(project entities.YarnProject) *entities.YardageResult {
	if !project.Complete() {
		return nil
	}

	spec, err := e.calibration.GetYarnWeight(project.YarnWeight)
	if err != nil || spec.YardsPerSquareInch <= 0 || spec.YardsPerGram <= 0 {
		return nil
	}
	shapeFactor, err := e.calibration.GetShapeFactor(project.Shape)
	if err != nil || shapeFactor <= 0 {
		return nil
	}

	multiplier := project.StitchMultiplier
	if multiplier == 0 {
		multiplier = 1.0
	}

	area := project.WidthUnits * project.HeightUnits * shapeFactor

	gaugeRatio := 1.0
	if project.Gauge != nil {
		baseline := spec.BaselineStitchesPerInch * spec.BaselineRowsPerInch
		if baseline <= 0 {
			return nil
		}
		gaugeRatio = project.Gauge.StitchesPerUnit * project.Gauge.RowsPerUnit / baseline
	}
	yardsPerArea := spec.YardsPerSquareInch * gaugeRatio

	raw := area * yardsPerArea * multiplier
	buffered := raw * entities.SafetyBuffer
	if math.IsInf(buffered, 0) || math.IsNaN(buffered) {
		return nil
	}

	result := &entities.YardageResult{
		Area:           area,
		YardsPerArea:   yardsPerArea,
		GaugeRatio:     gaugeRatio,
		RawLength:      raw,
		BufferedLength: buffered,
		TotalWeight:    buffered / spec.YardsPerGram,
	}
	if project.SkeinLength > 0 {
		result.SkeinsNeeded = SkeinsFor(buffered, project.SkeinLength)
	}
	return result
}

// skeinTolerance absorbs float noise such as 1800 × 1.10 = 1980.0000000000002
// so that an exact multiple of the skein length does not round up.
const skeinTolerance = 1e-9

// SkeinsFor returns ceil(length / skeinLength), or 0 when skeinLength is not
// positive.
func SkeinsFor(length, skeinLength float64) int {
	if !(skeinLength > 0) || !(length > 0) {
		return 0
	}
	return int(math.Ceil(length/skeinLength - skeinTolerance))
}
