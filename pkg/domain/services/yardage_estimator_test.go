package services_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/fibercalc/pkg/domain/entities"
	"github.com/vsinha/fibercalc/pkg/domain/services"
	"github.com/vsinha/fibercalc/pkg/infrastructure/repositories/memory"
)

func newEstimator() *services.YardageEstimator {
	return services.NewYardageEstimator(memory.NewCalibrationRepository())
}

func worstedBlanket() entities.YarnProject {
	return entities.YarnProject{
		WidthUnits:       40,
		HeightUnits:      60,
		YarnWeight:       entities.Worsted,
		Shape:            entities.Rectangle,
		StitchMultiplier: 1.0,
		SkeinLength:      220,
		SkeinWeight:      100,
	}
}

// TestEstimate_WorstedBlanket walks the full formula on round numbers.
func TestEstimate_WorstedBlanket(t *testing.T) {
	result := newEstimator().Estimate(worstedBlanket())
	require.NotNil(t, result)

	assert.InDelta(t, 2400.0, result.Area, 1e-9)
	assert.InDelta(t, 0.75, result.YardsPerArea, 1e-12)
	assert.Equal(t, 1.0, result.GaugeRatio)
	assert.InDelta(t, 1800.0, result.RawLength, 1e-9)
	assert.InDelta(t, 1980.0, result.BufferedLength, 1e-9)
	assert.InDelta(t, 990.0, result.TotalWeight, 1e-9)
	assert.Equal(t, 9, result.SkeinsNeeded, "1980 / 220 is exactly 9 skeins")
}

// TestEstimate_ShapeAndMultiplier applies the shape factor to area and the
// stitch multiplier to length.
func TestEstimate_ShapeAndMultiplier(t *testing.T) {
	est := newEstimator()
	base := est.Estimate(worstedBlanket())
	require.NotNil(t, base)

	shawl := worstedBlanket()
	shawl.Shape = entities.Triangle
	got := est.Estimate(shawl)
	require.NotNil(t, got)
	assert.InDelta(t, base.RawLength*0.5, got.RawLength, 1e-9)

	cabled := worstedBlanket()
	cabled.StitchMultiplier = 1.25
	got = est.Estimate(cabled)
	require.NotNil(t, got)
	assert.InDelta(t, base.RawLength*1.25, got.RawLength, 1e-9)

	socks := worstedBlanket()
	socks.Shape = entities.Pair
	got = est.Estimate(socks)
	require.NotNil(t, got)
	assert.InDelta(t, base.RawLength*2, got.RawLength, 1e-9)
}

// TestEstimate_ZeroMultiplierIsBaseline treats an unset multiplier as 1.0.
func TestEstimate_ZeroMultiplierIsBaseline(t *testing.T) {
	p := worstedBlanket()
	p.StitchMultiplier = 0
	got := newEstimator().Estimate(p)
	require.NotNil(t, got)
	assert.InDelta(t, 1800.0, got.RawLength, 1e-9)
}

// TestEstimate_GaugeAtBaseline reproduces the table constant (ratio 1.0).
func TestEstimate_GaugeAtBaseline(t *testing.T) {
	est := newEstimator()
	table := est.Estimate(worstedBlanket())

	swatched := worstedBlanket()
	swatched.Gauge = &entities.Gauge{StitchesPerUnit: 4.5, RowsPerUnit: 6}
	got := est.Estimate(swatched)
	require.NotNil(t, got)

	assert.InDelta(t, 1.0, got.GaugeRatio, 1e-12)
	assert.InDelta(t, table.BufferedLength, got.BufferedLength, 1e-9)
	assert.Equal(t, table.SkeinsNeeded, got.SkeinsNeeded)
}

// TestEstimate_DenserGaugeUsesMore scales yardage by the stitch-row product.
func TestEstimate_DenserGaugeUsesMore(t *testing.T) {
	p := worstedBlanket()
	p.Gauge = &entities.Gauge{StitchesPerUnit: 5.4, RowsPerUnit: 7.5}
	got := newEstimator().Estimate(p)
	require.NotNil(t, got)

	wantRatio := (5.4 * 7.5) / (4.5 * 6)
	assert.InDelta(t, wantRatio, got.GaugeRatio, 1e-12)
	assert.InDelta(t, 1800.0*wantRatio, got.RawLength, 1e-9)
}

// TestEstimate_IncompleteInput returns nil rather than an error or NaN.
func TestEstimate_IncompleteInput(t *testing.T) {
	est := newEstimator()

	zeroWidth := worstedBlanket()
	zeroWidth.WidthUnits = 0
	assert.Nil(t, est.Estimate(zeroWidth))

	negHeight := worstedBlanket()
	negHeight.HeightUnits = -3
	assert.Nil(t, est.Estimate(negHeight))

	nanWidth := worstedBlanket()
	nanWidth.WidthUnits = math.NaN()
	assert.Nil(t, est.Estimate(nanWidth))

	badGauge := worstedBlanket()
	badGauge.Gauge = &entities.Gauge{StitchesPerUnit: 4.5}
	assert.Nil(t, est.Estimate(badGauge))

	unknown := worstedBlanket()
	unknown.YarnWeight = entities.YarnWeight(99)
	assert.Nil(t, est.Estimate(unknown))
}

// TestEstimate_NoSkeinLength leaves the skein count at zero.
func TestEstimate_NoSkeinLength(t *testing.T) {
	p := worstedBlanket()
	p.SkeinLength = 0
	got := newEstimator().Estimate(p)
	require.NotNil(t, got)
	assert.Equal(t, 0, got.SkeinsNeeded)
	assert.Greater(t, got.BufferedLength, 0.0)
}

// TestEstimate_Monotonic: growing either dimension strictly grows raw length.
func TestEstimate_Monotonic(t *testing.T) {
	est := newEstimator()
	for _, w := range entities.AllYarnWeights {
		prev := 0.0
		for width := 1.0; width <= 80; width += 7 {
			p := worstedBlanket()
			p.YarnWeight = w
			p.WidthUnits = width
			got := est.Estimate(p)
			require.NotNil(t, got)
			assert.Greater(t, got.RawLength, prev, "%s width %g", w, width)
			prev = got.RawLength
		}

		prev = 0.0
		for height := 0.5; height <= 90; height += 11 {
			p := worstedBlanket()
			p.YarnWeight = w
			p.HeightUnits = height
			got := est.Estimate(p)
			require.NotNil(t, got)
			assert.Greater(t, got.RawLength, prev, "%s height %g", w, height)
			prev = got.RawLength
		}
	}
}

// TestEstimate_BufferAndSkeinInvariants holds over a grid of inputs.
func TestEstimate_BufferAndSkeinInvariants(t *testing.T) {
	est := newEstimator()
	for _, w := range entities.AllYarnWeights {
		for _, shape := range entities.AllProjectShapes {
			for _, skein := range []float64{50, 137, 220, 440} {
				p := worstedBlanket()
				p.YarnWeight = w
				p.Shape = shape
				p.SkeinLength = skein
				p.WidthUnits = 13.3
				p.HeightUnits = 27.1

				got := est.Estimate(p)
				require.NotNil(t, got)
				assert.InDelta(t, got.RawLength*1.10, got.BufferedLength, 1e-9)
				assert.GreaterOrEqual(t, got.BufferedLength, got.RawLength)
				assert.GreaterOrEqual(t, float64(got.SkeinsNeeded)*skein, got.BufferedLength-1e-6,
					"skeins must cover the buffered length")
				assert.Less(t, float64(got.SkeinsNeeded-1)*skein, got.BufferedLength,
					"one skein fewer must not suffice")
			}
		}
	}
}

// TestSkeinsFor covers rounding and the zero-length guard.
func TestSkeinsFor(t *testing.T) {
	assert.Equal(t, 3, services.SkeinsFor(450, 220))
	assert.Equal(t, 2, services.SkeinsFor(440, 220))
	assert.Equal(t, 9, services.SkeinsFor(1800*1.1, 220))
	assert.Equal(t, 1, services.SkeinsFor(0.5, 220))
	assert.Equal(t, 0, services.SkeinsFor(450, 0))
	assert.Equal(t, 0, services.SkeinsFor(450, -5))
	assert.Equal(t, 0, services.SkeinsFor(0, 220))
}
