package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vsinha/fibercalc/pkg/application/dto"
	"github.com/vsinha/fibercalc/pkg/domain/numeric"
)

var estimateColumns = []string{
	"name", "yarn_weight", "shape", "width_in", "height_in", "stitch_multiplier",
	"gauge_ratio", "yards", "meters", "grams", "ounces", "skeins", "complete",
}

// writeCSV creates CSV output, one header row then one row per result
func writeCSV(w io.Writer, report any) error {
	cw := csv.NewWriter(w)

	var rows [][]string
	switch r := report.(type) {
	case *dto.SolveReport:
		rows = append(rows, []string{"count", "pattern_stitches", "edge_stitches", "repeats"})
		for _, count := range r.Counts {
			pattern := count - r.EdgeStitches
			repeats := ""
			if r.LCM > 0 {
				repeats = strconv.Itoa(pattern / r.LCM)
			}
			rows = append(rows, []string{
				strconv.Itoa(count), strconv.Itoa(pattern), strconv.Itoa(r.EdgeStitches), repeats,
			})
		}
	case *dto.EstimateReport:
		rows = append(rows, estimateColumns, estimateRow(r))
	case []*dto.EstimateReport:
		rows = append(rows, estimateColumns)
		for _, e := range r {
			rows = append(rows, estimateRow(e))
		}
	case *dto.CastOnReport:
		rows = append(rows,
			[]string{"target_width", "units", "stitches_per_unit", "ideal_count", "recommended_count", "lower_count", "upper_count", "actual_width", "constraints"},
			[]string{
				numeric.FormatFixed(r.TargetWidth, 2), r.Units, trimmed(r.StitchesPerUnit),
				strconv.Itoa(r.IdealCount), optionalInt(r.HasRecommendation, r.RecommendedCount),
				optionalInt(r.LowerCount > 0, r.LowerCount), optionalInt(r.UpperCount > 0, r.UpperCount),
				optionalFixed(r.HasRecommendation, r.ActualWidth, 2), strings.Join(r.Constraints, "; "),
			})
	case *dto.ConversionReport:
		rows = append(rows,
			[]string{"value", "from", "result", "to"},
			[]string{trimmed(r.Value), r.From, trimmed(r.Result), r.To})
	case *dto.NeedleReport:
		rows = append(rows,
			[]string{"query", "mm", "us", "uk", "hook", "exact"},
			[]string{r.Query, trimmed(r.Match.Millimeters), r.Match.US, r.Match.UK, r.Match.Hook, strconv.FormatBool(r.Exact)})
	case *dto.CounterReport:
		rows = append(rows,
			[]string{"name", "operation", "value"},
			[]string{r.Name, r.Operation, strconv.Itoa(r.Value)})
	default:
		return fmt.Errorf("unsupported report type %T", report)
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func estimateRow(r *dto.EstimateReport) []string {
	return []string{
		r.Name, r.YarnWeight, r.Shape,
		numeric.FormatFixed(r.WidthInches, 2),
		numeric.FormatFixed(r.HeightInches, 2),
		numeric.FormatFixed(r.StitchMultiplier, 2),
		optionalFixed(r.Complete, r.GaugeRatio, 3),
		optionalFixed(r.Complete, r.BufferedYards, 1),
		optionalFixed(r.Complete, r.Meters, 1),
		optionalFixed(r.Complete, r.Grams, 1),
		optionalFixed(r.Complete, r.Ounces, 2),
		optionalInt(r.Complete && r.Skeins > 0, r.Skeins),
		strconv.FormatBool(r.Complete),
	}
}

func optionalInt(ok bool, v int) string {
	if !ok {
		return ""
	}
	return strconv.Itoa(v)
}

func optionalFixed(ok bool, v float64, places int32) string {
	if !ok {
		return ""
	}
	return numeric.FormatFixed(v, places)
}
