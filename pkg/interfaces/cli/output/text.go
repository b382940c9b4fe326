package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/fibercalc/pkg/application/dto"
	"github.com/vsinha/fibercalc/pkg/domain/numeric"
)

// writeText creates human-readable text output
func writeText(w io.Writer, report any) error {
	switch r := report.(type) {
	case *dto.SolveReport:
		writeSolveText(w, r)
	case *dto.EstimateReport:
		writeEstimateText(w, r)
	case []*dto.EstimateReport:
		writeEstimateTable(w, r)
	case *dto.CastOnReport:
		writeCastOnText(w, r)
	case *dto.ConversionReport:
		fmt.Fprintf(w, "%s %s = %s %s\n", trimmed(r.Value), r.From, trimmed(r.Result), r.To)
	case *dto.NeedleReport:
		fmt.Fprintf(w, "%s\n", needleLine(r))
	case *dto.CounterReport:
		fmt.Fprintf(w, "%s: %d\n", r.Name, r.Value)
	default:
		return fmt.Errorf("unsupported report type %T", report)
	}
	return nil
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "🧶 %s\n", title)
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", len([]rune(title))+2))
}

func writeSolveText(w io.Writer, r *dto.SolveReport) {
	heading(w, "Compatible Stitch Counts")

	fmt.Fprintf(w, "%-16s %s\n", "Constraints:", strings.Join(r.Constraints, "; "))
	fmt.Fprintf(w, "%-16s %d - %d (edge stitches: %d)\n", "Range:", r.MinWidth, r.MaxWidth, r.EdgeStitches)
	fmt.Fprintf(w, "%-16s %d\n", "Pattern repeat:", r.LCM)

	if len(r.Counts) == 0 {
		fmt.Fprintf(w, "\n⚠️  %s\n", MsgNoCompatibleCount)
		return
	}
	fmt.Fprintf(w, "%-16s %s\n", fmt.Sprintf("Counts (%d):", len(r.Counts)), joinInts(r.Counts))
}

func writeEstimateText(w io.Writer, r *dto.EstimateReport) {
	title := "Yarn Estimate"
	if r.Name != "" {
		title += ": " + r.Name
	}
	heading(w, title)

	if !r.Complete {
		fmt.Fprintf(w, "%s\n", MsgIncomplete)
		return
	}

	fmt.Fprintf(w, "%-14s %s\n", "Yarn weight:", r.YarnWeight)
	fmt.Fprintf(w, "%-14s %s\n", "Shape:", r.Shape)
	fmt.Fprintf(w, "%-14s %s x %s in (%s x %s cm)\n", "Size:",
		numeric.FormatFixed(r.WidthInches, 2), numeric.FormatFixed(r.HeightInches, 2),
		numeric.FormatFixed(numeric.InchesToCentimeters(r.WidthInches), 2),
		numeric.FormatFixed(numeric.InchesToCentimeters(r.HeightInches), 2))
	fmt.Fprintf(w, "%-14s %s\n", "Multiplier:", numeric.FormatFixed(r.StitchMultiplier, 2))
	fmt.Fprintf(w, "%-14s %s\n", "Gauge ratio:", numeric.FormatFixed(r.GaugeRatio, 3))
	fmt.Fprintf(w, "%-14s %s yd (%s m) incl. 10%% buffer\n", "Yardage:",
		numeric.FormatFixed(r.BufferedYards, 1), numeric.FormatFixed(r.Meters, 1))
	fmt.Fprintf(w, "%-14s %s g (%s oz)\n", "Weight:",
		numeric.FormatFixed(r.Grams, 1), numeric.FormatFixed(r.Ounces, 2))
	if r.Skeins > 0 {
		fmt.Fprintf(w, "%-14s %d x %s yd\n", "Skeins:", r.Skeins, trimmed(r.SkeinLength))
	}
}

func writeEstimateTable(w io.Writer, reports []*dto.EstimateReport) {
	heading(w, "Yarn Estimates")

	fmt.Fprintf(w, "%-20s %-12s %-10s %10s %10s %8s\n",
		"Project", "Weight", "Shape", "Yards", "Grams", "Skeins")
	fmt.Fprintf(w, "%-20s %-12s %-10s %10s %10s %8s\n",
		"--------------------", "------------", "----------", "----------", "----------", "--------")

	for _, r := range reports {
		if !r.Complete {
			fmt.Fprintf(w, "%-20s %-12s %-10s %10s %10s %8s\n", r.Name, r.YarnWeight, r.Shape, "-", "-", "-")
			continue
		}
		fmt.Fprintf(w, "%-20s %-12s %-10s %10s %10s %8d\n",
			r.Name, r.YarnWeight, r.Shape,
			numeric.FormatFixed(r.BufferedYards, 1),
			numeric.FormatFixed(r.Grams, 1),
			r.Skeins)
	}
}

func writeCastOnText(w io.Writer, r *dto.CastOnReport) {
	heading(w, "Cast-On Plan")

	if !r.Complete {
		fmt.Fprintf(w, "%s\n", MsgIncomplete)
		return
	}

	unit := unitLabel(r.Units)
	fmt.Fprintf(w, "%-14s %s\n", "Constraints:", strings.Join(r.Constraints, "; "))
	fmt.Fprintf(w, "%-14s %s %s at %s sts/%s\n", "Target width:",
		numeric.FormatFixed(r.TargetWidth, 2), unit, trimmed(r.StitchesPerUnit), unit)
	fmt.Fprintf(w, "%-14s %d\n", "Ideal count:", r.IdealCount)

	if !r.HasRecommendation {
		fmt.Fprintf(w, "\n⚠️  %s\n", MsgNoCompatibleCount)
		return
	}
	fmt.Fprintf(w, "%-14s %d stitches (%s %s wide)\n", "Cast on:",
		r.RecommendedCount, numeric.FormatFixed(r.ActualWidth, 2), unit)
	if r.LowerCount > 0 && r.LowerCount != r.UpperCount {
		fmt.Fprintf(w, "%-14s %d or %d\n", "Neighbours:", r.LowerCount, r.UpperCount)
	}
}

// CopyText renders a short plain summary meant for pasting into notes
func CopyText(report any) string {
	var b strings.Builder
	switch r := report.(type) {
	case *dto.SolveReport:
		if len(r.Counts) == 0 {
			fmt.Fprintf(&b, "%s\n", MsgNoCompatibleCount)
			break
		}
		fmt.Fprintf(&b, "Stitch counts between %d and %d: %s\n", r.MinWidth, r.MaxWidth, joinInts(r.Counts))
		fmt.Fprintf(&b, "Pattern: %s\n", strings.Join(r.Constraints, "; "))
		if r.EdgeStitches > 0 {
			fmt.Fprintf(&b, "Includes %d edge stitches\n", r.EdgeStitches)
		}
	case *dto.EstimateReport:
		b.WriteString(copyEstimate(r))
	case []*dto.EstimateReport:
		for _, e := range r {
			b.WriteString(copyEstimate(e))
		}
	case *dto.CastOnReport:
		if !r.Complete {
			fmt.Fprintf(&b, "%s\n", MsgIncomplete)
			break
		}
		if !r.HasRecommendation {
			fmt.Fprintf(&b, "%s\n", MsgNoCompatibleCount)
			break
		}
		fmt.Fprintf(&b, "Cast on %d stitches for %s %s\n",
			r.RecommendedCount, numeric.FormatFixed(r.ActualWidth, 2), unitLabel(r.Units))
		fmt.Fprintf(&b, "Pattern: %s\n", strings.Join(r.Constraints, "; "))
	case *dto.ConversionReport:
		fmt.Fprintf(&b, "%s %s = %s %s\n", trimmed(r.Value), r.From, trimmed(r.Result), r.To)
	case *dto.NeedleReport:
		fmt.Fprintf(&b, "%s\n", needleLine(r))
	case *dto.CounterReport:
		fmt.Fprintf(&b, "%s: row %d\n", r.Name, r.Value)
	}
	return b.String()
}

func copyEstimate(r *dto.EstimateReport) string {
	if !r.Complete {
		return MsgIncomplete + "\n"
	}
	var b strings.Builder
	if r.Name != "" {
		fmt.Fprintf(&b, "%s: ", r.Name)
	}
	fmt.Fprintf(&b, "%s yd / %s m of %s yarn, about %s g",
		numeric.FormatFixed(r.BufferedYards, 0), numeric.FormatFixed(r.Meters, 0),
		r.YarnWeight, numeric.FormatFixed(r.Grams, 0))
	if r.Skeins > 0 {
		fmt.Fprintf(&b, " (%d skeins)", r.Skeins)
	}
	b.WriteString("\n")
	return b.String()
}

func needleLine(r *dto.NeedleReport) string {
	parts := []string{trimmed(r.Match.Millimeters) + " mm"}
	if r.Match.US != "" {
		parts = append(parts, "US "+r.Match.US)
	}
	if r.Match.UK != "" {
		parts = append(parts, "UK "+r.Match.UK)
	}
	if r.Match.Hook != "" {
		parts = append(parts, "hook "+r.Match.Hook)
	}
	line := strings.Join(parts, ", ")
	if !r.Exact {
		line = fmt.Sprintf("nearest to %s: %s", r.Query, line)
	}
	return line
}

func unitLabel(units string) string {
	if units == "metric" {
		return "cm"
	}
	return "in"
}

// trimmed prints up to four decimals without trailing zeros
func trimmed(f float64) string {
	return decimal.NewFromFloat(f).Round(4).String()
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
