package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vsinha/fibercalc/pkg/application/dto"
)

// Messages shown in place of a result
const (
	MsgIncomplete        = "enter values to see results"
	MsgNoCompatibleCount = "no compatible count found - try widening the range"
)

// Formats lists the supported --format values
var Formats = []string{"text", "json", "csv", "copy", "svg"}

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	// Stdout receives rendered output; nil means os.Stdout.
	Stdout io.Writer
}

func (c Config) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// Generate renders report in the configured format. report is one of the
// dto report types or a slice of *dto.EstimateReport. With an output
// directory the result is written to a file named after the report kind;
// text is printed as well.
func Generate(report any, config Config) error {
	kind, err := reportKind(report)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	ext := config.Format
	switch config.Format {
	case "text", "":
		ext = "txt"
		err = writeText(&buf, report)
	case "json":
		err = writeJSON(&buf, report)
	case "csv":
		err = writeCSV(&buf, report)
	case "copy":
		ext = "txt"
		_, err = io.WriteString(&buf, CopyText(report))
	case "svg":
		solve, ok := report.(*dto.SolveReport)
		if !ok {
			return fmt.Errorf("svg output is only available for solve results")
		}
		_, err = io.WriteString(&buf, NewStitchChart(solve).GenerateSVG(solve))
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
	if err != nil {
		return err
	}

	if config.OutputDir == "" {
		_, err := config.stdout().Write(buf.Bytes())
		return err
	}

	if config.Format == "text" || config.Format == "" {
		if _, err := config.stdout().Write(buf.Bytes()); err != nil {
			return err
		}
	}

	// Create output directory if it doesn't exist
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, fmt.Sprintf("%s_results.%s", kind, ext))
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", config.Format, err)
	}

	if config.Verbose {
		fmt.Fprintf(config.stdout(), "💾 Results saved to: %s\n", filename)
	}
	return nil
}

func reportKind(report any) (string, error) {
	switch report.(type) {
	case *dto.SolveReport:
		return "solve", nil
	case *dto.EstimateReport, []*dto.EstimateReport:
		return "estimate", nil
	case *dto.CastOnReport:
		return "cast_on", nil
	case *dto.ConversionReport:
		return "conversion", nil
	case *dto.NeedleReport:
		return "needle", nil
	case *dto.CounterReport:
		return "counter", nil
	default:
		return "", fmt.Errorf("unsupported report type %T", report)
	}
}

// writeJSON creates JSON output
func writeJSON(w io.Writer, report any) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonData = append(jsonData, '\n')
	_, err = w.Write(jsonData)
	return err
}
