package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vsinha/fibercalc/pkg/domain/entities"
)

var (
	constraintHeader = []string{"label", "multiple", "remainder"}
	projectHeader    = []string{
		"name", "width", "height", "yarn_weight", "shape", "stitch_multiplier",
		"skein_length", "skein_weight", "gauge_stitches", "gauge_rows",
	}
)

// Loader handles loading batch calculator input from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadConstraints loads pattern constraints from a CSV file
func (l *Loader) LoadConstraints(filename string) ([]entities.PatternConstraint, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open constraints file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadConstraints(file)
}

// ReadConstraints parses constraint rows from r
func (l *Loader) ReadConstraints(r io.Reader) ([]entities.PatternConstraint, error) {
	records, err := readRecords(r, "constraints", constraintHeader)
	if err != nil {
		return nil, err
	}

	constraints := make([]entities.PatternConstraint, 0, len(records))
	for i, record := range records {
		c, err := parseConstraint(record)
		if err != nil {
			return nil, fmt.Errorf("constraints CSV row %d: %w", i+2, err)
		}
		constraints = append(constraints, *c)
	}

	return constraints, nil
}

// LoadProjects loads yarn projects from a CSV file. Dimensions are taken
// as inches; metric batches are normalised by the caller.
func (l *Loader) LoadProjects(filename string) ([]*entities.YarnProject, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open projects file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadProjects(file)
}

// ReadProjects parses project rows from r. Only unparsable values are
// errors: a row with a zero dimension or no yarn weight is returned as an
// incomplete project.
func (l *Loader) ReadProjects(r io.Reader) ([]*entities.YarnProject, error) {
	records, err := readRecords(r, "projects", projectHeader)
	if err != nil {
		return nil, err
	}

	projects := make([]*entities.YarnProject, 0, len(records))
	for i, record := range records {
		p, err := parseProject(record)
		if err != nil {
			return nil, fmt.Errorf("projects CSV row %d: %w", i+2, err)
		}
		projects = append(projects, p)
	}

	return projects, nil
}

// readRecords reads all rows, checks the header and returns the data rows
func readRecords(r io.Reader, kind string, expectedHeader []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}

	return records[1:], nil
}

// Helper functions for parsing CSV records

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseConstraint(record []string) (*entities.PatternConstraint, error) {
	label := strings.TrimSpace(record[0])

	multiple, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid multiple: %s", record[1])
	}

	remainder := 0
	if s := strings.TrimSpace(record[2]); s != "" {
		remainder, err = strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid remainder: %s", record[2])
		}
	}

	return entities.NewPatternConstraint(multiple, remainder, label)
}

func parseProject(record []string) (*entities.YarnProject, error) {
	name := strings.TrimSpace(record[0])

	width, err := parseFloat("width", record[1])
	if err != nil {
		return nil, err
	}
	height, err := parseFloat("height", record[2])
	if err != nil {
		return nil, err
	}

	weight := entities.NoYarnWeight
	if strings.TrimSpace(record[3]) != "" {
		if weight, err = entities.ParseYarnWeight(record[3]); err != nil {
			return nil, err
		}
	}
	shape, err := entities.ParseProjectShape(record[4])
	if err != nil {
		return nil, err
	}

	multiplier, err := parseFloat("stitch_multiplier", record[5])
	if err != nil {
		return nil, err
	}
	skeinLength, err := parseFloat("skein_length", record[6])
	if err != nil {
		return nil, err
	}
	skeinWeight, err := parseFloat("skein_weight", record[7])
	if err != nil {
		return nil, err
	}

	var gauge *entities.Gauge
	if strings.TrimSpace(record[8]) != "" || strings.TrimSpace(record[9]) != "" {
		stitches, err := parseFloat("gauge_stitches", record[8])
		if err != nil {
			return nil, err
		}
		rows, err := parseFloat("gauge_rows", record[9])
		if err != nil {
			return nil, err
		}
		gauge = &entities.Gauge{StitchesPerUnit: stitches, RowsPerUnit: rows}
	}

	if multiplier == 0 {
		multiplier = 1.0
	}

	// Rows are kept even when incomplete; the estimator reports them as such.
	return &entities.YarnProject{
		Name:             name,
		WidthUnits:       width,
		HeightUnits:      height,
		YarnWeight:       weight,
		Shape:            shape,
		StitchMultiplier: multiplier,
		SkeinLength:      skeinLength,
		SkeinWeight:      skeinWeight,
		Gauge:            gauge,
	}, nil
}

// parseFloat reads an optional numeric column; empty means zero
func parseFloat(column, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", column, s)
	}
	return v, nil
}
