package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/fibercalc/pkg/domain/entities"
	"github.com/vsinha/fibercalc/pkg/infrastructure/repositories/memory"
)

// Calibration is an overlay for the built-in reference tables. Absent
// sections leave the defaults untouched.
type Calibration struct {
	YarnWeights    []YarnWeightRow    `yaml:"yarn_weights"`
	ShapeFactors   map[string]float64 `yaml:"shape_factors"`
	StitchPatterns []StitchPatternRow `yaml:"stitch_patterns"`
	NeedleSizes    []NeedleSizeRow    `yaml:"needle_sizes"`
}

// YarnWeightRow replaces the calibration for one yarn weight.
type YarnWeightRow struct {
	Weight                  string  `yaml:"weight"`
	YardsPerSquareInch      float64 `yaml:"yards_per_square_inch"`
	YardsPerGram            float64 `yaml:"yards_per_gram"`
	BaselineStitchesPerInch float64 `yaml:"baseline_stitches_per_inch"`
	BaselineRowsPerInch     float64 `yaml:"baseline_rows_per_inch"`
}

// StitchPatternRow adds or replaces a named stitch multiplier.
type StitchPatternRow struct {
	Name       string  `yaml:"name"`
	Multiplier float64 `yaml:"multiplier"`
}

// NeedleSizeRow is one needle table entry. A non-empty needle_sizes list
// replaces the whole table.
type NeedleSizeRow struct {
	Millimeters float64 `yaml:"mm"`
	US          string  `yaml:"us"`
	UK          string  `yaml:"uk"`
	Hook        string  `yaml:"hook"`
}

// LoadCalibration reads and validates the overlay at path.
func LoadCalibration(path string) (*Calibration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	return ParseCalibration(data)
}

// ParseCalibration decodes and validates an overlay document.
func ParseCalibration(data []byte) (*Calibration, error) {
	cal := &Calibration{}
	if err := yaml.Unmarshal(data, cal); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := validateCalibration(cal); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cal, nil
}

// Apply writes the overlay into repo.
func (c *Calibration) Apply(repo *memory.CalibrationRepository) error {
	specs := make([]*entities.YarnWeightSpec, 0, len(c.YarnWeights))
	for _, row := range c.YarnWeights {
		weight, err := entities.ParseYarnWeight(row.Weight)
		if err != nil {
			return err
		}
		specs = append(specs, &entities.YarnWeightSpec{
			Weight:                  weight,
			YardsPerSquareInch:      row.YardsPerSquareInch,
			YardsPerGram:            row.YardsPerGram,
			BaselineStitchesPerInch: row.BaselineStitchesPerInch,
			BaselineRowsPerInch:     row.BaselineRowsPerInch,
		})
	}
	if err := repo.LoadYarnWeights(specs); err != nil {
		return fmt.Errorf("config: yarn_weights: %w", err)
	}

	for name, factor := range c.ShapeFactors {
		shape, err := entities.ParseProjectShape(name)
		if err != nil {
			return err
		}
		if err := repo.SetShapeFactor(shape, factor); err != nil {
			return fmt.Errorf("config: shape_factors: %w", err)
		}
	}

	for _, row := range c.StitchPatterns {
		repo.AddStitchPattern(entities.StitchPattern{Name: row.Name, Multiplier: row.Multiplier})
	}

	if len(c.NeedleSizes) > 0 {
		sizes := make([]entities.NeedleSize, len(c.NeedleSizes))
		for i, row := range c.NeedleSizes {
			sizes[i] = entities.NeedleSize{Millimeters: row.Millimeters, US: row.US, UK: row.UK, Hook: row.Hook}
		}
		if err := repo.LoadNeedleSizes(sizes); err != nil {
			return fmt.Errorf("config: needle_sizes: %w", err)
		}
	}
	return nil
}

// validateCalibration checks names and signs before anything is applied.
func validateCalibration(c *Calibration) error {
	for i, row := range c.YarnWeights {
		if _, err := entities.ParseYarnWeight(row.Weight); err != nil {
			return fmt.Errorf("yarn_weights[%d]: %w", i, err)
		}
		if row.YardsPerSquareInch <= 0 || row.YardsPerGram <= 0 {
			return fmt.Errorf("yarn_weights[%d] %q: densities must be positive", i, row.Weight)
		}
		if row.BaselineStitchesPerInch <= 0 || row.BaselineRowsPerInch <= 0 {
			return fmt.Errorf("yarn_weights[%d] %q: baseline gauge must be positive", i, row.Weight)
		}
	}
	for name, factor := range c.ShapeFactors {
		if _, err := entities.ParseProjectShape(name); err != nil {
			return fmt.Errorf("shape_factors: %w", err)
		}
		if factor <= 0 {
			return fmt.Errorf("shape_factors %q: factor must be positive", name)
		}
	}
	for i, row := range c.StitchPatterns {
		if row.Name == "" {
			return fmt.Errorf("stitch_patterns[%d]: name is required", i)
		}
		if row.Multiplier <= 0 {
			return fmt.Errorf("stitch_patterns[%d] %q: multiplier must be positive", i, row.Name)
		}
	}
	for i, row := range c.NeedleSizes {
		if row.Millimeters <= 0 {
			return fmt.Errorf("needle_sizes[%d]: mm must be positive", i)
		}
	}
	return nil
}
