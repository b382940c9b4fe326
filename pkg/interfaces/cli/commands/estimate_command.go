package commands

import (
	"context"
	"fmt"

	"github.com/vsinha/fibercalc/pkg/application/services"
	"github.com/vsinha/fibercalc/pkg/domain/entities"
	"github.com/vsinha/fibercalc/pkg/infrastructure/repositories/csv"
)

// EstimateConfig holds configuration for the estimate command
type EstimateConfig struct {
	Name             string
	Width            float64
	Height           float64
	Units            string
	YarnWeight       string
	Shape            string
	Pattern          string
	StitchMultiplier float64
	SkeinLength      float64
	SkeinWeight      float64
	Gauge            string
	BatchFile        string
}

// EstimateCommand estimates yarn for one project or a CSV batch
type EstimateCommand struct {
	config  EstimateConfig
	runtime *Runtime
}

// NewEstimateCommand creates a new estimate command with the given configuration
func NewEstimateCommand(config EstimateConfig, runtime *Runtime) *EstimateCommand {
	return &EstimateCommand{config: config, runtime: runtime}
}

// Execute runs the estimate command
func (c *EstimateCommand) Execute(ctx context.Context) error {
	if c.config.BatchFile != "" {
		return c.executeBatch(ctx)
	}

	input, err := c.input()
	if err != nil {
		return err
	}

	report, err := c.runtime.Service().Estimate(ctx, input)
	if err != nil {
		return fmt.Errorf("estimate failed: %w", err)
	}

	if err := c.runtime.Render(report); err != nil {
		return err
	}
	return c.runtime.Flush()
}

func (c *EstimateCommand) input() (services.EstimateInput, error) {
	gauge, err := ParseGauge(c.config.Gauge)
	if err != nil {
		return services.EstimateInput{}, err
	}

	var units entities.UnitSystem
	if c.config.Units != "" {
		units, err = entities.ParseUnitSystem(c.config.Units)
		if err != nil {
			return services.EstimateInput{}, err
		}
	}

	return services.EstimateInput{
		Name:             c.config.Name,
		Width:            c.config.Width,
		Height:           c.config.Height,
		Units:            units,
		YarnWeight:       c.config.YarnWeight,
		Shape:            c.config.Shape,
		Pattern:          c.config.Pattern,
		StitchMultiplier: c.config.StitchMultiplier,
		SkeinLength:      c.config.SkeinLength,
		SkeinWeight:      c.config.SkeinWeight,
		Gauge:            gauge,
	}, nil
}

func (c *EstimateCommand) executeBatch(ctx context.Context) error {
	c.runtime.Printf("📂 Loading projects from %s\n", c.config.BatchFile)

	projects, err := csv.NewLoader().LoadProjects(c.config.BatchFile)
	if err != nil {
		return fmt.Errorf("error loading projects: %w", err)
	}

	c.runtime.Printf("✅ Loaded %d project(s)\n\n", len(projects))

	reports, err := c.runtime.Service().EstimateBatch(ctx, projects)
	if err != nil {
		return fmt.Errorf("estimate failed: %w", err)
	}

	if err := c.runtime.Render(reports); err != nil {
		return err
	}
	return c.runtime.Flush()
}
