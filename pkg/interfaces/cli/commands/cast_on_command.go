package commands

import (
	"context"
	"fmt"

	"github.com/vsinha/fibercalc/pkg/application/services"
	"github.com/vsinha/fibercalc/pkg/domain/entities"
	"github.com/vsinha/fibercalc/pkg/interfaces/cli/output"
)

// CastOnConfig holds configuration for the cast-on command
type CastOnConfig struct {
	Width           float64
	StitchesPerUnit float64
	Units           string
	Rules           []string
	EdgeStitches    int
}

// CastOnCommand recommends a cast-on count for a finished width
type CastOnCommand struct {
	config  CastOnConfig
	runtime *Runtime
}

// NewCastOnCommand creates a new cast-on command with the given configuration
func NewCastOnCommand(config CastOnConfig, runtime *Runtime) *CastOnCommand {
	return &CastOnCommand{config: config, runtime: runtime}
}

// Execute runs the cast-on command
func (c *CastOnCommand) Execute(ctx context.Context) error {
	constraints, err := services.ParseRules(c.config.Rules)
	if err != nil {
		return fmt.Errorf("invalid rule: %w", err)
	}
	if len(constraints) == 0 {
		c.runtime.Message(output.MsgIncomplete)
		return nil
	}

	units := entities.Imperial
	if c.config.Units != "" {
		units, err = entities.ParseUnitSystem(c.config.Units)
		if err != nil {
			return err
		}
	} else if prefs, err := c.runtime.Service().Preferences(); err == nil {
		units = prefs.UnitSystem
	}

	report, err := c.runtime.Service().PlanCastOn(ctx, services.CastOnInput{
		Width:           c.config.Width,
		Units:           units,
		StitchesPerUnit: c.config.StitchesPerUnit,
		Constraints:     constraints,
		EdgeStitches:    c.config.EdgeStitches,
	})
	if err != nil {
		return fmt.Errorf("cast-on planning failed: %w", err)
	}

	if err := c.runtime.Render(report); err != nil {
		return err
	}
	return c.runtime.Flush()
}
