package commands

import (
	"context"
	"fmt"

	"github.com/vsinha/fibercalc/pkg/application/services"
	"github.com/vsinha/fibercalc/pkg/domain/entities"
	"github.com/vsinha/fibercalc/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/fibercalc/pkg/interfaces/cli/output"
)

// SolveConfig holds configuration for the solve command
type SolveConfig struct {
	Rules           []string
	ConstraintsFile string
	MinWidth        int
	MaxWidth        int
	EdgeStitches    int
}

// SolveCommand finds stitch counts compatible with every rule
type SolveCommand struct {
	config  SolveConfig
	runtime *Runtime
}

// NewSolveCommand creates a new solve command with the given configuration
func NewSolveCommand(config SolveConfig, runtime *Runtime) *SolveCommand {
	return &SolveCommand{config: config, runtime: runtime}
}

// Execute runs the solve command
func (c *SolveCommand) Execute(ctx context.Context) error {
	constraints, err := c.loadConstraints()
	if err != nil {
		return err
	}
	if len(constraints) == 0 || c.config.MaxWidth <= 0 {
		c.runtime.Message(output.MsgIncomplete)
		return nil
	}

	minWidth := max(1, c.config.MinWidth)
	c.runtime.Printf("🔍 Searching %d - %d for %d rule(s)...\n", minWidth, c.config.MaxWidth, len(constraints))

	report, err := c.runtime.Service().Solve(ctx, constraints, minWidth, c.config.MaxWidth, c.config.EdgeStitches)
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}

	if err := c.runtime.Render(report); err != nil {
		return err
	}
	return c.runtime.Flush()
}

func (c *SolveCommand) loadConstraints() ([]entities.PatternConstraint, error) {
	constraints, err := services.ParseRules(c.config.Rules)
	if err != nil {
		return nil, fmt.Errorf("invalid rule: %w", err)
	}

	if c.config.ConstraintsFile != "" {
		c.runtime.Printf("📂 Loading constraints from %s\n", c.config.ConstraintsFile)
		fromFile, err := csv.NewLoader().LoadConstraints(c.config.ConstraintsFile)
		if err != nil {
			return nil, fmt.Errorf("error loading constraints: %w", err)
		}
		constraints = append(constraints, fromFile...)
	}

	return constraints, nil
}
