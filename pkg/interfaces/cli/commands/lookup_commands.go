package commands

import (
	"context"
	"fmt"

	"github.com/vsinha/fibercalc/pkg/application/services"
)

// ConvertConfig holds configuration for the convert command
type ConvertConfig struct {
	Value float64
	From  string
	To    string
}

// ConvertCommand converts a length or weight between units
type ConvertCommand struct {
	config  ConvertConfig
	runtime *Runtime
}

// NewConvertCommand creates a new convert command with the given configuration
func NewConvertCommand(config ConvertConfig, runtime *Runtime) *ConvertCommand {
	return &ConvertCommand{config: config, runtime: runtime}
}

// Execute runs the convert command
func (c *ConvertCommand) Execute(ctx context.Context) error {
	report, err := c.runtime.Service().Convert(ctx, c.config.Value, c.config.From, c.config.To)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	if err := c.runtime.Render(report); err != nil {
		return err
	}
	return c.runtime.Flush()
}

// NeedleConfig holds configuration for the needle command
type NeedleConfig struct {
	Query string
}

// NeedleCommand looks up a needle or hook size
type NeedleCommand struct {
	config  NeedleConfig
	runtime *Runtime
}

// NewNeedleCommand creates a new needle command with the given configuration
func NewNeedleCommand(config NeedleConfig, runtime *Runtime) *NeedleCommand {
	return &NeedleCommand{config: config, runtime: runtime}
}

// Execute runs the needle command
func (c *NeedleCommand) Execute(ctx context.Context) error {
	report, err := c.runtime.Service().LookupNeedle(ctx, c.config.Query)
	if err != nil {
		return fmt.Errorf("needle lookup failed: %w", err)
	}
	if err := c.runtime.Render(report); err != nil {
		return err
	}
	return c.runtime.Flush()
}

// CounterConfig holds configuration for the counter command
type CounterConfig struct {
	Operation string
	Name      string
}

// CounterCommand changes or shows a persisted row counter
type CounterCommand struct {
	config  CounterConfig
	runtime *Runtime
}

// NewCounterCommand creates a new counter command with the given configuration
func NewCounterCommand(config CounterConfig, runtime *Runtime) *CounterCommand {
	return &CounterCommand{config: config, runtime: runtime}
}

// Execute runs the counter command
func (c *CounterCommand) Execute(ctx context.Context) error {
	op, err := services.ParseCounterOp(c.config.Operation)
	if err != nil {
		return err
	}
	report, err := c.runtime.Service().Counter(ctx, op, c.config.Name)
	if err != nil {
		return fmt.Errorf("counter %s failed: %w", op, err)
	}
	if err := c.runtime.Render(report); err != nil {
		return err
	}
	return c.runtime.Flush()
}
