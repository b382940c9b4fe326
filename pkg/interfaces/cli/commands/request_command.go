package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/vsinha/fibercalc/pkg/application/services"
	"github.com/vsinha/fibercalc/pkg/domain/entities"
	"github.com/vsinha/fibercalc/pkg/infrastructure/config"
	"github.com/vsinha/fibercalc/pkg/interfaces/cli/output"
)

// Request sections
const (
	SectionSolve    = "solve"
	SectionEstimate = "estimate"
	SectionCastOn   = "cast_on"
)

// RequestConfig holds configuration for running a YAML request file
type RequestConfig struct {
	RequestFile string
	Watch       bool
	// Sections limits which parts of the file run; empty runs all of them.
	Sections []string
}

// RequestCommand runs the calculations described in a request file and,
// with Watch, again on every save until the context is cancelled
type RequestCommand struct {
	config  RequestConfig
	runtime *Runtime
}

// NewRequestCommand creates a new request command with the given configuration
func NewRequestCommand(config RequestConfig, runtime *Runtime) *RequestCommand {
	return &RequestCommand{config: config, runtime: runtime}
}

// Execute runs the request command
func (c *RequestCommand) Execute(ctx context.Context) error {
	req, err := config.LoadRequest(c.config.RequestFile)
	if err != nil {
		return fmt.Errorf("failed to load request: %w", err)
	}

	if err := c.run(ctx, req); err != nil && !c.config.Watch {
		return err
	}
	if !c.config.Watch {
		return nil
	}

	c.runtime.Printf("👀 Watching %s for changes (Ctrl+C to stop)\n", c.config.RequestFile)
	return config.WatchRequest(ctx, c.config.RequestFile, c.runtime.logger, func(req *config.Request) {
		c.runtime.Printf("\n🔄 %s changed, recalculating\n", c.config.RequestFile)
		// One bad edit must not end the watch.
		_ = c.run(ctx, req)
	})
}

// run executes each selected section. In watch mode errors are reported
// and the remaining sections still run.
func (c *RequestCommand) run(ctx context.Context, req *config.Request) error {
	var errs []error
	ran := false

	if req.Solve != nil && c.selected(SectionSolve) {
		ran = true
		errs = append(errs, c.report(NewSolveCommand(SolveConfig{
			Rules:        req.Solve.Rules,
			MinWidth:     req.Solve.MinWidth,
			MaxWidth:     req.Solve.MaxWidth,
			EdgeStitches: req.Solve.EdgeStitches,
		}, c.runtime).Execute(ctx)))
	}

	if req.Estimate != nil && c.selected(SectionEstimate) {
		ran = true
		errs = append(errs, c.report(c.runEstimate(ctx, req.Estimate)))
	}

	if req.CastOn != nil && c.selected(SectionCastOn) {
		ran = true
		errs = append(errs, c.report(NewCastOnCommand(CastOnConfig{
			Width:           req.CastOn.Width,
			StitchesPerUnit: req.CastOn.StitchesPerUnit,
			Units:           req.CastOn.Units,
			Rules:           req.CastOn.Rules,
			EdgeStitches:    req.CastOn.EdgeStitches,
		}, c.runtime).Execute(ctx)))
	}

	if !ran {
		c.runtime.Message(output.MsgIncomplete)
	}
	return errors.Join(errs...)
}

func (c *RequestCommand) runEstimate(ctx context.Context, e *config.EstimateRequest) error {
	var gauge *entities.Gauge
	if e.Gauge != nil {
		gauge = &entities.Gauge{StitchesPerUnit: e.Gauge.Stitches, RowsPerUnit: e.Gauge.Rows}
	}

	var units entities.UnitSystem
	if e.Units != "" {
		var err error
		if units, err = entities.ParseUnitSystem(e.Units); err != nil {
			return err
		}
	}

	report, err := c.runtime.Service().Estimate(ctx, services.EstimateInput{
		Name:             e.Name,
		Width:            e.Width,
		Height:           e.Height,
		Units:            units,
		YarnWeight:       e.YarnWeight,
		Shape:            e.Shape,
		Pattern:          e.Pattern,
		StitchMultiplier: e.StitchMultiplier,
		SkeinLength:      e.SkeinLength,
		SkeinWeight:      e.SkeinWeight,
		Gauge:            gauge,
	})
	if err != nil {
		return fmt.Errorf("estimate failed: %w", err)
	}
	if err := c.runtime.Render(report); err != nil {
		return err
	}
	return c.runtime.Flush()
}

// report prints err in watch mode so the loop can carry on
func (c *RequestCommand) report(err error) error {
	if err != nil && c.config.Watch {
		c.runtime.Message("⚠️  " + err.Error())
		c.runtime.logger.Warn("request section failed", "path", c.config.RequestFile, "err", err)
	}
	return err
}

func (c *RequestCommand) selected(section string) bool {
	return len(c.config.Sections) == 0 || slices.Contains(c.config.Sections, section)
}
