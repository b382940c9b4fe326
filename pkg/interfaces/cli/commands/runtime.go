package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/vsinha/fibercalc/pkg/application/services"
	"github.com/vsinha/fibercalc/pkg/domain/entities"
	"github.com/vsinha/fibercalc/pkg/domain/repositories"
	"github.com/vsinha/fibercalc/pkg/infrastructure/config"
	"github.com/vsinha/fibercalc/pkg/infrastructure/events"
	"github.com/vsinha/fibercalc/pkg/infrastructure/metrics"
	"github.com/vsinha/fibercalc/pkg/infrastructure/preferences"
	"github.com/vsinha/fibercalc/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/fibercalc/pkg/interfaces/cli/output"
)

// GlobalConfig holds the flags shared by every command
type GlobalConfig struct {
	Format          string
	OutputDir       string
	Verbose         bool
	CalibrationFile string
	PreferencesFile string
	MetricsFile     string
	// Stdout receives results and progress lines; nil means os.Stdout.
	Stdout io.Writer
}

// Runtime is the wiring every command runs against: tables, preferences,
// event store, metrics and output settings
type Runtime struct {
	config   GlobalConfig
	service  *services.CalculatorService
	store    *events.InMemoryEventStore
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewRuntime loads the calibration overlay and preference store named in
// config and wires the calculator service
func NewRuntime(cfg GlobalConfig, logger *slog.Logger) (*Runtime, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if !slices.Contains(output.Formats, cfg.Format) {
		return nil, fmt.Errorf("%w: unsupported output format %q (expected one of %s)",
			entities.ErrInvalidInput, cfg.Format, strings.Join(output.Formats, ", "))
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}

	calibration := memory.NewCalibrationRepository()
	if cfg.CalibrationFile != "" {
		overlay, err := config.LoadCalibration(cfg.CalibrationFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load calibration: %w", err)
		}
		if err := overlay.Apply(calibration); err != nil {
			return nil, fmt.Errorf("failed to apply calibration: %w", err)
		}
		logger.Info("calibration overlay applied", "path", cfg.CalibrationFile)
	}

	prefs, err := openPreferences(cfg.PreferencesFile, logger)
	if err != nil {
		return nil, err
	}

	store := events.NewInMemoryEventStoreWithLogger(logger)
	recorder := metrics.NewRecorder()
	if err := recorder.Attach(store); err != nil {
		return nil, fmt.Errorf("failed to attach metrics: %w", err)
	}

	return &Runtime{
		config:   cfg,
		service:  services.NewCalculatorService(calibration, prefs, store, logger),
		store:    store,
		recorder: recorder,
		logger:   logger,
	}, nil
}

func openPreferences(path string, logger *slog.Logger) (repositories.PreferenceRepository, error) {
	if path == "" {
		defaultPath, err := preferences.DefaultPath()
		if err != nil {
			logger.Warn("no preferences location, keeping preferences in memory", "err", err)
			return memory.NewPreferenceRepository(), nil
		}
		path = defaultPath
	}
	return preferences.NewFileStore(path), nil
}

// Service returns the calculator service
func (r *Runtime) Service() *services.CalculatorService {
	return r.service
}

// Events returns the store every calculation is recorded in
func (r *Runtime) Events() *events.InMemoryEventStore {
	return r.store
}

// Render writes report in the configured format
func (r *Runtime) Render(report any) error {
	return output.Generate(report, output.Config{
		Format:    r.config.Format,
		OutputDir: r.config.OutputDir,
		Verbose:   r.config.Verbose,
		Stdout:    r.config.Stdout,
	})
}

// Printf writes a progress line when verbose output is enabled
func (r *Runtime) Printf(format string, args ...any) {
	if r.config.Verbose {
		fmt.Fprintf(r.config.Stdout, format, args...)
	}
}

// Message writes a plain user message regardless of format
func (r *Runtime) Message(msg string) {
	fmt.Fprintln(r.config.Stdout, msg)
}

// Flush writes the metrics file, if one was requested
func (r *Runtime) Flush() error {
	if r.config.MetricsFile == "" {
		return nil
	}
	if err := r.recorder.WriteFile(r.config.MetricsFile); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	r.logger.Debug("metrics written", "path", r.config.MetricsFile)
	return nil
}

// ParseGauge reads "5x7" (stitches x rows per unit). An empty string means
// no swatch was measured.
func ParseGauge(s string) (*entities.Gauge, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil, nil
	}
	stitchesStr, rowsStr, ok := strings.Cut(s, "x")
	if !ok {
		return nil, fmt.Errorf("%w: gauge %q must look like 5x7", entities.ErrInvalidInput, s)
	}
	stitches, err := strconv.ParseFloat(strings.TrimSpace(stitchesStr), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: gauge stitches %q", entities.ErrInvalidInput, stitchesStr)
	}
	rows, err := strconv.ParseFloat(strings.TrimSpace(rowsStr), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: gauge rows %q", entities.ErrInvalidInput, rowsStr)
	}
	return &entities.Gauge{StitchesPerUnit: stitches, RowsPerUnit: rows}, nil
}
