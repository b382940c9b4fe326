package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vsinha/fibercalc/pkg/infrastructure/logger"
	"github.com/vsinha/fibercalc/pkg/interfaces/cli/commands"
	"github.com/vsinha/fibercalc/pkg/interfaces/cli/output"
)

var errUsage = errors.New("usage error")

// globalFlags are bound to the root command's persistent flags.
type globalFlags struct {
	format      string
	outputDir   string
	verbose     bool
	calibration string
	preferences string
	metricsFile string
	debug       bool
	logFile     string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "fibercalc",
		Short:         "Stitch-count and yarn calculators for knitters and crocheters",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.format, "format", "text", "output format: "+strings.Join(output.Formats, ", "))
	pf.StringVar(&g.outputDir, "output-dir", "", "write results to this directory instead of stdout")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "print progress lines")
	pf.StringVar(&g.calibration, "calibration", "", "YAML file overriding the built-in yarn and needle tables")
	pf.StringVar(&g.preferences, "preferences", "", "preferences file (default: user config dir)")
	pf.StringVar(&g.metricsFile, "metrics-file", "", "write calculation counters in Prometheus text format")
	pf.BoolVar(&g.debug, "debug", false, "enable debug logging")
	pf.StringVar(&g.logFile, "log-file", "", "write structured logs to this file")

	cmd.AddCommand(
		solveCmd(g),
		estimateCmd(g),
		castOnCmd(g),
		convertCmd(g),
		needleCmd(g),
		counterCmd(g),
		runCmd(g),
	)
	return cmd
}

// withRuntime sets up logging and the runtime, then hands the runtime to run.
func withRuntime(cmd *cobra.Command, g *globalFlags, run func(rt *commands.Runtime) error) error {
	cleanup, err := logger.Setup(logger.Config{
		Path:   g.logFile,
		Stderr: g.debug && g.logFile == "",
		Debug:  g.debug,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() { _ = cleanup() }()

	rt, err := commands.NewRuntime(commands.GlobalConfig{
		Format:          g.format,
		OutputDir:       g.outputDir,
		Verbose:         g.verbose,
		CalibrationFile: g.calibration,
		PreferencesFile: g.preferences,
		MetricsFile:     g.metricsFile,
		Stdout:          cmd.OutOrStdout(),
	}, logger.L())
	if err != nil {
		return err
	}

	logger.L().Debug("command started", "command", cmd.Name())
	return run(rt)
}

func parseFloatArg(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", errUsage, name, s)
	}
	return v, nil
}
