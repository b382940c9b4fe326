package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsinha/fibercalc/pkg/interfaces/cli/commands"
)

func solveCmd(g *globalFlags) *cobra.Command {
	var (
		cfg     commands.SolveConfig
		request string
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find stitch counts that fit every pattern repeat",
		Example: `  fibercalc solve --rule 6+2 --rule 4 --min 40 --max 80 --edge 2
  fibercalc solve --constraints rules.csv --max 120`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, g, func(rt *commands.Runtime) error {
				if request != "" {
					return requestCommand(request, watch, commands.SectionSolve, rt).Execute(cmd.Context())
				}
				return commands.NewSolveCommand(cfg, rt).Execute(cmd.Context())
			})
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&cfg.Rules, "rule", "r", nil, `pattern rule such as "6+2", "8 plus 3" or "rib=4+2" (repeatable)`)
	f.StringVar(&cfg.ConstraintsFile, "constraints", "", "CSV file of rules (label,multiple,remainder)")
	f.IntVar(&cfg.MinWidth, "min", 1, "smallest stitch count, edge stitches included")
	f.IntVar(&cfg.MaxWidth, "max", 0, "largest stitch count, edge stitches included")
	f.IntVar(&cfg.EdgeStitches, "edge", 0, "selvedge stitches outside the pattern")
	addRequestFlags(cmd, &request, &watch)
	return cmd
}

func estimateCmd(g *globalFlags) *cobra.Command {
	var (
		cfg     commands.EstimateConfig
		request string
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate yardage, weight and skeins for a project",
		Example: `  fibercalc estimate --width 40 --height 60 --weight worsted --skein-length 220
  fibercalc estimate --width 150 --height 75 --units metric --weight lace --shape triangle --pattern lace
  fibercalc estimate --batch projects.csv --format csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("pattern") && cmd.Flags().Changed("multiplier") {
				return fmt.Errorf("%w: --pattern and --multiplier are mutually exclusive", errUsage)
			}
			return withRuntime(cmd, g, func(rt *commands.Runtime) error {
				if request != "" {
					return requestCommand(request, watch, commands.SectionEstimate, rt).Execute(cmd.Context())
				}
				return commands.NewEstimateCommand(cfg, rt).Execute(cmd.Context())
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Name, "name", "", "project name")
	f.Float64Var(&cfg.Width, "width", 0, "finished width")
	f.Float64Var(&cfg.Height, "height", 0, "finished height or length")
	f.StringVar(&cfg.Units, "units", "", "imperial (in, yd) or metric (cm, m); default from preferences")
	f.StringVarP(&cfg.YarnWeight, "weight", "w", "", "yarn weight: lace, fingering, sport, dk, worsted, bulky, super-bulky, jumbo")
	f.StringVar(&cfg.Shape, "shape", "", "rectangle, triangle, hat, pair or amigurumi")
	f.StringVar(&cfg.Pattern, "pattern", "", "named stitch pattern, e.g. cables or brioche")
	f.Float64Var(&cfg.StitchMultiplier, "multiplier", 0, "stitch pattern multiplier (1.0 = stockinette)")
	f.StringVar(&cfg.Gauge, "gauge", "", "swatch gauge as stitches x rows per unit, e.g. 5x7")
	f.Float64Var(&cfg.SkeinLength, "skein-length", 0, "length of one skein (yd, or m with --units metric)")
	f.Float64Var(&cfg.SkeinWeight, "skein-weight", 0, "weight of one skein in grams")
	f.StringVar(&cfg.BatchFile, "batch", "", "CSV file of projects to estimate")
	addRequestFlags(cmd, &request, &watch)
	return cmd
}

func castOnCmd(g *globalFlags) *cobra.Command {
	var cfg commands.CastOnConfig

	cmd := &cobra.Command{
		Use:     "cast-on",
		Short:   "Pick a compatible cast-on count for a finished width",
		Example: `  fibercalc cast-on --width 20 --gauge 5 --rule 6+2 --edge 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, g, func(rt *commands.Runtime) error {
				return commands.NewCastOnCommand(cfg, rt).Execute(cmd.Context())
			})
		},
	}

	f := cmd.Flags()
	f.Float64Var(&cfg.Width, "width", 0, "finished width")
	f.Float64Var(&cfg.StitchesPerUnit, "gauge", 0, "stitches per inch (or per cm with --units metric)")
	f.StringVar(&cfg.Units, "units", "", "imperial or metric; default from preferences")
	f.StringArrayVarP(&cfg.Rules, "rule", "r", nil, "pattern rule (repeatable)")
	f.IntVar(&cfg.EdgeStitches, "edge", 0, "selvedge stitches outside the pattern")
	return cmd
}

func runCmd(g *globalFlags) *cobra.Command {
	var cfg commands.RequestConfig

	cmd := &cobra.Command{
		Use:   "run <request.yaml>",
		Short: "Run every calculation in a request file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.RequestFile = args[0]
			return withRuntime(cmd, g, func(rt *commands.Runtime) error {
				return commands.NewRequestCommand(cfg, rt).Execute(cmd.Context())
			})
		},
	}

	cmd.Flags().BoolVar(&cfg.Watch, "watch", false, "recalculate every time the file is saved")
	return cmd
}

func addRequestFlags(cmd *cobra.Command, request *string, watch *bool) {
	cmd.Flags().StringVar(request, "request", "", "read inputs from a YAML request file")
	cmd.Flags().BoolVar(watch, "watch", false, "with --request, recalculate on every save")
}

func requestCommand(path string, watch bool, section string, rt *commands.Runtime) *commands.RequestCommand {
	return commands.NewRequestCommand(commands.RequestConfig{
		RequestFile: path,
		Watch:       watch,
		Sections:    []string{section},
	}, rt)
}
