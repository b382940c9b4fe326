package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vsinha/fibercalc/pkg/interfaces/cli/commands"
)

func convertCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "convert <value> <from> <to>",
		Short:   "Convert between in/cm, yd/m and g/oz",
		Example: `  fibercalc convert 10 in cm`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseFloatArg("value", args[0])
			if err != nil {
				return err
			}
			cfg := commands.ConvertConfig{Value: value, From: args[1], To: args[2]}
			return withRuntime(cmd, g, func(rt *commands.Runtime) error {
				return commands.NewConvertCommand(cfg, rt).Execute(cmd.Context())
			})
		},
	}
}

func needleCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "needle <size>",
		Short: "Look up a needle or hook size",
		Example: `  fibercalc needle 4.5
  fibercalc needle "us 8"
  fibercalc needle H-8`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := commands.NeedleConfig{Query: strings.Join(args, " ")}
			return withRuntime(cmd, g, func(rt *commands.Runtime) error {
				return commands.NewNeedleCommand(cfg, rt).Execute(cmd.Context())
			})
		},
	}
}

func counterCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "counter <inc|dec|reset|show> <name>",
		Short:     "Keep a persistent row counter",
		Example:   `  fibercalc counter inc sleeve`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"inc", "dec", "reset", "show"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := commands.CounterConfig{Operation: args[0], Name: args[1]}
			return withRuntime(cmd, g, func(rt *commands.Runtime) error {
				return commands.NewCounterCommand(cfg, rt).Execute(cmd.Context())
			})
		},
	}
}
