package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"openstruct/internal/config"
	"openstruct/internal/version"
)

var logLevel string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ocalc",
		Short: "openStruct structural calculators",
		Long: `ocalc - openStruct calculators for the command line

Runs the same calculations as the openStruct HTTP API:
  - Beam shear design (NBR 6118, model I)
  - Horizontal spring stiffness of pile supports

Use 'ocalc <command> --help' for the flags of each command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.InitLog()
			if !slices.Contains(config.LogLevels, logLevel) {
				return fmt.Errorf("invalid log level %q, want one of %v", logLevel, config.LogLevels)
			}
			config.SetLogLevel(logLevel)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "wrn", "log level (err, wrn, inf, dbg)")

	root.AddCommand(newShearCmd(), newSpringsCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ocalc %s (commit %s, built %s)\n",
				version.Version, version.GitCommit, version.BuildTime)
		},
	}
}
