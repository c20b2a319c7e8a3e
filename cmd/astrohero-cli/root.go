package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "astrohero-cli",
		Short: "Turn birth data into tabletop hero sheets",
		Long: `astrohero-cli derives character sheets from birth data without a server
and checks a running astrohero server for deterministic answers.

Available subcommands:
  sheet - derive one character sheet locally and print it as JSON
  smoke - run a concurrent determinism check against a server`,
		SilenceUsage: true,
	}
	root.AddCommand(newSheetCmd(), newSmokeCmd())
	return root
}
