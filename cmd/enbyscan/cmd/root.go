// Package cmd defines the enbyscan command tree.
package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/enbywiki/enbyscan/pkg/logging"
)

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "enbyscan",
		Short: "Reconcile non-binary gender metadata across Wikipedia and Wikidata",
		Long: `enbyscan joins per-language Wikipedia category membership with the
Wikidata entity graph, flags people whose gender metadata disagrees
between sources, and renders the result as a sortable HTML report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				logging.SetDefault(logging.Default().Level(zerolog.DebugLevel))
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRunCommand())

	return root
}
