package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/enbywiki/enbyscan/internal/config"
	"github.com/enbywiki/enbyscan/internal/runner"
	"github.com/enbywiki/enbyscan/internal/sources/petscan"
	"github.com/enbywiki/enbyscan/internal/sources/wikidata"
	"github.com/enbywiki/enbyscan/pkg/logging"
)

// newRunCommand creates the run command, the tool's single verb.
func newRunCommand() *cobra.Command {
	var (
		configFile string
		statsPath  string
		backfill   bool
	)

	cmd := &cobra.Command{
		Use:   "run [output-file]",
		Short: "Fetch all sources, reconcile, and write the report",
		Long: `Run performs one complete pass: every tracked language's category
fetch, the Wikidata people query, reconciliation, one appended
statistics line, and the HTML report.

Any fetch failure aborts the run before any output file is touched.`,
		Example: `  enbyscan run
  enbyscan run report.html --backfill
  enbyscan run --config enbyscan.yaml --stats /var/log/enby-stats.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if statsPath != "" {
				cfg.StatsPath = statsPath
			}

			outputPath := cfg.OutputPath
			if len(args) == 1 {
				outputPath = args[0]
			}

			categories := petscan.New(cfg.PetScanURL, cfg.PetScanTimeout)
			entities := wikidata.New(cfg.SPARQLURL, cfg.SPARQLTimeout)

			ctx := logging.WithLogger(cmd.Context(), logging.Default())
			started := time.Now()

			summary, err := runner.New(cfg, categories, entities, backfill).Run(ctx, outputPath)
			if err != nil {
				return err
			}

			logging.Info().
				Int("people", summary.Rows).
				Int("flagged_rows", summary.FlaggedRows).
				Str("output", outputPath).
				Dur("elapsed", time.Since(started)).
				Msg("Run complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file (default built-in language table)")
	cmd.Flags().StringVar(&statsPath, "stats", "", "statistics log path (default from config)")
	cmd.Flags().BoolVar(&backfill, "backfill", false, "resolve entity data for category-only titles")

	return cmd
}
