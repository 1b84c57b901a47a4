package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/fern/config"
	"github.com/Ramsey-B/fern/pkg/importer"
)

var importCSVCmd = &cobra.Command{
	Use:   "import-csv <file>",
	Short: "Import a flat AIRS CSV export into postgres",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger, flush := newLogger(cfg)
		defer flush()

		ctx := context.Background()
		shutdownTracing := setupTracing(cfg)
		defer shutdownTracing(ctx)

		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()

		store, db, err := setupStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		imp := importer.NewCSVImporter(store, logger, vocabularyOverride(cfg))
		counts, err := imp.Run(ctx, file)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), counts.Summary())
		return nil
	},
}
