package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Ramsey-B/fern/config"
	"github.com/Ramsey-B/fern/internal/openreferral"
	"github.com/Ramsey-B/fern/pkg/importer"
)

var convertCSVCmd = &cobra.Command{
	Use:   "convert-csv <file> <output-folder>",
	Short: "Convert an AIRS CSV export to Open Referral standard CSV files",
	Args:  cobra.ExactArgs(2),
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

		if info, err := os.Stat(args[1]); err != nil || !info.IsDir() {
			return errors.Errorf("output folder %s does not exist", args[1])
		}

		sink := openreferral.NewCSVFileSink(args[1])
		imp := importer.NewCSVImporter(sink, logger, vocabularyOverride(cfg))
		counts, err := imp.Run(ctx, file)
		if err != nil {
			sink.Close()
			return err
		}
		if err := sink.Close(); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), counts.Summary())
		return nil
	},
}
