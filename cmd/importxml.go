package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/fern/config"
	"github.com/Ramsey-B/fern/pkg/reconcile"
)

var importXMLCmd = &cobra.Command{
	Use:   "import-xml <file>",
	Short: "Import a hierarchical iCarol XML export, reconciling against prior runs",
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

		emitter, closeEmitter := setupEmitter(cfg, logger)
		defer closeEmitter()

		reconciler := reconcile.New(store, store, store, emitter, logger)
		counts, err := reconciler.Run(ctx, file, vocabularyOverride(cfg))
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), counts.Summary())
		return nil
	},
}
