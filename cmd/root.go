// Package cmd provides the CLI commands for fern.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Gobusters/ectologger"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/Ramsey-B/fern/config"
	"github.com/Ramsey-B/fern/internal/postgres"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/events"
	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

var vocabularyFlag string

var rootCmd = &cobra.Command{
	Use:   "fern",
	Short: "Import BC211 social services directory data",
	Long: `Fern imports BC211 directory exports into an Open Referral entity graph
of organizations, services, locations, addresses, phone numbers and taxonomy
terms.

Examples:
  fern import-csv path/to/bc211.csv
  fern import-xml path/to/bc211.xml
  fern convert-csv path/to/bc211.csv path/to/output-folder --vocabulary airs`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vocabularyFlag, "vocabulary", "", "vocabulary id for all taxonomy terms, overriding per-column inference")
	rootCmd.AddCommand(importCSVCmd)
	rootCmd.AddCommand(importXMLCmd)
	rootCmd.AddCommand(convertCSVCmd)
}

// newLogger bridges ectologger output into zap.
func newLogger(cfg *config.Config) (ectologger.Logger, func()) {
	var zl *zap.Logger
	var err error
	if cfg.PrettyLogs {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}

	logger := ectologger.NewEctoLogger(func(msg ectologger.EctoLogMessage) {
		zl.Info("log", zap.Any("entry", msg))
	})
	return logger, func() { _ = zl.Sync() }
}

// setupTracing installs a tracer provider when tracing is enabled and
// returns its shutdown hook.
func setupTracing(cfg *config.Config) func(context.Context) {
	if !cfg.TracingEnabled {
		return func(context.Context) {}
	}

	provider := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(provider)
	tracing.SetTracer(otel.Tracer(cfg.AppName))
	return func(ctx context.Context) { _ = provider.Shutdown(ctx) }
}

// setupStore connects to postgres, applies pending migrations and returns
// the persistence layer.
func setupStore(ctx context.Context, cfg *config.Config, logger ectologger.Logger) (*postgres.Store, database.DB, error) {
	raw, err := database.Connect(ctx, database.ConnectionConfig{
		DSN:             cfg.DSN(),
		MaxOpenConns:    cfg.DatabaseMaxOpenConns,
		MaxIdleConns:    cfg.DatabaseMaxIdleConns,
		ConnMaxLifetime: cfg.DatabaseConnMaxLifetime,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := database.Migrate(raw, database.MigrationConfig{
		MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
		DatabaseName:        cfg.DatabaseName,
	}, logger); err != nil {
		raw.Close()
		return nil, nil, err
	}

	db := database.NewDatabaseInstance(raw, logger)
	return postgres.NewStore(db, logger), db, nil
}

// setupEmitter builds the change-event emitter, or a nil emitter when no
// brokers are configured.
func setupEmitter(cfg *config.Config, logger ectologger.Logger) (*events.Emitter, func()) {
	if !cfg.KafkaEnabled() {
		return nil, func() {}
	}

	producer := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.KafkaOutputTopic,
		BatchSize:    cfg.KafkaBatchSize,
		BatchTimeout: cfg.KafkaBatchTimeout,
		RequiredAcks: cfg.KafkaRequiredAcks,
		Compression:  cfg.KafkaCompression,
	}, logger)
	return events.NewEmitter(producer, logger), func() { _ = producer.Close() }
}

func vocabularyOverride(cfg *config.Config) string {
	if vocabularyFlag != "" {
		return vocabularyFlag
	}
	return cfg.VocabularyOverride
}
