package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ivnamo/isoVisor/internal/app"
	"github.com/ivnamo/isoVisor/internal/config"
	"github.com/ivnamo/isoVisor/internal/logging"
)

var (
	verbose bool

	logger      = zap.NewNop()
	application *app.App
)

var rootCmd = &cobra.Command{
	Use:   "isovisor",
	Short: "ISO F10-02 / F10-03 trial register and report generator",
	Long: `isovisor records product design trials (ISO form F10-02) with their
validation checklist (F10-03) in a flat table, and turns that table into
per-request reports as CSV or as a multi-sheet Excel workbook.

Run "isovisor serve" for the web interface, or use the table commands on a
CSV file directly.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, level, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}
	logger = l

	a, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	application = a
	logger.Debug("configuration loaded",
		zap.String("store", cfg.StoreDriver),
		zap.String("archive", cfg.Archive.Driver),
		zap.String("csv_encoding", cfg.CSVEncoding))
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if application != nil {
		if err := application.Close(context.Background()); err != nil {
			logger.Warn("flushing metrics", zap.Error(err))
		}
	}
	_ = logger.Sync()
}
