// Package commands implements the wrapped CLI.
package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/listenupapp/shelfwrapped/internal/config"
	"github.com/listenupapp/shelfwrapped/internal/di"
	"github.com/listenupapp/shelfwrapped/internal/logger"
	"github.com/listenupapp/shelfwrapped/internal/service"
)

var (
	year      int
	asJSON    bool
	logLevel  string
	pageSize  int
	workers   int
	envFile   string
	genreRows int
)

var rootCmd = &cobra.Command{
	Use:   "wrapped <profileID>",
	Short: "Prints the yearly reading recap of a public reading-tracker profile.",
	Args:  cobra.ExactArgs(1),
	RunE:  runWrapped,

	SilenceUsage: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.IntVar(&year, "year", time.Now().Year(), "Recap year")
	flags.BoolVar(&asJSON, "json", false, "Print the raw recap as JSON")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.IntVar(&pageSize, "page-size", 0, "Items per feed page (default from config)")
	flags.IntVar(&workers, "workers", 0, "Concurrent genre lookups (default from config)")
	flags.StringVar(&envFile, "env-file", ".env", "Path to .env file")
	flags.IntVar(&genreRows, "genres", 5, "Number of genres to show")
}

// ExecuteContext runs the root command and exits non-zero on failure.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runWrapped(cmd *cobra.Command, args []string) error {
	profileID := args[0]

	// Env, .env and defaults still apply; cobra owns the command line.
	cfg, err := config.Load(flag.NewFlagSet("wrapped", flag.ContinueOnError), []string{"-env-file", envFile})
	if err != nil {
		return err
	}
	if pageSize > 0 {
		cfg.Upstream.PageSize = pageSize
	}
	if workers > 0 {
		cfg.Upstream.Workers = workers
	}

	log := logger.New(logger.Config{
		Writer:      os.Stderr,
		Level:       logger.ParseLevel(logLevel),
		Environment: cfg.App.Environment,
	})

	injector := di.NewPipelineContainer(cfg, log)
	defer injector.Shutdown()

	svc, err := do.Invoke[*service.WrappedService](injector)
	if err != nil {
		return fmt.Errorf("wire pipeline: %w", err)
	}

	recapLog := log.ForRecap(profileID, year)
	recapLog.Info("building recap")
	start := time.Now()

	bundle, err := svc.Wrapped(cmd.Context(), profileID, year, service.WrappedOptions{})
	if err != nil {
		return err
	}
	recapLog.Info("recap ready", "elapsed", time.Since(start).Round(time.Millisecond))

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(bundle)
	}

	RenderBundle(out, bundle, genreRows)
	return nil
}
