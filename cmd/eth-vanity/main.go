package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/screa/eth-vanity/internal/config"
	"github.com/screa/eth-vanity/internal/console"
	logpkg "github.com/screa/eth-vanity/internal/logger"
	"github.com/screa/eth-vanity/internal/store"
	minerpkg "github.com/screa/eth-vanity/pkg/miner"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "eth-vanity",
		Short: "Ethereum vanity address miner for repeated-character suffixes",
		Long: `Generates random secp256k1 key pairs until the Ethereum address ends in
a run of one repeated hex character, and appends every match to a result file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMiner(cmd, cfg)
		},
	}

	flags := rootCmd.Flags()
	flags.IntVarP(&cfg.MinRun, "min-repeats", "c", config.DefaultMinRun, "Minimum number of repeated characters at the end of the address")
	flags.IntVarP(&cfg.Workers, "threads", "t", runtime.NumCPU(), "Number of worker goroutines")
	flags.IntVarP(&cfg.BatchSize, "batch-size", "b", config.DefaultBatchSize, "Addresses generated per batch")
	flags.IntVar(&cfg.StatsInterval, "stats-interval", config.DefaultStatsInterval, "Seconds between progress lines")
	flags.StringVarP(&cfg.Output, "output", "o", config.DefaultOutput, "File the results are appended to")
	flags.IntVarP(&cfg.Count, "count", "l", 0, "Number of addresses to find (0 = unlimited)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	flags.StringVar(&cfg.LogFile, "log-file", "", "Log file (default: stderr)")
	flags.BoolVar(&cfg.NoColor, "no-color", false, "Disable coloured output")

	rootCmd.AddCommand(newVerifyCmd())

	return rootCmd
}

func runMiner(cmd *cobra.Command, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	out := console.New(cmd.OutOrStdout(), cfg.NoColor)
	for _, w := range cfg.Warnings() {
		logger.Warnf("%s", w)
		out.Warning(w)
	}
	out.Banner(cfg)

	logger.Infof("starting search with %d workers, batch size %d, target: %s",
		cfg.Workers, cfg.BatchSize, cfg.GetTargetDescription())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	miner := minerpkg.NewMiner(cfg, logger, out, store.NewFileStore(cfg.Output))
	totals, err := miner.Run(ctx)

	switch {
	case err == nil:
		logger.Infof("search complete: %d found", totals.Found)
	case errors.Is(err, context.Canceled):
		logger.Infof("search stopped by user after %d found", totals.Found)
	case errors.Is(err, minerpkg.ErrRoundExhausted):
		logger.Warnf("search ended early: %v", err)
	default:
		return err
	}
	return nil
}

func setupLogging(cfg *config.Config) (*logpkg.Logger, func(), error) {
	var (
		logger  *logpkg.Logger
		closeFn = func() {}
	)

	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger = logpkg.NewWriter(file)
		closeFn = func() { _ = file.Close() }
	} else {
		logger = logpkg.New()
	}

	logger.SetVerbose(cfg.Verbose)
	return logger, closeFn, nil
}
