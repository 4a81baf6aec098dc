package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/screa/eth-vanity/internal/config"
	logpkg "github.com/screa/eth-vanity/internal/logger"
	"github.com/screa/eth-vanity/internal/metrics"
	"github.com/screa/eth-vanity/internal/report"
	minerpkg "github.com/screa/eth-vanity/pkg/miner"
	"github.com/spf13/cobra"
)

// exitInterrupted is the conventional status for termination by SIGINT
const exitInterrupted = 130

func main() {
	var rootCmd = &cobra.Command{
		Use:   "eth-vanity [PATTERN...]",
		Short: "Ethereum vanity address generator",
		Long: `Generates random secp256k1 keypairs until the derived Ethereum address
matches one of the given patterns.

By default an address is accepted when its beginning matches one of the
patterns as a plain hex string. With --regexp the patterns are regular
expressions that may match anywhere in the address.

If no patterns are provided, they are read from standard input, one per line.
Every flag can also be set through an ETH_VANITY_<FLAG> environment variable.`,
		Args: cobra.ArbitraryArgs,
		Run:  runMiner,
	}

	config.RegisterFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runMiner(cmd *cobra.Command, args []string) {
	v, err := config.NewViper(cmd.Flags())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(v, args, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	report.ApplyColorChoice(cfg.Color)
	console := report.NewConsole(os.Stdout, cfg.Quiet)

	logger, closeLog := setupLogging(cfg)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		go func() {
			logger.Printf("Serving metrics on %s", cfg.MetricsAddr)
			if err := metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
				logger.Errorf("Metrics server: %v", err)
			}
		}()
	}

	miner, err := minerpkg.NewMiner(cfg, logger, console)
	if err != nil {
		if errors.Is(err, minerpkg.ErrNoPatterns) {
			console.Error("Please, provide at least one valid pattern.")
		} else {
			console.Error(err.Error())
		}
		closeLog()
		os.Exit(1)
	}

	logger.Printf("Starting eth-vanity with %d workers", cfg.Workers)
	logger.Printf("Target: %s", cfg.GetTargetDescription())
	console.Header(miner.Patterns().Len())

	err = miner.Run(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled) && miner.Completed() == 0:
		logger.Warnf("Received interrupt signal before any match was found.")
	case errors.Is(err, context.Canceled):
		logger.Println("Received interrupt signal. Mining stopped by user.")
	default:
		// a broken entropy source is not retried
		logger.Errorf("Mining failed: %v", err)
		console.Error(err.Error())
	}

	if code := exitCode(err, miner.Completed()); code != 0 {
		closeLog()
		os.Exit(code)
	}
}

// exitCode maps the outcome of a run to the process exit status. An
// interrupt only counts as success once at least one round has completed.
func exitCode(err error, completed int) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		if completed > 0 {
			return 0
		}
		return exitInterrupted
	default:
		return 1
	}
}

// setupLogging returns the diagnostic logger and a function closing its
// output file, if any
func setupLogging(cfg *config.Config) (*logpkg.Logger, func()) {
	level := zerolog.WarnLevel
	switch {
	case cfg.Verbose:
		level = zerolog.InfoLevel
	case cfg.Quiet:
		level = zerolog.ErrorLevel
	}

	if cfg.LogFile == "" {
		return logpkg.NewWriter(os.Stderr, logpkg.Options{Level: level}), func() {}
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	// a file gets everything down to info level
	if level > zerolog.InfoLevel {
		level = zerolog.InfoLevel
	}
	return logpkg.NewWriter(file, logpkg.Options{Level: level, JSON: true}), func() { _ = file.Close() }
}
