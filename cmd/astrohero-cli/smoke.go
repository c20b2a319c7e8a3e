package main

import (
	"context"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/astrohero/internal/smoke"
	"github.com/okian/astrohero/pkg/logger"
)

// Default smoke configuration constants.
const (
	defaultSubjects    = 200
	defaultRepeats     = 3
	defaultBatchSize   = 20
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func newSmokeCmd() *cobra.Command {
	cfg := &smoke.Config{}
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Check a running server for deterministic answers",
		Long: `Generates random subjects, submits each one several times from concurrent
workers and through the batch endpoint, then verifies every answer for a subject
is identical.

Examples:
  astrohero-cli smoke --url http://localhost:8080
  astrohero-cli smoke --subjects 1000 --workers 16 --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), defaultTestTimeout)
			defer cancel()

			if cfg.Verbose {
				if err := logger.Init(); err != nil {
					return err
				}
				cfg.Logger = logger.Named("smoke")
			}
			cfg.Output = cmd.OutOrStdout()
			_, err := smoke.Run(ctx, cfg)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", "http://localhost:8080", "Base URL of the service")
	f.IntVar(&cfg.Subjects, "subjects", defaultSubjects, "Number of distinct subjects")
	f.IntVar(&cfg.Repeats, "repeats", defaultRepeats, "Submissions per subject")
	f.IntVar(&cfg.BatchSize, "batch", defaultBatchSize, "Subjects per batch request (0 skips the batch pass)")
	f.IntVar(&cfg.Workers, "workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
	f.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	f.Uint64Var(&cfg.Seed, "seed", uint64(time.Now().UnixNano()), "Subject generator seed")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log progress and print every mismatch")
	return cmd
}
