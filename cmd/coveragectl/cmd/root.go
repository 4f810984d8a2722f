package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Kamar-Folarin/coverage-monitor/internal/config"
	"github.com/Kamar-Folarin/coverage-monitor/internal/metrics"
)

type options struct {
	url     string
	token   string
	timeout time.Duration
	verbose bool
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "coveragectl",
		Short:         "Command line interface for the coverage metrics API",
		Long:          `Fetches coverage, connector progress, sync status and index status from the metrics API once and prints them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaults := config.DefaultMetricsAPIConfig()
	rootCmd.PersistentFlags().StringVar(&opts.url, "url", envOr("METRICS_API_URL", defaults.BaseURL), "Metrics API base URL")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("METRICS_API_TOKEN"), "Metrics API bearer token")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaults.Timeout, "Request timeout")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log requests to stderr")

	rootCmd.AddCommand(
		newCoverageCmd(opts),
		newProgressCmd(opts),
		newStatusCmd(opts),
		newIndexCmd(opts),
	)
	return rootCmd
}

// Execute runs the root command
func Execute() {
	_ = godotenv.Load()

	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *options) client(cmd *cobra.Command) *metrics.Client {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(logrus.WarnLevel)
	if o.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return metrics.NewClient(&config.MetricsAPIConfig{
		BaseURL: o.url,
		Token:   o.token,
		Timeout: o.timeout,
	}, logger)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
