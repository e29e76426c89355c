package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/pfrederiksen/pgconf-watch/internal/config"
	"github.com/pfrederiksen/pgconf-watch/internal/logger"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// options holds flag values for one invocation
type options struct {
	configFile string
	dataFile   string
	sourceURL  string
	format     string
	sortOrder  string
	dryRun     bool
	refresh    bool
	verbose    bool
}

// NewRootCmd creates the root command reading configuration from the process environment
func NewRootCmd() *cobra.Command {
	return newRootCmd(os.Getenv)
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pgconf-watch",
		Short: "Report changes to the PostgreSQL conference listing",
		Long: `A CLI tool to watch the PostgreSQL conference news archive.
Extracts conference listings, compares them with the previous run, and files a
GitHub issue describing added, removed, and updated conferences.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, getenv)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.dataFile, "data-file", "", "Snapshot file (default "+config.DefaultDataFile+")")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging and metrics")

	cmd.Flags().StringVar(&opts.sourceURL, "url", "", "Conference listing URL (default "+config.DefaultSourceURL+")")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the issue instead of filing it")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "Save the snapshot without notifying")

	cmd.AddCommand(newShowCmd(opts, getenv))
	cmd.AddCommand(newCalendarCmd(opts, getenv))

	return cmd
}

// loadConfig layers flags over the file and environment configuration
func loadConfig(opts *options, getenv func(string) string) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile, getenv)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if opts.dataFile != "" {
		cfg.DataFile = opts.dataFile
	}
	if opts.sourceURL != "" {
		cfg.SourceURL = opts.sourceURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// setupLogging points the default logger at the command's stderr
func setupLogging(cmd *cobra.Command, cfg *config.Config, verbose bool) {
	level := logger.ParseLevel(cfg.LogLevel)
	if verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
}

func parseFormat(raw string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(raw)))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", raw)
	}
	return format, nil
}

// runCheck is the main command logic
func runCheck(cmd *cobra.Command, opts *options, getenv func(string) string) error {
	format, err := parseFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts, getenv)
	if err != nil {
		return err
	}
	setupLogging(cmd, cfg, opts.verbose)

	runner, err := NewRunner(cmd.Context(), cfg, RunOptions{
		DryRun:  opts.dryRun,
		Refresh: opts.refresh,
		Out:     cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	result, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	if opts.verbose {
		writeMetrics(cmd.ErrOrStderr(), logger.GetMetricsSnapshot())
	}

	if opts.refresh && format == FormatText {
		fmt.Fprintln(cmd.OutOrStdout(), "Snapshot refreshed successfully.")
		return nil
	}

	if err := WriteOutput(cmd.OutOrStdout(), result, format, opts.verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
