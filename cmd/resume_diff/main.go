// Package main provides the entry point for the resume diff CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/resume-diff/internal/config"
	"github.com/jonathan/resume-diff/internal/observability"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_diff",
	Short: "Compare an original and an optimized resume",
	Long: `resume_diff shows what an optimization run changed in a resume: every field of both
versions, marked added, removed, modified or unchanged according to the structural diff.

Configuration can be loaded from a JSON file using --config or the RESUME_DIFF_CONFIG
environment variable. Command-line arguments override config file values.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	rootConfigPath string
	rootVerbose    bool
)

// Set by setup before any command runs.
var (
	appConfig config.Config
	logger    = observability.Discard()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file (defaults to RESUME_DIFF_CONFIG env var)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
}

// setup loads the config file, applies defaults and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	path := rootConfigPath
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}

	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = rootVerbose
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())

	level, err := observability.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	appConfig = cfg
	logger = observability.NewLogger(cmd.ErrOrStderr(), level)
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
