package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/set-challenge/pkg/config"
	"github.com/set-challenge/pkg/telemetry"
	"github.com/set-challenge/pkg/utils"
)

var (
	// Global flags
	verbose    bool
	configPath string

	appConfig *config.Config
	logger    utils.Logger

	telemetryShutdown telemetry.ShutdownFunc
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "set-challenge",
	Short: "Count Set-free decks of the Set card game",
	Long: `set-challenge answers the Set Challenge: how many k-card decks drawn
from the 81-card Set pack contain no valid Set?

The count command runs the search engine for a configurable deck size,
optionally constrained by cards every deck must contain (--include) and
cards no deck may contain (--exclude).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		appConfig = cfg

		logLevel := utils.ParseLogLevel(cfg.Log.Level)
		if verbose {
			logLevel = utils.LevelDebug
		}
		if cfg.Log.OutputPath != "" {
			logger, err = utils.NewFileLogger(logLevel, cfg.Log.OutputPath)
			if err != nil {
				return err
			}
		} else {
			logger = utils.NewDefaultLogger(logLevel, os.Stderr)
		}

		shutdown, err := telemetry.Init(cmd.Context())
		if err != nil {
			logger.Warn("telemetry init failed: %v", err)
			return nil
		}
		telemetryShutdown = shutdown
		if telemetry.Enabled() {
			logger.Debug("telemetry enabled")
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if telemetryShutdown != nil {
			return telemetryShutdown(context.Background())
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: config.yaml in standard locations)")

	binName := BinName()
	rootCmd.Example = `  # Count 4-card Set-free decks over the full pack
  ` + binName + ` count --deck-size 4

  # Use the single-threaded reference engine
  ` + binName + ` count --deck-size 3 --algorithm basic

  # Only decks containing cards 1,3,5 and avoiding card 0
  ` + binName + ` count --deck-size 7 --include 1,3,5 --exclude 0

  # Tune parallelism and batch size
  ` + binName + ` count --deck-size 12 --workers 16 --batch-size 2000`
}

// GetLogger returns the configured logger.
func GetLogger() utils.Logger {
	return logger
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
