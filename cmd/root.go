// =============================================================================
// Incident Report - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// (convert, report, process, validate, version) is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (incidents)
//   ├── convertCmd  (incidents convert)
//   ├── reportCmd   (incidents report)
//   ├── processCmd  (incidents process)
//   ├── validateCmd (incidents validate)
//   └── versionCmd  (incidents version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration file
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ginjaninja78/incident-report/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// defaultConfigFile is read when present and --config is not given.
const defaultConfigFile = "config.yaml"

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// cfg is the loaded configuration, available to every subcommand.
var cfg *config.Config

// logger is the structured logger, available to every subcommand.
var logger *zap.Logger

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "incidents",
	Short: "Incident Report - Convert incident logs to XML and report on them",
	Long: `Incident Report turns tabular incident logs (CSV or XLSX) into an XML
document and prints a fixed-width report of the incidences that fall in a
configured date window, ordered by date, priority and time of day.

Key Features:
  - Column labels sanitized into legal, unique XML element names
  - Field detection by content, so renamed columns still work
  - Multi-format date parsing and priority classification
  - Colored terminal output or plain text files
  - Batch processing with archival and summary logs

Example Usage:
  incidents convert --input log.csv --output log.xml
  incidents report --input log.xml
  incidents process --config ./config.yaml`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd == cmd.Root() {
			return nil
		}

		loaded, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = loaded

		logger, err = newLogger(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		defaultConfigFile,
		"Path to the configuration file (YAML or TOML)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadConfig reads the configuration file. A missing default file falls
// back to the built-in configuration; a missing explicit file is an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loaded, err := config.Load(cfgFile)
	if err == nil {
		return loaded, nil
	}

	if !cmd.Flags().Changed("config") && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}

	return nil, fmt.Errorf("failed to load config: %w", err)
}

// newLogger builds a production logger writing to stderr at level.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.DisableStacktrace = true

	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)

	return zcfg.Build()
}
