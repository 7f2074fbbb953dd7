package commands

import (
	"github.com/spf13/cobra"

	"github.com/contactkeval/option-leverage/internal/config"
	"github.com/contactkeval/option-leverage/internal/logger"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "option-leverage",
	Short: "Compare the leverage of buying calls versus holding the stock",
	Long: `option-leverage computes, for an underlying and a target price
scenario, the leverage each call strike offers over holding the stock
outright, along with the scenario-adjusted leverage and break-even
price per strike.

Provider selection (checked in order):
  POLYGON_API_KEY set  - Massive/Polygon market data
  DATA_DIR set         - local CSV chains
  otherwise            - deterministic synthetic chains

Examples:
  option-leverage analyze --symbol AAPL --target PCT:20
  option-leverage expirations --symbol AAPL
  option-leverage serve --port 8080`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads configuration and applies logging setup.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger.Setup(level, cfg.LogFormat)

	return cfg, nil
}
