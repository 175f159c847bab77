// Package root contains the root command for the application
package root

import (
	"fjacquet/tx-rules/internal/common"
	"fjacquet/tx-rules/internal/config"
	"fjacquet/tx-rules/internal/logging"
	"fjacquet/tx-rules/internal/rulestore"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	RulesDir string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "tx-rules",
		Short: "A CLI tool to transform imported transactions with user-defined rules.",
		Long: `tx-rules applies user-authored condition/action rules to financial
transactions during CSV import, mutating or suppressing each transaction
before it is written out. It also manages the persisted rule set and can
suggest new rules from transaction history.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to tx-rules!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()
			common.SetLogger(logging.NewLogrusAdapterFromLogger(Log))

			// Ensure CSV delimiter is updated after env variables are loaded
			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				common.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input CSV file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.RulesDir, "rules-dir", "r", "", "Directory holding the persisted rule set")
}

// OpenStore builds the rule store for a command, honoring the --rules-dir
// flag over the configured directory.
func OpenStore(cfg *config.Config, logger logging.Logger) *rulestore.Store {
	dir := SharedFlags.RulesDir
	if dir == "" {
		dir = cfg.Rules.Directory
	}
	return rulestore.New(rulestore.NewFileBackend(dir), logger)
}

// LoadConfig initializes the hierarchical configuration and applies the
// configured CSV delimiter. Configuration problems are fatal for a CLI run.
func LoadConfig() *config.Config {
	cfg, err := config.InitializeConfig()
	if err != nil {
		Log.Fatalf("Error loading configuration: %v", err)
	}
	if cfg.CSV.Delimiter != "" && os.Getenv("CSV_DELIMITER") == "" {
		common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
	}
	return cfg
}
