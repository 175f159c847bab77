package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Rules struct {
		// Directory holds the persisted rule set (rules.json).
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"rules" yaml:"rules"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Suggest struct {
		MinOccurrences int `mapstructure:"min_occurrences" yaml:"min_occurrences"`
		MaxSuggestions int `mapstructure:"max_suggestions" yaml:"max_suggestions"`
	} `mapstructure:"suggest" yaml:"suggest"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then TXRULES_-prefixed environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.tx-rules")
	v.AddConfigPath(".tx-rules")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TXRULES")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A broken config file is worth a warning but not a failure;
			// defaults and env vars still apply.
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("rules.directory", "database")
	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("suggest.min_occurrences", 3)
	v.SetDefault("suggest.max_suggestions", 10)
}

func validateConfig(config *Config) error {
	switch strings.ToLower(config.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log level: %s", config.Log.Level)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv delimiter must be a single character, got %q", config.CSV.Delimiter)
	}

	if config.Suggest.MinOccurrences < 1 {
		return fmt.Errorf("suggest.min_occurrences must be at least 1")
	}
	if config.Suggest.MaxSuggestions < 1 {
		return fmt.Errorf("suggest.max_suggestions must be at least 1")
	}

	return nil
}
