package config

// Config represents the application configuration
type Config struct {
	Lint        LintConfig        `mapstructure:"lint" yaml:"lint"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// LintConfig contains lint pass settings
type LintConfig struct {
	// Level is the minimum severity to report: "error", "warning" or
	// "suggestion"
	Level string `mapstructure:"level" yaml:"level"`
	// Strict escalates every warning to an error
	Strict bool `mapstructure:"strict" yaml:"strict"`
	// PackListFile points to a newline-separated list of published paths
	PackListFile string `mapstructure:"pack_list_file" yaml:"pack_list_file"`
}

// ConcurrencyConfig contains concurrency settings
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and applies defaults for
// invalid values
func (c *Config) Validate() error {
	switch c.Lint.Level {
	case "error", "warning", "suggestion":
	default:
		c.Lint.Level = DefaultLevel
	}
	if c.Concurrency.Workers < 1 {
		c.Concurrency.Workers = DefaultWorkers
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format != "json" && c.Logging.Format != "pretty" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}
