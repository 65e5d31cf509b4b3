package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Default values
const (
	DefaultLevel     = "suggestion"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// DefaultWorkers bounds the concurrent checks of one pass
var DefaultWorkers = runtime.NumCPU()

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".packlint"
	}
	return filepath.Join(home, ".packlint")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Lint: LintConfig{
			Level:  DefaultLevel,
			Strict: false,
		},
		Concurrency: ConcurrencyConfig{
			Workers: DefaultWorkers,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
