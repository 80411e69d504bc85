package config

import "time"

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = ".stranalyzer.yml"

// DefaultExcludes are glob patterns skipped by the import command.
var DefaultExcludes = []string{
	".git/**",
	"**/node_modules/**",
	"**/vendor/**",
	"**/*.db",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			RequestTimeout: 60 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "data/strings.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Import: ImportConfig{
			Exclude: append([]string(nil), DefaultExcludes...),
		},
	}
}
