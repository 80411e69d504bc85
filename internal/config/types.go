package config

import "time"

// Config is the top-level stranalyzer configuration, corresponding to
// .stranalyzer.yml.
type Config struct {
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	Database DatabaseConfig `yaml:"database" koanf:"database"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
	Metrics  MetricsConfig  `yaml:"metrics" koanf:"metrics"`
	Import   ImportConfig   `yaml:"import" koanf:"import"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port" koanf:"port"`
	AllowAllOrigins bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	RequestTimeout  time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
}

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
	JSON  bool   `yaml:"json" koanf:"json"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" koanf:"enabled"`
}

// ImportConfig holds settings for the import command.
type ImportConfig struct {
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}
