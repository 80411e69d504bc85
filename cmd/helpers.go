package cmd

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/string-analyzer/internal/config"
	"github.com/ziadkadry99/string-analyzer/internal/db"
	"github.com/ziadkadry99/string-analyzer/internal/logger"
	"github.com/ziadkadry99/string-analyzer/internal/metrics"
	"github.com/ziadkadry99/string-analyzer/internal/records"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "loading config"), "run `stranalyzer init` to create a config file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", cfgFile)
	}
	return cfg, nil
}

// newLogger builds the process logger. --verbose forces debug level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return logger.New(level, cfg.Log.JSON)
}

// openService opens the configured database and builds a records.Service on
// it. The caller closes the returned DB.
func openService(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) (*records.Service, *db.DB, error) {
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening database")
	}
	svc := records.NewService(records.NewStore(database),
		records.WithLogger(log),
		records.WithMetrics(m),
	)
	return svc, database, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
