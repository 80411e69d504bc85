package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to stranalyzer! Let's configure the service.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, errors.Wrap(err, "port")
	}
	cfg.Server.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 2. Database location.
	dbPrompt := promptui.Prompt{
		Label:   "SQLite database path",
		Default: cfg.Database.Path,
	}
	if cfg.Database.Path, err = dbPrompt.Run(); err != nil {
		return nil, errors.Wrap(err, "database path")
	}

	// 3. Log level.
	levelPrompt := promptui.Select{
		Label: "Log level",
		Items: []string{"info", "debug", "warn", "error"},
	}
	if _, cfg.Log.Level, err = levelPrompt.Run(); err != nil {
		return nil, errors.Wrap(err, "log level")
	}

	// 4. Log format.
	formatPrompt := promptui.Select{
		Label: "Log format",
		Items: []string{"console (human readable)", "json (structured)"},
	}
	formatIdx, _, err := formatPrompt.Run()
	if err != nil {
		return nil, errors.Wrap(err, "log format")
	}
	cfg.Log.JSON = formatIdx == 1

	// 5. Metrics and CORS.
	if cfg.Metrics.Enabled, err = confirm("Expose Prometheus metrics on /metrics"); err != nil {
		return nil, errors.Wrap(err, "metrics")
	}
	if cfg.Server.AllowAllOrigins, err = confirm("Allow requests from any origin (CORS)"); err != nil {
		return nil, errors.Wrap(err, "cors")
	}

	// 6. Extra import excludes.
	excludePrompt := promptui.Prompt{
		Label:   "Extra import exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, errors.Wrap(err, "exclude patterns")
	}
	if extra := SplitAndTrim(excludeStr); len(extra) > 0 {
		cfg.Import.Exclude = append(append([]string{}, DefaultExcludes...), extra...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, errors.Wrap(err, "saving config")
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// confirm asks a yes/no question. Answering no is not an error.
func confirm(label string) (bool, error) {
	p := promptui.Prompt{Label: label, IsConfirm: true}
	_, err := p.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	return err == nil, err
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 65535 {
		return errors.New("port must be a number between 1 and 65535")
	}
	return nil
}

// SplitAndTrim splits a comma-separated list and drops empty entries.
func SplitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
