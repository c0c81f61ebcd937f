package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"blitz/pkg/dispatch"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	URL         string        `yaml:"url" validate:"required,url"`
	Concurrency int           `yaml:"concurrency" validate:"min=1"`
	Requests    int           `yaml:"requests" validate:"min=0"`
	Output      string        `yaml:"output" validate:"oneof=text json"`
	Log         string        `yaml:"log"`
	LogLevel    string        `yaml:"log-level" validate:"omitempty,oneof=debug info warn error"`
	MetricsFile string        `yaml:"metrics-file"`
	History     HistoryConfig `yaml:"history"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Type    string `yaml:"type" validate:"omitempty,oneof=local mindb"` // local, mindb
	Path    string `yaml:"path" validate:"required_if=Enabled true"`
}

// Default mirrors the command line defaults.
func Default() *Config {
	return &Config{
		Concurrency: 1,
		Requests:    1000,
		Output:      "text",
		LogLevel:    "info",
		History: HistoryConfig{
			Type: "local",
			Path: "./history",
		},
	}
}

// LoadConfig reads a YAML file on top of Default. It does not validate.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	return cfg, nil
}

// Validate checks field constraints and that URL is something the dispatcher can hit.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return err
		}
		msgs := make([]string, 0, len(ve))
		for _, e := range ve {
			msgs = append(msgs, formatValidationError(e))
		}
		return fmt.Errorf("config validation failed: %s", strings.Join(msgs, ", "))
	}

	if _, err := dispatch.ParseTarget(c.URL); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// formatValidationError turns "Config.History.Path" into "history.path (required_if)".
func formatValidationError(e validator.FieldError) string {
	field := e.Field()
	if parts := strings.Split(e.StructNamespace(), "."); len(parts) >= 2 {
		field = strings.ToLower(strings.Join(parts[1:], "."))
	}

	switch e.Tag() {
	case "min", "oneof":
		return fmt.Sprintf("%s (%s=%s)", field, e.Tag(), e.Param())
	default:
		return fmt.Sprintf("%s (%s)", field, e.Tag())
	}
}
