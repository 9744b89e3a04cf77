package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so that durations can be written as strings
// ("30s", "24h") in JSON and YAML config files.
type Duration struct {
	time.Duration
}

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	return d.set(v)
}

// UnmarshalYAML accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}

	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch value := v.(type) {
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
	case float64:
		d.Duration = time.Duration(value)
	case int:
		d.Duration = time.Duration(value)
	default:
		return fmt.Errorf("invalid duration type %T", v)
	}

	return nil
}

// fileConfig mirrors [StructuredConfig] with file-friendly tags and types.
type fileConfig struct {
	App struct {
		TokenSignKey     string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenHashKey     string   `json:"token_hash_key" yaml:"token_hash_key"`
		TokenIssuer      string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration    Duration `json:"token_duration" yaml:"token_duration"`
		PasswordHashCost int      `json:"password_hash_cost" yaml:"password_hash_cost"`
		LogLevel         string   `json:"log_level" yaml:"log_level"`
		Version          string   `json:"version" yaml:"version"`
	} `json:"app" yaml:"app"`
	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
	} `json:"storage" yaml:"storage"`
	Server struct {
		HTTPAddress     string   `json:"address" yaml:"address"`
		RequestTimeout  Duration `json:"request_timeout" yaml:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	} `json:"server" yaml:"server"`
	Workers struct {
		TokenPruneInterval Duration `json:"token_prune_interval" yaml:"token_prune_interval"`
	} `json:"workers" yaml:"workers"`
}

// parseFile reads a config file and converts it to a [StructuredConfig].
// The format is chosen by extension: .yaml and .yml are YAML, anything else
// is JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %q: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfigFile, path, err)
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:     fc.App.TokenSignKey,
			TokenHashKey:     fc.App.TokenHashKey,
			TokenIssuer:      fc.App.TokenIssuer,
			TokenDuration:    fc.App.TokenDuration.Duration,
			PasswordHashCost: fc.App.PasswordHashCost,
			LogLevel:         fc.App.LogLevel,
			Version:          fc.App.Version,
		},
		Storage: Storage{
			DB: DB{DSN: fc.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:     fc.Server.HTTPAddress,
			RequestTimeout:  fc.Server.RequestTimeout.Duration,
			ShutdownTimeout: fc.Server.ShutdownTimeout.Duration,
		},
		Workers: Workers{
			TokenPruneInterval: fc.Workers.TokenPruneInterval.Duration,
		},
	}
}
