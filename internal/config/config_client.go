package config

import (
	"errors"
	"flag"
	"fmt"
	"time"
)

// Client defaults.
const (
	DefaultClientAddress        = "http://localhost:8080"
	DefaultClientRequestTimeout = 10 * time.Second
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the API server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// RequestTimeout is the default timeout for outbound client requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the top-level configuration of the command-line client.
type ClientConfig struct {
	// Adapter contains client transport address and timeout.
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`
	// Token is the bearer token sent with authenticated requests.
	// Env: AGRO_TOKEN
	Token string `env:"AGRO_TOKEN"`
}

// GetClientConfig builds and validates the client configuration from
// defaults, the .env file, environment variables and flags found in args,
// in increasing priority. It returns the positional arguments left after
// flag parsing (the client command and its operands).
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	cfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    DefaultClientAddress,
			RequestTimeout: DefaultClientRequestTimeout,
		},
	}

	var errs []error
	if err := loadDotEnv(dotEnvPath()); err != nil {
		errs = append(errs, err)
	}
	if err := parseEnv(cfg); err != nil {
		errs = append(errs, err)
	}

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&cfg.Adapter.HTTPAddress, "a", cfg.Adapter.HTTPAddress, "API base URL")
	fs.StringVar(&cfg.Token, "t", cfg.Token, "Bearer token")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "timeout", cfg.Adapter.RequestTimeout, "Request timeout")
	if err := fs.Parse(args); err != nil {
		errs = append(errs, fmt.Errorf("error parsing flags: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, nil, fmt.Errorf("error occurred during building client config: %w", err)
	}

	return cfg, fs.Args(), cfg.validate()
}
