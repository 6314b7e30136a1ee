package config

import (
	"fmt"
	"strings"
	"time"
)

// ClientConfig is the configuration of the accountctl operator CLI. It is
// read from ACCOUNTCTL_* environment variables; per-command flags override
// it.
type ClientConfig struct {
	// ServerURL is the base URL of the account API.
	// Env: ACCOUNTCTL_SERVER_URL
	ServerURL string `env:"SERVER_URL" envDefault:"http://localhost:8080"`

	// RequestTimeout bounds a single API call.
	// Env: ACCOUNTCTL_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	// Token is the bearer token used for authenticated commands, as printed
	// by "accountctl login".
	// Env: ACCOUNTCTL_TOKEN
	Token string `env:"TOKEN"`

	// Debug enables debug logging to stderr.
	// Env: ACCOUNTCTL_DEBUG
	Debug bool `env:"DEBUG"`
}

const clientEnvPrefix = "ACCOUNTCTL_"

// GetClientConfig loads and validates the accountctl configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := parseEnvWithPrefix(cfg, clientEnvPrefix); err != nil {
		return nil, fmt.Errorf("error get client config: %w", err)
	}

	return cfg, cfg.validate()
}

func (cfg *ClientConfig) validate() error {
	if strings.TrimSpace(cfg.ServerURL) == "" {
		return fmt.Errorf("%w: empty server url", ErrInvalidClientConfigs)
	}
	if cfg.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidClientConfigs)
	}

	return nil
}
