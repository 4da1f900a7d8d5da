package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	platformerrors "matmind-server-go/internal/platform/errors"
)

const defaultConfigPath = ".config.yaml"

// Loader reads configuration from a yaml file with environment overrides.
type Loader struct {
	useDotEnv bool
	path      string
}

// NewLoader creates a loader reading the default config path.
func NewLoader() *Loader {
	return &Loader{
		useDotEnv: true,
		path:      defaultConfigPath,
	}
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// WithPath overrides the configuration file path (useful for tests).
func (l *Loader) WithPath(path string) *Loader {
	if path != "" {
		l.path = path
	}
	return l
}

// Load builds the configuration: defaults, then yaml file, then environment.
func (l *Loader) Load() (*Config, error) {
	if l.useDotEnv {
		if err := godotenv.Load(); err != nil {
			fmt.Println("no .env file found, using system environment")
		}
	}

	cfg := DefaultConfig()

	if data, err := os.ReadFile(l.path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, platformerrors.Wrap(
				platformerrors.KindConfig,
				"load",
				fmt.Sprintf("failed to parse %s", l.path),
				err,
			)
		}
	} else if !os.IsNotExist(err) {
		return nil, platformerrors.Wrap(
			platformerrors.KindConfig, "load", "failed to read config file", err)
	}

	applyEnvOverrides(cfg)

	if err := l.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.Auth.Secret = os.Getenv("MATMIND_JWT_SECRET")
	if key := os.Getenv("MATMIND_LLM_API_KEY"); key != "" {
		cfg.LLM.APIKey = key
	}
	if url := os.Getenv("MATMIND_LLM_URL"); url != "" {
		cfg.LLM.BaseURL = url
	}
	if addr := os.Getenv("MATMIND_REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
		cfg.Redis.Enabled = true
	}
	if dsn := os.Getenv("MATMIND_DB_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if port := os.Getenv("MATMIND_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if os.Getenv("MATMIND_ENV") == "production" {
		cfg.Auth.SecureCookie = true
	}
}

// Validate rejects configurations the server cannot safely start with.
// A missing signing secret is startup-fatal, never a per-request failure.
func (l *Loader) Validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return platformerrors.New(
			platformerrors.KindConfig,
			"validate",
			fmt.Sprintf("invalid server port: %d", cfg.Server.Port),
		)
	}
	if cfg.Auth.Secret == "" {
		return platformerrors.New(
			platformerrors.KindConfig,
			"validate",
			"MATMIND_JWT_SECRET must be set",
		)
	}
	if len(cfg.Auth.Secret) < 32 {
		return platformerrors.New(
			platformerrors.KindConfig,
			"validate",
			"MATMIND_JWT_SECRET must be at least 32 bytes",
		)
	}
	if cfg.Auth.SessionTTL <= 0 {
		return platformerrors.New(
			platformerrors.KindConfig, "validate", "session_ttl must be positive")
	}
	return nil
}
