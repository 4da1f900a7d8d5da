package config

import "time"

// DefaultConfig returns the configuration used when no yaml file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			IP:   "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
			Dir:   "data/logs",
			File:  "server.log",
		},
		Auth: AuthConfig{
			SessionTTL:   Duration(time.Hour),
			CookieName:   "token",
			SecureCookie: false,
		},
		Database: DatabaseConfig{
			DSN: "data/matmind.db",
		},
		Redis: RedisConfig{
			Enabled: false,
			Addr:    "127.0.0.1:6379",
			Prefix:  "matmind",
			PlanTTL: Duration(24 * time.Hour),
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			MaxTokens:   2048,
			Temperature: 0.7,
			Timeout:     Duration(60 * time.Second),
		},
		Web: WebConfig{
			StaticDir:    "./web",
			AllowOrigins: []string{"*"},
		},
	}
}
