package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoader_Load(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, ".config.yaml")

	configContent := `
server:
  ip: "127.0.0.1"
  port: 9090
log:
  log_level: "debug"
auth:
  session_ttl: 30m
  cookie_name: "token"
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("MATMIND_JWT_SECRET", testSecret)

	loader := NewLoader().WithDotEnv(false).WithPath(configFile)
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.IP != "127.0.0.1" {
		t.Errorf("expected server IP 127.0.0.1, got %s", cfg.Server.IP)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected server port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Auth.SessionTTL.Std() != 30*time.Minute {
		t.Errorf("expected session ttl 30m, got %s", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.Secret != testSecret {
		t.Error("expected secret to be taken from environment")
	}
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("MATMIND_JWT_SECRET", testSecret)

	loader := NewLoader().WithDotEnv(false).WithPath(filepath.Join(t.TempDir(), "absent.yaml"))
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("expected defaults when config file absent, got %v", err)
	}
	if cfg.Auth.CookieName != "token" {
		t.Errorf("expected default cookie name, got %s", cfg.Auth.CookieName)
	}
	if cfg.Auth.SessionTTL.Std() != time.Hour {
		t.Errorf("expected default session ttl 1h, got %s", cfg.Auth.SessionTTL)
	}
}

func TestLoader_Validate(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(cfg *Config) { cfg.Auth.Secret = testSecret },
		},
		{
			name: "invalid server port",
			mutate: func(cfg *Config) {
				cfg.Auth.Secret = testSecret
				cfg.Server.Port = 70000
			},
			wantErr: "invalid server port",
		},
		{
			name:    "missing secret is fatal",
			mutate:  func(cfg *Config) {},
			wantErr: "MATMIND_JWT_SECRET must be set",
		},
		{
			name: "short secret is fatal",
			mutate: func(cfg *Config) {
				cfg.Auth.Secret = "short"
			},
			wantErr: "at least 32 bytes",
		},
		{
			name: "non-positive session ttl",
			mutate: func(cfg *Config) {
				cfg.Auth.Secret = testSecret
				cfg.Auth.SessionTTL = 0
			},
			wantErr: "session_ttl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := loader.Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnvOverrides_Production(t *testing.T) {
	t.Setenv("MATMIND_ENV", "production")
	t.Setenv("MATMIND_JWT_SECRET", testSecret)

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if !cfg.Auth.SecureCookie {
		t.Error("expected secure cookies in production")
	}
}
