package config_test

import (
	"log/slog"
	"strings"
	"testing"

	"tasklist/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT", "APP_ENV", "LOG_LEVEL", "LOG_FILE", "LOG_JOURNAL",
		"STORE_DRIVER", "DATA_DIR", "STORE_NAMESPACE",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"AUTH_MODE", "AUTH_SECRET",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := config.Load()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ServerPort", cfg.ServerPort, "8080"},
		{"AppEnv", cfg.AppEnv, "local"},
		{"LogLevel", cfg.LogLevel, "info"},
		{"Store.Driver", cfg.Store.Driver, "file"},
		{"Store.Namespace", cfg.Store.Namespace, "tasklist:"},
		{"Auth.Mode", cfg.Auth.Mode, "none"},
		{"DB.Host", cfg.Store.DB.Host, "localhost"},
		{"DB.Port", cfg.Store.DB.Port, "5432"},
		{"DB.User", cfg.Store.DB.User, "tasklist"},
		{"DB.Name", cfg.Store.DB.Name, "tasklist"},
		{"DB.SSLMode", cfg.Store.DB.SSLMode, "disable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}

	t.Run("DataDir", func(t *testing.T) {
		if cfg.Store.DataDir == "" {
			t.Error("expected a non-empty default data dir")
		}
	})
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("AUTH_MODE", "token")
	t.Setenv("AUTH_SECRET", "s3cret")
	t.Setenv("LOG_JOURNAL", "true")

	cfg := config.Load()

	if cfg.ServerPort != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.ServerPort)
	}
	if cfg.Store.Driver != "postgres" {
		t.Errorf("expected driver postgres, got %s", cfg.Store.Driver)
	}
	if cfg.Auth.Mode != "token" || cfg.Auth.Secret != "s3cret" {
		t.Errorf("unexpected auth config: %+v", cfg.Auth)
	}
	if !cfg.LogJournal {
		t.Error("expected LogJournal=true")
	}
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		clearEnv(t)
		return config.Load()
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"valid defaults", func(c *config.Config) {}, ""},
		{"bad port", func(c *config.Config) { c.ServerPort = "abc" }, "SERVER_PORT"},
		{"bad env", func(c *config.Config) { c.AppEnv = "staging" }, "APP_ENV"},
		{"bad driver", func(c *config.Config) { c.Store.Driver = "redis" }, "STORE_DRIVER"},
		{"file driver without dir", func(c *config.Config) { c.Store.DataDir = "" }, "DATA_DIR"},
		{"bad auth mode", func(c *config.Config) { c.Auth.Mode = "basic" }, "AUTH_MODE"},
		{"token mode without secret", func(c *config.Config) { c.Auth.Mode = "token" }, "AUTH_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := config.Config{LogLevel: tt.level}
			if got := cfg.ParseLogLevel(); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	db := config.DBConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "tasklist",
		Password: "p@ss",
		Name:     "tasklist",
		SSLMode:  "disable",
	}

	dsn := db.DSN()
	for _, want := range []string{"postgres://", "localhost:5432", "sslmode=disable", "tasklist"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("expected DSN to contain %s, got %s", want, dsn)
		}
	}
	if strings.Contains(dsn, "p@ss@") {
		t.Error("expected password to be escaped in DSN")
	}
}
