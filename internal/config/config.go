package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

var validStoreDrivers = map[string]bool{
	"file":     true,
	"postgres": true,
	"memory":   true,
}

var validAuthModes = map[string]bool{
	"none":  true,
	"token": true,
}

type Config struct {
	ServerPort string
	AppEnv     string
	LogLevel   string
	LogFile    string
	LogJournal bool
	Store      StoreConfig
	Auth       AuthConfig
}

type StoreConfig struct {
	Driver    string
	DataDir   string
	Namespace string
	DB        DBConfig
}

type AuthConfig struct {
	Mode   string
	Secret string
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	if !validStoreDrivers[c.Store.Driver] {
		return fmt.Errorf("invalid STORE_DRIVER %q: must be one of file, postgres, memory", c.Store.Driver)
	}
	if c.Store.Driver == "file" && c.Store.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required when STORE_DRIVER is file")
	}
	if !validAuthModes[c.Auth.Mode] {
		return fmt.Errorf("invalid AUTH_MODE %q: must be none or token", c.Auth.Mode)
	}
	if c.Auth.Mode == "token" && c.Auth.Secret == "" {
		return fmt.Errorf("AUTH_SECRET is required when AUTH_MODE is token")
	}
	return nil
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode)),
	}
	return u.String()
}

func Load() Config {
	return Config{
		ServerPort: envOrDefault("SERVER_PORT", "8080"),
		AppEnv:     envOrDefault("APP_ENV", "local"),
		LogLevel:   envOrDefault("LOG_LEVEL", "info"),
		LogFile:    os.Getenv("LOG_FILE"),
		LogJournal: strings.EqualFold(envOrDefault("LOG_JOURNAL", "false"), "true"),
		Store: StoreConfig{
			Driver:    envOrDefault("STORE_DRIVER", "file"),
			DataDir:   envOrDefault("DATA_DIR", DefaultDataDir()),
			Namespace: envOrDefault("STORE_NAMESPACE", "tasklist:"),
			DB: DBConfig{
				Host:     envOrDefault("DB_HOST", "localhost"),
				Port:     envOrDefault("DB_PORT", "5432"),
				User:     envOrDefault("DB_USER", "tasklist"),
				Password: envOrDefault("DB_PASSWORD", "tasklist"),
				Name:     envOrDefault("DB_NAME", "tasklist"),
				SSLMode:  envOrDefault("DB_SSLMODE", "disable"),
			},
		},
		Auth: AuthConfig{
			Mode:   envOrDefault("AUTH_MODE", "none"),
			Secret: os.Getenv("AUTH_SECRET"),
		},
	}
}

// DefaultDataDir returns the default location of the file store.
// Uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tasklist")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "tasklist-data"
	}
	return filepath.Join(home, ".local", "share", "tasklist")
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
