package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Session storage backends.
const (
	SessionBackendSQLite = "sqlite"
	SessionBackendFile   = "file"
)

// Config defines client and reference server configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
	DB      DBConfig      `yaml:"db"`
	Seed    SeedConfig    `yaml:"seed"`
}

type APIConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type SessionConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// SeedConfig is the account the reference server creates on startup.
type SeedConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		API: APIConfig{
			URL:     "http://localhost:8081",
			Timeout: 10 * time.Second,
		},
		Session: SessionConfig{
			Backend: SessionBackendSQLite,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8081,
		},
		DB: DBConfig{
			Path: "taskpane-server.db",
		},
		Seed: SeedConfig{
			Email:    "test@hahn.com",
			Password: "password123",
		},
	}

	if path := os.Getenv("TASKPANE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if url := os.Getenv("TASKPANE_API_URL"); url != "" {
		cfg.API.URL = url
	}
	if timeoutStr := os.Getenv("TASKPANE_API_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TASKPANE_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = timeout
	}
	if backend := os.Getenv("TASKPANE_SESSION_BACKEND"); backend != "" {
		cfg.Session.Backend = backend
	}
	if path := os.Getenv("TASKPANE_SESSION_PATH"); path != "" {
		cfg.Session.Path = path
	}
	if level := os.Getenv("TASKPANE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv("TASKPANE_LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}
	if host := os.Getenv("TASKPANE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("TASKPANE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TASKPANE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("TASKPANE_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if email := os.Getenv("TASKPANE_SEED_EMAIL"); email != "" {
		cfg.Seed.Email = email
	}
	if password := os.Getenv("TASKPANE_SEED_PASSWORD"); password != "" {
		cfg.Seed.Password = password
	}

	switch cfg.Session.Backend {
	case SessionBackendSQLite, SessionBackendFile:
	default:
		return Config{}, fmt.Errorf("invalid session backend %q", cfg.Session.Backend)
	}
	if cfg.API.Timeout <= 0 {
		return Config{}, fmt.Errorf("api timeout must be positive, got %s", cfg.API.Timeout)
	}
	if cfg.Session.Path == "" {
		path, err := defaultSessionPath(cfg.Session.Backend)
		if err != nil {
			return Config{}, err
		}
		cfg.Session.Path = path
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func defaultSessionPath(backend string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	name := "session.db"
	if backend == SessionBackendFile {
		name = "session"
	}
	return filepath.Join(dir, "taskpane", name), nil
}
