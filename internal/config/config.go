package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all portal configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	SuperAdmin SuperAdminConfig `yaml:"super_admin"`
	Log        LogConfig        `yaml:"log"`
}

type ServerConfig struct {
	Port          string `yaml:"port"`
	SessionSecret string `yaml:"session_secret"`
	SiteURL       string `yaml:"site_url"` // public base URL used in feed links
}

// DatabaseConfig.URL is a postgres DSN, or "sqlite:<path>" for a local file.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// SuperAdminConfig is the distinguished moderator account seeded on migrate.
type SuperAdminConfig struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          "8080",
			SessionSecret: "secret_key_change_me",
			SiteURL:       "http://localhost:8080",
		},
		Database: DatabaseConfig{
			URL: "host=localhost user=postgres password=postgres dbname=campushub port=5432 sslmode=disable",
		},
		SuperAdmin: SuperAdminConfig{
			Name:     "Portal Admin",
			Email:    "admin@campus.edu",
			Password: "admin_change_me",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds the configuration from defaults, an optional YAML file, a .env
// file in the working directory and finally the process environment.
// An empty path skips the YAML step; a missing file at an explicit path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		c.Server.SessionSecret = v
	}
	if v := os.Getenv("SITE_URL"); v != "" {
		c.Server.SiteURL = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("SUPER_ADMIN_NAME"); v != "" {
		c.SuperAdmin.Name = v
	}
	if v := os.Getenv("SUPER_ADMIN_EMAIL"); v != "" {
		c.SuperAdmin.Email = v
	}
	if v := os.Getenv("SUPER_ADMIN_PASSWORD"); v != "" {
		c.SuperAdmin.Password = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("server.port is required")
	}
	if strings.TrimSpace(c.Database.URL) == "" {
		return errors.New("database.url is required")
	}
	if !strings.Contains(c.SuperAdmin.Email, "@") {
		return fmt.Errorf("super_admin.email %q is not an email address", c.SuperAdmin.Email)
	}
	if len(c.SuperAdmin.Password) < 6 {
		return errors.New("super_admin.password must be at least 6 characters")
	}
	return nil
}
