package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "admin@campus.edu", cfg.SuperAdmin.Email)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "campushub.yaml")
	data := []byte(`
server:
  port: "9090"
database:
  url: "sqlite:portal.db"
super_admin:
  name: "Dean"
  email: "dean@campus.edu"
  password: "s3cret!"
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	t.Run("file values", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, "sqlite:portal.db", cfg.Database.URL)
		assert.Equal(t, "Dean", cfg.SuperAdmin.Name)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("environment wins", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "7000")
		t.Setenv("SUPER_ADMIN_EMAIL", "registrar@campus.edu")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "7000", cfg.Server.Port)
		assert.Equal(t, "registrar@campus.edu", cfg.SuperAdmin.Email)
		assert.Equal(t, "Dean", cfg.SuperAdmin.Name)
	})
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty port", func(c *Config) { c.Server.Port = " " }, true},
		{"empty database", func(c *Config) { c.Database.URL = "" }, true},
		{"bad email", func(c *Config) { c.SuperAdmin.Email = "admin" }, true},
		{"short password", func(c *Config) { c.SuperAdmin.Password = "123" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SESSION_SECRET", "SITE_URL", "DATABASE_URL", "LOG_LEVEL",
		"SUPER_ADMIN_NAME", "SUPER_ADMIN_EMAIL", "SUPER_ADMIN_PASSWORD",
	} {
		t.Setenv(key, "")
	}
}
