package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "DATABASE_URL", "ALLOWED_ORIGINS", "FEEDBACK_API_URL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err, "a missing config file is not an error")

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "betterfeedback.db", cfg.Database.Path)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.False(t, cfg.Archive.Enabled)
	assert.Equal(t, "http://localhost:8080", cfg.Client.BaseURL)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: feedback
  password: secret
  name: betterfeedback
ai:
  provider: openai
  apiKey: file-key
  model: gpt-4o
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Equal(t, "http://localhost:9000", cfg.Client.BaseURL)
	assert.Contains(t, cfg.PostgresDSN(), "host=db.internal")
	assert.Contains(t, cfg.PostgresDSN(), "sslmode=disable")
}

func TestEnvOverrides(t *testing.T) {
	t.Run("GEMINI_API_KEY sets the key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "g-key")

		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "g-key", cfg.AI.APIKey)
		assert.Equal(t, "gemini", cfg.AI.Provider)
	})

	t.Run("OPENAI_API_KEY switches the provider", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENAI_API_KEY", "oa-key")

		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "oa-key", cfg.AI.APIKey)
		assert.Equal(t, "openai", cfg.AI.Provider)
	})

	t.Run("DATABASE_URL switches to postgres", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://u:p@host:5432/db")

		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "postgres://u:p@host:5432/db", cfg.PostgresDSN())
	})

	t.Run("ALLOWED_ORIGINS is comma separated", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	})

	t.Run("FEEDBACK_API_URL overrides the client base URL", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("FEEDBACK_API_URL", "https://feedback.internal")

		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "https://feedback.internal", cfg.Client.BaseURL)
	})
}

func TestMySQLDSN(t *testing.T) {
	clearEnv(t)
	cfg := &Config{}
	cfg.Database.Host = "db"
	cfg.Database.Port = 3306
	cfg.Database.User = "u"
	cfg.Database.Password = "p"
	cfg.Database.Name = "feedback"

	dsn := cfg.MySQLDSN()
	assert.Contains(t, dsn, "u:p@tcp(db:3306)/feedback")
	assert.Contains(t, dsn, "parseTime=true")
}
