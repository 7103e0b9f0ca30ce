package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, defaultServerPort, cfg.Server.Port)
	assert.Equal(t, defaultServerTimeout, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Database.Configured())
	assert.Equal(t, defaultRedisAddress, cfg.Redis.Address)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadMissingFileTolerated(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	require.NoError(t, err)
	assert.Equal(t, defaultServerPort, cfg.Server.Port)
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
debug: true
server:
  host: 127.0.0.1
  port: 9090
database:
  host: db.internal
  user: problems
  dbname: problems
  query_mode: proc
fixtures:
  path: /etc/problem-finder/problems.json
`))
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, defaultServerTimeout, cfg.Server.ReadTimeout)

	require.True(t, cfg.Database.Configured())
	assert.Equal(t, QueryModeProc, cfg.Database.QueryMode)
	assert.Equal(t, defaultDatabasePort, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	assert.Equal(t, "/etc/problem-finder/problems.json", cfg.Fixtures.Path)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DB_HOST", "env-db")
	t.Setenv("DB_USER", "env-user")
	t.Setenv("DB_NAME", "env-name")
	t.Setenv("DB_QUERY_MODE", "proc")
	t.Setenv("REDIS_EVENTS_ENABLED", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load(writeConfig(t, `
database:
  host: yaml-db
  user: yaml-user
  dbname: yaml-name
  query_mode: join
`))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "env-db", cfg.Database.Host)
	assert.Equal(t, QueryModeProc, cfg.Database.QueryMode)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "fixture-only config is valid",
			mutate: func(_ *Config) {},
		},
		{
			name:    "missing server host",
			mutate:  func(c *Config) { c.Server.Host = "" },
			wantErr: "server.host",
		},
		{
			name:    "non-positive port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name: "database without user",
			mutate: func(c *Config) {
				c.Database.Host = "db"
				c.Database.Port = 5432
				c.Database.DBName = "problems"
				c.Database.QueryMode = QueryModeJoin
			},
			wantErr: "database.user",
		},
		{
			name: "unknown query mode",
			mutate: func(c *Config) {
				c.Database.Host = "db"
				c.Database.Port = 5432
				c.Database.User = "problems"
				c.Database.DBName = "problems"
				c.Database.QueryMode = "cursor"
			},
			wantErr: "query_mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server: ServerConfig{Host: "0.0.0.0", Port: 8060},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
