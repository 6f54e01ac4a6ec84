package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "quiz.sqlite", cfg.Database.SQLitePath)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Minute, cfg.Redis.CacheTTL())
	assert.Equal(t, time.Minute, cfg.RateLimit.Window())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "8080"
database:
  driver: postgres
  host: db
  user: quiz
  dbname: quiz_db
redis:
  enabled: true
  addr: "redis:6379"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("DATABASE_PASSWORD", "secret")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port, "env перекрывает файл")
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "host=db port=5432 user=quiz password=secret dbname=quiz_db sslmode=disable", cfg.Database.PostgresConnectionString())
	assert.Equal(t, "postgres://quiz:secret@db:5432/quiz_db?sslmode=disable", cfg.Database.PostgresURL())
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite ok", Config{Database: DatabaseConfig{Driver: DriverSQLite, SQLitePath: "x.db"}}, false},
		{"sqlite without path", Config{Database: DatabaseConfig{Driver: DriverSQLite}}, true},
		{"postgres incomplete", Config{Database: DatabaseConfig{Driver: DriverPostgres, Host: "h"}}, true},
		{"unknown driver", Config{Database: DatabaseConfig{Driver: "oracle"}}, true},
		{"redis without address", Config{
			Database: DatabaseConfig{Driver: DriverSQLite, SQLitePath: "x.db"},
			Redis:    RedisConfig{Enabled: true},
		}, true},
		{"bad rate limit", Config{
			Database:  DatabaseConfig{Driver: DriverSQLite, SQLitePath: "x.db"},
			RateLimit: RateLimitConfig{Enabled: true},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
