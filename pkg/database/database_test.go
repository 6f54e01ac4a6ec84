package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-app/internal/config"
)

func TestOpen_SQLiteMemoryAndMigrate(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	require.NoError(t, MigrateDB(db, config.DriverSQLite))
	require.NoError(t, Ping(context.Background(), db))

	for _, table := range []string{"users", "tests", "history"} {
		assert.True(t, db.Migrator().HasTable(table), "таблица %s должна существовать", table)
	}
	assert.True(t, db.Migrator().HasIndex("history", "idx_history_user_test"))

	// Повторная миграция идемпотентна
	require.NoError(t, MigrateDB(db, config.DriverSQLite))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := MigrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(entries), 2)
}

func TestNewUniversalRedisClient_RequiresAddress(t *testing.T) {
	_, err := NewUniversalRedisClient(config.RedisConfig{Enabled: true})
	assert.Error(t, err)
}
