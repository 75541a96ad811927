package database

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talky-backend/internal/models"
)

func TestMigrationVersion(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		expected int
	}{
		{"numbered sql file", "001_create_chats.sql", 1},
		{"double digit", "012_add_index.sql", 12},
		{"no numeric prefix", "readme.sql", 0},
		{"not sql", "001_notes.txt", 0},
		{"too short", "1.s", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, migrationVersion(tc.file))
		})
	}
}

func TestMigrations_BundlesChatsTable(t *testing.T) {
	content, err := fs.ReadFile(Migrations(), "001_create_chats.sql")
	require.NoError(t, err)
	assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS chats")
}

func TestNewSQLite_MigratesChatsTable(t *testing.T) {
	db, sqlDB, err := NewSQLite(filepath.Join(t.TempDir(), "nested", "talky.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	record := &models.ChatRecord{
		ID:        uuid.New(),
		Prompt:    "hello",
		Reply:     "hi there",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(record).Error)

	var count int64
	require.NoError(t, db.Model(&models.ChatRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.True(t, db.Migrator().HasTable("chats"))
}

func TestNewSQLite_ReturnsUnderlyingHandle(t *testing.T) {
	db, sqlDB, err := NewSQLite(":memory:")
	require.NoError(t, err)

	inner, err := db.DB()
	require.NoError(t, err)
	assert.Same(t, inner, sqlDB)

	require.NoError(t, sqlDB.Close())
	assert.Error(t, sqlDB.Ping())
}

func TestNewRedisClients(t *testing.T) {
	mr := miniredis.RunT(t)

	clients, err := NewRedisClients(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer clients.Close()

	require.NoError(t, clients.Publisher.Set(context.Background(), "k", "v", 0).Err())
	val, err := clients.Subscriber.Get(context.Background(), "k").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestNewRedisClients_InvalidURL(t *testing.T) {
	_, err := NewRedisClients(context.Background(), "not-a-url")
	assert.Error(t, err)
}

func TestNewRedisClients_SeparateConnections(t *testing.T) {
	mr := miniredis.RunT(t)

	clients, err := NewRedisClients(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer clients.Close()

	assert.NotSame(t, clients.Publisher, clients.Subscriber)
	assert.NotSame(t, clients.Publisher.Options(), clients.Subscriber.Options())
}

func TestNewRedisClients_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClients(context.Background(), "redis://"+addr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publisher")
}

func TestRedisClients_ClosePartial(t *testing.T) {
	mr := miniredis.RunT(t)
	clients := &RedisClients{Publisher: redis.NewClient(&redis.Options{Addr: mr.Addr()})}

	assert.NotPanics(t, clients.Close)
}
