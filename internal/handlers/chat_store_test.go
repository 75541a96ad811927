package handlers

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"talky-backend/internal/database"
	"talky-backend/internal/models"
	"talky-backend/internal/repository"
)

type fixedModel struct{ reply string }

func (m fixedModel) Generate(ctx context.Context, prompt string) (string, error) {
	return m.reply, nil
}

func TestChatHandler_PersistsToSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "talky.db")
	store := repository.NewStore("sqlite://"+path, zap.NewNop())
	defer store.Close()

	h := NewChatHandler(store, fixedModel{reply: "hi there"}, nil, zap.NewNop())

	rr := postChat(t, h, `{"prompt":"hello"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"reply":"hi there"}`, rr.Body.String())

	rr = postChat(t, h, `{"prompt":""}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	db, sqlDB, err := database.NewSQLite(path)
	require.NoError(t, err)
	defer sqlDB.Close()

	var records []models.ChatRecord
	require.NoError(t, db.Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, "hello", records[0].Prompt)
	assert.Equal(t, "hi there", records[0].Reply)
	assert.False(t, records[0].CreatedAt.IsZero())
}
