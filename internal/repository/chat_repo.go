package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"talky-backend/internal/models"
)

// ChatRecordWriter appends ChatRecords. Implementations assign ID and CreatedAt.
type ChatRecordWriter interface {
	Create(ctx context.Context, c *models.ChatRecord) error
}

type ChatRepo struct {
	pool *pgxpool.Pool
}

func NewChatRepo(pool *pgxpool.Pool) *ChatRepo {
	return &ChatRepo{pool: pool}
}

func (r *ChatRepo) Create(ctx context.Context, c *models.ChatRecord) error {
	c.ID = uuid.New()

	query := `INSERT INTO chats (id, prompt, reply)
		VALUES ($1, $2, $3) RETURNING created_at`

	return r.pool.QueryRow(ctx, query, c.ID, c.Prompt, c.Reply).Scan(&c.CreatedAt)
}
