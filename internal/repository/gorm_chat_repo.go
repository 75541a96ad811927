package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"talky-backend/internal/models"
)

// GormChatRepo stores ChatRecords through gorm; used for SQLite databases.
type GormChatRepo struct {
	db *gorm.DB
}

func NewGormChatRepo(db *gorm.DB) *GormChatRepo {
	return &GormChatRepo{db: db}
}

func (r *GormChatRepo) Create(ctx context.Context, c *models.ChatRecord) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(c).Error
}
