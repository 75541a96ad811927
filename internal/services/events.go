package services

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"talky-backend/internal/models"
)

// RecordChannel is the Redis pub/sub channel carrying RecordEvents.
const RecordChannel = "chat_records"

const RecordEventType = "chat_record"

// RecordPublisher announces stored ChatRecords. Publishing is best effort:
// failures are logged and never reach the caller.
type RecordPublisher struct {
	redis *redis.Client
	log   *zap.Logger
}

func NewRecordPublisher(redisClient *redis.Client, log *zap.Logger) *RecordPublisher {
	return &RecordPublisher{redis: redisClient, log: log}
}

// PublishRecord is a no-op on a nil publisher, so callers need no Redis checks.
func (p *RecordPublisher) PublishRecord(ctx context.Context, record *models.ChatRecord) {
	if p == nil || p.redis == nil {
		return
	}

	data, err := json.Marshal(models.RecordEvent{Type: RecordEventType, Record: record})
	if err != nil {
		p.log.Warn("failed to encode record event", zap.Error(err))
		return
	}

	if err := p.redis.Publish(ctx, RecordChannel, data).Err(); err != nil {
		p.log.Warn("failed to publish record event",
			zap.String("record_id", record.ID.String()),
			zap.Error(err),
		)
	}
}
