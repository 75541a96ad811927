package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talky-backend/internal/config"
	"talky-backend/internal/database"
	"talky-backend/internal/models"
)

var ErrUnsupportedDatabaseURL = errors.New("unsupported database URL scheme")

// Opener hands out the writer for the configured persistence backend.
type Opener interface {
	Open(ctx context.Context) (ChatRecordWriter, error)
}

// Store owns the process-wide database handle. The connection is established
// on first Open and reused afterwards; a failed attempt is not cached.
type Store struct {
	databaseURL string
	log         *zap.Logger

	mu     sync.Mutex
	writer ChatRecordWriter
	close  func()
}

func NewStore(databaseURL string, log *zap.Logger) *Store {
	return &Store{databaseURL: databaseURL, log: log}
}

// Open returns the shared writer, connecting if no connection exists yet.
func (s *Store) Open(ctx context.Context) (ChatRecordWriter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writer != nil {
		s.log.Debug("reusing existing database connection")
		return s.writer, nil
	}

	if s.databaseURL == "" {
		return nil, &config.ConfigurationError{Key: "DATABASE_URL"}
	}

	s.log.Info("connecting to database", zap.String("driver", driverName(s.databaseURL)))

	writer, closeFn, err := s.connect(ctx)
	if err != nil {
		s.log.Error("database connection failed", zap.Error(err))
		return nil, err
	}

	s.writer = writer
	s.close = closeFn
	s.log.Info("database connected")
	return s.writer, nil
}

// Close releases the connection if one was established.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.close != nil {
		s.close()
	}
	s.writer = nil
	s.close = nil
}

func (s *Store) connect(ctx context.Context) (ChatRecordWriter, func(), error) {
	switch driverName(s.databaseURL) {
	case "postgres":
		pool, err := database.NewPostgresPool(ctx, s.databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(ctx, pool, database.Migrations(), s.log); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return NewChatRepo(pool), pool.Close, nil

	case "sqlite":
		_, path, _ := strings.Cut(s.databaseURL, "://")
		db, sqlDB, err := database.NewSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := sqlDB.Close(); err != nil {
				s.log.Warn("failed to close sqlite database", zap.Error(err))
			}
		}
		return NewGormChatRepo(db), closeFn, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedDatabaseURL, schemeOf(s.databaseURL))
}

func driverName(databaseURL string) string {
	switch schemeOf(databaseURL) {
	case "postgres", "postgresql":
		return "postgres"
	case "sqlite":
		return "sqlite"
	}
	return "unknown"
}

func schemeOf(databaseURL string) string {
	scheme, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return ""
	}
	return strings.ToLower(scheme)
}

// DiscardStore is used when persistence is disabled: records are dropped.
type DiscardStore struct{}

func (DiscardStore) Open(ctx context.Context) (ChatRecordWriter, error) {
	return discardWriter{}, nil
}

type discardWriter struct{}

func (discardWriter) Create(ctx context.Context, c *models.ChatRecord) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now().UTC()
	return nil
}
