package cache

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ProductionStatusQueue is the queue the production status service drains
type ProductionStatusQueue interface {
	Enqueue(ctx context.Context, ids ...uuid.UUID) error
	Dequeue(ctx context.Context, n int) ([]uuid.UUID, error)
	Len(ctx context.Context) (int64, error)
}

// QueueFactoryOption configures NewProductionStatusQueue
type QueueFactoryOption func(*queueFactory)

type queueFactory struct {
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// WithLogger sets the logger used to report the chosen backend
func WithLogger(logger *zap.Logger) QueueFactoryOption {
	return func(f *queueFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to a
// process-local queue. Defaults to true.
func WithInMemoryFallback(allow bool) QueueFactoryOption {
	return func(f *queueFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewProductionStatusQueue prefers Redis. The returned client is nil when the
// in-memory queue was chosen; the caller closes it otherwise.
func NewProductionStatusQueue(ctx context.Context, redisCfg config.RedisConfig, key string, opts ...QueueFactoryOption) (ProductionStatusQueue, *redis.Client, error) {
	f := &queueFactory{logger: zap.NewNop(), allowInMemoryFallback: true}
	for _, opt := range opts {
		opt(f)
	}

	if redisCfg.Host == "" {
		f.logger.Info("Redis not configured, using in-memory production status queue")
		return NewInMemoryProductionStatusQueue(), nil, nil
	}

	client, err := NewRedisClient(ctx, redisCfg)
	if err == nil {
		f.logger.Info("using Redis production status queue", zap.String("key", key))
		return NewRedisProductionStatusQueue(client, key), client, nil
	}
	if !f.allowInMemoryFallback {
		return nil, nil, fmt.Errorf("Redis required for the production status queue but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory production status queue; "+
		"other instances will rely on the needs-update flag",
		zap.Error(err),
	)
	return NewInMemoryProductionStatusQueue(), nil, nil
}
