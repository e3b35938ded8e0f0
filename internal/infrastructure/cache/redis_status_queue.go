package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/config"
)

// DefaultStatusQueueKey is the Redis set holding customer order ids whose
// production status must be recomputed
const DefaultStatusQueueKey = "production:status:pending"

// RedisProductionStatusQueue keeps pending customer order ids in a Redis
// set, so repeated signals for one order collapse into one recompute and
// several instances share the backlog
type RedisProductionStatusQueue struct {
	client *redis.Client
	key    string
}

// NewRedisClient connects and pings Redis
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisProductionStatusQueue uses key, or DefaultStatusQueueKey when empty
func NewRedisProductionStatusQueue(client *redis.Client, key string) *RedisProductionStatusQueue {
	if key == "" {
		key = DefaultStatusQueueKey
	}
	return &RedisProductionStatusQueue{client: client, key: key}
}

// Enqueue adds ids to the pending set
func (q *RedisProductionStatusQueue) Enqueue(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	members := make([]any, len(ids))
	for i, id := range ids {
		members[i] = id.String()
	}
	if err := q.client.SAdd(ctx, q.key, members...).Err(); err != nil {
		return fmt.Errorf("failed to enqueue production status recompute: %w", err)
	}
	return nil
}

// Dequeue pops up to n ids. Members that are not uuids are dropped.
func (q *RedisProductionStatusQueue) Dequeue(ctx context.Context, n int) ([]uuid.UUID, error) {
	if n <= 0 {
		return nil, nil
	}
	members, err := q.client.SPopN(ctx, q.key, int64(n)).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to dequeue production status recompute: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		if id, err := uuid.Parse(m); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Len returns the number of pending ids
func (q *RedisProductionStatusQueue) Len(ctx context.Context) (int64, error) {
	return q.client.SCard(ctx, q.key).Result()
}
