package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisDialTimeout = 10 * time.Second

// RedisClients backs the record feed. Subscriber is kept apart from Publisher
// because a subscription holds its connection for as long as it is open.
type RedisClients struct {
	Publisher  *redis.Client
	Subscriber *redis.Client
}

func NewRedisClients(ctx context.Context, redisURL string) (*RedisClients, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()

	clients := &RedisClients{}
	for _, c := range []struct {
		role   string
		target **redis.Client
	}{
		{"publisher", &clients.Publisher},
		{"subscriber", &clients.Subscriber},
	} {
		client, err := connectRedis(ctx, opt, c.role)
		if err != nil {
			clients.Close()
			return nil, err
		}
		*c.target = client
	}
	return clients, nil
}

func connectRedis(ctx context.Context, opt *redis.Options, role string) (*redis.Client, error) {
	o := *opt
	client := redis.NewClient(&o)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis (%s): %w", role, err)
	}
	return client, nil
}

// Close shuts down whichever clients were connected.
func (r *RedisClients) Close() {
	for _, c := range []*redis.Client{r.Publisher, r.Subscriber} {
		if c != nil {
			c.Close()
		}
	}
}
