// Package eventbus carries serialized events between the API process and background workers over Redis.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Logger is the logging contract of the queue
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Handler processes one payload. A returned error is logged and the payload is dropped.
type Handler func(ctx context.Context, payload []byte) error

// RedisQueue is a work queue on a Redis list. Publish appends with RPUSH, Consume pops with BLPOP,
// so each payload is handled by exactly one worker and survives while no worker is running.
type RedisQueue struct {
	client      redis.UniversalClient
	key         string
	pollTimeout time.Duration
	log         Logger
}

// NewClient opens a Redis connection and verifies it with PING
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	return client, nil
}

// NewRedisQueue creates a queue on key
func NewRedisQueue(client redis.UniversalClient, key string, log Logger) *RedisQueue {
	return &RedisQueue{
		client:      client,
		key:         key,
		pollTimeout: 5 * time.Second,
		log:         log,
	}
}

// Publish enqueues a payload
func (q *RedisQueue) Publish(ctx context.Context, payload []byte) error {
	if err := q.client.RPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, q.key, err)
	}
	return nil
}

// Consume pops payloads and hands them to handle until ctx is cancelled
func (q *RedisQueue) Consume(ctx context.Context, handle Handler) error {
	q.log.Info("eventbus: consuming %s", q.key)

	for {
		if err := ctx.Err(); err != nil {
			q.log.Info("eventbus: stopped consuming %s", q.key)
			return nil
		}

		res, err := q.client.BLPop(ctx, q.pollTimeout, q.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				q.log.Info("eventbus: stopped consuming %s", q.key)
				return nil
			}
			q.log.Error("eventbus: pop from %s failed: %v", q.key, err)

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		// BLPOP answers [key, value]
		if len(res) != 2 {
			q.log.Warn("eventbus: unexpected reply from %s: %v", q.key, res)
			continue
		}

		if err := handle(ctx, []byte(res[1])); err != nil {
			q.log.Warn("eventbus: handler failed for %s: %v", q.key, err)
		}
	}
}
