package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/terapiemd/booking-service/pkg/logger"
)

// unreachable points at a closed port so every command fails fast
func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisQueue_PublishError(t *testing.T) {
	client := unreachable()
	defer client.Close()

	q := NewRedisQueue(client, "booking-notifications", logger.NewNop())
	err := q.Publish(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, ErrPublish)
}

func TestRedisQueue_ConsumeStopsOnCancel(t *testing.T) {
	client := unreachable()
	defer client.Close()

	q := NewRedisQueue(client, "booking-notifications", logger.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- q.Consume(ctx, func(context.Context, []byte) error { return nil })
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Consume did not return after cancellation")
	}
}

func TestNewClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewClient(ctx, "127.0.0.1:1", "", 0)
	assert.ErrorIs(t, err, ErrConnect)
}
