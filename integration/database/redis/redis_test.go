package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdosaeedelhassan/email-templates/integration/database/redis"
)

func TestConnect_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		err  error
	}{
		{"empty url", "", redis.ErrEmptyConnectionURL},
		{"wrong scheme", "http://localhost:6379", redis.ErrFailedToParseRedisConnString},
		{"bad database", "redis://localhost:6379/notanumber", redis.ErrFailedToParseRedisConnString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: tt.url})
			assert.Nil(t, client)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestConnect_NotReady(t *testing.T) {
	t.Parallel()

	cfg := redis.Config{
		// Port 1 is reserved and refuses connections.
		ConnectionURL:  "redis://127.0.0.1:1/0",
		RetryAttempts:  3,
		RetryInterval:  50 * time.Millisecond,
		ConnectTimeout: 500 * time.Millisecond,
	}
	client, err := redis.Connect(context.Background(), cfg)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, redis.ErrRedisNotReady)
}

func TestConnect_Live(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: url, RetryAttempts: 3, RetryInterval: time.Second, ConnectTimeout: 10 * time.Second})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, redis.Healthcheck(client)(ctx))
}
