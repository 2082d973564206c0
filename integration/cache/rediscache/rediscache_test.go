package rediscache_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdosaeedelhassan/email-templates/core/emailtemplate"
	"github.com/abdosaeedelhassan/email-templates/integration/cache/rediscache"
	"github.com/abdosaeedelhassan/email-templates/integration/database/redis"
)

func newCache(t *testing.T) *rediscache.Cache {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	client, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  url,
		RetryAttempts:  3,
		RetryInterval:  time.Second,
		ConnectTimeout: 10 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	// A fresh namespace keeps parallel runs apart.
	return rediscache.New(client, rediscache.WithNamespace("test:"+uuid.NewString()+":"), rediscache.WithScanBatchSize(10))
}

func TestCache_SetGet(t *testing.T) {
	c := newCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "emailtemplate:welcome:en")
	require.NoError(t, err)
	assert.False(t, ok)

	tpl := &emailtemplate.Template{
		ID:       uuid.New(),
		Key:      "welcome",
		Language: "en",
		Subject:  "Hi ##user.name##",
		From:     emailtemplate.Sender{Name: "Team", Email: "team@example.com"},
	}
	require.NoError(t, c.Set(ctx, "emailtemplate:welcome:en", tpl, time.Minute))

	got, ok, err := c.Get(ctx, "emailtemplate:welcome:en")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tpl.ID, got.ID)
	assert.Equal(t, tpl.Subject, got.Subject)
	assert.Equal(t, tpl.From, got.From)
}

func TestCache_Expires(t *testing.T) {
	c := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "emailtemplate:short:en", &emailtemplate.Template{Key: "short"}, 100*time.Millisecond))
	assert.Eventually(t, func() bool {
		_, ok, err := c.Get(ctx, "emailtemplate:short:en")
		return err == nil && !ok
	}, 3*time.Second, 50*time.Millisecond)
}

func TestCache_DeletePrefix(t *testing.T) {
	c := newCache(t)
	ctx := context.Background()

	keys := []string{
		"emailtemplate:welcome:en",
		"emailtemplate:welcome:fr|en",
		"emailtemplate:welcome-back:en",
		"emailtemplate:reset[1]:en",
	}
	for _, k := range keys {
		require.NoError(t, c.Set(ctx, k, &emailtemplate.Template{Key: k}, time.Minute))
	}

	require.NoError(t, c.DeletePrefix(ctx, "emailtemplate:welcome:"))

	for k, want := range map[string]bool{
		"emailtemplate:welcome:en":      false,
		"emailtemplate:welcome:fr|en":   false,
		"emailtemplate:welcome-back:en": true,
		"emailtemplate:reset[1]:en":     true,
	} {
		_, ok, err := c.Get(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, want, ok, k)
	}

	// Glob characters in the prefix match literally.
	require.NoError(t, c.DeletePrefix(ctx, "emailtemplate:reset[1]:"))
	_, ok, err := c.Get(ctx, "emailtemplate:reset[1]:en")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_DeletePrefixAcrossClusterNodes(t *testing.T) {
	addrs := os.Getenv("REDIS_CLUSTER_ADDRS")
	if addrs == "" {
		t.Skip("REDIS_CLUSTER_ADDRS not set")
	}

	ctx := context.Background()
	client := goredis.NewClusterClient(&goredis.ClusterOptions{Addrs: strings.Split(addrs, ",")})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	c := rediscache.New(client, rediscache.WithNamespace("test:"+uuid.NewString()+":"))

	// Enough locale lists that the keys land in slots on several masters.
	var keys []string
	for i := range 50 {
		k := fmt.Sprintf("emailtemplate:welcome:l%d|en", i)
		keys = append(keys, k)
		require.NoError(t, c.Set(ctx, k, &emailtemplate.Template{Key: "welcome"}, time.Minute))
	}
	require.NoError(t, c.Set(ctx, "emailtemplate:other:en", &emailtemplate.Template{Key: "other"}, time.Minute))

	require.NoError(t, c.DeletePrefix(ctx, "emailtemplate:welcome:"))

	for _, k := range keys {
		_, ok, err := c.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, ok, k)
	}
	_, ok, err := c.Get(ctx, "emailtemplate:other:en")
	require.NoError(t, err)
	assert.True(t, ok)
}
