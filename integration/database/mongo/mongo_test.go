package mongo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdosaeedelhassan/email-templates/integration/database/mongo"
)

func TestNew_EmptyURL(t *testing.T) {
	t.Parallel()

	client, err := mongo.New(context.Background(), mongo.Config{})
	assert.Nil(t, client)
	assert.ErrorIs(t, err, mongo.ErrEmptyConnectionURL)
}

func TestNew_InvalidURL(t *testing.T) {
	t.Parallel()

	client, err := mongo.New(context.Background(), mongo.Config{ConnectionURL: "not-a-mongo-url"})
	assert.Nil(t, client)
	assert.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
}

func TestNew_Unreachable(t *testing.T) {
	t.Parallel()

	cfg := mongo.Config{
		ConnectionURL:  "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=100",
		ConnectTimeout: 200 * time.Millisecond,
		RetryAttempts:  2,
		RetryInterval:  10 * time.Millisecond,
	}
	client, err := mongo.New(context.Background(), cfg)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
}

func TestNewWithDatabase_Live(t *testing.T) {
	url := os.Getenv("MONGODB_URL")
	if url == "" {
		t.Skip("MONGODB_URL not set")
	}

	ctx := context.Background()
	db, err := mongo.NewWithDatabase(ctx, mongo.Config{
		ConnectionURL:  url,
		ConnectTimeout: 10 * time.Second,
		RetryAttempts:  3,
		RetryInterval:  time.Second,
		Database:       "email_templates_test",
	}, "")
	require.NoError(t, err)
	defer db.Client().Disconnect(ctx)

	assert.Equal(t, "email_templates_test", db.Name())
	require.NoError(t, mongo.Healthcheck(db.Client())(ctx))
}
