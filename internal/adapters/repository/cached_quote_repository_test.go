package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
)

func setupTestRedis(t *testing.T) *redis.Client {
	_ = godotenv.Load("../../../.env")

	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       1,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping integration test (Redis down): %v", err)
	}

	rdb.FlushDB(ctx)
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestCachedQuoteRepository_Contract_Integration(t *testing.T) {
	rdb := setupTestRedis(t)
	runQuoteRepositoryContract(t, NewCachedQuoteRepository(NewInMemoryQuoteRepository(), rdb, "group.test", time.Minute, zap.NewNop()))
}

func TestCachedQuoteRepository_Invalidation_Integration(t *testing.T) {
	rdb := setupTestRedis(t)
	ctx := context.Background()

	inner := NewInMemoryQuoteRepository()
	repo := NewCachedQuoteRepository(inner, rdb, "group.test", time.Minute, zap.NewNop())

	first := newQuoteAt("Pierwszy", "A", time.Now())
	require.NoError(t, repo.Create(ctx, first))

	list, err := repo.List(ctx, domain.QuoteFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	exists, err := rdb.Exists(ctx, "group.test:quotes:all").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists, "listing is cached")

	t.Run("Writes behind the decorator are not seen until invalidation", func(t *testing.T) {
		require.NoError(t, inner.Create(ctx, newQuoteAt("Ukryty", "B", time.Now())))

		list, err := repo.List(ctx, domain.QuoteFilter{})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("Delete through the decorator invalidates", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, first.ID))

		list, err := repo.List(ctx, domain.QuoteFilter{})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Ukryty", list[0].Text)
	})

	t.Run("Corrupted payload falls back to storage", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, "group.test:quotes:all", "{not json", time.Minute).Err())

		list, err := repo.List(ctx, domain.QuoteFilter{})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}
