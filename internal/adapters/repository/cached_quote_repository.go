package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
)

var _ domain.QuoteRepository = (*CachedQuoteRepository)(nil)

// CachedQuoteRepository keeps the unfiltered listing in Redis. Filtered and
// paged listings, point reads and the random-pick path go straight to next.
type CachedQuoteRepository struct {
	next   domain.QuoteRepository
	cache  *redis.Client
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedQuoteRepository(next domain.QuoteRepository, cache *redis.Client, namespace string, ttl time.Duration, logger *zap.Logger) *CachedQuoteRepository {
	return &CachedQuoteRepository{
		next:   next,
		cache:  cache,
		key:    namespace + ":quotes:all",
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CachedQuoteRepository) invalidate(ctx context.Context) {
	if err := r.cache.Del(ctx, r.key).Err(); err != nil {
		r.logger.Warn("cache invalidation failed", zap.String("key", r.key), zap.Error(err))
	}
}

func (r *CachedQuoteRepository) List(ctx context.Context, filter domain.QuoteFilter) ([]*domain.Quote, error) {
	if filter != (domain.QuoteFilter{}) {
		return r.next.List(ctx, filter)
	}

	val, err := r.cache.Get(ctx, r.key).Result()
	if err == nil {
		var quotes []*domain.Quote
		if err := json.Unmarshal([]byte(val), &quotes); err == nil {
			return quotes, nil
		}

		r.logger.Warn("corrupted cached listing, cleaning up key", zap.String("key", r.key))
		r.cache.Del(ctx, r.key)
	} else if err != redis.Nil {
		r.logger.Warn("cache read failed", zap.Error(err))
	}

	quotes, err := r.next.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(quotes); err == nil {
		if setErr := r.cache.Set(ctx, r.key, data, r.ttl).Err(); setErr != nil {
			r.logger.Warn("cache write failed", zap.Error(setErr))
		}
	}

	return quotes, nil
}

func (r *CachedQuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedQuoteRepository) Count(ctx context.Context) (int, error) {
	return r.next.Count(ctx)
}

func (r *CachedQuoteRepository) GetAtOffset(ctx context.Context, offset int) (*domain.Quote, error) {
	return r.next.GetAtOffset(ctx, offset)
}

func (r *CachedQuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	if err := r.next.Create(ctx, quote); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedQuoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	if err := r.next.Update(ctx, quote); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedQuoteRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}
