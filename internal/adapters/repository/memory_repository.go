package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
)

var (
	_ domain.QuoteRepository = (*InMemoryQuoteRepository)(nil)
	_ domain.PreferenceStore = (*InMemoryPreferenceStore)(nil)
)

type InMemoryQuoteRepository struct {
	store map[string]domain.Quote

	mu sync.RWMutex
}

func NewInMemoryQuoteRepository() *InMemoryQuoteRepository {
	return &InMemoryQuoteRepository{
		store: make(map[string]domain.Quote),
	}
}

// ordered must be called with the lock held.
func (r *InMemoryQuoteRepository) ordered() []domain.Quote {
	quotes := make([]domain.Quote, 0, len(r.store))
	for _, q := range r.store {
		quotes = append(quotes, q)
	}

	sort.Slice(quotes, func(i, j int) bool {
		if !quotes[i].DateAdded.Equal(quotes[j].DateAdded) {
			return quotes[i].DateAdded.After(quotes[j].DateAdded)
		}
		return quotes[i].ID < quotes[j].ID
	})

	return quotes
}

func (r *InMemoryQuoteRepository) List(ctx context.Context, filter domain.QuoteFilter) ([]*domain.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quotes := []*domain.Quote{}
	skipped := 0
	for _, q := range r.ordered() {
		if !q.Matches(filter.Search) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		if filter.Limit > 0 && len(quotes) >= filter.Limit {
			break
		}
		clone := q
		quotes = append(quotes, &clone)
	}

	return quotes, nil
}

func (r *InMemoryQuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.store[id]
	if !ok {
		return nil, domain.ErrQuoteNotFound
	}
	return &q, nil
}

func (r *InMemoryQuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[quote.ID]; exists {
		return domain.ErrQuoteAlreadyExists
	}

	r.store[quote.ID] = *quote
	return nil
}

func (r *InMemoryQuoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[quote.ID]
	if !ok {
		return domain.ErrQuoteNotFound
	}

	existing.Edit(quote.Text, quote.Author)
	r.store[quote.ID] = existing
	return nil
}

func (r *InMemoryQuoteRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrQuoteNotFound
	}

	delete(r.store, id)
	return nil
}

func (r *InMemoryQuoteRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.store), nil
}

func (r *InMemoryQuoteRepository) GetAtOffset(ctx context.Context, offset int) (*domain.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quotes := r.ordered()
	if offset < 0 || offset >= len(quotes) {
		return nil, domain.ErrQuoteNotFound
	}

	q := quotes[offset]
	return &q, nil
}

type InMemoryPreferenceStore struct {
	values map[string]string

	mu sync.RWMutex
}

func NewInMemoryPreferenceStore() *InMemoryPreferenceStore {
	return &InMemoryPreferenceStore{
		values: make(map[string]string),
	}
}

func (s *InMemoryPreferenceStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok, nil
}

func (s *InMemoryPreferenceStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *InMemoryPreferenceStore) SetMany(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

func (s *InMemoryPreferenceStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}
