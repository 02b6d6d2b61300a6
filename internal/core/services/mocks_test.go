package services_test

import (
	"context"
	"sort"
	"sync"

	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
)

type MockRepo struct {
	store         map[string]domain.Quote
	simulateError error
	// vanishAtOffset makes GetAtOffset miss, as if a row was deleted after
	// Count.
	vanishAtOffset bool
}

func NewMockRepo(quotes ...*domain.Quote) *MockRepo {
	m := &MockRepo{store: make(map[string]domain.Quote)}
	for _, q := range quotes {
		m.store[q.ID] = *q
	}
	return m
}

func (m *MockRepo) ordered() []domain.Quote {
	list := make([]domain.Quote, 0, len(m.store))
	for _, q := range m.store {
		list = append(list, q)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].DateAdded.Equal(list[j].DateAdded) {
			return list[i].DateAdded.After(list[j].DateAdded)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func (m *MockRepo) List(ctx context.Context, filter domain.QuoteFilter) ([]*domain.Quote, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.Quote
	for _, q := range m.ordered() {
		if q.Matches(filter.Search) {
			clone := q
			list = append(list, &clone)
		}
	}
	if filter.Offset > len(list) {
		return nil, nil
	}
	list = list[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(list) {
		list = list[:filter.Limit]
	}
	return list, nil
}

func (m *MockRepo) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	q, ok := m.store[id]
	if !ok {
		return nil, domain.ErrQuoteNotFound
	}
	return &q, nil
}

func (m *MockRepo) Create(ctx context.Context, quote *domain.Quote) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, exists := m.store[quote.ID]; exists {
		return domain.ErrQuoteAlreadyExists
	}
	m.store[quote.ID] = *quote
	return nil
}

func (m *MockRepo) Update(ctx context.Context, quote *domain.Quote) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[quote.ID]; !ok {
		return domain.ErrQuoteNotFound
	}
	m.store[quote.ID] = *quote
	return nil
}

func (m *MockRepo) Delete(ctx context.Context, id string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[id]; !ok {
		return domain.ErrQuoteNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *MockRepo) Count(ctx context.Context) (int, error) {
	if m.simulateError != nil {
		return 0, m.simulateError
	}
	return len(m.store), nil
}

func (m *MockRepo) GetAtOffset(ctx context.Context, offset int) (*domain.Quote, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	list := m.ordered()
	if m.vanishAtOffset || offset < 0 || offset >= len(list) {
		return nil, domain.ErrQuoteNotFound
	}
	return &list[offset], nil
}

type MockPrefs struct {
	mu       sync.Mutex
	values   map[string]string
	writes   int
	getError error
	setError error
}

func NewMockPrefs() *MockPrefs {
	return &MockPrefs{values: make(map[string]string)}
}

func (m *MockPrefs) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getError != nil {
		return "", false, m.getError
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MockPrefs) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setError != nil {
		return m.setError
	}
	m.writes++
	m.values[key] = value
	return nil
}

func (m *MockPrefs) SetMany(ctx context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setError != nil {
		return m.setError
	}
	m.writes++
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *MockPrefs) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setError != nil {
		return m.setError
	}
	m.writes++
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *MockPrefs) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *MockPrefs) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

type MockReloads struct {
	mu      sync.Mutex
	signals []domain.ReloadSignal
}

func (m *MockReloads) Enqueue(signal domain.ReloadSignal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signals = append(m.signals, signal)
}

func (m *MockReloads) Signals() []domain.ReloadSignal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ReloadSignal(nil), m.signals...)
}
