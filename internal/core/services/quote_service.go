package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
)

type QuoteOption func(*QuoteService)

// WithQuoteClock replaces time.Now for DateAdded and change signals.
func WithQuoteClock(now func() time.Time) QuoteOption {
	return func(s *QuoteService) { s.now = now }
}

// WithRandomSource replaces the offset picker used by RandomPick. intn must
// return a value in [0, n).
func WithRandomSource(intn func(n int) int) QuoteOption {
	return func(s *QuoteService) { s.intn = intn }
}

// QuoteService is the only writer of the quote collection. Listeners are
// told about every successful mutation, after it has been persisted.
type QuoteService struct {
	repo   domain.QuoteRepository
	prefs  *PreferenceChannel
	logger *zap.Logger
	now    func() time.Time
	intn   func(n int) int

	mu        sync.RWMutex
	listeners map[int]func(domain.ReloadSignal)
	nextID    int
}

func NewQuoteService(repo domain.QuoteRepository, prefs *PreferenceChannel, logger *zap.Logger, opts ...QuoteOption) *QuoteService {
	s := &QuoteService{
		repo:      repo,
		prefs:     prefs,
		logger:    logger,
		now:       time.Now,
		intn:      rand.IntN,
		listeners: make(map[int]func(domain.ReloadSignal)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn for change signals and returns its unsubscribe.
func (s *QuoteService) Subscribe(fn func(domain.ReloadSignal)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *QuoteService) notify(reason domain.ReloadReason, quoteID string) {
	signal := domain.ReloadSignal{Reason: reason, QuoteID: quoteID, At: s.now().UTC()}

	s.mu.RLock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(domain.ReloadSignal), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(signal)
	}
}

// List returns quotes newest first. search is matched case- and
// diacritic-insensitively against text and author; empty means all.
func (s *QuoteService) List(ctx context.Context, search string, limit, offset int) ([]*domain.Quote, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	quotes, err := s.repo.List(ctx, domain.QuoteFilter{
		Search: domain.FoldSearch(search),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		s.logger.Error("fetch quotes failed", zap.String("search", search), zap.Error(err))
		return nil, err
	}
	return quotes, nil
}

func (s *QuoteService) Get(ctx context.Context, id string) (*domain.Quote, error) {
	return s.repo.GetByID(ctx, id)
}

// Add persists a new quote. text and author are stored as given.
func (s *QuoteService) Add(ctx context.Context, text, author string) (*domain.Quote, error) {
	quote := domain.NewQuote(text, author, s.now())

	if err := s.repo.Create(ctx, quote); err != nil {
		s.logger.Error("save quote failed", zap.String("quote_id", quote.ID), zap.Error(err))
		return nil, fmt.Errorf("add quote: %w", err)
	}

	s.notify(domain.ReasonQuoteAdded, quote.ID)
	return quote, nil
}

func (s *QuoteService) Update(ctx context.Context, id, text, author string) (*domain.Quote, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrQuoteNotFound) {
			s.logger.Error("load quote failed", zap.String("quote_id", id), zap.Error(err))
		}
		return nil, err
	}

	quote.Edit(text, author)

	if err := s.repo.Update(ctx, quote); err != nil {
		if !errors.Is(err, domain.ErrQuoteNotFound) {
			s.logger.Error("save quote failed", zap.String("quote_id", id), zap.Error(err))
		}
		return nil, err
	}

	s.notify(domain.ReasonQuoteUpdated, id)
	return quote, nil
}

func (s *QuoteService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrQuoteNotFound) {
			s.logger.Error("delete quote failed", zap.String("quote_id", id), zap.Error(err))
		}
		return err
	}

	s.notify(domain.ReasonQuoteDeleted, id)
	return nil
}

// RandomPick returns one quote without loading the collection: count, pick
// an offset, fetch that row. A concurrent delete between the two reads makes
// the call return nil; the sampling is only approximately uniform then.
func (s *QuoteService) RandomPick(ctx context.Context) (*domain.Quote, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count quotes: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	quote, err := s.repo.GetAtOffset(ctx, s.intn(count))
	if err != nil {
		if errors.Is(err, domain.ErrQuoteNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch quote at offset: %w", err)
	}
	return quote, nil
}

// SeedIfEmpty inserts the sample quotes on the very first start. Once the
// seed marker is set an empty collection stays empty.
func (s *QuoteService) SeedIfEmpty(ctx context.Context) (int, error) {
	_, seeded, err := s.prefs.SampleDataSeededAt(ctx)
	if err != nil {
		return 0, fmt.Errorf("read seed marker: %w", err)
	}
	if seeded {
		return 0, nil
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count quotes: %w", err)
	}

	inserted := 0
	if count == 0 {
		base := s.now()
		for i, sample := range domain.SampleQuotes {
			// Spread timestamps so the list keeps the sample order.
			q := domain.NewQuote(sample.Text, sample.Author, base.Add(-time.Duration(i)*time.Millisecond))
			if err := s.repo.Create(ctx, q); err != nil {
				s.logger.Error("seed quote failed", zap.Int("index", i), zap.Error(err))
				return inserted, fmt.Errorf("seed quotes: %w", err)
			}
			inserted++
		}
	}

	if err := s.prefs.MarkSampleDataSeeded(ctx, s.now()); err != nil {
		return inserted, fmt.Errorf("write seed marker: %w", err)
	}

	if inserted > 0 {
		s.logger.Info("seeded sample quotes", zap.Int("count", inserted))
		s.notify(domain.ReasonQuoteAdded, "")
	}
	return inserted, nil
}
