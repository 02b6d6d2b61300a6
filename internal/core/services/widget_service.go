package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
)

// ReloadRequester asks widget surfaces to render again, out of band.
type ReloadRequester interface {
	Enqueue(signal domain.ReloadSignal)
}

type WidgetOption func(*WidgetService)

func WithWidgetClock(now func() time.Time) WidgetOption {
	return func(s *WidgetService) { s.now = now }
}

// WithLocation sets the time zone that defines a calendar day.
func WithLocation(loc *time.Location) WidgetOption {
	return func(s *WidgetService) { s.loc = loc }
}

// WidgetService decides which quote the widget shows. Tiers, first match
// wins: pinned, today's cached pick, fresh random pick (cached for the day),
// empty placeholder.
type WidgetService struct {
	quotes  *QuoteService
	prefs   *PreferenceChannel
	reloads ReloadRequester
	logger  *zap.Logger
	now     func() time.Time
	loc     *time.Location
}

func NewWidgetService(quotes *QuoteService, prefs *PreferenceChannel, reloads ReloadRequester, logger *zap.Logger, opts ...WidgetOption) *WidgetService {
	s := &WidgetService{
		quotes:  quotes,
		prefs:   prefs,
		reloads: reloads,
		logger:  logger,
		now:     time.Now,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Placeholder is rendered while the real entry is loading; it never touches
// storage.
func (s *WidgetService) Placeholder() domain.WidgetEntry {
	return domain.PlaceholderEntry(domain.LoadingText, domain.SourcePlaceholder, s.now().In(s.loc))
}

func (s *WidgetService) Snapshot(ctx context.Context) domain.WidgetEntry {
	return s.Resolve(ctx)
}

// Timeline holds a single entry valid until the next local midnight.
func (s *WidgetService) Timeline(ctx context.Context) domain.WidgetTimeline {
	entry := s.Resolve(ctx)
	return domain.WidgetTimeline{
		Entries:   []domain.WidgetEntry{entry},
		RefreshAt: NextMidnight(entry.Date, s.loc),
	}
}

// Resolve never fails. Storage and channel errors are logged and the
// affected tier is skipped.
func (s *WidgetService) Resolve(ctx context.Context) domain.WidgetEntry {
	now := s.now().In(s.loc)

	if q := s.pinnedQuote(ctx); q != nil {
		return domain.WidgetEntry{Date: now, Quote: *q, Source: domain.SourcePinned}
	}

	if q := s.dailyQuote(ctx, now); q != nil {
		return domain.WidgetEntry{Date: now, Quote: *q, Source: domain.SourceDaily}
	}

	q, err := s.quotes.RandomPick(ctx)
	if err != nil {
		s.logger.Error("random pick failed", zap.Error(err))
	}
	if q != nil {
		if err := s.prefs.SetDailyPick(ctx, q.ID, now); err != nil {
			s.logger.Warn("daily pick not cached", zap.String("quote_id", q.ID), zap.Error(err))
		}
		return domain.WidgetEntry{Date: now, Quote: *q, Source: domain.SourceRandom}
	}

	return domain.PlaceholderEntry(domain.EmptyCollectionText, domain.SourceEmpty, now)
}

func (s *WidgetService) pinnedQuote(ctx context.Context) *domain.Quote {
	id, ok, err := s.prefs.PinnedQuoteID(ctx)
	if err != nil {
		s.logger.Warn("pinned quote id unreadable", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	return s.lookup(ctx, id)
}

func (s *WidgetService) dailyQuote(ctx context.Context, now time.Time) *domain.Quote {
	id, date, ok, err := s.prefs.DailyPick(ctx)
	if err != nil {
		s.logger.Warn("daily pick unreadable", zap.Error(err))
		return nil
	}
	if !ok || !SameDay(date, now, s.loc) {
		return nil
	}
	return s.lookup(ctx, id)
}

// lookup treats malformed and dangling ids as absent.
func (s *WidgetService) lookup(ctx context.Context, id string) *domain.Quote {
	parsed, err := domain.ParseQuoteID(id)
	if err != nil {
		return nil
	}

	q, err := s.quotes.Get(ctx, parsed)
	if err != nil {
		if !errors.Is(err, domain.ErrQuoteNotFound) {
			s.logger.Warn("quote lookup failed", zap.String("quote_id", parsed), zap.Error(err))
		}
		return nil
	}
	return q
}

// Pin makes the quote the widget's choice until Refresh clears it.
func (s *WidgetService) Pin(ctx context.Context, id string) error {
	parsed, err := domain.ParseQuoteID(id)
	if err != nil {
		return err
	}

	if _, err := s.quotes.Get(ctx, parsed); err != nil {
		return err
	}

	if err := s.prefs.SetPinnedQuoteID(ctx, parsed); err != nil {
		s.logger.Error("pin quote failed", zap.String("quote_id", parsed), zap.Error(err))
		return fmt.Errorf("pin quote: %w", err)
	}

	s.requestReload(domain.ReasonQuotePinned, parsed)
	return nil
}

// Refresh drops the pin but keeps today's cached pick.
func (s *WidgetService) Refresh(ctx context.Context) error {
	if err := s.prefs.ClearPinnedQuoteID(ctx); err != nil {
		s.logger.Error("clear pinned quote failed", zap.Error(err))
		return fmt.Errorf("refresh widget: %w", err)
	}

	s.requestReload(domain.ReasonManualRefresh, "")
	return nil
}

func (s *WidgetService) State(ctx context.Context) (WidgetState, error) {
	return s.prefs.State(ctx)
}

func (s *WidgetService) requestReload(reason domain.ReloadReason, quoteID string) {
	if s.reloads == nil {
		return
	}
	s.reloads.Enqueue(domain.ReloadSignal{Reason: reason, QuoteID: quoteID, At: s.now().UTC()})
}

// SameDay compares calendar dates in loc, not 24h windows.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// NextMidnight is the first local midnight strictly after t.
func NextMidnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}
