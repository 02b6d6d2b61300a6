package workers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
	"github.com/loranstudio/quotewidget-engine/internal/core/services"
)

const queueSize = 100

// ReloadPublisher delivers a reload signal to widget surfaces.
type ReloadPublisher interface {
	PublishReload(ctx context.Context, signal domain.ReloadSignal) error
}

type Option func(*ReloadWorker)

func WithClock(now func() time.Time) Option {
	return func(w *ReloadWorker) { w.now = now }
}

// WithTimer replaces time.After for the midnight rollover.
func WithTimer(after func(d time.Duration) <-chan time.Time) Option {
	return func(w *ReloadWorker) { w.after = after }
}

// ReloadWorker fans reload signals out to the publishers off the request
// path, and emits a day rollover signal at every local midnight so widgets
// pick a new daily quote.
type ReloadWorker struct {
	publishers []ReloadPublisher
	logger     *zap.Logger
	loc        *time.Location
	now        func() time.Time
	after      func(d time.Duration) <-chan time.Time
	jobs       chan domain.ReloadSignal
	done       chan struct{}
}

func NewReloadWorker(logger *zap.Logger, loc *time.Location, publishers []ReloadPublisher, opts ...Option) *ReloadWorker {
	w := &ReloadWorker{
		publishers: publishers,
		logger:     logger,
		loc:        loc,
		now:        time.Now,
		after:      time.After,
		jobs:       make(chan domain.ReloadSignal, queueSize),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *ReloadWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		w.logger.Info("reload worker started", zap.Int("publishers", len(w.publishers)))

		rollover := w.after(w.untilMidnight())
		for {
			select {
			case signal := <-w.jobs:
				w.publish(ctx, signal)
			case at := <-rollover:
				w.publish(ctx, domain.ReloadSignal{Reason: domain.ReasonDayRollover, At: at.UTC()})
				rollover = w.after(w.untilMidnight())
			case <-ctx.Done():
				w.logger.Info("reload worker shutting down", zap.Int("pending", len(w.jobs)))
				return
			}
		}
	}()
}

// Done is closed once the worker loop has returned.
func (w *ReloadWorker) Done() <-chan struct{} {
	return w.done
}

// Enqueue never blocks. When the queue is full the signal is dropped; the
// next one triggers the same full re-render anyway.
func (w *ReloadWorker) Enqueue(signal domain.ReloadSignal) {
	select {
	case w.jobs <- signal:
	default:
		w.logger.Warn("reload queue full, dropping signal",
			zap.String("reason", string(signal.Reason)),
			zap.String("quote_id", signal.QuoteID),
		)
	}
}

func (w *ReloadWorker) publish(ctx context.Context, signal domain.ReloadSignal) {
	for _, p := range w.publishers {
		if err := p.PublishReload(ctx, signal); err != nil {
			w.logger.Error("publish reload failed", zap.String("reason", string(signal.Reason)), zap.Error(err))
		}
	}
	w.logger.Debug("reload published", zap.String("reason", string(signal.Reason)), zap.String("quote_id", signal.QuoteID))
}

func (w *ReloadWorker) untilMidnight() time.Duration {
	now := w.now()
	return services.NextMidnight(now, w.loc).Sub(now)
}
