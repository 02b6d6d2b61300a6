package http_test

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	adapterHTTP "github.com/loranstudio/quotewidget-engine/internal/adapters/handler/http"
	"github.com/loranstudio/quotewidget-engine/internal/adapters/repository"
	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
	"github.com/loranstudio/quotewidget-engine/internal/core/services"
)

var errDiskIO = errors.New("disk I/O error")

// brokenRepo fails every call that reaches storage.
type brokenRepo struct {
	domain.QuoteRepository
}

func (brokenRepo) List(ctx context.Context, filter domain.QuoteFilter) ([]*domain.Quote, error) {
	return nil, errDiskIO
}

func (brokenRepo) Create(ctx context.Context, quote *domain.Quote) error {
	return errDiskIO
}

func (brokenRepo) Count(ctx context.Context) (int, error) {
	return 0, errDiskIO
}

type recordingReloads struct {
	signals []domain.ReloadSignal
}

func (r *recordingReloads) Enqueue(signal domain.ReloadSignal) {
	r.signals = append(r.signals, signal)
}

// fakeSubscriber replays the queued signals then ends the stream.
type fakeSubscriber struct {
	signals   []domain.ReloadSignal
	cancelled bool
}

func (f *fakeSubscriber) Subscribe() (<-chan domain.ReloadSignal, func()) {
	ch := make(chan domain.ReloadSignal, len(f.signals))
	for _, s := range f.signals {
		ch <- s
	}
	close(ch)
	return ch, func() { f.cancelled = true }
}

type testEnv struct {
	router  *gin.Engine
	repo    domain.QuoteRepository
	prefs   *repository.InMemoryPreferenceStore
	reloads *recordingReloads
	events  *fakeSubscriber
}

func setupRouter() *testEnv {
	return setupRouterWithRepo(repository.NewInMemoryQuoteRepository())
}

func setupRouterWithRepo(repo domain.QuoteRepository) *testEnv {
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	prefs := repository.NewInMemoryPreferenceStore()
	channel := services.NewPreferenceChannel(prefs)
	reloads := &recordingReloads{}
	subscriber := &fakeSubscriber{}

	quoteSvc := services.NewQuoteService(repo, channel, logger)
	widgetSvc := services.NewWidgetService(quoteSvc, channel, reloads, logger, services.WithLocation(time.UTC))

	r := gin.New()
	api := r.Group("/api/v1")
	adapterHTTP.NewQuoteHandler(quoteSvc).RegisterRoutes(api)
	adapterHTTP.NewWidgetHandler(widgetSvc, subscriber).RegisterRoutes(api)

	return &testEnv{router: r, repo: repo, prefs: prefs, reloads: reloads, events: subscriber}
}

func (e *testEnv) seed(text, author string, at time.Time) *domain.Quote {
	q := domain.NewQuote(text, author, at)
	_ = e.repo.Create(context.Background(), q)
	return q
}
