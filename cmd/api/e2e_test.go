package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/loranstudio/quotewidget-engine/internal/config"
	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
)

func testConfig(t *testing.T, seed bool) *config.Config {
	return &config.Config{
		Port:        "0",
		AppEnv:      config.EnvDevelopment,
		LogLevel:    "info",
		AppGroup:    "group.test",
		TZName:      "UTC",
		DBDriver:    "sqlite",
		DBPath:      filepath.Join(t.TempDir(), "QuoteModel.sqlite"),
		RateWindow:  time.Minute,
		SeedSamples: seed,
	}
}

func startApp(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	app, err := newApplication(ctx, cfg, zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		cancel()
		<-app.worker.Done()
		app.Close()
	})
	return app
}

func call(app *application, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func waitForSignal(t *testing.T, signals <-chan domain.ReloadSignal, reason domain.ReloadReason) domain.ReloadSignal {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case s := <-signals:
			if s.Reason == reason {
				return s
			}
		case <-timeout:
			t.Fatalf("no %s signal received", reason)
			return domain.ReloadSignal{}
		}
	}
}

func TestEndToEnd_SeedOnFirstStartOnly(t *testing.T) {
	cfg := testConfig(t, true)

	app := startApp(t, cfg)
	w := call(app, "GET", "/api/v1/quotes", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []domain.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, len(domain.SampleQuotes))
	assert.Equal(t, domain.SampleQuotes[0].Author, list[0].Author, "samples keep their order")

	for _, q := range list {
		require.Equal(t, http.StatusNoContent, call(app, "DELETE", "/api/v1/quotes/"+q.ID, "").Code)
	}

	// A second instance on the same file sees the seed marker.
	restarted := startApp(t, cfg)
	w = call(restarted, "GET", "/api/v1/quotes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestEndToEnd_QuoteAndWidgetLifecycle(t *testing.T) {
	app := startApp(t, testConfig(t, false))

	signals, unsubscribe := app.hub.Subscribe()
	defer unsubscribe()

	var quoteID string

	t.Run("1. Empty widget", func(t *testing.T) {
		w := call(app, "GET", "/api/v1/widget/snapshot", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), domain.EmptyCollectionText)
		assert.Contains(t, w.Body.String(), `"source":"empty"`)
	})

	t.Run("2. Add quote", func(t *testing.T) {
		w := call(app, "POST", "/api/v1/quotes", `{"text": "Bądź zmianą, którą chcesz widzieć w świecie.", "author": "Mahatma Gandhi"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var q domain.Quote
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
		quoteID = q.ID

		got := waitForSignal(t, signals, domain.ReasonQuoteAdded)
		assert.Equal(t, quoteID, got.QuoteID)
	})

	t.Run("3. Search folds diacritics", func(t *testing.T) {
		w := call(app, "GET", "/api/v1/quotes?q=SWIECIE", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), quoteID)
	})

	t.Run("4. Widget picks and caches the daily quote", func(t *testing.T) {
		w := call(app, "GET", "/api/v1/widget/timeline", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"source":"random"`)

		w = call(app, "GET", "/api/v1/widget/state", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"daily_quote_id":"`+quoteID+`"`)

		w = call(app, "GET", "/api/v1/widget/snapshot", "")
		assert.Contains(t, w.Body.String(), `"source":"daily"`)
	})

	t.Run("5. Pin and refresh", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, call(app, "POST", "/api/v1/widget/pin", `{"quote_id": "`+quoteID+`"}`).Code)
		waitForSignal(t, signals, domain.ReasonQuotePinned)

		w := call(app, "GET", "/api/v1/widget/snapshot", "")
		assert.Contains(t, w.Body.String(), `"source":"pinned"`)

		require.Equal(t, http.StatusNoContent, call(app, "POST", "/api/v1/widget/refresh", "").Code)
		waitForSignal(t, signals, domain.ReasonManualRefresh)

		w = call(app, "GET", "/api/v1/widget/snapshot", "")
		assert.Contains(t, w.Body.String(), `"source":"daily"`)
	})

	t.Run("6. Edit quote", func(t *testing.T) {
		w := call(app, "PUT", "/api/v1/quotes/"+quoteID, `{"text": "Nowa treść", "author": "Gandhi"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Nowa treść")
		waitForSignal(t, signals, domain.ReasonQuoteUpdated)
	})

	t.Run("7. Delete quote empties the widget", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, call(app, "DELETE", "/api/v1/quotes/"+quoteID, "").Code)
		waitForSignal(t, signals, domain.ReasonQuoteDeleted)

		w := call(app, "GET", "/api/v1/widget/snapshot", "")
		assert.Contains(t, w.Body.String(), `"source":"empty"`)

		assert.Equal(t, http.StatusNotFound, call(app, "GET", "/api/v1/quotes/"+quoteID, "").Code)
	})

	t.Run("8. Health", func(t *testing.T) {
		w := call(app, "GET", "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"connected"`)
	})
}
