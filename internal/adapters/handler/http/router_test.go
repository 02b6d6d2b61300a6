package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	_ "github.com/loranstudio/quotewidget-engine/docs"
	adapterHTTP "github.com/loranstudio/quotewidget-engine/internal/adapters/handler/http"
	"github.com/loranstudio/quotewidget-engine/internal/adapters/repository"
	"github.com/loranstudio/quotewidget-engine/internal/core/services"
)

func setupFullRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.Connect(repository.DriverSQLite, filepath.Join(t.TempDir(), "QuoteModel.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repository.Migrate(context.Background(), db))

	logger := zap.NewNop()
	channel := services.NewPreferenceChannel(repository.NewSQLPreferenceStore(db, "group.test"))
	quoteSvc := services.NewQuoteService(repository.NewSQLQuoteRepository(db), channel, logger)
	widgetSvc := services.NewWidgetService(quoteSvc, channel, nil, logger)

	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		QuoteHandler:  adapterHTTP.NewQuoteHandler(quoteSvc),
		WidgetHandler: adapterHTTP.NewWidgetHandler(widgetSvc, nil),
		DB:            db,
		Logger:        logger,
		Namespace:     "group.test",
		StartTime:     time.Now(),
	})
}

func TestRouter_Health(t *testing.T) {
	router := setupFullRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"connected"`)
	assert.Contains(t, w.Body.String(), `"redis":"disabled"`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := setupFullRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("OPTIONS", "/api/v1/quotes", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_SwaggerDoc(t *testing.T) {
	router := setupFullRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/swagger/doc.json", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/quotes/random"`)
}

func TestRouter_QuoteLifecycleOnSQLite(t *testing.T) {
	router := setupFullRouter(t)
	env := &testEnv{router: router}

	w := doJSON(env, "POST", "/api/v1/quotes", `{"text": "Łódź nocą", "author": "Anonim"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(env, "GET", "/api/v1/quotes?q=lodz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeQuotes(t, w), 1)

	w = doJSON(env, "GET", "/api/v1/widget/events", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "events route needs a subscriber")
}
