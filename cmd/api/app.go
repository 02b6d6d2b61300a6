package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/loranstudio/quotewidget-engine/internal/adapters/cache"
	"github.com/loranstudio/quotewidget-engine/internal/adapters/events"
	adapterHTTP "github.com/loranstudio/quotewidget-engine/internal/adapters/handler/http"
	"github.com/loranstudio/quotewidget-engine/internal/adapters/repository"
	"github.com/loranstudio/quotewidget-engine/internal/config"
	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
	"github.com/loranstudio/quotewidget-engine/internal/core/services"
	"github.com/loranstudio/quotewidget-engine/internal/core/workers"
)

// application holds the wired components of one service instance.
type application struct {
	router  *gin.Engine
	db      *sqlx.DB
	redis   *redis.Client
	hub     *events.Hub
	worker  *workers.ReloadWorker
	quotes  *services.QuoteService
	widgets *services.WidgetService
	logger  *zap.Logger
}

// newApplication opens storage, wires services and starts the background
// work bound to ctx. Close releases the connections.
func newApplication(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*application, error) {
	startTime := time.Now()

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	logger.Info("connecting to database", zap.String("driver", cfg.DBDriver))
	db, err := repository.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("database ready")

	app := &application{db: db, logger: logger, hub: events.NewHub(logger)}

	var quoteRepo domain.QuoteRepository = repository.NewSQLQuoteRepository(db)
	var prefStore domain.PreferenceStore = repository.NewSQLPreferenceStore(db, cfg.AppGroup)
	publishers := []workers.ReloadPublisher{app.hub}
	var bus *cache.RedisReloadBus

	if cfg.RedisEnabled() {
		rdb, err := cache.NewRedisClient(ctx, cache.Options{
			Host:        cfg.RedisHost,
			Port:        cfg.RedisPort,
			Password:    cfg.RedisPassword,
			DB:          cfg.RedisDB,
			Namespace:   cfg.AppGroup,
			PoolSize:    cfg.RedisPoolSize,
			DialTimeout: cfg.RedisDialTimeout,
		})
		if err != nil {
			logger.Warn("redis unavailable, using sql preferences and in-process reloads", zap.Error(err))
		} else {
			app.redis = rdb
			prefStore = cache.NewRedisPreferenceStore(rdb, cfg.AppGroup)
			if cfg.CacheTTL > 0 {
				quoteRepo = repository.NewCachedQuoteRepository(quoteRepo, rdb, cfg.AppGroup, cfg.CacheTTL, logger)
			}
			// Pub/sub echoes our own signals back, so the hub is fed only
			// from the bus.
			bus = cache.NewRedisReloadBus(rdb, cfg.AppGroup, logger)
			publishers = []workers.ReloadPublisher{bus}
			logger.Info("redis connected", zap.String("reload_channel", bus.Channel()))
		}
	}

	prefs := services.NewPreferenceChannel(prefStore)
	app.worker = workers.NewReloadWorker(logger, loc, publishers)
	app.quotes = services.NewQuoteService(quoteRepo, prefs, logger)
	app.widgets = services.NewWidgetService(app.quotes, prefs, app.worker, logger, services.WithLocation(loc))

	app.quotes.Subscribe(app.worker.Enqueue)
	app.worker.Start(ctx)

	if bus != nil {
		go func() {
			if err := bus.Listen(ctx, app.hub.Forward); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("reload bus stopped", zap.Error(err))
			}
		}()
	}

	if cfg.SeedSamples {
		if _, err := app.quotes.SeedIfEmpty(ctx); err != nil {
			app.Close()
			return nil, fmt.Errorf("seed sample quotes: %w", err)
		}
	}

	app.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		QuoteHandler:  adapterHTTP.NewQuoteHandler(app.quotes),
		WidgetHandler: adapterHTTP.NewWidgetHandler(app.widgets, app.hub),
		DB:            db,
		Redis:         app.redis,
		Logger:        logger,
		Namespace:     cfg.AppGroup,
		RateLimit:     cfg.RateLimit,
		RateWindow:    cfg.RateWindow,
		StartTime:     startTime,
	})

	return app, nil
}

func (a *application) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("redis close failed", zap.Error(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("database close failed", zap.Error(err))
	}
}
