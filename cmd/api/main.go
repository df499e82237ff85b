package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"yatube/internal/app"
	"yatube/internal/config"
	hhttp "yatube/internal/handler/http"
	"yatube/internal/handler/http/identity"
	"yatube/internal/infra/db"
	"yatube/internal/observability/logging"
	"yatube/internal/observability/tracing"
	"yatube/internal/pagecache"
	"yatube/internal/resilience/circuitbreaker"
)

// limiterCleanupSchedule drops idle per-user write limiters.
const limiterCleanupSchedule = "@every 5m"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.String("config", cfg.String()))

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp := tracing.NewProvider(cfg.TraceSampleRatio)
	tracing.Install(tp)
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	driver, err := cfg.Driver()
	if err != nil {
		return err
	}
	if err := db.MigrateUp(driver, cfg.DatabaseURL); err != nil {
		return err
	}
	conn, err := db.Open(ctx, driver, cfg.DatabaseURL, cfg.ConnectionConfig())
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	breaker := circuitbreaker.NewDB(conn.DB, circuitbreaker.DefaultConfig())
	repos, err := app.NewRepositories(driver, breaker)
	if err != nil {
		return err
	}
	svc := app.NewServices(repos)

	scheduler := cron.New()
	store, pinger, closeStore, err := openCacheStore(cfg, scheduler, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	cache := pagecache.New(store, identity.IsAuthenticated,
		pagecache.WithPrefix(cfg.CachePrefix),
		pagecache.WithLogger(logger))

	limiter := hhttp.NewWriteLimiter(cfg.WriteRatePerMinute)
	if _, err := hhttp.ScheduleLimiterCleanup(scheduler, limiterCleanupSchedule, limiter, logger); err != nil {
		return err
	}

	version := getVersion()
	handler := hhttp.NewRouter(hhttp.Deps{
		Listing:       svc.Listing,
		Posts:         svc.Posts,
		Groups:        svc.Groups,
		Follows:       svc.Follows,
		Authenticator: identity.NewAuthenticator([]byte(cfg.JWTSecret), identity.WithCookieName(cfg.SessionCookie)),
		Cache:         cache,
		CacheTTL: hhttp.CacheTTL{
			Index:   cfg.CacheIndexTTL,
			Group:   cfg.CacheGroupTTL,
			Profile: cfg.CacheProfileTTL,
		},
		Limiter:  limiter,
		LoginURL: cfg.LoginURL,
		Health: &hhttp.HealthHandler{
			DB:      conn.DB,
			Cache:   pinger,
			Breaker: breaker,
			Version: version,
		},
		Logger: logger,
	})

	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", version),
			slog.String("driver", string(driver)),
			slog.String("cache", cfg.CacheBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	logger.Info("shutting down server...")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
	return nil
}

// openCacheStore builds the configured page cache backend. The memory store
// gets a sweep job on scheduler; redis expires keys itself and is pinged by
// the health check.
func openCacheStore(cfg *config.Config, scheduler *cron.Cron, logger *slog.Logger) (pagecache.Store, hhttp.Pinger, func(), error) {
	if cfg.CacheBackend == config.CacheRedis {
		client, err := pagecache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		store, err := pagecache.NewRedisStore(client, pagecache.WithKeyPrefix(cfg.CachePrefix))
		if err != nil {
			_ = client.Close()
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := store.Close(); err != nil {
				logger.Warn("failed to close redis", slog.Any("error", err))
			}
		}
		return store, store, closeFn, nil
	}

	store := pagecache.NewMemoryStore()
	if _, err := pagecache.ScheduleSweep(scheduler, cfg.CacheSweepSchedule, store, logger); err != nil {
		return nil, nil, nil, err
	}
	return store, nil, func() {}, nil
}
