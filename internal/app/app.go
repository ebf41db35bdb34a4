package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mahenabeywickrama/bovita-candles-fe/internal/catalog"
	"github.com/mahenabeywickrama/bovita-candles-fe/internal/config"
	"github.com/mahenabeywickrama/bovita-candles-fe/internal/domain"
	"github.com/mahenabeywickrama/bovita-candles-fe/internal/gateway"
	"github.com/mahenabeywickrama/bovita-candles-fe/internal/session"
	"github.com/mahenabeywickrama/bovita-candles-fe/internal/web"
	"github.com/mahenabeywickrama/bovita-candles-fe/pkg/health"
	"github.com/mahenabeywickrama/bovita-candles-fe/pkg/httpclient"
)

// App wires together all dependencies and runs the storefront server.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	redis      *redis.Client
}

// NewApp builds the full dependency graph: session store, backend client with
// circuit breaker, catalog snapshot cache, renderer and router.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Backend REST client. Failures are reported once; the breaker sheds
	// load when the backend is down.
	base := httpclient.New(httpclient.Config{
		Timeout:         cfg.APITimeout,
		MaxConnsPerHost: cfg.APIMaxConns,
	})
	breakerCfg := httpclient.DefaultCircuitBreakerConfig("storefront-api")
	breakerCfg.MinRequests = cfg.BreakerMinRequests
	breakerCfg.Timeout = time.Duration(cfg.BreakerOpenSecs) * time.Second
	breakerCfg.MaxRequests = cfg.BreakerHalfCalls
	api := gateway.New(cfg.APIBaseURL, httpclient.NewCircuitBreakerClient(base, breakerCfg, logger))

	sessions := session.NewManager(session.NewRedisStore(redisClient), logger, cfg.SessionFallbackTTL)

	cache := catalog.NewCache(fetchFullCatalog(api), cfg.CatalogTTL, logger)

	renderer, err := web.NewRenderer(logger)
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}

	handlers := web.NewHandlers(web.HandlersConfig{
		API:          api,
		Sessions:     sessions,
		Catalog:      cache,
		Renderer:     renderer,
		Logger:       logger,
		CookieName:   cfg.SessionCookieName,
		CookieSecure: cfg.SessionCookieSecure,
	})

	// Health checks: the session store is critical, the backend is not
	// because cached catalog pages still render without it.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.RegisterNonCritical("backend", func(ctx context.Context) error {
		u, err := url.Parse(cfg.APIBaseURL)
		if err != nil {
			return fmt.Errorf("parse API base URL: %w", err)
		}
		d := net.Dialer{Timeout: 2 * time.Second}
		conn, err := d.DialContext(ctx, "tcp", u.Host)
		if err != nil {
			return fmt.Errorf("backend unreachable: %w", err)
		}
		_ = conn.Close()
		return nil
	})

	router := web.NewRouter(web.RouterConfig{
		Handlers:          handlers,
		Health:            healthHandler,
		Logger:            logger,
		ServiceName:       "storefront",
		PprofAllowedCIDRs: cfg.PprofAllowedCIDRs,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		redis:      redisClient,
	}, nil
}

// catalogFetchSize is how many products each backend page request asks for
// while assembling the full snapshot.
const catalogFetchSize = 100

// fetchFullCatalog pages through the backend until the whole catalog is in
// hand. Filtering and sorting then happen locally on the snapshot.
func fetchFullCatalog(api *gateway.Client) catalog.Fetcher {
	return func(ctx context.Context) ([]domain.Product, error) {
		var all []domain.Product
		for page := 1; ; page++ {
			result, err := api.ListProducts(ctx, page, catalogFetchSize)
			if err != nil {
				return nil, err
			}
			all = append(all, result.Items...)
			if len(result.Items) == 0 || page >= result.TotalPages {
				return all, nil
			}
		}
	}
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown drains in-flight requests, then closes the session store.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.redis.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
