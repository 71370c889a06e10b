package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"golang.org/x/time/rate"

	authservice "github.com/snake-playground/backend/app/modules/auth/application"
	authhandlers "github.com/snake-playground/backend/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/snake-playground/backend/app/modules/auth/infrastructure/jwt"
	authdb "github.com/snake-playground/backend/app/modules/auth/infrastructure/repositories"
	authrouter "github.com/snake-playground/backend/app/modules/auth/infrastructure/router"
	leaderboardservice "github.com/snake-playground/backend/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/snake-playground/backend/app/modules/leaderboard/infrastructure/handlers"
	leaderboarddb "github.com/snake-playground/backend/app/modules/leaderboard/infrastructure/repositories"
	leaderboardrouter "github.com/snake-playground/backend/app/modules/leaderboard/infrastructure/router"
	liveservice "github.com/snake-playground/backend/app/modules/live/application"
	livehandlers "github.com/snake-playground/backend/app/modules/live/infrastructure/handlers"
	liverouter "github.com/snake-playground/backend/app/modules/live/infrastructure/router"
	livews "github.com/snake-playground/backend/app/modules/live/infrastructure/ws"
	userservice "github.com/snake-playground/backend/app/modules/user/application"
	userhandlers "github.com/snake-playground/backend/app/modules/user/infrastructure/handlers"
	userdb "github.com/snake-playground/backend/app/modules/user/infrastructure/repositories"
	userrouter "github.com/snake-playground/backend/app/modules/user/infrastructure/router"
	"github.com/snake-playground/backend/config"
	"github.com/snake-playground/backend/internal/eventbus"
	"github.com/snake-playground/backend/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

// App wires the modules together and owns the process lifecycle.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      *bun.DB
	bus     *gochannel.GoChannel
	metrics *metrics.Metrics
	auth    *authservice.AuthServiceImpl
	server  *http.Server
}

// NewApp initializes the database, services and HTTP surface.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	m := metrics.New()
	bus := eventbus.New(logger)

	userRepo := &userdb.UserDBImpl{DB: db}
	ledgerRepo := &leaderboarddb.LeaderboardDBImpl{DB: db}
	tokenRepo := &authdb.TokenDBImpl{DB: db}

	jwtProvider := authjwt.NewProvider(cfg.JWT.Secret)
	authSvc := authservice.NewAuthService(userRepo, tokenRepo, jwtProvider, cfg.JWT.DefaultTTL, logger)
	userSvc := userservice.NewUserService(userRepo, logger)
	leaderboardSvc := leaderboardservice.NewLeaderboardService(ledgerRepo, userRepo, bus, logger)

	registry := liveservice.NewRegistry(logger, m)
	liveSvc := liveservice.NewLiveService(registry, leaderboardSvc, logger)
	stream := livews.NewStream(registry, cfg.Live.StreamInterval, logger)

	if err := eventbus.RunScoreMetrics(ctx, bus, m, logger); err != nil {
		return nil, fmt.Errorf("failed to start score metrics consumer: %w", err)
	}

	requireAuth := authhandlers.RequireAuth(authSvc, m)
	loginLimiter := authhandlers.NewIPRateLimiter(rate.Limit(cfg.Auth.LoginRatePerSecond), cfg.Auth.LoginBurst)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(authhandlers.CORSMiddleware(cfg.HTTP.CORSOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authrouter.Routes(authhandlers.NewHandlers(authSvc, logger), loginLimiter, requireAuth))
		r.Mount("/users", userrouter.Routes(userhandlers.NewHandlers(userSvc, leaderboardSvc, logger), requireAuth))
		r.Mount("/leaderboard", leaderboardrouter.Routes(leaderboardhandlers.NewHandlers(leaderboardSvc, logger), requireAuth))
		r.Mount("/live", liverouter.Routes(livehandlers.NewHandlers(liveSvc, logger), stream, requireAuth))
	})

	return &App{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		bus:     bus,
		metrics: m,
		auth:    authSvc,
		server: &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Run serves HTTP until ctx is canceled, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	go a.runTokenCleanup(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", slog.String("addr", a.cfg.HTTP.Addr))
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
		a.logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http shutdown failed", slog.Any("error", err))
	}

	if err := a.bus.Close(); err != nil {
		a.logger.Error("event bus close failed", slog.Any("error", err))
	}

	return a.db.Close()
}

// runTokenCleanup periodically prunes expired token revocations.
func (a *App) runTokenCleanup(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.Auth.TokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.auth.CleanupExpiredTokens(ctx); err != nil {
				a.logger.Error("token cleanup failed", slog.Any("error", err))
			}
		}
	}
}
