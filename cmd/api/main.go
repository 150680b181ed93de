package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/mediaboard/docs/swagger"
	"github.com/ghuser/mediaboard/pkg/app"
	"github.com/ghuser/mediaboard/pkg/auth"
	"github.com/ghuser/mediaboard/pkg/blob"
	"github.com/ghuser/mediaboard/pkg/cache"
	"github.com/ghuser/mediaboard/pkg/config"
	"github.com/ghuser/mediaboard/pkg/database"
	"github.com/ghuser/mediaboard/pkg/events"
	"github.com/ghuser/mediaboard/pkg/httpx"
	"github.com/ghuser/mediaboard/pkg/logger"
	"github.com/ghuser/mediaboard/pkg/telemetry"
	canvasApi "github.com/ghuser/mediaboard/services/canvas/application/api"
	canvasServices "github.com/ghuser/mediaboard/services/canvas/application/services"
	"github.com/ghuser/mediaboard/services/canvas/application/surface"
)

// @title					Mediaboard API
// @version				1.0
// @description			Infinite canvas of typed media cards with drag, zoom and pan.
// @contact.name			API Support
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	appConfig := &app.Application{Config: cfg, Logger: log}
	health := httpx.HealthChecks{}

	if cfg.UsesSQLite() {
		db, err := database.OpenSQLite(ctx, cfg.SQLiteDSN, log)
		if err != nil {
			log.Error("failed to open sqlite store", "error", err)
			os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
		}
		defer db.Close() //nolint:errcheck
		appConfig.Db = db
		log.Info("sqlite store opened, event bus disabled")
	} else {
		pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer pool.Close() //nolint:errcheck
		appConfig.Db = pool
		log.Info("database pool connected")

		eventBus, err := events.NewEventBusWithForwarder(cfg, log)
		if err != nil {
			log.Error("failed to setup event bus", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer eventBus.Close() //nolint:errcheck

		if err := eventBus.StartForwarder(ctx); err != nil {
			log.Error("failed to start event forwarder", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		appConfig.EventBus = eventBus
		health.EventBus = eventBus
	}
	health.Database = appConfig.Db

	var sessionStore sessions.Store
	redisClient, err := cache.NewRedisClient(cfg)
	switch {
	case err == nil:
		defer redisClient.Close() //nolint:errcheck
		appConfig.Redis = redisClient
		health.Redis = redisClient
		sessionStore = auth.NewSessionStore(
			redisClient.Client(),
			[]byte(cfg.SessionAuthKey),
			[]byte(cfg.SessionEncryptionKey),
			cfg.Environment == config.EnvProduction,
		)
		log.Info("redis connected", "session_backend", "redis")
	case cfg.Environment == config.EnvProduction:
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	default:
		sessionStore = sessions.NewCookieStore([]byte(cfg.SessionAuthKey), []byte(cfg.SessionEncryptionKey))
		log.Warn("redis unavailable, item-list cache disabled and sessions kept in cookies", "error", err)
	}
	appConfig.SessionStore = sessionStore

	uploader, err := blob.NewMinioUploader(ctx, cfg)
	if err != nil {
		log.Warn("blob storage unavailable, image attachments will be embedded", "error", err)
	} else {
		appConfig.Blob = uploader
		health.Blob = uploader
	}

	svcs, err := canvasServices.New(ctx, appConfig)
	if err != nil {
		log.Error("failed to wire canvas services", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	canvasSessions := surface.NewSessions(svcs.Items, svcs.Creation, cfg.CanvasSessionTTL, log)
	defer canvasSessions.Close()

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RequestsPerMinute:  cfg.HTTPRequestsPerMinute,
		},
		logger.Middleware(log, "/api/canvas/{sessionID}/pointer"),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.HealthHandler(health))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/auth", func(r chi.Router) {
		if cfg.Environment != config.EnvProduction {
			r.Post("/dev/session", auth.DevSignInHandler(sessionStore, log))
		}
		r.Post("/signout", auth.SignOutHandler(sessionStore, log))
	})
	r.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireAuth(sessionStore, log))
		registerRoutes(r, svcs, canvasSessions)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "driver", cfg.PersistenceDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped", "open_canvases", canvasSessions.Len())
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, svcs *canvasServices.Services, canvasSessions *surface.Sessions) {
	canvasApi.CanvasRoutes(r, svcs, canvasSessions)
}
