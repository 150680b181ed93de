package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/mediaboard/pkg/app"
	"github.com/ghuser/mediaboard/pkg/cache"
	"github.com/ghuser/mediaboard/pkg/config"
	"github.com/ghuser/mediaboard/pkg/database"
	"github.com/ghuser/mediaboard/pkg/events"
	"github.com/ghuser/mediaboard/pkg/logger"
	"github.com/ghuser/mediaboard/pkg/telemetry"
	canvasEvents "github.com/ghuser/mediaboard/services/canvas/domain/events"
)

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

	if cfg.UsesSQLite() {
		log.Info("event bus is disabled with the sqlite driver, worker has nothing to consume")
		return
	}

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close() //nolint:errcheck
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	subCtx, cancel := context.WithCancel(ctx)
	if err := registerSubscribers(subCtx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		cancel()
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	listCache := cache.NewItemListCache(a.Redis, a.Config.CanvasListTTL)
	errCh, err := a.EventBus.SubscribeTopics(ctx, canvasEvents.Topics, handleItemEvent(listCache, a.Logger))
	if err != nil {
		return fmt.Errorf("subscribe canvas topics: %w", err)
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error", "error", err)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", canvasEvents.Topics)
	return nil
}

// listInvalidator is the slice of cache.ItemListCache the handler needs.
type listInvalidator interface {
	Invalidate(ctx context.Context, projectID uuid.UUID) error
}

// handleItemEvent drops the project's cached item list for any canvas item
// event. Deleting a missing key is a no-op, so redelivery is harmless.
func handleItemEvent(lists listInvalidator, log logger.Logger) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt canvasEvents.ItemEvent
		if err := events.DecodeJSON(msg, &evt); err != nil {
			return err
		}
		if evt.ProjectID == uuid.Nil {
			log.WarnContext(ctx, "item event without project, skipped", "event_id", evt.EventID, "topic", evt.Topic)
			return nil
		}

		if err := lists.Invalidate(ctx, evt.ProjectID); err != nil {
			return fmt.Errorf("invalidate item list for %s: %w", evt.ProjectID, err)
		}
		log.InfoContext(ctx, "item list invalidated",
			"topic", evt.Topic, "project_id", evt.ProjectID, "item_id", evt.ItemID)
		return nil
	}
}
