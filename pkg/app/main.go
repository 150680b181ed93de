package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/mediaboard/pkg/blob"
	"github.com/ghuser/mediaboard/pkg/cache"
	"github.com/ghuser/mediaboard/pkg/config"
	"github.com/ghuser/mediaboard/pkg/database"
	"github.com/ghuser/mediaboard/pkg/events"
	"github.com/ghuser/mediaboard/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to every service's Routes call during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "processing item", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config       *config.Config
	Db           *database.Database // Postgres, or sqlite when PERSISTENCE_DRIVER=sqlite
	Logger       logger.Logger
	EventBus     *events.EventBus   // nil in sqlite mode
	Redis        *cache.RedisClient // nil disables the item-list cache
	Blob         *blob.MinioUploader
	SessionStore sessions.Store // Redis-backed session store; nil in worker process
}
