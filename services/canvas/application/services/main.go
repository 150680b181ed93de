package services

import (
	"context"
	"fmt"

	"github.com/ghuser/mediaboard/pkg/app"
	"github.com/ghuser/mediaboard/pkg/auth"
	"github.com/ghuser/mediaboard/pkg/cache"
	"github.com/ghuser/mediaboard/pkg/config"
	"github.com/ghuser/mediaboard/pkg/database"
	"github.com/ghuser/mediaboard/services/canvas/domain/registry"
	"github.com/ghuser/mediaboard/services/canvas/domain/repositories"
	"github.com/ghuser/mediaboard/services/canvas/infrastructure/persistence/postgres"
	"github.com/ghuser/mediaboard/services/canvas/infrastructure/persistence/sqlite"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Items    *ItemStores
	Creation *CreationService
	Registry *registry.Registry
	// Production masks 5xx error details in responses.
	Production bool
}

// New wires the canvas application services with infrastructure from the
// Application container. The repository follows the database driver.
func New(ctx context.Context, a *app.Application) (*Services, error) {
	repo, err := newRepository(ctx, a)
	if err != nil {
		return nil, err
	}

	var listCache ListCache
	if a.Redis != nil {
		ttl := cache.DefaultItemListTTL
		if a.Config != nil {
			ttl = a.Config.CanvasListTTL
		}
		listCache = cache.NewItemListCache(a.Redis, ttl)
	}

	var uploader registry.Uploader
	if a.Blob != nil {
		uploader = a.Blob
	}
	reg := registry.Default(uploader)

	items := NewItemStores(repo, listCache, reg, auth.SessionIdentity{}, a.Logger)
	return &Services{
		Items:      items,
		Creation:   NewCreationService(reg),
		Registry:   reg,
		Production: a.Config != nil && a.Config.Environment == config.EnvProduction,
	}, nil
}

func newRepository(ctx context.Context, a *app.Application) (repositories.ItemRepository, error) {
	switch a.Db.Driver() {
	case database.DriverSQLite:
		repo, err := sqlite.NewItemRepository(ctx, a.Db)
		if err != nil {
			return nil, fmt.Errorf("canvas sqlite repository: %w", err)
		}
		return repo, nil
	default:
		return postgres.NewItemRepository(a.Db, a.EventBus), nil
	}
}
