package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/mediaboard/services/canvas/domain/models"
)

// ItemRepository is the persistence-service contract for canvas items: a
// record store with select-by-filter, insert, update-by-id and delete-by-id
// on the canvas_items collection. Every call is scoped by project id.
// The domain layer owns this interface; infrastructure implements it.
type ItemRepository interface {
	// FindByProject returns the project's items ordered by z_index, ties
	// broken by insertion order.
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]*models.CanvasItem, error)

	// GetByID returns ErrItemNotFound when the item is absent from the project.
	GetByID(ctx context.Context, projectID, id uuid.UUID) (*models.CanvasItem, error)

	// Insert stores a new record and returns it with its server-assigned id
	// and timestamps.
	Insert(ctx context.Context, item *models.CanvasItem) (*models.CanvasItem, error)

	// UpdateByID applies a partial update and returns the stored record.
	// Last write wins; returns ErrItemNotFound when absent.
	UpdateByID(ctx context.Context, projectID, id uuid.UUID, patch models.Patch) (*models.CanvasItem, error)

	// DeleteByID hard-deletes the record; returns ErrItemNotFound when absent.
	DeleteByID(ctx context.Context, projectID, id uuid.UUID) error
}
