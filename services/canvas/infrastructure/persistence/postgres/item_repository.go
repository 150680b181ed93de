package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/mediaboard/pkg/auth"
	"github.com/ghuser/mediaboard/pkg/database"
	"github.com/ghuser/mediaboard/pkg/events"
	canvasdomain "github.com/ghuser/mediaboard/services/canvas/domain"
	domainevents "github.com/ghuser/mediaboard/services/canvas/domain/events"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
	"github.com/ghuser/mediaboard/services/canvas/infrastructure/persistence/postgres/db"
)

// Postgres error codes surfaced by the canvas_items constraints.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given pool. When
// bus is non-nil every write publishes an item event in the same transaction.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus}
}

// FindByProject returns the project's items in paint order.
func (r *ItemRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*models.CanvasItem, error) {
	rows, err := db.New(r.db.DB()).FindItemsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	items := make([]*models.CanvasItem, 0, len(rows))
	for _, row := range rows {
		item, err := rowToItem(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// GetByID returns ErrItemNotFound if the item does not exist in the project.
func (r *ItemRepository) GetByID(ctx context.Context, projectID, id uuid.UUID) (*models.CanvasItem, error) {
	row, err := db.New(r.db.DB()).GetItemByID(ctx, db.GetItemByIDParams{ID: id, ProjectID: projectID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, canvasdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row)
}

// Insert stores item under a fresh id and publishes canvas.item.created.
func (r *ItemRepository) Insert(ctx context.Context, item *models.CanvasItem) (*models.CanvasItem, error) {
	data, err := encodeData(item.Data)
	if err != nil {
		return nil, err
	}

	var stored *models.CanvasItem
	err = r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).InsertItem(ctx, db.InsertItemParams{
			ID:        uuid.New(),
			ProjectID: item.ProjectID,
			Type:      item.Type.String(),
			X:         item.X,
			Y:         item.Y,
			Width:     nullFloat(item.Width),
			Height:    nullFloat(item.Height),
			ZIndex:    int32(item.ZIndex),
			Title:     nullString(item.Title),
			Content:   nullString(item.Content),
			Data:      data,
			CreatedBy: item.CreatedBy,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return mapWriteError("insert item", err)
		}
		if stored, err = rowToItem(row); err != nil {
			return err
		}
		return r.publish(ctx, tx, domainevents.TopicItemCreated, stored)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// UpdateByID writes only the fields set in patch. Concurrent writers are not
// reconciled: the last statement the server executes wins.
func (r *ItemRepository) UpdateByID(ctx context.Context, projectID, id uuid.UUID, patch models.Patch) (*models.CanvasItem, error) {
	var data db.RawJSON
	if patch.Data != nil {
		encoded, err := encodeData(patch.Data)
		if err != nil {
			return nil, err
		}
		data = encoded
	}

	var stored *models.CanvasItem
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).UpdateItem(ctx, db.UpdateItemParams{
			ID:        id,
			ProjectID: projectID,
			X:         nullFloat(patch.X),
			Y:         nullFloat(patch.Y),
			Width:     nullFloat(patch.Width),
			Height:    nullFloat(patch.Height),
			ZIndex:    nullInt(patch.ZIndex),
			Title:     nullString(patch.Title),
			Content:   nullString(patch.Content),
			Data:      data,
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return canvasdomain.ErrItemNotFound
			}
			return mapWriteError("update item", err)
		}
		if stored, err = rowToItem(row); err != nil {
			return err
		}
		return r.publish(ctx, tx, domainevents.TopicItemUpdated, stored)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// DeleteByID hard-deletes the item. There is no tombstone.
func (r *ItemRepository) DeleteByID(ctx context.Context, projectID, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		row, err := q.GetItemByID(ctx, db.GetItemByIDParams{ID: id, ProjectID: projectID})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return canvasdomain.ErrItemNotFound
			}
			return fmt.Errorf("query item: %w", err)
		}

		n, err := q.DeleteItem(ctx, db.DeleteItemParams{ID: id, ProjectID: projectID})
		if err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		if n == 0 {
			return canvasdomain.ErrItemNotFound
		}

		item, err := rowToItem(row)
		if err != nil {
			return err
		}
		return r.publish(ctx, tx, domainevents.TopicItemDeleted, item)
	})
}

func (r *ItemRepository) publish(ctx context.Context, tx *sql.Tx, topic string, item *models.CanvasItem) error {
	if r.bus == nil {
		return nil
	}
	actor, _ := auth.UserIDFromCtx(ctx)
	event := domainevents.NewItemEvent(topic, item.ProjectID, item.ID, item.Type.String(), actor)

	msg, err := events.NewJSONMessage(event)
	if err != nil {
		return err
	}
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", fmt.Sprint(event.Version))

	return r.bus.PublishTx(ctx, tx, topic, msg)
}

func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCheckViolation:
			return fmt.Errorf("%w: %s", canvasdomain.ErrInvalidGeometry, pgErr.ConstraintName)
		case pgUniqueViolation:
			return fmt.Errorf("%s: duplicate id: %w", op, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
