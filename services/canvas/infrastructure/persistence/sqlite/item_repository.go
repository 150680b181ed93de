// Package sqlite implements the canvas persistence contract on the embedded
// modernc sqlite driver. It backs local development and repository tests and
// never publishes events; the event bus needs Postgres.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"github.com/ghuser/mediaboard/pkg/database"
	"github.com/ghuser/mediaboard/pkg/migrator"
	canvasdomain "github.com/ghuser/mediaboard/services/canvas/domain"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// timestampLayout is fixed width so created_at sorts correctly as text.
// RFC3339Nano parses it back.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

const itemColumns = `id, project_id, type, x, y, width, height, z_index, title, content, data, created_by, created_at, updated_at`

// ItemRepository implements repositories.ItemRepository on sqlite.
type ItemRepository struct {
	db  *database.Database
	now func() time.Time
}

// NewItemRepository applies the embedded schema and returns a repository.
func NewItemRepository(ctx context.Context, d *database.Database) (*ItemRepository, error) {
	files, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("sqlite migrations: %w", err)
	}
	if _, err := migrator.Up(ctx, d.DB(), goose.DialectSQLite3, files); err != nil {
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return &ItemRepository{db: d, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (r *ItemRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*models.CanvasItem, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT `+itemColumns+` FROM canvas_items WHERE project_id = ? ORDER BY z_index, created_at, rowid`,
		projectID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []*models.CanvasItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, projectID, id uuid.UUID) (*models.CanvasItem, error) {
	return getByID(ctx, r.db.DB(), projectID, id)
}

func (r *ItemRepository) Insert(ctx context.Context, item *models.CanvasItem) (*models.CanvasItem, error) {
	data, err := encodeData(item.Data)
	if err != nil {
		return nil, err
	}
	id := uuid.New()
	ts := r.now().Format(timestampLayout)

	_, err = r.db.DB().ExecContext(ctx,
		`INSERT INTO canvas_items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), item.ProjectID.String(), item.Type.String(), item.X, item.Y,
		nullFloat(item.Width), nullFloat(item.Height), item.ZIndex, nullString(item.Title), nullString(item.Content),
		data, item.CreatedBy, ts, ts,
	)
	if err != nil {
		return nil, mapWriteError("insert item", err)
	}
	return r.GetByID(ctx, item.ProjectID, id)
}

func (r *ItemRepository) UpdateByID(ctx context.Context, projectID, id uuid.UUID, patch models.Patch) (*models.CanvasItem, error) {
	var data any
	if patch.Data != nil {
		encoded, err := encodeData(patch.Data)
		if err != nil {
			return nil, err
		}
		data = encoded
	}

	var stored *models.CanvasItem
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE canvas_items SET
				x = COALESCE(?, x),
				y = COALESCE(?, y),
				width = COALESCE(?, width),
				height = COALESCE(?, height),
				z_index = COALESCE(?, z_index),
				title = COALESCE(?, title),
				content = COALESCE(?, content),
				data = COALESCE(?, data),
				updated_at = ?
			WHERE id = ? AND project_id = ?`,
			nullFloat(patch.X), nullFloat(patch.Y), nullFloat(patch.Width), nullFloat(patch.Height), nullInt(patch.ZIndex),
			nullString(patch.Title), nullString(patch.Content), data,
			r.now().Format(timestampLayout), id.String(), projectID.String(),
		)
		if err != nil {
			return mapWriteError("update item", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("update item: %w", err)
		} else if n == 0 {
			return canvasdomain.ErrItemNotFound
		}
		stored, err = getByID(ctx, tx, projectID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *ItemRepository) DeleteByID(ctx context.Context, projectID, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx,
		`DELETE FROM canvas_items WHERE id = ? AND project_id = ?`,
		id.String(), projectID.String(),
	)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if n == 0 {
		return canvasdomain.ErrItemNotFound
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

func getByID(ctx context.Context, q queryer, projectID, id uuid.UUID) (*models.CanvasItem, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM canvas_items WHERE id = ? AND project_id = ?`,
		id.String(), projectID.String(),
	)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, canvasdomain.ErrItemNotFound
	}
	return item, err
}

func scanItem(row rowScanner) (*models.CanvasItem, error) {
	var (
		item                 models.CanvasItem
		typ                  string
		width, height        sql.NullFloat64
		title, content       sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(
		&item.ID, &item.ProjectID, &typ, &item.X, &item.Y,
		&width, &height, &item.ZIndex, &title, &content,
		&item.Data, &item.CreatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan item: %w", err)
	}

	item.Type = models.ItemType(typ)
	if width.Valid {
		item.Width = models.Ptr(width.Float64)
	}
	if height.Valid {
		item.Height = models.Ptr(height.Float64)
	}
	if title.Valid {
		item.Title = models.Ptr(title.String)
	}
	if content.Valid {
		item.Content = models.Ptr(content.String)
	}
	if item.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if item.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &item, nil
}

func encodeData(d models.Data) (string, error) {
	v, err := d.Value()
	if err != nil {
		return "", fmt.Errorf("%w: %v", canvasdomain.ErrInvalidItemData, err)
	}
	return string(v.([]byte)), nil
}

func mapWriteError(op string, err error) error {
	if strings.Contains(err.Error(), "CHECK constraint failed") {
		return fmt.Errorf("%w: %v", canvasdomain.ErrInvalidGeometry, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
