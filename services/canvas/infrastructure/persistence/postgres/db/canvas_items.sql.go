package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const itemColumns = `id, project_id, type, x, y, width, height, z_index, title, content, data, created_by, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (CanvasItem, error) {
	var i CanvasItem
	err := row.Scan(
		&i.ID,
		&i.ProjectID,
		&i.Type,
		&i.X,
		&i.Y,
		&i.Width,
		&i.Height,
		&i.ZIndex,
		&i.Title,
		&i.Content,
		&i.Data,
		&i.CreatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const findItemsByProject = `-- name: FindItemsByProject :many
SELECT ` + itemColumns + `
FROM canvas_items
WHERE project_id = $1
ORDER BY z_index, created_at, seq
`

func (q *Queries) FindItemsByProject(ctx context.Context, projectID uuid.UUID) ([]CanvasItem, error) {
	rows, err := q.db.QueryContext(ctx, findItemsByProject, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CanvasItem
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getItemByID = `-- name: GetItemByID :one
SELECT ` + itemColumns + `
FROM canvas_items
WHERE id = $1 AND project_id = $2
`

type GetItemByIDParams struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
}

func (q *Queries) GetItemByID(ctx context.Context, arg GetItemByIDParams) (CanvasItem, error) {
	row := q.db.QueryRowContext(ctx, getItemByID, arg.ID, arg.ProjectID)
	return scanItem(row)
}

const insertItem = `-- name: InsertItem :one
INSERT INTO canvas_items (` + itemColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
RETURNING ` + itemColumns

type InsertItemParams struct {
	ID        uuid.UUID       `json:"id"`
	ProjectID uuid.UUID       `json:"project_id"`
	Type      string          `json:"type"`
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	Width     sql.NullFloat64 `json:"width"`
	Height    sql.NullFloat64 `json:"height"`
	ZIndex    int32           `json:"z_index"`
	Title     sql.NullString  `json:"title"`
	Content   sql.NullString  `json:"content"`
	Data      RawJSON         `json:"data"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

func (q *Queries) InsertItem(ctx context.Context, arg InsertItemParams) (CanvasItem, error) {
	row := q.db.QueryRowContext(ctx, insertItem,
		arg.ID,
		arg.ProjectID,
		arg.Type,
		arg.X,
		arg.Y,
		arg.Width,
		arg.Height,
		arg.ZIndex,
		arg.Title,
		arg.Content,
		arg.Data,
		arg.CreatedBy,
		arg.CreatedAt,
	)
	return scanItem(row)
}

const updateItem = `-- name: UpdateItem :one
UPDATE canvas_items SET
    x          = COALESCE($3, x),
    y          = COALESCE($4, y),
    width      = COALESCE($5, width),
    height     = COALESCE($6, height),
    z_index    = COALESCE($7, z_index),
    title      = COALESCE($8, title),
    content    = COALESCE($9, content),
    data       = COALESCE($10, data),
    updated_at = now()
WHERE id = $1 AND project_id = $2
RETURNING ` + itemColumns

// UpdateItemParams uses NULL for "leave unchanged"; Data is NULL when nil.
type UpdateItemParams struct {
	ID        uuid.UUID       `json:"id"`
	ProjectID uuid.UUID       `json:"project_id"`
	X         sql.NullFloat64 `json:"x"`
	Y         sql.NullFloat64 `json:"y"`
	Width     sql.NullFloat64 `json:"width"`
	Height    sql.NullFloat64 `json:"height"`
	ZIndex    sql.NullInt32   `json:"z_index"`
	Title     sql.NullString  `json:"title"`
	Content   sql.NullString  `json:"content"`
	Data      RawJSON         `json:"data"`
}

func (q *Queries) UpdateItem(ctx context.Context, arg UpdateItemParams) (CanvasItem, error) {
	row := q.db.QueryRowContext(ctx, updateItem,
		arg.ID,
		arg.ProjectID,
		arg.X,
		arg.Y,
		arg.Width,
		arg.Height,
		arg.ZIndex,
		arg.Title,
		arg.Content,
		arg.Data,
	)
	return scanItem(row)
}

const deleteItem = `-- name: DeleteItem :execrows
DELETE FROM canvas_items WHERE id = $1 AND project_id = $2
`

type DeleteItemParams struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
}

func (q *Queries) DeleteItem(ctx context.Context, arg DeleteItemParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteItem, arg.ID, arg.ProjectID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
