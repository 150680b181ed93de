package db

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RawJSON carries a jsonb value verbatim. A nil RawJSON is written as NULL.
type RawJSON []byte

func (j RawJSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return []byte(j), nil
}

func (j *RawJSON) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append(RawJSON(nil), v...)
	case string:
		*j = RawJSON(v)
	default:
		return fmt.Errorf("db: cannot scan %T into RawJSON", src)
	}
	return nil
}

type CanvasItem struct {
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
	UpdatedAt time.Time       `json:"updated_at"`
}
