package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	canvasdomain "github.com/ghuser/mediaboard/services/canvas/domain"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
	"github.com/ghuser/mediaboard/services/canvas/infrastructure/persistence/postgres/db"
)

// rowToItem maps a db.CanvasItem to a domain models.CanvasItem. The type is
// copied verbatim; unknown types are filtered by the renderer, not here.
func rowToItem(row db.CanvasItem) (*models.CanvasItem, error) {
	data := models.Data{}
	if len(row.Data) > 0 {
		if err := json.Unmarshal(row.Data, &data); err != nil {
			return nil, fmt.Errorf("%w: item %s: %v", canvasdomain.ErrInvalidItemData, row.ID, err)
		}
	}
	return &models.CanvasItem{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		Type:      models.ItemType(row.Type),
		X:         row.X,
		Y:         row.Y,
		Width:     floatPtr(row.Width),
		Height:    floatPtr(row.Height),
		ZIndex:    int(row.ZIndex),
		Title:     stringPtr(row.Title),
		Content:   stringPtr(row.Content),
		Data:      data,
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func encodeData(d models.Data) (db.RawJSON, error) {
	if d == nil {
		d = models.Data{}
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", canvasdomain.ErrInvalidItemData, err)
	}
	return b, nil
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

func nullInt(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
