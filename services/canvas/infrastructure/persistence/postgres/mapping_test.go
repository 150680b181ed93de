package postgres

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	canvasdomain "github.com/ghuser/mediaboard/services/canvas/domain"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
	"github.com/ghuser/mediaboard/services/canvas/infrastructure/persistence/postgres/db"
)

func TestRowToItem(t *testing.T) {
	now := time.Now().UTC()
	row := db.CanvasItem{
		ID:        uuid.New(),
		ProjectID: uuid.New(),
		Type:      "note",
		X:         10,
		Y:         20,
		Width:     sql.NullFloat64{Float64: 200, Valid: true},
		ZIndex:    3,
		Content:   sql.NullString{String: "hi", Valid: true},
		Data:      db.RawJSON(`{"colorIndex":2}`),
		CreatedBy: "u1",
		CreatedAt: now,
		UpdatedAt: now,
	}

	item, err := rowToItem(row)
	if err != nil {
		t.Fatalf("rowToItem: %v", err)
	}
	if item.Type != models.TypeNote || item.ZIndex != 3 || item.CreatedBy != "u1" {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.Width == nil || *item.Width != 200 || item.Height != nil {
		t.Fatalf("width/height = %v/%v", item.Width, item.Height)
	}
	if item.Title != nil || item.Content == nil || *item.Content != "hi" {
		t.Fatalf("title/content = %v/%v", item.Title, item.Content)
	}
	if n, ok := item.Data.Int("colorIndex"); !ok || n != 2 {
		t.Fatalf("colorIndex = %d %v", n, ok)
	}
}

func TestRowToItem_KeepsUnknownType(t *testing.T) {
	item, err := rowToItem(db.CanvasItem{ID: uuid.New(), Type: "sticker"})
	if err != nil {
		t.Fatalf("rowToItem: %v", err)
	}
	if item.Type != "sticker" || item.Data == nil {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestRowToItem_BadData(t *testing.T) {
	_, err := rowToItem(db.CanvasItem{ID: uuid.New(), Type: "note", Data: db.RawJSON(`[1,2`)})
	if !errors.Is(err, canvasdomain.ErrInvalidItemData) {
		t.Fatalf("expected ErrInvalidItemData, got %v", err)
	}
}

func TestNullHelpers(t *testing.T) {
	if nullFloat(nil).Valid || nullString(nil).Valid || nullInt(nil).Valid {
		t.Fatal("nil pointers must map to NULL")
	}
	if v := nullInt(models.Ptr(7)); !v.Valid || v.Int32 != 7 {
		t.Fatalf("nullInt = %+v", v)
	}
	if p := floatPtr(sql.NullFloat64{Float64: 1.5, Valid: true}); p == nil || *p != 1.5 {
		t.Fatalf("floatPtr = %v", p)
	}
	if stringPtr(sql.NullString{}) != nil {
		t.Fatal("NULL string must map to nil")
	}
}

func TestEncodeData(t *testing.T) {
	b, err := encodeData(nil)
	if err != nil || string(b) != "{}" {
		t.Fatalf("encodeData(nil) = %q, %v", b, err)
	}
	if _, err := encodeData(models.Data{"bad": func() {}}); !errors.Is(err, canvasdomain.ErrInvalidItemData) {
		t.Fatalf("expected ErrInvalidItemData, got %v", err)
	}
}

func TestRawJSON_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want string
		err  bool
	}{
		{"bytes", []byte(`{"a":1}`), `{"a":1}`, false},
		{"string", `{"b":2}`, `{"b":2}`, false},
		{"null", nil, "", false},
		{"int", 42, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var j db.RawJSON
			err := j.Scan(tt.src)
			if (err != nil) != tt.err {
				t.Fatalf("Scan error = %v", err)
			}
			if string(j) != tt.want {
				t.Fatalf("Scan = %q, want %q", j, tt.want)
			}
		})
	}
}
