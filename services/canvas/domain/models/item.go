package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
)

// ItemType names a card variant. The registry owns the set of known types.
type ItemType string

const (
	TypeText    ItemType = "text"
	TypeImage   ItemType = "image"
	TypeNote    ItemType = "note"
	TypeSection ItemType = "section"
)

func (t ItemType) String() string { return string(t) }

// CanvasItem is the persisted unit placed on a project's canvas.
// X and Y are model-space coordinates and are never negative.
type CanvasItem struct {
	ID        uuid.UUID
	ProjectID uuid.UUID // every query and mutation is scoped by this
	Type      ItemType  // immutable after creation
	X         float64
	Y         float64
	Width     *float64 // nil means the card sizes to its content
	Height    *float64
	ZIndex    int
	Title     *string
	Content   *string
	Data      Data
	CreatedBy string // set once at creation
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Position returns the item's top-left corner in model space.
func (i *CanvasItem) Position() geometry.Point {
	return geometry.Pt(i.X, i.Y)
}

// Clone returns a deep copy so callers can mutate pointer fields and the data
// bag without touching the original.
func (i *CanvasItem) Clone() *CanvasItem {
	if i == nil {
		return nil
	}
	c := *i
	c.Width = clonePtr(i.Width)
	c.Height = clonePtr(i.Height)
	c.Title = clonePtr(i.Title)
	c.Content = clonePtr(i.Content)
	c.Data = i.Data.Clone()
	return &c
}

// Draft is the input to a create. Type, position and type defaults are
// required; ZIndex is assigned by the store when nil.
type Draft struct {
	Type    ItemType
	X       float64
	Y       float64
	Width   *float64
	Height  *float64
	ZIndex  *int
	Title   *string
	Content *string
	Data    Data
}

// NewItem builds the record a draft describes. The persistence service
// assigns ID and timestamps on insert.
func NewItem(projectID uuid.UUID, createdBy string, zIndex int, d Draft) *CanvasItem {
	pos := geometry.Pt(d.X, d.Y).ClampNonNegative()
	return &CanvasItem{
		ProjectID: projectID,
		Type:      d.Type,
		X:         pos.X,
		Y:         pos.Y,
		Width:     clonePtr(d.Width),
		Height:    clonePtr(d.Height),
		ZIndex:    zIndex,
		Title:     clonePtr(d.Title),
		Content:   clonePtr(d.Content),
		Data:      d.Data.Clone(),
		CreatedBy: createdBy,
	}
}

// Ptr returns a pointer to v. Handy for optional draft and patch fields.
func Ptr[T any](v T) *T { return &v }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
