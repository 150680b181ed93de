package services

import (
	"context"

	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
	"github.com/ghuser/mediaboard/services/canvas/domain/registry"
)

// View is the part of the viewport state that decides where a new card spawns.
type View struct {
	Scroll geometry.Point
	Size   geometry.Size
	Zoom   int
}

// Creator persists a draft. *ItemStore satisfies it.
type Creator interface {
	Create(ctx context.Context, d models.Draft) (*models.CanvasItem, error)
}

// Menu is the floating creation menu owned by the surface.
type Menu interface {
	CloseMenu()
}

// CreationService places new cards at the center of what the user sees.
type CreationService struct {
	registry *registry.Registry
}

func NewCreationService(reg *registry.Registry) *CreationService {
	return &CreationService{registry: reg}
}

// SpawnCenter is the model-space point under the middle of the visible area:
// (scroll + view/2) / scale.
func SpawnCenter(v View) geometry.Point {
	return v.Scroll.Add(v.Size.Half()).Div(geometry.Scale(v.Zoom))
}

// Draft returns a draft of type t whose default footprint is centered in v.
// The top-left corner is clamped to the origin.
func (c *CreationService) Draft(t models.ItemType, v View) (models.Draft, error) {
	return c.registry.DraftAt(t, SpawnCenter(v))
}

// Create builds the centered draft, stores it and closes the menu. The menu
// closes whether or not the store accepted the write.
func (c *CreationService) Create(ctx context.Context, store Creator, menu Menu, t models.ItemType, v View) (*models.CanvasItem, error) {
	if menu != nil {
		defer menu.CloseMenu()
	}
	d, err := c.Draft(t, v)
	if err != nil {
		return nil, err
	}
	return store.Create(ctx, d)
}
