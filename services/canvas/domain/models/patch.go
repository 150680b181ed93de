package models

import "github.com/ghuser/mediaboard/services/canvas/domain/geometry"

// Patch is a partial update. Nil fields are left unchanged. A non-nil Data
// replaces the whole bag; editors merge before building the patch.
type Patch struct {
	// Type is only carried so a request that tries to change it can be rejected.
	Type    *ItemType
	X       *float64
	Y       *float64
	Width   *float64
	Height  *float64
	ZIndex  *int
	Title   *string
	Content *string
	Data    Data
}

// PositionPatch is the patch a drag commit writes.
func PositionPatch(p geometry.Point) Patch {
	p = p.ClampNonNegative()
	return Patch{X: Ptr(p.X), Y: Ptr(p.Y)}
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Type == nil && p.X == nil && p.Y == nil && p.Width == nil && p.Height == nil &&
		p.ZIndex == nil && p.Title == nil && p.Content == nil && p.Data == nil
}

// ClampPosition pins supplied coordinates to be non-negative.
func (p Patch) ClampPosition() Patch {
	if p.X != nil && *p.X < 0 {
		p.X = Ptr(0.0)
	}
	if p.Y != nil && *p.Y < 0 {
		p.Y = Ptr(0.0)
	}
	return p
}

// Apply returns a copy of item with the patch's fields written over it.
// Type and CreatedBy are never touched.
func (p Patch) Apply(item *CanvasItem) *CanvasItem {
	out := item.Clone()
	if p.X != nil {
		out.X = *p.X
	}
	if p.Y != nil {
		out.Y = *p.Y
	}
	if p.Width != nil {
		out.Width = Ptr(*p.Width)
	}
	if p.Height != nil {
		out.Height = Ptr(*p.Height)
	}
	if p.ZIndex != nil {
		out.ZIndex = *p.ZIndex
	}
	if p.Title != nil {
		out.Title = Ptr(*p.Title)
	}
	if p.Content != nil {
		out.Content = Ptr(*p.Content)
	}
	if p.Data != nil {
		out.Data = p.Data.Clone()
	}
	return out
}
