// Package viewport owns the scroll offset and zoom of one canvas instance and
// turns background drags into scrolling. A Controller is created per canvas
// and discarded with it; nothing here is shared between canvases.
package viewport

import (
	"math"

	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
	"github.com/ghuser/mediaboard/services/canvas/domain/gesture"
)

// Zoom bounds, in percent.
const (
	MinZoom  = 50
	MaxZoom  = 200
	ZoomStep = 10
)

// Controller is not safe for concurrent use; the owning surface serializes calls.
type Controller struct {
	surface geometry.Size // canvas extent in model units
	origin  geometry.Point
	view    geometry.Size
	scroll  geometry.Point
	zoom    int

	panning    bool
	panPointer geometry.Point
	panScroll  geometry.Point
}

// New returns a Controller at 100% zoom scrolled to the top-left corner.
func New(surface geometry.Size, origin geometry.Point, view geometry.Size) *Controller {
	return &Controller{
		surface: surface,
		origin:  origin,
		view:    view,
		zoom:    geometry.DefaultZoom,
	}
}

func (c *Controller) Zoom() int              { return c.zoom }
func (c *Controller) Scroll() geometry.Point { return c.scroll }
func (c *Controller) View() geometry.Size    { return c.view }
func (c *Controller) Origin() geometry.Point { return c.origin }
func (c *Controller) Surface() geometry.Size { return c.surface }
func (c *Controller) IsPanning() bool        { return c.panning }

// Frame snapshots the current view state for coordinate conversion.
func (c *Controller) Frame() geometry.Frame {
	return geometry.Frame{Origin: c.origin, Scroll: c.scroll, Zoom: c.zoom}
}

// ZoomIn raises zoom by one step, up to MaxZoom. Scroll is left untouched, so
// zoom is anchored at the content's top-left corner.
func (c *Controller) ZoomIn() int { return c.SetZoom(c.zoom + ZoomStep) }

// ZoomOut lowers zoom by one step, down to MinZoom. Scroll is left untouched.
func (c *Controller) ZoomOut() int { return c.SetZoom(c.zoom - ZoomStep) }

// SetZoom snaps z to the nearest step and clamps it to [MinZoom, MaxZoom].
func (c *Controller) SetZoom(z int) int {
	z = int(math.Round(float64(z)/ZoomStep)) * ZoomStep
	c.zoom = min(MaxZoom, max(MinZoom, z))
	return c.zoom
}

// BeginPan starts a pan when the pointer went down on empty canvas. Items and
// controls have their own gestures, so any other target is refused.
func (c *Controller) BeginPan(target gesture.Target, pointer geometry.Point) bool {
	if target.Kind != gesture.Background {
		return false
	}
	c.panning = true
	c.panPointer = pointer
	c.panScroll = c.scroll
	return true
}

// ContinuePan scrolls opposite to the pointer's travel since BeginPan.
// It reports whether a pan is active.
func (c *Controller) ContinuePan(pointer geometry.Point) bool {
	if !c.panning {
		return false
	}
	c.scroll = c.clamp(c.panScroll.Sub(pointer.Sub(c.panPointer)))
	return true
}

// EndPan stops panning. Scroll is view state and is never persisted.
func (c *Controller) EndPan() {
	c.panning = false
}

// Resize records a new on-screen origin and visible size and re-clamps scroll.
func (c *Controller) Resize(origin geometry.Point, view geometry.Size) {
	c.origin = origin
	c.view = view
	c.scroll = c.clamp(c.scroll)
}

// ScrollTo jumps to p, clamped to the scrollable range.
func (c *Controller) ScrollTo(p geometry.Point) {
	c.scroll = c.clamp(p)
}

// MaxScroll is the largest offset a native scroll container would allow:
// zoomed content extent minus the visible size, never below zero.
func (c *Controller) MaxScroll() geometry.Point {
	content := c.surface.Mul(geometry.Scale(c.zoom))
	return geometry.Pt(math.Max(0, content.W-c.view.W), math.Max(0, content.H-c.view.H))
}

func (c *Controller) clamp(p geometry.Point) geometry.Point {
	hi := c.MaxScroll()
	return geometry.Pt(
		math.Min(hi.X, math.Max(0, p.X)),
		math.Min(hi.Y, math.Max(0, p.Y)),
	)
}
