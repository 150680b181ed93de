// Package drag holds the transient state of the item currently being
// relocated. A Controller belongs to one canvas instance.
//
// The state machine is Idle -> Armed on pointer-down over an item body,
// Armed -> Dragging on the first pointer-move, and back to Idle on release.
// Only a release from Dragging writes through; a plain click never does.
package drag

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
	"github.com/ghuser/mediaboard/services/canvas/domain/gesture"
)

type State int

const (
	Idle State = iota
	Armed
	Dragging
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Committer persists the final model-space position of a dragged item.
type Committer interface {
	CommitPosition(ctx context.Context, id uuid.UUID, pos geometry.Point) error
}

// Outcome describes what a Release did.
type Outcome struct {
	ItemID    uuid.UUID
	Position  geometry.Point
	Committed bool
}

// Controller is not safe for concurrent use; the owning surface serializes calls.
type Controller struct {
	state  State
	itemID uuid.UUID
	grab   geometry.Point // pointer offset inside the item, in content space
	live   geometry.Point
}

func New() *Controller { return &Controller{} }

func (c *Controller) State() State      { return c.state }
func (c *Controller) ItemID() uuid.UUID { return c.itemID }
func (c *Controller) Active() bool      { return c.state != Idle }
func (c *Controller) Dragging() bool    { return c.state == Dragging }

// Live returns the uncommitted position of the dragged item. ok is false
// unless the controller is Dragging; an Armed item has not moved yet.
func (c *Controller) Live() (id uuid.UUID, pos geometry.Point, ok bool) {
	if c.state != Dragging {
		return uuid.Nil, geometry.Point{}, false
	}
	return c.itemID, c.live, true
}

// PointerDown arms the controller when the pointer landed on an item body.
// itemPos is the item's persisted model-space position. The grab offset is
// captured here once so the item keeps its place under the pointer.
func (c *Controller) PointerDown(target gesture.Target, pointer, itemPos geometry.Point, f geometry.Frame) bool {
	if c.state != Idle || target.Kind != gesture.Item {
		return false
	}
	c.state = Armed
	c.itemID = target.ItemID
	c.grab = f.PointerToContent(pointer).Sub(f.ModelToContent(itemPos))
	c.live = itemPos
	return true
}

// PointerMove recomputes the live position. Any move while Armed starts the drag.
// It reports whether the controller is now Dragging.
func (c *Controller) PointerMove(pointer geometry.Point, f geometry.Frame) bool {
	if c.state == Idle {
		return false
	}
	c.state = Dragging
	c.live = f.ContentToModel(f.PointerToContent(pointer).Sub(c.grab)).ClampNonNegative()
	return true
}

// Release ends the gesture on pointer-up or pointer-leave. From Dragging the
// live position is committed; there is no cancel once the drag has started.
// The controller is Idle afterwards whatever the commit returns.
func (c *Controller) Release(ctx context.Context, committer Committer) (Outcome, error) {
	state, out := c.state, Outcome{ItemID: c.itemID, Position: c.live}
	c.reset()

	if state != Dragging {
		return out, nil
	}
	if err := committer.CommitPosition(ctx, out.ItemID, out.Position); err != nil {
		return out, fmt.Errorf("commit drag of %s: %w", out.ItemID, err)
	}
	out.Committed = true
	return out, nil
}

func (c *Controller) reset() {
	*c = Controller{}
}
