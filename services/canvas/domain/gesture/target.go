// Package gesture names what a pointer-down landed on. The surface resolves a
// Target once per pointer-down; controllers only ever see the resolved value.
package gesture

import "github.com/google/uuid"

// TargetKind orders hit-test precedence: a control beats an item beats the background.
type TargetKind int

const (
	Background TargetKind = iota
	Item
	Control
)

func (k TargetKind) String() string {
	switch k {
	case Item:
		return "item"
	case Control:
		return "control"
	default:
		return "background"
	}
}

// Target is the resolved recipient of a pointer-down.
type Target struct {
	Kind   TargetKind
	ItemID uuid.UUID // set for Item and for a Control nested in an item
}

// OnBackground is the target for empty canvas.
func OnBackground() Target { return Target{Kind: Background} }

// OnItem targets an item's body.
func OnItem(id uuid.UUID) Target { return Target{Kind: Item, ItemID: id} }

// OnControl targets a button or form field, optionally inside an item.
func OnControl(id uuid.UUID) Target { return Target{Kind: Control, ItemID: id} }
