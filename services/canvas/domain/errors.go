package domain

import "errors"

// Sentinel errors for the canvas domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist in the project.
	ErrItemNotFound = errors.New("canvas item not found")

	// ErrUnknownItemType indicates a type that has no registry entry.
	ErrUnknownItemType = errors.New("unknown canvas item type")

	// ErrInvalidItemData indicates a data bag that does not match its kind's schema.
	ErrInvalidItemData = errors.New("invalid canvas item data")

	// ErrInvalidGeometry indicates a non-positive size or a non-finite coordinate.
	ErrInvalidGeometry = errors.New("invalid canvas item geometry")

	// ErrImmutableField indicates an attempt to change type or created_by after creation.
	ErrImmutableField = errors.New("canvas item field is immutable")

	// ErrMissingProject indicates an operation that needs a project id ran without one.
	ErrMissingProject = errors.New("project id is required")

	// ErrSessionNotFound indicates an unknown or evicted canvas session.
	ErrSessionNotFound = errors.New("canvas session not found")

	// ErrUnsupportedEdit indicates an edit field the item's kind does not own.
	ErrUnsupportedEdit = errors.New("edit not supported for item type")

	// ErrFileTooLarge indicates an attachment above the upload cap.
	ErrFileTooLarge = errors.New("attached file too large")
)
