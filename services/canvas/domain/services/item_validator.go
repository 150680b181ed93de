// Package services contains stateless domain services for the canvas bounded context.
// They enforce rules that operate purely on domain types: no I/O, no registry lookups.
package services

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	canvasdomain "github.com/ghuser/mediaboard/services/canvas/domain"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
)

const (
	maxTitleLength   = 255
	maxContentLength = 20000
)

// ValidateDraft checks the geometry and text fields of a create draft.
// Coordinates may be negative here; the store clamps them.
func ValidateDraft(d models.Draft) error {
	if d.Type == "" {
		return fmt.Errorf("%w: type is required", canvasdomain.ErrUnknownItemType)
	}
	if err := validateCoords(&d.X, &d.Y); err != nil {
		return err
	}
	if err := validateSize(d.Width, d.Height); err != nil {
		return err
	}
	return validateText(d.Title, d.Content)
}

// ValidatePatch checks a partial update against the item it will be applied to.
func ValidatePatch(item *models.CanvasItem, p models.Patch) error {
	if p.Type != nil && *p.Type != item.Type {
		return fmt.Errorf("%w: type cannot change from %s to %s", canvasdomain.ErrImmutableField, item.Type, *p.Type)
	}
	if err := validateCoords(p.X, p.Y); err != nil {
		return err
	}
	if err := validateSize(p.Width, p.Height); err != nil {
		return err
	}
	if p.ZIndex != nil && *p.ZIndex < 0 {
		return fmt.Errorf("%w: z_index must not be negative", canvasdomain.ErrInvalidGeometry)
	}
	return validateText(p.Title, p.Content)
}

// ValidateItemForInsert performs cross-field checks on a record about to be stored.
func ValidateItemForInsert(item *models.CanvasItem) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if item.ProjectID == uuid.Nil {
		return canvasdomain.ErrMissingProject
	}
	if item.X < 0 || item.Y < 0 {
		return fmt.Errorf("%w: position must not be negative", canvasdomain.ErrInvalidGeometry)
	}
	if item.ZIndex < 0 {
		return fmt.Errorf("%w: z_index must not be negative", canvasdomain.ErrInvalidGeometry)
	}
	return validateSize(item.Width, item.Height)
}

func validateCoords(x, y *float64) error {
	for _, v := range []*float64{x, y} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%w: coordinates must be finite", canvasdomain.ErrInvalidGeometry)
		}
	}
	return nil
}

func validateSize(w, h *float64) error {
	for _, v := range []*float64{w, h} {
		if v == nil {
			continue
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
			return fmt.Errorf("%w: width and height must be positive", canvasdomain.ErrInvalidGeometry)
		}
	}
	return nil
}

func validateText(title, content *string) error {
	if title != nil && len(*title) > maxTitleLength {
		return fmt.Errorf("%w: title must not exceed %d characters", canvasdomain.ErrInvalidItemData, maxTitleLength)
	}
	if content != nil && len(*content) > maxContentLength {
		return fmt.Errorf("%w: content must not exceed %d characters", canvasdomain.ErrInvalidItemData, maxContentLength)
	}
	return nil
}
