package registry

import (
	"fmt"
	"regexp"

	canvasdomain "github.com/ghuser/mediaboard/services/canvas/domain"
	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
)

const defaultSectionColor = "#e0e7ff"

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// SectionKind is a large titled container drawn behind the cards grouped on it.
type SectionKind struct{}

func (SectionKind) Type() models.ItemType { return models.TypeSection }
func (SectionKind) Label() string         { return "Section" }

func (SectionKind) Defaults() Defaults {
	return Defaults{
		Size:  geometry.Sz(600, 400),
		Title: models.Ptr("Section"),
		Data:  models.Data{"color": defaultSectionColor},
	}
}

func (SectionKind) Render(item *models.CanvasItem) Node {
	n := baseNode(item, explicitSize(item, geometry.Sz(600, 400)))
	n.Label = str(item.Title)
	color, ok := item.Data.String("color")
	if !ok || !hexColor.MatchString(color) {
		color = defaultSectionColor
	}
	n.Props = map[string]any{"color": color}
	return n
}

func (SectionKind) Edit(item *models.CanvasItem, in EditInput) (models.Patch, error) {
	if err := rejectUnowned(models.TypeSection, in, "title", "color"); err != nil {
		return models.Patch{}, err
	}
	p := models.Patch{Title: copyString(in.Title)}
	if in.Color != nil {
		if !hexColor.MatchString(*in.Color) {
			return models.Patch{}, fmt.Errorf("%w: color must be #rrggbb", canvasdomain.ErrInvalidItemData)
		}
		p.Data = item.Data.Merge(models.Data{"color": *in.Color})
	}
	return p, nil
}

func (SectionKind) DataSchema() string {
	return `{
		"type": "object",
		"properties": {
			"color": {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"}
		},
		"required": ["color"],
		"additionalProperties": false
	}`
}
