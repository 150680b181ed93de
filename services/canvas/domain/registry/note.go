package registry

import (
	"fmt"

	canvasdomain "github.com/ghuser/mediaboard/services/canvas/domain"
	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
)

// NotePalette is the sticky-note color set, addressed by data.colorIndex.
var NotePalette = []string{
	"#fef08a",
	"#fbcfe8",
	"#bbf7d0",
	"#bfdbfe",
	"#fed7aa",
	"#ddd6fe",
}

// NoteKind is a square sticky note with a palette color.
type NoteKind struct{}

func (NoteKind) Type() models.ItemType { return models.TypeNote }
func (NoteKind) Label() string         { return "Sticky note" }

func (NoteKind) Defaults() Defaults {
	return Defaults{
		Size:    geometry.Sz(200, 200),
		Content: models.Ptr(""),
		Data:    models.Data{"colorIndex": 0},
	}
}

func (NoteKind) Render(item *models.CanvasItem) Node {
	n := baseNode(item, explicitSize(item, geometry.Sz(200, 200)))
	n.Body = str(item.Content)
	idx, _ := item.Data.Int("colorIndex")
	if idx < 0 || idx >= len(NotePalette) {
		idx = 0
	}
	n.Props = map[string]any{
		"colorIndex": idx,
		"color":      NotePalette[idx],
	}
	return n
}

func (NoteKind) Edit(item *models.CanvasItem, in EditInput) (models.Patch, error) {
	if err := rejectUnowned(models.TypeNote, in, "content", "color_index"); err != nil {
		return models.Patch{}, err
	}
	p := models.Patch{Content: copyString(in.Content)}
	if in.ColorIndex != nil {
		if *in.ColorIndex < 0 || *in.ColorIndex >= len(NotePalette) {
			return models.Patch{}, fmt.Errorf("%w: colorIndex must be in [0,%d]", canvasdomain.ErrInvalidItemData, len(NotePalette)-1)
		}
		p.Data = item.Data.Merge(models.Data{"colorIndex": *in.ColorIndex})
	}
	return p, nil
}

func (NoteKind) DataSchema() string {
	return `{
		"type": "object",
		"properties": {
			"colorIndex": {"type": "integer", "minimum": 0, "maximum": 5}
		},
		"required": ["colorIndex"],
		"additionalProperties": false
	}`
}
