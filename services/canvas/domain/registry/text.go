package registry

import (
	"strings"
	"unicode/utf8"

	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
)

// Text metrics used to size auto-sized text blocks, in model units.
const (
	textCharWidth  = 8
	textLineHeight = 20
	textPadding    = 8
	textMinWidth   = 40
)

// TextKind is a free-standing text block that sizes itself to its content.
type TextKind struct{}

func (TextKind) Type() models.ItemType { return models.TypeText }
func (TextKind) Label() string         { return "Text" }

func (TextKind) Defaults() Defaults {
	return Defaults{
		Size:     geometry.Sz(200, 40),
		AutoSize: true,
		Content:  models.Ptr("New text"),
		Data:     models.Data{},
	}
}

func (TextKind) Render(item *models.CanvasItem) Node {
	content := str(item.Content)
	size := explicitSize(item, MeasureText(content))
	n := baseNode(item, size)
	n.AutoSize = item.Width == nil || item.Height == nil
	n.Body = content
	if align, ok := item.Data.String("align"); ok {
		n.Props = map[string]any{"align": align}
	}
	return n
}

func (TextKind) Edit(_ *models.CanvasItem, in EditInput) (models.Patch, error) {
	if err := rejectUnowned(models.TypeText, in, "content"); err != nil {
		return models.Patch{}, err
	}
	return models.Patch{Content: copyString(in.Content)}, nil
}

func (TextKind) DataSchema() string {
	return `{
		"type": "object",
		"properties": {
			"align": {"type": "string", "enum": ["left", "center", "right"]}
		},
		"additionalProperties": false
	}`
}

// MeasureText returns the box an auto-sized text block occupies: the longest
// line's character count and the line count, plus padding on every side.
func MeasureText(content string) geometry.Size {
	lines := strings.Split(content, "\n")
	longest := 0
	for _, l := range lines {
		longest = max(longest, utf8.RuneCountInString(l))
	}
	w := float64(max(textMinWidth, longest*textCharWidth+2*textPadding))
	h := float64(len(lines)*textLineHeight + 2*textPadding)
	return geometry.Sz(w, h)
}
