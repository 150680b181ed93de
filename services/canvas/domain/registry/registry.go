// Package registry is the dispatch table from an item's type to its behavior.
//
// Every call site that needs type-specific behavior (default geometry, rendering,
// editing, data validation, file attachment) goes through a Registry lookup.
// Adding a card type means implementing Kind and registering it; no existing
// caller branches on the type string.
package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	canvasdomain "github.com/ghuser/mediaboard/services/canvas/domain"
	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
)

// Kind is the behavior of one card type.
type Kind interface {
	Type() models.ItemType
	// Label is the creation-menu caption.
	Label() string
	Defaults() Defaults
	// Render describes how the item is painted. Bounds are in model space.
	Render(item *models.CanvasItem) Node
	// Edit translates a typed edit into a store patch. Fields the kind does not
	// own are rejected with ErrUnsupportedEdit.
	Edit(item *models.CanvasItem, in EditInput) (models.Patch, error)
	// DataSchema is the JSON schema the item's data bag must satisfy.
	DataSchema() string
}

// FileAttacher is implemented by kinds that accept an uploaded file.
type FileAttacher interface {
	AttachFile(ctx context.Context, item *models.CanvasItem, f File) (Attachment, error)
}

// Defaults is the geometry and content a freshly created card starts with.
type Defaults struct {
	// Size is the footprint used to center the card in the viewport. For
	// auto-sized kinds it is nominal and not persisted.
	Size     geometry.Size
	AutoSize bool
	Title    *string
	Content  *string
	Data     models.Data
}

// Draft builds a create draft at pos with these defaults.
func (d Defaults) Draft(t models.ItemType, pos geometry.Point) models.Draft {
	pos = pos.ClampNonNegative()
	draft := models.Draft{
		Type:    t,
		X:       pos.X,
		Y:       pos.Y,
		Title:   copyString(d.Title),
		Content: copyString(d.Content),
		Data:    d.Data.Clone(),
	}
	if !d.AutoSize {
		draft.Width = models.Ptr(d.Size.W)
		draft.Height = models.Ptr(d.Size.H)
	}
	return draft
}

// EditInput carries the typed fields an in-place editor may change.
type EditInput struct {
	Content    *string
	Title      *string
	ColorIndex *int
	Color      *string
	Src        *string
}

// Node is the render description of one item.
type Node struct {
	ItemID   string          `json:"item_id"`
	Type     models.ItemType `json:"type"`
	Bounds   geometry.Rect   `json:"bounds"`
	ZIndex   int             `json:"z_index"`
	AutoSize bool            `json:"auto_size"`
	Label    string          `json:"label,omitempty"`
	Body     string          `json:"body,omitempty"`
	Props    map[string]any  `json:"props,omitempty"`
}

// Entry is a creation-menu row.
type Entry struct {
	Type  models.ItemType `json:"type"`
	Label string          `json:"label"`
}

// Registry maps item types to kinds, in registration order.
type Registry struct {
	kinds   map[models.ItemType]Kind
	schemas map[models.ItemType]*gojsonschema.Schema
	order   []models.ItemType
}

// New builds a Registry and compiles every kind's data schema.
func New(kinds ...Kind) (*Registry, error) {
	r := &Registry{
		kinds:   make(map[models.ItemType]Kind, len(kinds)),
		schemas: make(map[models.ItemType]*gojsonschema.Schema, len(kinds)),
	}
	for _, k := range kinds {
		t := k.Type()
		if _, dup := r.kinds[t]; dup {
			return nil, fmt.Errorf("registry: duplicate kind %q", t)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(k.DataSchema()))
		if err != nil {
			return nil, fmt.Errorf("registry: compile %s data schema: %w", t, err)
		}
		r.kinds[t] = k
		r.schemas[t] = schema
		r.order = append(r.order, t)
	}
	return r, nil
}

// Default returns the registry of the four built-in card types in menu order.
// uploader may be nil, in which case image files are always embedded inline.
func Default(uploader Uploader) *Registry {
	r, err := New(
		TextKind{},
		NewImageKind(uploader),
		NoteKind{},
		SectionKind{},
	)
	if err != nil {
		// Built-in schemas are constants; a failure here is a programming error.
		panic(err)
	}
	return r
}

// Lookup returns the kind for t or ErrUnknownItemType.
func (r *Registry) Lookup(t models.ItemType) (Kind, error) {
	k, ok := r.kinds[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", canvasdomain.ErrUnknownItemType, t)
	}
	return k, nil
}

// Kinds returns every kind in registration order.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.kinds[t])
	}
	return out
}

// Menu returns the creation-menu rows in registration order.
func (r *Registry) Menu() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, k := range r.Kinds() {
		out = append(out, Entry{Type: k.Type(), Label: k.Label()})
	}
	return out
}

// DraftAt returns a draft of type t centered on the model-space point center.
func (r *Registry) DraftAt(t models.ItemType, center geometry.Point) (models.Draft, error) {
	k, err := r.Lookup(t)
	if err != nil {
		return models.Draft{}, err
	}
	d := k.Defaults()
	return d.Draft(t, center.Sub(d.Size.Half())), nil
}

// Complete fills the fields a draft left unset from the kind's defaults.
// Supplied data keys win over default ones. Auto-sized kinds stay unsized
// unless the draft sets a size.
func (r *Registry) Complete(d models.Draft) (models.Draft, error) {
	k, err := r.Lookup(d.Type)
	if err != nil {
		return models.Draft{}, err
	}
	def := k.Defaults()
	if d.Width == nil && d.Height == nil && !def.AutoSize {
		d.Width = models.Ptr(def.Size.W)
		d.Height = models.Ptr(def.Size.H)
	}
	if d.Title == nil {
		d.Title = copyString(def.Title)
	}
	if d.Content == nil {
		d.Content = copyString(def.Content)
	}
	d.Data = def.Data.Merge(d.Data)
	return d, nil
}

// ValidateData checks a data bag against the kind's schema.
func (r *Registry) ValidateData(t models.ItemType, data models.Data) error {
	schema, ok := r.schemas[t]
	if !ok {
		return fmt.Errorf("%w: %q", canvasdomain.ErrUnknownItemType, t)
	}
	if data == nil {
		data = models.Data{}
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(map[string]any(data)))
	if err != nil {
		return fmt.Errorf("%w: %w", canvasdomain.ErrInvalidItemData, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", canvasdomain.ErrInvalidItemData, strings.Join(msgs, "; "))
	}
	return nil
}

// Render dispatches to the item's kind. ok is false for unknown types so the
// caller can skip the record instead of failing the whole scene.
func (r *Registry) Render(item *models.CanvasItem) (Node, bool) {
	k, known := r.kinds[item.Type]
	if !known {
		return Node{}, false
	}
	return k.Render(item), true
}

// Edit dispatches a typed edit to the item's kind.
func (r *Registry) Edit(item *models.CanvasItem, in EditInput) (models.Patch, error) {
	k, err := r.Lookup(item.Type)
	if err != nil {
		return models.Patch{}, err
	}
	return k.Edit(item, in)
}

// Attacher returns the kind's FileAttacher, or ErrUnsupportedEdit when the
// kind does not take files.
func (r *Registry) Attacher(t models.ItemType) (FileAttacher, error) {
	k, err := r.Lookup(t)
	if err != nil {
		return nil, err
	}
	a, ok := k.(FileAttacher)
	if !ok {
		return nil, fmt.Errorf("%w: %s items do not accept files", canvasdomain.ErrUnsupportedEdit, t)
	}
	return a, nil
}

// baseNode fills the fields every kind shares.
func baseNode(item *models.CanvasItem, size geometry.Size) Node {
	return Node{
		ItemID: item.ID.String(),
		Type:   item.Type,
		Bounds: geometry.Rect{Min: item.Position(), Size: size},
		ZIndex: item.ZIndex,
	}
}

// explicitSize returns the stored size, falling back to def for missing axes.
func explicitSize(item *models.CanvasItem, def geometry.Size) geometry.Size {
	s := def
	if item.Width != nil {
		s.W = *item.Width
	}
	if item.Height != nil {
		s.H = *item.Height
	}
	return s
}

// rejectUnowned fails when any field outside owned is set.
func rejectUnowned(t models.ItemType, in EditInput, owned ...string) error {
	set := map[string]bool{
		"content":     in.Content != nil,
		"title":       in.Title != nil,
		"color_index": in.ColorIndex != nil,
		"color":       in.Color != nil,
		"src":         in.Src != nil,
	}
	for _, f := range owned {
		delete(set, f)
	}
	for field, present := range set {
		if present {
			return fmt.Errorf("%w: %s items have no %s", canvasdomain.ErrUnsupportedEdit, t, field)
		}
	}
	return nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	return models.Ptr(*s)
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
