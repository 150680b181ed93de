// Package surface hosts one canvas instance per open board. A Surface owns the
// viewport, the drag gesture, the creation menu and the last fetched item list,
// and routes pointer input between them.
package surface

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/mediaboard/pkg/logger"
	appsvcs "github.com/ghuser/mediaboard/services/canvas/application/services"
	"github.com/ghuser/mediaboard/services/canvas/domain/drag"
	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
	"github.com/ghuser/mediaboard/services/canvas/domain/gesture"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
	"github.com/ghuser/mediaboard/services/canvas/domain/registry"
	"github.com/ghuser/mediaboard/services/canvas/domain/viewport"
)

const (
	// Size is the edge of the scrollable surface in model units.
	Size = 5000
	// GridSpacing is the background grid pitch in model units.
	GridSpacing = 20

	instrumentationName = "github.com/ghuser/mediaboard/services/canvas/surface"
)

// Store is what a surface needs from the Item Store. *appsvcs.ItemStore satisfies it.
type Store interface {
	ProjectID() uuid.UUID
	List(ctx context.Context) ([]*models.CanvasItem, error)
	Create(ctx context.Context, d models.Draft) (*models.CanvasItem, error)
	CommitPosition(ctx context.Context, id uuid.UUID, pos geometry.Point) error
}

// Pointer is one pointer event as reported by the client. OnControl is set when
// the event target is a button or form field; ItemID names the card under the
// pointer when the client knows it.
type Pointer struct {
	Point     geometry.Point
	OnControl bool
	ItemID    uuid.UUID
}

// Surface is a single canvas instance. All methods are safe for concurrent use;
// calls are serialized so they observe one event at a time.
type Surface struct {
	mu sync.Mutex

	id       uuid.UUID
	store    Store
	registry *registry.Registry
	creation *appsvcs.CreationService
	viewport *viewport.Controller
	drag     *drag.Controller
	menuOpen bool
	items    []*models.CanvasItem
	log      logger.Logger
	commits  metric.Int64Counter
	lastUsed time.Time
}

// New builds a surface at origin with the given visible size. Call Refresh to
// load the item list.
func New(id uuid.UUID, store Store, reg *registry.Registry, creation *appsvcs.CreationService, origin geometry.Point, view geometry.Size, log logger.Logger) *Surface {
	commits, err := otel.Meter(instrumentationName).Int64Counter("canvas.drag.commits",
		metric.WithDescription("Drag gestures that ended in a position write, by result"),
	)
	if err != nil {
		log.Warn("canvas.drag.commits counter unavailable", "error", err)
	}
	return &Surface{
		id:       id,
		store:    store,
		registry: reg,
		creation: creation,
		viewport: viewport.New(geometry.Sz(Size, Size), origin, view),
		drag:     drag.New(),
		log:      log.With("canvas_session", id, "project_id", store.ProjectID()),
		commits:  commits,
		lastUsed: time.Now(),
	}
}

func (s *Surface) ID() uuid.UUID        { return s.id }
func (s *Surface) ProjectID() uuid.UUID { return s.store.ProjectID() }

// Refresh replaces the item list with the store's current view.
func (s *Surface) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.refresh(ctx)
}

// Scene renders the current state.
func (s *Surface) Scene(ctx context.Context) Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene(ctx)
}

// Latest refetches the item list and renders it. When the refetch fails the
// last fetched list is rendered and the failure is logged.
func (s *Surface) Latest(ctx context.Context) Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.refresh(ctx); err != nil {
		s.log.WarnContext(ctx, "canvas refresh failed, serving last fetched scene", "error", err)
	}
	return s.scene(ctx)
}

// PointerDown resolves the target once and hands it to the gesture that owns
// it: items arm a drag, empty canvas starts a pan, controls are left alone.
func (s *Surface) PointerDown(p Pointer) gesture.Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	target := s.hitTest(p)
	switch target.Kind {
	case gesture.Item:
		if item := s.find(target.ItemID); item != nil {
			s.drag.PointerDown(target, p.Point, item.Position(), s.viewport.Frame())
		}
	case gesture.Background:
		s.viewport.BeginPan(target, p.Point)
	}
	return target
}

// PointerMove feeds the active gesture. It reports whether anything moved.
func (s *Surface) PointerMove(pointer geometry.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.drag.Active() {
		return s.drag.PointerMove(pointer, s.viewport.Frame())
	}
	return s.viewport.ContinuePan(pointer)
}

// PointerUp ends the gesture in progress and commits a drag.
func (s *Surface) PointerUp(ctx context.Context) drag.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.release(ctx)
}

// PointerLeave behaves like PointerUp: an armed drag is dropped without a
// write, a started drag commits.
func (s *Surface) PointerLeave(ctx context.Context) drag.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.release(ctx)
}

func (s *Surface) ZoomIn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.viewport.ZoomIn()
}

func (s *Surface) ZoomOut() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.viewport.ZoomOut()
}

// Resize records the element's new on-screen origin and visible size.
func (s *Surface) Resize(origin geometry.Point, view geometry.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.viewport.Resize(origin, view)
}

// ScrollTo applies a scroll made by the element itself, clamped to the
// scrollable range.
func (s *Surface) ScrollTo(p geometry.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.viewport.ScrollTo(p)
}

func (s *Surface) OpenMenu() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.menuOpen = true
}

// CloseMenu satisfies appsvcs.Menu. Locked callers go through menuCloser.
func (s *Surface) CloseMenu() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.menuOpen = false
}

// Create spawns a card of type t at the center of the visible area, closes the
// menu and refreshes the list.
func (s *Surface) Create(ctx context.Context, t models.ItemType) (*models.CanvasItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	v := appsvcs.View{
		Scroll: s.viewport.Scroll(),
		Size:   s.viewport.View(),
		Zoom:   s.viewport.Zoom(),
	}
	item, err := s.creation.Create(ctx, s.store, menuCloser{s}, t, v)
	if err != nil {
		return nil, err
	}
	if err := s.refresh(ctx); err != nil {
		s.log.WarnContext(ctx, "refresh after create failed", "error", err)
	}
	return item, nil
}

// LastUsed is when the surface last handled a call.
func (s *Surface) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Surface) touch() { s.lastUsed = time.Now() }

func (s *Surface) refresh(ctx context.Context) error {
	items, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh canvas: %w", err)
	}
	s.items = items
	return nil
}

// release ends whatever gesture is active. A failed commit is logged and the
// list is refetched so the card snaps back to its persisted position.
func (s *Surface) release(ctx context.Context) drag.Outcome {
	s.viewport.EndPan()
	if !s.drag.Active() {
		return drag.Outcome{}
	}

	out, err := s.drag.Release(ctx, s.store)
	switch {
	case err != nil:
		s.countCommit(ctx, "error")
		s.log.WarnContext(ctx, "drag commit failed", "item_id", out.ItemID, "error", err)
	case out.Committed:
		s.countCommit(ctx, "ok")
		if item := s.find(out.ItemID); item != nil {
			moved := item.Clone()
			moved.X, moved.Y = out.Position.X, out.Position.Y
			s.replace(moved)
		}
	default:
		return out
	}

	if err := s.refresh(ctx); err != nil {
		s.log.WarnContext(ctx, "refresh after drag failed", "error", err)
	}
	return out
}

func (s *Surface) countCommit(ctx context.Context, result string) {
	if s.commits != nil {
		s.commits.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	}
}

// hitTest picks the pointer-down target: a control beats the topmost item,
// which beats the background.
func (s *Surface) hitTest(p Pointer) gesture.Target {
	if p.OnControl {
		return gesture.OnControl(p.ItemID)
	}
	if p.ItemID != uuid.Nil && s.find(p.ItemID) != nil {
		return gesture.OnItem(p.ItemID)
	}

	at := s.viewport.Frame().PointerToModel(p.Point)
	var top *models.CanvasItem
	for _, item := range s.items {
		node, ok := s.registry.Render(s.displayed(item))
		if !ok || !node.Bounds.Contains(at) {
			continue
		}
		if top == nil || item.ZIndex >= top.ZIndex {
			top = item
		}
	}
	if top != nil {
		return gesture.OnItem(top.ID)
	}
	return gesture.OnBackground()
}

// displayed returns item with the live drag position applied, if it is the one
// being dragged.
func (s *Surface) displayed(item *models.CanvasItem) *models.CanvasItem {
	id, pos, ok := s.drag.Live()
	if !ok || id != item.ID {
		return item
	}
	moved := item.Clone()
	moved.X, moved.Y = pos.X, pos.Y
	return moved
}

func (s *Surface) find(id uuid.UUID) *models.CanvasItem {
	for _, item := range s.items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (s *Surface) replace(item *models.CanvasItem) {
	items := slices.Clone(s.items)
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
		}
	}
	s.items = items
}

// menuCloser closes the menu from inside a locked Surface method.
type menuCloser struct{ s *Surface }

func (m menuCloser) CloseMenu() { m.s.menuOpen = false }
