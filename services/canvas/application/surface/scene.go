package surface

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
	"github.com/ghuser/mediaboard/services/canvas/domain/registry"
)

// Scene is everything a client needs to paint one frame.
type Scene struct {
	SessionID uuid.UUID       `json:"session_id"`
	ProjectID uuid.UUID       `json:"project_id"`
	Viewport  ViewportState   `json:"viewport"`
	Grid      Grid            `json:"grid"`
	Nodes     []registry.Node `json:"nodes"`
	Menu      MenuState       `json:"menu"`
	Drag      DragState       `json:"drag"`
	// Empty is set when there is no project or the project has no cards.
	Empty bool `json:"empty"`
}

// ViewportState is the scroll container the client mirrors.
type ViewportState struct {
	Zoom      int            `json:"zoom"`
	ZoomLabel string         `json:"zoom_label"`
	Scale     float64        `json:"scale"`
	Scroll    geometry.Point `json:"scroll"`
	MaxScroll geometry.Point `json:"max_scroll"`
	Origin    geometry.Point `json:"origin"`
	View      geometry.Size  `json:"view"`
	// Content is the zoomed extent of the inner layer in screen units.
	Content geometry.Size `json:"content"`
	Panning bool          `json:"panning"`
}

// Grid is the background pattern, in model units.
type Grid struct {
	Spacing float64 `json:"spacing"`
}

type MenuState struct {
	Open    bool             `json:"open"`
	Entries []registry.Entry `json:"entries"`
}

type DragState struct {
	State  string     `json:"state"`
	ItemID *uuid.UUID `json:"item_id,omitempty"`
}

// ZoomLabel formats a zoom percentage for the indicator, e.g. "120%".
func ZoomLabel(zoom int) string {
	return fmt.Sprintf("%d%%", zoom)
}

func (s *Surface) scene(ctx context.Context) Scene {
	vp := s.viewport
	sc := Scene{
		SessionID: s.id,
		ProjectID: s.store.ProjectID(),
		Viewport: ViewportState{
			Zoom:      vp.Zoom(),
			ZoomLabel: ZoomLabel(vp.Zoom()),
			Scale:     geometry.Scale(vp.Zoom()),
			Scroll:    vp.Scroll(),
			MaxScroll: vp.MaxScroll(),
			Origin:    vp.Origin(),
			View:      vp.View(),
			Content:   vp.Surface().Mul(geometry.Scale(vp.Zoom())),
			Panning:   vp.IsPanning(),
		},
		Grid:  Grid{Spacing: GridSpacing},
		Nodes: s.nodes(ctx),
		Menu:  MenuState{Open: s.menuOpen, Entries: s.registry.Menu()},
		Drag:  DragState{State: s.drag.State().String()},
	}
	if s.drag.Active() {
		id := s.drag.ItemID()
		sc.Drag.ItemID = &id
	}
	sc.Empty = len(sc.Nodes) == 0
	return sc
}

// nodes renders the list in z order, ties by list position. Records with a
// type the registry does not know are skipped.
func (s *Surface) nodes(ctx context.Context) []registry.Node {
	ordered := slices.Clone(s.items)
	slices.SortStableFunc(ordered, func(a, b *models.CanvasItem) int {
		return a.ZIndex - b.ZIndex
	})

	out := make([]registry.Node, 0, len(ordered))
	for _, item := range ordered {
		node, ok := s.registry.Render(s.displayed(item))
		if !ok {
			s.log.WarnContext(ctx, "skipping item with unknown type", "item_id", item.ID, "type", item.Type)
			continue
		}
		out = append(out, node)
	}
	return out
}
