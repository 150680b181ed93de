package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/mediaboard/pkg/errhttp"
	"github.com/ghuser/mediaboard/pkg/httpx"
	pkgvalidator "github.com/ghuser/mediaboard/pkg/validator"
	"github.com/ghuser/mediaboard/services/canvas/application/surface"
	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
)

// Pointer phases accepted by POST /canvas/{sessionID}/pointer.
const (
	PhaseDown  = "down"
	PhaseMove  = "move"
	PhaseUp    = "up"
	PhaseLeave = "leave"
)

// PointerRequest is one forwarded pointer event, in client coordinates.
type PointerRequest struct {
	Phase string  `json:"phase" validate:"required,oneof=down move up leave" example:"down"`
	X     float64 `json:"x"                                                  example:"150"`
	Y     float64 `json:"y"                                                  example:"150"`
	// OnControl is set when the event target is a button or form field.
	OnControl bool `json:"on_control" example:"false"`
	// ItemID is the card under the pointer, when the client knows it.
	ItemID string `json:"item_id,omitempty" validate:"omitempty,uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name PointerRequest

// PointerResponse reports what the event did and the resulting scene.
type PointerResponse struct {
	// Target is set on pointer-down: background, item or control.
	Target    string        `json:"target,omitempty"  example:"item"`
	Moved     bool          `json:"moved"             example:"false"`
	Committed bool          `json:"committed"         example:"false"`
	Scene     surface.Scene `json:"scene"`
} // @name PointerResponse

// PointerHandler handles POST /canvas/{sessionID}/pointer requests.
type PointerHandler struct {
	sessions *surface.Sessions
}

// NewPointerHandler returns a PointerHandler backed by the session registry.
func NewPointerHandler(sessions *surface.Sessions) *PointerHandler {
	return &PointerHandler{sessions: sessions}
}

// Execute feeds one pointer event to the surface.
//
//	@Summary		Pointer event
//	@Description	Routes a pointer event: down picks control, topmost item or background; up and leave commit a drag
//	@Tags			canvas
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string			true	"Canvas session ID"
//	@Param			request		body		PointerRequest	true	"Pointer event"
//	@Success		200			{object}	PointerResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/canvas/{sessionID}/pointer [post]
func (h *PointerHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sf, ok := sessionParam(w, r, h.sessions)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[PointerRequest](w, r)
	if !ok {
		return
	}

	at := geometry.Pt(req.X, req.Y)
	var resp PointerResponse
	switch req.Phase {
	case PhaseDown:
		p := surface.Pointer{Point: at, OnControl: req.OnControl}
		if id, err := uuid.Parse(req.ItemID); err == nil {
			p.ItemID = id
		}
		resp.Target = sf.PointerDown(p).Kind.String()
	case PhaseMove:
		resp.Moved = sf.PointerMove(at)
	case PhaseUp:
		resp.Committed = sf.PointerUp(r.Context()).Committed
	case PhaseLeave:
		resp.Committed = sf.PointerLeave(r.Context()).Committed
	}
	resp.Scene = sf.Scene(r.Context())
	httpx.JSON(w, http.StatusOK, resp)
}

// ZoomRequest steps the zoom by one notch.
type ZoomRequest struct {
	Direction string `json:"direction" validate:"required,oneof=in out" example:"in"`
} // @name ZoomRequest

// ZoomHandler handles POST /canvas/{sessionID}/zoom requests.
type ZoomHandler struct {
	sessions *surface.Sessions
}

// NewZoomHandler returns a ZoomHandler backed by the session registry.
func NewZoomHandler(sessions *surface.Sessions) *ZoomHandler {
	return &ZoomHandler{sessions: sessions}
}

// Execute zooms in or out by 10%, clamped to [50%, 200%].
//
//	@Summary		Zoom
//	@Tags			canvas
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string		true	"Canvas session ID"
//	@Param			request		body		ZoomRequest	true	"Zoom direction"
//	@Success		200			{object}	surface.Scene
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/canvas/{sessionID}/zoom [post]
func (h *ZoomHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sf, ok := sessionParam(w, r, h.sessions)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[ZoomRequest](w, r)
	if !ok {
		return
	}

	if req.Direction == "in" {
		sf.ZoomIn()
	} else {
		sf.ZoomOut()
	}
	httpx.JSON(w, http.StatusOK, sf.Scene(r.Context()))
}

// ResizeHandler handles PUT /canvas/{sessionID}/viewport requests.
type ResizeHandler struct {
	sessions *surface.Sessions
}

// NewResizeHandler returns a ResizeHandler backed by the session registry.
func NewResizeHandler(sessions *surface.Sessions) *ResizeHandler {
	return &ResizeHandler{sessions: sessions}
}

// Execute records a new on-screen origin and visible size, and the scroll
// position when the client reports one.
//
//	@Summary		Resize viewport
//	@Tags			canvas
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string			true	"Canvas session ID"
//	@Param			request		body		ViewportRequest	true	"Viewport"
//	@Success		200			{object}	surface.Scene
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/canvas/{sessionID}/viewport [put]
func (h *ResizeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sf, ok := sessionParam(w, r, h.sessions)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[ViewportRequest](w, r)
	if !ok {
		return
	}

	sf.Resize(req.origin(), req.view())
	req.apply(sf)
	httpx.JSON(w, http.StatusOK, sf.Scene(r.Context()))
}

// MenuRequest opens or closes the creation menu.
type MenuRequest struct {
	Open *bool `json:"open" validate:"required" example:"true"`
} // @name MenuRequest

// MenuHandler handles POST /canvas/{sessionID}/menu requests.
type MenuHandler struct {
	sessions *surface.Sessions
}

// NewMenuHandler returns a MenuHandler backed by the session registry.
func NewMenuHandler(sessions *surface.Sessions) *MenuHandler {
	return &MenuHandler{sessions: sessions}
}

// Execute toggles the floating creation menu.
//
//	@Summary		Creation menu
//	@Tags			canvas
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string		true	"Canvas session ID"
//	@Param			request		body		MenuRequest	true	"Menu state"
//	@Success		200			{object}	surface.Scene
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/canvas/{sessionID}/menu [post]
func (h *MenuHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sf, ok := sessionParam(w, r, h.sessions)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[MenuRequest](w, r)
	if !ok {
		return
	}

	if *req.Open {
		sf.OpenMenu()
	} else {
		sf.CloseMenu()
	}
	httpx.JSON(w, http.StatusOK, sf.Scene(r.Context()))
}

// SpawnItemRequest picks a card type from the creation menu.
type SpawnItemRequest struct {
	Type string `json:"type" validate:"required,max=32" example:"note"`
} // @name SpawnItemRequest

// SpawnItemResponse is the new card and the refreshed scene.
type SpawnItemResponse struct {
	Item  ItemResponse  `json:"item"`
	Scene surface.Scene `json:"scene"`
} // @name SpawnItemResponse

// SpawnItemHandler handles POST /canvas/{sessionID}/items requests.
type SpawnItemHandler struct {
	sessions   *surface.Sessions
	production bool
}

// NewSpawnItemHandler returns a SpawnItemHandler backed by the session registry.
func NewSpawnItemHandler(sessions *surface.Sessions, production bool) *SpawnItemHandler {
	return &SpawnItemHandler{sessions: sessions, production: production}
}

// Execute creates a card centered in the visible area and closes the menu.
//
//	@Summary		Spawn item
//	@Description	Creates a card of the given type at the center of the visible area. The menu closes either way
//	@Tags			canvas
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string				true	"Canvas session ID"
//	@Param			request		body		SpawnItemRequest	true	"Card type"
//	@Success		201			{object}	SpawnItemResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/canvas/{sessionID}/items [post]
func (h *SpawnItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sf, ok := sessionParam(w, r, h.sessions)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[SpawnItemRequest](w, r)
	if !ok {
		return
	}

	item, err := sf.Create(r.Context(), models.ItemType(req.Type))
	if err != nil {
		errhttp.WriteSafeError(w, err, h.production)
		return
	}
	httpx.JSON(w, http.StatusCreated, SpawnItemResponse{
		Item:  toItemResponse(item),
		Scene: sf.Scene(r.Context()),
	})
}
