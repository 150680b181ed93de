package handlers

import (
	"net/http"

	"github.com/ghuser/mediaboard/pkg/errhttp"
	"github.com/ghuser/mediaboard/pkg/httpx"
	pkgvalidator "github.com/ghuser/mediaboard/pkg/validator"
	"github.com/ghuser/mediaboard/services/canvas/application/surface"
	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
)

// ViewportRequest describes where the canvas element sits on screen and how
// much of it is visible. Used to open a canvas and on resize. ScrollX and
// ScrollY report a native scroll of the element and come as a pair.
type ViewportRequest struct {
	OriginX float64  `json:"origin_x"                                          example:"0"`
	OriginY float64  `json:"origin_y"                                          example:"64"`
	Width   float64  `json:"width"              validate:"required,gt=0"       example:"1280"`
	Height  float64  `json:"height"             validate:"required,gt=0"       example:"720"`
	ScrollX *float64 `json:"scroll_x,omitempty" validate:"required_with=ScrollY" example:"400"`
	ScrollY *float64 `json:"scroll_y,omitempty" validate:"required_with=ScrollX" example:"300"`
} // @name ViewportRequest

func (r ViewportRequest) origin() geometry.Point { return geometry.Pt(r.OriginX, r.OriginY) }
func (r ViewportRequest) view() geometry.Size    { return geometry.Sz(r.Width, r.Height) }

// apply scrolls sf when the client reported a scroll position.
func (r ViewportRequest) apply(sf *surface.Surface) {
	if r.ScrollX != nil && r.ScrollY != nil {
		sf.ScrollTo(geometry.Pt(*r.ScrollX, *r.ScrollY))
	}
}

// OpenCanvasHandler handles POST /projects/{projectID}/canvas requests.
type OpenCanvasHandler struct {
	sessions *surface.Sessions
}

// NewOpenCanvasHandler returns an OpenCanvasHandler backed by the session registry.
func NewOpenCanvasHandler(sessions *surface.Sessions) *OpenCanvasHandler {
	return &OpenCanvasHandler{sessions: sessions}
}

// Execute opens a canvas surface on a project.
//
//	@Summary		Open canvas
//	@Description	Opens a canvas session for the project and returns its first scene
//	@Tags			canvas
//	@Accept			json
//	@Produce		json
//	@Param			projectID	path		string			true	"Project ID"
//	@Param			request		body		ViewportRequest	true	"Initial viewport"
//	@Success		201			{object}	surface.Scene
//	@Failure		400			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/projects/{projectID}/canvas [post]
func (h *OpenCanvasHandler) Execute(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectParam(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[ViewportRequest](w, r)
	if !ok {
		return
	}

	sf := h.sessions.Open(r.Context(), projectID, req.origin(), req.view())
	req.apply(sf)
	httpx.JSON(w, http.StatusCreated, sf.Scene(r.Context()))
}

// GetCanvasHandler handles GET /canvas/{sessionID} requests.
type GetCanvasHandler struct {
	sessions *surface.Sessions
}

// NewGetCanvasHandler returns a GetCanvasHandler backed by the session registry.
func NewGetCanvasHandler(sessions *surface.Sessions) *GetCanvasHandler {
	return &GetCanvasHandler{sessions: sessions}
}

// Execute refetches the item list and returns the scene. A failed refetch
// still answers with the last known scene.
//
//	@Summary		Get scene
//	@Tags			canvas
//	@Produce		json
//	@Param			sessionID	path		string	true	"Canvas session ID"
//	@Success		200			{object}	surface.Scene
//	@Failure		404			{object}	ErrorResponse
//	@Router			/canvas/{sessionID} [get]
func (h *GetCanvasHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sf, ok := sessionParam(w, r, h.sessions)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, sf.Latest(r.Context()))
}

// CloseCanvasHandler handles DELETE /canvas/{sessionID} requests.
type CloseCanvasHandler struct {
	sessions *surface.Sessions
}

// NewCloseCanvasHandler returns a CloseCanvasHandler backed by the session registry.
func NewCloseCanvasHandler(sessions *surface.Sessions) *CloseCanvasHandler {
	return &CloseCanvasHandler{sessions: sessions}
}

// Execute tears the surface down. A drag in progress is committed first.
//
//	@Summary		Close canvas
//	@Tags			canvas
//	@Param			sessionID	path	string	true	"Canvas session ID"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Router			/canvas/{sessionID} [delete]
func (h *CloseCanvasHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sessionID")
	if !ok {
		return
	}
	if err := h.sessions.Remove(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.NoContent(w)
}

// sessionParam resolves {sessionID} to an open surface, writing 400 or 404.
func sessionParam(w http.ResponseWriter, r *http.Request, sessions *surface.Sessions) (*surface.Surface, bool) {
	id, ok := pathUUID(w, r, "sessionID")
	if !ok {
		return nil, false
	}
	sf, err := sessions.Get(id)
	if err != nil {
		errhttp.WriteError(w, err)
		return nil, false
	}
	return sf, true
}
