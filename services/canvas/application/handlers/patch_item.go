package handlers

import (
	"net/http"

	"github.com/ghuser/mediaboard/pkg/errhttp"
	"github.com/ghuser/mediaboard/pkg/httpx"
	pkgvalidator "github.com/ghuser/mediaboard/pkg/validator"
	appsvcs "github.com/ghuser/mediaboard/services/canvas/application/services"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
)

// UpdateItemRequest is the request body for PATCH /projects/{projectID}/items/{itemID}.
// Only fields present in the body change. Sending a different type is rejected.
type UpdateItemRequest struct {
	Type    *string        `json:"type,omitempty"    validate:"omitempty,max=32"     example:"note"`
	X       *float64       `json:"x,omitempty"                                       example:"150"`
	Y       *float64       `json:"y,omitempty"                                       example:"130"`
	Width   *float64       `json:"width,omitempty"   validate:"omitempty,gt=0"       example:"240"`
	Height  *float64       `json:"height,omitempty"  validate:"omitempty,gt=0"       example:"240"`
	ZIndex  *int           `json:"z_index,omitempty" validate:"omitempty,gte=0"      example:"4"`
	Title   *string        `json:"title,omitempty"   validate:"omitempty,max=255"    example:"Act 2"`
	Content *string        `json:"content,omitempty" validate:"omitempty,max=20000"  example:"Close-up"`
	Data    map[string]any `json:"data,omitempty"`
} // @name UpdateItemRequest

func (r UpdateItemRequest) patch() models.Patch {
	p := models.Patch{
		X:       r.X,
		Y:       r.Y,
		Width:   r.Width,
		Height:  r.Height,
		ZIndex:  r.ZIndex,
		Title:   r.Title,
		Content: r.Content,
		Data:    models.Data(r.Data),
	}
	if r.Type != nil {
		t := models.ItemType(*r.Type)
		p.Type = &t
	}
	return p
}

// PatchItemHandler handles PATCH /projects/{projectID}/items/{itemID} requests.
type PatchItemHandler struct {
	svc *appsvcs.Services
}

// NewPatchItemHandler returns a PatchItemHandler backed by the given services.
func NewPatchItemHandler(svc *appsvcs.Services) *PatchItemHandler {
	return &PatchItemHandler{svc: svc}
}

// Execute applies a partial update.
//
//	@Summary		Update item
//	@Description	Partially updates an item. Coordinates are clamped to be non-negative; last write wins
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			projectID	path		string				true	"Project ID"
//	@Param			itemID		path		string				true	"Item ID"
//	@Param			request		body		UpdateItemRequest	true	"Fields to change"
//	@Success		200			{object}	ItemResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/projects/{projectID}/items/{itemID} [patch]
func (h *PatchItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectParam(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Items.ForProject(projectID).Update(r.Context(), itemID, req.patch())
	if err != nil {
		errhttp.WriteSafeError(w, err, h.svc.Production)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
