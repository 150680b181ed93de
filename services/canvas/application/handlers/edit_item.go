package handlers

import (
	"net/http"

	"github.com/ghuser/mediaboard/pkg/errhttp"
	"github.com/ghuser/mediaboard/pkg/httpx"
	pkgvalidator "github.com/ghuser/mediaboard/pkg/validator"
	appsvcs "github.com/ghuser/mediaboard/services/canvas/application/services"
	"github.com/ghuser/mediaboard/services/canvas/domain/registry"
)

// EditItemRequest carries the typed fields an in-place editor changes.
// Which fields apply depends on the item's type.
type EditItemRequest struct {
	Content    *string `json:"content,omitempty"     validate:"omitempty,max=20000" example:"Buy film"`
	Title      *string `json:"title,omitempty"       validate:"omitempty,max=255"   example:"Act 1"`
	ColorIndex *int    `json:"color_index,omitempty" validate:"omitempty,gte=0"     example:"2"`
	Color      *string `json:"color,omitempty"       validate:"omitempty,max=16"    example:"#e0e7ff"`
	Src        *string `json:"src,omitempty"         validate:"omitempty,max=2048"  example:"https://cdn.example.com/still.png"`
} // @name EditItemRequest

func (r EditItemRequest) input() registry.EditInput {
	return registry.EditInput{
		Content:    r.Content,
		Title:      r.Title,
		ColorIndex: r.ColorIndex,
		Color:      r.Color,
		Src:        r.Src,
	}
}

// EditItemHandler handles POST /projects/{projectID}/items/{itemID}/edit requests.
type EditItemHandler struct {
	svc *appsvcs.Services
}

// NewEditItemHandler returns an EditItemHandler backed by the given services.
func NewEditItemHandler(svc *appsvcs.Services) *EditItemHandler {
	return &EditItemHandler{svc: svc}
}

// Execute routes a typed edit through the item's type.
//
//	@Summary		Edit item
//	@Description	Applies a type-specific edit. Fields the type does not own are rejected
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			projectID	path		string			true	"Project ID"
//	@Param			itemID		path		string			true	"Item ID"
//	@Param			request		body		EditItemRequest	true	"Edit"
//	@Success		200			{object}	ItemResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/projects/{projectID}/items/{itemID}/edit [post]
func (h *EditItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectParam(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[EditItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Items.ForProject(projectID).Edit(r.Context(), itemID, req.input())
	if err != nil {
		errhttp.WriteSafeError(w, err, h.svc.Production)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
