package handlers

import (
	"net/http"

	"github.com/ghuser/mediaboard/pkg/errhttp"
	"github.com/ghuser/mediaboard/pkg/httpx"
	appsvcs "github.com/ghuser/mediaboard/services/canvas/application/services"
)

// DuplicateItemHandler handles POST /projects/{projectID}/items/{itemID}/duplicate requests.
type DuplicateItemHandler struct {
	svc *appsvcs.Services
}

// NewDuplicateItemHandler returns a DuplicateItemHandler backed by the given services.
func NewDuplicateItemHandler(svc *appsvcs.Services) *DuplicateItemHandler {
	return &DuplicateItemHandler{svc: svc}
}

// Execute copies an item 20 units down and right of the persisted original.
//
//	@Summary		Duplicate item
//	@Tags			items
//	@Produce		json
//	@Param			projectID	path		string	true	"Project ID"
//	@Param			itemID		path		string	true	"Item ID"
//	@Success		201			{object}	ItemResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/projects/{projectID}/items/{itemID}/duplicate [post]
func (h *DuplicateItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectParam(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	item, err := h.svc.Items.ForProject(projectID).Duplicate(r.Context(), itemID)
	if err != nil {
		errhttp.WriteSafeError(w, err, h.svc.Production)
		return
	}
	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}
