package handlers

import (
	"net/http"

	"github.com/ghuser/mediaboard/pkg/errhttp"
	"github.com/ghuser/mediaboard/pkg/httpx"
	appsvcs "github.com/ghuser/mediaboard/services/canvas/application/services"
)

// DeleteItemHandler handles DELETE /projects/{projectID}/items/{itemID} requests.
type DeleteItemHandler struct {
	svc *appsvcs.Services
}

// NewDeleteItemHandler returns a DeleteItemHandler backed by the given services.
func NewDeleteItemHandler(svc *appsvcs.Services) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc}
}

// Execute hard-deletes an item.
//
//	@Summary		Delete item
//	@Tags			items
//	@Param			projectID	path	string	true	"Project ID"
//	@Param			itemID		path	string	true	"Item ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/projects/{projectID}/items/{itemID} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectParam(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	if err := h.svc.Items.ForProject(projectID).Delete(r.Context(), itemID); err != nil {
		errhttp.WriteSafeError(w, err, h.svc.Production)
		return
	}
	httpx.NoContent(w)
}
