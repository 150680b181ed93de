package handlers

import (
	"net/http"

	"github.com/ghuser/mediaboard/pkg/errhttp"
	"github.com/ghuser/mediaboard/pkg/httpx"
	appsvcs "github.com/ghuser/mediaboard/services/canvas/application/services"
)

// ListItemsHandler handles GET /projects/{projectID}/items requests.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

// Execute lists a project's items.
//
//	@Summary		List items
//	@Description	Lists a project's canvas items ordered by z_index, ties by insertion order
//	@Tags			items
//	@Produce		json
//	@Param			projectID	path		string	true	"Project ID"
//	@Success		200			{object}	ItemListResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Router			/projects/{projectID}/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectParam(w, r)
	if !ok {
		return
	}

	items, err := h.svc.Items.ForProject(projectID).List(r.Context())
	if err != nil {
		errhttp.WriteSafeError(w, err, h.svc.Production)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemList(items))
}
