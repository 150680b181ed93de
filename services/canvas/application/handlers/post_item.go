package handlers

import (
	"net/http"

	"github.com/ghuser/mediaboard/pkg/errhttp"
	"github.com/ghuser/mediaboard/pkg/httpx"
	pkgvalidator "github.com/ghuser/mediaboard/pkg/validator"
	appsvcs "github.com/ghuser/mediaboard/services/canvas/application/services"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
)

// CreateItemRequest is the request body for POST /projects/{projectID}/items.
// Omitted fields take the type's defaults.
type CreateItemRequest struct {
	Type    string         `json:"type"              validate:"required,max=32"      example:"note"`
	X       float64        `json:"x"                                                  example:"120"`
	Y       float64        `json:"y"                                                  example:"80"`
	Width   *float64       `json:"width,omitempty"   validate:"omitempty,gt=0"       example:"200"`
	Height  *float64       `json:"height,omitempty"  validate:"omitempty,gt=0"       example:"200"`
	ZIndex  *int           `json:"z_index,omitempty" validate:"omitempty,gte=0"      example:"3"`
	Title   *string        `json:"title,omitempty"   validate:"omitempty,max=255"    example:"Act 1"`
	Content *string        `json:"content,omitempty" validate:"omitempty,max=20000"  example:"Establishing shot"`
	Data    map[string]any `json:"data,omitempty"`
} // @name CreateItemRequest

func (r CreateItemRequest) draft() models.Draft {
	return models.Draft{
		Type:    models.ItemType(r.Type),
		X:       r.X,
		Y:       r.Y,
		Width:   r.Width,
		Height:  r.Height,
		ZIndex:  r.ZIndex,
		Title:   r.Title,
		Content: r.Content,
		Data:    models.Data(r.Data),
	}
}

// PostItemHandler handles POST /projects/{projectID}/items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a new item.
//
//	@Summary		Create item
//	@Description	Creates a canvas item; created_by comes from the session and z_index defaults to the current count
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			projectID	path		string				true	"Project ID"
//	@Param			request		body		CreateItemRequest	true	"Item creation request"
//	@Success		201			{object}	ItemResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/projects/{projectID}/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectParam(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Items.ForProject(projectID).Create(r.Context(), req.draft())
	if err != nil {
		errhttp.WriteSafeError(w, err, h.svc.Production)
		return
	}
	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}
