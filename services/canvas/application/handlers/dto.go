package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/mediaboard/pkg/errhttp"
	"github.com/ghuser/mediaboard/pkg/httpx"
	canvasdomain "github.com/ghuser/mediaboard/services/canvas/domain"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
)

// ItemResponse is the wire form of a canvas item.
type ItemResponse struct {
	ID        uuid.UUID      `json:"id"                example:"123e4567-e89b-12d3-a456-426614174000"`
	ProjectID uuid.UUID      `json:"project_id"        example:"550e8400-e29b-41d4-a716-446655440000"`
	Type      string         `json:"type"              example:"note"`
	X         float64        `json:"x"                 example:"120"`
	Y         float64        `json:"y"                 example:"80"`
	Width     *float64       `json:"width,omitempty"   example:"200"`
	Height    *float64       `json:"height,omitempty"  example:"200"`
	ZIndex    int            `json:"z_index"           example:"3"`
	Title     *string        `json:"title,omitempty"   example:"Act 1"`
	Content   *string        `json:"content,omitempty" example:"Establishing shot"`
	Data      map[string]any `json:"data"`
	CreatedBy string         `json:"created_by"        example:"user-42"`
	CreatedAt time.Time      `json:"created_at"        example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time      `json:"updated_at"        example:"2024-01-15T10:30:00Z"`
} // @name ItemResponse

// ItemListResponse wraps a project's items in z order.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
} // @name ItemListResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"canvas item not found"`
} // @name ErrorResponse

func toItemResponse(item *models.CanvasItem) ItemResponse {
	data := map[string]any(item.Data)
	if data == nil {
		data = map[string]any{}
	}
	return ItemResponse{
		ID:        item.ID,
		ProjectID: item.ProjectID,
		Type:      item.Type.String(),
		X:         item.X,
		Y:         item.Y,
		Width:     item.Width,
		Height:    item.Height,
		ZIndex:    item.ZIndex,
		Title:     item.Title,
		Content:   item.Content,
		Data:      data,
		CreatedBy: item.CreatedBy,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func toItemList(items []*models.CanvasItem) ItemListResponse {
	out := ItemListResponse{Items: make([]ItemResponse, 0, len(items))}
	for _, item := range items {
		out.Items = append(out.Items, toItemResponse(item))
	}
	return out
}

// pathUUID parses a chi URL parameter, writing 400 when it is not a UUID.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, fmt.Sprintf("%s must be a valid UUID", name))
		return uuid.Nil, false
	}
	return id, true
}

// projectParam parses {projectID}, rejecting the nil UUID with ErrMissingProject.
func projectParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := pathUUID(w, r, "projectID")
	if !ok {
		return uuid.Nil, false
	}
	if id == uuid.Nil {
		errhttp.WriteError(w, canvasdomain.ErrMissingProject)
		return uuid.Nil, false
	}
	return id, true
}
