package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ghuser/mediaboard/pkg/errhttp"
	"github.com/ghuser/mediaboard/pkg/httpx"
	appsvcs "github.com/ghuser/mediaboard/services/canvas/application/services"
	canvasdomain "github.com/ghuser/mediaboard/services/canvas/domain"
	"github.com/ghuser/mediaboard/services/canvas/domain/registry"
)

// multipartOverhead is the form framing allowed on top of the file itself.
const multipartOverhead = 1 << 20

// AttachFileResponse reports where the file ended up.
type AttachFileResponse struct {
	Item ItemResponse `json:"item"`
	URL  string       `json:"url"      example:"https://cdn.example.com/projects/p/items/i/still.png"`
	// Embedded is set when the upload failed and the file was inlined as a data URL.
	Embedded bool `json:"embedded" example:"false"`
} // @name AttachFileResponse

// AttachFileHandler handles POST /projects/{projectID}/items/{itemID}/file requests.
type AttachFileHandler struct {
	svc *appsvcs.Services
}

// NewAttachFileHandler returns an AttachFileHandler backed by the given services.
func NewAttachFileHandler(svc *appsvcs.Services) *AttachFileHandler {
	return &AttachFileHandler{svc: svc}
}

// Execute uploads a file to an image card.
//
//	@Summary		Attach file
//	@Description	Uploads the file to blob storage and points the card at it. If the upload fails the file is embedded inline
//	@Tags			items
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			projectID	path		string	true	"Project ID"
//	@Param			itemID		path		string	true	"Item ID"
//	@Param			file		formData	file	true	"Image file"
//	@Success		200			{object}	AttachFileResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		413			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/projects/{projectID}/items/{itemID}/file [post]
func (h *AttachFileHandler) Execute(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectParam(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, registry.MaxAttachmentBytes+multipartOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			errhttp.WriteError(w, canvasdomain.ErrFileTooLarge)
			return
		}
		httpx.JSONError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, registry.MaxAttachmentBytes+1))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "could not read uploaded file")
		return
	}

	item, att, err := h.svc.Items.ForProject(projectID).AttachFile(r.Context(), itemID, registry.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        body,
	})
	if err != nil {
		errhttp.WriteSafeError(w, err, h.svc.Production)
		return
	}
	httpx.JSON(w, http.StatusOK, AttachFileResponse{
		Item:     toItemResponse(item),
		URL:      att.URL,
		Embedded: att.Embedded,
	})
}
