package registry

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"path"
	"strings"

	canvasdomain "github.com/ghuser/mediaboard/services/canvas/domain"
	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
)

// MaxAttachmentBytes caps an image upload. Larger files are rejected before
// the blob service is called.
const MaxAttachmentBytes = 5 << 20

// Uploader stores a file at key and returns a URL that resolves to it.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// File is an uploaded attachment held in memory.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Attachment is the outcome of AttachFile. When the upload failed the file is
// embedded as a data URL and UploadErr records why.
type Attachment struct {
	Patch     models.Patch
	URL       string
	Embedded  bool
	UploadErr error
}

// ImageKind is a picture card. Its source is either a blob URL or an inline data URL.
type ImageKind struct {
	uploader Uploader
}

// NewImageKind returns an ImageKind that uploads through u. A nil u embeds every file.
func NewImageKind(u Uploader) ImageKind {
	return ImageKind{uploader: u}
}

func (ImageKind) Type() models.ItemType { return models.TypeImage }
func (ImageKind) Label() string         { return "Image" }

func (ImageKind) Defaults() Defaults {
	return Defaults{
		Size:  geometry.Sz(320, 240),
		Title: models.Ptr("Image"),
		Data:  models.Data{"src": "", "placeholder": true},
	}
}

func (ImageKind) Render(item *models.CanvasItem) Node {
	n := baseNode(item, explicitSize(item, geometry.Sz(320, 240)))
	n.Label = str(item.Title)
	src, _ := item.Data.String("src")
	placeholder, ok := item.Data.Bool("placeholder")
	if !ok {
		placeholder = src == ""
	}
	n.Props = map[string]any{
		"src":         src,
		"placeholder": placeholder,
	}
	return n
}

func (ImageKind) Edit(item *models.CanvasItem, in EditInput) (models.Patch, error) {
	if err := rejectUnowned(models.TypeImage, in, "title", "src"); err != nil {
		return models.Patch{}, err
	}
	p := models.Patch{Title: copyString(in.Title)}
	if in.Src != nil {
		p.Data = item.Data.Merge(models.Data{"src": *in.Src, "placeholder": *in.Src == ""})
	}
	return p, nil
}

func (ImageKind) DataSchema() string {
	return `{
		"type": "object",
		"properties": {
			"src": {"type": "string"},
			"placeholder": {"type": "boolean"}
		},
		"required": ["src", "placeholder"],
		"additionalProperties": false
	}`
}

// AttachFile uploads f under the item's blob prefix and points the card at it.
// Any upload failure degrades to embedding the file inline.
func (k ImageKind) AttachFile(ctx context.Context, item *models.CanvasItem, f File) (Attachment, error) {
	if len(f.Body) == 0 {
		return Attachment{}, fmt.Errorf("%w: empty file", canvasdomain.ErrInvalidItemData)
	}
	if len(f.Body) > MaxAttachmentBytes {
		return Attachment{}, fmt.Errorf("%w: %d bytes exceeds %d", canvasdomain.ErrFileTooLarge, len(f.Body), MaxAttachmentBytes)
	}

	contentType := f.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(f.Body)
	}

	var (
		url       string
		uploadErr error
	)
	if k.uploader == nil {
		uploadErr = fmt.Errorf("no blob uploader configured")
	} else {
		url, uploadErr = k.uploader.Upload(ctx, BlobKey(item, f.Name), contentType, f.Body)
	}

	a := Attachment{UploadErr: uploadErr}
	if uploadErr != nil || url == "" {
		url = DataURL(contentType, f.Body)
		a.Embedded = true
	}
	a.URL = url
	a.Patch = models.Patch{Data: item.Data.Merge(models.Data{"src": url, "placeholder": false})}
	return a, nil
}

// BlobKey is the object path for an item's attachment:
// projects/{projectID}/items/{itemID}/{filename}.
func BlobKey(item *models.CanvasItem, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == ".." || name == "/" || name == "" {
		name = "upload"
	}
	return fmt.Sprintf("projects/%s/items/%s/%s", item.ProjectID, item.ID, name)
}

// DataURL embeds body as a base64 data URL.
func DataURL(contentType string, body []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(body)
}
