package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ghuser/mediaboard/pkg/validator"
)

type cardRequest struct {
	ProjectID string   `json:"project_id" validate:"required,uuid"`
	Type      string   `json:"type"       validate:"required,oneof=text image note section"`
	Title     string   `json:"title"      validate:"omitempty,max=10"`
	Width     *float64 `json:"width"      validate:"omitempty,gt=0"`
	Color     string   `json:"color"      validate:"omitempty,hexcolor"`
	ScrollX   *float64 `json:"scroll_x"   validate:"required_with=ScrollY"`
	ScrollY   *float64 `json:"scroll_y"`
}

const projectID = "550e8400-e29b-41d4-a716-446655440000"

func ptr(v float64) *float64 { return &v }

func TestFormatValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		req   cardRequest
		field string
		want  string
	}{
		{"required", cardRequest{Type: "note"}, "project_id", "This field is required"},
		{"uuid", cardRequest{ProjectID: "nope", Type: "note"}, "project_id", "Must be a valid UUID"},
		{"oneof", cardRequest{ProjectID: projectID, Type: "sticker"}, "type", "Must be one of: text, image, note, section"},
		{"max", cardRequest{ProjectID: projectID, Type: "note", Title: "12345678901"}, "title", "Maximum length is 10"},
		{"gt", cardRequest{ProjectID: projectID, Type: "image", Width: ptr(0)}, "width", "Must be greater than 0"},
		{"hexcolor", cardRequest{ProjectID: projectID, Type: "section", Color: "blue"}, "color", "Must be a hex color"},
		{"required_with", cardRequest{ProjectID: projectID, Type: "note", ScrollY: ptr(10)}, "scroll_x", "Required together with ScrollY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgvalidator.Validate(&tt.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			m := pkgvalidator.FormatValidationErrors(err)
			if m[tt.field] != tt.want {
				t.Fatalf("%s: got %q, want %q (all: %v)", tt.field, m[tt.field], tt.want, m)
			}
		})
	}
}

func TestValidate_Valid(t *testing.T) {
	req := cardRequest{ProjectID: projectID, Type: "section", Width: ptr(600), Color: "#e0e7ff"}
	if err := pkgvalidator.Validate(&req); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	if m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie); len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

type spawnRequest struct {
	Type string `json:"type" validate:"required,max=32"`
}

type emptyRequest struct {
	Note string `json:"note" validate:"omitempty,max=5"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantOK   bool
		wantCode int
		wantBody string
	}{
		{name: "valid", body: `{"type":"note"}`, wantOK: true},
		{name: "malformed", body: "{bad json", wantCode: http.StatusBadRequest, wantBody: "Invalid JSON"},
		{name: "truncated", body: `{"type":`, wantCode: http.StatusBadRequest, wantBody: "Invalid JSON"},
		{name: "missing field", body: `{}`, wantCode: http.StatusUnprocessableEntity, wantBody: "Validation failed"},
		{name: "empty body fails required", body: "", wantCode: http.StatusUnprocessableEntity, wantBody: "This field is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			req, ok := pkgvalidator.ValidateRequest[spawnRequest](w, r)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (body %s)", ok, tt.wantOK, w.Body.String())
			}
			if ok {
				if req.Type != "note" {
					t.Fatalf("unexpected Type: %q", req.Type)
				}
				return
			}
			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("expected %q in body, got: %s", tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestValidateRequest_EmptyBodyWithoutRequiredFields(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.ValidateRequest[emptyRequest](w, r)
	if !ok || req.Note != "" {
		t.Fatalf("expected zero request, got ok=%v req=%+v body=%s", ok, req, w.Body.String())
	}
}
