package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/mediaboard/pkg/auth"
	canvasdomain "github.com/ghuser/mediaboard/services/canvas/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrItemNotFound", canvasdomain.ErrItemNotFound, http.StatusNotFound},
		{"ErrSessionNotFound", canvasdomain.ErrSessionNotFound, http.StatusNotFound},
		{"ErrUnknownItemType", canvasdomain.ErrUnknownItemType, http.StatusUnprocessableEntity},
		{"ErrInvalidItemData", canvasdomain.ErrInvalidItemData, http.StatusUnprocessableEntity},
		{"ErrInvalidGeometry", canvasdomain.ErrInvalidGeometry, http.StatusUnprocessableEntity},
		{"ErrImmutableField", canvasdomain.ErrImmutableField, http.StatusUnprocessableEntity},
		{"ErrUnsupportedEdit", canvasdomain.ErrUnsupportedEdit, http.StatusUnprocessableEntity},
		{"ErrMissingProject", canvasdomain.ErrMissingProject, http.StatusBadRequest},
		{"ErrFileTooLarge", canvasdomain.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"ErrUserIDNotFound", auth.ErrUserIDNotFound, http.StatusUnauthorized},
		{"wrapped ErrItemNotFound", fmt.Errorf("get item: %w", canvasdomain.ErrItemNotFound), http.StatusNotFound},
		{"wrapped ErrInvalidItemData", fmt.Errorf("%w: colorIndex out of range", canvasdomain.ErrInvalidItemData), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := Status(tt.err); got != tt.wantStatus {
				t.Fatalf("Status() = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, canvasdomain.ErrItemNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != canvasdomain.ErrItemNotFound.Error() {
		t.Fatalf("unexpected error message %q", body["error"])
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, canvasdomain.ErrItemNotFound)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}

func TestWriteSafeError(t *testing.T) {
	internal := errors.New("pq: connection refused")

	tests := []struct {
		name       string
		err        error
		production bool
		want       string
	}{
		{"production masks 500", internal, true, http.StatusText(http.StatusInternalServerError)},
		{"development keeps 500", internal, false, internal.Error()},
		{"production keeps 4xx", canvasdomain.ErrItemNotFound, true, canvasdomain.ErrItemNotFound.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteSafeError(w, tt.err, tt.production)

			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body["error"] != tt.want {
				t.Fatalf("error = %q, want %q", body["error"], tt.want)
			}
		})
	}
}
