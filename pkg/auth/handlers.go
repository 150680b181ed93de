package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/mediaboard/pkg/httpx"
	"github.com/ghuser/mediaboard/pkg/logger"
	pkgvalidator "github.com/ghuser/mediaboard/pkg/validator"
)

// DevSignInRequest names the user a development session is opened for.
type DevSignInRequest struct {
	UserID string `json:"user_id" validate:"required,max=128" example:"user-42"`
}

// DevSignInHandler opens a session for any user id. It stands in for the
// external identity provider and is only mounted outside production.
func DevSignInHandler(store sessions.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := pkgvalidator.ValidateRequest[DevSignInRequest](w, r)
		if !ok {
			return
		}
		if err := StartSession(store, w, r, req.UserID); err != nil {
			log.ErrorContext(r.Context(), "start session failed", "error", err)
			httpx.JSONError(w, http.StatusInternalServerError, "could not start session")
			return
		}
		log.InfoContext(r.Context(), "development session started", "user_id", req.UserID)
		httpx.NoContent(w)
	}
}

// SignOutHandler expires the caller's session.
func SignOutHandler(store sessions.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := EndSession(store, w, r); err != nil {
			log.WarnContext(r.Context(), "end session failed", "error", err)
			httpx.JSONError(w, http.StatusBadRequest, "invalid session")
			return
		}
		httpx.NoContent(w)
	}
}
