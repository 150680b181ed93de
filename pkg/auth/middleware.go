package auth

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"github.com/ghuser/mediaboard/pkg/httpx"
	"github.com/ghuser/mediaboard/pkg/logger"
)

const sessionName = "mediaboard_session"
const sessionUserIDKey = "user_id"

// RequireAuth is a chi middleware that enforces authentication via session cookies.
// It reads the session cookie, extracts the user id, and injects it into the request context.
// Returns 401 Unauthorized if the session is missing, invalid, or lacks a user id.
//
// After this middleware, handlers can safely call auth.UserIDFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			userID, ok := session.Values[sessionUserIDKey].(string)
			if !ok || strings.TrimSpace(userID) == "" {
				log.WarnContext(r.Context(), "session missing user_id")
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StartSession binds userID to a fresh session cookie.
// The identity provider calls this after it has authenticated the user.
func StartSession(store sessions.Store, w http.ResponseWriter, r *http.Request, userID string) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return err
	}
	session.Values[sessionUserIDKey] = userID
	return session.Save(r, w)
}

// EndSession expires the session cookie and its server-side state.
func EndSession(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return err
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
