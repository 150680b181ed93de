package auth

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const userIDKey contextKey = "user_id"

// ErrUserIDNotFound is returned when no user identity exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrUserIDNotFound = errors.New("user_id not found in context")

// UserIDFromCtx extracts the authenticated user's identifier from the request context.
// Returns "" and ErrUserIDNotFound if none is set (unauthenticated request).
func UserIDFromCtx(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", ErrUserIDNotFound
	}
	return userID, nil
}

// WithUserID returns a new context with the given user identifier attached.
// Used by authentication middleware after validating the session.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// SessionIdentity answers "who is the current user" from the request context
// populated by RequireAuth. It never authenticates on its own.
type SessionIdentity struct{}

// CurrentUser returns the authenticated user's identifier.
func (SessionIdentity) CurrentUser(ctx context.Context) (string, error) {
	return UserIDFromCtx(ctx)
}
