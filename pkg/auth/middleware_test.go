package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"

	"github.com/ghuser/mediaboard/pkg/logger"
)

// newTestStore returns a gorilla CookieStore (no Redis required) for unit tests.
// In production the RedisStore is used; the sessions.Store interface is identical.
func newTestStore() sessions.Store {
	return sessions.NewCookieStore(
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
	)
}

// copyCookies moves Set-Cookie headers from a recorder onto a fresh request.
func copyCookies(w *httptest.ResponseRecorder, method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func requestWithSession(t *testing.T, store sessions.Store, userID string) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	if err := StartSession(store, w, r, userID); err != nil {
		t.Fatalf("start session: %v", err)
	}
	return copyCookies(w, http.MethodGet, "/api/projects")
}

func TestRequireAuth_ValidSession(t *testing.T) {
	store := newTestStore()

	var captured string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = UserIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r := requestWithSession(t, store, "user-7")
	w := httptest.NewRecorder()
	RequireAuth(store, logger.Discard())(next).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured != "user-7" {
		t.Fatalf("expected user-7 in context, got %q", captured)
	}
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	store := newTestStore()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	})

	r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	w := httptest.NewRecorder()
	RequireAuth(store, logger.Discard())(next).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_SessionMissingUserID(t *testing.T) {
	store := newTestStore()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	})

	writeReq := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	w1 := httptest.NewRecorder()
	session, _ := store.Get(writeReq, sessionName)
	_ = session.Save(writeReq, w1)

	w := httptest.NewRecorder()
	RequireAuth(store, logger.Discard())(next).ServeHTTP(w, copyCookies(w1, http.MethodGet, "/api/projects"))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_BlankUserID(t *testing.T) {
	store := newTestStore()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	})

	r := requestWithSession(t, store, "   ")
	w := httptest.NewRecorder()
	RequireAuth(store, logger.Discard())(next).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestEndSession_ExpiresCookie(t *testing.T) {
	store := newTestStore()
	r := requestWithSession(t, store, "user-7")

	w := httptest.NewRecorder()
	if err := EndSession(store, w, r); err != nil {
		t.Fatalf("end session: %v", err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected an expiring cookie")
	}
	if cookies[0].MaxAge >= 0 {
		t.Fatalf("expected negative MaxAge, got %d", cookies[0].MaxAge)
	}
}
