package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getsentry/sentry-go"
	"go.opentelemetry.io/otel"

	"github.com/ghuser/mediaboard/pkg/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		ServiceName:     "test-service",
		ServiceVersion:  "test",
		Environment:     "testing",
		OtelSampleRatio: 1,
	}
}

func scrape(t *testing.T, handler http.Handler) (int, string, string) {
	t.Helper()
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	body, _ := io.ReadAll(rr.Body)
	return rr.Code, rr.Header().Get("Content-Type"), string(body)
}

func TestSetup_NoOtelEndpoint(t *testing.T) {
	shutdown, handler, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handler == nil {
		t.Fatal("expected non-nil metrics handler")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_RepeatedCallsDoNotCollide(t *testing.T) {
	for i := 0; i < 2; i++ {
		shutdown, _, err := Setup(context.Background(), baseConfig())
		if err != nil {
			t.Fatalf("setup %d: %v", i, err)
		}
		_ = shutdown(context.Background())
	}
}

func TestSetup_ExportsCanvasCounterWithNamespace(t *testing.T) {
	shutdown, handler, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer shutdown(context.Background()) //nolint:errcheck

	counter, err := otel.Meter("test").Int64Counter("canvas.drag.commits")
	if err != nil {
		t.Fatalf("counter: %v", err)
	}
	counter.Add(context.Background(), 1)

	code, ct, body := scrape(t, handler)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !strings.Contains(ct, "text/plain") {
		t.Errorf("expected text/plain content-type, got %q", ct)
	}
	if !strings.Contains(body, MetricsNamespace+"_canvas_drag_commits_total") {
		t.Errorf("expected namespaced counter in scrape, got:\n%s", body)
	}
}

func TestScrubSession(t *testing.T) {
	event := &sentry.Event{Request: &sentry.Request{
		Cookies: "mediaboard_session=secret",
		Headers: map[string]string{"Cookie": "mediaboard_session=secret", "User-Agent": "board"},
	}}
	got := scrubSession(event, nil)
	if got.Request.Cookies != "" {
		t.Errorf("cookies not scrubbed: %q", got.Request.Cookies)
	}
	if _, ok := got.Request.Headers["Cookie"]; ok {
		t.Error("cookie header not scrubbed")
	}
	if got.Request.Headers["User-Agent"] != "board" {
		t.Error("unrelated headers must survive")
	}

	if scrubSession(&sentry.Event{}, nil) == nil {
		t.Error("events without a request must pass through")
	}
}
