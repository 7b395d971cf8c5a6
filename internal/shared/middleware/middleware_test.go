package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHTMX(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    bool
	}{
		{"plain request", nil, false},
		{"htmx request", map[string]string{"HX-Request": "true"}, true},
		{"boosted navigation", map[string]string{"HX-Request": "true", "HX-Boosted": "true"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got bool
			h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = IsHTMX(r)
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			if got != tt.want {
				t.Errorf("IsHTMX() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsHTMX_WithoutMiddleware(t *testing.T) {
	if IsHTMX(httptest.NewRequest(http.MethodGet, "/", nil)) {
		t.Error("expected false without the middleware")
	}
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", e.Level)
	}
	fields := e.ContextMap()
	if fields["path"] != "/missing" || fields["status"] != int64(http.StatusNotFound) {
		t.Errorf("unexpected fields %v", fields)
	}
}
