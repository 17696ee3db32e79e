package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerScopesLoggerPerRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)

	var logged *zap.Logger
	var reqID string
	h := RequestID()(RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logged = LoggerFromContext(r.Context())
		reqID = chimiddleware.GetReqID(r.Context())
	})))
	h.ServeHTTP(rec, req)

	if logged == nil {
		t.Fatalf("expected a logger in the request context")
	}
	if reqID == "" {
		t.Fatalf("expected a request ID in the context")
	}
	// With a request ID present, the scoped logger is a child of the global one.
	if logged == LoggerFromContext(context.Background()) {
		t.Fatalf("expected a request-scoped logger, got the global instance")
	}
}

func TestRequestLoggerWithoutRequestIDKeepsGlobal(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	var logged *zap.Logger
	h := RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logged = LoggerFromContext(r.Context())
	}))
	h.ServeHTTP(rec, req)

	if logged != LoggerFromContext(context.Background()) {
		t.Fatalf("expected the global logger when no request ID is set")
	}
}

func TestAccessLoggerWritesSummary(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	h := AccessLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short"))
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req = req.WithContext(contextWithLogger(req.Context(), logger))
	h.ServeHTTP(rec, req)

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 access log entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Message != "request completed" {
		t.Fatalf("unexpected message: %q", entry.Message)
	}

	fields := map[string]zapcore.Field{}
	for _, f := range entry.Context {
		fields[f.Key] = f
	}
	if got := fields["method"].String; got != http.MethodGet {
		t.Fatalf("unexpected method field: %q", got)
	}
	if got := fields["path"].String; got != "/health" {
		t.Fatalf("unexpected path field: %q", got)
	}
	if got := fields["status"].Integer; got != http.StatusTeapot {
		t.Fatalf("unexpected status field: %d", got)
	}
	if got := fields["bytes"].Integer; got != int64(len("short")) {
		t.Fatalf("unexpected bytes field: %d", got)
	}
	if _, ok := fields["duration"]; !ok {
		t.Fatalf("expected duration field, got %+v", entry.Context)
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	if LoggerFromContext(nil) == nil {
		t.Fatalf("expected fallback logger for nil context")
	}
	if LoggerFromContext(context.Background()) == nil {
		t.Fatalf("expected fallback logger for empty context")
	}
}

func TestLogErrorAppendsErrorField(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := contextWithLogger(context.Background(), zap.New(core))

	LogError(ctx, "update failed", errors.New("boom"), zap.String("id", "user1"))

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	var sawErr, sawID bool
	for _, f := range entries[0].Context {
		switch f.Key {
		case "error":
			sawErr = true
		case "id":
			sawID = f.String == "user1"
		}
	}
	if !sawErr || !sawID {
		t.Fatalf("expected error and id fields, got %+v", entries[0].Context)
	}
}

func TestLogWarnUsesScopedLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)
	ctx := contextWithLogger(context.Background(), zap.New(core))

	LogWarn(ctx, "slow path")

	entries := recorded.All()
	if len(entries) != 1 || entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("expected a single warn entry, got %+v", entries)
	}
}
