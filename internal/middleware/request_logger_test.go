package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"pet-care-log/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type entry struct {
	level  string
	msg    string
	fields map[string]any
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []entry
}

func (l *recordingLogger) With(map[string]any) logger.Logger { return l }
func (l *recordingLogger) Debug(msg string, f map[string]any) { l.add("debug", msg, f) }
func (l *recordingLogger) Info(msg string, f map[string]any)  { l.add("info", msg, f) }
func (l *recordingLogger) Warn(msg string, f map[string]any)  { l.add("warn", msg, f) }
func (l *recordingLogger) Error(msg string, f map[string]any) { l.add("error", msg, f) }

func (l *recordingLogger) add(level, msg string, f map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry{level: level, msg: msg, fields: f})
}

func TestRequestLogger_LogsStatusAndRequestID(t *testing.T) {
	rec := &recordingLogger{}
	h := chimw.RequestID(RequestLogger(rec)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	res := httptest.NewRecorder()
	h.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/calendar", nil))

	if len(rec.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(rec.entries))
	}
	e := rec.entries[0]
	if e.level != "info" || e.fields["status"] != http.StatusTeapot || e.fields["path"] != "/calendar" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if id, _ := e.fields["request_id"].(string); id == "" {
		t.Fatalf("expected request_id, got %+v", e.fields)
	}
}

func TestRequestLogger_ServerErrorIsWarn(t *testing.T) {
	rec := &recordingLogger{}
	h := RequestLogger(rec)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/pets/x", nil))

	if len(rec.entries) != 1 || rec.entries[0].level != "warn" {
		t.Fatalf("expected one warn entry, got %+v", rec.entries)
	}
	if _, ok := rec.entries[0].fields["request_id"]; ok {
		t.Fatalf("no request id middleware, field must be absent")
	}
}

func TestRequestLogger_ImplicitOK(t *testing.T) {
	rec := &recordingLogger{}
	h := RequestLogger(rec)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.entries[0].fields["status"] != http.StatusOK || rec.entries[0].fields["bytes"] != 2 {
		t.Fatalf("unexpected fields: %+v", rec.entries[0].fields)
	}
}
