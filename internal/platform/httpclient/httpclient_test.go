package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestDoJSON_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pets" || r.URL.Query().Get("period") != "all" {
			t.Errorf("unexpected request %s", r.URL)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"name": "Mochi"})
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", 0, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out struct {
		Name string `json:"name"`
	}
	if err := c.Get(context.Background(), "pets", url.Values{"period": {"all"}}, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.Name != "Mochi" {
		t.Fatalf("unexpected body %+v", out)
	}
}

func TestDoJSON_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"validation_error","message":"weight: must be greater than 0"}}`))
	}))
	defer srv.Close()

	c, _ := New(srv.URL, 0, nil)
	err := c.Post(context.Background(), "/pets/1/weight-records", map[string]any{"weight": 0}, nil)

	he, ok := err.(*HTTPError)
	if !ok {
		t.Fatalf("expected *HTTPError, got %T %v", err, err)
	}
	if he.Code != "validation_error" || StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("unexpected error %+v", he)
	}
	if he.Error() != "http 400: weight: must be greater than 0" {
		t.Fatalf("unexpected message %q", he.Error())
	}
}

func TestDoJSON_LargeBody(t *testing.T) {
	items := make([]string, 4096)
	for i := range items {
		items[i] = strings.Repeat("x", 512)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(items)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, 0, nil)
	var out []string
	if err := c.Get(context.Background(), "/maintenance-records", nil, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(out) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(out))
	}
}

func TestDoJSON_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, 0, nil)
	var out map[string]any
	if err := c.Get(context.Background(), "/pets", nil, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out != nil {
		t.Fatalf("expected untouched out, got %v", out)
	}
}

func TestNew_RejectsRelativeBase(t *testing.T) {
	if _, err := New("localhost:8080", 0, nil); err == nil {
		t.Fatalf("expected error for base url without scheme")
	}
	if _, err := New("", 0, nil); err == nil {
		t.Fatalf("expected error for empty base url")
	}
}
