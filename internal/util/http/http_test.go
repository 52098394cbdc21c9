package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("User-Agent"), UserAgentName+"/") {
			t.Errorf("Unexpected User-Agent: %q", r.Header.Get("User-Agent"))
		}
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("payload"))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	ctx := context.Background()

	data, err := Fetch(ctx, server.URL+"/ok", FetchOptions{})
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("Fetch() = %q, want %q", data, "payload")
	}

	if _, err := Fetch(ctx, server.URL+"/missing", FetchOptions{}); err == nil {
		t.Error("Expected error for 404 response")
	}

	_, err = Fetch(ctx, server.URL+"/big", FetchOptions{MaxBytes: 16})
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("Fetch() error = %v, want ErrTooLarge", err)
	}

	if _, err := Fetch(ctx, server.URL+"/big", FetchOptions{MaxBytes: 64}); err != nil {
		t.Errorf("Fetch() at exactly the limit unexpected error: %v", err)
	}
}
