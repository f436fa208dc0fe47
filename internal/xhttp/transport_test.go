package xhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/garrettladley/boldrelay/internal/version"
)

func TestTransportSetsHeaders(t *testing.T) {
	t.Parallel()

	var (
		gotUA     string
		gotAccept string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get(UserAgent)
		gotAccept = r.Header.Get(Accept)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	client := NewHTTPClient()
	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	_ = resp.Body.Close()

	if gotUA != version.UserAgent() {
		t.Errorf("User-Agent = %q, want %q", gotUA, version.UserAgent())
	}
	if gotAccept != ApplicationJSON {
		t.Errorf("Accept = %q, want %q", gotAccept, ApplicationJSON)
	}
	if req.Header.Get(UserAgent) != "" {
		t.Error("transport mutated the caller's request headers")
	}
}
