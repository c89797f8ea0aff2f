package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestFetchRecent verifies the client hits the debug endpoint with the
// bearer token and decodes the listing.
func TestFetchRecent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/debug/calls" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("limit") != "10" {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"calls":[{"id":"c1","utterance":"вопрос","reply":"ответ","outcome":"success","attempts":1,"status":200}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	calls, err := client.FetchRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(calls) != 1 || calls[0].Outcome != "success" {
		t.Fatalf("calls = %+v", calls)
	}
}

// TestFetchRecentAuthFailure verifies a non-200 becomes an error.
func TestFetchRecentAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "wrong")
	if _, err := client.FetchRecent(context.Background(), 10); err == nil {
		t.Fatalf("expected error on 401")
	}
}
