package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestMonitorPlainListing verifies the non-TTY fallback prints calls.
func TestMonitorPlainListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"calls":[{"id":"c1","created_at":"2026-08-01T12:00:00Z","utterance":"вопрос","reply":"ответ","outcome":"success","shape":"responses","attempts":1,"status":200,"duration_ms":900}]}`))
	}))
	defer server.Close()

	var stdout, stderr bytes.Buffer
	code := Run([]string{"monitor", "--url", server.URL, "--token", "secret", "--ui", "plain"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("code = %d, stderr = %q", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "вопрос") || !strings.Contains(stdout.String(), "success") {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

// TestMonitorRequiresToken verifies the token guard.
func TestMonitorRequiresToken(t *testing.T) {
	t.Setenv("GOVORUN_DEBUG_TOKEN", "")
	var stdout, stderr bytes.Buffer
	if code := Run([]string{"monitor", "--ui", "plain"}, &stdout, &stderr); code != ExitUsage {
		t.Fatalf("code = %d, want %d", code, ExitUsage)
	}
}
