package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"govorun/internal/webhook"
)

func stubServe(t *testing.T, fn func(ctx context.Context, cfg webhook.ServerConfig) error) {
	t.Helper()
	orig := serveWebhook
	serveWebhook = fn
	t.Cleanup(func() { serveWebhook = orig })
}

// TestServeWiresConfig verifies the serve command builds the server
// from the config file.
func TestServeWiresConfig(t *testing.T) {
	t.Setenv("GOVORUN_TEST_KEY", "test-key")
	target := writeTestConfig(t, "https://api.openai.com/v1")

	var captured webhook.ServerConfig
	stubServe(t, func(_ context.Context, cfg webhook.ServerConfig) error {
		captured = cfg
		return nil
	})

	var stdout, stderr bytes.Buffer
	code := Run([]string{"serve", "--config", target}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("code = %d, stderr = %q", code, stderr.String())
	}
	if captured.Addr != "0.0.0.0:8080" {
		t.Fatalf("addr = %q", captured.Addr)
	}
	if captured.Handler == nil {
		t.Fatalf("handler was not built")
	}
}

// TestServeMissingAPIKey verifies startup fails fast without the key.
func TestServeMissingAPIKey(t *testing.T) {
	t.Setenv("GOVORUN_TEST_KEY", "")
	target := writeTestConfig(t, "https://api.openai.com/v1")

	stubServe(t, func(context.Context, webhook.ServerConfig) error {
		t.Fatalf("server should not start")
		return nil
	})

	var stdout, stderr bytes.Buffer
	if code := Run([]string{"serve", "--config", target}, &stdout, &stderr); code != ExitError {
		t.Fatalf("code = %d, want %d", code, ExitError)
	}
	if !strings.Contains(stderr.String(), "GOVORUN_TEST_KEY") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}
