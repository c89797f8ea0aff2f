package cli

import (
	"bytes"
	"strings"
	"testing"
)

// TestRunNoArgs verifies bare invocation prints usage.
func TestRunNoArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := Run(nil, &stdout, &stderr); code != ExitUsage {
		t.Fatalf("code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stdout.String(), "govorun <command>") {
		t.Fatalf("usage output = %q", stdout.String())
	}
}

// TestRunHelp verifies help lists every command.
func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := Run([]string{"--help"}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("code = %d, want %d", code, ExitOK)
	}
	for _, name := range []string{"init", "validate", "serve", "ask", "monitor"} {
		if !strings.Contains(stdout.String(), name) {
			t.Errorf("usage missing command %q", name)
		}
	}
}

// TestRunUnknownCommand verifies the error path.
func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := Run([]string{"frobnicate"}, &stdout, &stderr); code != ExitUsage {
		t.Fatalf("code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "Unknown command") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}
