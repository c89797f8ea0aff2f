package cli

import (
	"io"
	"testing"
)

func stubTerminal(t *testing.T, tty bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(io.Writer) bool { return tty }
	t.Cleanup(func() { isTerminal = orig })
}

// TestResolveUIMode verifies mode selection against TTY detection.
func TestResolveUIMode(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		tty      bool
		wantLive bool
		wantWarn bool
		wantErr  bool
	}{
		{name: "auto tty", mode: "auto", tty: true, wantLive: true},
		{name: "auto pipe", mode: "auto", tty: false, wantLive: false},
		{name: "default is auto", mode: "", tty: true, wantLive: true},
		{name: "live tty", mode: "live", tty: true, wantLive: true},
		{name: "live pipe falls back", mode: "live", tty: false, wantLive: false, wantWarn: true},
		{name: "plain ignores tty", mode: "plain", tty: true, wantLive: false},
		{name: "unknown mode", mode: "fancy", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stubTerminal(t, tc.tty)
			decision, err := resolveUIMode(tc.mode, io.Discard)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if decision.useLive != tc.wantLive {
				t.Fatalf("useLive = %v, want %v", decision.useLive, tc.wantLive)
			}
			if (decision.warning != "") != tc.wantWarn {
				t.Fatalf("warning = %q", decision.warning)
			}
		})
	}
}
