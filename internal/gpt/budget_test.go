package gpt

import (
	"testing"
	"time"

	"govorun/internal/testutil"
)

// TestDeadlineRemaining verifies remaining budget tracks elapsed time.
func TestDeadlineRemaining(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(1700000000, 0))
	deadline := newDeadlineAt(9*time.Second, clock.Now)

	if got := deadline.Remaining(); got != 9*time.Second {
		t.Fatalf("fresh deadline remaining = %v, want 9s", got)
	}

	clock.Advance(8900 * time.Millisecond)
	if got := deadline.Remaining(); got != 100*time.Millisecond {
		t.Fatalf("remaining after 8.9s = %v, want 100ms", got)
	}
}

// TestDeadlineExpired verifies the stop threshold blocks new attempts.
func TestDeadlineExpired(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(1700000000, 0))
	deadline := newDeadlineAt(9*time.Second, clock.Now)

	if deadline.Expired() {
		t.Fatalf("fresh deadline should not be expired")
	}
	clock.Advance(8900 * time.Millisecond)
	if !deadline.Expired() {
		t.Fatalf("deadline with 100ms left should be expired (threshold %v)", stopThreshold)
	}
}

// TestAttemptTimeout verifies clamping to the floor and ceiling.
func TestAttemptTimeout(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    time.Duration
	}{
		{name: "plenty of budget clamps to ceiling", elapsed: 0, want: attemptCeiling},
		{name: "mid budget subtracts margin", elapsed: 7 * time.Second, want: 2*time.Second - safetyMargin},
		{name: "nearly exhausted clamps to floor", elapsed: 8900 * time.Millisecond, want: attemptFloor},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clock := testutil.NewFakeClock(time.Unix(1700000000, 0))
			deadline := newDeadlineAt(9*time.Second, clock.Now)
			clock.Advance(tc.elapsed)
			if got := deadline.AttemptTimeout(); got != tc.want {
				t.Fatalf("AttemptTimeout() = %v, want %v", got, tc.want)
			}
		})
	}
}
