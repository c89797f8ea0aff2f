package gpt

import "time"

// Timing policy for a single orchestration run. The attempt floor keeps
// one outbound call viable near the end of the budget; the stop
// threshold leaves enough room to return a reply before the voice
// platform times the webhook out.
const (
	attemptCeiling = 5 * time.Second
	attemptFloor   = 200 * time.Millisecond
	safetyMargin   = 100 * time.Millisecond
	stopThreshold  = 250 * time.Millisecond

	transientBackoff = 500 * time.Millisecond
	transportBackoff = 300 * time.Millisecond
)

// Deadline tracks the hard wall-clock budget for one orchestration run.
// It is created once per run and read against the monotonic clock, so
// wall-clock adjustments cannot widen or shrink the budget.
type Deadline struct {
	start  time.Time
	budget time.Duration
	now    func() time.Time
}

// NewDeadline starts a deadline of the given budget at the current instant.
func NewDeadline(budget time.Duration) Deadline {
	return newDeadlineAt(budget, time.Now)
}

func newDeadlineAt(budget time.Duration, now func() time.Time) Deadline {
	if now == nil {
		now = time.Now
	}
	return Deadline{start: now(), budget: budget, now: now}
}

// Remaining returns the budget left. It may be negative once the
// deadline has passed.
func (d Deadline) Remaining() time.Duration {
	return d.budget - d.now().Sub(d.start)
}

// Expired reports whether the run must stop dispatching attempts and
// return the overload reply instead.
func (d Deadline) Expired() bool {
	return d.Remaining() <= stopThreshold
}

// AttemptTimeout returns the transport timeout for the next attempt:
// the remaining budget minus a safety margin, clamped to
// [attemptFloor, attemptCeiling].
func (d Deadline) AttemptTimeout() time.Duration {
	timeout := d.Remaining() - safetyMargin
	if timeout > attemptCeiling {
		timeout = attemptCeiling
	}
	if timeout < attemptFloor {
		timeout = attemptFloor
	}
	return timeout
}
