// Package gesture implements the short-lived pointer gesture controllers:
// resize, drag, scrub and drop. Each controller is an explicit state machine
// constructed on pointer-down (Active), fed pointer moves, and retired on
// pointer-up (final commit) or cancel (no further commit). The controllers
// translate viewport pixels into composition space via the geometry package
// and emit timeline mutations; they never touch the document directly.
package gesture

import "time"

// Phase is the controller lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Active
)

// frameInterval approximates one animation-frame tick.
const frameInterval = time.Second / 60

// Throttle rate-limits model commits to roughly one per animation frame.
// Visual feedback stays unthrottled; only commits pass through here.
type Throttle struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewThrottle returns a throttle at the animation-frame rate.
func NewThrottle() *Throttle {
	return &Throttle{interval: frameInterval, now: time.Now}
}

// NewThrottleAt returns a throttle with an explicit interval and clock,
// for tests.
func NewThrottleAt(interval time.Duration, now func() time.Time) *Throttle {
	return &Throttle{interval: interval, now: now}
}

// Allow reports whether a commit may go through now, consuming the tick.
func (t *Throttle) Allow() bool {
	n := t.now()
	if n.Sub(t.last) < t.interval {
		return false
	}
	t.last = n
	return true
}
