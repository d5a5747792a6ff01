package bridge

import (
	"errors"
	"time"
)

// ErrDeadlineExceeded is returned by Find when the lookup never succeeds.
var ErrDeadlineExceeded = errors.New("deadline exceeded")

// Poller bounds a retry loop by a wall-clock deadline. Now and Sleep are
// injectable so the loop can run against a fake clock.
type Poller struct {
	Now      func() time.Time
	Sleep    func(time.Duration)
	Timeout  time.Duration
	Interval time.Duration
}

// DefaultPoller waits up to two seconds, checking every 100ms.
func DefaultPoller() Poller {
	return Poller{
		Now:      time.Now,
		Sleep:    time.Sleep,
		Timeout:  2000 * time.Millisecond,
		Interval: 100 * time.Millisecond,
	}
}

func (p Poller) withDefaults() Poller {
	d := DefaultPoller()
	if p.Now == nil {
		p.Now = d.Now
	}
	if p.Sleep == nil {
		p.Sleep = d.Sleep
	}
	if p.Timeout <= 0 {
		p.Timeout = d.Timeout
	}
	if p.Interval <= 0 {
		p.Interval = d.Interval
	}
	return p
}

// Find calls lookup until it succeeds or the deadline passes. A lookup that
// succeeds on the check at the deadline still wins; the loop only gives up
// when a check fails at or after the deadline.
func Find[T any](p Poller, lookup func() (T, bool)) (T, error) {
	p = p.withDefaults()
	deadline := p.Now().Add(p.Timeout)
	for {
		if v, ok := lookup(); ok {
			return v, nil
		}
		if !p.Now().Before(deadline) {
			var zero T
			return zero, ErrDeadlineExceeded
		}
		p.Sleep(p.Interval)
	}
}
