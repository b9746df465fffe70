// Package sched computes daily fire times and runs fixed-interval triggers.
package sched

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/go-cumplebot/internal/config"
)

// NextFireTime returns the next instant at which a daily job targeting
// hour:minute should fire. Today's target is used unless it is at or
// before now, in which case the same time-of-day tomorrow is returned.
// The computation happens in now's location.
func NextFireTime(now time.Time, hour, minute int) time.Time {
	y, m, d := now.Date()
	target := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}

// Trigger fires a job at a computed first instant and then repeats at a
// fixed interval. There is no drift correction: DST shifts move the local
// fire time, which is an accepted limitation of the fixed-period model.
type Trigger struct {
	Name     string
	Hour     int
	Minute   int
	Interval time.Duration
	Job      func(ctx context.Context)

	// Clock defaults to time.Now and exists for deterministic tests.
	Clock func() time.Time
}

// Run blocks until the context is cancelled, invoking Job at each fire
// instant. Each invocation runs to completion before the next wait begins;
// independent triggers run in their own goroutines and never block each
// other.
func (t *Trigger) Run(ctx context.Context) {
	clock := t.Clock
	if clock == nil {
		clock = time.Now
	}
	interval := t.Interval
	if interval <= 0 {
		interval = config.TriggerInterval
	}

	log := slog.With(
		config.LogKeyComponent, config.CompSched,
		config.LogKeyJob, t.Name,
	)

	fireAt := NextFireTime(clock(), t.Hour, t.Minute)
	log.Info(config.MsgTriggerArmed, config.LogKeyFireAt, fireAt)

	timer := time.NewTimer(time.Until(fireAt))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgTriggerStop)
			return

		case <-timer.C:
			log.Info(config.MsgTriggerFired, config.LogKeyFireAt, fireAt)
			t.Job(ctx)

			// Self-advance by the fixed interval, regardless of how long
			// the job took.
			fireAt = fireAt.Add(interval)
			timer.Reset(time.Until(fireAt))
		}
	}
}
