package services

import (
	"context"
	"time"
)

// runPeriodic is the shared shape of a vendor or customer loop: run step,
// sleep out the cadence, repeat until cancelled or step signals it is done.
// Reports whether the exit was a cancellation.
func runPeriodic(ctx context.Context, cadence time.Duration, step func() bool) bool {
	for {
		select {
		case <-ctx.Done():
			return true
		default:
		}

		if !step() {
			return false
		}

		select {
		case <-ctx.Done():
			return true
		case <-time.After(cadence):
		}
	}
}

// cadenceFor derives the sleep between worker steps: the base interval
// divided by the configured rate, so higher rates move tickets faster.
func cadenceFor(baseMS, rate int) time.Duration {
	if rate < 1 {
		rate = 1
	}
	return time.Duration(baseMS/rate) * time.Millisecond
}
