package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"ticket-marketplace/models"
	"ticket-marketplace/monitoring"
	"ticket-marketplace/realtime"
	"ticket-marketplace/utils"
)

// runVendor produces ticket batches for one event until the production
// quota is reached or the run is cancelled.
func (l *Lifecycle) runVendor(ctx context.Context, wg *sync.WaitGroup, vendorID int, event models.Event, cfg models.SystemConfiguration) {
	defer wg.Done()
	monitoring.WorkerStarted("vendor")
	defer monitoring.WorkerStopped("vendor")

	l.emitStatus(fmt.Sprintf("Starting vendor thread for vendor %d with event %s", vendorID, event.Name))

	cadence := cadenceFor(l.cfg.CadenceBaseMS, cfg.ReleaseRate)
	cancelled := runPeriodic(ctx, cadence, func() bool {
		batch := utils.BatchSize(cfg.ReleaseRate)
		added, done := l.pool.Deposit(vendorID, event.Name, event.Price, batch)
		// A short deposit means the quota clamped us; nothing left to produce.
		return !done && added >= batch
	})

	if cancelled {
		slog.Error("vendor thread interrupted", "vendor", vendorID)
		monitoring.TrackInterrupt("vendor")
		l.broadcaster.Publish(realtime.TopicSystem, models.NewUpdate(
			models.UpdateVendorThreadInterrupt,
			fmt.Sprintf("Vendor thread for vendor %d was interrupted", vendorID),
			map[string]any{"vendorId": vendorID},
		))
	}
}
