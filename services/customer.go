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

// runCustomer withdraws ticket batches until the pool stops or the run is
// cancelled.
func (l *Lifecycle) runCustomer(ctx context.Context, wg *sync.WaitGroup, customerID int, cfg models.SystemConfiguration) {
	defer wg.Done()
	monitoring.WorkerStarted("customer")
	defer monitoring.WorkerStopped("customer")

	cadence := cadenceFor(l.cfg.CadenceBaseMS, cfg.RetrievalRate)
	interrupted := false
	cancelled := runPeriodic(ctx, cadence, func() bool {
		batch := utils.BatchSize(cfg.RetrievalRate)
		result := l.pool.Withdraw(customerID, batch)
		if result.Interrupted {
			interrupted = true
			return false
		}
		if result.Tickets == 0 && !l.pool.Running() {
			return false
		}
		return true
	})

	if cancelled || interrupted {
		slog.Error("ticket purchase interrupted", "customer", customerID)
		monitoring.TrackInterrupt("customer")
		l.broadcaster.Publish(realtime.TopicSystem, models.NewUpdate(
			models.UpdateCustomerPurchaseInterrupt,
			fmt.Sprintf("Ticket purchase was interrupted for customer %d", customerID),
			map[string]any{"customerId": customerID},
		))
	}
}
