package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	poolCurrentTickets = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ticket_pool_current_tickets",
			Help: "Tickets currently held in the pool",
		},
	)

	poolTicketsAdded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ticket_pool_tickets_added_total",
			Help: "Cumulative tickets deposited in the current run",
		},
	)

	poolTicketsSold = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ticket_pool_tickets_sold_total",
			Help: "Cumulative tickets sold in the current run",
		},
	)

	depositOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_deposits_total",
			Help: "Tickets deposited, per event",
		},
		[]string{"event"},
	)

	purchaseOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_purchases_total",
			Help: "Tickets purchased, per event",
		},
		[]string{"event"},
	)

	workerInterrupts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_interrupts_total",
			Help: "Workers cancelled mid-operation",
		},
		[]string{"role"},
	)

	activeWorkers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "active_workers",
			Help: "Currently running worker goroutines",
		},
		[]string{"role"},
	)
)

// SetPoolState publishes the pool's counter triple.
func SetPoolState(added, current, sold int) {
	poolTicketsAdded.Set(float64(added))
	poolCurrentTickets.Set(float64(current))
	poolTicketsSold.Set(float64(sold))
}

// TrackDeposit counts tickets deposited for an event.
func TrackDeposit(event string, tickets int) {
	depositOps.WithLabelValues(event).Add(float64(tickets))
}

// TrackPurchase counts tickets purchased for an event.
func TrackPurchase(event string, tickets int) {
	purchaseOps.WithLabelValues(event).Add(float64(tickets))
}

// TrackInterrupt counts a cancelled worker of the given role.
func TrackInterrupt(role string) {
	workerInterrupts.WithLabelValues(role).Inc()
}

// WorkerStarted and WorkerStopped maintain the live worker gauge.
func WorkerStarted(role string) {
	activeWorkers.WithLabelValues(role).Inc()
}

func WorkerStopped(role string) {
	activeWorkers.WithLabelValues(role).Dec()
}
