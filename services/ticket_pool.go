package services

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"ticket-marketplace/models"
	"ticket-marketplace/monitoring"
	"ticket-marketplace/realtime"
)

// TransactionAppender is the slice of the transaction log the pool needs.
type TransactionAppender interface {
	AppendAll(transactions []models.Transaction) error
}

// PurchaseResult is what one withdraw call came away with.
type PurchaseResult struct {
	Tickets    int
	Events     []string
	TotalPrice decimal.Decimal
	// Interrupted is set when the caller was woken by a stop while
	// waiting for availability.
	Interrupted bool
}

// PoolSnapshot is a consistent point-in-time view of the pool.
type PoolSnapshot struct {
	Availability   map[string]int
	TicketsAdded   int
	CurrentTickets int
	TicketsSold    int
}

// TicketPool is the shared buffer between vendors and customers. One mutex
// guards the ticket sequence, the counters and the flags; a condition
// variable signals availability to blocked consumers and is broadcast on
// stop so they drain. Invariant: currentTickets == ticketsAdded -
// ticketsSold == len(pool) whenever the lock is not held.
type TicketPool struct {
	mu        sync.Mutex
	available *sync.Cond

	pool           []models.Ticket
	ticketsAdded   int
	ticketsSold    int
	currentTickets int
	totalTickets   int

	running        bool
	stopped        bool
	allTicketsSold bool

	txlog       TransactionAppender
	broadcaster realtime.Broadcaster

	// onExhausted fires once, from its own goroutine, when the last
	// ticket sells. Set by the lifecycle controller.
	onExhausted func()
}

func NewTicketPool(txlog TransactionAppender, broadcaster realtime.Broadcaster) *TicketPool {
	p := &TicketPool{
		txlog:       txlog,
		broadcaster: broadcaster,
	}
	p.available = sync.NewCond(&p.mu)
	return p
}

// setExhaustedCallback wires the lifecycle controller in. Must be called
// before the first run starts.
func (p *TicketPool) setExhaustedCallback(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onExhausted = fn
}

// markRunning arms the pool for a new run selling totalTickets in total.
func (p *TicketPool) markRunning(totalTickets int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.totalTickets = totalTickets
	p.running = true
	p.stopped = false
	p.allTicketsSold = false
}

// markStopped halts the pool and wakes every blocked consumer so it can
// observe the stop and return.
func (p *TicketPool) markStopped() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.markStoppedLocked()
}

func (p *TicketPool) markStoppedLocked() {
	p.running = false
	p.stopped = true
	p.available.Broadcast()
}

// Deposit appends up to requested tickets for an event, clamped to the
// production quota. It returns the number actually deposited and whether
// the vendor should stop producing: true once the quota is exhausted, and
// also when the pool is stopped (then nothing is deposited).
func (p *TicketPool) Deposit(vendorID int, eventName string, price decimal.Decimal, requested int) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return 0, true
	}

	remaining := p.totalTickets - p.ticketsAdded
	if remaining <= 0 {
		p.emitStatusLocked(fmt.Sprintf("Total tickets reached. Vendor %d cannot add more tickets.", vendorID))
		return 0, true
	}

	n := min(requested, remaining)
	for i := 0; i < n; i++ {
		p.pool = append(p.pool, models.Ticket{EventName: eventName, Price: price, VendorID: vendorID})
		p.available.Signal()
	}
	p.ticketsAdded += n
	p.currentTickets += n

	p.broadcaster.Publish(realtime.TopicTickets, models.NewUpdate(
		models.UpdateVendorTicketAdd,
		fmt.Sprintf("Vendor %d added %d tickets for event %s", vendorID, n, eventName),
		map[string]any{
			"action":  "add",
			"vendor":  vendorID,
			"tickets": n,
			"event":   eventName,
		},
	))
	p.broadcaster.Publish(realtime.TopicSystem, models.NewUpdate(
		models.UpdateVendorTicketAdd,
		fmt.Sprintf("Vendor %d added %d tickets for event %s at price $%s", vendorID, n, eventName, price),
		map[string]any{
			"vendorId":       vendorID,
			"eventName":      eventName,
			"ticketsAdded":   n,
			"price":          price,
			"currentTickets": p.currentTickets,
		},
	))
	p.emitStatusLocked(fmt.Sprintf("Current tickets in pool: %d", p.currentTickets))

	slog.Info("tickets deposited",
		"vendor", vendorID, "event", eventName, "tickets", n, "current", p.currentTickets)
	monitoring.TrackDeposit(eventName, n)
	monitoring.SetPoolState(p.ticketsAdded, p.currentTickets, p.ticketsSold)

	return n, p.ticketsAdded >= p.totalTickets
}

// Withdraw blocks until at least one ticket is available or the pool stops,
// then removes up to requested tickets from the head of the pool, records
// one transaction per ticket and returns the purchase. A zero result means
// the pool stopped or drained before anything could be taken.
func (p *TicketPool) Withdraw(customerID, requested int) PurchaseResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.currentTickets == 0 && p.running && !p.stopped {
		p.available.Wait()
	}

	if p.stopped {
		p.emitStatusLocked(fmt.Sprintf("System is stopped. Customer %d cannot purchase tickets.", customerID))
		return PurchaseResult{Interrupted: true, TotalPrice: decimal.Zero}
	}
	if len(p.pool) == 0 {
		return PurchaseResult{TotalPrice: decimal.Zero}
	}

	n := requested
	if available := len(p.pool); n > available {
		p.emitStatusLocked(fmt.Sprintf(
			"Customer %d requested %d tickets, but only %d available. Adjusting purchase.",
			customerID, n, available))
		n = available
	}

	now := time.Now()
	totalPrice := decimal.Zero
	eventNames := make([]string, 0, n)
	transactions := make([]models.Transaction, 0, n)

	for i := 0; i < n; i++ {
		ticket := p.pool[0]
		p.pool = p.pool[1:]
		p.ticketsSold++
		p.currentTickets--
		totalPrice = totalPrice.Add(ticket.Price)
		eventNames = append(eventNames, ticket.EventName)
		monitoring.TrackPurchase(ticket.EventName, 1)

		transactions = append(transactions, models.Transaction{
			EventName:   ticket.EventName,
			Price:       ticket.Price,
			VendorID:    ticket.VendorID,
			CustomerID:  customerID,
			TicketCount: 1,
			Timestamp:   now,
		})
	}

	if err := p.txlog.AppendAll(transactions); err != nil {
		// The purchase stands; the log write is retried on no path, so
		// record the failure loudly.
		slog.Error("transaction log write failed", "customer", customerID, "tickets", n, "error", err)
	}

	p.broadcaster.Publish(realtime.TopicTickets, models.NewUpdate(
		models.UpdateTicketPurchase,
		fmt.Sprintf("Customer %d purchased %d tickets", customerID, n),
		map[string]any{
			"action":   "purchase",
			"customer": customerID,
			"tickets":  n,
			"events":   eventNames,
		},
	))
	p.broadcaster.Publish(realtime.TopicSystem, models.NewUpdate(
		models.UpdateTicketPurchase,
		fmt.Sprintf("Customer %d purchased %d tickets for events %v | Total Price: $%s",
			customerID, n, eventNames, totalPrice),
		map[string]any{
			"customerId":     customerID,
			"ticketsBought":  n,
			"events":         eventNames,
			"totalPrice":     totalPrice,
			"currentTickets": p.currentTickets,
		},
	))
	p.emitStatusLocked(fmt.Sprintf("Current tickets in pool: %d", p.currentTickets))

	slog.Info("tickets purchased",
		"customer", customerID, "tickets", n, "current", p.currentTickets)
	monitoring.SetPoolState(p.ticketsAdded, p.currentTickets, p.ticketsSold)

	if p.ticketsSold >= p.totalTickets && len(p.pool) == 0 {
		p.allTicketsSold = true
		p.markStoppedLocked()
		p.emitStatusLocked("All tickets have been sold.")
		if p.onExhausted != nil {
			// The controller takes its own lock; never call it while
			// holding ours.
			go p.onExhausted()
		}
	}

	return PurchaseResult{Tickets: n, Events: eventNames, TotalPrice: totalPrice}
}

// Snapshot returns a consistent view of per-event availability and the
// counter triple.
func (p *TicketPool) Snapshot() PoolSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	counts := make(map[string]int)
	for _, t := range p.pool {
		counts[t.EventName]++
	}
	return PoolSnapshot{
		Availability:   counts,
		TicketsAdded:   p.ticketsAdded,
		CurrentTickets: p.currentTickets,
		TicketsSold:    p.ticketsSold,
	}
}

// Clear drops every ticket and resets counters and flags. Only the
// lifecycle controller calls this, under reset.
func (p *TicketPool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pool = nil
	p.ticketsAdded = 0
	p.ticketsSold = 0
	p.currentTickets = 0
	p.totalTickets = 0
	p.running = false
	p.stopped = false
	p.allTicketsSold = false
	p.available.Broadcast()
	monitoring.SetPoolState(0, 0, 0)
}

func (p *TicketPool) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *TicketPool) Stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

func (p *TicketPool) AllTicketsSold() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allTicketsSold
}

func (p *TicketPool) TicketsAdded() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ticketsAdded
}

func (p *TicketPool) TicketsSold() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ticketsSold
}

func (p *TicketPool) CurrentTickets() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentTickets
}

// emitStatusLocked narrates pool activity on the system topic. Callers hold
// the pool lock, so the feed order matches the serialization order of pool
// mutations.
func (p *TicketPool) emitStatusLocked(status string) {
	slog.Info(status)
	p.broadcaster.Publish(realtime.TopicSystem, models.NewUpdate(
		models.UpdateSystemStatus, status, nil,
	))
}
