package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"ticket-marketplace/config"
	"ticket-marketplace/models"
	"ticket-marketplace/realtime"
)

// State is the lifecycle position of the simulation. Exactly one state
// describes the system at any observable moment.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

var (
	ErrAlreadyRunning  = errors.New("ticket system is already running")
	ErrNotRunning      = errors.New("ticket system is not running")
	ErrMustReset       = errors.New("all tickets have been sold; system must be reset before restarting")
	ErrNoConfiguration = errors.New("no system configuration found")
	ErrNoEvents        = errors.New("no events configured")
)

// EventSource is the slice of the event store the controller needs.
type EventSource interface {
	All() ([]models.Event, error)
	Clear() error
}

// ConfigSource yields the most recently accepted configuration, or nil.
type ConfigSource interface {
	Current() (*models.SystemConfiguration, error)
}

// TransactionStore is the transaction log as the controller sees it.
type TransactionStore interface {
	TransactionAppender
	Clear() error
}

// Lifecycle drives the start/stop/reset state machine and owns the worker
// goroutines of the active run.
type Lifecycle struct {
	mu    sync.Mutex
	state State

	pool        *TicketPool
	events      EventSource
	configs     ConfigSource
	txlog       TransactionStore
	broadcaster realtime.Broadcaster
	cfg         *config.Config

	cancel context.CancelFunc
	wg     *sync.WaitGroup
}

func NewLifecycle(
	pool *TicketPool,
	events EventSource,
	configs ConfigSource,
	txlog TransactionStore,
	broadcaster realtime.Broadcaster,
	cfg *config.Config,
) *Lifecycle {
	l := &Lifecycle{
		state:       StateIdle,
		pool:        pool,
		events:      events,
		configs:     configs,
		txlog:       txlog,
		broadcaster: broadcaster,
		cfg:         cfg,
	}
	pool.setExhaustedCallback(l.exhaust)
	return l
}

// State reports the current lifecycle state.
func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Start validates the stored configuration, clears the transaction log and
// spawns one vendor per event plus the customer population.
func (l *Lifecycle) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case StateRunning:
		return ErrAlreadyRunning
	case StateExhausted:
		return ErrMustReset
	}

	cfg, err := l.configs.Current()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg == nil {
		return ErrNoConfiguration
	}

	events, err := l.events.All()
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}
	if len(events) == 0 {
		return ErrNoEvents
	}

	if err := l.txlog.Clear(); err != nil {
		return fmt.Errorf("clear transaction log: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.wg = &sync.WaitGroup{}

	l.pool.markRunning(cfg.TotalTickets)
	l.state = StateRunning

	slog.Info("ticket system started",
		"events", len(events), "customers", l.cfg.CustomerCount,
		"totalTickets", cfg.TotalTickets)
	l.broadcaster.Publish(realtime.TopicSystem, models.NewUpdate(
		models.UpdateSystemStart, "Ticket handling system started", nil,
	))

	for i, ev := range events {
		vendorID := i + 1
		l.wg.Add(1)
		go l.runVendor(ctx, l.wg, vendorID, ev, *cfg)
	}
	for i := 1; i <= l.cfg.CustomerCount; i++ {
		l.wg.Add(1)
		go l.runCustomer(ctx, l.wg, i, *cfg)
	}

	return nil
}

// Stop cancels every worker, drains blocked consumers and waits for the
// run's goroutines to exit. A second call reports ErrNotRunning without
// touching state.
func (l *Lifecycle) Stop() error {
	l.mu.Lock()
	if l.state != StateRunning {
		l.mu.Unlock()
		return ErrNotRunning
	}
	wg := l.stopLocked()
	l.state = StateStopped
	l.mu.Unlock()

	wg.Wait()
	return nil
}

// Reset stops a running system, then clears the pool, the transaction log
// and the configured events, returning the controller to idle. The last
// accepted configuration row is kept, but with its events gone a fresh
// configure is required before the next start.
func (l *Lifecycle) Reset() error {
	l.mu.Lock()
	var wg *sync.WaitGroup
	if l.state == StateRunning {
		wg = l.stopLocked()
		l.state = StateStopped
	} else {
		wg = l.wg
	}
	l.mu.Unlock()

	if wg != nil {
		wg.Wait()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pool.Clear()
	if err := l.txlog.Clear(); err != nil {
		return fmt.Errorf("clear transaction log: %w", err)
	}
	if err := l.events.Clear(); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}
	l.state = StateIdle

	slog.Info("ticket system reset")
	l.broadcaster.Publish(realtime.TopicSystem, models.NewUpdate(
		models.UpdateSystemReset,
		"Ticket handling system has been reset and is ready to start again.", nil,
	))
	l.broadcaster.Publish(realtime.TopicTickets, models.NewUpdate(
		models.UpdateSystemReset,
		"Ticket system has been reset",
		map[string]any{"action": "reset", "message": "Ticket system has been reset"},
	))

	return nil
}

// stopLocked cancels the run and emits the stop summary. The caller holds
// the lifecycle lock and is responsible for the state transition; the
// returned WaitGroup must be waited on outside the lock.
func (l *Lifecycle) stopLocked() *sync.WaitGroup {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.pool.markStopped()

	added := l.pool.TicketsAdded()
	sold := l.pool.TicketsSold()
	slog.Info("ticket system stopped", "ticketsAdded", added, "ticketsSold", sold)
	l.broadcaster.Publish(realtime.TopicSystem, models.NewUpdate(
		models.UpdateSystemStop,
		fmt.Sprintf("Ticket system stopped. Total tickets added: %d, Total tickets sold: %d", added, sold),
		map[string]any{"ticketsAdded": added, "ticketsSold": sold},
	))

	return l.wg
}

// exhaust runs when the pool sells its last ticket. The pool has already
// halted itself; here the controller cancels the workers and parks in the
// exhausted state until reset.
func (l *Lifecycle) exhaust() {
	l.mu.Lock()
	if l.state != StateRunning {
		l.mu.Unlock()
		return
	}
	wg := l.stopLocked()
	l.state = StateExhausted
	l.mu.Unlock()

	if wg != nil {
		wg.Wait()
	}
}

func (l *Lifecycle) emitStatus(status string) {
	slog.Info(status)
	l.broadcaster.Publish(realtime.TopicSystem, models.NewUpdate(
		models.UpdateSystemStatus, status, nil,
	))
}
