package services

import (
	"sync"

	"ticket-marketplace/models"
)

// memoryLog is an in-memory TransactionStore for exercising the pool and
// controller without sqlite.
type memoryLog struct {
	mu           sync.Mutex
	transactions []models.Transaction
}

func newMemoryLog() *memoryLog {
	return &memoryLog{}
}

func (m *memoryLog) AppendAll(transactions []models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, transactions...)
	return nil
}

func (m *memoryLog) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = nil
	return nil
}

func (m *memoryLog) All() []models.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Transaction, len(m.transactions))
	copy(out, m.transactions)
	return out
}

func (m *memoryLog) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.transactions)
}

// memoryEvents is an in-memory EventSource.
type memoryEvents struct {
	mu     sync.Mutex
	events []models.Event
}

func newMemoryEvents(events ...models.Event) *memoryEvents {
	return &memoryEvents{events: events}
}

func (m *memoryEvents) All() ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Event, len(m.events))
	copy(out, m.events)
	return out, nil
}

func (m *memoryEvents) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
	return nil
}

// memoryConfig is an in-memory ConfigSource.
type memoryConfig struct {
	mu  sync.Mutex
	cfg *models.SystemConfiguration
}

func (m *memoryConfig) Put(cfg models.SystemConfiguration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = &cfg
}

func (m *memoryConfig) Current() (*models.SystemConfiguration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cfg == nil {
		return nil, nil
	}
	out := *m.cfg
	return &out, nil
}
