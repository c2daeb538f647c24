package store

import (
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/shopspring/decimal"

	"ticket-marketplace/models"
)

// EventStore persists the configured events. Rows live from configure to
// reset (or the next configure).
type EventStore struct {
	db *dbx.DB
}

func NewEventStore(db *DB) *EventStore {
	return &EventStore{db: db.DB}
}

type eventRow struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Price string `db:"price"`
}

// ReplaceAll drops every stored event, rewinds the identity counter and
// inserts the given definitions in order.
func (s *EventStore) ReplaceAll(events []models.EventInput) error {
	return s.db.Transactional(func(tx *dbx.Tx) error {
		if _, err := tx.NewQuery("DELETE FROM events").Execute(); err != nil {
			return fmt.Errorf("clear events: %w", err)
		}
		tx.NewQuery("DELETE FROM sqlite_sequence WHERE name = {:name}").
			Bind(dbx.Params{"name": "events"}).
			Execute()
		for _, ev := range events {
			_, err := tx.Insert("events", dbx.Params{
				"name":  ev.Name,
				"price": ev.Price.String(),
			}).Execute()
			if err != nil {
				return fmt.Errorf("insert event %q: %w", ev.Name, err)
			}
		}
		return nil
	})
}

// All returns the stored events in configuration order.
func (s *EventStore) All() ([]models.Event, error) {
	var rows []eventRow
	err := s.db.Select("id", "name", "price").
		From("events").
		OrderBy("id ASC").
		All(&rows)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	events := make([]models.Event, 0, len(rows))
	for _, r := range rows {
		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			return nil, fmt.Errorf("event %q has malformed price %q: %w", r.Name, r.Price, err)
		}
		events = append(events, models.Event{ID: r.ID, Name: r.Name, Price: price})
	}
	return events, nil
}

// Clear removes every event and rewinds the identity counter.
func (s *EventStore) Clear() error {
	if _, err := s.db.NewQuery("DELETE FROM events").Execute(); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}
	resetIdentity(s.db, "events")
	return nil
}
