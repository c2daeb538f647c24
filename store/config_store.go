package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/dbx"

	"ticket-marketplace/models"
)

// ConfigStore persists accepted configurations. Every accepted configure
// appends a row; the current configuration is the latest row. Reset keeps
// the rows, so the last accepted tunables survive a reset (events do not).
type ConfigStore struct {
	db *dbx.DB
}

func NewConfigStore(db *DB) *ConfigStore {
	return &ConfigStore{db: db.DB}
}

type configRow struct {
	ID            int64 `db:"id"`
	MaxCapacity   int   `db:"max_capacity"`
	TotalTickets  int   `db:"total_tickets"`
	ReleaseRate   int   `db:"release_rate"`
	RetrievalRate int   `db:"retrieval_rate"`
}

// Put appends a new configuration row.
func (s *ConfigStore) Put(cfg models.SystemConfiguration) error {
	_, err := s.db.Insert("system_config", dbx.Params{
		"max_capacity":   cfg.MaxCapacity,
		"total_tickets":  cfg.TotalTickets,
		"release_rate":   cfg.ReleaseRate,
		"retrieval_rate": cfg.RetrievalRate,
	}).Execute()
	if err != nil {
		return fmt.Errorf("store configuration: %w", err)
	}
	return nil
}

// Current returns the most recently accepted configuration, without its
// events (those live in the EventStore), or nil when none was ever stored.
func (s *ConfigStore) Current() (*models.SystemConfiguration, error) {
	var row configRow
	err := s.db.Select("id", "max_capacity", "total_tickets", "release_rate", "retrieval_rate").
		From("system_config").
		OrderBy("id DESC").
		Limit(1).
		One(&row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &models.SystemConfiguration{
		MaxCapacity:   row.MaxCapacity,
		TotalTickets:  row.TotalTickets,
		ReleaseRate:   row.ReleaseRate,
		RetrievalRate: row.RetrievalRate,
	}, nil
}
