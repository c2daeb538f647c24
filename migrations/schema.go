package migrations

import (
	"github.com/pocketbase/dbx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		price TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS system_config (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		max_capacity INTEGER NOT NULL,
		total_tickets INTEGER NOT NULL,
		release_rate INTEGER NOT NULL,
		retrieval_rate INTEGER NOT NULL,
		created TEXT NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_name TEXT NOT NULL,
		ticket_price TEXT NOT NULL,
		vendor_id INTEGER NOT NULL,
		customer_id INTEGER NOT NULL,
		ticket_count INTEGER NOT NULL DEFAULT 1,
		transaction_timestamp TEXT NOT NULL
	)`,
}

// Apply creates the three tables if they do not exist yet. Safe to run on
// every startup.
func Apply(db *dbx.DB) error {
	for _, stmt := range schema {
		if _, err := db.NewQuery(stmt).Execute(); err != nil {
			return err
		}
	}
	return nil
}
