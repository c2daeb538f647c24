package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pocketbase/dbx"
	_ "modernc.org/sqlite"

	"ticket-marketplace/migrations"
)

// DB wraps the sqlite handle shared by the stores.
type DB struct {
	*dbx.DB
}

// Open opens (creating if needed) the sqlite database under dataDir and
// applies the schema.
func Open(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dsn := filepath.Join(dataDir, "data.db") +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)"

	db, err := dbx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := migrations.Apply(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &DB{DB: db}, nil
}

// resetIdentity rewinds a table's AUTOINCREMENT counter. The sqlite_sequence
// table only exists after the first AUTOINCREMENT insert, so a missing
// table is not an error.
func resetIdentity(db *dbx.DB, table string) {
	db.NewQuery("DELETE FROM sqlite_sequence WHERE name = {:name}").
		Bind(dbx.Params{"name": table}).
		Execute()
}
