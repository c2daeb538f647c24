package store

import (
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/shopspring/decimal"

	"ticket-marketplace/models"
)

// TransactionLog is the append-only purchase record. Rows are written in
// batches from the pool and only removed wholesale (start and reset both
// clear the log and rewind its identity counter).
type TransactionLog struct {
	db *dbx.DB
}

func NewTransactionLog(db *DB) *TransactionLog {
	return &TransactionLog{db: db.DB}
}

type transactionRow struct {
	ID          int64  `db:"id"`
	EventName   string `db:"event_name"`
	TicketPrice string `db:"ticket_price"`
	VendorID    int    `db:"vendor_id"`
	CustomerID  int    `db:"customer_id"`
	TicketCount int    `db:"ticket_count"`
	Timestamp   string `db:"transaction_timestamp"`
}

// AppendAll writes one batch of transactions atomically.
func (l *TransactionLog) AppendAll(transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	return l.db.Transactional(func(tx *dbx.Tx) error {
		for _, t := range transactions {
			_, err := tx.Insert("transactions", dbx.Params{
				"event_name":            t.EventName,
				"ticket_price":          t.Price.String(),
				"vendor_id":             t.VendorID,
				"customer_id":           t.CustomerID,
				"ticket_count":          t.TicketCount,
				"transaction_timestamp": t.Timestamp.UTC().Format(time.RFC3339Nano),
			}).Execute()
			if err != nil {
				return fmt.Errorf("append transaction: %w", err)
			}
		}
		return nil
	})
}

// All returns the log in chronological (insertion) order.
func (l *TransactionLog) All() ([]models.Transaction, error) {
	var rows []transactionRow
	err := l.db.Select("id", "event_name", "ticket_price", "vendor_id", "customer_id", "ticket_count", "transaction_timestamp").
		From("transactions").
		OrderBy("id ASC").
		All(&rows)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	out := make([]models.Transaction, 0, len(rows))
	for _, r := range rows {
		price, err := decimal.NewFromString(r.TicketPrice)
		if err != nil {
			return nil, fmt.Errorf("transaction %d has malformed price %q: %w", r.ID, r.TicketPrice, err)
		}
		ts, err := time.Parse(time.RFC3339Nano, r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("transaction %d has malformed timestamp %q: %w", r.ID, r.Timestamp, err)
		}
		out = append(out, models.Transaction{
			ID:          r.ID,
			EventName:   r.EventName,
			Price:       price,
			VendorID:    r.VendorID,
			CustomerID:  r.CustomerID,
			TicketCount: r.TicketCount,
			Timestamp:   ts,
		})
	}
	return out, nil
}

// Count reports the number of persisted transactions.
func (l *TransactionLog) Count() (int, error) {
	var n int
	err := l.db.NewQuery("SELECT COUNT(*) FROM transactions").Row(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// Clear empties the log and rewinds its identity counter.
func (l *TransactionLog) Clear() error {
	if _, err := l.db.NewQuery("DELETE FROM transactions").Execute(); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	resetIdentity(l.db, "transactions")
	return nil
}
