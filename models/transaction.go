package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction records one completed single-ticket purchase. The log is
// append-only; rows are only removed wholesale on reset.
type Transaction struct {
	ID          int64           `db:"id" json:"id"`
	EventName   string          `db:"event_name" json:"eventName"`
	Price       decimal.Decimal `db:"ticket_price" json:"price"`
	VendorID    int             `db:"vendor_id" json:"vendorId"`
	CustomerID  int             `db:"customer_id" json:"customerId"`
	TicketCount int             `db:"ticket_count" json:"ticketCount"`
	Timestamp   time.Time       `db:"transaction_timestamp" json:"timestamp"`
}
