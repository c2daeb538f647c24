package models

import (
	"github.com/shopspring/decimal"
)

// Ticket is an immutable pool entry: produced by one vendor, consumed by
// exactly one customer.
type Ticket struct {
	EventName string          `json:"event_name"`
	Price     decimal.Decimal `json:"price"`
	VendorID  int             `json:"vendor_id"`
}
