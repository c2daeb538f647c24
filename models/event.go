package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices go out on the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Event is a sellable event configured into the marketplace. Events are
// created on configure and destroyed on reset.
type Event struct {
	ID    int64           `db:"id" json:"id"`
	Name  string          `db:"name" json:"name"`
	Price decimal.Decimal `db:"price" json:"price"`
}
