package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	OrderID           int64           `json:"order_id"`
	InstrumentID      int             `json:"instrument_id"`
	Quantity          int             `json:"quantity"`
	RemainingQuantity int             `json:"remaining_quantity"`
	EntryDate         time.Time       `json:"entry_date"`
	IsActive          bool            `json:"is_active"`
	Type              OrderType       `json:"type"` // "BUY" or "SELL"
	Price             decimal.Decimal `json:"price"`
	BookName          string          `json:"book_name"`
	PreviousOrderID   int64           `json:"previous_order_id,omitempty"` // order this one supersedes, 0 if none
}

// IsComplete reports whether the order has been fully filled. A complete
// order stays in the active view until it is deleted or superseded.
func (o *Order) IsComplete() bool {
	return o.RemainingQuantity == 0
}
