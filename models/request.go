package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderRequest struct {
	OrderID      int64           `json:"order_id,omitempty"`
	InstrumentID int             `json:"instrument_id" validate:"required,gt=0"`
	Quantity     int             `json:"quantity" validate:"required,gt=0"`
	EntryDate    time.Time       `json:"entry_date,omitempty"`
	Type         string          `json:"type" validate:"required,oneof=BUY SELL"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	BookName     string          `json:"book_name" validate:"required"`
}

// ToOrder maps a request onto a domain order. EntryDate defaults to the
// receive time when the client leaves it out.
func (r *OrderRequest) ToOrder() Order {
	entry := r.EntryDate
	if entry.IsZero() {
		entry = time.Now()
	}
	return Order{
		OrderID:      r.OrderID,
		InstrumentID: r.InstrumentID,
		Quantity:     r.Quantity,
		EntryDate:    entry,
		Type:         OrderType(r.Type),
		Price:        r.Price,
		BookName:     r.BookName,
	}
}

type ExecutionRequest struct {
	InstrumentID int             `json:"instrument_id" validate:"required,gt=0"`
	Quantity     int             `json:"quantity" validate:"required,gt=0"`
	Type         string          `json:"type" validate:"required,oneof=OFFER ASK"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	BookName     string          `json:"book_name" validate:"required"`
}

func (r *ExecutionRequest) ToExecution() Execution {
	return Execution{
		InstrumentID: r.InstrumentID,
		Quantity:     r.Quantity,
		Type:         ExecutionType(r.Type),
		Price:        r.Price,
		BookName:     r.BookName,
	}
}
