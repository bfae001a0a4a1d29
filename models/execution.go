package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Execution struct {
	ExecutionID  int64           `json:"execution_id"`
	InstrumentID int             `json:"instrument_id"`
	Quantity     int             `json:"quantity"`
	Type         ExecutionType   `json:"type"` // "OFFER" or "ASK"
	Price        decimal.Decimal `json:"price"`
	BookName     string          `json:"book_name"`
}

// MatchKey identifies the set of resting orders an execution can contend
// for. Two executions with the same key must not match concurrently.
func (e *Execution) MatchKey() string {
	return fmt.Sprintf("%s|%d|%s|%s", e.BookName, e.InstrumentID, e.Type, e.Price.String())
}
