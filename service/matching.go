package service

import (
	"sort"

	"github.com/sidvanarse/orderManagement/models"
)

// matchExecution runs a single greedy price-time priority pass of the
// execution over the given active orders. An OFFER consumes resting BUY
// orders priced at or above the execution price; an ASK consumes resting
// SELL orders priced at or below it. Eligible orders are filled strictly
// oldest first until the execution is exhausted. Under-fill is accepted
// silently.
//
// The routine stages its mutations on the orders it touches and returns
// them together with the execution quantity left unfilled; persisting the
// reductions is the caller's job.
func matchExecution(active []*models.Order, execution models.Execution) ([]*models.Order, int) {
	want := models.OrderTypeBuy
	if execution.Type == models.ExecutionTypeAsk {
		want = models.OrderTypeSell
	}

	eligible := make([]*models.Order, 0, len(active))
	for _, order := range active {
		if order.RemainingQuantity <= 0 {
			continue
		}
		if order.Type != want || order.InstrumentID != execution.InstrumentID {
			continue
		}
		if want == models.OrderTypeBuy && order.Price.LessThan(execution.Price) {
			continue
		}
		if want == models.OrderTypeSell && order.Price.GreaterThan(execution.Price) {
			continue
		}
		eligible = append(eligible, order)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].EntryDate.Before(eligible[j].EntryDate)
	})

	remaining := execution.Quantity
	var matched []*models.Order
	for _, order := range eligible {
		if remaining <= 0 {
			break
		}
		fill := order.RemainingQuantity
		if remaining < fill {
			fill = remaining
		}
		order.RemainingQuantity -= fill
		remaining -= fill
		matched = append(matched, order)
	}
	return matched, remaining
}
