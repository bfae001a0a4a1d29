package models

type Report struct {
	BookName            string      `json:"book_name"`
	BookStatus          string      `json:"book_status"` // "Open" or "Closed"
	CompletedOrders     []*Order    `json:"completed_orders"`
	PendingOrders       []*Order    `json:"pending_orders"`
	TriggeredExecutions []Execution `json:"triggered_executions"`
}
