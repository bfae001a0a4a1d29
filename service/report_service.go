package service

import (
	"github.com/sidvanarse/orderManagement/models"
)

// ReportService assembles the per-book view of status, completed and
// pending orders, and triggered executions.
type ReportService struct {
	books      *BookService
	orders     *OrderService
	executions *ExecutionService
}

func NewReportService(books *BookService, orders *OrderService, executions *ExecutionService) *ReportService {
	return &ReportService{
		books:      books,
		orders:     orders,
		executions: executions,
	}
}

// GenerateReport builds the report for a book, failing with
// ErrBookNotFound when the book is unknown.
func (s *ReportService) GenerateReport(bookName string) (*models.Report, error) {
	closed, err := s.books.IsClosed(bookName)
	if err != nil {
		return nil, err
	}
	status := "Open"
	if closed {
		status = "Closed"
	}
	return &models.Report{
		BookName:            bookName,
		BookStatus:          status,
		CompletedOrders:     s.orders.CompletedOrders(bookName),
		PendingOrders:       s.orders.PendingOrders(bookName),
		TriggeredExecutions: s.executions.TriggeredExecutions(bookName),
	}, nil
}
