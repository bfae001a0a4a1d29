package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sidvanarse/orderManagement/models"
)

// In-memory stores standing in for the persistence layer.

type memBookStore struct {
	mu    sync.Mutex
	books map[string]models.Book
	saves int
}

func newMemBookStore() *memBookStore {
	return &memBookStore{books: make(map[string]models.Book)}
}

func (s *memBookStore) Save(_ context.Context, book models.Book) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	s.books[book.BookName] = book
	return book, nil
}

func (s *memBookStore) FindByName(_ context.Context, name string) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[name]
	if !ok {
		return nil, nil
	}
	return &book, nil
}

func (s *memBookStore) FindAll(_ context.Context) ([]models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	books := make([]models.Book, 0, len(s.books))
	for _, book := range s.books {
		books = append(books, book)
	}
	return books, nil
}

func (s *memBookStore) rowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.books)
}

type memOrderStore struct {
	mu     sync.Mutex
	seq    int64
	orders map[int64]models.Order
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: make(map[int64]models.Order)}
}

func (s *memOrderStore) Save(_ context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.OrderID == 0 {
		s.seq++
		order.OrderID = s.seq
	}
	s.orders[order.OrderID] = order
	return order, nil
}

func (s *memOrderStore) FindByID(_ context.Context, id int64) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (s *memOrderStore) FindAll(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

func (s *memOrderStore) rowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *memOrderStore) row(id int64) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	return order, ok
}

type memExecutionStore struct {
	mu         sync.Mutex
	seq        int64
	executions []models.Execution
}

func newMemExecutionStore() *memExecutionStore {
	return &memExecutionStore{}
}

func (s *memExecutionStore) Save(_ context.Context, execution models.Execution) (models.Execution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	execution.ExecutionID = s.seq
	s.executions = append(s.executions, execution)
	return execution, nil
}

func (s *memExecutionStore) FindAll(_ context.Context) ([]models.Execution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	executions := make([]models.Execution, len(s.executions))
	copy(executions, s.executions)
	return executions, nil
}

func (s *memExecutionStore) rowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.executions)
}

type testEnv struct {
	bookStore      *memBookStore
	orderStore     *memOrderStore
	executionStore *memExecutionStore
	books          *BookService
	orders         *OrderService
	executions     *ExecutionService
	reports        *ReportService
}

func newTestEnv() *testEnv {
	log := zerolog.Nop()
	bookStore := newMemBookStore()
	orderStore := newMemOrderStore()
	executionStore := newMemExecutionStore()
	books := NewBookService(bookStore, log)
	orders := NewOrderService(books, orderStore, nil, log)
	executions := NewExecutionService(books, orders, executionStore, nil, log)
	return &testEnv{
		bookStore:      bookStore,
		orderStore:     orderStore,
		executionStore: executionStore,
		books:          books,
		orders:         orders,
		executions:     executions,
		reports:        NewReportService(books, orders, executions),
	}
}
