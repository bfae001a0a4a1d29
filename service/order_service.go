package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sidvanarse/orderManagement/metrics"
	"github.com/sidvanarse/orderManagement/models"
)

// OrderService owns the per-book active order lists. It is the single
// writer of order state after creation: matching commits its quantity
// reductions through UpdateOrder, never by touching the store itself.
type OrderService struct {
	books   *BookService
	store   OrderStore
	metrics *metrics.Metrics
	log     zerolog.Logger

	mu     sync.RWMutex
	active map[string][]*models.Order
}

func NewOrderService(books *BookService, store OrderStore, m *metrics.Metrics, log zerolog.Logger) *OrderService {
	return &OrderService{
		books:   books,
		store:   store,
		metrics: m,
		log:     log,
		active:  make(map[string][]*models.Order),
	}
}

// Start loads all persisted orders and buckets the active ones by book.
func (s *OrderService) Start(ctx context.Context) error {
	orders, err := s.store.FindAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for i := range orders {
		order := orders[i]
		if !order.IsActive {
			continue
		}
		s.active[order.BookName] = append(s.active[order.BookName], &order)
		count++
	}
	s.metrics.SetActiveOrders(count)
	s.log.Info().Int("active_orders", count).Msg("order cache hydrated")
	return nil
}

// Stop clears the active lists. Persisted rows are untouched.
func (s *OrderService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = make(map[string][]*models.Order)
}

// AddOrder persists a fresh order on an open book and inserts it into the
// active view. The book is created on first reference. A client-supplied
// identity is rejected: orders only ever get their id from the store.
func (s *OrderService) AddOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	if _, err := s.books.GetOrCreate(ctx, order.BookName); err != nil {
		return nil, err
	}
	closed, err := s.books.IsClosed(order.BookName)
	if err != nil {
		return nil, err
	}
	if closed {
		return nil, ErrBookClosed
	}
	if order.OrderID != 0 {
		existing, err := s.store.FindByID(ctx, order.OrderID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrOrderAlreadyExists
		}
		return nil, ErrOrderUnknown
	}

	order.RemainingQuantity = order.Quantity
	order.IsActive = true
	if order.EntryDate.IsZero() {
		order.EntryDate = time.Now()
	}
	saved, err := s.store.Save(ctx, order)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.active[saved.BookName] = append(s.active[saved.BookName], &saved)
	s.mu.Unlock()

	s.metrics.IncOrderAdded(saved.BookName, string(saved.Type))
	s.metrics.IncActiveOrders()
	s.log.Info().Int64("order_id", saved.OrderID).Str("book", saved.BookName).Msg("order added")
	return &saved, nil
}

// EditOrder supersedes an existing order: the old row is flagged inactive
// and a new row, linked through PreviousOrderID, takes its place in the
// active view. Past rows are never mutated beyond the active flag.
func (s *OrderService) EditOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	if !s.books.Exists(order.BookName) {
		return nil, ErrBookNotFound
	}
	closed, err := s.books.IsClosed(order.BookName)
	if err != nil {
		return nil, err
	}
	if closed {
		return nil, ErrBookClosed
	}
	past, err := s.store.FindByID(ctx, order.OrderID)
	if err != nil {
		return nil, err
	}
	if past == nil {
		return nil, ErrOrderNotAvailable
	}
	if !past.IsActive {
		return nil, ErrInactiveOrder
	}

	edited := order
	edited.OrderID = 0
	edited.PreviousOrderID = past.OrderID
	edited.RemainingQuantity = edited.Quantity
	edited.IsActive = true
	if edited.EntryDate.IsZero() {
		edited.EntryDate = time.Now()
	}
	saved, err := s.store.Save(ctx, edited)
	if err != nil {
		return nil, err
	}

	past.IsActive = false
	if _, err := s.store.Save(ctx, *past); err != nil {
		return nil, err
	}
	s.swapActive(saved.BookName, past.OrderID, &saved)

	s.metrics.IncOrderSuperseded(saved.BookName)
	s.log.Info().Int64("order_id", saved.OrderID).Int64("previous_order_id", past.OrderID).Msg("order superseded")
	return &saved, nil
}

// DeleteOrder deactivates the persisted row and drops the order from the
// active view. Rows are never physically deleted.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID int64) error {
	past, err := s.store.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if past == nil || !past.IsActive {
		return ErrOrderNotAvailable
	}
	if !s.books.Exists(past.BookName) {
		return ErrBookNotFound
	}
	closed, err := s.books.IsClosed(past.BookName)
	if err != nil {
		return err
	}
	if closed {
		return ErrBookClosed
	}

	past.IsActive = false
	if _, err := s.store.Save(ctx, *past); err != nil {
		return err
	}
	s.swapActive(past.BookName, past.OrderID, nil)

	s.metrics.IncOrderDeleted(past.BookName)
	s.metrics.DecActiveOrders()
	s.log.Info().Int64("order_id", orderID).Str("book", past.BookName).Msg("order deleted")
	return nil
}

// ActiveOrders returns a snapshot of the book's active list. The slice is
// a copy; the orders themselves are shared with the registry so that
// committed quantity reductions stay visible.
func (s *OrderService) ActiveOrders(bookName string) []*models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := s.active[bookName]
	snapshot := make([]*models.Order, len(orders))
	copy(snapshot, orders)
	return snapshot
}

// CompletedOrders returns the active orders with nothing left to fill.
func (s *OrderService) CompletedOrders(bookName string) []*models.Order {
	return s.filterActive(bookName, func(o *models.Order) bool { return o.IsComplete() })
}

// PendingOrders returns the active orders still carrying quantity.
func (s *OrderService) PendingOrders(bookName string) []*models.Order {
	return s.filterActive(bookName, func(o *models.Order) bool { return !o.IsComplete() })
}

func (s *OrderService) filterActive(bookName string, keep func(*models.Order) bool) []*models.Order {
	filtered := make([]*models.Order, 0)
	for _, order := range s.ActiveOrders(bookName) {
		if keep(order) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// UpdateOrder persists the order row as-is. Used by the execution log to
// commit matched quantity reductions; the active list keeps pointing at
// the same object, so no structural change is needed.
func (s *OrderService) UpdateOrder(ctx context.Context, order *models.Order) error {
	_, err := s.store.Save(ctx, *order)
	return err
}

// swapActive removes the order with removeID from the book's list and, if
// replacement is non-nil, appends it in the same critical section.
func (s *OrderService) swapActive(bookName string, removeID int64, replacement *models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.active[bookName]
	next := make([]*models.Order, 0, len(current))
	for _, order := range current {
		if order.OrderID != removeID {
			next = append(next, order)
		}
	}
	if replacement != nil {
		next = append(next, replacement)
	}
	s.active[bookName] = next
}
