package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sidvanarse/orderManagement/metrics"
	"github.com/sidvanarse/orderManagement/models"
)

// ExecutionService keeps the append-only per-book execution history and
// runs incoming executions against the resting orders. A per-match-key
// mutex serializes fetch-match-persist so that two executions contending
// for the same resting orders cannot both consume the same quantity.
type ExecutionService struct {
	books   *BookService
	orders  *OrderService
	store   ExecutionStore
	metrics *metrics.Metrics
	log     zerolog.Logger

	mu      sync.RWMutex
	history map[string][]models.Execution

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

func NewExecutionService(books *BookService, orders *OrderService, store ExecutionStore, m *metrics.Metrics, log zerolog.Logger) *ExecutionService {
	return &ExecutionService{
		books:   books,
		orders:  orders,
		store:   store,
		metrics: m,
		log:     log,
		history: make(map[string][]models.Execution),
		locks:   make(map[string]*sync.Mutex),
	}
}

// Start buckets every persisted execution by book.
func (s *ExecutionService) Start(ctx context.Context) error {
	executions, err := s.store.FindAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, execution := range executions {
		s.history[execution.BookName] = append(s.history[execution.BookName], execution)
	}
	s.log.Info().Int("executions", len(executions)).Msg("execution history hydrated")
	return nil
}

// Stop clears the history and drops all match locks.
func (s *ExecutionService) Stop() {
	s.mu.Lock()
	s.history = make(map[string][]models.Execution)
	s.mu.Unlock()

	s.lockMu.Lock()
	s.locks = make(map[string]*sync.Mutex)
	s.lockMu.Unlock()
}

// TriggerExecution validates the book, persists the execution, then
// matches it against the book's active orders under the match-key lock.
// The execution row stays durable even when nothing ends up matched or a
// later step fails; there is no rollback at this layer.
func (s *ExecutionService) TriggerExecution(ctx context.Context, execution models.Execution) (*models.Execution, error) {
	if !s.books.Exists(execution.BookName) {
		return nil, ErrBookNotFound
	}
	closed, err := s.books.IsClosed(execution.BookName)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, ErrBookOpen
	}

	saved, err := s.store.Save(ctx, execution)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.history[saved.BookName] = append(s.history[saved.BookName], saved)
	s.mu.Unlock()

	// Two executions with the same key racing here could both read the
	// same remaining quantities and over-consume a resting order. The
	// key lock makes the fetch-match-persist sequence exclusive.
	lock := s.lockFor(saved.MatchKey())
	lock.Lock()
	defer lock.Unlock()

	started := time.Now()
	active := s.orders.ActiveOrders(saved.BookName)
	matched, unfilled := matchExecution(active, saved)
	for _, order := range matched {
		if err := s.orders.UpdateOrder(ctx, order); err != nil {
			return nil, err
		}
	}

	s.metrics.IncExecutionTriggered(saved.BookName, string(saved.Type))
	s.metrics.AddMatchedQuantity(saved.Quantity - unfilled)
	s.metrics.ObserveMatchLatency(time.Since(started))
	s.log.Info().
		Int64("execution_id", saved.ExecutionID).
		Str("book", saved.BookName).
		Int("orders_touched", len(matched)).
		Msg("execution triggered")
	return &saved, nil
}

// TriggeredExecutions returns a snapshot of the book's history, empty when
// nothing has been recorded.
func (s *ExecutionService) TriggeredExecutions(bookName string) []models.Execution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.history[bookName]
	snapshot := make([]models.Execution, len(history))
	copy(snapshot, history)
	return snapshot
}

// lockFor returns the mutex for a match key, creating it on first use.
// Keys live until Stop; the key space is bounded by the distinct
// executions a deployment actually sees.
func (s *ExecutionService) lockFor(key string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}
