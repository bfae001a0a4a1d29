package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sidvanarse/orderManagement/models"
)

// BookService keeps the authoritative runtime view of books. The cache is
// hydrated from the store on Start and is the source of truth for
// existence and open/closed checks until Stop clears it.
type BookService struct {
	store BookStore
	log   zerolog.Logger

	mu    sync.RWMutex
	books map[string]*models.Book
}

func NewBookService(store BookStore, log zerolog.Logger) *BookService {
	return &BookService{
		store: store,
		log:   log,
		books: make(map[string]*models.Book),
	}
}

// Start loads every persisted book into the cache.
func (s *BookService) Start(ctx context.Context) error {
	books, err := s.store.FindAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range books {
		book := books[i]
		s.books[book.BookName] = &book
	}
	s.log.Info().Int("books", len(books)).Msg("book cache hydrated")
	return nil
}

// Stop clears the cache. The store is untouched.
func (s *BookService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = make(map[string]*models.Book)
}

func (s *BookService) Exists(bookName string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.books[bookName]
	return ok
}

// FindByName looks the book up in the store, not the cache. Returns
// (nil, nil) when the book has never been persisted.
func (s *BookService) FindByName(ctx context.Context, bookName string) (*models.Book, error) {
	return s.store.FindByName(ctx, bookName)
}

// Save creates the book explicitly, failing when it already exists.
func (s *BookService) Save(ctx context.Context, bookName string) error {
	if s.Exists(bookName) {
		return ErrBookAlreadyExists
	}
	_, err := s.GetOrCreate(ctx, bookName)
	return err
}

// GetOrCreate returns the cached book, creating an open one in the store
// and the cache when the name has never been seen. Concurrent callers for
// the same name observe exactly one creation.
func (s *BookService) GetOrCreate(ctx context.Context, bookName string) (*models.Book, error) {
	s.mu.RLock()
	book, ok := s.books[bookName]
	s.mu.RUnlock()
	if ok {
		return book, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if book, ok := s.books[bookName]; ok {
		return book, nil
	}
	saved, err := s.store.Save(ctx, models.Book{BookName: bookName, IsClosed: false})
	if err != nil {
		return nil, err
	}
	s.books[saved.BookName] = &saved
	s.log.Info().Str("book", bookName).Msg("book created")
	return &saved, nil
}

func (s *BookService) IsClosed(bookName string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	book, ok := s.books[bookName]
	if !ok {
		return false, ErrBookNotFound
	}
	return book.IsClosed, nil
}

// Close marks the book closed in the store and the cache.
func (s *BookService) Close(ctx context.Context, bookName string) error {
	return s.setClosed(ctx, bookName, true)
}

// Open marks the book open. Verifying that no pending orders remain is the
// caller's responsibility, not this service's.
func (s *BookService) Open(ctx context.Context, bookName string) error {
	return s.setClosed(ctx, bookName, false)
}

func (s *BookService) setClosed(ctx context.Context, bookName string, closed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[bookName]
	if !ok {
		return ErrBookNotFound
	}
	book.IsClosed = closed
	saved, err := s.store.Save(ctx, *book)
	if err != nil {
		return err
	}
	s.books[saved.BookName] = &saved
	s.log.Info().Str("book", bookName).Bool("closed", closed).Msg("book state changed")
	return nil
}
