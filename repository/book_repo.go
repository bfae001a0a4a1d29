package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sidvanarse/orderManagement/db/postgres/providers"
	"github.com/sidvanarse/orderManagement/models"
)

type BookRepository struct {
	DBHelper *providers.DBHelper
}

func NewBookRepository(db *providers.DBHelper) *BookRepository {
	return &BookRepository{DBHelper: db}
}

// Save upserts a book row keyed by name.
func (r *BookRepository) Save(ctx context.Context, book models.Book) (models.Book, error) {
	query := `
		INSERT INTO books (book_name, is_closed)
		VALUES ($1, $2)
		ON CONFLICT (book_name) DO UPDATE SET is_closed = EXCLUDED.is_closed`
	_, err := r.DBHelper.PostgresClient.ExecContext(ctx, query, book.BookName, book.IsClosed)
	return book, err
}

// FindByName returns (nil, nil) when the book does not exist.
func (r *BookRepository) FindByName(ctx context.Context, name string) (*models.Book, error) {
	query := `SELECT book_name, is_closed FROM books WHERE book_name = $1`
	var book models.Book
	err := r.DBHelper.PostgresClient.QueryRowContext(ctx, query, name).
		Scan(&book.BookName, &book.IsClosed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *BookRepository) FindAll(ctx context.Context) ([]models.Book, error) {
	query := `SELECT book_name, is_closed FROM books`
	rows, err := r.DBHelper.PostgresClient.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var book models.Book
		if err := rows.Scan(&book.BookName, &book.IsClosed); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}
