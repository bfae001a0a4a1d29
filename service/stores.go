package service

import (
	"context"

	"github.com/sidvanarse/orderManagement/models"
)

// The services treat the persistence layer as an opaque synchronous
// backend. Save is insert-or-update; identities are assigned on insert.
// Find operations return (nil, nil) when nothing matches.

type BookStore interface {
	Save(ctx context.Context, book models.Book) (models.Book, error)
	FindByName(ctx context.Context, name string) (*models.Book, error)
	FindAll(ctx context.Context) ([]models.Book, error)
}

type OrderStore interface {
	Save(ctx context.Context, order models.Order) (models.Order, error)
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
}

type ExecutionStore interface {
	Save(ctx context.Context, execution models.Execution) (models.Execution, error)
	FindAll(ctx context.Context) ([]models.Execution, error)
}
