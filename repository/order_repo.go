package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sidvanarse/orderManagement/db/postgres/providers"
	"github.com/sidvanarse/orderManagement/models"
)

type OrderRepository struct {
	DBHelper *providers.DBHelper
}

func NewOrderRepository(db *providers.DBHelper) *OrderRepository {
	return &OrderRepository{DBHelper: db}
}

// Save inserts the order when it has no identity yet and updates the
// existing row otherwise. The store assigns identities on insert.
func (r *OrderRepository) Save(ctx context.Context, order models.Order) (models.Order, error) {
	previous := sql.NullInt64{Int64: order.PreviousOrderID, Valid: order.PreviousOrderID != 0}

	if order.OrderID == 0 {
		query := `
			INSERT INTO orders (instrument_id, quantity, remaining_quantity, entry_date, is_active, type, price, book_name, previous_order_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING order_id`
		err := r.DBHelper.PostgresClient.QueryRowContext(ctx, query,
			order.InstrumentID, order.Quantity, order.RemainingQuantity, order.EntryDate,
			order.IsActive, order.Type, order.Price, order.BookName, previous,
		).Scan(&order.OrderID)
		return order, err
	}

	query := `
		UPDATE orders
		SET instrument_id = $1, quantity = $2, remaining_quantity = $3, entry_date = $4,
		    is_active = $5, type = $6, price = $7, book_name = $8, previous_order_id = $9
		WHERE order_id = $10`
	_, err := r.DBHelper.PostgresClient.ExecContext(ctx, query,
		order.InstrumentID, order.Quantity, order.RemainingQuantity, order.EntryDate,
		order.IsActive, order.Type, order.Price, order.BookName, previous, order.OrderID,
	)
	return order, err
}

// FindByID returns (nil, nil) when no row matches.
func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	query := `
		SELECT order_id, instrument_id, quantity, remaining_quantity, entry_date, is_active, type, price, book_name, previous_order_id
		FROM orders WHERE order_id = $1`
	order, err := scanOrder(r.DBHelper.PostgresClient.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	query := `
		SELECT order_id, instrument_id, quantity, remaining_quantity, entry_date, is_active, type, price, book_name, previous_order_id
		FROM orders`
	rows, err := r.DBHelper.PostgresClient.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var previous sql.NullInt64
	err := row.Scan(
		&order.OrderID, &order.InstrumentID, &order.Quantity, &order.RemainingQuantity,
		&order.EntryDate, &order.IsActive, &order.Type, &order.Price, &order.BookName, &previous,
	)
	if err != nil {
		return nil, err
	}
	if previous.Valid {
		order.PreviousOrderID = previous.Int64
	}
	return &order, nil
}
