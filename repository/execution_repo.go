package repository

import (
	"context"

	"github.com/sidvanarse/orderManagement/db/postgres/providers"
	"github.com/sidvanarse/orderManagement/models"
)

type ExecutionRepository struct {
	DBHelper *providers.DBHelper
}

func NewExecutionRepository(db *providers.DBHelper) *ExecutionRepository {
	return &ExecutionRepository{DBHelper: db}
}

// Save inserts an execution row and returns it with its assigned identity.
// Executions are immutable; there is no update path.
func (r *ExecutionRepository) Save(ctx context.Context, execution models.Execution) (models.Execution, error) {
	query := `
		INSERT INTO executions (instrument_id, quantity, type, price, book_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING execution_id`
	err := r.DBHelper.PostgresClient.QueryRowContext(ctx, query,
		execution.InstrumentID, execution.Quantity, execution.Type, execution.Price, execution.BookName,
	).Scan(&execution.ExecutionID)
	return execution, err
}

func (r *ExecutionRepository) FindAll(ctx context.Context) ([]models.Execution, error) {
	query := `
		SELECT execution_id, instrument_id, quantity, type, price, book_name
		FROM executions`
	rows, err := r.DBHelper.PostgresClient.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var executions []models.Execution
	for rows.Next() {
		var execution models.Execution
		if err := rows.Scan(
			&execution.ExecutionID, &execution.InstrumentID, &execution.Quantity,
			&execution.Type, &execution.Price, &execution.BookName,
		); err != nil {
			return nil, err
		}
		executions = append(executions, execution)
	}
	return executions, rows.Err()
}
