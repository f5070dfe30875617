package queries

import (
	"context"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderBoardQueryHandler builds the order board from the database.
// Fetches every order in one pass and projects it into status buckets.
//
// Example:
//
//	handler := NewGetOrderBoardQueryHandler(db)
//	board, err := handler.Handle(ctx, NewGetOrderBoardQuery())
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("pending %d, in kitchen %d, ready %d\n",
//	    board.Counts.Pending, board.Counts.Accepted, board.Counts.Ready)
type GetOrderBoardQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderBoardQueryHandler creates a handler for board queries.
// Requires a GORM database connection for query execution.
func NewGetOrderBoardQueryHandler(db *gorm.DB) GetOrderBoardQueryHandler {
	return GetOrderBoardQueryHandler{db: db}
}

// Handle executes the board query. Buckets come back oldest first so the
// kitchen works through orders in arrival order.
func (h GetOrderBoardQueryHandler) Handle(
	ctx context.Context,
	query GetOrderBoardQuery,
) (OrderBoard, error) {
	if err := query.Validate(); err != nil {
		return OrderBoard{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_display_name,
			status,
			total,
			currency,
			created_at,
			updated_at
		FROM orders
		ORDER BY created_at
	`).Rows()
	if err != nil {
		return OrderBoard{}, err
	}
	defer rows.Close()

	summaries := make([]OrderSummary, 0)

	for rows.Next() {
		var (
			id      uuid.UUID
			summary OrderSummary
			status  int
		)

		err = rows.Scan(
			&id,
			&summary.CustomerName,
			&status,
			&summary.Total,
			&summary.Currency,
			&summary.CreatedAt,
			&summary.UpdatedAt,
		)
		if err != nil {
			return OrderBoard{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return OrderBoard{}, idErr
		}
		summary.ID = orderID
		summary.Status = order.Status(status)

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return OrderBoard{}, err
	}

	return ProjectByStatus(summaries), nil
}
