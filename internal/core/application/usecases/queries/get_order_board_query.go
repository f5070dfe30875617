package queries

import (
	"errors"

	"canteen/internal/core/domain/model/order"
	"canteen/internal/pkg/guard"
)

var ErrGetOrderBoardQueryIsNotConstructed = errors.New(
	"GetOrderBoardQuery must be created via NewGetOrderBoardQuery constructor",
)

// GetOrderBoardQuery retrieves the order board: every order grouped by
// status, the way the counter dashboard shows them.
type GetOrderBoardQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderBoardQuery creates a board query.
// This is a parameterless query covering every order.
func NewGetOrderBoardQuery() GetOrderBoardQuery {
	return GetOrderBoardQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrderBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderBoardQueryIsNotConstructed)
}

// BoardCounts summarizes how many orders sit in each bucket. Total covers
// every bucketed order.
type BoardCounts struct {
	Pending   int
	Accepted  int
	Ready     int
	Completed int
	Cancelled int
	Total     int
}

// OrderBoard groups orders into one bucket per status, with a count summary.
// Within each bucket orders keep the order they were handed in.
type OrderBoard struct {
	Pending   []OrderSummary
	Accepted  []OrderSummary
	Ready     []OrderSummary
	Completed []OrderSummary
	Cancelled []OrderSummary

	Counts BoardCounts
}

// ProjectByStatus partitions summaries into board buckets and tallies the
// counts. Orders with an unknown status are dropped. Pure function over an
// already-fetched list; performs no I/O.
func ProjectByStatus(summaries []OrderSummary) OrderBoard {
	board := OrderBoard{
		Pending:   make([]OrderSummary, 0),
		Accepted:  make([]OrderSummary, 0),
		Ready:     make([]OrderSummary, 0),
		Completed: make([]OrderSummary, 0),
		Cancelled: make([]OrderSummary, 0),
	}

	for _, summary := range summaries {
		switch summary.Status {
		case order.Pending:
			board.Pending = append(board.Pending, summary)
		case order.Accepted:
			board.Accepted = append(board.Accepted, summary)
		case order.Ready:
			board.Ready = append(board.Ready, summary)
		case order.Completed:
			board.Completed = append(board.Completed, summary)
		case order.Cancelled:
			board.Cancelled = append(board.Cancelled, summary)
		}
	}

	board.Counts = BoardCounts{
		Pending:   len(board.Pending),
		Accepted:  len(board.Accepted),
		Ready:     len(board.Ready),
		Completed: len(board.Completed),
		Cancelled: len(board.Cancelled),
	}
	board.Counts.Total = board.Counts.Pending + board.Counts.Accepted +
		board.Counts.Ready + board.Counts.Completed + board.Counts.Cancelled

	return board
}
