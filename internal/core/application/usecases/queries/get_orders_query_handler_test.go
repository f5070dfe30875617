package queries_test

import (
	"context"
	"testing"
	"time"

	"canteen/internal/adapters/out/postgres/orderrepo"
	"canteen/internal/core/application/usecases/queries"
	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker for seeding query test data.
type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(kernel.UUID, any) {}

type GetOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	handler      queries.GetOrdersQueryHandler
	boardHandler queries.GetOrderBoardQueryHandler
	orderRepo    *orderrepo.GormOrderRepository
}

func (suite *GetOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrdersQueryHandler(db)
	suite.boardHandler = queries.NewGetOrderBoardQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, mockAggregateTracker{})
}

func (suite *GetOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetOrdersQuery(order.Unknown, 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_NoFilter_ReturnsAllNewestFirst() {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	second := suite.seedOrder(base.Add(time.Hour), order.Pending)
	first := suite.seedOrder(base, order.Pending)
	third := suite.seedOrder(base.Add(2*time.Hour), order.Completed)

	query, err := queries.NewGetOrdersQuery(order.Unknown, 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal(third.ID(), result[0].ID)
	suite.Equal(second.ID(), result[1].ID)
	suite.Equal(first.ID(), result[2].ID)

	suite.Equal("Asha", result[0].CustomerName)
	suite.Equal(int64(142), result[0].Total)
	suite.Equal("INR", result[0].Currency)
	suite.Equal(order.Completed, result[0].Status)
	suite.Equal(order.Pending, result[2].Status)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_StatusFilter_ReturnsMatchingOnly() {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	pending := suite.seedOrder(base, order.Pending)
	suite.seedOrder(base.Add(time.Hour), order.Accepted)
	suite.seedOrder(base.Add(2*time.Hour), order.Cancelled)

	query, err := queries.NewGetOrdersQuery(order.Pending, 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(pending.ID(), result[0].ID)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_Limit_KeepsNewestOrders() {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	suite.seedOrder(base, order.Pending)
	suite.seedOrder(base.Add(time.Hour), order.Pending)
	newest := suite.seedOrder(base.Add(2*time.Hour), order.Pending)

	query, err := queries.NewGetOrdersQuery(order.Unknown, 1)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(newest.ID(), result[0].ID)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetOrdersQuery constructor")
}

func (suite *GetOrdersQueryHandlerTestSuite) TestBoardHandler_GroupsOrdersIntoBuckets() {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	pending := suite.seedOrder(base, order.Pending)
	accepted := suite.seedOrder(base.Add(time.Hour), order.Accepted)
	ready := suite.seedOrder(base.Add(2*time.Hour), order.Ready)
	completed := suite.seedOrder(base.Add(3*time.Hour), order.Completed)
	cancelled := suite.seedOrder(base.Add(4*time.Hour), order.Cancelled)

	board, err := suite.boardHandler.Handle(context.Background(), queries.NewGetOrderBoardQuery())

	suite.Require().NoError(err)
	suite.Require().Len(board.Pending, 1)
	suite.Equal(pending.ID(), board.Pending[0].ID)
	suite.Require().Len(board.Accepted, 1)
	suite.Equal(accepted.ID(), board.Accepted[0].ID)
	suite.Require().Len(board.Ready, 1)
	suite.Equal(ready.ID(), board.Ready[0].ID)
	suite.Require().Len(board.Completed, 1)
	suite.Equal(completed.ID(), board.Completed[0].ID)
	suite.Require().Len(board.Cancelled, 1)
	suite.Equal(cancelled.ID(), board.Cancelled[0].ID)

	suite.Equal(queries.BoardCounts{
		Pending:   1,
		Accepted:  1,
		Ready:     1,
		Completed: 1,
		Cancelled: 1,
		Total:     5,
	}, board.Counts)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestBoardHandler_EmptyDatabase_ReturnsEmptyBuckets() {
	board, err := suite.boardHandler.Handle(context.Background(), queries.NewGetOrderBoardQuery())

	suite.Require().NoError(err)
	suite.Empty(board.Pending)
	suite.Empty(board.Accepted)
	suite.Empty(board.Ready)
	suite.Empty(board.Completed)
	suite.Empty(board.Cancelled)
	suite.Zero(board.Counts.Total)
}

// seedOrder persists an order walked into the given status.
func (suite *GetOrdersQueryHandlerTestSuite) seedOrder(createdAt time.Time, status order.Status) *order.Order {
	maggi, err := order.NewLineItem("Plain Maggi", 2, 50)
	suite.Require().NoError(err)
	cola, err := order.NewLineItem("Coca Cola", 1, 35)
	suite.Require().NoError(err)

	customer, err := order.NewCustomer("asha@example.com", "Asha", "", "", "")
	suite.Require().NoError(err)

	payment, err := order.NewPaymentSnapshot(order.PaymentSuccess, "upi", "txn-1", 142, createdAt)
	suite.Require().NoError(err)

	seeded, err := order.NewOrder(
		kernel.NewUUID(),
		[]order.LineItem{maggi, cola},
		customer,
		order.Totals{Subtotal: 135, Tax: 7, Total: 142, Currency: "INR"},
		payment,
		"",
		createdAt,
	)
	suite.Require().NoError(err)

	now := createdAt.Add(time.Minute)
	switch status {
	case order.Accepted:
		suite.Require().NoError(seeded.Accept("ravi", now))
	case order.Ready:
		suite.Require().NoError(seeded.Accept("ravi", now))
		suite.Require().NoError(seeded.MarkReady("ravi", now))
	case order.Completed:
		suite.Require().NoError(seeded.Accept("ravi", now))
		suite.Require().NoError(seeded.MarkReady("ravi", now))
		suite.Require().NoError(seeded.Complete("ravi", now))
	case order.Cancelled:
		suite.Require().NoError(seeded.Cancel("ravi", "out of stock", now))
	}

	suite.Require().NoError(suite.orderRepo.Add(context.Background(), seeded))
	return seeded
}

func TestGetOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrdersQueryHandlerTestSuite))
}
