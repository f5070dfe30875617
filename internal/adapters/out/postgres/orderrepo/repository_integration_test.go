package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"canteen/internal/adapters/out/postgres/orderrepo"
	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"
	"canteen/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(time.Now().UTC())

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnconstructedOrder_Fails() {
	ctx := context.Background()

	err := suite.repository.Add(ctx, &order.Order{})
	suite.Require().Error(err)

	suite.assertOrderCount(0)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTripsAllFields() {
	ctx := context.Background()

	createdAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	original := suite.createTestOrder(createdAt)
	suite.Require().NoError(original.Accept("ravi", createdAt.Add(time.Minute)))

	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(order.Accepted, retrieved.Status())
	suite.Equal("ravi", retrieved.AcceptedBy())
	suite.Require().NotNil(retrieved.AcceptedAt())

	suite.Require().Len(retrieved.Items(), 2)
	suite.Equal("Plain Maggi", retrieved.Items()[0].Name())
	suite.Equal(int64(2), retrieved.Items()[0].Quantity())
	suite.Equal(int64(50), retrieved.Items()[0].UnitPrice())

	suite.Equal("asha@example.com", retrieved.Customer().Email())
	suite.Equal("Asha", retrieved.Customer().DisplayName())

	suite.Equal(int64(135), retrieved.Subtotal())
	suite.Equal(int64(7), retrieved.Tax())
	suite.Equal(int64(142), retrieved.Total())
	suite.Equal("INR", retrieved.Currency())

	suite.Equal(order.PaymentSuccess, retrieved.Payment().Status())
	suite.Equal("upi", retrieved.Payment().Method())
	suite.Equal(int64(142), retrieved.Payment().Amount())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusGuardMatches_Persists() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(time.Now().UTC())
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Accept("ravi", time.Now().UTC()))

	err := suite.repository.Update(ctx, testOrder, order.Pending)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, retrieved.Status())
	suite.Equal("ravi", retrieved.AcceptedBy())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusGuardStale_ReturnsConflict() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(time.Now().UTC())
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// First writer wins the accept.
	suite.Require().NoError(testOrder.Accept("ravi", time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder, order.Pending))

	// Second writer still believes the order is pending.
	stale, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(stale.MarkReady("meera", time.Now().UTC()))

	err = suite.repository.Update(ctx, stale, order.Pending)
	suite.Require().Error(err)

	var conflictErr *errs.ConcurrencyConflictError
	suite.Require().ErrorAs(err, &conflictErr)

	// The stored row kept the winner's state.
	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	ghost := suite.createTestOrder(time.Now().UTC())

	err := suite.repository.Update(ctx, ghost, order.Pending)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus_FiltersAndOrdersByCreation() {
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	second := suite.createTestOrder(base.Add(time.Hour))
	first := suite.createTestOrder(base)
	accepted := suite.createTestOrder(base.Add(2 * time.Hour))
	suite.Require().NoError(accepted.Accept("ravi", base.Add(3*time.Hour)))

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, second))
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, accepted))

	pending, err := suite.repository.GetAllInStatus(ctx, order.Pending, 0)
	suite.Require().NoError(err)

	suite.Require().Len(pending, 2)
	suite.Equal(second.ID(), pending[0].ID())
	suite.Equal(first.ID(), pending[1].ID())

	limited, err := suite.repository.GetAllInStatus(ctx, order.Pending, 1)
	suite.Require().NoError(err)
	suite.Require().Len(limited, 1)
	suite.Equal(second.ID(), limited[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAll_ReturnsEverythingNewestFirst() {
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	first := suite.createTestOrder(base)
	second := suite.createTestOrder(base.Add(time.Minute))

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, second))
	suite.Require().NoError(suite.repository.Add(ctx, first))

	all, err := suite.repository.GetAll(ctx, 0)
	suite.Require().NoError(err)

	suite.Require().Len(all, 2)
	suite.Equal(second.ID(), all[0].ID())
	suite.Equal(first.ID(), all[1].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetStalePendingWithFailedPayment() {
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	cutoff := base.Add(30 * time.Minute)

	staleFailed := suite.createTestOrderWithPayment(base, order.PaymentFailed)
	freshFailed := suite.createTestOrderWithPayment(cutoff.Add(time.Minute), order.PaymentFailed)
	stalePaid := suite.createTestOrderWithPayment(base, order.PaymentSuccess)

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, staleFailed))
	suite.Require().NoError(suite.repository.Add(ctx, freshFailed))
	suite.Require().NoError(suite.repository.Add(ctx, stalePaid))

	stale, err := suite.repository.GetStalePendingWithFailedPayment(ctx, cutoff)
	suite.Require().NoError(err)

	suite.Require().Len(stale, 1)
	suite.Equal(staleFailed.ID(), stale[0].ID())
}

// TestConcurrentAccept_ExactlyOneWins races two writers on the same pending
// order. The status-guarded update must let exactly one commit.
func (suite *OrderRepositoryIntegrationTestSuite) TestConcurrentAccept_ExactlyOneWins() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(time.Now().UTC())
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Maybe()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	var wg sync.WaitGroup
	results := make(chan error, 2)

	for _, actor := range []string{"ravi", "meera"} {
		wg.Add(1)
		go func(actor string) {
			defer wg.Done()

			snapshot, err := suite.repository.Get(ctx, testOrder.ID())
			if err != nil {
				results <- err
				return
			}
			if err = snapshot.Accept(actor, time.Now().UTC()); err != nil {
				results <- err
				return
			}
			results <- suite.repository.Update(ctx, snapshot, order.Pending)
		}(actor)
	}

	wg.Wait()
	close(results)

	var conflicts, successes int
	for err := range results {
		switch {
		case err == nil:
			successes++
		default:
			var conflictErr *errs.ConcurrencyConflictError
			suite.Require().ErrorAs(err, &conflictErr)
			conflicts++
		}
	}

	suite.Equal(1, successes)
	suite.Equal(1, conflicts)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, retrieved.Status())
}

// createTestOrder creates a pending order with a fixed two-line cart.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(createdAt time.Time) *order.Order {
	return suite.createTestOrderWithPayment(createdAt, order.PaymentSuccess)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrderWithPayment(
	createdAt time.Time,
	paymentStatus order.PaymentStatus,
) *order.Order {
	maggi, err := order.NewLineItem("Plain Maggi", 2, 50)
	suite.Require().NoError(err)
	cola, err := order.NewLineItem("Coca Cola", 1, 35)
	suite.Require().NoError(err)

	customer, err := order.NewCustomer("asha@example.com", "Asha", "Asha", "Rao", "")
	suite.Require().NoError(err)

	payment, err := order.NewPaymentSnapshot(paymentStatus, "upi", "txn-1", 142, createdAt)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		[]order.LineItem{maggi, cola},
		customer,
		order.Totals{Subtotal: 135, Tax: 7, Total: 142, Currency: "INR"},
		payment,
		"",
		createdAt,
	)
	suite.Require().NoError(err)

	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
