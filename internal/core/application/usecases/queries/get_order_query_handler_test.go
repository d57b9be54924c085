package queries_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repository's tracker dependency in query tests.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.OrderPaymentDTO{},
	))

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, noopTracker{})
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_items, order_payments").Error,
	)
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderQueryHandlerTestSuite) seedOrder() *order.Order {
	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)

	pizza, err := kernel.NewMoney(1250)
	suite.Require().NoError(err)
	item, err := order.NewItem("Margherita", 2, pizza)
	suite.Require().NoError(err)
	aggregate.AddItem(item)

	dessert, err := kernel.NewMoney(650)
	suite.Require().NoError(err)
	item, err = order.NewItem("Tiramisu", 1, dessert)
	suite.Require().NoError(err)
	aggregate.AddItem(item)

	amount, err := kernel.NewMoney(2000)
	suite.Require().NoError(err)
	payment, err := order.NewPayment(amount, "card", time.Now())
	suite.Require().NoError(err)
	aggregate.RegisterPayment(payment)

	suite.Require().NoError(suite.orderRepo.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ReturnsOrderWithTotals() {
	ctx := context.Background()
	aggregate := suite.seedOrder()

	query, err := queries.NewGetOrderQuery(aggregate.ID())
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(resp.ID.IsEqual(aggregate.ID()))
	suite.True(resp.BranchID.IsEqual(aggregate.BranchID()))
	suite.Equal("New", resp.Status)
	suite.Empty(resp.VoidReason)

	suite.Require().Len(resp.Items, 2)
	suite.Equal("Margherita", resp.Items[0].Name)
	suite.Equal(2, resp.Items[0].Quantity)
	suite.Equal("Tiramisu", resp.Items[1].Name)

	suite.Require().Len(resp.Payments, 1)
	suite.Equal(int64(2000), resp.Payments[0].AmountCents)
	suite.Equal("card", resp.Payments[0].Method)

	// 2 * 1250 + 650
	suite.Equal(int64(3150), resp.TotalCents)
	suite.Equal(int64(2000), resp.PaidCents)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_EmptyOrderHasZeroTotals() {
	ctx := context.Background()

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, aggregate))

	query, err := queries.NewGetOrderQuery(aggregate.ID())
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Empty(resp.Items)
	suite.Empty(resp.Payments)
	suite.Zero(resp.TotalCents)
	suite.Zero(resp.PaidCents)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_NonExistentOrder_ReturnsNotFound() {
	ctx := context.Background()

	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(ctx, query)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_InvalidQuery() {
	_, err := suite.handler.Handle(context.Background(), queries.GetOrderQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
