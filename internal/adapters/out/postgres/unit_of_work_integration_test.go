package postgres_test

import (
	"context"
	"strings"
	"testing"
	"time"

	postgres_adapter "otcdesk/internal/adapters/out/postgres"
	"otcdesk/internal/core/application/usecases/queries"
	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/core/domain/model/order"
	"otcdesk/internal/core/domain/model/user"
	"otcdesk/internal/core/ports"
	"otcdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(ctx, db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_events, fee_configs").Error
	suite.Require().NoError(err)
	err = suite.db.Exec("DELETE FROM users WHERE wallet_address <> ?", postgres_adapter.AdminWallet).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) addSeller(ctx context.Context, wallet string) *user.User {
	address, err := kernel.NewWalletAddress(wallet)
	suite.Require().NoError(err)
	u, err := user.NewUser(address, time.Now().UTC())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.UserRepository().Add(ctx, u))
	suite.Require().NoError(uow.Commit(ctx))
	return u
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(id, sellerID int64, asset kernel.Asset) *order.Order {
	o, err := order.NewOrder(id, sellerID, order.Terms{
		Asset:        asset,
		QuoteToken:   kernel.AssetUSDT,
		Quantity:     decimal.NewFromInt(1),
		PricePerUnit: decimal.NewFromInt(100),
		TotalAmount:  decimal.NewFromInt(100),
	}, kernel.MustNewTxHash("0x"+strings.Repeat("c", 64)), time.Now().UTC())
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMigrate_IsIdempotentAndSeedsAdmin() {
	ctx := context.Background()
	suite.Require().NoError(postgres_adapter.Migrate(ctx, suite.db))

	admin, err := kernel.NewWalletAddress(postgres_adapter.AdminWallet)
	suite.Require().NoError(err)

	u, err := suite.factory.Create().UserRepository().GetByWallet(ctx, admin)
	suite.Require().NoError(err)
	suite.Equal(user.RoleAdmin, u.Role())
	suite.Equal(user.KYCTier2, u.KYCTier())
	suite.True(u.CanTrade())

	var count int64
	suite.Require().NoError(suite.db.Table("users").Where("wallet_address = ?", postgres_adapter.AdminWallet).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Begin on an open transaction is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsOrderAndEvent() {
	ctx := context.Background()
	seller := suite.addSeller(ctx, "0x1111111111111111111111111111111111111111")
	o := suite.newOrder(1, seller.ID(), kernel.AssetWBTC)

	created, err := order.CreatedEvent(o)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.OrderEventRepository().Add(ctx, created))
	suite.Require().NoError(uow.Commit(ctx))

	query, err := queries.NewListOrderEventsQuery(1)
	suite.Require().NoError(err)
	events, err := queries.NewListOrderEventsQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(events, 1)
	suite.Equal(string(order.EventOrderCreated), events[0].EventType)
	suite.True(created.ID().IsEqual(events[0].ID))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	seller := suite.addSeller(ctx, "0x1111111111111111111111111111111111111111")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder(2, seller.ID(), kernel.AssetWBTC)))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, 2)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestListOrders_FiltersByStatusSet() {
	ctx := context.Background()
	seller := suite.addSeller(ctx, "0x1111111111111111111111111111111111111111")
	other := suite.addSeller(ctx, "0x3333333333333333333333333333333333333333")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	repo := uow.OrderRepository()
	suite.Require().NoError(repo.Add(ctx, suite.newOrder(1, seller.ID(), kernel.AssetWBTC)))
	suite.Require().NoError(repo.Add(ctx, suite.newOrder(2, seller.ID(), kernel.AssetWETH)))
	suite.Require().NoError(repo.Add(ctx, suite.newOrder(3, other.ID(), kernel.AssetWBTC)))

	cancelled := suite.newOrder(4, seller.ID(), kernel.AssetWBTC)
	suite.Require().NoError(repo.Add(ctx, cancelled))
	suite.Require().NoError(cancelled.Apply(order.NewMutationPlan(order.Pending).WithStatus(order.Cancelled), time.Now().UTC()))
	suite.Require().NoError(repo.Update(ctx, cancelled, order.Pending))
	suite.Require().NoError(uow.Commit(ctx))

	handler := queries.NewListOrdersQueryHandler(suite.db)

	mine, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{
		Statuses: []string{"PENDING", "ESCROWED"},
		SellerID: seller.ID(),
	}, queries.TraderListLimit)
	suite.Require().NoError(err)
	views, err := handler.Handle(ctx, mine)
	suite.Require().NoError(err)
	suite.Len(views, 2)
	for _, v := range views {
		suite.Equal("PENDING", v.Status)
		suite.Equal("0x1111111111111111111111111111111111111111", v.SellerWallet)
	}

	wbtc, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{Asset: "WBTC"}, queries.AdminListLimit)
	suite.Require().NoError(err)
	views, err = handler.Handle(ctx, wbtc)
	suite.Require().NoError(err)
	suite.Len(views, 3)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
