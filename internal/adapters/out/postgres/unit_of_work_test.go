package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/catalogrepo"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// UnitOfWorkTestSuite exercises the transaction lifecycle against an
// in-memory SQLite database.
type UnitOfWorkTestSuite struct {
	suite.Suite
	db      *gorm.DB
	factory ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file:uow?mode=memory&cache=private"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.db = db
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(sqlDB.Close())
}

func (suite *UnitOfWorkTestSuite) TestMigrate_CreatesAllTables() {
	for _, table := range []string{"orders", "order_details", "payments", "order_status_logs",
		"restaurants", "products", "users", "app_settings", "notifications"} {
		suite.True(suite.db.Migrator().HasTable(table), table)
	}
}

func (suite *UnitOfWorkTestSuite) TestUnitOfWork_CommitMakesOrderVisible() {
	ctx := context.Background()
	o := createTestOrder(suite.T())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	restored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), restored.ID())

	log, err := suite.factory.Create().OrderRepository().ListStatusLog(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Len(log, 1)
}

func (suite *UnitOfWorkTestSuite) TestUnitOfWork_RollbackDiscardsOrder() {
	ctx := context.Background()
	o := createTestOrder(suite.T())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	var logRows int64
	suite.Require().NoError(suite.db.Table("order_status_logs").Count(&logRows).Error)
	suite.Zero(logRows)
}

func (suite *UnitOfWorkTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkTestSuite) TestUnitOfWork_CatalogSharesSchema() {
	ctx := context.Background()
	repo := catalogrepo.NewGormCatalogRepository(suite.db)

	settings, err := repo.CurrentDeliverySettings(ctx)
	suite.Require().NoError(err)
	suite.Equal("20.00", settings.BaseFee.String())
}

func createTestOrder(t *testing.T) *order.Order {
	t.Helper()

	restaurantID := kernel.NewUUID()
	leg, err := order.NewRestaurantLeg(restaurantID, "Noodle House", kernel.MustMoney("20.00"))
	if err != nil {
		t.Fatal(err)
	}
	line, err := order.NewLine(kernel.NewUUID(), restaurantID, 2, kernel.MustMoney("50.00"))
	if err != nil {
		t.Fatal(err)
	}
	draft, err := order.NewDraft([]order.RestaurantLeg{leg}, []order.Line{line})
	if err != nil {
		t.Fatal(err)
	}
	delivery, err := order.NewDelivery("12 Sukhumvit Rd", nil, "")
	if err != nil {
		t.Fatal(err)
	}
	o, err := order.NewCustomerOrder(kernel.NewUUID(), kernel.NewUUID(), delivery, draft, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}
