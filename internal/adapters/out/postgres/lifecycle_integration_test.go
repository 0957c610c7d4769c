package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/accountrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/outboxrepo"
	"fooddelivery/internal/adapters/out/postgres/pgtest"
	"fooddelivery/internal/adapters/out/postgres/productrepo"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// uowFactory exposes the GORM factory through the command-side interface.
type uowFactory struct {
	*postgres.GormUnitOfWorkFactory
}

func (f uowFactory) Create() commands.UoW {
	return f.GormUnitOfWorkFactory.Create()
}

type allowAll struct{}

func (allowAll) Allow(context.Context, string) (bool, error) { return true, nil }
func (allowAll) Limit() int64                                  { return 5 }

var (
	customer = access.Caller{ID: 10, Role: account.Customer, Status: account.Active}
	agent    = access.Caller{ID: 20, Role: account.Agent, Status: account.Active}
	admin    = access.Caller{ID: 30, Role: account.Admin, Status: account.Active}
)

// LifecycleIntegrationTestSuite runs the command handlers against PostgreSQL.
type LifecycleIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  uowFactory
	outbox   *outboxrepo.GormOutboxRepository
	now      time.Time
}

func TestLifecycleIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(LifecycleIntegrationTestSuite))
}

func (suite *LifecycleIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = uowFactory{postgres.NewGormUnitOfWorkFactory(database.DB)}
}

func (suite *LifecycleIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.outbox = outboxrepo.NewGormOutboxRepository(suite.database.DB, suite.clock())

	for _, a := range []struct {
		id   kernel.ID
		role account.Role
	}{{customer.ID, account.Customer}, {agent.ID, account.Agent}, {admin.ID, account.Admin}} {
		acc, err := account.RestoreAccount(a.id, "user"+a.id.String()+"@example.com", "Sam",
			a.role, account.Active, account.Available)
		suite.Require().NoError(err)
		dto := accountrepo.FromDomain(acc)
		suite.Require().NoError(suite.database.DB.Create(&dto).Error)
	}
	products := []productrepo.ProductDTO{
		{ID: 1, Name: "Biryani", Price: decimal.RequireFromString("10.00")},
		{ID: 2, Name: "Lassi", Price: decimal.RequireFromString("5.00")},
	}
	suite.Require().NoError(suite.database.DB.Create(&products).Error)
}

func (suite *LifecycleIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *LifecycleIntegrationTestSuite) clock() kernel.Clock {
	return kernel.ClockFunc(func() time.Time { return suite.now })
}

func (suite *LifecycleIntegrationTestSuite) createOrder() *order.Order {
	handler := commands.NewCreateOrderCommandHandler(suite.factory, suite.outbox, suite.clock(), kernel.NewRandomOTP, zap.NewNop())
	cmd, err := commands.NewCreateOrderCommand(customer, []commands.LineInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}, order.CashOnDelivery, nil)
	suite.Require().NoError(err)

	o, err := handler.Handle(context.Background(), cmd)
	suite.Require().NoError(err)
	return o
}

func (suite *LifecycleIntegrationTestSuite) assign(orderID kernel.ID) error {
	handler := commands.NewAssignAgentCommandHandler(suite.factory, suite.outbox, suite.clock(), zap.NewNop())
	cmd, err := commands.NewAssignAgentCommand(admin, orderID, agent.ID)
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), cmd)
	return err
}

func (suite *LifecycleIntegrationTestSuite) agentAvailability() account.Availability {
	a, err := accountrepo.NewGormAccountRepository(suite.database.DB).Get(context.Background(), agent.ID)
	suite.Require().NoError(err)
	return a.Availability()
}

func (suite *LifecycleIntegrationTestSuite) load(id kernel.ID) *order.Order {
	o, err := orderrepo.NewGormOrderRepository(suite.database.DB).Get(context.Background(), id)
	suite.Require().NoError(err)
	return o
}

func (suite *LifecycleIntegrationTestSuite) TestCreate_PersistsOrderAndNotification() {
	o := suite.createOrder()

	stored := suite.load(o.ID())
	suite.Equal("25.00", stored.TotalAmount().String())
	suite.Equal(order.Pending, stored.Status())
	suite.Regexp(`^\d{6}$`, stored.OTP().Code())

	pending, err := suite.outbox.ListPending(context.Background(), 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal("user10@example.com", pending[0].Message.Recipient)
	suite.Contains(pending[0].Message.Body, stored.OTP().Code())
}

func (suite *LifecycleIntegrationTestSuite) TestAssign_ConcurrentAssignmentsOfOneAgent() {
	first := suite.createOrder()
	second := suite.createOrder()

	results := make([]error, 2)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, id := range []kernel.ID{first.ID(), second.ID()} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results[i] = suite.assign(id)
		}()
	}
	close(start)
	wg.Wait()

	var won int
	for _, err := range results {
		if err == nil {
			won++
			continue
		}
		suite.ErrorIs(err, errs.ErrConflict)
	}
	suite.Equal(1, won)
	suite.Equal(account.Unavailable, suite.agentAvailability())

	var holding int64
	suite.Require().NoError(suite.database.DB.Model(&orderrepo.OrderDTO{}).
		Where("agent_id = ?", agent.ID.Int64()).Count(&holding).Error)
	suite.EqualValues(1, holding)
}

func (suite *LifecycleIntegrationTestSuite) TestAssign_SecondAssignmentLeavesAgentUntouched() {
	o := suite.createOrder()
	suite.Require().NoError(suite.assign(o.ID()))

	other := access.Caller{ID: 21, Role: account.Agent, Status: account.Active}
	acc, err := account.RestoreAccount(other.ID, "user21@example.com", "Kim", account.Agent, account.Active, account.Available)
	suite.Require().NoError(err)
	dto := accountrepo.FromDomain(acc)
	suite.Require().NoError(suite.database.DB.Create(&dto).Error)

	handler := commands.NewAssignAgentCommandHandler(suite.factory, suite.outbox, suite.clock(), zap.NewNop())
	cmd, err := commands.NewAssignAgentCommand(admin, o.ID(), other.ID)
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), cmd)

	suite.ErrorIs(err, errs.ErrConflict)
	stillFree, getErr := accountrepo.NewGormAccountRepository(suite.database.DB).Get(context.Background(), other.ID)
	suite.Require().NoError(getErr)
	suite.Equal(account.Available, stillFree.Availability())
}

func (suite *LifecycleIntegrationTestSuite) TestVerify_DeliversAndReleasesAgent() {
	o := suite.createOrder()
	suite.Require().NoError(suite.assign(o.ID()))
	code := suite.load(o.ID()).OTP().Code()

	handler := commands.NewVerifyDeliveryCommandHandler(suite.factory, allowAll{}, suite.outbox, suite.clock(), zap.NewNop())
	cmd, err := commands.NewVerifyDeliveryCommand(agent, o.ID(), code)
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), cmd)
	suite.Require().NoError(err)

	stored := suite.load(o.ID())
	suite.Equal(order.Delivered, stored.Status())
	suite.NotNil(stored.OTPConsumedAt())
	suite.Equal(account.Available, suite.agentAvailability())

	_, err = handler.Handle(context.Background(), cmd)
	suite.ErrorIs(err, errs.ErrInvalidOTP)
}

func (suite *LifecycleIntegrationTestSuite) TestCancel_AdminCancelsAssignedOrder() {
	o := suite.createOrder()
	suite.Require().NoError(suite.assign(o.ID()))
	suite.now = suite.now.Add(2 * time.Hour)

	handler := commands.NewCancelOrderCommandHandler(
		suite.factory,
		services.NewCancellationPolicy(services.DefaultCancellationWindow),
		suite.outbox,
		suite.clock(),
		zap.NewNop(),
	)
	cmd, err := commands.NewCancelOrderCommand(admin, o.ID(), "out of stock")
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), cmd)
	suite.Require().NoError(err)

	stored := suite.load(o.ID())
	suite.Equal(order.Cancelled, stored.Status())
	suite.Equal("out of stock", *stored.CancelReason())
	suite.Equal(account.Available, suite.agentAvailability())

	var cancellations int64
	suite.Require().NoError(suite.database.DB.Model(&outboxrepo.NotificationDTO{}).
		Where("subject LIKE ?", "%cancelled").Count(&cancellations).Error)
	suite.EqualValues(2, cancellations)
}

func (suite *LifecycleIntegrationTestSuite) TestCancel_CustomerWindow() {
	o := suite.createOrder()
	handler := commands.NewCancelOrderCommandHandler(
		suite.factory,
		services.NewCancellationPolicy(services.DefaultCancellationWindow),
		suite.outbox,
		suite.clock(),
		zap.NewNop(),
	)
	cmd, err := commands.NewCancelOrderCommand(customer, o.ID(), "")
	suite.Require().NoError(err)

	suite.now = suite.now.Add(31 * time.Minute)
	_, err = handler.Handle(context.Background(), cmd)
	suite.ErrorIs(err, errs.ErrWindowExpired)
	suite.Equal(order.Pending, suite.load(o.ID()).Status())
}

func (suite *LifecycleIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.AccountRepository().ClaimAgent(ctx, agent.ID))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(account.Available, suite.agentAvailability())
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}
