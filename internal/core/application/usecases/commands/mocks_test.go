package commands_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) ReplaceLines(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(
	ctx context.Context,
	customerID kernel.ID,
	limit, offset int,
) ([]*order.Order, error) {
	args := m.Called(ctx, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Get(ctx context.Context, id kernel.ID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) ClaimAgent(ctx context.Context, id kernel.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountRepository) ReleaseAgent(ctx context.Context, id kernel.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Get(ctx context.Context, id kernel.ID) (catalog.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Product), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// RetryingUoWFactory classifies errors as transient the way the postgres factory does.
type RetryingUoWFactory struct {
	MockUoWFactory
	transient error
}

func (f *RetryingUoWFactory) IsTransient(err error) bool {
	return err == f.transient
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, msg ports.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockAttemptLimiter struct{ mock.Mock }

func (m *MockAttemptLimiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptLimiter) Limit() int64 {
	return 5
}

var (
	now        = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fixedClock = kernel.ClockFunc(func() time.Time { return now })

	customerCaller = access.Caller{ID: 10, Role: account.Customer, Status: account.Active}
	otherCustomer  = access.Caller{ID: 11, Role: account.Customer, Status: account.Active}
	adminCaller    = access.Caller{ID: 30, Role: account.Admin, Status: account.Active}
	agentCaller    = access.Caller{ID: 20, Role: account.Agent, Status: account.Active}
)

func mustAccount(t *testing.T, id kernel.ID, role account.Role, availability account.Availability) *account.Account {
	t.Helper()
	a, err := account.RestoreAccount(id, "user"+id.String()+"@example.com", "User", role, account.Active, availability)
	require.NoError(t, err)
	return a
}

func mustProduct(t *testing.T, id kernel.ID, price string) catalog.Product {
	t.Helper()
	p, err := catalog.RestoreProduct(id, "Product "+id.String(), kernel.MustMoney(price))
	require.NoError(t, err)
	return p
}

func fixedOTP(t *testing.T) commands.OTPGenerator {
	t.Helper()
	return func() (kernel.OTP, error) {
		return kernel.RestoreOTP("123456")
	}
}

// persistedOrder builds an order created at createdAt with id 1, in the given status.
func persistedOrder(t *testing.T, createdAt time.Time, status order.Status) *order.Order {
	t.Helper()
	line, err := order.NewLine(kernel.ID(1), 2, kernel.MustMoney("10.00"))
	require.NoError(t, err)
	otp, err := kernel.RestoreOTP("123456")
	require.NoError(t, err)

	o, err := order.NewOrder(customerCaller.ID, []order.Line{line}, order.CashOnDelivery, otp, createdAt)
	require.NoError(t, err)
	require.NoError(t, o.MarkPersisted(kernel.ID(1)))

	switch status {
	case order.Assigned:
		require.NoError(t, o.AssignAgent(agentCaller.ID, createdAt))
	case order.Delivered:
		require.NoError(t, o.AssignAgent(agentCaller.ID, createdAt))
		require.NoError(t, o.ConfirmDelivery(agentCaller.ID, "123456", createdAt))
	case order.Cancelled:
		_, err = o.Cancel("", createdAt)
		require.NoError(t, err)
	}
	return o
}
