package commands_test

import (
	"context"

	"otcdesk/internal/core/application/usecases/commands"
	"otcdesk/internal/core/domain/model/fee"
	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/core/domain/model/order"
	"otcdesk/internal/core/domain/model/user"
	"otcdesk/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderEventRepository struct{ mock.Mock }

func (m *MockOrderEventRepository) Add(ctx context.Context, events ...*order.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByWallet(ctx context.Context, wallet kernel.WalletAddress) (*user.User, error) {
	args := m.Called(ctx, wallet)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockFeeRepository struct{ mock.Mock }

func (m *MockFeeRepository) Get(ctx context.Context, asset kernel.Asset) (*fee.Config, error) {
	args := m.Called(ctx, asset)
	c, _ := args.Get(0).(*fee.Config)
	return c, args.Error(1)
}

func (m *MockFeeRepository) Save(ctx context.Context, c *fee.Config) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockUoW satisfies every unit of work interface of the commands package.
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

func (m *MockUoW) OrderEventRepository() ports.OrderEventRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderEventRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockUoW) FeeRepository() ports.FeeRepository {
	args := m.Called()
	return args.Get(0).(ports.FeeRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockFeeUoWFactory struct{ mock.Mock }

func (m *MockFeeUoWFactory) Create() commands.FeeUoW {
	args := m.Called()
	return args.Get(0).(commands.FeeUoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...*order.Event) {
	m.Called(ctx, events)
}

type MockObserver struct{ mock.Mock }

func (m *MockObserver) ObserveTransition(from, to order.Status, outcome string) {
	m.Called(from, to, outcome)
}
