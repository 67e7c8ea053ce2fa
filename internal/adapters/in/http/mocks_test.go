package http_test

import (
	"context"

	"otcdesk/internal/core/application/usecases/commands"
	"otcdesk/internal/core/application/usecases/queries"
	"otcdesk/internal/core/domain/model/fee"
	"otcdesk/internal/core/domain/model/order"
	"otcdesk/internal/core/domain/model/user"
	"otcdesk/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockConnectWallet struct{ mock.Mock }

func (m *MockConnectWallet) Handle(ctx context.Context, cmd commands.ConnectWalletCommand) (*user.User, error) {
	args := m.Called(ctx, cmd)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockCreateOrder struct{ mock.Mock }

func (m *MockCreateOrder) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CreateOrderResult), args.Error(1)
}

type MockUpdateOrder struct{ mock.Mock }

func (m *MockUpdateOrder) Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockUpdateUser struct{ mock.Mock }

func (m *MockUpdateUser) Handle(ctx context.Context, cmd commands.UpdateUserCommand) (*user.User, error) {
	args := m.Called(ctx, cmd)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockUpdateFeeConfig struct{ mock.Mock }

func (m *MockUpdateFeeConfig) Handle(ctx context.Context, cmd commands.UpdateFeeConfigCommand) (*fee.Config, error) {
	args := m.Called(ctx, cmd)
	c, _ := args.Get(0).(*fee.Config)
	return c, args.Error(1)
}

type MockGetUser struct{ mock.Mock }

func (m *MockGetUser) Handle(ctx context.Context, q queries.GetUserQuery) (queries.UserView, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.UserView), args.Error(1)
}

type MockGetOrder struct{ mock.Mock }

func (m *MockGetOrder) Handle(ctx context.Context, q queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

type MockListOrders struct{ mock.Mock }

func (m *MockListOrders) Handle(ctx context.Context, q queries.ListOrdersQuery) ([]queries.OrderView, error) {
	args := m.Called(ctx, q)
	views, _ := args.Get(0).([]queries.OrderView)
	return views, args.Error(1)
}

type MockListOrderEvents struct{ mock.Mock }

func (m *MockListOrderEvents) Handle(ctx context.Context, q queries.ListOrderEventsQuery) ([]queries.OrderEventView, error) {
	args := m.Called(ctx, q)
	views, _ := args.Get(0).([]queries.OrderEventView)
	return views, args.Error(1)
}

type MockListUsers struct{ mock.Mock }

func (m *MockListUsers) Handle(ctx context.Context, q queries.ListUsersQuery) ([]queries.UserView, error) {
	args := m.Called(ctx, q)
	views, _ := args.Get(0).([]queries.UserView)
	return views, args.Error(1)
}

type MockGetFeeConfigs struct{ mock.Mock }

func (m *MockGetFeeConfigs) Handle(ctx context.Context, q queries.GetFeeConfigsQuery) ([]queries.FeeConfigView, error) {
	args := m.Called(ctx, q)
	views, _ := args.Get(0).([]queries.FeeConfigView)
	return views, args.Error(1)
}

type MockGetPrices struct{ mock.Mock }

func (m *MockGetPrices) Handle(ctx context.Context, q queries.GetPricesQuery) ([]ports.Price, error) {
	args := m.Called(ctx, q)
	prices, _ := args.Get(0).([]ports.Price)
	return prices, args.Error(1)
}
