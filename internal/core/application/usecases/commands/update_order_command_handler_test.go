package commands_test

import (
	"errors"
	"strings"
	"testing"

	"otcdesk/internal/core/application/usecases/commands"
	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/core/domain/model/order"
	"otcdesk/internal/core/domain/model/user"
	"otcdesk/internal/core/domain/services"
	"otcdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	escrowHash = "0x" + strings.Repeat("a", 64)
	createHash = kernel.MustNewTxHash("0x" + strings.Repeat("c", 64))
)

func testTerms() order.Terms {
	return order.Terms{
		Asset:        kernel.AssetWBTC,
		QuoteToken:   kernel.AssetUSDT,
		Quantity:     decimal.NewFromInt(1),
		PricePerUnit: decimal.NewFromInt(97500),
		TotalAmount:  decimal.NewFromInt(97500),
	}
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.Snapshot{
		ID: 1, SellerID: 10, Terms: testTerms(), Status: order.Pending, CreateTxHash: createHash,
	})
	require.NoError(t, err)
	return o
}

func escrowedOrder(t *testing.T, counterparty int64) *order.Order {
	t.Helper()
	h := kernel.MustNewTxHash("0x" + strings.Repeat("f", 64))
	o, err := order.RestoreOrder(order.Snapshot{
		ID: 1, SellerID: 10, CounterpartyID: &counterparty, Terms: testTerms(),
		Status: order.Escrowed, CreateTxHash: createHash, EscrowTxHash: &h,
	})
	require.NoError(t, err)
	return o
}

func acceptCommand(t *testing.T, callerID int64) commands.UpdateOrderCommand {
	t.Helper()
	status := order.Escrowed
	hash := escrowHash
	cmd, err := commands.NewUpdateOrderCommand(1, user.NewCaller(callerID, user.RoleTrader), order.Patch{
		Status:       &status,
		EscrowTxHash: &hash,
	})
	require.NoError(t, err)
	return cmd
}

type updateOrderFixture struct {
	repo      *MockOrderRepository
	events    *MockOrderEventRepository
	uow       *MockUoW
	factory   *MockOrderUoWFactory
	publisher *MockPublisher
	observer  *MockObserver
	handler   commands.UpdateOrderCommandHandler
}

func newUpdateOrderFixture() *updateOrderFixture {
	f := &updateOrderFixture{
		repo:      new(MockOrderRepository),
		events:    new(MockOrderEventRepository),
		uow:       new(MockUoW),
		factory:   new(MockOrderUoWFactory),
		publisher: new(MockPublisher),
		observer:  new(MockObserver),
	}
	f.handler = commands.NewUpdateOrderCommandHandler(
		f.factory,
		services.NewOrderTransitionAuthority(),
		f.publisher,
		f.observer,
		zap.NewNop(),
	)
	return f
}

func (f *updateOrderFixture) assertExpectations(t *testing.T) {
	f.repo.AssertExpectations(t)
	f.events.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.observer.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newUpdateOrderFixture()

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("Get", ctx, int64(1)).Return(pendingOrder(t), nil).Once(),
		f.repo.On("Update", ctx, mock.AnythingOfType("*order.Order"), order.Pending).Return(nil).Once(),
		f.uow.On("OrderEventRepository").Return(f.events).Once(),
		f.events.On("Add", ctx, mock.MatchedBy(func(events []*order.Event) bool {
			return len(events) == 1 && events[0].Type() == order.EventOrderTaken
		})).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	f.observer.On("ObserveTransition", order.Pending, order.Escrowed, commands.OutcomeApplied).Once()
	f.publisher.On("Publish", ctx, mock.Anything).Once()

	updated, err := f.handler.Handle(ctx, acceptCommand(t, 20))

	require.NoError(t, err)
	assert.Equal(t, order.Escrowed, updated.Status())
	assert.Equal(t, int64(20), *updated.CounterpartyID())
	assert.Equal(t, escrowHash, updated.EscrowTxHash().String())
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_Rejected(t *testing.T) {
	ctx := t.Context()
	f := newUpdateOrderFixture()

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("Get", ctx, int64(1)).Return(pendingOrder(t), nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	f.observer.On("ObserveTransition", order.Pending, order.Escrowed, string(services.ReasonSellerSelfAccept)).Once()

	_, err := f.handler.Handle(ctx, acceptCommand(t, 10))

	require.ErrorIs(t, err, services.ErrTransitionForbidden)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	f := newUpdateOrderFixture()

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("Get", ctx, int64(1)).Return(nil, errs.NewObjectNotFoundError("order", int64(1))).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err := f.handler.Handle(ctx, acceptCommand(t, 20))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.observer.AssertNotCalled(t, "ObserveTransition", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_RetriesOnceAfterConflict(t *testing.T) {
	ctx := t.Context()
	f := newUpdateOrderFixture()
	conflict := errs.NewVersionIsInvalidError("order")

	f.factory.On("Create").Return(f.uow).Twice()
	f.uow.On("Begin", ctx).Return(nil).Twice()
	f.uow.On("OrderRepository").Return(f.repo).Twice()
	f.uow.On("Rollback", ctx).Return(nil).Twice()
	f.repo.On("Get", ctx, int64(1)).Return(pendingOrder(t), nil).Once()
	f.repo.On("Get", ctx, int64(1)).Return(pendingOrder(t), nil).Once()
	f.repo.On("Update", ctx, mock.Anything, order.Pending).Return(conflict).Once()
	f.repo.On("Update", ctx, mock.Anything, order.Pending).Return(nil).Once()
	f.uow.On("OrderEventRepository").Return(f.events).Once()
	f.events.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.observer.On("ObserveTransition", order.Pending, order.Escrowed, commands.OutcomeApplied).Once()
	f.publisher.On("Publish", ctx, mock.Anything).Once()

	updated, err := f.handler.Handle(ctx, acceptCommand(t, 20))

	require.NoError(t, err)
	assert.Equal(t, order.Escrowed, updated.Status())
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_LosesAcceptRace(t *testing.T) {
	ctx := t.Context()
	f := newUpdateOrderFixture()

	f.factory.On("Create").Return(f.uow).Twice()
	f.uow.On("Begin", ctx).Return(nil).Twice()
	f.uow.On("OrderRepository").Return(f.repo).Twice()
	f.uow.On("Rollback", ctx).Return(nil).Twice()
	f.repo.On("Get", ctx, int64(1)).Return(pendingOrder(t), nil).Once()
	f.repo.On("Update", ctx, mock.Anything, order.Pending).Return(errs.NewVersionIsInvalidError("order")).Once()
	f.repo.On("Get", ctx, int64(1)).Return(escrowedOrder(t, 30), nil).Once()
	f.observer.On("ObserveTransition", order.Escrowed, order.Escrowed, string(services.ReasonIllegalTransition)).Once()

	_, err := f.handler.Handle(ctx, acceptCommand(t, 20))

	rejection, ok := services.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, services.ReasonIllegalTransition, rejection.Reason)
	f.events.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_ConflictTwice(t *testing.T) {
	ctx := t.Context()
	f := newUpdateOrderFixture()
	conflict := errs.NewVersionIsInvalidError("order")

	f.factory.On("Create").Return(f.uow).Twice()
	f.uow.On("Begin", ctx).Return(nil).Twice()
	f.uow.On("OrderRepository").Return(f.repo).Twice()
	f.uow.On("Rollback", ctx).Return(nil).Twice()
	f.repo.On("Get", ctx, int64(1)).Return(pendingOrder(t), nil).Once()
	f.repo.On("Get", ctx, int64(1)).Return(pendingOrder(t), nil).Once()
	f.repo.On("Update", ctx, mock.Anything, order.Pending).Return(conflict).Twice()
	f.observer.On("ObserveTransition", order.Pending, order.Escrowed, commands.OutcomeConflict).Once()

	_, err := f.handler.Handle(ctx, acceptCommand(t, 20))

	require.ErrorIs(t, err, commands.ErrOrderUpdateConflict)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	f := newUpdateOrderFixture()

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("Get", ctx, int64(1)).Return(pendingOrder(t), nil).Once(),
		f.repo.On("Update", ctx, mock.Anything, order.Pending).Return(nil).Once(),
		f.uow.On("OrderEventRepository").Return(f.events).Once(),
		f.events.On("Add", ctx, mock.Anything).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err := f.handler.Handle(ctx, acceptCommand(t, 20))

	require.EqualError(t, err, "commit error")
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	f := newUpdateOrderFixture()

	_, err := f.handler.Handle(t.Context(), commands.UpdateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrUpdateOrderCommandIsNotConstructed)
	f.factory.AssertNotCalled(t, "Create")
}

func TestNewUpdateOrderCommand(t *testing.T) {
	_, err := commands.NewUpdateOrderCommand(0, user.NewCaller(1, user.RoleTrader), order.Patch{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewUpdateOrderCommand(1, user.Caller{}, order.Patch{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	cmd, err := commands.NewUpdateOrderCommand(1, user.NewCaller(1, user.RoleAdmin), order.Patch{})
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.True(t, cmd.Caller().IsAdmin())
}
