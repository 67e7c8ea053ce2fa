package order_test

import (
	"testing"
	"time"

	"otcdesk/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionEventType(t *testing.T) {
	tests := []struct {
		from, to order.Status
		want     order.EventType
	}{
		{order.Pending, order.Escrowed, order.EventOrderTaken},
		{order.Escrowed, order.Delivered, order.EventDeliverySubmitted},
		{order.Delivered, order.Completed, order.EventReleased},
		{order.Disputed, order.Completed, order.EventReleased},
		{order.Pending, order.Cancelled, order.EventOrderCancelled},
		{order.Disputed, order.Cancelled, order.EventRefunded},
		{order.Delivered, order.Disputed, order.EventOrderDisputed},
	}
	for _, tt := range tests {
		got, err := order.TransitionEventType(tt.from, tt.to)

		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.from, tt.to)
	}

	_, err := order.TransitionEventType(order.Completed, order.Cancelled)
	require.Error(t, err)
}

func TestEventsForPlan(t *testing.T) {
	later := fixedNow.Add(time.Hour)

	t.Run("should record acceptance with escrow evidence", func(t *testing.T) {
		o, err := order.NewOrder(1, 10, validTerms(), createHash, fixedNow)
		require.NoError(t, err)
		plan := order.NewMutationPlan(order.Pending).
			WithStatus(order.Escrowed).WithCounterpartyID(20).WithEscrowTxHash(escrowHash).WithTradeID(4)
		require.NoError(t, o.Apply(plan, later))

		events, err := order.EventsForPlan(o, plan, 20, later)

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, order.EventOrderTaken, events[0].Type())
		assert.True(t, events[0].TxHash().IsEqual(escrowHash))
		assert.Equal(t, int64(4), *events[0].TradeID())
		assert.Equal(t, int64(20), events[0].ActorID())
		assert.NoError(t, events[0].ID().Validate())
	})

	t.Run("should add a trade id entry for admin attachment", func(t *testing.T) {
		o, err := order.RestoreOrder(order.Snapshot{
			ID: 1, SellerID: 10, CounterpartyID: int64Ptr(20), Terms: validTerms(), Status: order.Disputed,
			CreateTxHash: createHash, EscrowTxHash: hashPtr(escrowHash), DeliveryTxHash: hashPtr(deliveryHash),
		})
		require.NoError(t, err)
		plan := order.NewMutationPlan(order.Disputed).WithStatus(order.Cancelled).WithTradeID(8)
		require.NoError(t, o.Apply(plan, later))

		events, err := order.EventsForPlan(o, plan, 1, later)

		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, order.EventRefunded, events[0].Type())
		assert.Nil(t, events[0].TxHash())
		assert.Equal(t, order.EventTradeIDAttached, events[1].Type())
		assert.Equal(t, int64(8), *events[1].TradeID())
	})
}

func TestCreatedEvent(t *testing.T) {
	o, err := order.NewOrder(3, 10, validTerms(), createHash, fixedNow)
	require.NoError(t, err)

	event, err := order.CreatedEvent(o)

	require.NoError(t, err)
	assert.Equal(t, order.EventOrderCreated, event.Type())
	assert.Equal(t, int64(10), event.ActorID())
	assert.Equal(t, int64(3), event.OrderID())
	assert.True(t, event.TxHash().IsEqual(createHash))
	assert.Equal(t, fixedNow, event.CreatedAt())
}
