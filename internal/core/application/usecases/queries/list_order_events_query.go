package queries

import (
	"errors"
	"time"

	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/pkg/errs"
	"otcdesk/internal/pkg/guard"
)

var ErrListOrderEventsQueryIsNotConstructed = errors.New(
	"ListOrderEventsQuery must be created via NewListOrderEventsQuery constructor",
)

// ListOrderEventsQuery reads the audit trail of one order.
type ListOrderEventsQuery struct {
	orderID int64
	guard   guard.ConstructorGuard
}

func NewListOrderEventsQuery(orderID int64) (ListOrderEventsQuery, error) {
	if orderID <= 0 {
		return ListOrderEventsQuery{}, errs.NewValueIsRequiredError("order id")
	}
	return ListOrderEventsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrderEventsQuery) OrderID() int64 {
	return q.orderID
}

func (q ListOrderEventsQuery) Validate() error {
	return q.guard.Validate(ErrListOrderEventsQueryIsNotConstructed)
}

type OrderEventView struct {
	ID        kernel.UUID
	OrderID   int64
	EventType string
	TxHash    *string
	TradeID   *int64
	ActorID   int64
	CreatedAt time.Time
}
