package order

import (
	"errors"
	"fmt"
	"time"

	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/pkg/errs"
)

var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

// EventType classifies an entry of an order's audit trail.
type EventType string

const (
	EventOrderCreated      EventType = "ORDER_CREATED"
	EventOrderTaken        EventType = "ORDER_TAKEN"
	EventDeliverySubmitted EventType = "DELIVERY_SUBMITTED"
	EventReleased          EventType = "RELEASED"
	EventOrderCancelled    EventType = "ORDER_CANCELLED"
	EventRefunded          EventType = "REFUNDED"
	EventOrderDisputed     EventType = "ORDER_DISPUTED"
	EventTradeIDAttached   EventType = "TRADE_ID_ATTACHED"
)

// TransitionEventType names the event recorded for the edge from -> to.
// Cancelling a disputed order is a refund; cancelling a pending one is not.
func TransitionEventType(from, to Status) (EventType, error) {
	switch {
	case from == Pending && to == Escrowed:
		return EventOrderTaken, nil
	case from == Escrowed && to == Delivered:
		return EventDeliverySubmitted, nil
	case (from == Delivered || from == Disputed) && to == Completed:
		return EventReleased, nil
	case from == Pending && to == Cancelled:
		return EventOrderCancelled, nil
	case from == Disputed && to == Cancelled:
		return EventRefunded, nil
	case from == Delivered && to == Disputed:
		return EventOrderDisputed, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"transition",
			fmt.Errorf("%s -> %s is not an edge of the order lifecycle", from, to),
		)
	}
}

// Event is an immutable audit record appended in the same transaction as the
// order change it describes.
type Event struct {
	id        kernel.UUID
	orderID   int64
	eventType EventType
	txHash    *kernel.TxHash
	tradeID   *int64
	actorID   int64
	createdAt time.Time

	isConstructed bool
}

func NewEvent(
	orderID int64,
	eventType EventType,
	actorID int64,
	txHash *kernel.TxHash,
	tradeID *int64,
	now time.Time,
) (*Event, error) {
	return RestoreEvent(kernel.NewUUID(), orderID, eventType, actorID, txHash, tradeID, now)
}

func RestoreEvent(
	id kernel.UUID,
	orderID int64,
	eventType EventType,
	actorID int64,
	txHash *kernel.TxHash,
	tradeID *int64,
	createdAt time.Time,
) (*Event, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if orderID <= 0 {
		return nil, errs.NewValueIsRequiredError("order_id")
	}
	if actorID <= 0 {
		return nil, errs.NewValueIsRequiredError("actor_id")
	}
	if eventType == "" {
		return nil, errs.NewValueIsRequiredError("event_type")
	}
	return &Event{
		id:            id,
		orderID:       orderID,
		eventType:     eventType,
		txHash:        copyTxHash(txHash),
		tradeID:       copyInt64(tradeID),
		actorID:       actorID,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// CreatedEvent is the first entry of every order's trail.
func CreatedEvent(o *Order) (*Event, error) {
	h := o.CreateTxHash()
	return NewEvent(o.ID(), EventOrderCreated, o.SellerID(), &h, nil, o.CreatedAt())
}

// EventsForPlan returns the audit records for a plan that was just applied to o
// by actorID. A transition yields one event carrying its evidence; a trade id
// attached outside an acceptance adds a TRADE_ID_ATTACHED entry.
func EventsForPlan(o *Order, plan MutationPlan, actorID int64, now time.Time) ([]*Event, error) {
	var events []*Event
	tradeID, hasTradeID := plan.TradeID()

	if to, ok := plan.Status(); ok {
		eventType, err := TransitionEventType(plan.ExpectedStatus(), to)
		if err != nil {
			return nil, err
		}

		var txHash *kernel.TxHash
		switch eventType {
		case EventOrderTaken:
			if h, ok := plan.EscrowTxHash(); ok {
				txHash = &h
			}
		case EventDeliverySubmitted:
			if h, ok := plan.DeliveryTxHash(); ok {
				txHash = &h
			}
		default:
		}

		event, err := NewEvent(o.ID(), eventType, actorID, txHash, o.TradeID(), now)
		if err != nil {
			return nil, err
		}
		events = append(events, event)

		if eventType == EventOrderTaken {
			return events, nil
		}
	}

	if hasTradeID {
		event, err := NewEvent(o.ID(), EventTradeIDAttached, actorID, nil, &tradeID, now)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

func (e *Event) ID() kernel.UUID {
	return e.id
}

func (e *Event) OrderID() int64 {
	return e.orderID
}

func (e *Event) Type() EventType {
	return e.eventType
}

func (e *Event) TxHash() *kernel.TxHash {
	return copyTxHash(e.txHash)
}

func (e *Event) TradeID() *int64 {
	return copyInt64(e.tradeID)
}

func (e *Event) ActorID() int64 {
	return e.actorID
}

func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}
