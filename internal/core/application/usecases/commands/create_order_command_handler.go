package commands

import (
	"context"
	"errors"
	"time"

	"otcdesk/internal/core/domain/model/order"
	"otcdesk/internal/core/ports"
	"otcdesk/internal/pkg/errs"
)

// ErrKYCNotApproved is returned when a user without approved KYC tries to
// mirror an order.
var ErrKYCNotApproved = errors.New("KYC not approved")

// CreateOrderResult reports whether the order was written by this call.
type CreateOrderResult struct {
	Order           *order.Order
	AlreadyMirrored bool
}

// CreateOrderCommandHandler writes the mirror and its ORDER_CREATED event in
// one transaction, then publishes the event.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.OrderEventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle is idempotent per on-chain id: mirroring an existing order returns
// it unchanged with AlreadyMirrored set, also when a concurrent mirror wins
// the insert.
//
// Returns:
//   - CreateOrderResult: the stored order and whether it predated this call
//   - error: ErrKYCNotApproved, errs.ObjectNotFoundError for an unknown
//     seller, or infrastructure errors
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (CreateOrderResult, error) {
	if err := command.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	seller, err := uow.UserRepository().Get(ctx, command.Caller().ID)
	if err != nil {
		return CreateOrderResult{}, err
	}
	if !seller.CanTrade() {
		return CreateOrderResult{}, ErrKYCNotApproved
	}

	orderRepo := uow.OrderRepository()

	existing, err := orderRepo.Get(ctx, command.OrderID())
	switch {
	case err == nil:
		return CreateOrderResult{Order: existing, AlreadyMirrored: true}, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return CreateOrderResult{}, err
	}

	mirrored, err := order.NewOrder(
		command.OrderID(),
		seller.ID(),
		command.Terms(),
		command.CreateTxHash(),
		time.Now().UTC(),
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = orderRepo.Add(ctx, mirrored); err != nil {
		if !errors.Is(err, errs.ErrObjectAlreadyExists) {
			return CreateOrderResult{}, err
		}
		// A concurrent mirror of the same id committed first.
		existing, err = orderRepo.Get(ctx, command.OrderID())
		if err != nil {
			return CreateOrderResult{}, err
		}
		return CreateOrderResult{Order: existing, AlreadyMirrored: true}, nil
	}

	created, err := order.CreatedEvent(mirrored)
	if err != nil {
		return CreateOrderResult{}, err
	}
	if err = uow.OrderEventRepository().Add(ctx, created); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	h.publisher.Publish(ctx, created)
	return CreateOrderResult{Order: mirrored}, nil
}
