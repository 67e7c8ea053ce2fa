package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"otcdesk/internal/core/domain/model/order"
	"otcdesk/internal/core/domain/services"
	"otcdesk/internal/core/ports"
	"otcdesk/internal/pkg/errs"

	"go.uber.org/zap"
)

// ErrOrderUpdateConflict is returned when the order kept changing under the
// command on every attempt.
var ErrOrderUpdateConflict = errors.New("order was modified concurrently, retry the request")

const (
	maxUpdateAttempts = 2

	OutcomeApplied  = "APPLIED"
	OutcomeConflict = "CONFLICT"
)

// UpdateOrderCommandHandler runs read -> decide -> conditional write for one
// order. The write only lands if the order still has the status the decision
// was made against; otherwise the whole cycle is retried once against a fresh
// read and then a conflict is reported. Of two callers racing to accept the
// same order, the loser re-reads an ESCROWED order and gets a clean
// ILLEGAL_TRANSITION rejection.
//
// Example:
//
//	cmd, _ := NewUpdateOrderCommand(42, caller, patch)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrOrderUpdateConflict):
//	    // 409, the client may retry
//	case err != nil:
//	    if rejection, ok := services.AsRejection(err); ok {
//	        log.Printf("rejected: %s", rejection.Reason)
//	    }
//	default:
//	    log.Printf("order %d is now %s", updated.ID(), updated.Status())
//	}
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	authority  *services.OrderTransitionAuthority
	publisher  ports.OrderEventPublisher
	observer   ports.TransitionObserver
	logger     *zap.Logger
}

// NewUpdateOrderCommandHandler wires the handler. The observer sees every
// decision, applied or not; the publisher only sees committed events.
func NewUpdateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	authority *services.OrderTransitionAuthority,
	publisher ports.OrderEventPublisher,
	observer ports.TransitionObserver,
	logger *zap.Logger,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		authority:  authority,
		publisher:  publisher,
		observer:   observer,
		logger:     logger.With(zap.String("component", "update_order")),
	}
}

// Handle returns the updated order. Errors are a *services.Rejection, an
// errs.ObjectNotFoundError, ErrOrderUpdateConflict, or infrastructure errors.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, command UpdateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var lastFrom, lastTo order.Status
	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		updated, plan, events, err := h.attempt(ctx, command)
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			lastFrom = plan.ExpectedStatus()
			lastTo, _ = plan.Status()
			h.logger.Warn("order changed between read and write",
				zap.Int64("order_id", command.OrderID()),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			continue
		}
		if err != nil {
			if rejection, ok := services.AsRejection(err); ok {
				h.observer.ObserveTransition(rejection.From, rejection.To, string(rejection.Reason))
			}
			return nil, err
		}

		to, _ := plan.Status()
		h.observer.ObserveTransition(plan.ExpectedStatus(), to, OutcomeApplied)
		h.publisher.Publish(ctx, events...)
		return updated, nil
	}

	h.observer.ObserveTransition(lastFrom, lastTo, OutcomeConflict)
	return nil, fmt.Errorf("%w: order %d", ErrOrderUpdateConflict, command.OrderID())
}

func (h UpdateOrderCommandHandler) attempt(
	ctx context.Context,
	command UpdateOrderCommand,
) (*order.Order, order.MutationPlan, []*order.Event, error) {
	var plan order.MutationPlan

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, plan, nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	current, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, plan, nil, err
	}

	plan, err = h.authority.Decide(command.Caller(), current, command.Patch())
	if err != nil {
		return nil, plan, nil, err
	}

	now := time.Now().UTC()
	if err = current.Apply(plan, now); err != nil {
		return nil, plan, nil, err
	}

	if err = orderRepo.Update(ctx, current, plan.ExpectedStatus()); err != nil {
		return nil, plan, nil, err
	}

	events, err := order.EventsForPlan(current, plan, command.Caller().ID, now)
	if err != nil {
		return nil, plan, nil, err
	}
	if err = uow.OrderEventRepository().Add(ctx, events...); err != nil {
		return nil, plan, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, plan, nil, err
	}

	return current, plan, events, nil
}
