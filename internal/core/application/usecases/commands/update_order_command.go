package commands

import (
	"errors"

	"otcdesk/internal/core/domain/model/order"
	"otcdesk/internal/core/domain/model/user"
	"otcdesk/internal/pkg/errs"
	"otcdesk/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand asks to apply a parsed patch to one order on behalf of a
// caller. The patch is not judged here; admissibility belongs to the order
// transition authority.
//
// Example:
//
//	status := order.Escrowed
//	cmd, err := NewUpdateOrderCommand(42, user.NewCaller(7, user.RoleTrader), order.Patch{
//	    Status:       &status,
//	    EscrowTxHash: &escrowHash,
//	})
type UpdateOrderCommand struct {
	orderID int64
	caller  user.Caller
	patch   order.Patch

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(orderID int64, caller user.Caller, patch order.Patch) (UpdateOrderCommand, error) {
	if orderID <= 0 {
		return UpdateOrderCommand{}, errs.NewValueIsRequiredError("order id")
	}
	if caller.ID <= 0 {
		return UpdateOrderCommand{}, errs.NewValueIsRequiredError("caller")
	}
	return UpdateOrderCommand{
		orderID: orderID,
		caller:  caller,
		patch:   patch,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c UpdateOrderCommand) Caller() user.Caller {
	return c.caller
}

func (c UpdateOrderCommand) Patch() order.Patch {
	return c.patch
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}
