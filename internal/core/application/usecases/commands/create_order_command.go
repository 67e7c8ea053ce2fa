package commands

import (
	"errors"

	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/core/domain/model/order"
	"otcdesk/internal/core/domain/model/user"
	"otcdesk/internal/pkg/errs"
	"otcdesk/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand mirrors an order that already exists on-chain.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    42, user.NewCaller(7, user.RoleTrader), createTxHash,
//	    "WBTC", "USDC",
//	    decimal.NewFromInt(1), decimal.NewFromInt(97500), decimal.NewFromInt(97500),
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct {
	orderID      int64
	caller       user.Caller
	createTxHash kernel.TxHash
	terms        order.Terms

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand parses the raw request values. Numeric bounds are
// checked again by order.NewOrder; they are repeated here so that a bad
// request fails before a transaction is opened.
func NewCreateOrderCommand(
	orderID int64,
	caller user.Caller,
	createTxHash string,
	asset, quoteToken string,
	quantity, pricePerUnit, totalAmount decimal.Decimal,
) (CreateOrderCommand, error) {
	if orderID <= 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("id")
	}
	if caller.ID <= 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("caller")
	}
	hash, err := kernel.NewTxHash(createTxHash)
	if err != nil {
		return CreateOrderCommand{}, err
	}
	base, err := kernel.ParseAsset(asset)
	if err != nil {
		return CreateOrderCommand{}, err
	}
	quote, err := kernel.ParseAsset(quoteToken)
	if err != nil {
		return CreateOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("quote_token", err)
	}
	if !quantity.IsPositive() {
		return CreateOrderCommand{}, errs.NewValueIsInvalidError("quantity")
	}
	if pricePerUnit.IsNegative() {
		return CreateOrderCommand{}, errs.NewValueIsInvalidError("price_per_unit")
	}
	if totalAmount.IsNegative() {
		return CreateOrderCommand{}, errs.NewValueIsInvalidError("total_amount")
	}

	return CreateOrderCommand{
		orderID:      orderID,
		caller:       caller,
		createTxHash: hash,
		terms: order.Terms{
			Asset:        base,
			QuoteToken:   quote,
			Quantity:     quantity,
			PricePerUnit: pricePerUnit,
			TotalAmount:  totalAmount,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c CreateOrderCommand) Caller() user.Caller {
	return c.caller
}

func (c CreateOrderCommand) CreateTxHash() kernel.TxHash {
	return c.createTxHash
}

func (c CreateOrderCommand) Terms() order.Terms {
	return c.terms
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}
