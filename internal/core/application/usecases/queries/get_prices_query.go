package queries

import (
	"context"
	"errors"

	"otcdesk/internal/core/ports"
	"otcdesk/internal/pkg/guard"
)

var ErrGetPricesQueryIsNotConstructed = errors.New(
	"GetPricesQuery must be created via NewGetPricesQuery constructor",
)

type GetPricesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPricesQuery() GetPricesQuery {
	return GetPricesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetPricesQuery) Validate() error {
	return q.guard.Validate(ErrGetPricesQueryIsNotConstructed)
}

// GetPricesQueryHandler serves quotes from the price board; it never touches
// the database.
type GetPricesQueryHandler struct {
	board ports.PriceBoard
}

func NewGetPricesQueryHandler(board ports.PriceBoard) GetPricesQueryHandler {
	return GetPricesQueryHandler{board: board}
}

func (h GetPricesQueryHandler) Handle(ctx context.Context, query GetPricesQuery) ([]ports.Price, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.board.Prices(ctx)
}
