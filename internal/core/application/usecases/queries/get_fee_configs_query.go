package queries

import (
	"errors"
	"time"

	"otcdesk/internal/pkg/guard"
)

var ErrGetFeeConfigsQueryIsNotConstructed = errors.New(
	"GetFeeConfigsQuery must be created via NewGetFeeConfigsQuery constructor",
)

type GetFeeConfigsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetFeeConfigsQuery() GetFeeConfigsQuery {
	return GetFeeConfigsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetFeeConfigsQuery) Validate() error {
	return q.guard.Validate(ErrGetFeeConfigsQueryIsNotConstructed)
}

type FeeConfigView struct {
	Asset     string
	FeeBps    int
	SpreadBps int
	UpdatedAt time.Time
}
