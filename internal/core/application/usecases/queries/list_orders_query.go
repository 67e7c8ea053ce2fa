package queries

import (
	"errors"

	"otcdesk/internal/pkg/errs"
	"otcdesk/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

const (
	TraderListLimit = 100
	AdminListLimit  = 200
)

// ListOrdersFilter narrows an order listing. Zero fields do not filter.
// Values are matched verbatim, so an unknown status yields an empty page.
type ListOrdersFilter struct {
	Statuses   []string
	Asset      string
	QuoteToken string
	SellerID   int64
}

// ListOrdersQuery pages through orders, newest first.
type ListOrdersQuery struct {
	filter ListOrdersFilter
	limit  int
	guard  guard.ConstructorGuard
}

func NewListOrdersQuery(filter ListOrdersFilter, limit int) (ListOrdersQuery, error) {
	if limit <= 0 || limit > AdminListLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, AdminListLimit)
	}
	if filter.SellerID < 0 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("seller id")
	}
	filter.Statuses = append([]string(nil), filter.Statuses...)
	return ListOrdersQuery{filter: filter, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Filter() ListOrdersFilter {
	f := q.filter
	f.Statuses = append([]string(nil), q.filter.Statuses...)
	return f
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}
