package queries

import (
	"errors"

	"otcdesk/internal/pkg/errs"
	"otcdesk/internal/pkg/guard"
)

var ErrGetUserQueryIsNotConstructed = errors.New(
	"GetUserQuery must be created via NewGetUserQuery constructor",
)

// GetUserQuery resolves a session subject. The wallet must match as well as
// the id, so a token minted for a wallet that was since reassigned is refused.
type GetUserQuery struct {
	userID int64
	wallet string
	guard  guard.ConstructorGuard
}

func NewGetUserQuery(userID int64, wallet string) (GetUserQuery, error) {
	if userID <= 0 {
		return GetUserQuery{}, errs.NewValueIsRequiredError("user id")
	}
	if wallet == "" {
		return GetUserQuery{}, errs.NewValueIsRequiredError("wallet")
	}
	return GetUserQuery{userID: userID, wallet: wallet, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserQuery) UserID() int64 {
	return q.userID
}

func (q GetUserQuery) Wallet() string {
	return q.wallet
}

func (q GetUserQuery) Validate() error {
	return q.guard.Validate(ErrGetUserQueryIsNotConstructed)
}
