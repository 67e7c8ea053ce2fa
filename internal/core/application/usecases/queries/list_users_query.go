package queries

import (
	"errors"
	"time"

	"otcdesk/internal/pkg/guard"
)

var ErrListUsersQueryIsNotConstructed = errors.New(
	"ListUsersQuery must be created via NewListUsersQuery constructor",
)

// ListUsersQuery lists users newest first. Empty filters do not filter.
type ListUsersQuery struct {
	role      string
	kycStatus string
	guard     guard.ConstructorGuard
}

func NewListUsersQuery(role, kycStatus string) ListUsersQuery {
	return ListUsersQuery{role: role, kycStatus: kycStatus, guard: guard.NewConstructorGuard()}
}

func (q ListUsersQuery) Role() string {
	return q.role
}

func (q ListUsersQuery) KYCStatus() string {
	return q.kycStatus
}

func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

type UserView struct {
	ID            int64
	WalletAddress string
	Role          string
	KYCTier       string
	KYCStatus     string
	CompanyName   *string
	CreatedAt     time.Time
}
