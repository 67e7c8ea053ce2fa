package commands

import (
	"errors"

	"otcdesk/internal/core/domain/model/user"
	"otcdesk/internal/pkg/errs"
	"otcdesk/internal/pkg/guard"
)

var (
	ErrUpdateUserCommandIsNotConstructed = errors.New(
		"UpdateUserCommand must be created via NewUpdateUserCommand constructor",
	)

	// ErrNoValidUserUpdates is returned when none of the supplied values is a
	// recognized tier, KYC status or role.
	ErrNoValidUserUpdates = errors.New("no valid updates")
)

// UpdateUserCommand is an admin change to a user's KYC state or role.
type UpdateUserCommand struct {
	userID int64
	update user.Update
	guard  guard.ConstructorGuard
}

// NewUpdateUserCommand keeps only recognized values; unrecognized ones are
// dropped rather than rejected.
func NewUpdateUserCommand(userID int64, kycTier, kycStatus, role *string) (UpdateUserCommand, error) {
	if userID <= 0 {
		return UpdateUserCommand{}, errs.NewValueIsRequiredError("user id")
	}

	var up user.Update
	if kycTier != nil {
		if tier, err := user.ParseKYCTier(*kycTier); err == nil {
			up.KYCTier = &tier
		}
	}
	if kycStatus != nil {
		if status, err := user.ParseKYCStatus(*kycStatus); err == nil {
			up.KYCStatus = &status
		}
	}
	if role != nil {
		if r, err := user.ParseRole(*role); err == nil {
			up.Role = &r
		}
	}
	if up.IsEmpty() {
		return UpdateUserCommand{}, ErrNoValidUserUpdates
	}

	return UpdateUserCommand{userID: userID, update: up, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateUserCommand) UserID() int64 {
	return c.userID
}

func (c UpdateUserCommand) Update() user.Update {
	return c.update
}

func (c UpdateUserCommand) Validate() error {
	return c.guard.Validate(ErrUpdateUserCommandIsNotConstructed)
}
