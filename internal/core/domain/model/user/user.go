package user

import (
	"errors"
	"time"

	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/pkg/errs"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is a wallet holder known to the desk.
type User struct {
	id            int64
	walletAddress kernel.WalletAddress
	role          Role
	kycTier       KYCTier
	kycStatus     KYCStatus
	companyName   *string
	createdAt     time.Time

	isConstructed bool
}

// NewUser registers a wallet on first connect. Until storage assigns an id the
// user has id 0. New users are approved tier-1 traders.
func NewUser(wallet kernel.WalletAddress, now time.Time) (*User, error) {
	if err := wallet.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("wallet_address", err)
	}
	return &User{
		walletAddress: wallet,
		role:          RoleTrader,
		kycTier:       KYCTier1,
		kycStatus:     KYCApproved,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

func RestoreUser(
	id int64,
	wallet kernel.WalletAddress,
	role Role,
	tier KYCTier,
	status KYCStatus,
	companyName *string,
	createdAt time.Time,
) (*User, error) {
	if id <= 0 {
		return nil, errs.NewValueIsRequiredError("user id")
	}
	if err := wallet.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("wallet_address", err)
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}
	if _, err := ParseKYCTier(string(tier)); err != nil {
		return nil, err
	}
	if _, err := ParseKYCStatus(string(status)); err != nil {
		return nil, err
	}
	return &User{
		id:            id,
		walletAddress: wallet,
		role:          role,
		kycTier:       tier,
		kycStatus:     status,
		companyName:   companyName,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() int64 {
	return u.id
}

// AssignID is called by storage once after the first insert.
func (u *User) AssignID(id int64) error {
	if u.id != 0 {
		return errs.NewValueIsInvalidError("user id is already assigned")
	}
	if id <= 0 {
		return errs.NewValueIsRequiredError("user id")
	}
	u.id = id
	return nil
}

func (u *User) WalletAddress() kernel.WalletAddress {
	return u.walletAddress
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) KYCTier() KYCTier {
	return u.kycTier
}

func (u *User) KYCStatus() KYCStatus {
	return u.kycStatus
}

func (u *User) CompanyName() *string {
	return u.companyName
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// CanTrade reports whether the user may mirror new orders.
func (u *User) CanTrade() bool {
	return u.kycStatus == KYCApproved
}

func (u *User) Caller() Caller {
	return NewCaller(u.id, u.role)
}

// Update is an admin change to a user. Nil fields are left as they are.
type Update struct {
	KYCTier   *KYCTier
	KYCStatus *KYCStatus
	Role      *Role
}

func (up Update) IsEmpty() bool {
	return up.KYCTier == nil && up.KYCStatus == nil && up.Role == nil
}

func (u *User) Apply(up Update) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if up.IsEmpty() {
		return errs.NewValueIsRequiredError("user update")
	}
	if up.KYCTier != nil {
		u.kycTier = *up.KYCTier
	}
	if up.KYCStatus != nil {
		u.kycStatus = *up.KYCStatus
	}
	if up.Role != nil {
		u.role = *up.Role
	}
	return nil
}
