package user

import (
	"fmt"

	"otcdesk/internal/pkg/errs"
)

type Role string

const (
	RoleTrader Role = "TRADER"
	RoleAdmin  Role = "ADMIN"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleTrader, RoleAdmin:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
	}
}

func (r Role) String() string {
	return string(r)
}

// KYCTier is the verification level of a user.
type KYCTier string

const (
	KYCTier1 KYCTier = "TIER_1"
	KYCTier2 KYCTier = "TIER_2"
)

func ParseKYCTier(s string) (KYCTier, error) {
	switch KYCTier(s) {
	case KYCTier1, KYCTier2:
		return KYCTier(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("kyc_tier", fmt.Errorf("%q is not a valid tier", s))
	}
}

// KYCStatus is the outcome of the last KYC review.
type KYCStatus string

const (
	KYCPending  KYCStatus = "PENDING"
	KYCApproved KYCStatus = "APPROVED"
	KYCRejected KYCStatus = "REJECTED"
)

func ParseKYCStatus(s string) (KYCStatus, error) {
	switch KYCStatus(s) {
	case KYCPending, KYCApproved, KYCRejected:
		return KYCStatus(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("kyc_status", fmt.Errorf("%q is not a valid kyc status", s))
	}
}
