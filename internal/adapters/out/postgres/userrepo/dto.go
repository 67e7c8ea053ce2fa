// Package userrepo persists users in the users table.
package userrepo

import (
	"time"

	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/core/domain/model/user"
)

type UserDTO struct {
	ID            int64     `gorm:"primaryKey"`
	WalletAddress string    `gorm:"type:varchar(42);not null;uniqueIndex"`
	Role          string    `gorm:"type:varchar(16);not null;index"`
	KYCTier       string    `gorm:"column:kyc_tier;type:varchar(16);not null"`
	KYCStatus     string    `gorm:"column:kyc_status;type:varchar(16);not null;index"`
	CompanyName   *string   `gorm:"type:varchar(255)"`
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:            u.ID(),
		WalletAddress: u.WalletAddress().String(),
		Role:          u.Role().String(),
		KYCTier:       string(u.KYCTier()),
		KYCStatus:     string(u.KYCStatus()),
		CompanyName:   u.CompanyName(),
		CreatedAt:     u.CreatedAt(),
		UpdatedAt:     u.CreatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	wallet, err := kernel.NewWalletAddress(dto.WalletAddress)
	if err != nil {
		return nil, err
	}
	return user.RestoreUser(
		dto.ID,
		wallet,
		user.Role(dto.Role),
		user.KYCTier(dto.KYCTier),
		user.KYCStatus(dto.KYCStatus),
		dto.CompanyName,
		dto.CreatedAt,
	)
}
