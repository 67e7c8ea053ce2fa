package postgres

import (
	"context"
	"time"

	"otcdesk/internal/adapters/out/postgres/eventrepo"
	"otcdesk/internal/adapters/out/postgres/feerepo"
	"otcdesk/internal/adapters/out/postgres/orderrepo"
	"otcdesk/internal/adapters/out/postgres/userrepo"
	"otcdesk/internal/core/domain/model/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdminWallet is the wallet of the administrator created by Migrate.
const AdminWallet = "0x0000000000000000000000000000000000000001"

// Migrate creates or updates every table and makes sure the seed
// administrator exists. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	err := db.AutoMigrate(
		&userrepo.UserDTO{},
		&orderrepo.OrderDTO{},
		&eventrepo.OrderEventDTO{},
		&feerepo.FeeConfigDTO{},
	)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := userrepo.UserDTO{
		WalletAddress: AdminWallet,
		Role:          string(user.RoleAdmin),
		KYCTier:       string(user.KYCTier2),
		KYCStatus:     string(user.KYCApproved),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return db.
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "wallet_address"}}, DoNothing: true}).
		Create(&admin).Error
}
