package queries

import (
	"context"

	"otcdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetUserQueryHandler struct {
	db *gorm.DB
}

func NewGetUserQueryHandler(db *gorm.DB) GetUserQueryHandler {
	return GetUserQueryHandler{db: db}
}

// Handle returns the user or an errs.ObjectNotFoundError.
func (h GetUserQueryHandler) Handle(ctx context.Context, query GetUserQuery) (UserView, error) {
	if err := query.Validate(); err != nil {
		return UserView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, wallet_address, role, kyc_tier, kyc_status, company_name, created_at
		FROM users
		WHERE id = ? AND wallet_address = ?
	`, query.UserID(), query.Wallet()).Rows()
	if err != nil {
		return UserView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return UserView{}, err
		}
		return UserView{}, errs.NewObjectNotFoundError("user", query.UserID())
	}

	var u UserView
	err = rows.Scan(&u.ID, &u.WalletAddress, &u.Role, &u.KYCTier, &u.KYCStatus, &u.CompanyName, &u.CreatedAt)
	if err != nil {
		return UserView{}, err
	}
	return u, nil
}
