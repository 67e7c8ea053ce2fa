package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListUsersQueryHandler struct {
	db *gorm.DB
}

func NewListUsersQueryHandler(db *gorm.DB) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db}
}

func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) ([]UserView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).
		Table("users").
		Select("id, wallet_address, role, kyc_tier, kyc_status, company_name, created_at")
	if query.Role() != "" {
		tx = tx.Where("role = ?", query.Role())
	}
	if query.KYCStatus() != "" {
		tx = tx.Where("kyc_status = ?", query.KYCStatus())
	}

	rows, err := tx.Order("created_at DESC").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]UserView, 0)
	for rows.Next() {
		var u UserView
		err = rows.Scan(&u.ID, &u.WalletAddress, &u.Role, &u.KYCTier, &u.KYCStatus, &u.CompanyName, &u.CreatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
