package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetFeeConfigsQueryHandler struct {
	db *gorm.DB
}

func NewGetFeeConfigsQueryHandler(db *gorm.DB) GetFeeConfigsQueryHandler {
	return GetFeeConfigsQueryHandler{db: db}
}

// Handle returns every fee schedule ordered by asset.
func (h GetFeeConfigsQueryHandler) Handle(ctx context.Context, query GetFeeConfigsQuery) ([]FeeConfigView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT asset, fee_bps, spread_bps, updated_at
		FROM fee_configs
		ORDER BY asset
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	configs := make([]FeeConfigView, 0)
	for rows.Next() {
		var c FeeConfigView
		if err = rows.Scan(&c.Asset, &c.FeeBps, &c.SpreadBps, &c.UpdatedAt); err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return configs, nil
}
