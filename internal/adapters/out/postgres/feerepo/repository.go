// Package feerepo persists per-asset fee schedules in the fee_configs table.
package feerepo

import (
	"context"
	"errors"
	"time"

	"otcdesk/internal/core/domain/model/fee"
	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeeConfigDTO struct {
	Asset     string    `gorm:"type:varchar(8);primaryKey"`
	FeeBps    int       `gorm:"not null"`
	SpreadBps int       `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (FeeConfigDTO) TableName() string {
	return "fee_configs"
}

type GormFeeRepository struct {
	db *gorm.DB
}

func NewGormFeeRepository(db *gorm.DB) *GormFeeRepository {
	return &GormFeeRepository{db: db}
}

func (r *GormFeeRepository) Get(ctx context.Context, asset kernel.Asset) (*fee.Config, error) {
	var dto FeeConfigDTO
	if err := r.db.WithContext(ctx).First(&dto, "asset = ?", asset.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("asset", asset.String())
		}
		return nil, err
	}

	parsed, err := kernel.ParseAsset(dto.Asset)
	if err != nil {
		return nil, err
	}
	return fee.NewConfig(parsed, dto.FeeBps, dto.SpreadBps, dto.UpdatedAt)
}

// Save upserts the schedule keyed by asset.
func (r *GormFeeRepository) Save(ctx context.Context, c *fee.Config) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := FeeConfigDTO{
		Asset:     c.Asset().String(),
		FeeBps:    c.FeeBps(),
		SpreadBps: c.SpreadBps(),
		UpdatedAt: c.UpdatedAt(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "asset"}},
			DoUpdates: clause.AssignmentColumns([]string{"fee_bps", "spread_bps", "updated_at"}),
		}).
		Create(&dto).Error
}
