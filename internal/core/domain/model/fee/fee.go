// Package fee holds the per-asset fee and spread schedule.
package fee

import (
	"errors"
	"time"

	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/pkg/errs"
)

// MaxBasisPoints is 100%.
const MaxBasisPoints = 10000

var ErrConfigIsNotConstructed = errors.New("Config must be created via NewConfig constructor")

// Config is the fee schedule of one asset, in basis points.
type Config struct {
	asset     kernel.Asset
	feeBps    int
	spreadBps int
	updatedAt time.Time

	isConstructed bool
}

func NewConfig(asset kernel.Asset, feeBps, spreadBps int, updatedAt time.Time) (*Config, error) {
	if err := errors.Join(
		asset.Validate(),
		validateBps("fee_bps", feeBps),
		validateBps("spread_bps", spreadBps),
	); err != nil {
		return nil, err
	}
	return &Config{
		asset:         asset,
		feeBps:        feeBps,
		spreadBps:     spreadBps,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func (c *Config) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrConfigIsNotConstructed
	}
	return nil
}

func (c *Config) Asset() kernel.Asset { return c.asset }

func (c *Config) FeeBps() int { return c.feeBps }

func (c *Config) SpreadBps() int { return c.spreadBps }

func (c *Config) UpdatedAt() time.Time { return c.updatedAt }

// Update changes the provided values. Either both validate or neither is applied.
func (c *Config) Update(feeBps, spreadBps *int, now time.Time) error {
	if feeBps == nil && spreadBps == nil {
		return errs.NewValueIsRequiredError("fee_bps or spread_bps")
	}
	var err error
	if feeBps != nil {
		err = errors.Join(err, validateBps("fee_bps", *feeBps))
	}
	if spreadBps != nil {
		err = errors.Join(err, validateBps("spread_bps", *spreadBps))
	}
	if err != nil {
		return err
	}

	if feeBps != nil {
		c.feeBps = *feeBps
	}
	if spreadBps != nil {
		c.spreadBps = *spreadBps
	}
	c.updatedAt = now
	return nil
}

func validateBps(name string, v int) error {
	if v < 0 || v > MaxBasisPoints {
		return errs.NewValueIsOutOfRangeError(name, v, 0, MaxBasisPoints)
	}
	return nil
}
