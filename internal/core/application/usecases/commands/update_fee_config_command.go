package commands

import (
	"errors"

	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/pkg/errs"
	"otcdesk/internal/pkg/guard"
)

var ErrUpdateFeeConfigCommandIsNotConstructed = errors.New(
	"UpdateFeeConfigCommand must be created via NewUpdateFeeConfigCommand constructor",
)

type UpdateFeeConfigCommand struct {
	asset     kernel.Asset
	feeBps    *int
	spreadBps *int
	guard     guard.ConstructorGuard
}

func NewUpdateFeeConfigCommand(asset string, feeBps, spreadBps *int) (UpdateFeeConfigCommand, error) {
	a, err := kernel.ParseAsset(asset)
	if err != nil {
		return UpdateFeeConfigCommand{}, err
	}
	if feeBps == nil && spreadBps == nil {
		return UpdateFeeConfigCommand{}, errs.NewValueIsRequiredError("fee_bps or spread_bps")
	}
	return UpdateFeeConfigCommand{
		asset:     a,
		feeBps:    feeBps,
		spreadBps: spreadBps,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateFeeConfigCommand) Asset() kernel.Asset {
	return c.asset
}

func (c UpdateFeeConfigCommand) FeeBps() *int {
	return c.feeBps
}

func (c UpdateFeeConfigCommand) SpreadBps() *int {
	return c.spreadBps
}

func (c UpdateFeeConfigCommand) Validate() error {
	return c.guard.Validate(ErrUpdateFeeConfigCommandIsNotConstructed)
}
