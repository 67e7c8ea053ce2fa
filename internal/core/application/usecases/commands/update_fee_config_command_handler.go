package commands

import (
	"context"
	"errors"
	"time"

	"otcdesk/internal/core/domain/model/fee"
	"otcdesk/internal/pkg/errs"
)

type UpdateFeeConfigCommandHandler struct {
	uowFactory FeeUoWFactory
}

func NewUpdateFeeConfigCommandHandler(uowFactory FeeUoWFactory) UpdateFeeConfigCommandHandler {
	return UpdateFeeConfigCommandHandler{uowFactory: uowFactory}
}

// Handle updates the schedule of one asset. An asset without a schedule
// starts from zero fee and zero spread.
func (h UpdateFeeConfigCommandHandler) Handle(ctx context.Context, command UpdateFeeConfigCommand) (*fee.Config, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.FeeRepository()
	now := time.Now().UTC()

	config, err := repo.Get(ctx, command.Asset())
	if errors.Is(err, errs.ErrObjectNotFound) {
		config, err = fee.NewConfig(command.Asset(), 0, 0, now)
	}
	if err != nil {
		return nil, err
	}

	if err = config.Update(command.FeeBps(), command.SpreadBps(), now); err != nil {
		return nil, err
	}
	if err = repo.Save(ctx, config); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return config, nil
}
