package commands

import (
	"context"

	"otcdesk/internal/core/domain/model/user"
)

type UpdateUserCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewUpdateUserCommandHandler(uowFactory UserUoWFactory) UpdateUserCommandHandler {
	return UpdateUserCommandHandler{uowFactory: uowFactory}
}

func (h UpdateUserCommandHandler) Handle(ctx context.Context, command UpdateUserCommand) (*user.User, error) {
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

	repo := uow.UserRepository()

	u, err := repo.Get(ctx, command.UserID())
	if err != nil {
		return nil, err
	}
	if err = u.Apply(command.Update()); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, u); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return u, nil
}
