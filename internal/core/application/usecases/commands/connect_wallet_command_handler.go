package commands

import (
	"context"
	"errors"
	"time"

	"otcdesk/internal/core/domain/model/user"
	"otcdesk/internal/pkg/errs"
)

type ConnectWalletCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewConnectWalletCommandHandler(uowFactory UserUoWFactory) ConnectWalletCommandHandler {
	return ConnectWalletCommandHandler{uowFactory: uowFactory}
}

// Handle returns the user owning the wallet, creating an approved tier-1
// trader when the wallet is new.
func (h ConnectWalletCommandHandler) Handle(ctx context.Context, command ConnectWalletCommand) (*user.User, error) {
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

	existing, err := repo.GetByWallet(ctx, command.Wallet())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	created, err := user.NewUser(command.Wallet(), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, created); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}
