package commands

import (
	"errors"

	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/pkg/guard"
)

var ErrConnectWalletCommandIsNotConstructed = errors.New(
	"ConnectWalletCommand must be created via NewConnectWalletCommand constructor",
)

// ConnectWalletCommand signs a wallet in, registering it on first use.
type ConnectWalletCommand struct {
	wallet kernel.WalletAddress
	guard  guard.ConstructorGuard
}

func NewConnectWalletCommand(walletAddress string) (ConnectWalletCommand, error) {
	wallet, err := kernel.NewWalletAddress(walletAddress)
	if err != nil {
		return ConnectWalletCommand{}, err
	}
	return ConnectWalletCommand{wallet: wallet, guard: guard.NewConstructorGuard()}, nil
}

func (c ConnectWalletCommand) Wallet() kernel.WalletAddress {
	return c.wallet
}

func (c ConnectWalletCommand) Validate() error {
	return c.guard.Validate(ErrConnectWalletCommandIsNotConstructed)
}
