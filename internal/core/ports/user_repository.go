package ports

import (
	"context"

	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/core/domain/model/user"
)

type UserRepository interface {
	// Add inserts u and assigns the generated id to it.
	Add(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id int64) (*user.User, error)
	GetByWallet(ctx context.Context, wallet kernel.WalletAddress) (*user.User, error)
}
