// Package commands contains the write side of the service. Every command is
// validated on construction and executed by a handler inside a unit of work.
package commands

import (
	"context"

	"otcdesk/internal/core/ports"
)

type (
	// TxManager handles the database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	OrderEventRepoFactory interface {
		OrderEventRepository() ports.OrderEventRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	FeeRepoFactory interface {
		FeeRepository() ports.FeeRepository
	}

	// OrderUoW covers order writes: the order row, its audit trail, and the
	// user lookups needed to authorize them.
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil {
	//	    return err
	//	}
	//	defer func() { _ = uow.Rollback(ctx) }()
	//	// ... repository calls
	//	return uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OrderEventRepoFactory
		UserRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	FeeUoW interface {
		TxManager
		FeeRepoFactory
	}

	FeeUoWFactory interface {
		Create() FeeUoW
	}
)
