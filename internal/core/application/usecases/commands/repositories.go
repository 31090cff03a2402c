// Package commands contains the operations that change order state.
// Every command follows the same pattern: validation, one transaction through
// an OrderUoW, commit, then the post-commit hooks.
package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// storeError classifies a failure reported by the unit of work or the
// repository. Not-found and already classified errors pass through; anything
// else is a retryable persistence failure.
func storeError(operation string, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, errs.ErrPersistenceFailed) {
		return err
	}
	return errs.NewPersistenceError(operation, err)
}
