// Package postgres provides the GORM implementation of the unit of work and the
// schema migration for the order lifecycle tables.
//
// A unit of work wraps one database transaction. Repositories handed out after Begin
// run inside that transaction, so an order insert, its lines and the agent's
// availability flip commit or roll back together.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	// ... mutate o, write it back
//
//	return uow.Commit(ctx)
//
// Concurrency considerations:
//   - Each UnitOfWork instance owns one transaction; goroutines never share one
//   - Row locks taken with GetForUpdate are held until Commit or Rollback
//   - Serialization failures and deadlocks are reported as transient by IsTransient
package postgres

import (
	"context"

	"fooddelivery/internal/adapters/out/postgres/accountrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/productrepo"
	"fooddelivery/internal/core/ports"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

var (
	_ ports.UnitOfWorkFactory        = (*GormUnitOfWorkFactory)(nil)
	_ ports.TransientErrorClassifier = (*GormUnitOfWorkFactory)(nil)
	_ ports.UnitOfWork               = (*GormUnitOfWork)(nil)
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh UnitOfWork with no transaction started.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// IsTransient reports whether a failed transaction may succeed when retried.
func (f *GormUnitOfWorkFactory) IsTransient(err error) bool {
	return IsTransient(err)
}

// GormUnitOfWork coordinates one database transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling Begin twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "begin transaction")
	}

	uow.tx = tx
	return nil
}

// Commit finalizes the transaction. The unit of work cannot be reused afterwards.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

// Rollback discards the transaction.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active, which is the case
// after Commit; deferred rollbacks ignore that error.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns an order repository bound to the current transaction,
// or to the connection pool when no transaction is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// AccountRepository returns an account repository bound to the current transaction.
func (uow *GormUnitOfWork) AccountRepository() ports.AccountRepository {
	return accountrepo.NewGormAccountRepository(uow.conn())
}

// ProductRepository returns a catalog repository bound to the current transaction.
func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
