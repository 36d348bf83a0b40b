// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work wraps one business transaction: every repository it
// hands out is bound to the same database transaction, so a command's state
// change and its ledger appends commit or roll back together.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.BatchRepository().Add(ctx, b); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each business operation gets its own instance; instances are not safe for
// concurrent use.
package postgres

import (
	"context"

	"mestrace/internal/adapters/out/postgres/batchrepo"
	"mestrace/internal/adapters/out/postgres/downtimerepo"
	"mestrace/internal/adapters/out/postgres/handoverrepo"
	"mestrace/internal/adapters/out/postgres/ledgerrepo"
	"mestrace/internal/adapters/out/postgres/morepo"
	"mestrace/internal/adapters/out/postgres/processrepo"
	"mestrace/internal/adapters/out/postgres/reworkrepo"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database
// connections. Each Create call yields a fresh instance with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction across the repositories
// it hands out. It tracks every aggregate added or updated during the
// transaction so post-commit processing can see what changed.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a database transaction. A second Begin on the same
// instance is a no-op rather than a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction when no transaction is active, which
// makes the deferred rollback after a successful commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// MORepository returns the manufacturing order repository bound to the
// current transaction.
func (uow *GormUnitOfWork) MORepository() ports.MORepository {
	return morepo.NewGormMORepository(uow.conn(), uow)
}

// BatchRepository returns the batch repository bound to the current
// transaction.
func (uow *GormUnitOfWork) BatchRepository() ports.BatchRepository {
	return batchrepo.NewGormBatchRepository(uow.conn(), uow)
}

// FGVerificationRepository returns the finished-goods verification
// repository bound to the current transaction.
func (uow *GormUnitOfWork) FGVerificationRepository() ports.FGVerificationRepository {
	return batchrepo.NewGormFGVerificationRepository(uow.conn())
}

// ExecutionRepository returns the pipeline step repository bound to the
// current transaction.
func (uow *GormUnitOfWork) ExecutionRepository() ports.ExecutionRepository {
	return processrepo.NewGormExecutionRepository(uow.conn(), uow)
}

// AssignmentRepository returns the assignment history repository bound to
// the current transaction.
func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return processrepo.NewGormAssignmentRepository(uow.conn())
}

// AllocationRepository returns the allocation repository bound to the
// current transaction.
func (uow *GormUnitOfWork) AllocationRepository() ports.AllocationRepository {
	return processrepo.NewGormAllocationRepository(uow.conn())
}

// VerificationRepository returns the receipt verification repository bound
// to the current transaction.
func (uow *GormUnitOfWork) VerificationRepository() ports.VerificationRepository {
	return handoverrepo.NewGormVerificationRepository(uow.conn())
}

// ReceiptLogRepository returns the transit record repository bound to the
// current transaction.
func (uow *GormUnitOfWork) ReceiptLogRepository() ports.ReceiptLogRepository {
	return handoverrepo.NewGormReceiptLogRepository(uow.conn())
}

// CompletionRepository returns the completion record repository bound to the
// current transaction.
func (uow *GormUnitOfWork) CompletionRepository() ports.CompletionRepository {
	return reworkrepo.NewGormCompletionRepository(uow.conn())
}

// ReworkBatchRepository returns the rework job repository bound to the
// current transaction.
func (uow *GormUnitOfWork) ReworkBatchRepository() ports.ReworkBatchRepository {
	return reworkrepo.NewGormReworkBatchRepository(uow.conn())
}

// FIReworkRepository returns the final-inspection rework repository bound to
// the current transaction.
func (uow *GormUnitOfWork) FIReworkRepository() ports.FIReworkRepository {
	return reworkrepo.NewGormFIReworkRepository(uow.conn())
}

// StopRepository returns the process stop repository bound to the current
// transaction.
func (uow *GormUnitOfWork) StopRepository() ports.StopRepository {
	return downtimerepo.NewGormStopRepository(uow.conn())
}

// SummaryRepository returns the downtime summary repository bound to the
// current transaction.
func (uow *GormUnitOfWork) SummaryRepository() ports.SummaryRepository {
	return downtimerepo.NewGormSummaryRepository(uow.conn())
}

// LedgerRepository returns the activity ledger bound to the current
// transaction.
func (uow *GormUnitOfWork) LedgerRepository() ports.LedgerRepository {
	return ledgerrepo.NewGormLedgerRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Repository implementations call it on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
