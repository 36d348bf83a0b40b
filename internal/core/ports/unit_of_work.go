package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and repository instances bound to the
// current transaction. Client code must explicitly manage the transaction
// lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// MORepository returns an MORepository bound to the current transaction.
	MORepository() MORepository

	// BatchRepository returns a BatchRepository bound to the current transaction.
	BatchRepository() BatchRepository

	// FGVerificationRepository returns an FGVerificationRepository bound to
	// the current transaction.
	FGVerificationRepository() FGVerificationRepository

	// ExecutionRepository returns an ExecutionRepository bound to the current
	// transaction.
	ExecutionRepository() ExecutionRepository

	// AssignmentRepository returns an AssignmentRepository bound to the
	// current transaction.
	AssignmentRepository() AssignmentRepository

	// AllocationRepository returns an AllocationRepository bound to the
	// current transaction.
	AllocationRepository() AllocationRepository

	// VerificationRepository returns a VerificationRepository bound to the
	// current transaction.
	VerificationRepository() VerificationRepository

	// ReceiptLogRepository returns a ReceiptLogRepository bound to the
	// current transaction.
	ReceiptLogRepository() ReceiptLogRepository

	// CompletionRepository returns a CompletionRepository bound to the
	// current transaction.
	CompletionRepository() CompletionRepository

	// ReworkBatchRepository returns a ReworkBatchRepository bound to the
	// current transaction.
	ReworkBatchRepository() ReworkBatchRepository

	// FIReworkRepository returns an FIReworkRepository bound to the current
	// transaction.
	FIReworkRepository() FIReworkRepository

	// StopRepository returns a StopRepository bound to the current
	// transaction.
	StopRepository() StopRepository

	// SummaryRepository returns a SummaryRepository bound to the current
	// transaction.
	SummaryRepository() SummaryRepository

	// LedgerRepository returns a LedgerRepository bound to the current
	// transaction.
	LedgerRepository() LedgerRepository
}
