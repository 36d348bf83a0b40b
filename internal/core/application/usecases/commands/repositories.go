// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, ledger appends inside the transaction, and
// post-commit event publication.
package commands

import (
	"context"

	"mestrace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each command group names the narrowest unit of work it needs;
// the postgres unit of work satisfies all of them.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// MORepoFactory provides access to the MO repository within a transaction.
	MORepoFactory interface {
		MORepository() ports.MORepository
	}

	// BatchRepoFactory provides access to the batch repository within a transaction.
	BatchRepoFactory interface {
		BatchRepository() ports.BatchRepository
	}

	// FGVerificationRepoFactory provides access to the finished-goods
	// verification repository within a transaction.
	FGVerificationRepoFactory interface {
		FGVerificationRepository() ports.FGVerificationRepository
	}

	// ExecutionRepoFactory provides access to the pipeline step repository
	// within a transaction.
	ExecutionRepoFactory interface {
		ExecutionRepository() ports.ExecutionRepository
	}

	// AssignmentRepoFactory provides access to the assignment history
	// repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// AllocationRepoFactory provides access to the allocation repository
	// within a transaction.
	AllocationRepoFactory interface {
		AllocationRepository() ports.AllocationRepository
	}

	// VerificationRepoFactory provides access to the receipt verification
	// repository within a transaction.
	VerificationRepoFactory interface {
		VerificationRepository() ports.VerificationRepository
	}

	// ReceiptLogRepoFactory provides access to the transit record repository
	// within a transaction.
	ReceiptLogRepoFactory interface {
		ReceiptLogRepository() ports.ReceiptLogRepository
	}

	// CompletionRepoFactory provides access to the completion record
	// repository within a transaction.
	CompletionRepoFactory interface {
		CompletionRepository() ports.CompletionRepository
	}

	// ReworkBatchRepoFactory provides access to the rework job repository
	// within a transaction.
	ReworkBatchRepoFactory interface {
		ReworkBatchRepository() ports.ReworkBatchRepository
	}

	// FIReworkRepoFactory provides access to the final-inspection rework
	// repository within a transaction.
	FIReworkRepoFactory interface {
		FIReworkRepository() ports.FIReworkRepository
	}

	// StopRepoFactory provides access to the process stop repository within
	// a transaction.
	StopRepoFactory interface {
		StopRepository() ports.StopRepository
	}

	// SummaryRepoFactory provides access to the downtime summary repository
	// within a transaction.
	SummaryRepoFactory interface {
		SummaryRepository() ports.SummaryRepository
	}

	// LedgerRepoFactory provides access to the activity ledger within a
	// transaction. Every command group includes it: the ledger append shares
	// the transaction of the state change it records.
	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// MOUoW manages transactions for approval workflow operations.
	MOUoW interface {
		TxManager
		MORepoFactory
		LedgerRepoFactory
	}

	// MOUoWFactory creates MOUoW instances.
	MOUoWFactory interface {
		Create() MOUoW
	}

	// BatchUoW manages transactions for batch creation.
	BatchUoW interface {
		TxManager
		MORepoFactory
		BatchRepoFactory
		LedgerRepoFactory
	}

	// BatchUoWFactory creates BatchUoW instances.
	BatchUoWFactory interface {
		Create() BatchUoW
	}

	// PipelineUoW manages transactions for pipeline setup.
	PipelineUoW interface {
		TxManager
		MORepoFactory
		ExecutionRepoFactory
		LedgerRepoFactory
	}

	// PipelineUoWFactory creates PipelineUoW instances.
	PipelineUoWFactory interface {
		Create() PipelineUoW
	}

	// AssignUoW manages transactions for operator assignment operations.
	AssignUoW interface {
		TxManager
		ExecutionRepoFactory
		AssignmentRepoFactory
		LedgerRepoFactory
	}

	// AssignUoWFactory creates AssignUoW instances.
	AssignUoWFactory interface {
		Create() AssignUoW
	}

	// FlowUoW manages transactions for the batch pipeline flow: allocation,
	// receipt, verification and process completion.
	FlowUoW interface {
		TxManager
		MORepoFactory
		BatchRepoFactory
		ExecutionRepoFactory
		AllocationRepoFactory
		VerificationRepoFactory
		ReceiptLogRepoFactory
		FGVerificationRepoFactory
		LedgerRepoFactory
	}

	// FlowUoWFactory creates FlowUoW instances.
	FlowUoWFactory interface {
		Create() FlowUoW
	}

	// ReworkUoW manages transactions for completion records and rework
	// operations, final inspection included.
	ReworkUoW interface {
		TxManager
		BatchRepoFactory
		ExecutionRepoFactory
		CompletionRepoFactory
		ReworkBatchRepoFactory
		FIReworkRepoFactory
		LedgerRepoFactory
	}

	// ReworkUoWFactory creates ReworkUoW instances.
	ReworkUoWFactory interface {
		Create() ReworkUoW
	}

	// DowntimeUoW manages transactions for stop and resume operations.
	DowntimeUoW interface {
		TxManager
		ExecutionRepoFactory
		StopRepoFactory
		LedgerRepoFactory
	}

	// DowntimeUoWFactory creates DowntimeUoW instances.
	DowntimeUoWFactory interface {
		Create() DowntimeUoW
	}

	// SummaryUoW manages transactions for the downtime summary refresh.
	SummaryUoW interface {
		TxManager
		StopRepoFactory
		SummaryRepoFactory
	}

	// SummaryUoWFactory creates SummaryUoW instances.
	SummaryUoWFactory interface {
		Create() SummaryUoW
	}
)
