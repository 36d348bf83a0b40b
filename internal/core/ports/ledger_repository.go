package ports

import (
	"context"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for the append-only
// activity ledger. Entries are never updated or deleted.
type LedgerRepository interface {
	// Append persists one ledger entry. Called inside the same transaction
	// as the state change it records; if the append fails the whole command
	// fails.
	Append(ctx context.Context, e *ledger.ProcessActivityLog) error

	// GetAllByBatchID retrieves every entry referencing the batch,
	// chronologically.
	GetAllByBatchID(ctx context.Context, batchID kernel.UUID) ([]*ledger.ProcessActivityLog, error)

	// GetAllByMOID retrieves every entry referencing the MO, chronologically.
	GetAllByMOID(ctx context.Context, moID kernel.UUID) ([]*ledger.ProcessActivityLog, error)
}
