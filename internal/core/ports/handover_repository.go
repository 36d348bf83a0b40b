package ports

import (
	"context"

	"mestrace/internal/core/domain/model/handover"
	"mestrace/internal/core/domain/model/kernel"
)

// VerificationRepository defines the persistence contract for batch receipt
// verifications.
type VerificationRepository interface {
	// Add persists a new verification.
	Add(ctx context.Context, v *handover.BatchReceiptVerification) error

	// Update persists hold and resolution changes.
	Update(ctx context.Context, v *handover.BatchReceiptVerification) error

	// Get retrieves a verification by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*handover.BatchReceiptVerification, error)

	// GetByAllocationID retrieves the verification recorded against an
	// allocation, if any.
	GetByAllocationID(ctx context.Context, allocationID kernel.UUID) (*handover.BatchReceiptVerification, error)
}

// ReceiptLogRepository defines the persistence contract for transit records.
type ReceiptLogRepository interface {
	// Add persists a new transit record at handover time.
	Add(ctx context.Context, l *handover.BatchReceiptLog) error

	// Update persists the receipt confirmation.
	Update(ctx context.Context, l *handover.BatchReceiptLog) error

	// Get retrieves a transit record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*handover.BatchReceiptLog, error)

	// GetOpenByAllocationID retrieves the unconfirmed transit record of an
	// allocation, if any.
	GetOpenByAllocationID(ctx context.Context, allocationID kernel.UUID) (*handover.BatchReceiptLog, error)
}
