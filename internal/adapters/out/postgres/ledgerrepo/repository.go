package ledgerrepo

import (
	"context"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// GormLedgerRepository implements LedgerRepository using GORM.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM activity ledger repository.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append persists one ledger entry within the caller's transaction.
func (r *GormLedgerRepository) Append(ctx context.Context, e *ledger.ProcessActivityLog) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := fromDomain(e)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllByBatchID retrieves every entry referencing the batch,
// chronologically.
func (r *GormLedgerRepository) GetAllByBatchID(ctx context.Context, batchID kernel.UUID) ([]*ledger.ProcessActivityLog, error) {
	if err := batchID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ActivityLogDTO
	if err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID.Bytes()).
		Order("occurred_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllByMOID retrieves every entry referencing the MO, chronologically.
func (r *GormLedgerRepository) GetAllByMOID(ctx context.Context, moID kernel.UUID) ([]*ledger.ProcessActivityLog, error) {
	if err := moID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ActivityLogDTO
	if err := r.db.WithContext(ctx).
		Where("mo_id = ?", moID.Bytes()).
		Order("occurred_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []ActivityLogDTO) ([]*ledger.ProcessActivityLog, error) {
	entries := make([]*ledger.ProcessActivityLog, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
