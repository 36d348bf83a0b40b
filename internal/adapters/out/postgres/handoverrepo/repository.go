package handoverrepo

import (
	"context"
	"errors"

	"mestrace/internal/core/domain/model/handover"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReceiptLogRepository implements ReceiptLogRepository using GORM.
type GormReceiptLogRepository struct {
	db *gorm.DB
}

// NewGormReceiptLogRepository creates a new GORM transit record repository.
func NewGormReceiptLogRepository(db *gorm.DB) *GormReceiptLogRepository {
	return &GormReceiptLogRepository{db: db}
}

// Add saves a new transit record to the database.
func (r *GormReceiptLogRepository) Add(ctx context.Context, l *handover.BatchReceiptLog) error {
	if err := l.Validate(); err != nil {
		return err
	}

	dto := logFromDomain(l)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves the receipt confirmation of an existing record.
func (r *GormReceiptLogRepository) Update(ctx context.Context, l *handover.BatchReceiptLog) error {
	if err := l.Validate(); err != nil {
		return err
	}

	dto := logFromDomain(l)
	result := r.db.WithContext(ctx).Model(&ReceiptLogDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves a transit record by ID.
func (r *GormReceiptLogRepository) Get(ctx context.Context, id kernel.UUID) (*handover.BatchReceiptLog, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReceiptLogDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("batch receipt log", id.String())
		}
		return nil, err
	}

	return logToDomain(dto)
}

// GetOpenByAllocationID retrieves the unconfirmed transit record of an
// allocation. Returns nil without error when none is open.
func (r *GormReceiptLogRepository) GetOpenByAllocationID(ctx context.Context, allocationID kernel.UUID) (*handover.BatchReceiptLog, error) {
	if err := allocationID.Validate(); err != nil {
		return nil, err
	}

	var dto ReceiptLogDTO
	err := r.db.WithContext(ctx).
		Where("allocation_id = ? AND received_at IS NULL", allocationID.Bytes()).
		Order("handed_over_at DESC").
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return logToDomain(dto)
}

// GormVerificationRepository implements VerificationRepository using GORM.
type GormVerificationRepository struct {
	db *gorm.DB
}

// NewGormVerificationRepository creates a new GORM receipt verification
// repository.
func NewGormVerificationRepository(db *gorm.DB) *GormVerificationRepository {
	return &GormVerificationRepository{db: db}
}

// Add saves a new verification to the database.
func (r *GormVerificationRepository) Add(ctx context.Context, v *handover.BatchReceiptVerification) error {
	if err := v.Validate(); err != nil {
		return err
	}

	dto := verificationFromDomain(v)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves hold and resolution changes of an existing verification.
func (r *GormVerificationRepository) Update(ctx context.Context, v *handover.BatchReceiptVerification) error {
	if err := v.Validate(); err != nil {
		return err
	}

	dto := verificationFromDomain(v)
	result := r.db.WithContext(ctx).Model(&VerificationDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves a verification by ID.
func (r *GormVerificationRepository) Get(ctx context.Context, id kernel.UUID) (*handover.BatchReceiptVerification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VerificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("batch receipt verification", id.String())
		}
		return nil, err
	}

	return verificationToDomain(dto)
}

// GetByAllocationID retrieves the verification recorded against an
// allocation. Returns nil without error when none was recorded yet.
func (r *GormVerificationRepository) GetByAllocationID(ctx context.Context, allocationID kernel.UUID) (*handover.BatchReceiptVerification, error) {
	if err := allocationID.Validate(); err != nil {
		return nil, err
	}

	var dto VerificationDTO
	err := r.db.WithContext(ctx).
		Where("allocation_id = ?", allocationID.Bytes()).
		Order("verified_at DESC").
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return verificationToDomain(dto)
}
