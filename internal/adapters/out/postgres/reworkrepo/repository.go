package reworkrepo

import (
	"context"
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/rework"
	"mestrace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCompletionRepository implements CompletionRepository using GORM.
type GormCompletionRepository struct {
	db *gorm.DB
}

// NewGormCompletionRepository creates a new GORM completion record
// repository.
func NewGormCompletionRepository(db *gorm.DB) *GormCompletionRepository {
	return &GormCompletionRepository{db: db}
}

// Add saves a new completion record. Completions are never updated.
func (r *GormCompletionRepository) Add(ctx context.Context, c *rework.BatchProcessCompletion) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := completionFromDomain(c)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a completion record by ID.
func (r *GormCompletionRepository) Get(ctx context.Context, id kernel.UUID) (*rework.BatchProcessCompletion, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CompletionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("batch process completion", id.String())
		}
		return nil, err
	}

	return completionToDomain(dto)
}

// GetLatestCycleNumber returns the highest rework cycle number recorded for
// the batch on the given step, 0 when only a first pass exists.
func (r *GormCompletionRepository) GetLatestCycleNumber(ctx context.Context, batchID, executionID kernel.UUID) (int, error) {
	if err := batchID.Validate(); err != nil {
		return 0, err
	}
	if err := executionID.Validate(); err != nil {
		return 0, err
	}

	var latest int
	err := r.db.WithContext(ctx).
		Model(&CompletionDTO{}).
		Where("batch_id = ? AND execution_id = ?", batchID.Bytes(), executionID.Bytes()).
		Select("COALESCE(MAX(rework_cycle_number), 0)").
		Scan(&latest).Error
	if err != nil {
		return 0, err
	}

	return latest, nil
}

// GormReworkBatchRepository implements ReworkBatchRepository using GORM.
type GormReworkBatchRepository struct {
	db *gorm.DB
}

// NewGormReworkBatchRepository creates a new GORM rework job repository.
func NewGormReworkBatchRepository(db *gorm.DB) *GormReworkBatchRepository {
	return &GormReworkBatchRepository{db: db}
}

// Add saves a new rework job to the database.
func (r *GormReworkBatchRepository) Add(ctx context.Context, job *rework.ReworkBatch) error {
	if err := job.Validate(); err != nil {
		return err
	}

	dto := reworkBatchFromDomain(job)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves lifecycle changes of an existing rework job.
func (r *GormReworkBatchRepository) Update(ctx context.Context, job *rework.ReworkBatch) error {
	if err := job.Validate(); err != nil {
		return err
	}

	dto := reworkBatchFromDomain(job)
	result := r.db.WithContext(ctx).Model(&ReworkBatchDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves a rework job by ID.
func (r *GormReworkBatchRepository) Get(ctx context.Context, id kernel.UUID) (*rework.ReworkBatch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReworkBatchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rework batch", id.String())
		}
		return nil, err
	}

	return reworkBatchToDomain(dto)
}

// GormFIReworkRepository implements FIReworkRepository using GORM.
type GormFIReworkRepository struct {
	db *gorm.DB
}

// NewGormFIReworkRepository creates a new GORM final-inspection rework
// repository.
func NewGormFIReworkRepository(db *gorm.DB) *GormFIReworkRepository {
	return &GormFIReworkRepository{db: db}
}

// Add saves a new cycle to the database.
func (r *GormFIReworkRepository) Add(ctx context.Context, f *rework.FinalInspectionRework) error {
	if err := f.Validate(); err != nil {
		return err
	}

	dto := fiReworkFromDomain(f)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves lifecycle and re-inspection changes of an existing cycle.
func (r *GormFIReworkRepository) Update(ctx context.Context, f *rework.FinalInspectionRework) error {
	if err := f.Validate(); err != nil {
		return err
	}

	dto := fiReworkFromDomain(f)
	result := r.db.WithContext(ctx).Model(&FIReworkDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves a cycle by ID.
func (r *GormFIReworkRepository) Get(ctx context.Context, id kernel.UUID) (*rework.FinalInspectionRework, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto FIReworkDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("final inspection rework", id.String())
		}
		return nil, err
	}

	return fiReworkToDomain(dto)
}

// GetLatestByBatchID retrieves the cycle with the highest count for the
// batch. Returns nil without error when the batch has no cycles.
func (r *GormFIReworkRepository) GetLatestByBatchID(ctx context.Context, batchID kernel.UUID) (*rework.FinalInspectionRework, error) {
	if err := batchID.Validate(); err != nil {
		return nil, err
	}

	var dto FIReworkDTO
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID.Bytes()).
		Order("rework_cycle_count DESC").
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return fiReworkToDomain(dto)
}
