package processrepo

import (
	"context"
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/process"
	"mestrace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormExecutionRepository implements ExecutionRepository using GORM.
type GormExecutionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormExecutionRepository creates a new GORM pipeline step repository.
func NewGormExecutionRepository(db *gorm.DB, tracker aggregateTracker) *GormExecutionRepository {
	return &GormExecutionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new pipeline step to the database.
func (r *GormExecutionRepository) Add(ctx context.Context, e *process.ProcessExecution) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := executionFromDomain(e)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(e.ID(), e)
	return nil
}

// Update saves changes to an existing pipeline step.
func (r *GormExecutionRepository) Update(ctx context.Context, e *process.ProcessExecution) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := executionFromDomain(e)
	result := r.db.WithContext(ctx).Model(&ExecutionDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(e.ID(), e)
	return nil
}

// Get retrieves a pipeline step by ID.
func (r *GormExecutionRepository) Get(ctx context.Context, id kernel.UUID) (*process.ProcessExecution, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ExecutionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("process execution", id.String())
		}
		return nil, err
	}

	return executionToDomain(dto)
}

// GetAllByMOID retrieves the full pipeline of an MO ordered by sequence.
func (r *GormExecutionRepository) GetAllByMOID(ctx context.Context, moID kernel.UUID) ([]*process.ProcessExecution, error) {
	if err := moID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ExecutionDTO
	if err := r.db.WithContext(ctx).
		Where("mo_id = ?", moID.Bytes()).
		Order("sequence_order").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	executions := make([]*process.ProcessExecution, 0, len(dtos))
	for _, dto := range dtos {
		e, err := executionToDomain(dto)
		if err != nil {
			return nil, err
		}
		executions = append(executions, e)
	}

	return executions, nil
}

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Add saves a new assignment record to the database.
func (r *GormAssignmentRepository) Add(ctx context.Context, a *process.ProcessAssignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := assignmentFromDomain(a)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves the closing of an existing record.
func (r *GormAssignmentRepository) Update(ctx context.Context, a *process.ProcessAssignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := assignmentFromDomain(a)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves an assignment record by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*process.ProcessAssignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("process assignment", id.String())
		}
		return nil, err
	}

	return assignmentToDomain(dto)
}

// GetActiveByExecutionID retrieves the open assignment of a pipeline step.
// Returns nil without error when no assignment is open.
func (r *GormAssignmentRepository) GetActiveByExecutionID(ctx context.Context, executionID kernel.UUID) (*process.ProcessAssignment, error) {
	if err := executionID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		Where("execution_id = ? AND closed_at IS NULL", executionID.Bytes()).
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return assignmentToDomain(dto)
}

// GormAllocationRepository implements AllocationRepository using GORM.
type GormAllocationRepository struct {
	db *gorm.DB
}

// NewGormAllocationRepository creates a new GORM allocation repository.
func NewGormAllocationRepository(db *gorm.DB) *GormAllocationRepository {
	return &GormAllocationRepository{db: db}
}

// Add saves a new allocation to the database.
func (r *GormAllocationRepository) Add(ctx context.Context, al *process.BatchAllocation) error {
	if err := al.Validate(); err != nil {
		return err
	}

	dto := allocationFromDomain(al)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves changes to an existing allocation.
func (r *GormAllocationRepository) Update(ctx context.Context, al *process.BatchAllocation) error {
	if err := al.Validate(); err != nil {
		return err
	}

	dto := allocationFromDomain(al)
	result := r.db.WithContext(ctx).Model(&AllocationDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves an allocation by ID.
func (r *GormAllocationRepository) Get(ctx context.Context, id kernel.UUID) (*process.BatchAllocation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AllocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("batch allocation", id.String())
		}
		return nil, err
	}

	return allocationToDomain(dto)
}

// GetOpenByBatchID retrieves the in-flight allocation of a batch. Returns
// nil without error when the batch has no open allocation.
func (r *GormAllocationRepository) GetOpenByBatchID(ctx context.Context, batchID kernel.UUID) (*process.BatchAllocation, error) {
	if err := batchID.Validate(); err != nil {
		return nil, err
	}

	var dto AllocationDTO
	err := r.db.WithContext(ctx).
		Where("batch_id = ? AND status NOT IN ?", batchID.Bytes(),
			[]int{int(process.AllocationCompleted), int(process.AllocationReturned)}).
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return allocationToDomain(dto)
}
