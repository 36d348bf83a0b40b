package batchrepo

import (
	"context"
	"errors"

	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBatchRepository implements BatchRepository using GORM.
type GormBatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBatchRepository creates a new GORM batch repository.
func NewGormBatchRepository(db *gorm.DB, tracker aggregateTracker) *GormBatchRepository {
	return &GormBatchRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new batch to the database.
func (r *GormBatchRepository) Add(ctx context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewVersionIsInvalidError("batch sequence", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves lifecycle and quantity changes of an existing batch.
func (r *GormBatchRepository) Update(ctx context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&BatchDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a batch by ID.
func (r *GormBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BatchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("batch", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByMOID retrieves every batch split from the given MO, ordered by
// sequence.
func (r *GormBatchRepository) GetAllByMOID(ctx context.Context, moID kernel.UUID) ([]*batch.Batch, error) {
	if err := moID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BatchDTO
	if err := r.db.WithContext(ctx).
		Where("mo_id = ?", moID.Bytes()).
		Order("sequence").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	batches := make([]*batch.Batch, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}

	return batches, nil
}

// NextSequence atomically claims the next batch sequence number for the MO.
// The counter row is seeded with ON CONFLICT DO NOTHING so concurrent first
// claims converge on a single row, then locked FOR UPDATE; claims within
// separate transactions serialize and each caller sees a distinct number.
func (r *GormBatchRepository) NextSequence(ctx context.Context, moID kernel.UUID) (int, error) {
	if err := moID.Validate(); err != nil {
		return 0, err
	}

	seed := BatchCounterDTO{MOID: moID.Bytes(), LastSequence: 0}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "mo_id"}},
			DoNothing: true,
		}).
		Create(&seed).Error; err != nil {
		return 0, err
	}

	var counter BatchCounterDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&counter, "mo_id = ?", moID.Bytes()).Error; err != nil {
		return 0, err
	}

	counter.LastSequence++
	if err := r.db.WithContext(ctx).
		Model(&BatchCounterDTO{}).
		Where("mo_id = ?", counter.MOID).
		Update("last_sequence", counter.LastSequence).Error; err != nil {
		return 0, err
	}

	return counter.LastSequence, nil
}

// isUniqueViolation reports whether err is a postgres uniqueness-constraint
// violation (class 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// GormFGVerificationRepository implements FGVerificationRepository using GORM.
type GormFGVerificationRepository struct {
	db *gorm.DB
}

// NewGormFGVerificationRepository creates a new GORM finished-goods
// verification repository.
func NewGormFGVerificationRepository(db *gorm.DB) *GormFGVerificationRepository {
	return &GormFGVerificationRepository{db: db}
}

// Add saves a new verification to the database.
func (r *GormFGVerificationRepository) Add(ctx context.Context, v *batch.FinishedGoodsVerification) error {
	if err := v.Validate(); err != nil {
		return err
	}

	dto := fgFromDomain(v)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves changes to an existing verification.
func (r *GormFGVerificationRepository) Update(ctx context.Context, v *batch.FinishedGoodsVerification) error {
	if err := v.Validate(); err != nil {
		return err
	}

	dto := fgFromDomain(v)
	result := r.db.WithContext(ctx).Model(&FGVerificationDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves a verification by ID.
func (r *GormFGVerificationRepository) Get(ctx context.Context, id kernel.UUID) (*batch.FinishedGoodsVerification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto FGVerificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("finished goods verification", id.String())
		}
		return nil, err
	}

	return fgToDomain(dto)
}

// GetByBatchID retrieves the verification opened for the given batch.
func (r *GormFGVerificationRepository) GetByBatchID(ctx context.Context, batchID kernel.UUID) (*batch.FinishedGoodsVerification, error) {
	if err := batchID.Validate(); err != nil {
		return nil, err
	}

	var dto FGVerificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "batch_id = ?", batchID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("finished goods verification", batchID.String())
		}
		return nil, err
	}

	return fgToDomain(dto)
}
