package morepo

import (
	"context"
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/order"
	"mestrace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMORepository implements MORepository using GORM.
type GormMORepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMORepository creates a new GORM manufacturing order repository.
func NewGormMORepository(db *gorm.DB, tracker aggregateTracker) *GormMORepository {
	return &GormMORepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new manufacturing order to the database.
func (r *GormMORepository) Add(ctx context.Context, aggregate *order.ManufacturingOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves workflow and lifecycle changes of an existing order.
func (r *GormMORepository) Update(ctx context.Context, aggregate *order.ManufacturingOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&MODTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a manufacturing order by ID.
func (r *GormMORepository) Get(ctx context.Context, id kernel.UUID) (*order.ManufacturingOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MODTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("manufacturing order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves a manufacturing order by its human-readable number.
func (r *GormMORepository) GetByNumber(ctx context.Context, moNumber string) (*order.ManufacturingOrder, error) {
	if moNumber == "" {
		return nil, errs.NewValueIsRequiredError("moNumber")
	}

	var dto MODTO
	if err := r.db.WithContext(ctx).First(&dto, "mo_number = ?", moNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("manufacturing order", moNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}
