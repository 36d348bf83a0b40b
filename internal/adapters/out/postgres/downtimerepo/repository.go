package downtimerepo

import (
	"context"
	"errors"
	"time"

	"mestrace/internal/core/domain/model/downtime"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStopRepository implements StopRepository using GORM.
type GormStopRepository struct {
	db *gorm.DB
}

// NewGormStopRepository creates a new GORM process stop repository.
func NewGormStopRepository(db *gorm.DB) *GormStopRepository {
	return &GormStopRepository{db: db}
}

// Add saves a new stop to the database.
func (r *GormStopRepository) Add(ctx context.Context, s *downtime.ProcessStop) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := stopFromDomain(s)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves the resume of an existing stop.
func (r *GormStopRepository) Update(ctx context.Context, s *downtime.ProcessStop) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := stopFromDomain(s)
	result := r.db.WithContext(ctx).Model(&StopDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves a stop by ID.
func (r *GormStopRepository) Get(ctx context.Context, id kernel.UUID) (*downtime.ProcessStop, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StopDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("process stop", id.String())
		}
		return nil, err
	}

	return stopToDomain(dto)
}

// GetOpenByExecutionID retrieves the unresolved stop of a pipeline step.
// Returns nil without error when no stop is open.
func (r *GormStopRepository) GetOpenByExecutionID(ctx context.Context, executionID kernel.UUID) (*downtime.ProcessStop, error) {
	if err := executionID.Validate(); err != nil {
		return nil, err
	}

	var dto StopDTO
	err := r.db.WithContext(ctx).
		Where("execution_id = ? AND resumed_at IS NULL", executionID.Bytes()).
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return stopToDomain(dto)
}

// GetResolvedByExecutionAndDay retrieves all resolved stops of a pipeline
// step stopped on the given UTC day, chronologically.
func (r *GormStopRepository) GetResolvedByExecutionAndDay(
	ctx context.Context, executionID kernel.UUID, day time.Time,
) ([]*downtime.ProcessStop, error) {
	if err := executionID.Validate(); err != nil {
		return nil, err
	}

	from := downtime.Day(day)
	to := from.Add(24 * time.Hour)

	var dtos []StopDTO
	if err := r.db.WithContext(ctx).
		Where("execution_id = ? AND resumed_at IS NOT NULL AND stopped_at >= ? AND stopped_at < ?",
			executionID.Bytes(), from, to).
		Order("stopped_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	stops := make([]*downtime.ProcessStop, 0, len(dtos))
	for _, dto := range dtos {
		s, err := stopToDomain(dto)
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}

	return stops, nil
}

// GetExecutionsWithStopsOnDay retrieves the pipeline steps with at least one
// resolved stop on the given UTC day.
func (r *GormStopRepository) GetExecutionsWithStopsOnDay(
	ctx context.Context, day time.Time,
) ([]kernel.UUID, error) {
	from := downtime.Day(day)
	to := from.Add(24 * time.Hour)

	var dtos []StopDTO
	if err := r.db.WithContext(ctx).
		Distinct("execution_id").
		Where("resumed_at IS NOT NULL AND stopped_at >= ? AND stopped_at < ?", from, to).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	executionIDs := make([]kernel.UUID, 0, len(dtos))
	for _, dto := range dtos {
		executionID, err := kernel.UUIDFromBytes(dto.ExecutionID[:])
		if err != nil {
			return nil, err
		}
		executionIDs = append(executionIDs, executionID)
	}

	return executionIDs, nil
}

// GormSummaryRepository implements SummaryRepository using GORM.
type GormSummaryRepository struct {
	db *gorm.DB
}

// NewGormSummaryRepository creates a new GORM downtime summary repository.
func NewGormSummaryRepository(db *gorm.DB) *GormSummaryRepository {
	return &GormSummaryRepository{db: db}
}

// Upsert replaces the summary row for the summary's (execution, day) pair.
func (r *GormSummaryRepository) Upsert(ctx context.Context, s *downtime.ProcessDowntimeSummary) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto, err := summaryFromDomain(s)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "execution_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_stops", "total_downtime_minutes", "minutes_by_reason", "computed_at",
			}),
		}).
		Create(&dto).Error
}

// GetByExecutionAndDay retrieves the summary of a pipeline step for the
// given UTC day. Returns nil without error when none was computed yet.
func (r *GormSummaryRepository) GetByExecutionAndDay(
	ctx context.Context, executionID kernel.UUID, day time.Time,
) (*downtime.ProcessDowntimeSummary, error) {
	if err := executionID.Validate(); err != nil {
		return nil, err
	}

	var dto SummaryDTO
	err := r.db.WithContext(ctx).
		Where("execution_id = ? AND day = ?", executionID.Bytes(), downtime.Day(day)).
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return summaryToDomain(dto)
}
