// Package downtimerepo provides data transfer objects and mapping functions
// for downtime persistence: process stops and the per-day rollup rows
// recomputed by the summary job. The per-reason minute breakdown is stored
// as jsonb.
package downtimerepo

import (
	"encoding/json"
	"strconv"
	"time"

	"mestrace/internal/core/domain/model/downtime"
	"mestrace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// StopDTO represents the database structure for process stops.
type StopDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExecutionID     uuid.UUID `gorm:"type:uuid;index"`
	Reason          int
	Remarks         string
	StoppedBy       uuid.UUID `gorm:"type:uuid"`
	StoppedAt       time.Time `gorm:"index"`
	ResumedBy       *uuid.UUID `gorm:"type:uuid"`
	ResumedAt       *time.Time
	DowntimeMinutes *int
}

// TableName overrides GORM's default naming to use "process_stops".
func (StopDTO) TableName() string {
	return "process_stops"
}

// SummaryDTO represents the database structure for per-day downtime rollups.
// One row per (execution, day); refreshes replace the row in place.
type SummaryDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExecutionID          uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_summaries_execution_day"`
	Day                  time.Time `gorm:"uniqueIndex:idx_summaries_execution_day"`
	TotalStops           int
	TotalDowntimeMinutes int
	MinutesByReason      []byte `gorm:"type:jsonb"`
	ComputedAt           time.Time
}

// TableName overrides GORM's default naming to use
// "process_downtime_summaries".
func (SummaryDTO) TableName() string {
	return "process_downtime_summaries"
}

// stopFromDomain converts a stop to its database representation.
func stopFromDomain(s *downtime.ProcessStop) StopDTO {
	dto := StopDTO{
		ID:              s.ID().Bytes(),
		ExecutionID:     s.ExecutionID().Bytes(),
		Reason:          int(s.Reason()),
		Remarks:         s.Remarks(),
		StoppedBy:       s.StoppedBy().Bytes(),
		StoppedAt:       s.StoppedAt(),
		ResumedAt:       s.ResumedAt(),
		DowntimeMinutes: s.DowntimeMinutes(),
	}
	if by := s.ResumedBy(); by != nil {
		raw := by.Bytes()
		dto.ResumedBy = &raw
	}
	return dto
}

// stopToDomain converts a database DTO back to a stop.
func stopToDomain(dto StopDTO) (*downtime.ProcessStop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	executionID, err := kernel.UUIDFromBytes(dto.ExecutionID[:])
	if err != nil {
		return nil, err
	}

	stoppedBy, err := kernel.UUIDFromBytes(dto.StoppedBy[:])
	if err != nil {
		return nil, err
	}

	var resumedBy *kernel.UUID
	if dto.ResumedBy != nil {
		rb, rbErr := kernel.UUIDFromBytes((*dto.ResumedBy)[:])
		if rbErr != nil {
			return nil, rbErr
		}
		resumedBy = &rb
	}

	return downtime.RestoreProcessStop(
		id, executionID,
		downtime.StopReason(dto.Reason), dto.Remarks,
		stoppedBy, dto.StoppedAt,
		resumedBy, dto.ResumedAt, dto.DowntimeMinutes,
	)
}

// summaryFromDomain converts a rollup to its database representation.
func summaryFromDomain(s *downtime.ProcessDowntimeSummary) (SummaryDTO, error) {
	byReason := make(map[string]int)
	for reason, minutes := range s.MinutesByReason() {
		byReason[strconv.Itoa(int(reason))] = minutes
	}
	raw, err := json.Marshal(byReason)
	if err != nil {
		return SummaryDTO{}, err
	}

	return SummaryDTO{
		ID:                   s.ID().Bytes(),
		ExecutionID:          s.ExecutionID().Bytes(),
		Day:                  s.Day(),
		TotalStops:           s.TotalStops(),
		TotalDowntimeMinutes: s.TotalDowntimeMinutes(),
		MinutesByReason:      raw,
		ComputedAt:           s.ComputedAt(),
	}, nil
}

// summaryToDomain converts a database DTO back to a rollup.
func summaryToDomain(dto SummaryDTO) (*downtime.ProcessDowntimeSummary, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	executionID, err := kernel.UUIDFromBytes(dto.ExecutionID[:])
	if err != nil {
		return nil, err
	}

	var raw map[string]int
	if len(dto.MinutesByReason) > 0 {
		if err = json.Unmarshal(dto.MinutesByReason, &raw); err != nil {
			return nil, err
		}
	}
	byReason := make(map[downtime.StopReason]int, len(raw))
	for key, minutes := range raw {
		reason, convErr := strconv.Atoi(key)
		if convErr != nil {
			return nil, convErr
		}
		byReason[downtime.StopReason(reason)] = minutes
	}

	return downtime.NewProcessDowntimeSummary(
		id, executionID, dto.Day,
		dto.TotalStops, dto.TotalDowntimeMinutes,
		byReason, dto.ComputedAt,
	)
}
