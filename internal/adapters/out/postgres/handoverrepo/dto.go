// Package handoverrepo provides data transfer objects and mapping functions
// for handover persistence: the transit records written at handover time and
// the receipt verifications recorded against allocations.
package handoverrepo

import (
	"time"

	"mestrace/internal/core/domain/model/handover"
	"mestrace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ReceiptLogDTO represents the database structure for transit records.
type ReceiptLogDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BatchID          uuid.UUID  `gorm:"type:uuid;index"`
	AllocationID     uuid.UUID  `gorm:"type:uuid;index"`
	FromExecutionID  *uuid.UUID `gorm:"type:uuid"`
	ToExecutionID    uuid.UUID  `gorm:"type:uuid"`
	HandedOverBy     uuid.UUID  `gorm:"type:uuid"`
	HandoverQuantity float64
	HandedOverAt     time.Time
	ReceivedAt       *time.Time
	ReceivedQuantity *float64
	VerificationID   *uuid.UUID `gorm:"type:uuid"`
	IsVerified       bool
	HasIssues        bool
}

// TableName overrides GORM's default naming to use "batch_receipt_logs".
func (ReceiptLogDTO) TableName() string {
	return "batch_receipt_logs"
}

// VerificationDTO represents the database structure for receipt
// verifications.
type VerificationDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	AllocationID     uuid.UUID `gorm:"type:uuid;index"`
	VerifiedBy       uuid.UUID `gorm:"type:uuid"`
	Action           int
	ReportReason     int
	ExpectedQuantity float64
	ActualQuantity   *float64
	Notes            string
	VerifiedAt       time.Time
	IsOnHold         bool
	HoldClearedBy    *uuid.UUID `gorm:"type:uuid"`
	HoldClearedAt    *time.Time
	IsResolved       bool
	ResolvedBy       *uuid.UUID `gorm:"type:uuid"`
	ResolvedAt       *time.Time
	ResolutionNotes  string
}

// TableName overrides GORM's default naming to use
// "batch_receipt_verifications".
func (VerificationDTO) TableName() string {
	return "batch_receipt_verifications"
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreOptionalID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	restored, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &restored, nil
}

func optionalKg(q *kernel.Quantity) *float64 {
	if q == nil {
		return nil
	}
	kg := q.Kg()
	return &kg
}

func restoreOptionalQuantity(kg *float64) (*kernel.Quantity, error) {
	if kg == nil {
		return nil, nil
	}
	q, err := kernel.NewQuantity(*kg)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// logFromDomain converts a transit record to its database representation.
func logFromDomain(l *handover.BatchReceiptLog) ReceiptLogDTO {
	return ReceiptLogDTO{
		ID:               l.ID().Bytes(),
		BatchID:          l.BatchID().Bytes(),
		AllocationID:     l.AllocationID().Bytes(),
		FromExecutionID:  optionalID(l.FromExecutionID()),
		ToExecutionID:    l.ToExecutionID().Bytes(),
		HandedOverBy:     l.HandedOverBy().Bytes(),
		HandoverQuantity: l.HandoverQuantity().Kg(),
		HandedOverAt:     l.HandedOverAt(),
		ReceivedAt:       l.ReceivedAt(),
		ReceivedQuantity: optionalKg(l.ReceivedQuantity()),
		VerificationID:   optionalID(l.VerificationID()),
		IsVerified:       l.IsVerified(),
		HasIssues:        l.HasIssues(),
	}
}

// logToDomain converts a database DTO back to a transit record.
func logToDomain(dto ReceiptLogDTO) (*handover.BatchReceiptLog, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	batchID, err := kernel.UUIDFromBytes(dto.BatchID[:])
	if err != nil {
		return nil, err
	}

	allocationID, err := kernel.UUIDFromBytes(dto.AllocationID[:])
	if err != nil {
		return nil, err
	}

	fromExecutionID, err := restoreOptionalID(dto.FromExecutionID)
	if err != nil {
		return nil, err
	}

	toExecutionID, err := kernel.UUIDFromBytes(dto.ToExecutionID[:])
	if err != nil {
		return nil, err
	}

	handedOverBy, err := kernel.UUIDFromBytes(dto.HandedOverBy[:])
	if err != nil {
		return nil, err
	}

	handoverQuantity, err := kernel.NewQuantity(dto.HandoverQuantity)
	if err != nil {
		return nil, err
	}

	receivedQuantity, err := restoreOptionalQuantity(dto.ReceivedQuantity)
	if err != nil {
		return nil, err
	}

	verificationID, err := restoreOptionalID(dto.VerificationID)
	if err != nil {
		return nil, err
	}

	return handover.RestoreBatchReceiptLog(
		id, batchID, allocationID,
		fromExecutionID, toExecutionID,
		handedOverBy, handoverQuantity, dto.HandedOverAt,
		dto.ReceivedAt, receivedQuantity,
		verificationID, dto.IsVerified, dto.HasIssues,
	)
}

// verificationFromDomain converts a receipt verification to its database
// representation.
func verificationFromDomain(v *handover.BatchReceiptVerification) VerificationDTO {
	return VerificationDTO{
		ID:               v.ID().Bytes(),
		AllocationID:     v.AllocationID().Bytes(),
		VerifiedBy:       v.VerifiedBy().Bytes(),
		Action:           int(v.Action()),
		ReportReason:     int(v.ReportReason()),
		ExpectedQuantity: v.ExpectedQuantity().Kg(),
		ActualQuantity:   optionalKg(v.ActualQuantity()),
		Notes:            v.Notes(),
		VerifiedAt:       v.VerifiedAt(),
		IsOnHold:         v.IsOnHold(),
		HoldClearedBy:    optionalID(v.HoldClearedBy()),
		HoldClearedAt:    v.HoldClearedAt(),
		IsResolved:       v.IsResolved(),
		ResolvedBy:       optionalID(v.ResolvedBy()),
		ResolvedAt:       v.ResolvedAt(),
		ResolutionNotes:  v.ResolutionNotes(),
	}
}

// verificationToDomain converts a database DTO back to a receipt
// verification.
func verificationToDomain(dto VerificationDTO) (*handover.BatchReceiptVerification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	allocationID, err := kernel.UUIDFromBytes(dto.AllocationID[:])
	if err != nil {
		return nil, err
	}

	verifiedBy, err := kernel.UUIDFromBytes(dto.VerifiedBy[:])
	if err != nil {
		return nil, err
	}

	expectedQuantity, err := kernel.NewQuantity(dto.ExpectedQuantity)
	if err != nil {
		return nil, err
	}

	actualQuantity, err := restoreOptionalQuantity(dto.ActualQuantity)
	if err != nil {
		return nil, err
	}

	holdClearedBy, err := restoreOptionalID(dto.HoldClearedBy)
	if err != nil {
		return nil, err
	}

	resolvedBy, err := restoreOptionalID(dto.ResolvedBy)
	if err != nil {
		return nil, err
	}

	return handover.RestoreBatchReceiptVerification(
		id, allocationID, verifiedBy,
		handover.Action(dto.Action),
		handover.ReportReason(dto.ReportReason),
		expectedQuantity, actualQuantity,
		dto.Notes, dto.VerifiedAt,
		dto.IsOnHold, holdClearedBy, dto.HoldClearedAt,
		dto.IsResolved, resolvedBy, dto.ResolvedAt, dto.ResolutionNotes,
	)
}
