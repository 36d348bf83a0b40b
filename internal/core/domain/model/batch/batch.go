package batch

import (
	"errors"
	"fmt"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

var (
	// ErrBatchIsNotConstructed is returned when a Batch instance was not
	// created through the NewBatch factory method.
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")

	// ErrProductCodeMismatch is returned when a batch is created for a product
	// other than its MO's product.
	ErrProductCodeMismatch = errors.New("batch product code must match MO product code")
)

// BatchNumber builds the deterministic batch identity for an MO and a per-MO
// sequence number, e.g. "BATCH-MO-2025-0042-003".
func BatchNumber(moNumber string, sequence int) string {
	return fmt.Sprintf("BATCH-%s-%03d", moNumber, sequence)
}

// Batch is the aggregate root for one production batch. It belongs to exactly
// one MO, carries the MO's product code, and tracks planned versus actual
// quantities as the batch moves through the pipeline.
type Batch struct {
	id          kernel.UUID
	batchNumber string
	sequence    int
	moID        kernel.UUID
	productCode string

	plannedQuantity   kernel.Quantity
	startedQuantity   kernel.Quantity
	completedQuantity kernel.Quantity
	scrapQuantity     kernel.Quantity

	status      Status
	actualStart *time.Time
	actualEnd   *time.Time
	createdBy   kernel.UUID

	guard guard.ConstructorGuard
}

// NewBatch creates a batch in the Created state.
//
// The caller supplies the per-MO sequence number it obtained under the MO's
// exclusive section; the batch number is derived from it deterministically.
// productCode must equal the MO's product code — the mismatch check against
// moProductCode is this aggregate's hard invariant.
func NewBatch(
	id kernel.UUID,
	moID kernel.UUID,
	moNumber string,
	moProductCode string,
	productCode string,
	sequence int,
	plannedQuantity kernel.Quantity,
	createdBy kernel.UUID,
) (*Batch, error) {
	if productCode != moProductCode {
		return nil, ErrProductCodeMismatch
	}

	b := &Batch{
		status: Created,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setMOID(moID),
		b.setIdentity(moNumber, sequence),
		b.setProductCode(productCode),
		b.setPlannedQuantity(plannedQuantity),
		b.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBatch reconstructs a batch aggregate from persistence.
func RestoreBatch(
	id kernel.UUID,
	batchNumber string,
	sequence int,
	moID kernel.UUID,
	productCode string,
	plannedQuantity, startedQuantity, completedQuantity, scrapQuantity kernel.Quantity,
	status Status,
	actualStart, actualEnd *time.Time,
	createdBy kernel.UUID,
) (*Batch, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if batchNumber == "" {
		return nil, errs.NewValueIsRequiredError("batch number")
	}

	b := &Batch{
		batchNumber:       batchNumber,
		sequence:          sequence,
		startedQuantity:   startedQuantity,
		completedQuantity: completedQuantity,
		scrapQuantity:     scrapQuantity,
		status:            status,
		actualStart:       actualStart,
		actualEnd:         actualEnd,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setMOID(moID),
		b.setProductCode(productCode),
		b.setPlannedQuantity(plannedQuantity),
		b.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate ensures the batch was created through one of its constructors.
func (b *Batch) Validate() error {
	if b == nil {
		return ErrBatchIsNotConstructed
	}
	return b.guard.Validate(ErrBatchIsNotConstructed)
}

// IsEqual compares two batches by their unique identifiers.
func (b *Batch) IsEqual(other *Batch) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the batch's unique identifier.
func (b *Batch) ID() kernel.UUID {
	return b.id
}

// BatchNumber returns the deterministic identity, e.g. "BATCH-MO-2025-0042-001".
func (b *Batch) BatchNumber() string {
	return b.batchNumber
}

// Sequence returns the per-MO creation sequence number, starting at 1.
func (b *Batch) Sequence() int {
	return b.sequence
}

// MOID returns the parent manufacturing order's ID.
func (b *Batch) MOID() kernel.UUID {
	return b.moID
}

// ProductCode returns the product being manufactured, always equal to the
// parent MO's product code.
func (b *Batch) ProductCode() string {
	return b.productCode
}

// PlannedQuantity returns the quantity planned for this batch.
func (b *Batch) PlannedQuantity() kernel.Quantity {
	return b.plannedQuantity
}

// StartedQuantity returns the quantity that actually entered processing.
func (b *Batch) StartedQuantity() kernel.Quantity {
	return b.startedQuantity
}

// CompletedQuantity returns the quantity completed successfully so far.
func (b *Batch) CompletedQuantity() kernel.Quantity {
	return b.completedQuantity
}

// ScrapQuantity returns the quantity scrapped so far.
func (b *Batch) ScrapQuantity() kernel.Quantity {
	return b.scrapQuantity
}

// Status returns the current batch status.
func (b *Batch) Status() Status {
	return b.status
}

// ActualStart returns when processing started, nil before then.
func (b *Batch) ActualStart() *time.Time {
	return b.actualStart
}

// ActualEnd returns when the batch completed, nil before then.
func (b *Batch) ActualEnd() *time.Time {
	return b.actualEnd
}

// CreatedBy returns the user who created the batch.
func (b *Batch) CreatedBy() kernel.UUID {
	return b.createdBy
}

// CompletionPercentage returns completed/planned as a percentage.
func (b *Batch) CompletionPercentage() float64 {
	if !b.plannedQuantity.IsPositive() {
		return 0
	}
	return b.completedQuantity.Kg() / b.plannedQuantity.Kg() * 100
}

// MarkRMAllocated records that the batch has been allocated to a process.
// The batch status always mirrors the most recent allocation.
func (b *Batch) MarkRMAllocated() error {
	if err := b.Validate(); err != nil {
		return err
	}
	newStatus, err := b.status.AllocateRM()
	if err != nil {
		return err
	}
	b.status = newStatus
	return nil
}

// Start records receipt by an operator: the batch enters processing with the
// given started quantity, and the actual start date is stamped on the first
// start only.
func (b *Batch) Start(startedQuantity kernel.Quantity, at time.Time) error {
	if err := b.Validate(); err != nil {
		return err
	}
	newStatus, err := b.status.Start()
	if err != nil {
		return err
	}
	b.status = newStatus
	b.startedQuantity = startedQuantity
	if b.actualStart == nil {
		b.actualStart = &at
	}
	return nil
}

// RecordOutcome accumulates completed and scrapped quantities from one
// processing pass without changing the batch status. Downstream receipt is
// still pending at this point.
func (b *Batch) RecordOutcome(completed, scrap kernel.Quantity) error {
	if err := b.Validate(); err != nil {
		return err
	}
	b.completedQuantity = b.completedQuantity.Add(completed)
	b.scrapQuantity = b.scrapQuantity.Add(scrap)
	return nil
}

// Complete marks the batch finished and stamps the actual end date.
func (b *Batch) Complete(at time.Time) error {
	if err := b.Validate(); err != nil {
		return err
	}
	newStatus, err := b.status.Complete()
	if err != nil {
		return err
	}
	b.status = newStatus
	b.actualEnd = &at
	return nil
}

// Hold parks the batch pending issue resolution.
func (b *Batch) Hold() error {
	if err := b.Validate(); err != nil {
		return err
	}
	newStatus, err := b.status.Hold()
	if err != nil {
		return err
	}
	b.status = newStatus
	return nil
}

// Release returns a held batch to the active work queue.
func (b *Batch) Release() error {
	if err := b.Validate(); err != nil {
		return err
	}
	newStatus, err := b.status.Release()
	if err != nil {
		return err
	}
	b.status = newStatus
	return nil
}

// Cancel terminates the batch.
func (b *Batch) Cancel() error {
	if err := b.Validate(); err != nil {
		return err
	}
	newStatus, err := b.status.Cancel()
	if err != nil {
		return err
	}
	b.status = newStatus
	return nil
}

func (b *Batch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Batch) setMOID(moID kernel.UUID) error {
	if err := moID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("mo id", err)
	}
	b.moID = moID
	return nil
}

func (b *Batch) setIdentity(moNumber string, sequence int) error {
	if moNumber == "" {
		return errs.NewValueIsRequiredError("mo number")
	}
	if sequence < 1 {
		return errs.NewValueIsInvalidErrorWithCause("batch sequence",
			fmt.Errorf("%d is not greater than 0", sequence))
	}
	b.sequence = sequence
	b.batchNumber = BatchNumber(moNumber, sequence)
	return nil
}

func (b *Batch) setProductCode(productCode string) error {
	if productCode == "" {
		return errs.NewValueIsRequiredError("product code")
	}
	b.productCode = productCode
	return nil
}

func (b *Batch) setPlannedQuantity(q kernel.Quantity) error {
	if !q.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("planned quantity",
			fmt.Errorf("%s is not greater than 0", q))
	}
	b.plannedQuantity = q
	return nil
}

func (b *Batch) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("created by", err)
	}
	b.createdBy = createdBy
	return nil
}
