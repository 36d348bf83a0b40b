package rework

import (
	"errors"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

// ErrCompletionIsNotConstructed is returned when a BatchProcessCompletion
// instance was not created through one of its factory methods.
var ErrCompletionIsNotConstructed = errors.New(
	"BatchProcessCompletion must be created via NewBatchProcessCompletion constructor")

// BatchProcessCompletion is the immutable record of what came out of one pass
// of a batch through a pipeline step. The split must conserve the input
// quantity within the standard tolerance. Cycle number 0 is the first pass;
// rework cycles carry their parent completion and may not route quantity to
// rework again.
type BatchProcessCompletion struct {
	id          kernel.UUID
	batchID     kernel.UUID
	executionID kernel.UUID
	completedBy kernel.UUID

	inputQuantity  kernel.Quantity
	okQuantity     kernel.Quantity
	scrapQuantity  kernel.Quantity
	reworkQuantity kernel.Quantity

	reworkCycleNumber  int
	isReworkCycle      bool
	parentCompletionID *kernel.UUID

	remarks     string
	completedAt time.Time

	guard guard.ConstructorGuard
}

// NewBatchProcessCompletion records a first-pass completion.
//
// Business rules:
//   - All part quantities must be non-negative
//   - ok + scrap + rework must equal the input within the standard tolerance
func NewBatchProcessCompletion(
	id kernel.UUID,
	batchID kernel.UUID,
	executionID kernel.UUID,
	completedBy kernel.UUID,
	inputQuantity, okQuantity, scrapQuantity, reworkQuantity kernel.Quantity,
	remarks string,
	completedAt time.Time,
) (*BatchProcessCompletion, error) {
	c := &BatchProcessCompletion{
		remarks:     remarks,
		completedAt: completedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setBatchID(batchID),
		c.setExecutionID(executionID),
		c.setCompletedBy(completedBy),
		c.setQuantities(inputQuantity, okQuantity, scrapQuantity, reworkQuantity),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// NewReworkCycleCompletion records the outcome of a rework cycle. The input
// is the reworked quantity and must split fully into OK and scrap: a rework
// cycle never routes quantity to rework again.
func NewReworkCycleCompletion(
	id kernel.UUID,
	batchID kernel.UUID,
	executionID kernel.UUID,
	completedBy kernel.UUID,
	inputQuantity, okQuantity, scrapQuantity kernel.Quantity,
	cycleNumber int,
	parentCompletionID kernel.UUID,
	remarks string,
	completedAt time.Time,
) (*BatchProcessCompletion, error) {
	c, err := NewBatchProcessCompletion(
		id, batchID, executionID, completedBy,
		inputQuantity, okQuantity, scrapQuantity, kernel.Quantity{},
		remarks, completedAt,
	)
	if err != nil {
		return nil, err
	}
	if cycleNumber < 1 {
		return nil, errs.NewValueIsOutOfRangeError("cycleNumber", cycleNumber, 1, maxReworkCycles)
	}
	if err := parentCompletionID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("parentCompletionID", err)
	}
	c.reworkCycleNumber = cycleNumber
	c.isReworkCycle = true
	c.parentCompletionID = &parentCompletionID
	return c, nil
}

// RestoreBatchProcessCompletion reconstructs a completion from persistence.
func RestoreBatchProcessCompletion(
	id kernel.UUID,
	batchID kernel.UUID,
	executionID kernel.UUID,
	completedBy kernel.UUID,
	inputQuantity, okQuantity, scrapQuantity, reworkQuantity kernel.Quantity,
	reworkCycleNumber int,
	isReworkCycle bool,
	parentCompletionID *kernel.UUID,
	remarks string,
	completedAt time.Time,
) (*BatchProcessCompletion, error) {
	c := &BatchProcessCompletion{
		reworkCycleNumber:  reworkCycleNumber,
		isReworkCycle:      isReworkCycle,
		parentCompletionID: parentCompletionID,
		remarks:            remarks,
		completedAt:        completedAt,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setBatchID(batchID),
		c.setExecutionID(executionID),
		c.setCompletedBy(completedBy),
		c.setQuantities(inputQuantity, okQuantity, scrapQuantity, reworkQuantity),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the completion was created through one of its constructors.
func (c *BatchProcessCompletion) Validate() error {
	if c == nil {
		return ErrCompletionIsNotConstructed
	}
	return c.guard.Validate(ErrCompletionIsNotConstructed)
}

func (c *BatchProcessCompletion) ID() kernel.UUID {
	return c.id
}

func (c *BatchProcessCompletion) BatchID() kernel.UUID {
	return c.batchID
}

func (c *BatchProcessCompletion) ExecutionID() kernel.UUID {
	return c.executionID
}

func (c *BatchProcessCompletion) CompletedBy() kernel.UUID {
	return c.completedBy
}

func (c *BatchProcessCompletion) InputQuantity() kernel.Quantity {
	return c.inputQuantity
}

func (c *BatchProcessCompletion) OKQuantity() kernel.Quantity {
	return c.okQuantity
}

func (c *BatchProcessCompletion) ScrapQuantity() kernel.Quantity {
	return c.scrapQuantity
}

func (c *BatchProcessCompletion) ReworkQuantity() kernel.Quantity {
	return c.reworkQuantity
}

// ReworkCycleNumber is 0 for a first pass, n for the n-th rework cycle.
func (c *BatchProcessCompletion) ReworkCycleNumber() int {
	return c.reworkCycleNumber
}

func (c *BatchProcessCompletion) IsReworkCycle() bool {
	return c.isReworkCycle
}

func (c *BatchProcessCompletion) ParentCompletionID() *kernel.UUID {
	return c.parentCompletionID
}

func (c *BatchProcessCompletion) Remarks() string {
	return c.remarks
}

func (c *BatchProcessCompletion) CompletedAt() time.Time {
	return c.completedAt
}

// RequiresRework reports whether this completion routed quantity to rework.
func (c *BatchProcessCompletion) RequiresRework() bool {
	return c.reworkQuantity.IsPositive()
}

// OKPercentage returns the OK share of the input quantity.
func (c *BatchProcessCompletion) OKPercentage() float64 {
	return c.share(c.okQuantity)
}

// ScrapPercentage returns the scrap share of the input quantity.
func (c *BatchProcessCompletion) ScrapPercentage() float64 {
	return c.share(c.scrapQuantity)
}

// ReworkPercentage returns the rework share of the input quantity.
func (c *BatchProcessCompletion) ReworkPercentage() float64 {
	return c.share(c.reworkQuantity)
}

func (c *BatchProcessCompletion) share(part kernel.Quantity) float64 {
	if c.inputQuantity.IsZero() {
		return 0
	}
	return part.Kg() / c.inputQuantity.Kg() * 100
}

func (c *BatchProcessCompletion) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	c.id = id
	return nil
}

func (c *BatchProcessCompletion) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("batchID", err)
	}
	c.batchID = batchID
	return nil
}

func (c *BatchProcessCompletion) setExecutionID(executionID kernel.UUID) error {
	if err := executionID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("executionID", err)
	}
	c.executionID = executionID
	return nil
}

func (c *BatchProcessCompletion) setCompletedBy(completedBy kernel.UUID) error {
	if err := completedBy.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("completedBy", err)
	}
	c.completedBy = completedBy
	return nil
}

func (c *BatchProcessCompletion) setQuantities(input, ok, scrap, rework kernel.Quantity) error {
	if !input.IsPositive() {
		return errs.NewValueIsInvalidError("inputQuantity")
	}
	if err := kernel.CheckConservation(input, ok, scrap, rework); err != nil {
		return err
	}
	c.inputQuantity = input
	c.okQuantity = ok
	c.scrapQuantity = scrap
	c.reworkQuantity = rework
	return nil
}

const maxReworkCycles = 100
