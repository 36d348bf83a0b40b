package order

import (
	"errors"
	"fmt"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when a ManufacturingOrder instance
	// was not created through the NewManufacturingOrder factory method.
	ErrOrderIsNotConstructed = errors.New("ManufacturingOrder must be created via NewManufacturingOrder constructor")

	// ErrOrderIsDispatched is returned when a mutation is attempted on an MO
	// that has already been dispatched. Dispatched orders are immutable.
	ErrOrderIsDispatched = errors.New("manufacturing order is dispatched and immutable")
)

// Shift identifies the factory shift an MO is planned for.
type Shift int

const (
	ShiftUnknown Shift = iota
	ShiftI             // 9AM-5PM
	ShiftII            // 5PM-2AM
	ShiftIII           // 2AM-9AM
)

// String returns the shift's roman-numeral wire name.
func (s Shift) String() string {
	switch s {
	case ShiftI:
		return "I"
	case ShiftII:
		return "II"
	case ShiftIII:
		return "III"
	}
	return "unknown"
}

// ShiftFromString parses the roman-numeral wire name of a shift.
func ShiftFromString(s string) (Shift, error) {
	for _, shift := range []Shift{ShiftI, ShiftII, ShiftIII} {
		if shift.String() == s {
			return shift, nil
		}
	}
	return ShiftUnknown, errs.NewValueIsInvalidErrorWithCause("shift",
		fmt.Errorf("%q is not a valid shift", s))
}

// Validate checks if the Shift value is one of the three factory shifts.
func (s Shift) Validate() error {
	if s < ShiftI || s > ShiftIII {
		return errs.NewValueIsInvalidErrorWithCause("shift", fmt.Errorf("%d is not a valid shift", s))
	}
	return nil
}

// Priority orders MOs for planning and RM allocation swapping.
type Priority int

const (
	PriorityUnknown Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

// String returns the priority's wire name.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityUrgent:
		return "urgent"
	}
	return "unknown"
}

// PriorityFromString parses the wire name of a priority.
func PriorityFromString(s string) (Priority, error) {
	for _, priority := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		if priority.String() == s {
			return priority, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority",
		fmt.Errorf("%q is not a valid priority", s))
}

// Validate checks if the Priority value is valid.
func (p Priority) Validate() error {
	if p < PriorityLow || p > PriorityUrgent {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// ManufacturingOrder is the aggregate root for one production request.
// It owns its ApprovalWorkflow and gates the creation of production batches:
// no batch may be created until raw material has been allocated through the
// workflow. Once dispatched, the order is immutable.
type ManufacturingOrder struct {
	id             kernel.UUID
	moNumber       string
	productCode    string
	targetQuantity kernel.Quantity
	supervisorID   *kernel.UUID
	shift          Shift
	priority       Priority

	plannedStart *time.Time
	plannedEnd   *time.Time
	actualStart  *time.Time
	actualEnd    *time.Time

	workflow     ApprovalWorkflow
	isDispatched bool

	guard guard.ConstructorGuard
}

// NewManufacturingOrder creates an MO together with its approval workflow in
// the PendingManagerApproval state.
//
// Business rules:
//   - ID must be valid
//   - MO number and product code cannot be empty
//   - Target quantity must be positive
//   - Shift and priority must be valid when supplied
func NewManufacturingOrder(
	id kernel.UUID,
	moNumber string,
	productCode string,
	targetQuantity kernel.Quantity,
	shift Shift,
	priority Priority,
) (*ManufacturingOrder, error) {
	mo := &ManufacturingOrder{
		workflow: newApprovalWorkflow(),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		mo.setID(id),
		mo.setMONumber(moNumber),
		mo.setProductCode(productCode),
		mo.setTargetQuantity(targetQuantity),
		mo.setShift(shift),
		mo.setPriority(priority),
	); err != nil {
		return nil, err
	}

	return mo, nil
}

// RestoreManufacturingOrder reconstructs an MO aggregate from persistence,
// including its workflow state and planning dates. The restored order behaves
// identically to one created through normal domain operations.
func RestoreManufacturingOrder(
	id kernel.UUID,
	moNumber string,
	productCode string,
	targetQuantity kernel.Quantity,
	shift Shift,
	priority Priority,
	supervisorID *kernel.UUID,
	plannedStart, plannedEnd, actualStart, actualEnd *time.Time,
	workflow ApprovalWorkflow,
	isDispatched bool,
) (*ManufacturingOrder, error) {
	mo := &ManufacturingOrder{
		workflow:     workflow,
		isDispatched: isDispatched,
		supervisorID: supervisorID,
		plannedStart: plannedStart,
		plannedEnd:   plannedEnd,
		actualStart:  actualStart,
		actualEnd:    actualEnd,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		mo.setID(id),
		mo.setMONumber(moNumber),
		mo.setProductCode(productCode),
		mo.setTargetQuantity(targetQuantity),
		mo.setShift(shift),
		mo.setPriority(priority),
	); err != nil {
		return nil, err
	}

	return mo, nil
}

// Validate ensures the order was created through one of its constructors.
func (mo *ManufacturingOrder) Validate() error {
	if mo == nil {
		return ErrOrderIsNotConstructed
	}
	return mo.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (mo *ManufacturingOrder) IsEqual(other *ManufacturingOrder) bool {
	return other != nil && mo.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (mo *ManufacturingOrder) ID() kernel.UUID {
	return mo.id
}

// MONumber returns the human-readable order number, e.g. "MO-2025-0042".
func (mo *ManufacturingOrder) MONumber() string {
	return mo.moNumber
}

// ProductCode returns the code of the product being manufactured.
// Every batch split from this MO must carry the same product code.
func (mo *ManufacturingOrder) ProductCode() string {
	return mo.productCode
}

// TargetQuantity returns the total quantity to manufacture.
func (mo *ManufacturingOrder) TargetQuantity() kernel.Quantity {
	return mo.targetQuantity
}

// Supervisor returns the assigned supervisor's ID, nil if unassigned.
func (mo *ManufacturingOrder) Supervisor() *kernel.UUID {
	return mo.supervisorID
}

// Shift returns the shift this MO is planned for.
func (mo *ManufacturingOrder) Shift() Shift {
	return mo.shift
}

// Priority returns the planning priority.
func (mo *ManufacturingOrder) Priority() Priority {
	return mo.priority
}

// PlannedStart returns the planned production start, nil if not planned yet.
func (mo *ManufacturingOrder) PlannedStart() *time.Time {
	return mo.plannedStart
}

// PlannedEnd returns the planned production end, nil if not planned yet.
func (mo *ManufacturingOrder) PlannedEnd() *time.Time {
	return mo.plannedEnd
}

// ActualStart returns when production actually started, nil before then.
func (mo *ManufacturingOrder) ActualStart() *time.Time {
	return mo.actualStart
}

// ActualEnd returns when production actually finished, nil before then.
func (mo *ManufacturingOrder) ActualEnd() *time.Time {
	return mo.actualEnd
}

// Workflow returns the approval workflow, read-only.
func (mo *ManufacturingOrder) Workflow() *ApprovalWorkflow {
	return &mo.workflow
}

// IsDispatched reports whether the MO has been dispatched and is immutable.
func (mo *ManufacturingOrder) IsDispatched() bool {
	return mo.isDispatched
}

// AssignSupervisor sets the supervisor responsible for this MO.
func (mo *ManufacturingOrder) AssignSupervisor(supervisorID kernel.UUID) error {
	if err := mo.mutable(); err != nil {
		return err
	}
	if err := supervisorID.Validate(); err != nil {
		return err
	}
	mo.supervisorID = &supervisorID
	return nil
}

// Plan sets the planned start and end dates.
func (mo *ManufacturingOrder) Plan(start, end time.Time) error {
	if err := mo.mutable(); err != nil {
		return err
	}
	if end.Before(start) {
		return errs.NewValueIsInvalidErrorWithCause("planned dates",
			fmt.Errorf("planned end %s is before planned start %s", end, start))
	}
	mo.plannedStart = &start
	mo.plannedEnd = &end
	return nil
}

// Approve records manager approval, moving the workflow from
// PendingManagerApproval to ManagerApproved. The approver identity and
// timestamp are stamped once and never overwritten.
func (mo *ManufacturingOrder) Approve(approver kernel.UUID, notes string, at time.Time) error {
	if err := mo.mutable(); err != nil {
		return err
	}
	return mo.workflow.approve(approver, notes, at)
}

// Reject records manager rejection. Terminal for this approval cycle.
func (mo *ManufacturingOrder) Reject(manager kernel.UUID, notes string, at time.Time) error {
	if err := mo.mutable(); err != nil {
		return err
	}
	return mo.workflow.reject(manager, notes, at)
}

// AllocateRM records the RM store allocation, moving the workflow to
// RMAllocated. Legal only after manager approval.
func (mo *ManufacturingOrder) AllocateRM(allocator kernel.UUID, notes string, at time.Time) error {
	if err := mo.mutable(); err != nil {
		return err
	}
	return mo.workflow.allocateRM(allocator, notes, at)
}

// ReleaseToProduction marks the workflow ReadyForProduction and stamps the
// actual production start. Invoked when the first batch is created.
func (mo *ManufacturingOrder) ReleaseToProduction(at time.Time) error {
	if err := mo.mutable(); err != nil {
		return err
	}
	if err := mo.workflow.markReadyForProduction(); err != nil {
		return err
	}
	mo.actualStart = &at
	return nil
}

// Dispatch freezes the order. All further mutations fail with
// ErrOrderIsDispatched.
func (mo *ManufacturingOrder) Dispatch(at time.Time) error {
	if err := mo.mutable(); err != nil {
		return err
	}
	mo.isDispatched = true
	mo.actualEnd = &at
	return nil
}

func (mo *ManufacturingOrder) mutable() error {
	if err := mo.Validate(); err != nil {
		return err
	}
	if mo.isDispatched {
		return ErrOrderIsDispatched
	}
	return nil
}

func (mo *ManufacturingOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	mo.id = id
	return nil
}

func (mo *ManufacturingOrder) setMONumber(moNumber string) error {
	if moNumber == "" {
		return errs.NewValueIsRequiredError("mo number")
	}
	mo.moNumber = moNumber
	return nil
}

func (mo *ManufacturingOrder) setProductCode(productCode string) error {
	if productCode == "" {
		return errs.NewValueIsRequiredError("product code")
	}
	mo.productCode = productCode
	return nil
}

func (mo *ManufacturingOrder) setTargetQuantity(q kernel.Quantity) error {
	if !q.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("target quantity",
			fmt.Errorf("%s is not greater than 0", q))
	}
	mo.targetQuantity = q
	return nil
}

func (mo *ManufacturingOrder) setShift(s Shift) error {
	if err := s.Validate(); err != nil {
		return err
	}
	mo.shift = s
	return nil
}

func (mo *ManufacturingOrder) setPriority(p Priority) error {
	if err := p.Validate(); err != nil {
		return err
	}
	mo.priority = p
	return nil
}
