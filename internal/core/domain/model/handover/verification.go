package handover

import (
	"errors"
	"fmt"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

// ErrVerificationIsNotConstructed is returned when a BatchReceiptVerification
// instance was not created through one of its factory methods.
var ErrVerificationIsNotConstructed = errors.New(
	"BatchReceiptVerification must be created via NewVerifiedReceipt or NewReportedReceipt")

// Action is the receiving operator's decision on an incoming batch.
type Action int

const (
	ActionUnknown Action = iota

	// ActionVerified means the batch arrived as expected.
	ActionVerified

	// ActionReported means the operator flagged a discrepancy; the batch goes
	// on hold until the hold is cleared or the issue resolved.
	ActionReported
)

// String returns the wire name of the action.
func (a Action) String() string {
	switch a {
	case ActionVerified:
		return "verified"
	case ActionReported:
		return "reported"
	}
	return "unknown"
}

// ActionFromString parses the wire name of an action.
func ActionFromString(s string) (Action, error) {
	switch s {
	case "verified":
		return ActionVerified, nil
	case "reported":
		return ActionReported, nil
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action",
		fmt.Errorf("%q is not a valid verification action", s))
}

// Validate checks if the Action value is valid.
func (a Action) Validate() error {
	if a != ActionVerified && a != ActionReported {
		return errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%d is not a valid verification action", a))
	}
	return nil
}

// ReportReason classifies a reported discrepancy.
type ReportReason int

const (
	ReasonNone ReportReason = iota
	ReasonLowQty
	ReasonHighQty
	ReasonDamaged
	ReasonWrongProduct
	ReasonQualityIssue
	ReasonOthers
)

func getReportReasonStrings() map[ReportReason]string {
	return map[ReportReason]string{
		ReasonNone:         "",
		ReasonLowQty:       "low_qty",
		ReasonHighQty:      "high_qty",
		ReasonDamaged:      "damaged",
		ReasonWrongProduct: "wrong_product",
		ReasonQualityIssue: "quality_issue",
		ReasonOthers:       "others",
	}
}

// String returns the wire name of the reason, empty for ReasonNone.
func (r ReportReason) String() string {
	if str, ok := getReportReasonStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// ReportReasonFromString parses the wire name of a report reason. The empty
// string maps to ReasonNone for verified receipts.
func ReportReasonFromString(s string) (ReportReason, error) {
	for reason, name := range getReportReasonStrings() {
		if name == s {
			return reason, nil
		}
	}
	return ReasonNone, errs.NewValueIsInvalidErrorWithCause("reportReason",
		fmt.Errorf("%q is not a valid report reason", s))
}

// Validate checks if the ReportReason is one of the closed report categories.
func (r ReportReason) Validate() error {
	if r <= ReasonNone || r > ReasonOthers {
		return errs.NewValueIsInvalidErrorWithCause("reportReason",
			fmt.Errorf("%d is not a valid report reason", r))
	}
	return nil
}

// RequiresActualQuantity reports whether the reason is a quantity discrepancy
// that must carry the measured quantity.
func (r ReportReason) RequiresActualQuantity() bool {
	return r == ReasonLowQty || r == ReasonHighQty
}

// BatchReceiptVerification is the receiving operator's record for one incoming
// allocation. A reported verification puts the batch on hold; clearing the
// hold and resolving the underlying issue are separate acts with separate
// stamps. Variance against the handed-over quantity is always derived, never
// stored.
type BatchReceiptVerification struct {
	id           kernel.UUID
	allocationID kernel.UUID
	verifiedBy   kernel.UUID
	action       Action
	reportReason ReportReason

	expectedQuantity kernel.Quantity
	actualQuantity   *kernel.Quantity
	notes            string
	verifiedAt       time.Time

	isOnHold      bool
	holdClearedBy *kernel.UUID
	holdClearedAt *time.Time

	isResolved      bool
	resolvedBy      *kernel.UUID
	resolvedAt      *time.Time
	resolutionNotes string

	guard guard.ConstructorGuard
}

// NewVerifiedReceipt records a clean receipt: quantities match and the batch
// proceeds without a hold.
func NewVerifiedReceipt(
	id kernel.UUID,
	allocationID kernel.UUID,
	verifiedBy kernel.UUID,
	expectedQuantity kernel.Quantity,
	notes string,
	verifiedAt time.Time,
) (*BatchReceiptVerification, error) {
	v := &BatchReceiptVerification{
		action:     ActionVerified,
		notes:      notes,
		verifiedAt: verifiedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setAllocationID(allocationID),
		v.setVerifiedBy(verifiedBy),
		v.setExpectedQuantity(expectedQuantity),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// NewReportedReceipt records a discrepancy and puts the batch on hold.
//
// Business rules:
//   - Report reason is mandatory
//   - low_qty and high_qty must carry the measured quantity
func NewReportedReceipt(
	id kernel.UUID,
	allocationID kernel.UUID,
	verifiedBy kernel.UUID,
	reason ReportReason,
	expectedQuantity kernel.Quantity,
	actualQuantity *kernel.Quantity,
	notes string,
	verifiedAt time.Time,
) (*BatchReceiptVerification, error) {
	v := &BatchReceiptVerification{
		action:     ActionReported,
		notes:      notes,
		verifiedAt: verifiedAt,
		isOnHold:   true,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setAllocationID(allocationID),
		v.setVerifiedBy(verifiedBy),
		v.setExpectedQuantity(expectedQuantity),
		v.setReport(reason, actualQuantity),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreBatchReceiptVerification reconstructs a verification from persistence.
func RestoreBatchReceiptVerification(
	id kernel.UUID,
	allocationID kernel.UUID,
	verifiedBy kernel.UUID,
	action Action,
	reportReason ReportReason,
	expectedQuantity kernel.Quantity,
	actualQuantity *kernel.Quantity,
	notes string,
	verifiedAt time.Time,
	isOnHold bool,
	holdClearedBy *kernel.UUID,
	holdClearedAt *time.Time,
	isResolved bool,
	resolvedBy *kernel.UUID,
	resolvedAt *time.Time,
	resolutionNotes string,
) (*BatchReceiptVerification, error) {
	if err := action.Validate(); err != nil {
		return nil, err
	}

	v := &BatchReceiptVerification{
		action:          action,
		notes:           notes,
		verifiedAt:      verifiedAt,
		isOnHold:        isOnHold,
		holdClearedBy:   holdClearedBy,
		holdClearedAt:   holdClearedAt,
		isResolved:      isResolved,
		resolvedBy:      resolvedBy,
		resolvedAt:      resolvedAt,
		resolutionNotes: resolutionNotes,
		guard:           guard.NewConstructorGuard(),
	}

	joined := errors.Join(
		v.setID(id),
		v.setAllocationID(allocationID),
		v.setVerifiedBy(verifiedBy),
		v.setExpectedQuantity(expectedQuantity),
	)
	if action == ActionReported {
		joined = errors.Join(joined, v.setReport(reportReason, actualQuantity))
	}
	if joined != nil {
		return nil, joined
	}

	return v, nil
}

// Validate ensures the verification was created through one of its constructors.
func (v *BatchReceiptVerification) Validate() error {
	if v == nil {
		return ErrVerificationIsNotConstructed
	}
	return v.guard.Validate(ErrVerificationIsNotConstructed)
}

func (v *BatchReceiptVerification) ID() kernel.UUID {
	return v.id
}

func (v *BatchReceiptVerification) AllocationID() kernel.UUID {
	return v.allocationID
}

func (v *BatchReceiptVerification) VerifiedBy() kernel.UUID {
	return v.verifiedBy
}

func (v *BatchReceiptVerification) Action() Action {
	return v.action
}

// ReportReason returns the discrepancy category, ReasonNone for a verified
// receipt.
func (v *BatchReceiptVerification) ReportReason() ReportReason {
	return v.reportReason
}

// ExpectedQuantity returns the quantity the sending side handed over.
func (v *BatchReceiptVerification) ExpectedQuantity() kernel.Quantity {
	return v.expectedQuantity
}

// ActualQuantity returns the measured quantity, set only for quantity reports.
func (v *BatchReceiptVerification) ActualQuantity() *kernel.Quantity {
	return v.actualQuantity
}

func (v *BatchReceiptVerification) Notes() string {
	return v.notes
}

func (v *BatchReceiptVerification) VerifiedAt() time.Time {
	return v.verifiedAt
}

// IsOnHold reports whether the batch is currently parked by this verification.
func (v *BatchReceiptVerification) IsOnHold() bool {
	return v.isOnHold
}

func (v *BatchReceiptVerification) HoldClearedBy() *kernel.UUID {
	return v.holdClearedBy
}

func (v *BatchReceiptVerification) HoldClearedAt() *time.Time {
	return v.holdClearedAt
}

// IsResolved reports whether the underlying issue was closed out.
func (v *BatchReceiptVerification) IsResolved() bool {
	return v.isResolved
}

func (v *BatchReceiptVerification) ResolvedBy() *kernel.UUID {
	return v.resolvedBy
}

func (v *BatchReceiptVerification) ResolvedAt() *time.Time {
	return v.resolvedAt
}

func (v *BatchReceiptVerification) ResolutionNotes() string {
	return v.resolutionNotes
}

// VarianceKg returns actual minus expected in kilograms. Nil unless a measured
// quantity was reported.
func (v *BatchReceiptVerification) VarianceKg() *float64 {
	if v.actualQuantity == nil {
		return nil
	}
	d := v.actualQuantity.Kg() - v.expectedQuantity.Kg()
	return &d
}

// VariancePercentage returns the variance relative to the expected quantity.
// Nil unless a measured quantity was reported or the expected quantity is zero.
func (v *BatchReceiptVerification) VariancePercentage() *float64 {
	variance := v.VarianceKg()
	if variance == nil || v.expectedQuantity.IsZero() {
		return nil
	}
	p := *variance / v.expectedQuantity.Kg() * 100
	return &p
}

// ClearHold releases the batch back to the active queue without resolving the
// report. Legal only while a reported verification still holds the batch.
func (v *BatchReceiptVerification) ClearHold(by kernel.UUID, at time.Time) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if err := by.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("clearedBy", err)
	}
	if v.action != ActionReported || !v.isOnHold {
		return errs.NewInvalidStateTransitionError("clear hold",
			v.holdState(), "reported and on hold")
	}
	v.isOnHold = false
	v.holdClearedBy = &by
	v.holdClearedAt = &at
	return nil
}

// ResolveIssue closes out the reported discrepancy, force-clearing any open
// hold. Legal only once, and only for reported verifications.
func (v *BatchReceiptVerification) ResolveIssue(by kernel.UUID, notes string, at time.Time) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if err := by.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("resolvedBy", err)
	}
	if v.action != ActionReported || v.isResolved {
		return errs.NewInvalidStateTransitionError("resolve issue",
			v.holdState(), "reported and unresolved")
	}
	v.isResolved = true
	v.resolvedBy = &by
	v.resolvedAt = &at
	v.resolutionNotes = notes
	if v.isOnHold {
		v.isOnHold = false
		v.holdClearedBy = &by
		v.holdClearedAt = &at
	}
	return nil
}

func (v *BatchReceiptVerification) holdState() string {
	switch {
	case v.action != ActionReported:
		return v.action.String()
	case v.isResolved:
		return "resolved"
	case v.isOnHold:
		return "on hold"
	default:
		return "hold cleared"
	}
}

func (v *BatchReceiptVerification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	v.id = id
	return nil
}

func (v *BatchReceiptVerification) setAllocationID(allocationID kernel.UUID) error {
	if err := allocationID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("allocationID", err)
	}
	v.allocationID = allocationID
	return nil
}

func (v *BatchReceiptVerification) setVerifiedBy(verifiedBy kernel.UUID) error {
	if err := verifiedBy.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("verifiedBy", err)
	}
	v.verifiedBy = verifiedBy
	return nil
}

func (v *BatchReceiptVerification) setExpectedQuantity(expectedQuantity kernel.Quantity) error {
	if !expectedQuantity.IsPositive() {
		return errs.NewValueIsInvalidError("expectedQuantity")
	}
	v.expectedQuantity = expectedQuantity
	return nil
}

func (v *BatchReceiptVerification) setReport(reason ReportReason, actualQuantity *kernel.Quantity) error {
	if err := reason.Validate(); err != nil {
		return err
	}
	if reason.RequiresActualQuantity() && actualQuantity == nil {
		return errs.NewValueIsRequiredError("actualQuantity")
	}
	v.reportReason = reason
	v.actualQuantity = actualQuantity
	return nil
}
