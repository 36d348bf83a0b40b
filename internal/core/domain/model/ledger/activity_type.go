package ledger

import (
	"fmt"

	"mestrace/internal/pkg/errs"
)

// ActivityType is the closed set of ledger entry kinds. New kinds are added
// here, never free-form.
type ActivityType int

const (
	ActivityUnknown ActivityType = iota

	ActivityMOCreated
	ActivityMOApproved
	ActivityMORejected
	ActivityRMAllocated
	ActivityPipelineCreated

	ActivityBatchCreated
	ActivityBatchAllocated
	ActivityBatchReceived
	ActivityBatchStarted
	ActivityBatchCompleted
	ActivityBatchVerified
	ActivityBatchReported

	ActivityProcessStarted
	ActivityProcessCompleted
	ActivityProcessStopped
	ActivityProcessResumed

	ActivityOperatorAssigned
	ActivityOperatorReassigned

	ActivityReworkCreated
	ActivityReworkStarted
	ActivityReworkCompleted
	ActivityFIReworkAssigned
	ActivityFIReinspection
	ActivityFIPassed

	ActivityHoldApplied
	ActivityHoldCleared
	ActivityIssueResolved

	ActivityFGVerificationRequired
	ActivityFGQualityChecked
	ActivityFGDispatched

	ActivityBatchReturned
)

func getActivityTypeStrings() map[ActivityType]string {
	return map[ActivityType]string{
		ActivityUnknown:                "unknown",
		ActivityMOCreated:              "mo_created",
		ActivityMOApproved:             "mo_approved",
		ActivityMORejected:             "mo_rejected",
		ActivityRMAllocated:            "rm_allocated",
		ActivityPipelineCreated:        "pipeline_created",
		ActivityBatchCreated:           "batch_created",
		ActivityBatchAllocated:         "batch_allocated",
		ActivityBatchReceived:          "batch_received",
		ActivityBatchStarted:           "batch_started",
		ActivityBatchCompleted:         "batch_completed",
		ActivityBatchVerified:          "batch_verified",
		ActivityBatchReported:          "batch_reported",
		ActivityProcessStarted:         "process_started",
		ActivityProcessCompleted:       "process_completed",
		ActivityProcessStopped:         "process_stopped",
		ActivityProcessResumed:         "process_resumed",
		ActivityOperatorAssigned:       "operator_assigned",
		ActivityOperatorReassigned:     "operator_reassigned",
		ActivityReworkCreated:          "rework_created",
		ActivityReworkStarted:          "rework_started",
		ActivityReworkCompleted:        "rework_completed",
		ActivityFIReworkAssigned:       "fi_rework_assigned",
		ActivityFIReinspection:         "fi_reinspection",
		ActivityFIPassed:               "fi_passed",
		ActivityHoldApplied:            "hold_applied",
		ActivityHoldCleared:            "hold_cleared",
		ActivityIssueResolved:          "issue_resolved",
		ActivityFGVerificationRequired: "fg_verification_required",
		ActivityFGQualityChecked:       "fg_quality_checked",
		ActivityFGDispatched:           "fg_dispatched",
		ActivityBatchReturned:          "batch_returned",
	}
}

// Validate checks if the ActivityType value is valid.
func (a ActivityType) Validate() error {
	if a <= ActivityUnknown || a > ActivityBatchReturned {
		return errs.NewValueIsInvalidErrorWithCause("activityType",
			fmt.Errorf("%d is not a valid activity type", a))
	}
	return nil
}

// String returns the wire name of the activity type, e.g. "batch_received".
func (a ActivityType) String() string {
	if str, ok := getActivityTypeStrings()[a]; ok {
		return str
	}
	return "unknown"
}
