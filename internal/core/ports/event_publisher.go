package ports

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/kernel"
)

// EventKind is the closed set of outbound notification events.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventMOCreated
	EventMOApproved
	EventRMAllocated
	EventProcessAssigned
	EventProcessReassigned
	EventBatchAllocated
	EventBatchReceived
	EventBatchReported
	EventProcessCompleted
	EventFGVerificationRequired
	EventQualityCheckResult
)

func getEventKindStrings() map[EventKind]string {
	return map[EventKind]string{
		EventUnknown:                "unknown",
		EventMOCreated:              "mo_created",
		EventMOApproved:             "mo_approved",
		EventRMAllocated:            "rm_allocated",
		EventProcessAssigned:        "process_assigned",
		EventProcessReassigned:      "process_reassigned",
		EventBatchAllocated:         "batch_allocated",
		EventBatchReceived:          "batch_received",
		EventBatchReported:          "batch_reported",
		EventProcessCompleted:       "process_completed",
		EventFGVerificationRequired: "fg_verification_required",
		EventQualityCheckResult:     "quality_check_result",
	}
}

// String returns the wire name of the event kind.
func (k EventKind) String() string {
	if str, ok := getEventKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// RecipientRole is a recipient-resolution hint attached to an event. The
// engine names roles, never user lists; resolving role membership to actual
// recipients is the notification system's job.
type RecipientRole int

const (
	RoleUnknown RecipientRole = iota
	RoleManager
	RoleProductionHead
	RoleRMStore
	RoleSupervisor
	RoleOperator
	RoleQualityInspector
)

func getRecipientRoleStrings() map[RecipientRole]string {
	return map[RecipientRole]string{
		RoleUnknown:          "unknown",
		RoleManager:          "manager",
		RoleProductionHead:   "production_head",
		RoleRMStore:          "rm_store",
		RoleSupervisor:       "supervisor",
		RoleOperator:         "operator",
		RoleQualityInspector: "quality_inspector",
	}
}

// String returns the wire name of the role.
func (r RecipientRole) String() string {
	if str, ok := getRecipientRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Event is one outbound notification. Events are emitted strictly after the
// transaction commits and are fire-and-forget: a failed delivery never rolls
// anything back.
type Event struct {
	Kind       EventKind
	Recipients []RecipientRole
	OccurredAt time.Time

	MOID        *kernel.UUID
	BatchID     *kernel.UUID
	ExecutionID *kernel.UUID

	// Attributes carries event-specific key/value context, e.g. the batch
	// number or a quality verdict.
	Attributes map[string]string
}

// EventPublisher delivers outbound events. Implementations must not block
// command handling and must swallow delivery failures after logging them.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}
