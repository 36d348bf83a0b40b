// Package order contains the ManufacturingOrder aggregate and its approval
// workflow. A manufacturing order (MO) is a production request for a quantity
// of one product; it owns exactly one ApprovalWorkflow and is the parent of
// every production batch split from it.
//
// The approval workflow is a monotonic forward-only state machine: once a
// transition is taken it is never reverted, and the approver identity and
// timestamp recorded for each transition are never overwritten. Rejection is
// terminal for the approval cycle.
package order
