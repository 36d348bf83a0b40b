// Package process contains the production pipeline model: the per-MO
// ProcessExecution steps, the append-only operator ProcessAssignment history
// and the BatchAllocation binding a batch to a step.
package process
