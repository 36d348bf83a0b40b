// Package ledger is the append-only traceability spine of the engine: every
// state change writes exactly one ProcessActivityLog entry in the same
// transaction. TraceabilityEvent is the chronological projection rebuilt from
// those entries.
package ledger
