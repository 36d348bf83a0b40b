// Package services provides domain services that operate across multiple
// aggregates of the manufacturing engine.
//
// The package includes:
//   - DowntimeAggregator: a pure recomputation of per-day downtime summaries
//     from resolved process stops
//
// Domain services hold logic that does not naturally belong to a single
// aggregate root.
package services
