// Package downtime models unplanned production stops: the ProcessStop record
// bracketing one stop/resume pair and the per-day ProcessDowntimeSummary
// recomputed from resolved stops.
package downtime
