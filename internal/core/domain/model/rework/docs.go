// Package rework models what leaves a pipeline step: the conservation-checked
// BatchProcessCompletion split into OK, scrap and rework quantities, the
// supervisor-routed ReworkBatch for in-process defects, and the
// FinalInspectionRework loop for defects caught at final inspection.
package rework
