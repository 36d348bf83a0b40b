// Package batch contains the production Batch aggregate. A batch is a
// sub-quantity of a manufacturing order tracked independently through the
// process pipeline; one MO splits into as many batches as it takes to cover
// its target quantity.
//
// Batch identity is deterministic: BATCH-<mo number>-<NNN>, where NNN is the
// per-MO creation sequence. Sequence assignment must be serialized per MO by
// the persistence layer so that concurrent batch creation never produces
// duplicate identities.
package batch
