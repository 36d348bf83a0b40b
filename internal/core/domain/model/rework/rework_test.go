package rework_test

import (
	"testing"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/rework"
	"mestrace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBatchProcessCompletion(t *testing.T) {
	now := time.Now()

	newCompletion := func(input, ok, scrap, rw float64) (*rework.BatchProcessCompletion, error) {
		return rework.NewBatchProcessCompletion(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.MustQuantity(input), kernel.MustQuantity(ok),
			kernel.MustQuantity(scrap), kernel.MustQuantity(rw),
			"", now)
	}

	t.Run("balanced split is accepted", func(t *testing.T) {
		c, err := newCompletion(600, 550, 30, 20)
		require.NoError(t, err)

		assert.Equal(t, 0, c.ReworkCycleNumber())
		assert.False(t, c.IsReworkCycle())
		assert.True(t, c.RequiresRework())
		assert.InDelta(t, 91.66, c.OKPercentage(), 0.01)
		assert.InDelta(t, 5.0, c.ScrapPercentage(), 0.01)
		assert.InDelta(t, 3.33, c.ReworkPercentage(), 0.01)
	})

	t.Run("unbalanced split is rejected", func(t *testing.T) {
		_, err := newCompletion(600, 550, 30, 10)
		require.ErrorIs(t, err, errs.ErrConservationViolation)
	})

	t.Run("split within tolerance is accepted", func(t *testing.T) {
		_, err := newCompletion(600, 549.995, 30, 20)
		require.NoError(t, err)
	})

	t.Run("zero input is rejected", func(t *testing.T) {
		_, err := newCompletion(0, 0, 0, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestReworkBatch(t *testing.T) {
	now := time.Now()

	newJob := func(t *testing.T, qty float64) *rework.ReworkBatch {
		t.Helper()
		r, err := rework.NewReworkBatch(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.MustQuantity(qty), rework.SourceProcessSupervisor,
			kernel.NewUUID(), 1, "undersize thread", now)
		require.NoError(t, err)
		return r
	}

	t.Run("complete splits the rework quantity", func(t *testing.T) {
		r := newJob(t, 20)
		require.NoError(t, r.Start(now))

		completion, err := r.Complete(
			kernel.NewUUID(), kernel.NewUUID(),
			kernel.MustQuantity(15), kernel.MustQuantity(5), "", now)
		require.NoError(t, err)

		assert.Equal(t, rework.StatusCompleted, r.Status())
		assert.True(t, completion.IsReworkCycle())
		assert.Equal(t, 1, completion.ReworkCycleNumber())
		assert.False(t, completion.RequiresRework())
		assert.True(t, completion.ReworkQuantity().IsZero())
		require.NotNil(t, completion.ParentCompletionID())
		assert.Equal(t, r.ParentCompletionID(), *completion.ParentCompletionID())
	})

	t.Run("unbalanced rework split is rejected and state kept", func(t *testing.T) {
		r := newJob(t, 20)
		require.NoError(t, r.Start(now))

		_, err := r.Complete(
			kernel.NewUUID(), kernel.NewUUID(),
			kernel.MustQuantity(10), kernel.MustQuantity(5), "", now)
		require.ErrorIs(t, err, errs.ErrConservationViolation)
		assert.Equal(t, rework.StatusInProgress, r.Status())
	})

	t.Run("complete before start fails", func(t *testing.T) {
		r := newJob(t, 20)
		_, err := r.Complete(
			kernel.NewUUID(), kernel.NewUUID(),
			kernel.MustQuantity(15), kernel.MustQuantity(5), "", now)
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("double start fails", func(t *testing.T) {
		r := newJob(t, 20)
		require.NoError(t, r.Start(now))
		require.ErrorIs(t, r.Start(now), errs.ErrInvalidStateTransition)
	})

	t.Run("defect description is mandatory", func(t *testing.T) {
		_, err := rework.NewReworkBatch(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.MustQuantity(20), rework.SourceProcessSupervisor,
			kernel.NewUUID(), 1, "", now)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestFinalInspectionRework(t *testing.T) {
	now := time.Now()

	newCycle := func(t *testing.T) *rework.FinalInspectionRework {
		t.Helper()
		f, err := rework.NewFinalInspectionRework(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.MustQuantity(12), "chatter marks from turning", 1,
			kernel.NewUUID(), now)
		require.NoError(t, err)
		return f
	}

	t.Run("completion awaits re-inspection", func(t *testing.T) {
		f := newCycle(t)
		require.NoError(t, f.Start(now))
		require.NoError(t, f.Complete(now))

		assert.Equal(t, rework.StatusCompleted, f.Status())
		assert.Nil(t, f.ReinspectionPassed())
	})

	t.Run("passed re-inspection closes the loop", func(t *testing.T) {
		f := newCycle(t)
		require.NoError(t, f.Start(now))
		require.NoError(t, f.Complete(now))

		inspector := kernel.NewUUID()
		require.NoError(t, f.RecordReinspection(inspector, true, now))
		require.NotNil(t, f.ReinspectionPassed())
		assert.True(t, *f.ReinspectionPassed())

		_, err := f.NextCycle(kernel.NewUUID(), inspector, "still defective", now)
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("failed re-inspection opens the next cycle", func(t *testing.T) {
		f := newCycle(t)
		require.NoError(t, f.Start(now))
		require.NoError(t, f.Complete(now))
		require.NoError(t, f.RecordReinspection(kernel.NewUUID(), false, now))

		next, err := f.NextCycle(kernel.NewUUID(), kernel.NewUUID(), "chatter marks persist", now)
		require.NoError(t, err)

		assert.Equal(t, 2, next.ReworkCycleCount())
		assert.Equal(t, rework.StatusPending, next.Status())
		assert.Equal(t, f.DefectiveExecutionID(), next.DefectiveExecutionID())
		assert.Equal(t, f.DefectiveSupervisor(), next.DefectiveSupervisor())

		// the failed row stays frozen
		assert.Equal(t, rework.StatusCompleted, f.Status())
		require.NotNil(t, f.ReinspectionPassed())
		assert.False(t, *f.ReinspectionPassed())
	})

	t.Run("re-inspection before completion fails", func(t *testing.T) {
		f := newCycle(t)
		require.NoError(t, f.Start(now))

		err := f.RecordReinspection(kernel.NewUUID(), true, now)
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("double verdict fails", func(t *testing.T) {
		f := newCycle(t)
		require.NoError(t, f.Start(now))
		require.NoError(t, f.Complete(now))
		require.NoError(t, f.RecordReinspection(kernel.NewUUID(), false, now))

		err := f.RecordReinspection(kernel.NewUUID(), true, now)
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}
