package process_test

import (
	"testing"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/process"
	"mestrace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestExecution(t *testing.T) *process.ProcessExecution {
	t.Helper()
	e, err := process.NewProcessExecution(kernel.NewUUID(), kernel.NewUUID(), "CNC-TURN", "CNC Turning", 2)
	require.NoError(t, err)
	return e
}

func TestNewProcessExecution(t *testing.T) {
	t.Run("valid execution", func(t *testing.T) {
		e := createTestExecution(t)

		assert.Equal(t, "CNC-TURN", e.ProcessCode())
		assert.Equal(t, 2, e.SequenceOrder())
		assert.Equal(t, process.ExecutionPending, e.Status())
		assert.Nil(t, e.AssignedOperator())
	})

	t.Run("empty process code is rejected", func(t *testing.T) {
		_, err := process.NewProcessExecution(kernel.NewUUID(), kernel.NewUUID(), "", "CNC Turning", 1)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero sequence order is rejected", func(t *testing.T) {
		_, err := process.NewProcessExecution(kernel.NewUUID(), kernel.NewUUID(), "CNC-TURN", "", 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestProcessExecution_Lifecycle(t *testing.T) {
	now := time.Now()

	t.Run("start, hold, resume, complete", func(t *testing.T) {
		e := createTestExecution(t)

		require.NoError(t, e.Start(now))
		assert.Equal(t, process.ExecutionInProgress, e.Status())
		require.NotNil(t, e.ActualStart())

		require.NoError(t, e.Hold())
		assert.Equal(t, process.ExecutionOnHold, e.Status())

		require.NoError(t, e.Resume())
		assert.Equal(t, process.ExecutionInProgress, e.Status())

		require.NoError(t, e.Complete(now))
		assert.Equal(t, process.ExecutionCompleted, e.Status())
		require.NotNil(t, e.ActualEnd())
	})

	t.Run("complete before start fails", func(t *testing.T) {
		e := createTestExecution(t)
		require.ErrorIs(t, e.Complete(now), errs.ErrInvalidStateTransition)
		assert.Equal(t, process.ExecutionPending, e.Status())
	})

	t.Run("double resume fails", func(t *testing.T) {
		e := createTestExecution(t)
		require.NoError(t, e.Start(now))
		require.NoError(t, e.Hold())
		require.NoError(t, e.Resume())

		require.ErrorIs(t, e.Resume(), errs.ErrInvalidStateTransition)
	})

	t.Run("operator mirror rejected on completed step", func(t *testing.T) {
		e := createTestExecution(t)
		require.NoError(t, e.Start(now))
		require.NoError(t, e.Complete(now))

		err := e.MirrorOperator(kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("skip only from pending", func(t *testing.T) {
		e := createTestExecution(t)
		require.NoError(t, e.Skip())
		assert.Equal(t, process.ExecutionSkipped, e.Status())

		e2 := createTestExecution(t)
		require.NoError(t, e2.Start(now))
		require.ErrorIs(t, e2.Skip(), errs.ErrInvalidStateTransition)
	})
}

func TestProcessAssignment(t *testing.T) {
	now := time.Now()

	t.Run("initial assignment", func(t *testing.T) {
		a, err := process.NewProcessAssignment(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now)
		require.NoError(t, err)

		assert.Equal(t, process.AssignmentAssigned, a.Status())
		assert.Nil(t, a.PreviousOperator())
		assert.Empty(t, a.ReassignReason())
	})

	t.Run("reassignment closes the old record and opens a new one", func(t *testing.T) {
		oldOperator := kernel.NewUUID()
		old, err := process.NewProcessAssignment(
			kernel.NewUUID(), kernel.NewUUID(), oldOperator, kernel.NewUUID(), now)
		require.NoError(t, err)
		require.NoError(t, old.Start())

		require.NoError(t, old.MarkReassigned("operator shift ended", now))
		assert.Equal(t, process.AssignmentReassigned, old.Status())
		assert.Equal(t, "operator shift ended", old.ReassignReason())
		assert.Equal(t, oldOperator, old.OperatorID())
		require.NotNil(t, old.ClosedAt())

		replacement, err := process.NewReassignment(
			kernel.NewUUID(), old.ExecutionID(), kernel.NewUUID(), kernel.NewUUID(), oldOperator, now)
		require.NoError(t, err)
		require.NotNil(t, replacement.PreviousOperator())
		assert.Equal(t, oldOperator, *replacement.PreviousOperator())
	})

	t.Run("reassign requires a reason", func(t *testing.T) {
		a, err := process.NewProcessAssignment(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now)
		require.NoError(t, err)

		require.ErrorIs(t, a.MarkReassigned("", now), errs.ErrValueIsRequired)
	})

	t.Run("reassign after completion fails", func(t *testing.T) {
		a, err := process.NewProcessAssignment(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now)
		require.NoError(t, err)
		require.NoError(t, a.Start())
		require.NoError(t, a.Complete(now))

		require.ErrorIs(t, a.MarkReassigned("too late", now), errs.ErrInvalidStateTransition)
		assert.Equal(t, process.AssignmentCompleted, a.Status())
	})

	t.Run("reassign after cancellation fails", func(t *testing.T) {
		a, err := process.NewProcessAssignment(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now)
		require.NoError(t, err)
		require.NoError(t, a.Cancel(now))

		require.ErrorIs(t, a.MarkReassigned("too late", now), errs.ErrInvalidStateTransition)
	})
}

func TestBatchAllocation(t *testing.T) {
	now := time.Now()

	newAllocation := func(t *testing.T, heatNumbers []string) *process.BatchAllocation {
		t.Helper()
		al, err := process.NewBatchAllocation(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.NewUUID(), kernel.NewUUID(), heatNumbers, now)
		require.NoError(t, err)
		return al
	}

	t.Run("receive and complete", func(t *testing.T) {
		al := newAllocation(t, []string{"HT-9931", "HT-9932"})
		assert.Equal(t, process.AllocationAllocated, al.Status())
		assert.Equal(t, []string{"HT-9931", "HT-9932"}, al.HeatNumbers())

		receiver := kernel.NewUUID()
		require.NoError(t, al.Receive(receiver, now))
		assert.Equal(t, process.AllocationReceived, al.Status())
		require.NotNil(t, al.ReceivedBy())
		assert.Equal(t, receiver, *al.ReceivedBy())

		require.NoError(t, al.StartProcessing())
		require.NoError(t, al.Complete())
		assert.Equal(t, process.AllocationCompleted, al.Status())
		assert.False(t, al.Status().IsOpen())
	})

	t.Run("receive via transit", func(t *testing.T) {
		al := newAllocation(t, nil)
		require.NoError(t, al.MarkInTransit())
		require.NoError(t, al.Receive(kernel.NewUUID(), now))
	})

	t.Run("double receive fails", func(t *testing.T) {
		al := newAllocation(t, nil)
		require.NoError(t, al.Receive(kernel.NewUUID(), now))
		require.ErrorIs(t, al.Receive(kernel.NewUUID(), now), errs.ErrInvalidStateTransition)
	})

	t.Run("complete before receipt fails", func(t *testing.T) {
		al := newAllocation(t, nil)
		require.ErrorIs(t, al.Complete(), errs.ErrInvalidStateTransition)
	})

	t.Run("return before receipt", func(t *testing.T) {
		al := newAllocation(t, nil)
		require.NoError(t, al.Return())
		assert.Equal(t, process.AllocationReturned, al.Status())

		require.ErrorIs(t, al.Return(), errs.ErrInvalidStateTransition)
	})

	t.Run("return after receipt fails", func(t *testing.T) {
		al := newAllocation(t, nil)
		require.NoError(t, al.Receive(kernel.NewUUID(), now))
		require.ErrorIs(t, al.Return(), errs.ErrInvalidStateTransition)
	})

	t.Run("blank heat number is rejected", func(t *testing.T) {
		_, err := process.NewBatchAllocation(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.NewUUID(), kernel.NewUUID(), []string{"HT-9931", ""}, now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
