package handover_test

import (
	"testing"
	"time"

	"mestrace/internal/core/domain/model/handover"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReportedReceipt(t *testing.T) {
	now := time.Now()

	t.Run("low quantity report puts the batch on hold", func(t *testing.T) {
		actual := kernel.MustQuantity(540)
		v, err := handover.NewReportedReceipt(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			handover.ReasonLowQty, kernel.MustQuantity(600), &actual,
			"bag torn in transit", now)
		require.NoError(t, err)

		assert.Equal(t, handover.ActionReported, v.Action())
		assert.Equal(t, handover.ReasonLowQty, v.ReportReason())
		assert.True(t, v.IsOnHold())
		assert.False(t, v.IsResolved())
	})

	t.Run("low quantity report without actual quantity is rejected", func(t *testing.T) {
		_, err := handover.NewReportedReceipt(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			handover.ReasonLowQty, kernel.MustQuantity(600), nil, "", now)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("report without a reason is rejected", func(t *testing.T) {
		_, err := handover.NewReportedReceipt(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			handover.ReasonNone, kernel.MustQuantity(600), nil, "", now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("damaged report needs no actual quantity", func(t *testing.T) {
		v, err := handover.NewReportedReceipt(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			handover.ReasonDamaged, kernel.MustQuantity(600), nil, "dents", now)
		require.NoError(t, err)
		assert.Nil(t, v.ActualQuantity())
		assert.Nil(t, v.VarianceKg())
	})
}

func TestVerification_Variance(t *testing.T) {
	now := time.Now()
	actual := kernel.MustQuantity(540)
	v, err := handover.NewReportedReceipt(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		handover.ReasonLowQty, kernel.MustQuantity(600), &actual, "", now)
	require.NoError(t, err)

	variance := v.VarianceKg()
	require.NotNil(t, variance)
	assert.InDelta(t, -60.0, *variance, 1e-9)

	pct := v.VariancePercentage()
	require.NotNil(t, pct)
	assert.InDelta(t, -10.0, *pct, 1e-9)
}

func TestVerification_HoldAndResolution(t *testing.T) {
	now := time.Now()

	newReported := func(t *testing.T) *handover.BatchReceiptVerification {
		t.Helper()
		actual := kernel.MustQuantity(540)
		v, err := handover.NewReportedReceipt(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			handover.ReasonLowQty, kernel.MustQuantity(600), &actual, "", now)
		require.NoError(t, err)
		return v
	}

	t.Run("clear hold keeps the report unresolved", func(t *testing.T) {
		v := newReported(t)
		supervisor := kernel.NewUUID()

		require.NoError(t, v.ClearHold(supervisor, now))
		assert.False(t, v.IsOnHold())
		assert.False(t, v.IsResolved())
		require.NotNil(t, v.HoldClearedBy())
		assert.Equal(t, supervisor, *v.HoldClearedBy())
	})

	t.Run("double clear fails", func(t *testing.T) {
		v := newReported(t)
		require.NoError(t, v.ClearHold(kernel.NewUUID(), now))
		require.ErrorIs(t, v.ClearHold(kernel.NewUUID(), now), errs.ErrInvalidStateTransition)
	})

	t.Run("resolve force-clears an open hold", func(t *testing.T) {
		v := newReported(t)

		require.NoError(t, v.ResolveIssue(kernel.NewUUID(), "replacement material issued", now))
		assert.True(t, v.IsResolved())
		assert.False(t, v.IsOnHold())
		assert.Equal(t, "replacement material issued", v.ResolutionNotes())
	})

	t.Run("resolve after hold clear still works", func(t *testing.T) {
		v := newReported(t)
		require.NoError(t, v.ClearHold(kernel.NewUUID(), now))
		require.NoError(t, v.ResolveIssue(kernel.NewUUID(), "counted again, accepted", now))
		assert.True(t, v.IsResolved())
	})

	t.Run("double resolve fails", func(t *testing.T) {
		v := newReported(t)
		require.NoError(t, v.ResolveIssue(kernel.NewUUID(), "done", now))
		require.ErrorIs(t, v.ResolveIssue(kernel.NewUUID(), "again", now), errs.ErrInvalidStateTransition)
	})

	t.Run("verified receipt cannot be held or resolved", func(t *testing.T) {
		v, err := handover.NewVerifiedReceipt(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.MustQuantity(600), "", now)
		require.NoError(t, err)
		assert.False(t, v.IsOnHold())

		require.ErrorIs(t, v.ClearHold(kernel.NewUUID(), now), errs.ErrInvalidStateTransition)
		require.ErrorIs(t, v.ResolveIssue(kernel.NewUUID(), "", now), errs.ErrInvalidStateTransition)
	})
}

func TestBatchReceiptLog(t *testing.T) {
	handedOverAt := time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)

	newLog := func(t *testing.T) *handover.BatchReceiptLog {
		t.Helper()
		from := kernel.NewUUID()
		l, err := handover.NewBatchReceiptLog(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			&from, kernel.NewUUID(), kernel.NewUUID(),
			kernel.MustQuantity(600), handedOverAt)
		require.NoError(t, err)
		return l
	}

	t.Run("open log has no transit duration", func(t *testing.T) {
		l := newLog(t)
		assert.Nil(t, l.TransitDurationMinutes())
		assert.False(t, l.IsVerified())
	})

	t.Run("confirmation stamps receipt and floors transit minutes", func(t *testing.T) {
		l := newLog(t)
		receivedAt := handedOverAt.Add(17*time.Minute + 45*time.Second)

		v, err := handover.NewVerifiedReceipt(
			kernel.NewUUID(), l.AllocationID(), kernel.NewUUID(),
			kernel.MustQuantity(600), "", receivedAt)
		require.NoError(t, err)

		require.NoError(t, l.ConfirmReceipt(v, kernel.MustQuantity(600), receivedAt))
		assert.True(t, l.IsVerified())
		assert.False(t, l.HasIssues())
		require.NotNil(t, l.TransitDurationMinutes())
		assert.Equal(t, 17, *l.TransitDurationMinutes())
	})

	t.Run("reported confirmation flags issues", func(t *testing.T) {
		l := newLog(t)
		receivedAt := handedOverAt.Add(5 * time.Minute)
		actual := kernel.MustQuantity(540)

		v, err := handover.NewReportedReceipt(
			kernel.NewUUID(), l.AllocationID(), kernel.NewUUID(),
			handover.ReasonLowQty, kernel.MustQuantity(600), &actual, "", receivedAt)
		require.NoError(t, err)

		require.NoError(t, l.ConfirmReceipt(v, actual, receivedAt))
		assert.True(t, l.HasIssues())
	})

	t.Run("double confirmation fails", func(t *testing.T) {
		l := newLog(t)
		receivedAt := handedOverAt.Add(time.Minute)
		v, err := handover.NewVerifiedReceipt(
			kernel.NewUUID(), l.AllocationID(), kernel.NewUUID(),
			kernel.MustQuantity(600), "", receivedAt)
		require.NoError(t, err)
		require.NoError(t, l.ConfirmReceipt(v, kernel.MustQuantity(600), receivedAt))

		require.ErrorIs(t, l.ConfirmReceipt(v, kernel.MustQuantity(600), receivedAt),
			errs.ErrInvalidStateTransition)
	})

	t.Run("receipt before handover is rejected", func(t *testing.T) {
		l := newLog(t)
		receivedAt := handedOverAt.Add(-time.Minute)
		v, err := handover.NewVerifiedReceipt(
			kernel.NewUUID(), l.AllocationID(), kernel.NewUUID(),
			kernel.MustQuantity(600), "", receivedAt)
		require.NoError(t, err)

		require.ErrorIs(t, l.ConfirmReceipt(v, kernel.MustQuantity(600), receivedAt),
			errs.ErrValueIsInvalid)
	})
}
