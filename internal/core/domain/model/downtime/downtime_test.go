package downtime_test

import (
	"testing"
	"time"

	"mestrace/internal/core/domain/model/downtime"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStop(t *testing.T, stoppedAt time.Time) *downtime.ProcessStop {
	t.Helper()
	s, err := downtime.NewProcessStop(
		kernel.NewUUID(), kernel.NewUUID(),
		downtime.ReasonMachineBreakdown, "spindle jam",
		kernel.NewUUID(), stoppedAt)
	require.NoError(t, err)
	return s
}

func TestProcessStop_Resume(t *testing.T) {
	stoppedAt := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)

	t.Run("downtime is floored to whole minutes", func(t *testing.T) {
		s := createTestStop(t, stoppedAt)

		resumedAt := stoppedAt.Add(47*time.Minute + 30*time.Second)
		require.NoError(t, s.Resume(kernel.NewUUID(), resumedAt))

		assert.True(t, s.IsResolved())
		require.NotNil(t, s.DowntimeMinutes())
		assert.Equal(t, 47, *s.DowntimeMinutes())
	})

	t.Run("double resume is rejected and downtime kept", func(t *testing.T) {
		s := createTestStop(t, stoppedAt)
		require.NoError(t, s.Resume(kernel.NewUUID(), stoppedAt.Add(10*time.Minute)))

		err := s.Resume(kernel.NewUUID(), stoppedAt.Add(20*time.Minute))
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Equal(t, 10, *s.DowntimeMinutes())
	})

	t.Run("resume before stop is rejected", func(t *testing.T) {
		s := createTestStop(t, stoppedAt)
		err := s.Resume(kernel.NewUUID(), stoppedAt.Add(-time.Minute))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.False(t, s.IsResolved())
	})

	t.Run("zero-duration stop records zero minutes", func(t *testing.T) {
		s := createTestStop(t, stoppedAt)
		require.NoError(t, s.Resume(kernel.NewUUID(), stoppedAt.Add(30*time.Second)))
		assert.Equal(t, 0, *s.DowntimeMinutes())
	})
}

func TestProcessStop_CurrentDowntimeMinutes(t *testing.T) {
	stoppedAt := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)

	t.Run("live downtime while open", func(t *testing.T) {
		s := createTestStop(t, stoppedAt)
		assert.Equal(t, 12, s.CurrentDowntimeMinutes(stoppedAt.Add(12*time.Minute+59*time.Second)))
	})

	t.Run("recorded downtime once resolved", func(t *testing.T) {
		s := createTestStop(t, stoppedAt)
		require.NoError(t, s.Resume(kernel.NewUUID(), stoppedAt.Add(15*time.Minute)))
		assert.Equal(t, 15, s.CurrentDowntimeMinutes(stoppedAt.Add(2*time.Hour)))
	})
}

func TestProcessDowntimeSummary(t *testing.T) {
	now := time.Date(2025, 6, 12, 14, 30, 0, 0, time.UTC)

	t.Run("day is normalized to midnight UTC", func(t *testing.T) {
		s, err := downtime.NewProcessDowntimeSummary(
			kernel.NewUUID(), kernel.NewUUID(), now,
			2, 57, map[downtime.StopReason]int{
				downtime.ReasonMachineBreakdown: 47,
				downtime.ReasonPowerFailure:     10,
			}, now)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), s.Day())
		assert.Equal(t, 2, s.TotalStops())
		assert.Equal(t, 57, s.TotalDowntimeMinutes())
		assert.Equal(t, 47, s.MinutesByReason()[downtime.ReasonMachineBreakdown])
	})

	t.Run("negative totals are rejected", func(t *testing.T) {
		_, err := downtime.NewProcessDowntimeSummary(
			kernel.NewUUID(), kernel.NewUUID(), now, -1, 0, nil, now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
