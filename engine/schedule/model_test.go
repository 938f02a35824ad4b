package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integraph/integraph/engine/core"
)

func TestSchedule_Validate(t *testing.T) {
	t.Run("Should accept a daily schedule", func(t *testing.T) {
		s := &Schedule{ProcessID: 1, Recurrence: RecurrenceDaily, Hour: 6, Minute: 30}
		assert.NoError(t, s.Validate())
	})

	t.Run("Should accept an interval schedule with a positive interval", func(t *testing.T) {
		s := &Schedule{ProcessID: 1, Recurrence: RecurrenceInterval, IntervalMinutes: 15}
		assert.NoError(t, s.Validate())
	})

	t.Run("Should reject a missing process reference", func(t *testing.T) {
		s := &Schedule{Recurrence: RecurrenceDaily}
		err := s.Validate()
		require.Error(t, err)
		assert.Equal(t, core.KindInvalid, core.KindOf(err))
	})

	t.Run("Should reject an unknown recurrence", func(t *testing.T) {
		s := &Schedule{ProcessID: 1, Recurrence: "Fortnightly"}
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown recurrence")
	})

	t.Run("Should reject a zero interval", func(t *testing.T) {
		s := &Schedule{ProcessID: 1, Recurrence: RecurrenceInterval, IntervalMinutes: 0}
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "interval_minutes must be greater than zero")
	})

	t.Run("Should reject a negative interval", func(t *testing.T) {
		s := &Schedule{ProcessID: 1, Recurrence: RecurrenceInterval, IntervalMinutes: -5}
		err := s.Validate()
		require.Error(t, err)
		assert.Equal(t, core.KindInvalid, core.KindOf(err))
	})

	t.Run("Should reject a weekly schedule with day_of_week out of range", func(t *testing.T) {
		s := &Schedule{ProcessID: 1, Recurrence: RecurrenceWeekly, DayOfWeek: 7}
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "day_of_week must be between 0 and 6")
	})

	t.Run("Should reject a monthly schedule with day_of_month out of range", func(t *testing.T) {
		s := &Schedule{ProcessID: 1, Recurrence: RecurrenceMonthly, DayOfMonth: 32}
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "day_of_month must be between 1 and 31")
	})

	t.Run("Should reject a yearly schedule with month out of range", func(t *testing.T) {
		s := &Schedule{ProcessID: 1, Recurrence: RecurrenceYearly, Month: 13, DayOfMonth: 1}
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "month must be between 1 and 12")
	})

	t.Run("Should reject an out-of-range hour", func(t *testing.T) {
		s := &Schedule{ProcessID: 1, Recurrence: RecurrenceOnce, Hour: 24}
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hour must be between 0 and 23")
	})

	t.Run("Should reject an out-of-range minute", func(t *testing.T) {
		s := &Schedule{ProcessID: 1, Recurrence: RecurrenceOnce, Minute: 60}
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "minute must be between 0 and 59")
	})

	t.Run("Should ignore weekly bounds on a daily schedule", func(t *testing.T) {
		s := &Schedule{ProcessID: 1, Recurrence: RecurrenceDaily, DayOfWeek: 42}
		assert.NoError(t, s.Validate())
	})
}
