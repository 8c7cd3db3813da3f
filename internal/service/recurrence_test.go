package service

import (
	"testing"
	"time"

	"github.com/Kgadrw/profit-backend/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		current   time.Time
		frequency entity.ReminderFrequency
		expected  time.Time
	}{
		{
			name:      "daily adds one day",
			current:   time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC),
			frequency: entity.FrequencyDaily,
			expected:  time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "weekly adds seven days",
			current:   time.Date(2024, 2, 26, 10, 0, 0, 0, time.UTC),
			frequency: entity.FrequencyWeekly,
			expected:  time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "monthly keeps the day when it exists",
			current:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			frequency: entity.FrequencyMonthly,
			expected:  time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "monthly from jan 31 clamps to leap february 29",
			current:   time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC),
			frequency: entity.FrequencyMonthly,
			expected:  time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "monthly from jan 31 clamps to february 28 off leap years",
			current:   time.Date(2023, 1, 31, 10, 0, 0, 0, time.UTC),
			frequency: entity.FrequencyMonthly,
			expected:  time.Date(2023, 2, 28, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "monthly from clamped day does not drift back up",
			current:   time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC),
			frequency: entity.FrequencyMonthly,
			expected:  time.Date(2024, 3, 29, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "monthly from oct 31 clamps to november 30",
			current:   time.Date(2024, 10, 31, 10, 0, 0, 0, time.UTC),
			frequency: entity.FrequencyMonthly,
			expected:  time.Date(2024, 11, 30, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "yearly adds one year",
			current:   time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
			frequency: entity.FrequencyYearly,
			expected:  time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "yearly from leap day clamps to february 28",
			current:   time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC),
			frequency: entity.FrequencyYearly,
			expected:  time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := NextOccurrence(tt.current, tt.frequency, nil, now)
			require.NotNil(t, next)
			assert.Equal(t, tt.expected, *next)
		})
	}
}

func TestNextOccurrence_SeriesEnd(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	current := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	t.Run("one-shot reminders never continue", func(t *testing.T) {
		assert.Nil(t, NextOccurrence(current, entity.FrequencyOnce, nil, now))
	})

	t.Run("repeat boundary already in the past ends the series", func(t *testing.T) {
		until := now.AddDate(0, 0, -1)
		assert.Nil(t, NextOccurrence(current, entity.FrequencyDaily, &until, now))
	})

	t.Run("candidate past the repeat boundary ends the series", func(t *testing.T) {
		until := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
		assert.Nil(t, NextOccurrence(current, entity.FrequencyWeekly, &until, now))
	})

	t.Run("candidate exactly on the repeat boundary survives", func(t *testing.T) {
		until := current.AddDate(0, 0, 1)
		next := NextOccurrence(current, entity.FrequencyDaily, &until, now)
		require.NotNil(t, next)
		assert.Equal(t, until, *next)
	})

	t.Run("unknown frequency yields nothing", func(t *testing.T) {
		assert.Nil(t, NextOccurrence(current, entity.ReminderFrequency("fortnightly"), nil, now))
	})
}
