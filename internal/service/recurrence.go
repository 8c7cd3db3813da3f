package service

import (
	"time"

	"github.com/Kgadrw/profit-backend/internal/entity"
)

// NextOccurrence computes the due date of the occurrence after current,
// or nil when the series does not continue.
//
// Month and year steps clamp the day of month to the last day of the
// target month: Jan 31 + 1 month = Feb 29 in a leap year, Feb 28
// otherwise. A repeatUntil boundary that the candidate would exceed ends
// the series; a repeatUntil already in the past ends it before any
// arithmetic is done.
func NextOccurrence(current time.Time, frequency entity.ReminderFrequency, repeatUntil *time.Time, now time.Time) *time.Time {
	if frequency == entity.FrequencyOnce {
		return nil
	}
	if repeatUntil != nil && repeatUntil.Before(now) {
		return nil
	}

	var next time.Time
	switch frequency {
	case entity.FrequencyDaily:
		next = current.AddDate(0, 0, 1)
	case entity.FrequencyWeekly:
		next = current.AddDate(0, 0, 7)
	case entity.FrequencyMonthly:
		next = addMonthsClamped(current, 1)
	case entity.FrequencyYearly:
		next = addYearsClamped(current, 1)
	default:
		return nil
	}

	if repeatUntil != nil && next.After(*repeatUntil) {
		return nil
	}

	return &next
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()).AddDate(0, months, 0)

	if last := lastDayOfMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func addYearsClamped(t time.Time, years int) time.Time {
	year, month, day := t.Date()
	year += years

	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day zero of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
