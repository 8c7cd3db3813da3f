package service

import (
	"math"
	"time"

	"github.com/Kgadrw/profit-backend/internal/entity"
)

// FiringTolerance is the grace window after a target instant during
// which a firing still counts. It must be at least as long as the sweep
// tick period, otherwise firings can be silently missed.
const FiringTolerance = 60 * time.Second

// DueEvaluation is the outcome of checking one reminder against the
// current wall-clock time.
type DueEvaluation struct {
	FireAdvance         bool `json:"fire_advance"`
	FireDue             bool `json:"fire_due"`
	AlreadyFiredAdvance bool `json:"already_fired_advance"`
	AlreadyFiredDue     bool `json:"already_fired_due"`
}

// ShouldFire reports whether the evaluation requires any notification.
func (e DueEvaluation) ShouldFire() bool {
	return e.FireAdvance || e.FireDue
}

// EvaluateDue decides whether the due-date or the advance notification
// of a reminder should fire at the given instant.
//
// The due firing targets the due date itself, the advance firing targets
// dueDate minus AdvanceNotificationDays whole days. A firing is eligible
// only inside [target, target+FiringTolerance]; a sweep that comes later
// has missed the occurrence for good, there is no catch-up. A firing is
// suppressed when LastNotified already falls in the same calendar minute
// as the target, which makes sweeps idempotent at a tick period of one
// minute or less.
func EvaluateDue(reminder *entity.Reminder, now time.Time) DueEvaluation {
	var eval DueEvaluation

	days := daysUntil(reminder.DueDate, now)

	if days == 0 && withinTolerance(reminder.DueDate, now) {
		if firedAt(reminder.LastNotified, reminder.DueDate) {
			eval.AlreadyFiredDue = true
		} else {
			eval.FireDue = true
		}
	}

	if reminder.AdvanceNotificationDays > 0 && days == reminder.AdvanceNotificationDays {
		target := reminder.DueDate.AddDate(0, 0, -reminder.AdvanceNotificationDays)
		if withinTolerance(target, now) {
			if firedAt(reminder.LastNotified, target) {
				eval.AlreadyFiredAdvance = true
			} else {
				eval.FireAdvance = true
			}
		}
	}

	return eval
}

// daysUntil counts whole calendar days until the due date, rounding up.
// Anything inside the tolerance window after the due date still counts
// as day zero.
func daysUntil(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

func withinTolerance(target, now time.Time) bool {
	return !now.Before(target) && now.Sub(target) <= FiringTolerance
}

// firedAt reports whether lastNotified lands in the same calendar minute
// as the target instant.
func firedAt(lastNotified *time.Time, target time.Time) bool {
	if lastNotified == nil {
		return false
	}
	return sameMinute(*lastNotified, target)
}

func sameMinute(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() &&
		a.Month() == b.Month() &&
		a.Day() == b.Day() &&
		a.Hour() == b.Hour() &&
		a.Minute() == b.Minute()
}
