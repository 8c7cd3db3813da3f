package worker

import (
	"context"
	"time"

	"github.com/Kgadrw/profit-backend/pkg/scheduler"

	"github.com/sirupsen/logrus"
)

// DueReminderProcessor is the slice of ReminderService the worker needs.
type DueReminderProcessor interface {
	ProcessDueReminders(ctx context.Context, now time.Time) error
}

// ReminderSweepWorker drives the due-reminder sweep: one eager run at
// startup, then one run per tick. Each tick runs synchronously to
// completion; shutdown stops further ticks but does not interrupt a
// tick that is already under way.
type ReminderSweepWorker struct {
	reminderService DueReminderProcessor
	interval        time.Duration
}

func NewReminderSweepWorker(reminderService DueReminderProcessor, interval time.Duration) *ReminderSweepWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ReminderSweepWorker{
		reminderService: reminderService,
		interval:        interval,
	}
}

func (w *ReminderSweepWorker) Start(ctx context.Context) {
	logrus.Info("Reminder sweep worker started")

	// The scheduler runs the first sweep eagerly, so a restarted process
	// picks up anything due right now instead of waiting out a full
	// interval.
	scheduler.NewScheduler(w.sweep, w.interval).Start(ctx)

	logrus.Info("Reminder sweep worker stopped")
}

func (w *ReminderSweepWorker) sweep(ctx context.Context) {
	if err := w.reminderService.ProcessDueReminders(ctx, time.Now()); err != nil {
		logrus.Errorf("Reminder sweep failed: %v", err)
	}
}
