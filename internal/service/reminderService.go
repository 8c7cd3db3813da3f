package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/Kgadrw/profit-backend/internal/database/postgres"
	"github.com/Kgadrw/profit-backend/internal/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type reminderService struct {
	reminderRepo repository.ReminderRepository
	clientRepo   repository.ClientRepository
	userRepo     repository.UserRepository
	notifier     Notifier
}

func NewReminderService(
	reminderRepo repository.ReminderRepository,
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) ReminderService {
	return &reminderService{
		reminderRepo: reminderRepo,
		clientRepo:   clientRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

func (s *reminderService) CreateReminder(ctx context.Context, tenantID string, req *CreateReminderRequest) (*entity.Reminder, error) {
	if !req.Frequency.Valid() {
		return nil, entity.ErrInvalidFrequency
	}
	if req.AdvanceNotificationDays < 0 {
		return nil, fmt.Errorf("%w: advance_notification_days must be non-negative", entity.ErrInvalidInput)
	}

	// A linked client must belong to the same tenant.
	if req.ClientID != nil {
		if _, err := s.clientRepo.GetByID(ctx, *req.ClientID, tenantID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	reminder := &entity.Reminder{
		ID:                      uuid.New().String(),
		TenantID:                tenantID,
		Title:                   req.Title,
		Description:             req.Description,
		ClientID:                req.ClientID,
		DueDate:                 req.DueDate,
		Frequency:               req.Frequency,
		Amount:                  req.Amount,
		Status:                  entity.ReminderStatusPending,
		NotifyUser:              req.NotifyUser,
		NotifyClient:            req.NotifyClient,
		UserMessage:             req.UserMessage,
		ClientMessage:           req.ClientMessage,
		AdvanceNotificationDays: req.AdvanceNotificationDays,
		RepeatUntil:             req.RepeatUntil,
		NextDueDate:             NextOccurrence(req.DueDate, req.Frequency, req.RepeatUntil, now),
	}

	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	return reminder, nil
}

func (s *reminderService) GetReminder(ctx context.Context, tenantID, id string) (*entity.Reminder, error) {
	return s.reminderRepo.GetByID(ctx, id, tenantID)
}

func (s *reminderService) GetReminders(ctx context.Context, tenantID string, status *entity.ReminderStatus) ([]*entity.Reminder, error) {
	if status != nil {
		return s.reminderRepo.GetByTenantAndStatus(ctx, tenantID, *status)
	}
	return s.reminderRepo.GetByTenant(ctx, tenantID)
}

func (s *reminderService) UpdateReminder(ctx context.Context, tenantID, id string, req *UpdateReminderRequest) (*entity.Reminder, error) {
	reminder, err := s.reminderRepo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	if reminder.Status != entity.ReminderStatusPending {
		return nil, entity.ErrReminderNotPending
	}

	if req.Title != nil {
		reminder.Title = *req.Title
	}
	if req.Description != nil {
		reminder.Description = *req.Description
	}
	if req.ClientID != nil {
		if _, err := s.clientRepo.GetByID(ctx, *req.ClientID, tenantID); err != nil {
			return nil, err
		}
		reminder.ClientID = req.ClientID
	}
	if req.DueDate != nil {
		reminder.DueDate = *req.DueDate
	}
	if req.Frequency != nil {
		if !req.Frequency.Valid() {
			return nil, entity.ErrInvalidFrequency
		}
		reminder.Frequency = *req.Frequency
	}
	if req.Amount != nil {
		reminder.Amount = req.Amount
	}
	if req.NotifyUser != nil {
		reminder.NotifyUser = *req.NotifyUser
	}
	if req.NotifyClient != nil {
		reminder.NotifyClient = *req.NotifyClient
	}
	if req.UserMessage != nil {
		reminder.UserMessage = req.UserMessage
	}
	if req.ClientMessage != nil {
		reminder.ClientMessage = req.ClientMessage
	}
	if req.AdvanceNotificationDays != nil {
		if *req.AdvanceNotificationDays < 0 {
			return nil, fmt.Errorf("%w: advance_notification_days must be non-negative", entity.ErrInvalidInput)
		}
		reminder.AdvanceNotificationDays = *req.AdvanceNotificationDays
	}
	if req.RepeatUntil != nil {
		reminder.RepeatUntil = req.RepeatUntil
	}

	// The precomputed next occurrence follows the current schedule
	// fields wherever they end up after the partial update.
	reminder.NextDueDate = NextOccurrence(reminder.DueDate, reminder.Frequency, reminder.RepeatUntil, time.Now())

	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}

	return reminder, nil
}

func (s *reminderService) DeleteReminder(ctx context.Context, tenantID, id string) error {
	return s.reminderRepo.Delete(ctx, id, tenantID)
}

// CompleteReminder marks a pending reminder completed and, for a
// recurring series, spawns the next occurrence as a fresh pending
// record. The status write is the only failure surfaced to the caller:
// a lost rollover or a failed completion notice is logged and accepted,
// a reminder stuck pending forever is not.
func (s *reminderService) CompleteReminder(ctx context.Context, tenantID, id string, req *CompleteReminderRequest) (*entity.Reminder, error) {
	reminder, err := s.reminderRepo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	if reminder.Status != entity.ReminderStatusPending {
		return nil, entity.ErrReminderNotPending
	}

	if err := s.reminderRepo.UpdateStatus(ctx, id, tenantID, entity.ReminderStatusCompleted); err != nil {
		return nil, fmt.Errorf("failed to complete reminder: %w", err)
	}
	reminder.Status = entity.ReminderStatusCompleted

	// The completed record stays as history; the series continues in a
	// new pending record.
	if reminder.IsRecurring() && reminder.NextDueDate != nil {
		successor := s.buildSuccessor(reminder)
		if err := s.reminderRepo.Create(ctx, successor); err != nil {
			logrus.Errorf("Failed to create next occurrence for reminder %s: %v", reminder.ID, err)
		} else {
			logrus.WithFields(logrus.Fields{
				"reminder_id":  reminder.ID,
				"successor_id": successor.ID,
				"due_date":     successor.DueDate,
			}).Info("Recurring reminder rolled over")
		}
	}

	s.sendCompletionNotices(ctx, reminder, req)

	return reminder, nil
}

func (s *reminderService) buildSuccessor(reminder *entity.Reminder) *entity.Reminder {
	dueDate := *reminder.NextDueDate
	return &entity.Reminder{
		ID:                      uuid.New().String(),
		TenantID:                reminder.TenantID,
		Title:                   reminder.Title,
		Description:             reminder.Description,
		ClientID:                reminder.ClientID,
		DueDate:                 dueDate,
		Frequency:               reminder.Frequency,
		Amount:                  reminder.Amount,
		Status:                  entity.ReminderStatusPending,
		NotifyUser:              reminder.NotifyUser,
		NotifyClient:            reminder.NotifyClient,
		UserMessage:             reminder.UserMessage,
		ClientMessage:           reminder.ClientMessage,
		AdvanceNotificationDays: reminder.AdvanceNotificationDays,
		RepeatUntil:             reminder.RepeatUntil,
		NextDueDate:             NextOccurrence(dueDate, reminder.Frequency, reminder.RepeatUntil, time.Now()),
	}
}

func (s *reminderService) sendCompletionNotices(ctx context.Context, reminder *entity.Reminder, req *CompleteReminderRequest) {
	message := ""
	if req.CompletionMessage != nil {
		message = *req.CompletionMessage
	}

	if req.NotifyUser {
		user, err := s.userRepo.GetByID(ctx, reminder.TenantID)
		if err != nil {
			logrus.Errorf("Failed to load user %s for completion notice: %v", reminder.TenantID, err)
		} else if err := s.notifier.NotifyUserOfCompletion(ctx, user, reminder, message); err != nil {
			logrus.Errorf("Failed to send completion notice to user %s: %v", user.ID, err)
		}
	}

	if req.NotifyClient && reminder.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, *reminder.ClientID, reminder.TenantID)
		if err != nil {
			logrus.Errorf("Failed to load client %s for completion notice: %v", *reminder.ClientID, err)
		} else if err := s.notifier.NotifyClientOfCompletion(ctx, client, reminder, message); err != nil {
			logrus.Errorf("Failed to send completion notice to client %s: %v", client.ID, err)
		}
	}
}

func (s *reminderService) CancelReminder(ctx context.Context, tenantID, id string) (*entity.Reminder, error) {
	reminder, err := s.reminderRepo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	if reminder.Status != entity.ReminderStatusPending {
		return nil, entity.ErrReminderNotPending
	}

	if err := s.reminderRepo.UpdateStatus(ctx, id, tenantID, entity.ReminderStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel reminder: %w", err)
	}
	reminder.Status = entity.ReminderStatusCancelled

	return reminder, nil
}

// ProcessDueReminders runs one sweep tick: it loads every pending
// reminder across all tenants, fires whatever the evaluator says is due
// and records the firing timestamp. One bad record never stops the
// sweep; a failed notification never blocks the other recipient or the
// state update.
func (s *reminderService) ProcessDueReminders(ctx context.Context, now time.Time) error {
	pending, err := s.reminderRepo.GetPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pending reminders: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	firedCount := 0
	failedCount := 0

	for _, reminder := range pending {
		select {
		case <-ctx.Done():
			logrus.Info("Reminder sweep interrupted by context cancellation")
			return ctx.Err()
		default:
		}

		eval := EvaluateDue(reminder, now)
		if !eval.ShouldFire() {
			continue
		}

		if err := s.fireReminder(ctx, reminder, eval, now); err != nil {
			logrus.Errorf("Failed to process reminder %s: %v", reminder.ID, err)
			failedCount++
			continue
		}
		firedCount++
	}

	if firedCount > 0 || failedCount > 0 {
		logrus.Infof("Reminder sweep completed: %d fired, %d failed", firedCount, failedCount)
	}

	return nil
}

func (s *reminderService) fireReminder(ctx context.Context, reminder *entity.Reminder, eval DueEvaluation, now time.Time) error {
	kind := NotificationDue
	if eval.FireAdvance {
		kind = NotificationAdvance
	}

	if reminder.NotifyUser {
		user, err := s.userRepo.GetByID(ctx, reminder.TenantID)
		if err != nil {
			logrus.Errorf("Failed to load user %s for reminder %s: %v", reminder.TenantID, reminder.ID, err)
		} else if err := s.notifier.NotifyUserOfReminder(ctx, user, reminder, kind); err != nil {
			logrus.Errorf("Failed to notify user %s for reminder %s: %v", user.ID, reminder.ID, err)
		}
	}

	if reminder.NotifyClient && reminder.ClientID != nil {
		client, err := s.clientRepo.GetByIDAny(ctx, *reminder.ClientID)
		if err != nil {
			logrus.Errorf("Failed to load client %s for reminder %s: %v", *reminder.ClientID, reminder.ID, err)
		} else if err := s.notifier.NotifyClientOfReminder(ctx, client, reminder, kind); err != nil {
			logrus.Errorf("Failed to notify client %s for reminder %s: %v", client.ID, reminder.ID, err)
		}
	}

	// One write per reminder per tick, regardless of which notifications
	// fired or failed. If this write fails the firing timestamp stays
	// unset and the next tick inside the tolerance window retries.
	if err := s.reminderRepo.UpdateLastNotified(ctx, reminder.ID, now); err != nil {
		return fmt.Errorf("failed to record firing: %w", err)
	}

	return nil
}
