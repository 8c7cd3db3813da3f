package notifier

import (
	"context"
	"fmt"

	"github.com/Kgadrw/profit-backend/internal/entity"
	"github.com/Kgadrw/profit-backend/internal/service"
	"github.com/Kgadrw/profit-backend/pkg/mailer"
	"github.com/Kgadrw/profit-backend/pkg/telegram"

	"github.com/sirupsen/logrus"
)

// Mailer is the slice of pkg/mailer the notifier needs.
type Mailer interface {
	Send(to, subject, text, html string) error
}

// EmailNotifier delivers reminder notifications over SMTP and, for
// users with a linked chat, additionally over Telegram. The Telegram
// push is best-effort on top of the email; only the email outcome
// decides the call's result.
type EmailNotifier struct {
	mailer Mailer
	bot    *telegram.Bot
}

var _ service.Notifier = (*EmailNotifier)(nil)

func NewEmailNotifier(m *mailer.Mailer, bot *telegram.Bot) *EmailNotifier {
	return &EmailNotifier{mailer: m, bot: bot}
}

// NewEmailNotifierWithMailer exists for tests that inject a fake mailer.
func NewEmailNotifierWithMailer(m Mailer, bot *telegram.Bot) *EmailNotifier {
	return &EmailNotifier{mailer: m, bot: bot}
}

func (n *EmailNotifier) NotifyUserOfReminder(ctx context.Context, user *entity.User, reminder *entity.Reminder, kind service.NotificationKind) error {
	if user.Email == "" {
		return fmt.Errorf("user %s has no email address", user.ID)
	}

	subject := reminderSubject(reminder, kind)
	text := reminderBody(reminder, kind, reminder.UserMessage)

	n.pushTelegram(user, subject+"\n\n"+text)

	return n.mailer.Send(user.Email, subject, text, reminderHTML(subject, text))
}

func (n *EmailNotifier) NotifyClientOfReminder(ctx context.Context, client *entity.Client, reminder *entity.Reminder, kind service.NotificationKind) error {
	if client.Email == "" {
		return fmt.Errorf("client %s has no email address", client.ID)
	}

	subject := reminderSubject(reminder, kind)
	text := reminderBody(reminder, kind, reminder.ClientMessage)

	return n.mailer.Send(client.Email, subject, text, reminderHTML(subject, text))
}

func (n *EmailNotifier) NotifyUserOfCompletion(ctx context.Context, user *entity.User, reminder *entity.Reminder, message string) error {
	if user.Email == "" {
		return fmt.Errorf("user %s has no email address", user.ID)
	}

	subject := fmt.Sprintf("Completed: %s", reminder.Title)
	text := completionBody(reminder, message)

	n.pushTelegram(user, subject+"\n\n"+text)

	return n.mailer.Send(user.Email, subject, text, reminderHTML(subject, text))
}

func (n *EmailNotifier) NotifyClientOfCompletion(ctx context.Context, client *entity.Client, reminder *entity.Reminder, message string) error {
	if client.Email == "" {
		return fmt.Errorf("client %s has no email address", client.ID)
	}

	subject := fmt.Sprintf("Completed: %s", reminder.Title)
	text := completionBody(reminder, message)

	return n.mailer.Send(client.Email, subject, text, reminderHTML(subject, text))
}

func (n *EmailNotifier) pushTelegram(user *entity.User, text string) {
	if n.bot == nil || user.TelegramID == "" {
		return
	}
	if err := n.bot.SendMessage(user.TelegramID, text); err != nil {
		logrus.Errorf("Failed to push telegram message to user %s: %v", user.ID, err)
	}
}

func reminderSubject(reminder *entity.Reminder, kind service.NotificationKind) string {
	if kind == service.NotificationAdvance {
		return fmt.Sprintf("Upcoming: %s (due %s)", reminder.Title, reminder.DueDate.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("Due today: %s", reminder.Title)
}

// reminderBody uses the custom message when one is set and falls back
// to a generated default otherwise.
func reminderBody(reminder *entity.Reminder, kind service.NotificationKind, custom *string) string {
	if custom != nil && *custom != "" {
		return *custom
	}

	body := fmt.Sprintf("Reminder: %s\nDue: %s", reminder.Title, reminder.DueDate.Format("Jan 2, 2006 15:04"))
	if kind == service.NotificationAdvance {
		body = fmt.Sprintf("Reminder: %s is coming up.\nDue: %s", reminder.Title, reminder.DueDate.Format("Jan 2, 2006 15:04"))
	}
	if reminder.Description != "" {
		body += "\n\n" + reminder.Description
	}
	if reminder.Amount != nil {
		body += fmt.Sprintf("\nAmount: %.2f", *reminder.Amount)
	}
	return body
}

func completionBody(reminder *entity.Reminder, message string) string {
	if message != "" {
		return message
	}
	return fmt.Sprintf("The reminder %q has been marked as completed.", reminder.Title)
}

func reminderHTML(subject, text string) string {
	return fmt.Sprintf("<h3>%s</h3><p>%s</p>", subject, text)
}
