package service

import (
	"context"
	"sync"
	"time"

	"github.com/Kgadrw/profit-backend/internal/entity"
)

// In-memory repository doubles shared by the service tests. They keep
// insertion order so sweep-behavior assertions stay deterministic.

type fakeReminderRepo struct {
	mu        sync.Mutex
	reminders []*entity.Reminder

	createErr       error
	lastNotifiedErr error

	lastNotifiedCalls []string
	statusWrites      map[string]entity.ReminderStatus
}

func newFakeReminderRepo(reminders ...*entity.Reminder) *fakeReminderRepo {
	return &fakeReminderRepo{
		reminders:    reminders,
		statusWrites: make(map[string]entity.ReminderStatus),
	}
}

func (r *fakeReminderRepo) Create(_ context.Context, reminder *entity.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.reminders = append(r.reminders, reminder)
	return nil
}

func (r *fakeReminderRepo) GetByID(_ context.Context, id, tenantID string) (*entity.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reminder := range r.reminders {
		if reminder.ID == id && reminder.TenantID == tenantID {
			return reminder, nil
		}
	}
	return nil, entity.ErrReminderNotFound
}

func (r *fakeReminderRepo) Update(_ context.Context, reminder *entity.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.reminders {
		if existing.ID == reminder.ID && existing.TenantID == reminder.TenantID {
			r.reminders[i] = reminder
			return nil
		}
	}
	return entity.ErrReminderNotFound
}

func (r *fakeReminderRepo) Delete(_ context.Context, id, tenantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, reminder := range r.reminders {
		if reminder.ID == id && reminder.TenantID == tenantID {
			r.reminders = append(r.reminders[:i], r.reminders[i+1:]...)
			return nil
		}
	}
	return entity.ErrReminderNotFound
}

func (r *fakeReminderRepo) GetByTenant(_ context.Context, tenantID string) ([]*entity.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Reminder
	for _, reminder := range r.reminders {
		if reminder.TenantID == tenantID {
			out = append(out, reminder)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) GetByTenantAndStatus(_ context.Context, tenantID string, status entity.ReminderStatus) ([]*entity.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Reminder
	for _, reminder := range r.reminders {
		if reminder.TenantID == tenantID && reminder.Status == status {
			out = append(out, reminder)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) GetUpcoming(_ context.Context, tenantID string, until time.Time) ([]*entity.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Reminder
	for _, reminder := range r.reminders {
		if reminder.TenantID == tenantID && reminder.Status == entity.ReminderStatusPending && !reminder.DueDate.After(until) {
			out = append(out, reminder)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) GetPending(_ context.Context) ([]*entity.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Reminder
	for _, reminder := range r.reminders {
		if reminder.Status == entity.ReminderStatusPending {
			out = append(out, reminder)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) UpdateLastNotified(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastNotifiedErr != nil {
		return r.lastNotifiedErr
	}
	r.lastNotifiedCalls = append(r.lastNotifiedCalls, id)
	for _, reminder := range r.reminders {
		if reminder.ID == id {
			t := at
			reminder.LastNotified = &t
			return nil
		}
	}
	return entity.ErrReminderNotFound
}

func (r *fakeReminderRepo) UpdateStatus(_ context.Context, id, tenantID string, status entity.ReminderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reminder := range r.reminders {
		if reminder.ID == id && reminder.TenantID == tenantID {
			reminder.Status = status
			r.statusWrites[id] = status
			return nil
		}
	}
	return entity.ErrReminderNotFound
}

func (r *fakeReminderRepo) byID(id string) *entity.Reminder {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reminder := range r.reminders {
		if reminder.ID == id {
			return reminder
		}
	}
	return nil
}

func (r *fakeReminderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reminders)
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func newFakeClientRepo(clients ...*entity.Client) *fakeClientRepo {
	repo := &fakeClientRepo{clients: make(map[string]*entity.Client)}
	for _, client := range clients {
		repo.clients[client.ID] = client
	}
	return repo
}

func (r *fakeClientRepo) Create(_ context.Context, client *entity.Client) error {
	r.clients[client.ID] = client
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id, tenantID string) (*entity.Client, error) {
	client, ok := r.clients[id]
	if !ok || client.TenantID != tenantID {
		return nil, entity.ErrClientNotFound
	}
	return client, nil
}

func (r *fakeClientRepo) GetByIDAny(_ context.Context, id string) (*entity.Client, error) {
	client, ok := r.clients[id]
	if !ok {
		return nil, entity.ErrClientNotFound
	}
	return client, nil
}

func (r *fakeClientRepo) GetByTenant(_ context.Context, tenantID string) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, client := range r.clients {
		if client.TenantID == tenantID {
			out = append(out, client)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) Update(_ context.Context, client *entity.Client) error {
	if _, ok := r.clients[client.ID]; !ok {
		return entity.ErrClientNotFound
	}
	r.clients[client.ID] = client
	return nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id, tenantID string) error {
	client, ok := r.clients[id]
	if !ok || client.TenantID != tenantID {
		return entity.ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) CountByTenant(_ context.Context, tenantID string) (int, error) {
	count := 0
	for _, client := range r.clients {
		if client.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateTelegramID(_ context.Context, userID, telegramID string) error {
	user, ok := r.users[userID]
	if !ok {
		return entity.ErrUserNotFound
	}
	user.TelegramID = telegramID
	return nil
}

type notifierCall struct {
	recipient string
	reminder  string
	kind      NotificationKind
	message   string
}

// recordingNotifier captures every dispatched notification in order.
type recordingNotifier struct {
	mu      sync.Mutex
	calls   []notifierCall
	userErr error
}

func (n *recordingNotifier) NotifyUserOfReminder(_ context.Context, user *entity.User, reminder *entity.Reminder, kind NotificationKind) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.userErr != nil {
		return n.userErr
	}
	n.calls = append(n.calls, notifierCall{recipient: "user:" + user.ID, reminder: reminder.ID, kind: kind})
	return nil
}

func (n *recordingNotifier) NotifyClientOfReminder(_ context.Context, client *entity.Client, reminder *entity.Reminder, kind NotificationKind) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifierCall{recipient: "client:" + client.ID, reminder: reminder.ID, kind: kind})
	return nil
}

func (n *recordingNotifier) NotifyUserOfCompletion(_ context.Context, user *entity.User, reminder *entity.Reminder, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifierCall{recipient: "user:" + user.ID, reminder: reminder.ID, message: message})
	return nil
}

func (n *recordingNotifier) NotifyClientOfCompletion(_ context.Context, client *entity.Client, reminder *entity.Reminder, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifierCall{recipient: "client:" + client.ID, reminder: reminder.ID, message: message})
	return nil
}

func (n *recordingNotifier) callsFor(reminderID string) []notifierCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notifierCall
	for _, call := range n.calls {
		if call.reminder == reminderID {
			out = append(out, call)
		}
	}
	return out
}
