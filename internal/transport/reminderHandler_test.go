package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kgadrw/profit-backend/internal/entity"
	"github.com/Kgadrw/profit-backend/internal/service"
	"github.com/Kgadrw/profit-backend/internal/transport/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReminderService struct {
	reminder *entity.Reminder
	err      error

	completedID string
}

func (s *stubReminderService) CreateReminder(_ context.Context, tenantID string, req *service.CreateReminderRequest) (*entity.Reminder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.reminder, nil
}

func (s *stubReminderService) GetReminder(_ context.Context, tenantID, id string) (*entity.Reminder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.reminder, nil
}

func (s *stubReminderService) GetReminders(_ context.Context, tenantID string, status *entity.ReminderStatus) ([]*entity.Reminder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*entity.Reminder{s.reminder}, nil
}

func (s *stubReminderService) UpdateReminder(_ context.Context, tenantID, id string, req *service.UpdateReminderRequest) (*entity.Reminder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.reminder, nil
}

func (s *stubReminderService) DeleteReminder(_ context.Context, tenantID, id string) error {
	return s.err
}

func (s *stubReminderService) CompleteReminder(_ context.Context, tenantID, id string, req *service.CompleteReminderRequest) (*entity.Reminder, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.completedID = id
	return s.reminder, nil
}

func (s *stubReminderService) CancelReminder(_ context.Context, tenantID, id string) (*entity.Reminder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.reminder, nil
}

func (s *stubReminderService) ProcessDueReminders(_ context.Context, now time.Time) error {
	return nil
}

func setupReminderRouter(svc service.ReminderService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewReminderHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.TenantIDKey, "tenant-1")
	})

	router.POST("/reminders", handler.CreateReminder)
	router.GET("/reminders", handler.GetReminders)
	router.GET("/reminders/:id", handler.GetReminder)
	router.PUT("/reminders/:id", handler.UpdateReminder)
	router.DELETE("/reminders/:id", handler.DeleteReminder)
	router.POST("/reminders/:id/complete", handler.CompleteReminder)
	router.POST("/reminders/:id/cancel", handler.CancelReminder)

	return router
}

func testReminder() *entity.Reminder {
	return &entity.Reminder{
		ID:        "rem-1",
		TenantID:  "tenant-1",
		Title:     "Pay rent",
		DueDate:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Frequency: entity.FrequencyMonthly,
		Status:    entity.ReminderStatusPending,
	}
}

func TestCreateReminderHandler(t *testing.T) {
	t.Run("valid payload creates", func(t *testing.T) {
		router := setupReminderRouter(&stubReminderService{reminder: testReminder()})

		body, _ := json.Marshal(map[string]interface{}{
			"title":     "Pay rent",
			"due_date":  "2026-03-01T09:00:00Z",
			"frequency": "monthly",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reminders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var got entity.Reminder
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "rem-1", got.ID)
	})

	t.Run("missing title is a bad request", func(t *testing.T) {
		router := setupReminderRouter(&stubReminderService{reminder: testReminder()})

		body, _ := json.Marshal(map[string]interface{}{
			"due_date":  "2026-03-01T09:00:00Z",
			"frequency": "monthly",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reminders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service validation error maps to bad request", func(t *testing.T) {
		router := setupReminderRouter(&stubReminderService{err: entity.ErrInvalidFrequency})

		body, _ := json.Marshal(map[string]interface{}{
			"title":     "Pay rent",
			"due_date":  "2026-03-01T09:00:00Z",
			"frequency": "hourly",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reminders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetReminderHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router := setupReminderRouter(&stubReminderService{reminder: testReminder()})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reminders/rem-1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		router := setupReminderRouter(&stubReminderService{err: entity.ErrReminderNotFound})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reminders/nope", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetRemindersHandler_StatusFilter(t *testing.T) {
	router := setupReminderRouter(&stubReminderService{reminder: testReminder()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reminders?status=pending", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/reminders?status=someday", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompleteReminderHandler(t *testing.T) {
	t.Run("completes and returns the original reminder", func(t *testing.T) {
		reminder := testReminder()
		reminder.Status = entity.ReminderStatusCompleted
		stub := &stubReminderService{reminder: reminder}
		router := setupReminderRouter(stub)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reminders/rem-1/complete", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "rem-1", stub.completedID)

		var got entity.Reminder
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, entity.ReminderStatusCompleted, got.Status)
	})

	t.Run("no request body completes with the defaults", func(t *testing.T) {
		stub := &stubReminderService{reminder: testReminder()}
		router := setupReminderRouter(stub)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reminders/rem-1/complete", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "rem-1", stub.completedID)
	})

	t.Run("completing a non-pending reminder is rejected", func(t *testing.T) {
		router := setupReminderRouter(&stubReminderService{err: entity.ErrReminderNotPending})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reminders/rem-1/complete", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteReminderHandler(t *testing.T) {
	router := setupReminderRouter(&stubReminderService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/reminders/rem-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
