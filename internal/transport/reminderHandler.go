package transport

import (
	"errors"
	"io"
	"net/http"

	"github.com/Kgadrw/profit-backend/internal/entity"
	"github.com/Kgadrw/profit-backend/internal/service"
	"github.com/Kgadrw/profit-backend/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type ReminderHandler struct {
	reminderService service.ReminderService
}

func NewReminderHandler(reminderService service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	var req service.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder, err := h.reminderService.CreateReminder(c.Request.Context(), middleware.TenantID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reminder)
}

func (h *ReminderHandler) GetReminders(c *gin.Context) {
	var status *entity.ReminderStatus
	if s := c.Query("status"); s != "" {
		st := entity.ReminderStatus(s)
		switch st {
		case entity.ReminderStatusPending, entity.ReminderStatusCompleted, entity.ReminderStatusCancelled:
			status = &st
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
			return
		}
	}

	reminders, err := h.reminderService.GetReminders(c.Request.Context(), middleware.TenantID(c), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, reminders)
}

func (h *ReminderHandler) GetReminder(c *gin.Context) {
	reminder, err := h.reminderService.GetReminder(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reminder)
}

func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	var req service.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder, err := h.reminderService.UpdateReminder(c.Request.Context(), middleware.TenantID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reminder)
}

func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	if err := h.reminderService.DeleteReminder(c.Request.Context(), middleware.TenantID(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reminder deleted"})
}

// CompleteReminder is the externally triggered entry point into the
// schedule engine: it returns the completed reminder, not the successor
// occurrence a recurring series may have spawned.
func (h *ReminderHandler) CompleteReminder(c *gin.Context) {
	// Every completion option is optional, so a missing body means a
	// quiet completion with the defaults.
	var req service.CompleteReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder, err := h.reminderService.CompleteReminder(c.Request.Context(), middleware.TenantID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reminder)
}

func (h *ReminderHandler) CancelReminder(c *gin.Context) {
	reminder, err := h.reminderService.CancelReminder(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reminder)
}

// respondServiceError maps service sentinel errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrReminderNotFound),
		errors.Is(err, entity.ErrClientNotFound),
		errors.Is(err, entity.ErrProductNotFound),
		errors.Is(err, entity.ErrSaleNotFound),
		errors.Is(err, entity.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrReminderNotPending),
		errors.Is(err, entity.ErrInvalidFrequency),
		errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrInvalidPrice),
		errors.Is(err, entity.ErrInvalidStockAmount),
		errors.Is(err, entity.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrInvalidCredentials), errors.Is(err, entity.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
