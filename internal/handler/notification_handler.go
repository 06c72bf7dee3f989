package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sashafierce98/TGPTaskflow/internal/service"
)

type NotificationLister interface {
	ForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]service.Notification, error)
}

type NotificationHandler struct {
	notifications NotificationLister
	now           func() time.Time
}

func NewNotificationHandler(notifications NotificationLister) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, now: time.Now}
}

// GetAll returns due-date reminders for the caller's assigned cards.
func (h *NotificationHandler) GetAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notifications, err := h.notifications.ForUser(c.Request.Context(), userID, h.now())
	if err != nil {
		slog.Error("list notifications", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}
