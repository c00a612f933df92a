package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/healbridge/telehealth-api/internal/store"
)

// GetNotifications returns a user's notifications plus their unread count.
func (h *Handler) GetNotifications(c *gin.Context) {
	unreadOnly := c.DefaultQuery("unread_only", "false") == "true"
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	ctx := c.Request.Context()
	userID := c.Param("id")

	notifications, err := h.Store.NotificationsByUser(ctx, userID, limit, unreadOnly)
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to list notifications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}
	unread, err := h.Store.UnreadCount(ctx, userID)
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to count unread notifications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "unreadCount": unread})
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	notification, err := h.Store.MarkNotificationRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		h.Log.Error().Err(err).Msg("failed to mark notification read")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notification": notification})
}

func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.Store.MarkAllNotificationsRead(c.Request.Context(), c.Param("id")); err != nil {
		h.Log.Error().Err(err).Msg("failed to mark notifications read")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications as read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
