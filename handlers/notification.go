package handlers

import (
	"io"
	"time"

	"beautyboosters/middleware"
	"beautyboosters/models"
	"beautyboosters/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	toastBuffer    = 16
	heartbeatEvery = 25 * time.Second
)

type NotificationHandler struct {
	Feed *notification.Feed
}

func NewNotificationHandler(feed *notification.Feed) *NotificationHandler {
	return &NotificationHandler{Feed: feed}
}

// StreamToasts handles GET /api/notifications/stream as Server-Sent Events. The
// subscription ends when the client disconnects.
func (h *NotificationHandler) StreamToasts(c *gin.Context) {
	logger := getLogger(c)
	viewer := notification.Viewer{
		UserID: c.GetString(middleware.ContextUserID),
		Role:   c.GetString(middleware.ContextRole),
	}

	toasts := make(chan models.Toast, toastBuffer)
	sub := h.Feed.Subscribe(c.Request.Context(), viewer, func(t models.Toast) {
		select {
		case toasts <- t:
		default:
			logger.Warn("Toast dropped, client too slow", zap.String("userId", viewer.UserID))
		}
	})
	defer sub.Unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(heartbeatEvery)
	defer heartbeat.Stop()

	c.SSEvent("ready", gin.H{"role": viewer.Role})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case t := <-toasts:
			c.SSEvent("toast", t)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-sub.Done():
			return false
		case <-c.Request.Context().Done():
			return false
		}
	})
}
