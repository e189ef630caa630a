package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// NotificationHandler lets users read their notifications and mark
// them read. The read flag only ever moves from false to true.
type NotificationHandler struct {
	Notifications *repository.NotificationRepo
}

func NewNotificationHandler(n *repository.NotificationRepo) *NotificationHandler {
	return &NotificationHandler{Notifications: n}
}

type notificationResp struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func toNotificationResp(n model.Notification) notificationResp {
	return notificationResp{ID: n.ID, Title: n.Title, Message: n.Message, IsRead: n.IsRead, CreatedAt: n.CreatedAt}
}

// List returns the caller's notifications, newest first. Pass
// ?unread=true to skip read ones.
func (h *NotificationHandler) List(c echo.Context) error {
	onlyUnread := c.QueryParam("unread") == "true" || c.QueryParam("unread") == "1"

	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Notifications.ListByUser(ctx, actor(c).ID, onlyUnread)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list notifications failed"})
	}
	out := make([]notificationResp, 0, len(list))
	for _, n := range list {
		out = append(out, toNotificationResp(n))
	}
	return c.JSON(http.StatusOK, out)
}

// MarkRead marks one of the caller's notifications as read. Another
// user's notification answers 403, matching the ownership rule
// everywhere else.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	n, err := h.Notifications.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotificationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load notification failed"})
	}
	if n.UserID != actor(c).ID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Notifications.MarkRead(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "mark read failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
