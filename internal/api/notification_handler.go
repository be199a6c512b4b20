package api

import (
	"net/http"

	"libraryapi/internal/httpx"
	"libraryapi/internal/notification"
)

type NotificationHandler struct {
	notify *notification.Service
}

func NewNotificationHandler(notify *notification.Service) *NotificationHandler {
	return &NotificationHandler{notify: notify}
}

type notificationActionRequest struct {
	Action string `json:"action" validate:"required,oneof=mark_read clear"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.notify.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	unread, err := h.notify.UnreadCount(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, list, map[string]interface{}{"unread": unread})
}

// Actions handles POST /notifications/actions with mark_read or clear.
func (h *NotificationHandler) Actions(w http.ResponseWriter, r *http.Request) {
	var req notificationActionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var err error
	switch req.Action {
	case "mark_read":
		err = h.notify.MarkAllRead(r.Context())
	case "clear":
		err = h.notify.Clear(r.Context())
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
