package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/moneyquest/moneyquest/internal/domain"
)

// ─── Notifications ──────────────────────────────────────────────────────────
// The hub is the presentation-side notification sink. Each notification is
// stored in the inbox (which assigns its id) and then pushed to every live
// SSE client.
//
// GET  /api/notifications            pending notifications
// POST /api/notifications/{id}/shown mark notification shown
// GET  /api/notifications/live       SSE feed

// NotificationStore is the notification inbox.
type NotificationStore interface {
	InsertNotification(n domain.Notification) (int64, error)
	PendingNotifications(limit int) ([]domain.Notification, error)
	MarkNotificationShown(id int64) error
	NotificationCountSince(since time.Time) (int, error)
}

// NotificationHub stores notifications and fans them out to live clients.
type NotificationHub struct {
	mu      sync.RWMutex
	clients map[chan []byte]struct{}
	store   NotificationStore
	log     *zap.Logger
	now     func() time.Time
}

// NewNotificationHub creates a hub backed by store.
func NewNotificationHub(store NotificationStore, log *zap.Logger) *NotificationHub {
	if log == nil {
		log = zap.NewNop()
	}
	return &NotificationHub{
		clients: make(map[chan []byte]struct{}),
		store:   store,
		log:     log.Named("notifications"),
		now:     time.Now,
	}
}

// Notify implements domain.NotificationSink.
func (h *NotificationHub) Notify(n domain.Notification) {
	id, err := h.store.InsertNotification(n)
	if err != nil {
		h.log.Warn("store notification", zap.String("kind", string(n.Kind)), zap.Error(err))
	} else {
		n.ID = id
	}
	h.Broadcast(n)
}

// Broadcast sends a notification to all connected clients.
func (h *NotificationHub) Broadcast(n domain.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.clients {
		select {
		case ch <- data:
		default:
			// Client too slow, drop the message
		}
	}
}

// Subscribe registers a new client. Returns the channel and an unsubscribe func.
func (h *NotificationHub) Subscribe() (chan []byte, func()) {
	ch := make(chan []byte, 32)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.clients, ch)
		h.mu.Unlock()
		close(ch)
	}
}

// ClientCount returns the number of connected clients.
func (h *NotificationHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// TodayCount returns how many notifications were emitted since local midnight.
func (h *NotificationHub) TodayCount() (int, error) {
	now := h.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return h.store.NotificationCountSince(midnight)
}

// HandleNotifications returns pending notifications.
// GET /api/notifications?limit=20
func (h *NotificationHub) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r, 20)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	pending, err := h.store.PendingNotifications(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if pending == nil {
		pending = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": pending,
	})
}

// HandleNotificationShown marks a notification as shown.
// POST /api/notifications/{id}/shown
func (h *NotificationHub) HandleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := h.store.MarkNotificationShown(int64(id)); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}

// HandleNotificationsSSE serves the live feed via Server-Sent Events.
// GET /api/notifications/live
func (h *NotificationHub) HandleNotificationsSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch, unsub := h.Subscribe()
	defer unsub()

	for {
		select {
		case <-r.Context().Done():
			return
		case data := <-ch:
			w.Write([]byte("data: "))
			w.Write(data)
			w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}
