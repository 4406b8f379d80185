package api

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/moneyquest/moneyquest/internal/domain"
	"github.com/moneyquest/moneyquest/internal/infra/sqlite"
)

func newTestHub(t *testing.T) *NotificationHub {
	t.Helper()
	db, err := sqlite.Open("")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewNotificationHub(db, nil)
}

// ─── Hub ────────────────────────────────────────────────────────────────────

func TestNotificationHub_NotifyAndSubscribe(t *testing.T) {
	hub := newTestHub(t)

	ch, unsub := hub.Subscribe()
	defer unsub()

	if hub.ClientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.ClientCount())
	}

	hub.Notify(domain.Notification{
		Kind:  domain.NotifyMissionCompleted,
		Title: "🎉 Missão concluída! +25 moedas",
		Text:  "Missão da Mesada",
		Delta: 25,
	})

	select {
	case data := <-ch:
		var n domain.Notification
		if err := json.Unmarshal(data, &n); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if n.ID == 0 {
			t.Error("notification was not assigned an id")
		}
		if n.Delta != 25 {
			t.Errorf("delta = %d, want 25", n.Delta)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for notification")
	}
}

func TestNotificationHub_MultipleClients(t *testing.T) {
	hub := newTestHub(t)

	ch1, unsub1 := hub.Subscribe()
	defer unsub1()
	ch2, unsub2 := hub.Subscribe()
	defer unsub2()

	hub.Broadcast(domain.Notification{ID: 7, Kind: domain.NotifyPurchaseMade})

	for i, ch := range []chan []byte{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("client %d: timeout", i+1)
		}
	}
}

func TestNotificationHub_Unsubscribe(t *testing.T) {
	hub := newTestHub(t)

	_, unsub := hub.Subscribe()
	if hub.ClientCount() != 1 {
		t.Fatal("expected 1 client")
	}
	unsub()
	if hub.ClientCount() != 0 {
		t.Fatal("expected 0 clients after unsubscribe")
	}
}

func TestNotificationHub_TodayCount(t *testing.T) {
	hub := newTestHub(t)
	hub.Notify(domain.Notification{Kind: domain.NotifyGameCompleted, CreatedAt: time.Now()})
	hub.Notify(domain.Notification{Kind: domain.NotifyGameCompleted, CreatedAt: time.Now()})

	n, err := hub.TodayCount()
	if err != nil {
		t.Fatalf("today count: %v", err)
	}
	if n != 2 {
		t.Errorf("today count = %d, want 2", n)
	}
}

// ─── Inbox routes ───────────────────────────────────────────────────────────

func TestNotificationsInbox(t *testing.T) {
	env := setupServer(t)
	env.do(t, http.MethodPost, "/api/missions/1/complete", "")

	type inbox struct {
		Notifications []domain.Notification `json:"notifications"`
	}
	resp := decode[inbox](t, env.do(t, http.MethodGet, "/api/notifications", ""))
	// Mission completed plus the "Primeiro Passo" unlock.
	if len(resp.Notifications) != 2 {
		t.Fatalf("pending = %d, want 2", len(resp.Notifications))
	}
	first := resp.Notifications[0]
	if first.Kind != domain.NotifyMissionCompleted {
		t.Errorf("first kind = %s, want mission-completed", first.Kind)
	}

	path := "/api/notifications/" + itoa(int(first.ID)) + "/shown"
	if w := env.do(t, http.MethodPost, path, ""); w.Code != http.StatusOK {
		t.Fatalf("mark shown: expected 200, got %d", w.Code)
	}
	resp = decode[inbox](t, env.do(t, http.MethodGet, "/api/notifications", ""))
	if len(resp.Notifications) != 1 {
		t.Errorf("pending after shown = %d, want 1", len(resp.Notifications))
	}

	if w := env.do(t, http.MethodPost, "/api/notifications/9999/shown", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown id: expected 404, got %d", w.Code)
	}
	if w := env.do(t, http.MethodPost, "/api/notifications/x/shown", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", w.Code)
	}
}

func TestNotificationsEmptyInbox(t *testing.T) {
	env := setupServer(t)
	w := env.do(t, http.MethodGet, "/api/notifications", "")
	if !strings.Contains(w.Body.String(), `"notifications":[]`) {
		t.Errorf("empty inbox body = %s", w.Body.String())
	}
}

// ─── SSE ────────────────────────────────────────────────────────────────────

func TestNotificationHub_SSE_Endpoint(t *testing.T) {
	env := setupServer(t)
	ts := httptest.NewServer(env.handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/notifications/live")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type = %q", ct)
	}

	deadline := time.Now().Add(time.Second)
	for env.hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("SSE client never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	env.do(t, http.MethodPost, "/api/missions/1/complete", "")

	lines := make(chan string, 1)
	go func() {
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			if strings.HasPrefix(sc.Text(), "data: ") {
				lines <- sc.Text()
				return
			}
		}
	}()

	select {
	case line := <-lines:
		if !strings.Contains(line, `"kind":"mission-completed"`) {
			t.Errorf("event = %s", line)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for SSE event")
	}
}
