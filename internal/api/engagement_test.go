package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/moneyquest/moneyquest/internal/app/engagement"
	"github.com/moneyquest/moneyquest/internal/app/minigame"
	"github.com/moneyquest/moneyquest/internal/domain"
	"github.com/moneyquest/moneyquest/internal/infra/catalog"
	"github.com/moneyquest/moneyquest/internal/infra/sqlite"
)

// ─── Test Setup ─────────────────────────────────────────────────────────────

type testEnv struct {
	handler  http.Handler
	game     *engagement.Game
	sessions *minigame.Manager
	hub      *NotificationHub
	db       *sqlite.DB
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.Open("")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cat := catalog.Default()
	hub := NewNotificationHub(db, nil)
	game := engagement.New(cat, engagement.DefaultConfig(), db, nil, hub)

	cfg := minigame.DefaultConfig()
	cfg.TickInterval = time.Hour
	sessions := minigame.NewManager(cfg, cat, game, nil)
	t.Cleanup(sessions.Shutdown)

	srv := NewServer(game, sessions, nil)
	srv.SetHub(hub)
	srv.SetLedger(db)
	srv.EnableMetrics()
	srv.SetVersion("test")

	return &testEnv{handler: srv.Handler(), game: game, sessions: sessions, hub: hub, db: db}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

// ─── Basic Routes ───────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	env := setupServer(t)
	w := env.do(t, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := decode[map[string]string](t, w); resp["status"] != "ok" {
		t.Errorf("status = %q", resp["status"])
	}
}

func TestVersion(t *testing.T) {
	env := setupServer(t)
	resp := decode[map[string]string](t, env.do(t, http.MethodGet, "/api/version", ""))
	if resp["version"] != "test" {
		t.Errorf("version = %q, want test", resp["version"])
	}
}

func TestCORSPreflight(t *testing.T) {
	env := setupServer(t)
	w := env.do(t, http.MethodOptions, "/api/state", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupServer(t)
	env.do(t, http.MethodPost, "/api/missions/1/complete", "")
	w := env.do(t, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "moneyquest_") {
		t.Error("metrics output has no moneyquest series")
	}
}

// ─── State ──────────────────────────────────────────────────────────────────

func TestState(t *testing.T) {
	env := setupServer(t)
	w := env.do(t, http.MethodGet, "/api/state", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decode[stateResponse](t, w)
	if resp.Balance != 50 {
		t.Errorf("balance = %d, want 50", resp.Balance)
	}
	if len(resp.Missions) == 0 || len(resp.ShopItems) == 0 || len(resp.MiniGames) == 0 || len(resp.Achievements) == 0 {
		t.Errorf("state has empty collections: %+v", resp.Snapshot.Counters)
	}
}

func TestMissionsAndComplete(t *testing.T) {
	env := setupServer(t)
	m := env.game.Missions()[0]

	w := env.do(t, http.MethodPost, "/api/missions/1/complete", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	out := decode[engagement.Outcome](t, w)
	if !out.Applied || out.Delta != m.Reward || out.Balance != 50+m.Reward {
		t.Errorf("outcome = %+v", out)
	}

	again := decode[engagement.Outcome](t, env.do(t, http.MethodPost, "/api/missions/1/complete", ""))
	if again.Applied || again.Reason != engagement.ReasonAlreadyCompleted {
		t.Errorf("second complete = %+v, want already_completed", again)
	}

	resp := decode[map[string]interface{}](t, env.do(t, http.MethodGet, "/api/missions", ""))
	if resp["completed_count"] != float64(1) {
		t.Errorf("completed_count = %v, want 1", resp["completed_count"])
	}
}

func TestIntentUnknownIDIsNoOp(t *testing.T) {
	env := setupServer(t)
	paths := []string{
		"/api/missions/999/complete",
		"/api/shop/999/purchase",
		"/api/games/999/result",
		"/api/missions/0/complete",
	}
	for _, p := range paths {
		w := env.do(t, http.MethodPost, p, "")
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", p, w.Code)
			continue
		}
		out := decode[engagement.Outcome](t, w)
		if out.Applied || out.Reason != engagement.ReasonNotFound || out.Balance != 50 {
			t.Errorf("%s: outcome = %+v, want not_found no-op", p, out)
		}
	}
}

func TestIntentMalformedID(t *testing.T) {
	env := setupServer(t)
	for _, p := range []string{
		"/api/missions/abc/complete",
		"/api/shop/1.5/purchase",
		"/api/games/x/result",
		"/api/games/x/sessions",
	} {
		if w := env.do(t, http.MethodPost, p, ""); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", p, w.Code)
		}
	}
}

func TestShopAffordability(t *testing.T) {
	env := setupServer(t)
	type shopResp struct {
		Balance int64              `json:"balance"`
		Items   []shopItemResponse `json:"items"`
	}
	resp := decode[shopResp](t, env.do(t, http.MethodGet, "/api/shop", ""))
	if resp.Balance != 50 {
		t.Errorf("balance = %d, want 50", resp.Balance)
	}
	for _, it := range resp.Items {
		if it.Affordable != (it.Price <= 50) {
			t.Errorf("item %d price %d affordable = %v", it.ID, it.Price, it.Affordable)
		}
	}
}

func TestPurchase(t *testing.T) {
	env := setupServer(t)
	var cheap, dear domain.ShopItem
	for _, it := range env.game.ShopItems() {
		if it.Price <= 50 && cheap.ID == 0 {
			cheap = it
		}
		if it.Price > 50 && dear.ID == 0 {
			dear = it
		}
	}

	out := decode[engagement.Outcome](t, env.do(t, http.MethodPost, "/api/shop/"+itoa(dear.ID)+"/purchase", ""))
	if out.Applied || out.Reason != engagement.ReasonInsufficientFunds {
		t.Errorf("unaffordable purchase = %+v", out)
	}
	out = decode[engagement.Outcome](t, env.do(t, http.MethodPost, "/api/shop/"+itoa(cheap.ID)+"/purchase", ""))
	if !out.Applied || out.Delta != -cheap.Price {
		t.Errorf("purchase = %+v", out)
	}
}

func TestReportResult(t *testing.T) {
	env := setupServer(t)
	g := env.game.MiniGames()[0]
	path := "/api/games/" + itoa(g.ID) + "/result"

	first := decode[engagement.Outcome](t, env.do(t, http.MethodPost, path, `{"score": 10}`))
	if first.Reason != engagement.ReasonFirstCompletion || first.Delta != g.Reward {
		t.Errorf("first result = %+v", first)
	}
	record := decode[engagement.Outcome](t, env.do(t, http.MethodPost, path, `{"score": 15}`))
	if record.Reason != engagement.ReasonNewRecord || record.Delta != g.Reward*20/100 {
		t.Errorf("record result = %+v", record)
	}
	none := decode[engagement.Outcome](t, env.do(t, http.MethodPost, path, ""))
	if none.Applied {
		t.Errorf("result without score on replay = %+v", none)
	}

	if w := env.do(t, http.MethodPost, path, `{"score": "lots"}`); w.Code != http.StatusBadRequest {
		t.Errorf("bad body: expected 400, got %d", w.Code)
	}
}

func TestAchievements(t *testing.T) {
	env := setupServer(t)
	env.do(t, http.MethodPost, "/api/missions/1/complete", "")

	resp := decode[map[string]interface{}](t, env.do(t, http.MethodGet, "/api/achievements", ""))
	if resp["unlocked_count"].(float64) < 1 {
		t.Errorf("unlocked_count = %v, want at least 1", resp["unlocked_count"])
	}
	list := resp["achievements"].([]interface{})
	if len(list) == 0 {
		t.Fatal("no achievements")
	}
	first := list[0].(map[string]interface{})
	if _, ok := first["progress_pct"]; !ok {
		t.Error("achievement missing progress_pct")
	}
}

func TestLedger(t *testing.T) {
	env := setupServer(t)
	env.do(t, http.MethodPost, "/api/missions/1/complete", "")
	env.do(t, http.MethodPost, "/api/missions/2/complete", "")

	type ledgerResp struct {
		Balance int64                `json:"balance"`
		Entries []domain.LedgerEntry `json:"entries"`
	}
	resp := decode[ledgerResp](t, env.do(t, http.MethodGet, "/api/ledger?limit=1", ""))
	if len(resp.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(resp.Entries))
	}
	if resp.Entries[0].Reference != "mission:2" || resp.Entries[0].Balance != resp.Balance {
		t.Errorf("latest entry = %+v, balance %d", resp.Entries[0], resp.Balance)
	}
	if w := env.do(t, http.MethodGet, "/api/ledger?limit=-3", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad limit: expected 400, got %d", w.Code)
	}
}

func TestSummary(t *testing.T) {
	env := setupServer(t)
	env.do(t, http.MethodPost, "/api/missions/1/complete", "")

	resp := decode[map[string]interface{}](t, env.do(t, http.MethodGet, "/api/summary", ""))
	progress := resp["progress"].(map[string]interface{})
	if progress["completed_missions"] != float64(1) {
		t.Errorf("completed_missions = %v, want 1", progress["completed_missions"])
	}
	notes := resp["notifications"].(map[string]interface{})
	if notes["today_count"].(float64) < 1 {
		t.Errorf("today_count = %v, want at least 1", notes["today_count"])
	}
	if _, ok := resp["sessions"]; !ok {
		t.Error("summary missing sessions")
	}
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
