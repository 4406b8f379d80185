package api

import (
	"net/http"
	"testing"

	"github.com/moneyquest/moneyquest/internal/app/engagement"
	"github.com/moneyquest/moneyquest/internal/app/minigame"
	"github.com/moneyquest/moneyquest/internal/domain"
)

func gameOfKind(t *testing.T, env *testEnv, kind domain.GameKind) domain.MiniGame {
	t.Helper()
	for _, g := range env.game.MiniGames() {
		if g.Kind == kind {
			return g
		}
	}
	t.Fatalf("no game of kind %s", kind)
	return domain.MiniGame{}
}

func TestSessionLifecycle(t *testing.T) {
	env := setupServer(t)
	g := gameOfKind(t, env, domain.KindBudgetPlanner)

	w := env.do(t, http.MethodPost, "/api/games/"+itoa(g.ID)+"/sessions", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("open: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	view := decode[minigame.View](t, w)
	if view.State != minigame.StatePlaying || view.Board == nil {
		t.Fatalf("opened view = %+v", view)
	}

	moves := []string{
		`{"action":"allocate","line":1,"value":25}`,
		`{"action":"allocate","line":2,"value":20}`,
		`{"action":"allocate","line":3,"value":30}`,
		`{"action":"allocate","line":4,"value":15}`,
		`{"action":"allocate","line":5,"value":10}`,
	}
	for _, mv := range moves {
		if w := env.do(t, http.MethodPost, "/api/sessions/"+view.ID+"/move", mv); w.Code != http.StatusOK {
			t.Fatalf("move %s: expected 200, got %d: %s", mv, w.Code, w.Body.String())
		}
	}

	// Submit ends the play and reports the plan's score.
	w = env.do(t, http.MethodPost, "/api/sessions/"+view.ID+"/move", `{"action":"submit"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	mg, _ := env.game.MiniGame(g.ID)
	if !mg.Completed || mg.Best() != 125 {
		t.Errorf("game after submit = %+v", mg)
	}

	if w := env.do(t, http.MethodPost, "/api/sessions/"+view.ID+"/finish", ""); w.Code != http.StatusNotFound {
		t.Errorf("finish after end: expected 404, got %d", w.Code)
	}
}

func TestSessionFinishWithScore(t *testing.T) {
	env := setupServer(t)
	g := gameOfKind(t, env, domain.KindQuiz)

	view := decode[minigame.View](t, env.do(t, http.MethodPost, "/api/games/"+itoa(g.ID)+"/sessions", ""))
	w := env.do(t, http.MethodPost, "/api/sessions/"+view.ID+"/finish", `{"score": 60}`)
	if w.Code != http.StatusOK {
		t.Fatalf("finish: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[struct {
		Outcome engagement.Outcome `json:"outcome"`
		Session minigame.View      `json:"session"`
	}](t, w)
	if !resp.Outcome.Applied || resp.Outcome.Delta != g.Reward {
		t.Errorf("outcome = %+v", resp.Outcome)
	}
	if resp.Session.State != minigame.StateFinished || resp.Session.Score != 60 {
		t.Errorf("session = %+v", resp.Session)
	}
}

func TestSessionAbandon(t *testing.T) {
	env := setupServer(t)
	g := gameOfKind(t, env, domain.KindMemory)

	view := decode[minigame.View](t, env.do(t, http.MethodPost, "/api/games/"+itoa(g.ID)+"/sessions", ""))
	if w := env.do(t, http.MethodDelete, "/api/sessions/"+view.ID, ""); w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/api/sessions/"+view.ID, ""); w.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", w.Code)
	}
	if mg, _ := env.game.MiniGame(g.ID); mg.Completed {
		t.Error("abandoned session reported a result")
	}
}

func TestSessionErrors(t *testing.T) {
	env := setupServer(t)
	g := gameOfKind(t, env, domain.KindCoinCounter)
	view := decode[minigame.View](t, env.do(t, http.MethodPost, "/api/games/"+itoa(g.ID)+"/sessions", ""))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown game", http.MethodPost, "/api/games/999/sessions", "", http.StatusNotFound},
		{"unknown session", http.MethodGet, "/api/sessions/nope", "", http.StatusNotFound},
		{"wrong action", http.MethodPost, "/api/sessions/" + view.ID + "/move", `{"action":"flip"}`, http.StatusBadRequest},
		{"bad body", http.MethodPost, "/api/sessions/" + view.ID + "/move", `{`, http.StatusBadRequest},
		{"delete unknown", http.MethodDelete, "/api/sessions/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := env.do(t, tt.method, tt.path, tt.body); w.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestSessionLimit(t *testing.T) {
	env := setupServer(t)
	g := gameOfKind(t, env, domain.KindQuiz)
	path := "/api/games/" + itoa(g.ID) + "/sessions"
	for i := 0; i < minigame.DefaultConfig().MaxSessions; i++ {
		if w := env.do(t, http.MethodPost, path, ""); w.Code != http.StatusCreated {
			t.Fatalf("open #%d: expected 201, got %d", i, w.Code)
		}
	}
	if w := env.do(t, http.MethodPost, path, ""); w.Code != http.StatusTooManyRequests {
		t.Errorf("over limit: expected 429, got %d", w.Code)
	}
}
