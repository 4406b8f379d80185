package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/moneyquest/moneyquest/internal/domain"
)

// ─── Game API ───────────────────────────────────────────────────────────────
// Read-only snapshots and the three intents. Intents never fail on unknown
// or spent ids: they answer 200 with an Outcome whose applied flag is false.
//
// GET  /api/state                 full snapshot
// GET  /api/summary               progress, session and inbox counters
// GET  /api/missions              missions
// POST /api/missions/{id}/complete
// GET  /api/shop                  items with affordability
// POST /api/shop/{id}/purchase
// GET  /api/games                 mini-games
// POST /api/games/{id}/result     body {"score": n}, optional
// GET  /api/achievements          achievements with progress
// GET  /api/ledger                coin journal

type stateResponse struct {
	Balance int64 `json:"balance"`
	domain.Snapshot
}

// handleState returns the whole game state.
// GET /api/state
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap := s.game.Snapshot()
	writeJSON(w, http.StatusOK, stateResponse{Balance: snap.Counters.Coins, Snapshot: snap})
}

// handleSummary returns a compact progress dashboard.
// GET /api/summary
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary := map[string]interface{}{
		"progress": s.game.Stats(),
		"sessions": s.sessions.Stats(),
	}
	if s.hub != nil {
		if today, err := s.hub.TodayCount(); err == nil {
			summary["notifications"] = map[string]interface{}{
				"today_count": today,
				"clients":     s.hub.ClientCount(),
			}
		}
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleMissions returns all missions.
// GET /api/missions
func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	missions := s.game.Missions()
	done := 0
	for _, m := range missions {
		if m.Completed {
			done++
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"missions":        missions,
		"completed_count": done,
		"total_count":     len(missions),
	})
}

// handleCompleteMission applies the Complete intent.
// POST /api/missions/{id}/complete
func (s *Server) handleCompleteMission(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid mission id")
		return
	}
	writeJSON(w, http.StatusOK, s.game.CompleteMission(id))
}

type shopItemResponse struct {
	domain.ShopItem
	Affordable bool `json:"affordable"`
}

// handleShop returns the shop with per-item affordability.
// GET /api/shop
func (s *Server) handleShop(w http.ResponseWriter, r *http.Request) {
	snap := s.game.Snapshot()
	items := make([]shopItemResponse, 0, len(snap.ShopItems))
	for _, it := range snap.ShopItems {
		items = append(items, shopItemResponse{
			ShopItem:   it,
			Affordable: !it.Purchased && snap.Counters.Coins >= it.Price,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"balance": snap.Counters.Coins,
		"items":   items,
	})
}

// handlePurchase applies the Purchase intent.
// POST /api/shop/{id}/purchase
func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	writeJSON(w, http.StatusOK, s.game.Purchase(id))
}

// handleGames returns all mini-games.
// GET /api/games
func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	games := s.game.MiniGames()
	done := 0
	for _, g := range games {
		if g.Completed {
			done++
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"games":           games,
		"completed_count": done,
		"total_count":     len(games),
	})
}

type scoreRequest struct {
	Score *int `json:"score"`
}

// handleReportResult applies the ReportResult intent.
// POST /api/games/{id}/result
func (s *Server) handleReportResult(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}
	var req scoreRequest
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.game.ReportResult(id, req.Score))
}

type achievementResponse struct {
	domain.Achievement
	ProgressPct float64 `json:"progress_pct"`
}

// handleAchievements returns all achievements with progress.
// GET /api/achievements
func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	list := s.game.Achievements()
	all := make([]achievementResponse, 0, len(list))
	unlocked := 0
	for _, a := range list {
		if a.Unlocked {
			unlocked++
		}
		all = append(all, achievementResponse{Achievement: a, ProgressPct: a.ProgressPct()})
	}
	pct := 0.0
	if len(list) > 0 {
		pct = float64(unlocked) / float64(len(list)) * 100
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements":   all,
		"unlocked_count": unlocked,
		"total_count":    len(list),
		"completion_pct": pct,
	})
}

// handleLedger returns the most recent journal entries, oldest first.
// GET /api/ledger?limit=50
func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r, 50)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	entries, err := s.ledger.ListEntries(limit)
	if err != nil {
		s.log.Error("list ledger entries", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"balance": s.game.Balance(),
		"entries": entries,
	})
}
