package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moneyquest/moneyquest/internal/app/minigame"
	"github.com/moneyquest/moneyquest/internal/domain"
)

// ─── Session API ────────────────────────────────────────────────────────────
// Timed plays run server-side so the clock and the single score report live
// in one place.
//
// POST   /api/games/{id}/sessions  open a session
// GET    /api/sessions/{sid}       session view with the current board
// POST   /api/sessions/{sid}/move  body minigame.Move
// POST   /api/sessions/{sid}/finish body {"score": n}, optional
// DELETE /api/sessions/{sid}       abandon

// handleOpenSession opens a session for a mini-game.
// POST /api/games/{id}/sessions
func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}
	sess, err := s.sessions.Open(id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess.View())
}

// handleGetSession returns a session that is still playing.
// GET /api/sessions/{sid}
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sid"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

// handleMove applies one move to a session.
// POST /api/sessions/{sid}/move
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sid"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	var mv minigame.Move
	if err := decodeOptional(r, &mv); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	res, err := sess.Move(mv)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"result":  res,
		"session": sess.View(),
	})
}

// handleFinishSession ends a session and reports its score.
// POST /api/sessions/{sid}/finish
func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sid"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	var req scoreRequest
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	out, err := sess.Finish(req.Score)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"outcome": out,
		"session": sess.View(),
	})
}

// handleCloseSession abandons a session without reporting.
// DELETE /api/sessions/{sid}
func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Close(chi.URLParam(r, "sid")); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "abandoned",
	})
}

// writeSessionError maps session errors to HTTP statuses.
func writeSessionError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnknownGame), errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSessionLimit):
		status = http.StatusTooManyRequests
	case errors.Is(err, domain.ErrSessionClosed):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidMove), errors.Is(err, domain.ErrOverBudget):
		status = http.StatusBadRequest
	}
	writeError(w, status, err.Error())
}
