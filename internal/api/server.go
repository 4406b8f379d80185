// Package api provides the local HTTP bridge between the game core and a
// presentation layer. Intents go in as POSTs, state comes out as JSON
// snapshots, and notifications are served as an inbox and a live SSE feed.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/moneyquest/moneyquest/internal/app/engagement"
	"github.com/moneyquest/moneyquest/internal/app/minigame"
	"github.com/moneyquest/moneyquest/internal/domain"
)

// LedgerReader lists journaled coin movements.
type LedgerReader interface {
	ListEntries(limit int) ([]domain.LedgerEntry, error)
}

// Server is the moneyquest HTTP API server.
type Server struct {
	game           *engagement.Game
	sessions       *minigame.Manager
	hub            *NotificationHub // nil disables the notification routes
	ledger         LedgerReader     // nil disables /api/ledger
	metricsEnabled bool
	version        string
	log            *zap.Logger
}

// NewServer creates a new API server.
func NewServer(game *engagement.Game, sessions *minigame.Manager, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{game: game, sessions: sessions, version: "dev", log: log.Named("api")}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHub sets the notification inbox and live feed.
func (s *Server) SetHub(h *NotificationHub) { s.hub = h }

// SetLedger sets the coin journal reader.
func (s *Server) SetLedger(l LedgerReader) { s.ledger = l }

// SetVersion sets the version reported by /api/version.
func (s *Server) SetVersion(v string) { s.version = v }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Route("/api", func(r chi.Router) {
		// The live feed is long-lived and stays outside the request timeout.
		if s.hub != nil {
			r.Get("/notifications/live", s.hub.HandleNotificationsSSE)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]string{
					"version": s.version,
				})
			})

			// Game state and intents
			r.Get("/state", s.handleState)
			r.Get("/summary", s.handleSummary)

			r.Get("/missions", s.handleMissions)
			r.Post("/missions/{id}/complete", s.handleCompleteMission)

			r.Get("/shop", s.handleShop)
			r.Post("/shop/{id}/purchase", s.handlePurchase)

			r.Get("/games", s.handleGames)
			r.Post("/games/{id}/result", s.handleReportResult)
			r.Post("/games/{id}/sessions", s.handleOpenSession)

			r.Get("/sessions/{sid}", s.handleGetSession)
			r.Post("/sessions/{sid}/move", s.handleMove)
			r.Post("/sessions/{sid}/finish", s.handleFinishSession)
			r.Delete("/sessions/{sid}", s.handleCloseSession)

			r.Get("/achievements", s.handleAchievements)

			if s.hub != nil {
				r.Get("/notifications", s.hub.HandleNotifications)
				r.Post("/notifications/{id}/shown", s.hub.HandleNotificationShown)
			}
			if s.ledger != nil {
				r.Get("/ledger", s.handleLedger)
			}
		})
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for a local UI.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ─── Request helpers ────────────────────────────────────────────────────────

// intParam parses an integer path parameter.
func intParam(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, false
	}
	return v, true
}

// limitParam reads ?limit=, falling back to def.
func limitParam(r *http.Request, def int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// decodeOptional decodes a JSON body into v. An empty body leaves v untouched.
func decodeOptional(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
