package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors carry no infrastructure dependency.
// Game intents never fail; these cover the ambient surfaces around them.

var (
	// Catalog errors
	ErrInvalidCatalog = errors.New("invalid content catalog")
	ErrDuplicateID    = errors.New("duplicate id in catalog")

	// Session errors
	ErrUnknownGame     = errors.New("unknown mini-game")
	ErrNoRules         = errors.New("no rules registered for mini-game kind")
	ErrSessionNotFound = errors.New("game session not found")
	ErrSessionLimit    = errors.New("too many open game sessions")
	ErrSessionClosed   = errors.New("game session already closed")
	ErrInvalidMove     = errors.New("invalid move")
	ErrOverBudget      = errors.New("budget overspent")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")
)
