package minigame

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/moneyquest/moneyquest/internal/app/engagement"
	"github.com/moneyquest/moneyquest/internal/domain"
	"github.com/moneyquest/moneyquest/internal/infra/catalog"
	"github.com/moneyquest/moneyquest/internal/infra/observability"
)

// Tracker is the side of the game a session reports into.
type Tracker interface {
	MiniGame(id int) (domain.MiniGame, bool)
	ReportResult(id int, score *int) engagement.Outcome
}

// Config controls session behavior.
type Config struct {
	TickInterval time.Duration // Length of one game second (default: 1s)
	MaxSessions  int           // Maximum concurrently open sessions (default: 8)
}

// DefaultConfig returns real-time defaults.
func DefaultConfig() Config {
	return Config{
		TickInterval: time.Second,
		MaxSessions:  8,
	}
}

// Manager opens sessions and keeps the ones still playing.
type Manager struct {
	mu       sync.RWMutex
	config   Config
	catalog  *catalog.Catalog
	tracker  Tracker
	log      *zap.Logger
	newRand  func() *rand.Rand
	sessions map[string]*Session

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup // timer goroutines

	opened    int64
	finished  int64
	expired   int64
	abandoned int64
}

// NewManager creates a session manager. Sessions report into tracker.
func NewManager(cfg Config, cat *catalog.Catalog, tracker Tracker, log *zap.Logger) *Manager {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultConfig().TickInterval
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultConfig().MaxSessions
	}
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		config:   cfg,
		catalog:  cat,
		tracker:  tracker,
		log:      log.Named("minigame"),
		newRand:  func() *rand.Rand { return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) },
		sessions: make(map[string]*Session),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SetRandSource replaces the per-session random source.
func (m *Manager) SetRandSource(f func() *rand.Rand) {
	m.mu.Lock()
	m.newRand = f
	m.mu.Unlock()
}

// Open starts a session for gameID. Timed games begin counting down at once.
func (m *Manager) Open(gameID int) (*Session, error) {
	if m.ctx.Err() != nil {
		return nil, fmt.Errorf("open session: %w", domain.ErrSessionClosed)
	}
	game, ok := m.tracker.MiniGame(gameID)
	if !ok {
		return nil, fmt.Errorf("game %d: %w", gameID, domain.ErrUnknownGame)
	}

	m.mu.Lock()
	// Shutdown cancels before it collects sessions under m.mu, so a session
	// registered after this check is always seen and closed by it.
	if m.ctx.Err() != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("open session: %w", domain.ErrSessionClosed)
	}
	if len(m.sessions) >= m.config.MaxSessions {
		m.mu.Unlock()
		return nil, fmt.Errorf("%d open: %w", m.config.MaxSessions, domain.ErrSessionLimit)
	}
	rules, err := NewRules(game.Kind, m.catalog, m.newRand())
	if err != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("game %d: %w", gameID, err)
	}
	s := newSession(game, rules, func(score *int) engagement.Outcome {
		return m.tracker.ReportResult(gameID, score)
	})
	s.onEnd = m.ended
	m.sessions[s.ID] = s
	m.opened++
	m.mu.Unlock()

	observability.ActiveSessions.Inc()
	s.start(m.ctx, m.config.TickInterval, &m.wg)

	m.log.Info("session opened",
		zap.String("session", s.ID),
		zap.Int("game", gameID),
		zap.String("kind", string(game.Kind)))
	return s, nil
}

// ended drops a session that left StatePlaying. Called with s.mu held, so it
// must not call back into s.
func (m *Manager) ended(s *Session, reason EndReason) {
	m.mu.Lock()
	delete(m.sessions, s.ID)
	switch reason {
	case EndFinished:
		m.finished++
	case EndExpired:
		m.expired++
	case EndAbandoned:
		m.abandoned++
	}
	m.mu.Unlock()

	observability.ActiveSessions.Dec()
	observability.SessionsEnded.WithLabelValues(string(reason)).Inc()
	fields := []zap.Field{
		zap.String("session", s.ID),
		zap.Int("game", s.Game.ID),
		zap.String("reason", string(reason)),
	}
	if s.score != nil {
		observability.SessionScore.WithLabelValues(string(s.Game.Kind)).Observe(float64(*s.score))
		fields = append(fields, zap.Int("score", *s.score))
	}
	m.log.Info("session ended", fields...)
}

// Get returns a session that is still playing.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	return s, nil
}

// Finish ends session id and reports score (nil means the rules' score).
func (m *Manager) Finish(id string, score *int) (engagement.Outcome, error) {
	s, err := m.Get(id)
	if err != nil {
		return engagement.Outcome{}, err
	}
	return s.Finish(score)
}

// Close abandons session id.
func (m *Manager) Close(id string) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}
	s.Close()
	return nil
}

// Shutdown abandons every open session and waits for all timers to stop.
func (m *Manager) Shutdown() {
	m.cancel()

	m.mu.RLock()
	open := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		open = append(open, s)
	}
	m.mu.RUnlock()

	for _, s := range open {
		s.Close()
	}
	m.wg.Wait()
}

// Stats holds session counters.
type Stats struct {
	Open      int   `json:"open"`
	Opened    int64 `json:"opened"`
	Finished  int64 `json:"finished"`
	Expired   int64 `json:"expired"`
	Abandoned int64 `json:"abandoned"`
	MaxSlots  int   `json:"max_slots"`
}

// Stats returns current session statistics.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		Open:      len(m.sessions),
		Opened:    m.opened,
		Finished:  m.finished,
		Expired:   m.expired,
		Abandoned: m.abandoned,
		MaxSlots:  m.config.MaxSessions,
	}
}
