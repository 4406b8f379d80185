package minigame

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moneyquest/moneyquest/internal/app/engagement"
	"github.com/moneyquest/moneyquest/internal/domain"
)

// State is the lifecycle of a session.
type State string

const (
	StatePlaying   State = "playing"
	StateFinished  State = "finished"
	StateAbandoned State = "abandoned"
)

// EndReason records how a session left StatePlaying.
type EndReason string

const (
	EndFinished  EndReason = "finished"  // the player completed the play
	EndExpired   EndReason = "expired"   // the clock ran out
	EndAbandoned EndReason = "abandoned" // closed before it ended; nothing reported
)

// Session is one timed play of a mini-game. Its score is reported to the
// tracker exactly once, on the first of: the rules finishing during a move,
// the clock finishing the rules, or an explicit Finish. Close before any of
// those reports nothing.
type Session struct {
	ID        string
	Game      domain.MiniGame
	StartedAt time.Time

	mu      sync.Mutex
	rules   Rules
	state   State
	score   *int
	outcome *engagement.Outcome
	report  func(score *int) engagement.Outcome
	onEnd   func(s *Session, reason EndReason) // called with s.mu held

	cancel context.CancelFunc
	done   chan struct{} // closed when the timer goroutine exits
}

func newSession(game domain.MiniGame, rules Rules, report func(*int) engagement.Outcome) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Game:      game,
		StartedAt: time.Now(),
		rules:     rules,
		state:     StatePlaying,
		report:    report,
	}
}

// start runs the countdown for timed rules. wg tracks the timer goroutine.
func (s *Session) start(ctx context.Context, interval time.Duration, wg *sync.WaitGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.rules.Timed() || s.state != StatePlaying {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	wg.Add(1)
	go func(done chan struct{}) {
		defer wg.Done()
		defer close(done)
		s.run(ctx, interval)
	}(s.done)
}

func (s *Session) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.Tick() {
				return
			}
		}
	}
}

// Tick advances the clock by one second and reports whether the session is
// still playing afterwards. A tick that finishes the rules ends the session.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return false
	}
	s.rules.Tick()
	if s.rules.Finished() {
		score := s.rules.Score()
		s.endLocked(EndExpired, &score)
		return false
	}
	return true
}

// Play applies a move to the rules. fn runs under the session lock and must
// not retain r. If the move finishes the rules, the score is reported.
func (s *Session) Play(fn func(r Rules) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return domain.ErrSessionClosed
	}
	err := fn(s.rules)
	if s.state == StatePlaying && s.rules.Finished() {
		score := s.rules.Score()
		s.endLocked(EndFinished, &score)
	}
	return err
}

// Move applies a wire-form move. See Apply.
func (s *Session) Move(m Move) (MoveResult, error) {
	var res MoveResult
	err := s.Play(func(r Rules) error {
		var err error
		res, err = Apply(r, m)
		return err
	})
	return res, err
}

// Finish ends the play and reports score, or the rules' own score when
// score is nil.
func (s *Session) Finish(score *int) (engagement.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return engagement.Outcome{}, domain.ErrSessionClosed
	}
	if score == nil {
		v := s.rules.Score()
		score = &v
	}
	s.endLocked(EndFinished, score)
	return *s.outcome, nil
}

// Close abandons a session that is still playing and stops its timer.
// It waits for the timer goroutine, so no tick runs after Close returns.
func (s *Session) Close() {
	s.mu.Lock()
	if s.state == StatePlaying {
		s.state = StateAbandoned
		if s.onEnd != nil {
			s.onEnd(s, EndAbandoned)
		}
	}
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// endLocked reports once and stops the timer. Must hold s.mu. It does not
// wait for the timer goroutine, which may be the caller.
func (s *Session) endLocked(reason EndReason, score *int) {
	s.state = StateFinished
	s.score = score
	if s.cancel != nil {
		s.cancel()
	}
	out := s.report(score)
	s.outcome = &out
	if s.onEnd != nil {
		s.onEnd(s, reason)
	}
}

// View is a point-in-time description of a session.
type View struct {
	ID        string              `json:"id"`
	GameID    int                 `json:"game_id"`
	Kind      domain.GameKind     `json:"kind"`
	State     State               `json:"state"`
	TimeLeft  int                 `json:"time_left"`
	Score     int                 `json:"score"`
	StartedAt time.Time           `json:"started_at"`
	Board     any                 `json:"board,omitempty"`
	Outcome   *engagement.Outcome `json:"outcome,omitempty"`
}

// View returns the current state of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		ID:        s.ID,
		GameID:    s.Game.ID,
		Kind:      s.rules.Kind(),
		State:     s.state,
		TimeLeft:  s.rules.TimeLeft(),
		Score:     s.rules.Score(),
		StartedAt: s.StartedAt,
		Outcome:   s.outcome,
	}
	if s.state == StatePlaying {
		v.Board = Board(s.rules)
	}
	if s.score != nil {
		v.Score = *s.score
	}
	return v
}
