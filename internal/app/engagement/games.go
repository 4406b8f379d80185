package engagement

import (
	"fmt"

	"github.com/moneyquest/moneyquest/internal/domain"
)

// DefaultBonusPercent is the share of a game's reward paid for a new record.
const DefaultBonusPercent = 20

// GameTracker owns the mini-game records. The first reported result pays
// the full reward; later results pay a bonus only when they beat the best score.
type GameTracker struct {
	games        []domain.MiniGame
	index        map[int]int
	ledger       *Ledger
	bonusPercent int64
	completed    int64
}

// NewGameTracker copies seed and wires the tracker to ledger.
// A negative bonusPercent is treated as zero.
func NewGameTracker(seed []domain.MiniGame, ledger *Ledger, bonusPercent int) *GameTracker {
	if bonusPercent < 0 {
		bonusPercent = 0
	}
	t := &GameTracker{
		games:        make([]domain.MiniGame, len(seed)),
		index:        make(map[int]int, len(seed)),
		ledger:       ledger,
		bonusPercent: int64(bonusPercent),
	}
	copy(t.games, seed)
	for i, g := range t.games {
		t.index[g.ID] = i
		if g.Completed {
			t.completed++
		}
	}
	return t
}

// ReportResult records the end of a play of game id. A nil or negative score
// means the play produced no score.
func (t *GameTracker) ReportResult(id int, score *int) (Outcome, *domain.Notification) {
	i, ok := t.index[id]
	if !ok {
		return noop(ReasonNotFound, t.ledger.Balance()), nil
	}
	if score != nil && *score < 0 {
		score = nil
	}
	g := t.games[i]
	ref := fmt.Sprintf("game:%d", g.ID)

	if !g.Completed {
		g.Completed = true
		if score != nil {
			best := max(g.Best(), *score)
			g.BestScore = &best
		}
		t.games[i] = g
		t.ledger.Credit(g.Reward, domain.TxGame, ref)
		t.completed++

		n := gameCompleted(g)
		return Outcome{Applied: true, Reason: ReasonFirstCompletion, Delta: g.Reward, Balance: t.ledger.Balance()}, &n
	}

	if score == nil || *score <= g.Best() {
		return noop(ReasonNoNewRecord, t.ledger.Balance()), nil
	}

	// A fresh pointer: snapshots already handed out keep the old best.
	best := *score
	g.BestScore = &best
	t.games[i] = g
	bonus := t.Bonus(g.Reward)
	t.ledger.Credit(bonus, domain.TxBonus, ref)

	n := gameNewRecord(g, best, bonus)
	return Outcome{Applied: true, Reason: ReasonNewRecord, Delta: bonus, Balance: t.ledger.Balance()}, &n
}

// Bonus returns the replay bonus for a game paying reward, rounded down.
func (t *GameTracker) Bonus(reward int64) int64 {
	return reward * t.bonusPercent / 100
}

// CompletedCount returns how many games have been completed at least once.
func (t *GameTracker) CompletedCount() int64 { return t.completed }

// Get returns the game with the given id.
func (t *GameTracker) Get(id int) (domain.MiniGame, bool) {
	i, ok := t.index[id]
	if !ok {
		return domain.MiniGame{}, false
	}
	return t.games[i], true
}

// List returns a copy of all games in seed order.
func (t *GameTracker) List() []domain.MiniGame {
	out := make([]domain.MiniGame, len(t.games))
	copy(out, t.games)
	return out
}
