// Package minigame runs timed mini-game sessions and reports their final
// score to the game tracker.
//
// Each game kind has a Rules implementation holding the local state of one
// play. A Session wraps Rules with a countdown goroutine and guarantees the
// score is reported at most once, whether the play ends by the clock, by
// the player finishing, or not at all when the session is abandoned.
package minigame

import (
	"fmt"
	"math/rand/v2"

	"github.com/moneyquest/moneyquest/internal/domain"
	"github.com/moneyquest/moneyquest/internal/infra/catalog"
)

// Rules is the local state machine of one play.
type Rules interface {
	Kind() domain.GameKind
	Timed() bool   // whether the session should run a countdown
	TimeLeft() int // seconds on the current clock
	Tick()         // advance the clock by one second
	Finished() bool
	Score() int
}

// NewRules builds the rule set for kind, drawing content from cat and
// randomness from rng.
func NewRules(kind domain.GameKind, cat *catalog.Catalog, rng *rand.Rand) (Rules, error) {
	switch kind {
	case domain.KindCoinCounter:
		return NewCoinCounter(rng), nil
	case domain.KindMemory:
		return NewMemory(cat.MemorySymbols, rng), nil
	case domain.KindQuiz:
		return NewQuiz(cat.Quiz), nil
	case domain.KindChangeCalculator:
		return NewChangeCalculator(cat.ChangeItems, rng), nil
	case domain.KindBudgetPlanner:
		return NewBudgetPlanner(cat.Budget), nil
	}
	return nil, fmt.Errorf("kind %q: %w", kind, domain.ErrNoRules)
}

// clock is the countdown shared by the timed games.
type clock struct {
	left int
}

func (c *clock) TimeLeft() int { return c.left }

// tick decrements the clock and reports whether it just hit zero.
func (c *clock) tick() bool {
	if c.left <= 0 {
		return false
	}
	c.left--
	return c.left == 0
}

// between returns a uniform int in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
