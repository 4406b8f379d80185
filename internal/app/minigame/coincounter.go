package minigame

import (
	"math/rand/v2"

	"github.com/moneyquest/moneyquest/internal/domain"
)

const (
	coinCounterSeconds = 30
	coinCounterRounds  = 5
	coinCounterPoints  = 10
)

// CoinCounter shows a pile of coins each round; the player types how many.
type CoinCounter struct {
	clock
	rng      *rand.Rand
	round    int
	coins    int
	score    int
	finished bool
}

// NewCoinCounter starts at round 1 with a full clock.
func NewCoinCounter(rng *rand.Rand) *CoinCounter {
	c := &CoinCounter{clock: clock{left: coinCounterSeconds}, rng: rng, round: 1}
	c.coins = c.draw()
	return c
}

// draw picks the pile for the current round: between 2r and 5r+10 coins.
func (c *CoinCounter) draw() int {
	return between(c.rng, 2*c.round, 5*c.round+10)
}

func (c *CoinCounter) Kind() domain.GameKind { return domain.KindCoinCounter }
func (c *CoinCounter) Timed() bool           { return true }
func (c *CoinCounter) Finished() bool        { return c.finished }
func (c *CoinCounter) Score() int            { return c.score }

// Round returns the current round, starting at 1.
func (c *CoinCounter) Round() int { return c.round }

// Coins returns the size of the current pile.
func (c *CoinCounter) Coins() int { return c.coins }

// Answer checks a count against the pile and moves to the next round.
func (c *CoinCounter) Answer(count int) (bool, error) {
	if c.finished {
		return false, domain.ErrInvalidMove
	}
	correct := count == c.coins
	if correct {
		c.score += coinCounterPoints
	}
	if c.round < coinCounterRounds {
		c.round++
		c.coins = c.draw()
	} else {
		c.finished = true
	}
	return correct, nil
}

func (c *CoinCounter) Tick() {
	if c.finished {
		return
	}
	if c.tick() {
		c.finished = true
	}
}
