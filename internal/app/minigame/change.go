package minigame

import (
	"math/rand/v2"

	"github.com/moneyquest/moneyquest/internal/domain"
	"github.com/moneyquest/moneyquest/internal/infra/catalog"
)

const (
	changeSeconds    = 45
	changeRounds     = 5
	changePoints     = 15
	changeMaxOverpay = 20
)

// Sale is one round of the change calculator.
type Sale struct {
	Item    string `json:"item"`
	Price   int    `json:"price"`
	Payment int    `json:"payment"`
}

// Change returns the correct change for the sale.
func (s Sale) Change() int { return s.Payment - s.Price }

// ChangeCalculator asks for the change of a random sale each round.
type ChangeCalculator struct {
	clock
	rng      *rand.Rand
	items    []catalog.PricedItem
	round    int
	sale     Sale
	score    int
	finished bool
}

// NewChangeCalculator starts at round 1 with a full clock.
func NewChangeCalculator(items []catalog.PricedItem, rng *rand.Rand) *ChangeCalculator {
	c := &ChangeCalculator{clock: clock{left: changeSeconds}, rng: rng, items: items, round: 1}
	if len(items) == 0 {
		c.finished = true
		return c
	}
	c.sale = c.draw()
	return c
}

// draw prices a random item and pays 1 to 20 coins over the price.
func (c *ChangeCalculator) draw() Sale {
	it := c.items[c.rng.IntN(len(c.items))]
	price := between(c.rng, it.MinPrice, it.MaxPrice)
	return Sale{Item: it.Name, Price: price, Payment: price + between(c.rng, 1, changeMaxOverpay)}
}

func (c *ChangeCalculator) Kind() domain.GameKind { return domain.KindChangeCalculator }
func (c *ChangeCalculator) Timed() bool           { return true }
func (c *ChangeCalculator) Finished() bool        { return c.finished }
func (c *ChangeCalculator) Score() int            { return c.score }

// Round returns the current round, starting at 1.
func (c *ChangeCalculator) Round() int { return c.round }

// Sale returns the current sale.
func (c *ChangeCalculator) Sale() Sale { return c.sale }

// Answer checks the change given for the current sale and moves on.
func (c *ChangeCalculator) Answer(change int) (bool, error) {
	if c.finished {
		return false, domain.ErrInvalidMove
	}
	correct := change == c.sale.Change()
	if correct {
		c.score += changePoints
	}
	if c.round < changeRounds {
		c.round++
		c.sale = c.draw()
	} else {
		c.finished = true
	}
	return correct, nil
}

func (c *ChangeCalculator) Tick() {
	if c.finished {
		return
	}
	if c.tick() {
		c.finished = true
	}
}
