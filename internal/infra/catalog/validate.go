package catalog

import (
	"errors"
	"fmt"

	"github.com/moneyquest/moneyquest/internal/domain"
)

// Validate checks the rules the game state machine relies on.
// All problems are reported together, each wrapping ErrInvalidCatalog.
func (c *Catalog) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", domain.ErrInvalidCatalog, fmt.Sprintf(format, args...)))
	}
	dup := func(kind string, id int) {
		errs = append(errs, fmt.Errorf("%w: %s %d", domain.ErrDuplicateID, kind, id))
	}

	if c.StartingCoins < 0 {
		bad("starting_coins must not be negative, got %d", c.StartingCoins)
	}

	seen := make(map[int]bool)
	for _, m := range c.Missions {
		if seen[m.ID] {
			dup("mission", m.ID)
		}
		seen[m.ID] = true
		if m.Reward <= 0 {
			bad("mission %d: reward must be positive", m.ID)
		}
		if !m.Difficulty.Valid() {
			bad("mission %d: unknown difficulty %q", m.ID, m.Difficulty)
		}
		if !m.Category.Valid() {
			bad("mission %d: unknown category %q", m.ID, m.Category)
		}
		if m.Completed {
			bad("mission %d: must start not completed", m.ID)
		}
	}

	seen = make(map[int]bool)
	for _, it := range c.ShopItems {
		if seen[it.ID] {
			dup("shop item", it.ID)
		}
		seen[it.ID] = true
		if it.Price <= 0 {
			bad("shop item %d: price must be positive", it.ID)
		}
		if it.Purchased {
			bad("shop item %d: must start not purchased", it.ID)
		}
	}

	seen = make(map[int]bool)
	for _, g := range c.MiniGames {
		if seen[g.ID] {
			dup("mini-game", g.ID)
		}
		seen[g.ID] = true
		if g.Reward <= 0 {
			bad("mini-game %d: reward must be positive", g.ID)
		}
		if !g.Difficulty.Valid() {
			bad("mini-game %d: unknown difficulty %q", g.ID, g.Difficulty)
		}
		if !g.Category.Valid() {
			bad("mini-game %d: unknown category %q", g.ID, g.Category)
		}
		if g.Completed || g.BestScore != nil {
			bad("mini-game %d: must start unplayed", g.ID)
		}
	}

	seen = make(map[int]bool)
	for _, a := range c.Achievements {
		if seen[a.ID] {
			dup("achievement", a.ID)
		}
		seen[a.ID] = true
		if a.Requirement <= 0 {
			bad("achievement %d: requirement must be positive", a.ID)
		}
		if !a.Metric.Valid() {
			bad("achievement %d: unknown metric %q", a.ID, a.Metric)
		}
		if a.Unlocked {
			bad("achievement %d: must start locked", a.ID)
		}
	}

	for i, q := range c.Quiz {
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			bad("quiz question %d: answer index %d out of range", i+1, q.Answer)
		}
	}
	for _, it := range c.ChangeItems {
		if it.MinPrice <= 0 || it.MaxPrice < it.MinPrice {
			bad("change item %q: invalid price range [%d, %d]", it.Name, it.MinPrice, it.MaxPrice)
		}
	}
	for _, l := range c.Budget.Lines {
		if l.Suggested <= 0 {
			bad("budget line %d: suggested amount must be positive", l.ID)
		}
	}

	return errors.Join(errs...)
}
