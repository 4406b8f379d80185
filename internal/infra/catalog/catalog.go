// Package catalog holds the seed content of a game: missions, shop items,
// mini-games, achievements and the material the mini-games draw from.
//
// The built-in content is an embedded YAML document. An override file with
// the same shape can be loaded instead; nothing is merged.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/moneyquest/moneyquest/internal/domain"
)

//go:embed default.yaml
var defaultYAML []byte

// QuizQuestion is one multiple-choice question of the quiz game.
type QuizQuestion struct {
	Question    string   `yaml:"question" json:"question"`
	Options     []string `yaml:"options" json:"options"`
	Answer      int      `yaml:"answer" json:"-"`
	Explanation string   `yaml:"explanation" json:"-"` // shown only after answering
}

// PricedItem is something sold in the change-calculator game.
type PricedItem struct {
	Name     string `yaml:"name" json:"name"`
	MinPrice int    `yaml:"min_price" json:"min_price"`
	MaxPrice int    `yaml:"max_price" json:"max_price"`
}

// BudgetLine is one envelope of the budget-planner game.
type BudgetLine struct {
	ID        int    `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	Icon      string `yaml:"icon" json:"icon"`
	Need      bool   `yaml:"need" json:"need"`
	Suggested int    `yaml:"suggested" json:"suggested"`
}

// Budget is the money to split and the envelopes to split it across.
type Budget struct {
	Total int          `yaml:"total" json:"total"`
	Lines []BudgetLine `yaml:"lines" json:"lines"`
}

// Catalog is the full seed content of one game.
type Catalog struct {
	StartingCoins int64                `yaml:"starting_coins"`
	Missions      []domain.Mission     `yaml:"missions"`
	Achievements  []domain.Achievement `yaml:"achievements"`
	ShopItems     []domain.ShopItem    `yaml:"shop"`
	MiniGames     []domain.MiniGame    `yaml:"games"`

	MemorySymbols []string       `yaml:"memory_symbols"`
	Quiz          []QuizQuestion `yaml:"quiz"`
	ChangeItems   []PricedItem   `yaml:"change_items"`
	Budget        Budget         `yaml:"budget"`
}

// Default returns a fresh copy of the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		// The embedded document is covered by tests; a failure here is a build defect.
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// DefaultYAML returns the embedded catalog document, a starting point for overrides.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultYAML...)
}

// Load reads and validates a catalog file. An empty path returns Default().
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog, fills default achievement metrics and validates it.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	for i := range c.Achievements {
		if c.Achievements[i].Metric == "" {
			c.Achievements[i].Metric = DefaultMetric(c.Achievements[i].ID)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// DefaultMetric is the fixed achievement → counter mapping used when a
// catalog entry does not name its metric.
func DefaultMetric(achievementID int) domain.Metric {
	switch achievementID {
	case 1, 3:
		return domain.MetricCompletedMissions
	case 2:
		return domain.MetricCoins
	case 4:
		return domain.MetricPurchases
	case 5:
		return domain.MetricCompletedGames
	}
	return ""
}

// ─── Lookups ────────────────────────────────────────────────────────────────

// Mission returns the seeded mission with the given id, or nil.
func (c *Catalog) Mission(id int) *domain.Mission {
	for i := range c.Missions {
		if c.Missions[i].ID == id {
			return &c.Missions[i]
		}
	}
	return nil
}

// ShopItem returns the seeded shop item with the given id, or nil.
func (c *Catalog) ShopItem(id int) *domain.ShopItem {
	for i := range c.ShopItems {
		if c.ShopItems[i].ID == id {
			return &c.ShopItems[i]
		}
	}
	return nil
}

// MiniGame returns the seeded mini-game with the given id, or nil.
func (c *Catalog) MiniGame(id int) *domain.MiniGame {
	for i := range c.MiniGames {
		if c.MiniGames[i].ID == id {
			return &c.MiniGames[i]
		}
	}
	return nil
}
