// Package domain contains pure business types with ZERO infrastructure imports.
// It depends on nothing else in the module.
package domain

// ─── Enumerations ───────────────────────────────────────────────────────────

// Difficulty grades missions and mini-games.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// MissionCategory is the money concept a mission teaches.
type MissionCategory string

const (
	MissionSaving   MissionCategory = "saving"
	MissionEarning  MissionCategory = "earning"
	MissionSpending MissionCategory = "spending"
	MissionSharing  MissionCategory = "sharing"
)

// Valid reports whether c is one of the known mission categories.
func (c MissionCategory) Valid() bool {
	switch c {
	case MissionSaving, MissionEarning, MissionSpending, MissionSharing:
		return true
	}
	return false
}

// GameCategory groups mini-games by the skill they exercise.
type GameCategory string

const (
	GameMath     GameCategory = "math"
	GameMemory   GameCategory = "memory"
	GameStrategy GameCategory = "strategy"
	GameQuiz     GameCategory = "quiz"
)

// Valid reports whether c is one of the known game categories.
func (c GameCategory) Valid() bool {
	switch c {
	case GameMath, GameMemory, GameStrategy, GameQuiz:
		return true
	}
	return false
}

// ─── Records ────────────────────────────────────────────────────────────────
// Records are replaced, never mutated in place, once handed out in a Snapshot.

// Mission is a one-shot task the player marks done to earn coins.
type Mission struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Reward      int64           `json:"reward"`
	Difficulty  Difficulty      `json:"difficulty"`
	Category    MissionCategory `json:"category"`
	Icon        string          `json:"icon"`
	Completed   bool            `json:"completed"`
}

// ShopItem is a reward the player can buy once with coins.
type ShopItem struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Icon      string `json:"icon"`
	Category  string `json:"category"`
	Purchased bool   `json:"purchased"`
}

// MiniGame is a short scored activity. Completion pays once; replays can
// only raise BestScore.
type MiniGame struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Reward      int64        `json:"reward"`
	Difficulty  Difficulty   `json:"difficulty"`
	Category    GameCategory `json:"category"`
	Icon        string       `json:"icon"`
	Kind        GameKind     `json:"kind"`
	Completed   bool         `json:"completed"`
	BestScore   *int         `json:"best_score,omitempty"`
}

// Best returns BestScore, treating an unset score as zero.
func (g MiniGame) Best() int {
	if g.BestScore == nil {
		return 0
	}
	return *g.BestScore
}

// GameKind selects the rule set that drives a mini-game session.
type GameKind string

const (
	KindCoinCounter      GameKind = "coin_counter"
	KindMemory           GameKind = "memory"
	KindQuiz             GameKind = "quiz"
	KindChangeCalculator GameKind = "change_calculator"
	KindBudgetPlanner    GameKind = "budget_planner"
)

// Achievement is a milestone derived from one progress counter.
type Achievement struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Metric      Metric `json:"metric"`
	Requirement int64  `json:"requirement"`
	Progress    int64  `json:"progress"`
	Unlocked    bool   `json:"unlocked"`
}

// ProgressPct returns progress toward the requirement, capped at 100.
func (a Achievement) ProgressPct() float64 {
	if a.Requirement <= 0 {
		return 0
	}
	pct := float64(a.Progress) / float64(a.Requirement) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// ─── Counters ───────────────────────────────────────────────────────────────

// Metric names the counter that feeds an achievement.
type Metric string

const (
	MetricCompletedMissions Metric = "completed_missions"
	MetricCoins             Metric = "coins"
	MetricPurchases         Metric = "purchases"
	MetricCompletedGames    Metric = "completed_games"
)

// Valid reports whether m names a known counter.
func (m Metric) Valid() bool {
	switch m {
	case MetricCompletedMissions, MetricCoins, MetricPurchases, MetricCompletedGames:
		return true
	}
	return false
}

// Counters is the aggregate state achievements are derived from.
type Counters struct {
	Coins             int64 `json:"coins"`
	CompletedMissions int64 `json:"completed_missions"`
	Purchases         int64 `json:"purchases"`
	CompletedGames    int64 `json:"completed_games"`
}

// Value returns the counter selected by m, or 0 for an unknown metric.
func (c Counters) Value(m Metric) int64 {
	switch m {
	case MetricCompletedMissions:
		return c.CompletedMissions
	case MetricCoins:
		return c.Coins
	case MetricPurchases:
		return c.Purchases
	case MetricCompletedGames:
		return c.CompletedGames
	}
	return 0
}

// Snapshot is a read-only copy of the whole game state for presentation.
type Snapshot struct {
	Counters     Counters      `json:"counters"`
	Missions     []Mission     `json:"missions"`
	ShopItems    []ShopItem    `json:"shop_items"`
	MiniGames    []MiniGame    `json:"mini_games"`
	Achievements []Achievement `json:"achievements"`
}
