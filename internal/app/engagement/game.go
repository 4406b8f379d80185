package engagement

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/moneyquest/moneyquest/internal/domain"
	"github.com/moneyquest/moneyquest/internal/infra/catalog"
	"github.com/moneyquest/moneyquest/internal/infra/observability"
)

// Config controls game economics.
type Config struct {
	StartingCoins int64 // Initial balance; negative means use the catalog's value
	BonusPercent  int   // Share of the reward paid for a new record (default: 20)
}

// DefaultConfig returns the catalog-driven defaults.
func DefaultConfig() Config {
	return Config{
		StartingCoins: -1,
		BonusPercent:  DefaultBonusPercent,
	}
}

// Game is the single owner of all progress state. Every intent runs under
// one lock, then its notifications go out to the sinks after the lock is
// released, in the order the intents committed.
//
// Sinks must not call back into Game intents.
type Game struct {
	mu           sync.Mutex
	ledger       *Ledger
	missions     *MissionTracker
	shop         *Shop
	games        *GameTracker
	achievements *AchievementEngine

	outMu sync.Mutex // orders dispatch across intents
	sinks []domain.NotificationSink
	log   *zap.Logger
	now   func() time.Time
}

// New builds a game from the catalog. journal and log may be nil.
func New(cat *catalog.Catalog, cfg Config, journal domain.Journal, log *zap.Logger, sinks ...domain.NotificationSink) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	start := cfg.StartingCoins
	if start < 0 {
		start = cat.StartingCoins
	}
	ledger := NewLedger(start, journal, log)
	g := &Game{
		ledger:       ledger,
		missions:     NewMissionTracker(cat.Missions, ledger),
		shop:         NewShop(cat.ShopItems, ledger),
		games:        NewGameTracker(cat.MiniGames, ledger, cfg.BonusPercent),
		achievements: NewAchievementEngine(cat.Achievements),
		sinks:        sinks,
		log:          log.Named("game"),
		now:          time.Now,
	}

	// Initial progress; a large starting balance may already unlock something.
	g.mu.Lock()
	pending := g.achievements.Recompute(g.countersLocked())
	g.outMu.Lock()
	g.mu.Unlock()
	g.dispatch(pending)
	g.outMu.Unlock()

	log.Info("game ready",
		zap.Int64("balance", start),
		zap.Int("missions", len(cat.Missions)),
		zap.Int("shop_items", len(cat.ShopItems)),
		zap.Int("games", len(cat.MiniGames)),
		zap.Int("achievements", len(cat.Achievements)))
	return g
}

// ─── Intents ────────────────────────────────────────────────────────────────

// CompleteMission marks mission id done and credits its reward.
func (g *Game) CompleteMission(id int) Outcome {
	return g.apply("complete_mission", id, func() (Outcome, *domain.Notification) {
		return g.missions.Complete(id)
	})
}

// Purchase buys shop item id if it is affordable and not yet owned.
func (g *Game) Purchase(id int) Outcome {
	return g.apply("purchase", id, func() (Outcome, *domain.Notification) {
		return g.shop.Purchase(id)
	})
}

// ReportResult records a finished play of game id. score may be nil.
func (g *Game) ReportResult(id int, score *int) Outcome {
	return g.apply("report_result", id, func() (Outcome, *domain.Notification) {
		return g.games.ReportResult(id, score)
	})
}

// apply runs one intent under the state lock, recomputes achievements when
// the intent changed something, and hands the notifications to the sinks.
func (g *Game) apply(intent string, id int, fn func() (Outcome, *domain.Notification)) Outcome {
	g.mu.Lock()
	out, n := fn()
	var pending []domain.Notification
	if out.Applied {
		if n != nil {
			pending = append(pending, *n)
		}
		pending = append(pending, g.achievements.Recompute(g.countersLocked())...)
	}
	g.outMu.Lock()
	g.mu.Unlock()

	g.dispatch(pending)
	g.outMu.Unlock()

	observability.Intents.WithLabelValues(intent, string(out.Reason)).Inc()
	if out.Applied {
		g.log.Info("intent applied",
			zap.String("intent", intent),
			zap.Int("id", id),
			zap.String("reason", string(out.Reason)),
			zap.Int64("delta", out.Delta),
			zap.Int64("balance", out.Balance))
	} else {
		g.log.Debug("intent ignored",
			zap.String("intent", intent),
			zap.Int("id", id),
			zap.String("reason", string(out.Reason)))
	}
	return out
}

// dispatch stamps and delivers notifications. Must hold g.outMu.
func (g *Game) dispatch(pending []domain.Notification) {
	for _, n := range pending {
		if n.CreatedAt.IsZero() {
			n.CreatedAt = g.now()
		}
		for _, s := range g.sinks {
			s.Notify(n)
		}
	}
}

// ─── Queries ────────────────────────────────────────────────────────────────

// countersLocked derives the counters. Must hold g.mu.
func (g *Game) countersLocked() domain.Counters {
	return domain.Counters{
		Coins:             g.ledger.Balance(),
		CompletedMissions: g.missions.CompletedCount(),
		Purchases:         g.shop.PurchaseCount(),
		CompletedGames:    g.games.CompletedCount(),
	}
}

// Counters returns the current progress counters.
func (g *Game) Counters() domain.Counters {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.countersLocked()
}

// Balance returns the current coin balance.
func (g *Game) Balance() int64 {
	return g.ledger.Balance()
}

// Snapshot returns a consistent copy of the whole state.
func (g *Game) Snapshot() domain.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return domain.Snapshot{
		Counters:     g.countersLocked(),
		Missions:     g.missions.List(),
		ShopItems:    g.shop.List(),
		MiniGames:    g.games.List(),
		Achievements: g.achievements.List(),
	}
}

// Missions returns all missions.
func (g *Game) Missions() []domain.Mission {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.missions.List()
}

// ShopItems returns all shop items.
func (g *Game) ShopItems() []domain.ShopItem {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.shop.List()
}

// MiniGames returns all mini-games.
func (g *Game) MiniGames() []domain.MiniGame {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.games.List()
}

// MiniGame returns the mini-game with the given id.
func (g *Game) MiniGame(id int) (domain.MiniGame, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.games.Get(id)
}

// Achievements returns all achievements with their current progress.
func (g *Game) Achievements() []domain.Achievement {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.achievements.List()
}

// Stats summarizes progress for logs and the demo command.
type Stats struct {
	Balance           int64 `json:"balance"`
	CompletedMissions int64 `json:"completed_missions"`
	Purchases         int64 `json:"purchases"`
	CompletedGames    int64 `json:"completed_games"`
	Unlocked          int   `json:"unlocked"`
	Achievements      int   `json:"achievements"`
}

// Stats returns current progress statistics.
func (g *Game) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	c := g.countersLocked()
	return Stats{
		Balance:           c.Coins,
		CompletedMissions: c.CompletedMissions,
		Purchases:         c.Purchases,
		CompletedGames:    c.CompletedGames,
		Unlocked:          g.achievements.UnlockedCount(),
		Achievements:      len(g.achievements.achievements),
	}
}
