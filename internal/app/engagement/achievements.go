package engagement

import "github.com/moneyquest/moneyquest/internal/domain"

// AchievementEngine derives achievement progress from the counters.
// Unlocking is sticky: once an achievement is unlocked it stays unlocked,
// even if its counter later drops (coins can be spent).
type AchievementEngine struct {
	achievements []domain.Achievement
}

// NewAchievementEngine copies seed.
func NewAchievementEngine(seed []domain.Achievement) *AchievementEngine {
	e := &AchievementEngine{achievements: make([]domain.Achievement, len(seed))}
	copy(e.achievements, seed)
	return e
}

// Recompute refreshes every achievement's progress from c and returns one
// notification per achievement that crossed its requirement in this call.
// Calling it again with the same counters changes nothing.
func (e *AchievementEngine) Recompute(c domain.Counters) []domain.Notification {
	var unlocked []domain.Notification
	for i, a := range e.achievements {
		a.Progress = c.Value(a.Metric)
		if !a.Unlocked && a.Requirement > 0 && a.Progress >= a.Requirement {
			a.Unlocked = true
			unlocked = append(unlocked, achievementUnlocked(a))
		}
		e.achievements[i] = a
	}
	return unlocked
}

// UnlockedCount returns how many achievements are unlocked.
func (e *AchievementEngine) UnlockedCount() int {
	n := 0
	for _, a := range e.achievements {
		if a.Unlocked {
			n++
		}
	}
	return n
}

// List returns a copy of all achievements in seed order.
func (e *AchievementEngine) List() []domain.Achievement {
	out := make([]domain.Achievement, len(e.achievements))
	copy(out, e.achievements)
	return out
}
