package domain

import (
	"testing"
)

// ─── Enum Validation Tests ──────────────────────────────────────────────────

func TestDifficulty_Valid(t *testing.T) {
	tests := []struct {
		d    Difficulty
		want bool
	}{
		{DifficultyEasy, true},
		{DifficultyMedium, true},
		{DifficultyHard, true},
		{"legendary", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.d), func(t *testing.T) {
			if got := tt.d.Valid(); got != tt.want {
				t.Errorf("Difficulty(%q).Valid() = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestCategories_Valid(t *testing.T) {
	if !MissionSharing.Valid() {
		t.Error("MissionSharing should be valid")
	}
	if MissionCategory("gambling").Valid() {
		t.Error("unknown mission category should be invalid")
	}
	if !GameStrategy.Valid() {
		t.Error("GameStrategy should be valid")
	}
	if GameCategory("racing").Valid() {
		t.Error("unknown game category should be invalid")
	}
}

// ─── MiniGame Tests ─────────────────────────────────────────────────────────

func TestMiniGame_Best(t *testing.T) {
	g := MiniGame{}
	if got := g.Best(); got != 0 {
		t.Errorf("Best() with nil score = %d, want 0", got)
	}
	score := 42
	g.BestScore = &score
	if got := g.Best(); got != 42 {
		t.Errorf("Best() = %d, want 42", got)
	}
}

// ─── Achievement Tests ──────────────────────────────────────────────────────

func TestAchievement_ProgressPct(t *testing.T) {
	tests := []struct {
		name     string
		progress int64
		req      int64
		want     float64
	}{
		{"zero", 0, 100, 0},
		{"partial", 75, 100, 75},
		{"capped", 250, 100, 100},
		{"no requirement", 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Achievement{Progress: tt.progress, Requirement: tt.req}
			if got := a.ProgressPct(); got != tt.want {
				t.Errorf("ProgressPct() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ─── Counters Tests ─────────────────────────────────────────────────────────

func TestCounters_Value(t *testing.T) {
	c := Counters{Coins: 75, CompletedMissions: 1, Purchases: 2, CompletedGames: 3}

	tests := []struct {
		metric Metric
		want   int64
	}{
		{MetricCoins, 75},
		{MetricCompletedMissions, 1},
		{MetricPurchases, 2},
		{MetricCompletedGames, 3},
		{"unknown", 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.metric), func(t *testing.T) {
			if got := c.Value(tt.metric); got != tt.want {
				t.Errorf("Value(%q) = %d, want %d", tt.metric, got, tt.want)
			}
		})
	}
}

func TestSinkFunc(t *testing.T) {
	var got []NotificationKind
	var sink NotificationSink = SinkFunc(func(n Notification) {
		got = append(got, n.Kind)
	})
	sink.Notify(Notification{Kind: NotifyPurchaseMade})
	if len(got) != 1 || got[0] != NotifyPurchaseMade {
		t.Errorf("SinkFunc recorded %v, want [%s]", got, NotifyPurchaseMade)
	}
}
