package domain

import "time"

// ─── Notification Types ─────────────────────────────────────────────────────
// The core only emits these; how they are surfaced (toast, sound, feed) is
// up to the presentation layer.

// NotificationKind classifies a notification event.
type NotificationKind string

const (
	NotifyMissionCompleted    NotificationKind = "mission-completed"
	NotifyPurchaseMade        NotificationKind = "purchase-made"
	NotifyGameCompleted       NotificationKind = "game-completed"
	NotifyGameNewRecord       NotificationKind = "game-new-record"
	NotifyAchievementUnlocked NotificationKind = "achievement-unlocked"
)

// Notification is a single event emitted by a state transition.
type Notification struct {
	ID        int64            `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Text      string           `json:"text"`
	Delta     int64            `json:"delta"`
	RefID     int              `json:"ref_id"`
	CreatedAt time.Time        `json:"created_at"`
	Shown     bool             `json:"shown"`
}
