package domain

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// Journal records every coin movement. Implementations must not block for long:
// entries are written while the game state lock is held.
type Journal interface {
	RecordEntry(entry LedgerEntry) error
}

// NotificationSink receives notifications after a transition has committed.
type NotificationSink interface {
	Notify(n Notification)
}

// SinkFunc adapts a plain function to NotificationSink.
type SinkFunc func(Notification)

// Notify calls f(n).
func (f SinkFunc) Notify(n Notification) { f(n) }
