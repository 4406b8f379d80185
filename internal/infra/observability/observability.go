// Package observability exposes Prometheus metrics for the game core.
//
// Metrics are registered on the default registry via promauto and served by
// promhttp on /metrics when enabled in config. The Observer type adapts them
// to the domain notification sink so every emitted event is counted.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/moneyquest/moneyquest/internal/domain"
)

// ═══════════════════════════════════════════════════════════════════════════
// Ledger Metrics
// ═══════════════════════════════════════════════════════════════════════════

// CoinBalance tracks the current coin balance.
var CoinBalance = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "moneyquest",
	Subsystem: "ledger",
	Name:      "balance_coins",
	Help:      "Current coin balance",
})

// CoinsCredited counts coins credited, by transaction type.
var CoinsCredited = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moneyquest",
	Subsystem: "ledger",
	Name:      "credited_coins_total",
	Help:      "Coins credited to the ledger",
}, []string{"type"})

// CoinsDebited counts coins debited, by transaction type.
var CoinsDebited = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moneyquest",
	Subsystem: "ledger",
	Name:      "debited_coins_total",
	Help:      "Coins debited from the ledger",
}, []string{"type"})

// DebitsRefused counts debits refused for insufficient balance.
var DebitsRefused = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moneyquest",
	Subsystem: "ledger",
	Name:      "debits_refused_total",
	Help:      "Debits refused because the balance was too low",
})

// ═══════════════════════════════════════════════════════════════════════════
// Intent Metrics
// ═══════════════════════════════════════════════════════════════════════════

// Intents counts player intents by kind and result (applied or the no-op reason).
var Intents = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moneyquest",
	Name:      "intents_total",
	Help:      "Player intents by kind and result",
}, []string{"intent", "result"})

// Notifications counts emitted notifications by kind.
var Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moneyquest",
	Name:      "notifications_total",
	Help:      "Notifications emitted by kind",
}, []string{"kind"})

// ═══════════════════════════════════════════════════════════════════════════
// Session Metrics
// ═══════════════════════════════════════════════════════════════════════════

// ActiveSessions tracks open mini-game sessions.
var ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "moneyquest",
	Subsystem: "session",
	Name:      "active",
	Help:      "Open mini-game sessions",
})

// SessionsEnded counts sessions by how they ended (finished, expired, abandoned).
var SessionsEnded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moneyquest",
	Subsystem: "session",
	Name:      "ended_total",
	Help:      "Mini-game sessions by end reason",
}, []string{"reason"})

// SessionScore observes terminal scores per game kind.
var SessionScore = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "moneyquest",
	Subsystem: "session",
	Name:      "score",
	Help:      "Terminal mini-game scores",
	Buckets:   []float64{0, 10, 20, 30, 40, 50, 60, 80, 100},
}, []string{"kind"})

// ─── Notification Sink ──────────────────────────────────────────────────────

// Observer counts notifications. It is safe for concurrent use.
type Observer struct{}

// Notify implements domain.NotificationSink.
func (Observer) Notify(n domain.Notification) {
	Notifications.WithLabelValues(string(n.Kind)).Inc()
}
