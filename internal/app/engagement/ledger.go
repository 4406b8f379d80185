// Package engagement implements the progress and reward state machine:
// the coin ledger, the mission, shop and mini-game trackers, and the
// achievement engine derived from their counters.
//
// Trackers are plain state holders and are not safe for concurrent use on
// their own. Game owns one of each and serializes every intent through a
// single mutex, which is what keeps the shop's affordability check and its
// debit on the same balance snapshot.
package engagement

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/moneyquest/moneyquest/internal/domain"
	"github.com/moneyquest/moneyquest/internal/infra/observability"
)

// Ledger holds the coin balance. The balance never goes negative.
type Ledger struct {
	mu      sync.Mutex
	balance int64
	journal domain.Journal // optional
	log     *zap.Logger
	now     func() time.Time
}

// NewLedger creates a ledger seeded with start coins (clamped at zero).
// journal may be nil.
func NewLedger(start int64, journal domain.Journal, log *zap.Logger) *Ledger {
	if start < 0 {
		start = 0
	}
	if log == nil {
		log = zap.NewNop()
	}
	observability.CoinBalance.Set(float64(start))
	return &Ledger{
		balance: start,
		journal: journal,
		log:     log.Named("ledger"),
		now:     time.Now,
	}
}

// Balance returns the current balance.
func (l *Ledger) Balance() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Credit adds amount coins. Non-positive amounts are ignored.
func (l *Ledger) Credit(amount int64, tx domain.TransactionType, ref string) {
	if amount <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balance += amount
	l.record(domain.EntryCredit, tx, amount, ref)
	observability.CoinsCredited.WithLabelValues(string(tx)).Add(float64(amount))
}

// Debit removes amount coins if the balance covers it and reports whether it did.
// A refused debit leaves the balance untouched.
func (l *Ledger) Debit(amount int64, tx domain.TransactionType, ref string) bool {
	if amount <= 0 {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balance < amount {
		observability.DebitsRefused.Inc()
		l.log.Debug("debit refused",
			zap.Int64("amount", amount),
			zap.Int64("balance", l.balance),
			zap.String("ref", ref))
		return false
	}
	l.balance -= amount
	l.record(domain.EntryDebit, tx, amount, ref)
	observability.CoinsDebited.WithLabelValues(string(tx)).Add(float64(amount))
	return true
}

// record journals a movement. Must hold l.mu. The in-memory balance stays the
// source of truth, so a journal failure is logged and not rolled back.
func (l *Ledger) record(side domain.EntryType, tx domain.TransactionType, amount int64, ref string) {
	observability.CoinBalance.Set(float64(l.balance))
	if l.journal == nil {
		return
	}
	err := l.journal.RecordEntry(domain.LedgerEntry{
		Timestamp: l.now(),
		Type:      tx,
		EntryType: side,
		Amount:    amount,
		Reference: ref,
		Balance:   l.balance,
	})
	if err != nil {
		l.log.Warn("journal write failed", zap.String("ref", ref), zap.Error(err))
	}
}
