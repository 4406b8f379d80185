package domain

import "time"

// ─── Coin Ledger Types ──────────────────────────────────────────────────────
// These live in domain because they represent core business rules.
// The ledger itself is implemented in app/engagement; storage in infra/sqlite.

// EntryType represents the accounting side of a ledger entry.
type EntryType string

const (
	EntryDebit  EntryType = "DEBIT"
	EntryCredit EntryType = "CREDIT"
)

// TransactionType represents the business reason for a coin movement.
type TransactionType string

const (
	TxMission  TransactionType = "MISSION"  // mission reward
	TxGame     TransactionType = "GAME"     // first mini-game completion
	TxBonus    TransactionType = "BONUS"    // new high score on replay
	TxPurchase TransactionType = "PURCHASE" // shop item bought
)

// LedgerEntry is a single row in the coin journal.
type LedgerEntry struct {
	ID        int64           `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Type      TransactionType `json:"type"`
	EntryType EntryType       `json:"entry_type"`
	Amount    int64           `json:"amount"`
	Reference string          `json:"reference,omitempty"`
	Balance   int64           `json:"balance"`
}
