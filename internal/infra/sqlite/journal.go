package sqlite

import (
	"time"

	"github.com/moneyquest/moneyquest/internal/domain"
)

// ─── Ledger Journal Operations ──────────────────────────────────────────────

// RecordEntry appends a ledger entry. Implements domain.Journal.
func (db *DB) RecordEntry(e domain.LedgerEntry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	_, err := db.db.Exec(`
		INSERT INTO ledger_entries (timestamp, tx_type, entry_type, amount, reference, balance)
		VALUES (?, ?, ?, ?, ?, ?)
	`, formatTime(e.Timestamp), string(e.Type), string(e.EntryType), e.Amount, e.Reference, e.Balance)
	return err
}

// ListEntries returns the most recent journal entries, oldest first.
// limit <= 0 returns everything.
func (db *DB) ListEntries(limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.db.Query(`
		SELECT id, timestamp, tx_type, entry_type, amount, reference, balance
		FROM (SELECT * FROM ledger_entries ORDER BY id DESC LIMIT ?)
		ORDER BY id ASC
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var ts, txType, entryType string
		if err := rows.Scan(&e.ID, &ts, &txType, &entryType, &e.Amount, &e.Reference, &e.Balance); err != nil {
			return nil, err
		}
		e.Timestamp = parseTime(ts)
		e.Type = domain.TransactionType(txType)
		e.EntryType = domain.EntryType(entryType)
		out = append(out, e)
	}
	return out, rows.Err()
}

// SumByType returns the total amount journaled for a transaction type.
func (db *DB) SumByType(tx domain.TransactionType) (int64, error) {
	var total int64
	err := db.db.QueryRow(`
		SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE tx_type = ?
	`, string(tx)).Scan(&total)
	return total, err
}
