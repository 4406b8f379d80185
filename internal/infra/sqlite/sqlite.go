// Package sqlite stores the coin journal and the notification inbox.
//
// The default DSN is an in-memory database: the journal lives exactly as long
// as the process, like the rest of the game state. A file DSN can be passed for
// debugging, but the game never reads state back from it on start.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// MemoryDSN is the process-lifetime database used when no DSN is configured.
const MemoryDSN = ":memory:"

// DB wraps the sql handle.
type DB struct {
	db *sql.DB
}

// Open opens the database and applies the schema.
func Open(dsn string) (*DB, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every pooled connection to :memory: would get its own empty database.
	sqlDB.SetMaxOpenConns(1)

	db := &DB{db: sqlDB}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close releases the database.
func (db *DB) Close() error {
	return db.db.Close()
}

// ─── Schema ─────────────────────────────────────────────────────────────────

// Migrations returns the schema statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		// Coin journal: one row per credit or debit
		`CREATE TABLE IF NOT EXISTS ledger_entries (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  TEXT NOT NULL,
			tx_type    TEXT NOT NULL,
			entry_type TEXT NOT NULL CHECK(entry_type IN ('CREDIT', 'DEBIT')),
			amount     INTEGER NOT NULL CHECK(amount > 0),
			reference  TEXT NOT NULL DEFAULT '',
			balance    INTEGER NOT NULL CHECK(balance >= 0)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_type ON ledger_entries(tx_type)`,

		// Notification inbox
		`CREATE TABLE IF NOT EXISTS notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			kind       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL DEFAULT '',
			delta      INTEGER NOT NULL DEFAULT 0,
			ref_id     INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			shown      INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_pending ON notifications(shown, id)`,
	}
}

func (db *DB) migrate() error {
	for _, stmt := range Migrations() {
		if _, err := db.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ─── Time Helpers ───────────────────────────────────────────────────────────

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}
