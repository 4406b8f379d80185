package sqlite

import (
	"time"

	"github.com/moneyquest/moneyquest/internal/domain"
)

// ─── Notification Inbox Operations ──────────────────────────────────────────

// InsertNotification stores a notification and returns its id.
func (db *DB) InsertNotification(n domain.Notification) (int64, error) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	res, err := db.db.Exec(`
		INSERT INTO notifications (kind, title, body, delta, ref_id, created_at, shown)
		VALUES (?, ?, ?, ?, ?, ?, 0)
	`, string(n.Kind), n.Title, n.Text, n.Delta, n.RefID, formatTime(n.CreatedAt))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// PendingNotifications returns up to limit notifications not yet shown, oldest first.
func (db *DB) PendingNotifications(limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.db.Query(`
		SELECT id, kind, title, body, delta, ref_id, created_at, shown
		FROM notifications WHERE shown = 0
		ORDER BY id ASC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var kind, created string
		var shown int
		if err := rows.Scan(&n.ID, &kind, &n.Title, &n.Text, &n.Delta, &n.RefID, &created, &shown); err != nil {
			return nil, err
		}
		n.Kind = domain.NotificationKind(kind)
		n.CreatedAt = parseTime(created)
		n.Shown = shown == 1
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkNotificationShown flags a notification as displayed.
func (db *DB) MarkNotificationShown(id int64) error {
	res, err := db.db.Exec(`UPDATE notifications SET shown = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// NotificationCountSince returns how many notifications were created at or after since.
func (db *DB) NotificationCountSince(since time.Time) (int, error) {
	var count int
	err := db.db.QueryRow(`
		SELECT COUNT(*) FROM notifications WHERE created_at >= ?
	`, formatTime(since)).Scan(&count)
	return count, err
}
