package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// NotificationRepo provides access to the notifications table.
// Rows are written by the movie.published queue consumer and read
// by their owning user; is_read only ever flips from false to true.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Insert appends a notification for a single user.
func (r *NotificationRepo) Insert(ctx context.Context, userID uint64, title, message string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO notifications (user_id, title, message) VALUES (?,?,?)",
		userID, title, message)
	return err
}

// GetByID returns a single notification or ErrNotificationNotFound.
func (r *NotificationRepo) GetByID(ctx context.Context, id uint64) (model.Notification, error) {
	var n model.Notification
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, title, message, is_read, created_at FROM notifications WHERE id=? LIMIT 1",
		id).Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return n, ErrNotificationNotFound
	}
	return n, err
}

// ListByUser returns the user's notifications, newest first. When
// onlyUnread is true, read notifications are skipped.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64, onlyUnread bool) ([]model.Notification, error) {
	query := "SELECT id, user_id, title, message, is_read, created_at FROM notifications WHERE user_id=?"
	if onlyUnread {
		query += " AND is_read=0"
	}
	query += " ORDER BY created_at DESC"
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkRead flips is_read to true. Marking an already-read
// notification is a no-op, keeping the transition one-way and the
// endpoint idempotent.
func (r *NotificationRepo) MarkRead(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET is_read=1 WHERE id=? AND is_read=0", id)
	return err
}
