package model

import "time"

// Notification mirrors the `notifications` table.  Notifications are
// written by the background consumer of the movie.published queue and
// read by their owning user.  The is_read flag only ever transitions
// from false to true.
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – recipient of the notification.
//	Title     – short headline.
//	Message   – notification body.
//	IsRead    – whether the user has read the notification.
//	CreatedAt – creation timestamp.
type Notification struct {
	ID        uint64    // notifications.id
	UserID    uint64    // notifications.user_id
	Title     string    // notifications.title
	Message   string    // notifications.message
	IsRead    bool      // notifications.is_read
	CreatedAt time.Time // notifications.created_at
}
