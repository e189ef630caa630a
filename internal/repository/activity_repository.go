package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// ActivityRepo provides append and read access to the
// user_activities table. The table is append-only: no update or
// delete methods exist, matching the audit-trail contract.
type ActivityRepo struct{ DB *sql.DB }

func NewActivityRepo(db *sql.DB) *ActivityRepo { return &ActivityRepo{DB: db} }

// Insert appends an activity row.
func (r *ActivityRepo) Insert(ctx context.Context, a *model.UserActivity) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_activities (user_id, activity_kind, movie_id, review_id, target_user_id) VALUES (?,?,?,?,?)",
		a.UserID, a.ActivityKind, a.MovieID, a.ReviewID, a.TargetUserID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// ListByUser returns a page of the user's activities, newest first,
// along with the total count.
func (r *ActivityRepo) ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]model.UserActivity, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_activities WHERE user_id=?", userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.UserActivity{}, 0, nil
	}
	query := fmt.Sprintf(
		"SELECT id, user_id, activity_kind, movie_id, review_id, target_user_id, created_at FROM user_activities WHERE user_id=? ORDER BY created_at DESC, id DESC LIMIT %d OFFSET %d",
		pageSize, (page-1)*pageSize)
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	activities := make([]model.UserActivity, 0, pageSize)
	for rows.Next() {
		var a model.UserActivity
		var movieID, reviewID, targetID sql.NullInt64
		if err := rows.Scan(&a.ID, &a.UserID, &a.ActivityKind, &movieID, &reviewID, &targetID, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		a.MovieID = nullableID(movieID)
		a.ReviewID = nullableID(reviewID)
		a.TargetUserID = nullableID(targetID)
		activities = append(activities, a)
	}
	return activities, total, rows.Err()
}

func nullableID(v sql.NullInt64) *uint64 {
	if !v.Valid {
		return nil
	}
	id := uint64(v.Int64)
	return &id
}
