package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// ReviewRepo provides CRUD operations for reviews. Mutations are
// exposed as ...Tx variants because the caller must run the rating
// recompute for the owning movie inside the same transaction; a
// review must never be visible without the matching movie rating.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// CreateTx inserts a review within the given transaction and
// populates the generated ID. A duplicate (movie_id, user_id) pair
// maps to ErrDuplicateReview; a missing movie surfaces as a foreign
// key error handled by the caller's existence check.
func (r *ReviewRepo) CreateTx(ctx context.Context, tx *sql.Tx, rev *model.Review) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO reviews (movie_id, user_id, rating, comment) VALUES (?,?,?,?)",
		rev.MovieID, rev.UserID, rev.Rating, rev.Comment)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateReview
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	return nil
}

// UpdateTx rewrites the rating and comment of a review within the
// given transaction.
func (r *ReviewRepo) UpdateTx(ctx context.Context, tx *sql.Tx, id uint64, rating int, comment string) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE reviews SET rating=?, comment=? WHERE id=?", rating, comment, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// DeleteTx removes a review within the given transaction. The caller
// must capture the review's movie ID beforehand so the rating
// recompute can still reference it.
func (r *ReviewRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// GetByID returns a single review or ErrReviewNotFound.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (model.Review, error) {
	var rev model.Review
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, movie_id, user_id, rating, comment, created_at, updated_at FROM reviews WHERE id=? LIMIT 1",
		id).Scan(&rev.ID, &rev.MovieID, &rev.UserID, &rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rev, ErrReviewNotFound
	}
	return rev, err
}

// ListByMovie returns a page of reviews for a movie, newest first,
// along with the total count.
func (r *ReviewRepo) ListByMovie(ctx context.Context, movieID uint64, page, pageSize int) ([]model.Review, int, error) {
	return r.list(ctx, "movie_id", movieID, page, pageSize)
}

// ListByUser returns a page of reviews written by a user, newest
// first, along with the total count.
func (r *ReviewRepo) ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]model.Review, int, error) {
	return r.list(ctx, "user_id", userID, page, pageSize)
}

func (r *ReviewRepo) list(ctx context.Context, column string, id uint64, page, pageSize int) ([]model.Review, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reviews WHERE "+column+"=?", id).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.Review{}, 0, nil
	}
	query := fmt.Sprintf(
		"SELECT id, movie_id, user_id, rating, comment, created_at, updated_at FROM reviews WHERE %s=? ORDER BY created_at DESC LIMIT %d OFFSET %d",
		column, pageSize, (page-1)*pageSize)
	rows, err := r.DB.QueryContext(ctx, query, id)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	reviews := make([]model.Review, 0, pageSize)
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.MovieID, &rev.UserID, &rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, total, rows.Err()
}
