// Package service holds domain logic that sits between handlers and
// repositories: the rating recompute, the authorization gate and the
// best-effort activity recorder.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"math"
)

// AverageRating returns the mean of count review ratings summing to
// sum, rounded to one decimal place. A movie with no reviews has a
// rating of exactly 0.
func AverageRating(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}

// RecomputeMovieRating rewrites movies.rating from the movie's
// current reviews. It must run inside the same transaction as the
// review mutation that triggered it so the stored rating never
// drifts from the review set: if the UPDATE fails the caller rolls
// back the review change too. The aggregate SELECT locks the
// movie's review rows, serialising concurrent recomputes for the
// same movie.
func RecomputeMovieRating(ctx context.Context, tx *sql.Tx, movieID uint64) error {
	var sum, count int
	err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(rating),0), COUNT(*) FROM reviews WHERE movie_id=? FOR UPDATE",
		movieID).Scan(&sum, &count)
	if err != nil {
		return fmt.Errorf("aggregate reviews: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE movies SET rating=? WHERE id=?",
		AverageRating(sum, count), movieID); err != nil {
		return fmt.Errorf("store rating: %w", err)
	}
	return nil
}
