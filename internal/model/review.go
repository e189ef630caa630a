package model

import "time"

// Review rating bounds.  Ratings are whole numbers from 1 to 10.
const (
	ReviewRatingMin = 1
	ReviewRatingMax = 10
)

// Review mirrors the `reviews` table.  A user may hold at most one
// review per movie, enforced by a unique key on (movie_id, user_id).
// The owning user is always stamped from the authenticated actor;
// only the owner may update or delete the review.  Every mutation
// of a review triggers a recompute of the owning movie's rating in
// the same transaction.
//
// Fields:
//
//	ID        – primary key identifier.
//	MovieID   – movie the review belongs to.
//	UserID    – authoring user (set server-side, never from payload).
//	Rating    – integer rating from 1 to 10.
//	Comment   – free-text review body.
//	CreatedAt – creation timestamp.
//	UpdatedAt – last update timestamp.
type Review struct {
	ID        uint64    // reviews.id
	MovieID   uint64    // reviews.movie_id
	UserID    uint64    // reviews.user_id
	Rating    int       // reviews.rating
	Comment   string    // reviews.comment
	CreatedAt time.Time // reviews.created_at
	UpdatedAt time.Time // reviews.updated_at
}
