package model

import "time"

// Activity kinds stored in user_activities.activity_kind.
const (
	ActivityReview = "REVIEW" // added a review
	ActivityRate   = "RATE"   // rated a movie
	ActivityWatch  = "WATCH"  // added to watchlist
	ActivityLike   = "LIKE"   // liked a review
	ActivityFollow = "FOLLOW" // followed a user
)

// ValidActivityKind reports whether kind is one of the accepted activity kinds.
func ValidActivityKind(kind string) bool {
	switch kind {
	case ActivityReview, ActivityRate, ActivityWatch, ActivityLike, ActivityFollow:
		return true
	}
	return false
}

// UserActivity mirrors the `user_activities` table.  Activities are
// an append-only audit trail: rows are inserted as a side effect of
// mutations and never updated or deleted through the API.  The
// optional references point at the subject of the activity.
//
// Fields:
//
//	ID           – primary key identifier.
//	UserID       – acting user.
//	ActivityKind – one of the Activity constants.
//	MovieID      – movie involved, if any.
//	ReviewID     – review involved, if any.
//	TargetUserID – other user involved, if any (e.g. FOLLOW).
//	CreatedAt    – when the activity happened.
type UserActivity struct {
	ID           uint64    // user_activities.id
	UserID       uint64    // user_activities.user_id
	ActivityKind string    // user_activities.activity_kind
	MovieID      *uint64   // user_activities.movie_id (nullable)
	ReviewID     *uint64   // user_activities.review_id (nullable)
	TargetUserID *uint64   // user_activities.target_user_id (nullable)
	CreatedAt    time.Time // user_activities.created_at
}
