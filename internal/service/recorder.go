package service

import (
	"context"
	"log"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// ActivityRecorder appends rows to the activity trail as a side
// effect of successful mutations. Recording is best-effort: a failed
// insert is logged and swallowed so it can never fail the request
// whose outcome it describes.
type ActivityRecorder struct {
	Activities *repository.ActivityRepo
}

func NewActivityRecorder(activities *repository.ActivityRepo) *ActivityRecorder {
	return &ActivityRecorder{Activities: activities}
}

// Record appends one activity. Optional references may be nil.
func (r *ActivityRecorder) Record(ctx context.Context, userID uint64, kind string, movieID, reviewID, targetUserID *uint64) {
	a := model.UserActivity{
		UserID:       userID,
		ActivityKind: kind,
		MovieID:      movieID,
		ReviewID:     reviewID,
		TargetUserID: targetUserID,
	}
	if err := r.Activities.Insert(ctx, &a); err != nil {
		log.Printf("activity: record %s for user %d failed: %v", kind, userID, err)
	}
}
