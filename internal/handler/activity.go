package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// ActivityHandler exposes the caller's own activity trail. The trail
// is append-only; there are no mutation endpoints.
type ActivityHandler struct {
	Activities *repository.ActivityRepo
}

func NewActivityHandler(a *repository.ActivityRepo) *ActivityHandler {
	return &ActivityHandler{Activities: a}
}

type activityResp struct {
	ID           uint64    `json:"id"`
	ActivityKind string    `json:"activity_kind"`
	MovieID      *uint64   `json:"movie_id,omitempty"`
	ReviewID     *uint64   `json:"review_id,omitempty"`
	TargetUserID *uint64   `json:"target_user_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toActivityResp(a model.UserActivity) activityResp {
	return activityResp{
		ID:           a.ID,
		ActivityKind: a.ActivityKind,
		MovieID:      a.MovieID,
		ReviewID:     a.ReviewID,
		TargetUserID: a.TargetUserID,
		CreatedAt:    a.CreatedAt,
	}
}

// ListMine returns a page of the caller's activities, newest first.
func (h *ActivityHandler) ListMine(c echo.Context) error {
	page, pageSize := pagination(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	activities, total, err := h.Activities.ListByUser(ctx, actor(c).ID, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list activities failed"})
	}
	items := make([]activityResp, 0, len(activities))
	for _, a := range activities {
		items = append(items, toActivityResp(a))
	}
	return c.JSON(http.StatusOK, pagedResp{Total: total, Page: page, PageSize: pageSize, Items: items})
}
