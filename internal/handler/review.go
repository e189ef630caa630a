package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// ReviewHandler bundles dependencies for review endpoints. Every
// review mutation runs in one transaction together with the rating
// recompute of the owning movie, so the stored rating can never
// drift from the review set.
type ReviewHandler struct {
	DB       *sql.DB
	Reviews  *repository.ReviewRepo
	Movies   *repository.MovieRepo
	Recorder *service.ActivityRecorder
}

func NewReviewHandler(db *sql.DB, r *repository.ReviewRepo, m *repository.MovieRepo, rec *service.ActivityRecorder) *ReviewHandler {
	return &ReviewHandler{DB: db, Reviews: r, Movies: m, Recorder: rec}
}

type reviewReq struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=10"`
	Comment string `json:"comment" validate:"max=5000"`
}

type reviewResp struct {
	ID        uint64    `json:"id"`
	MovieID   uint64    `json:"movie_id"`
	UserID    uint64    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toReviewResp(r model.Review) reviewResp {
	return reviewResp{
		ID:        r.ID,
		MovieID:   r.MovieID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Create adds a review for a movie. The author is always the
// authenticated user; a second review for the same movie by the same
// user is rejected with 409.
func (h *ReviewHandler) Create(c echo.Context) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}
	a := actor(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	ok, err := h.Movies.Exists(ctx, movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rev := model.Review{MovieID: movieID, UserID: a.ID, Rating: req.Rating, Comment: req.Comment}
	if err := h.Reviews.CreateTx(ctx, tx, &rev); err != nil {
		if err == repository.ErrDuplicateReview {
			return c.JSON(http.StatusConflict, echo.Map{"error": "you already reviewed this movie"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	if err := service.RecomputeMovieRating(ctx, tx, movieID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "recompute rating failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	h.Recorder.Record(ctx, a.ID, model.ActivityReview, &movieID, &rev.ID, nil)

	return c.JSON(http.StatusCreated, toReviewResp(rev))
}

// Update rewrites a review's rating and comment. Only the author or
// staff may update; a non-owner gets 403, never 404. The re-rating
// lands in the activity trail as RATE, distinct from the original
// REVIEW entry.
func (h *ReviewHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rev, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrReviewNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load review failed"})
	}
	if !service.CanModifyOwned(actor(c), rev.UserID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Reviews.UpdateTx(ctx, tx, id, req.Rating, req.Comment); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update review failed"})
	}
	if err := service.RecomputeMovieRating(ctx, tx, rev.MovieID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "recompute rating failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	h.Recorder.Record(ctx, actor(c).ID, model.ActivityRate, &rev.MovieID, &id, nil)

	rev.Rating = req.Rating
	rev.Comment = req.Comment
	return c.JSON(http.StatusOK, toReviewResp(rev))
}

// Delete removes a review and recomputes the movie rating without it.
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rev, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrReviewNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load review failed"})
	}
	if !service.CanModifyOwned(actor(c), rev.UserID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Reviews.DeleteTx(ctx, tx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete review failed"})
	}
	if err := service.RecomputeMovieRating(ctx, tx, rev.MovieID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "recompute rating failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.NoContent(http.StatusNoContent)
}

// ListByMovie returns a page of reviews for one movie, newest first.
func (h *ReviewHandler) ListByMovie(c echo.Context) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	page, pageSize := pagination(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	ok, err := h.Movies.Exists(ctx, movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}

	reviews, total, err := h.Reviews.ListByMovie(ctx, movieID, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reviews failed"})
	}
	return c.JSON(http.StatusOK, pagedResp{Total: total, Page: page, PageSize: pageSize, Items: toReviewResps(reviews)})
}

// ListMine returns the authenticated user's reviews, newest first.
func (h *ReviewHandler) ListMine(c echo.Context) error {
	page, pageSize := pagination(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	reviews, total, err := h.Reviews.ListByUser(ctx, actor(c).ID, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reviews failed"})
	}
	return c.JSON(http.StatusOK, pagedResp{Total: total, Page: page, PageSize: pageSize, Items: toReviewResps(reviews)})
}

func toReviewResps(reviews []model.Review) []reviewResp {
	out := make([]reviewResp, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResp(r))
	}
	return out
}
