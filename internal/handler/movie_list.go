package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// MovieListHandler covers the personal watchlist and the typed
// movie lists (watching, watched, favorite). Entries are keyed on
// the authenticated user; there is no way to touch another user's
// lists.
type MovieListHandler struct {
	Lists    *repository.MovieListRepo
	Movies   *repository.MovieRepo
	Recorder *service.ActivityRecorder
}

func NewMovieListHandler(l *repository.MovieListRepo, m *repository.MovieRepo, rec *service.ActivityRecorder) *MovieListHandler {
	return &MovieListHandler{Lists: l, Movies: m, Recorder: rec}
}

type listEntryReq struct {
	MovieID uint64 `json:"movie_id" validate:"required"`
}

type watchlistResp struct {
	ID      uint64    `json:"id"`
	MovieID uint64    `json:"movie_id"`
	AddedAt time.Time `json:"added_at"`
}

type listEntryResp struct {
	ID       uint64    `json:"id"`
	MovieID  uint64    `json:"movie_id"`
	ListKind string    `json:"list_kind"`
	AddedAt  time.Time `json:"added_at"`
}

// AddToWatchlist puts a movie on the caller's watchlist; duplicates
// answer 409.
func (h *MovieListHandler) AddToWatchlist(c echo.Context) error {
	var req listEntryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}
	a := actor(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	ok, err := h.Movies.Exists(ctx, req.MovieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}

	id, err := h.Lists.AddWatchlist(ctx, a.ID, req.MovieID)
	if err != nil {
		if err == repository.ErrDuplicateWatchlist {
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie already on watchlist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add to watchlist failed"})
	}

	h.Recorder.Record(ctx, a.ID, model.ActivityWatch, &req.MovieID, nil, nil)

	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// RemoveFromWatchlist takes a movie off the caller's watchlist.
func (h *MovieListHandler) RemoveFromWatchlist(c echo.Context) error {
	movieID, err := pathID(c, "movie_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Lists.RemoveWatchlist(ctx, actor(c).ID, movieID); err != nil {
		if err == repository.ErrListEntryNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not on watchlist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove from watchlist failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Watchlist returns the caller's watchlist, newest first.
func (h *MovieListHandler) Watchlist(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	entries, err := h.Lists.ListWatchlist(ctx, actor(c).ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list watchlist failed"})
	}
	out := make([]watchlistResp, 0, len(entries))
	for _, e := range entries {
		out = append(out, watchlistResp{ID: e.ID, MovieID: e.MovieID, AddedAt: e.AddedAt})
	}
	return c.JSON(http.StatusOK, out)
}

// AddListEntry puts a movie on one of the caller's typed lists. The
// list kind comes from the :kind path parameter; the same movie may
// sit on different kinds at once but only once per kind.
func (h *MovieListHandler) AddListEntry(c echo.Context) error {
	kind := strings.ToUpper(c.Param("kind"))
	if !model.ValidListKind(kind) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown list kind"})
	}
	var req listEntryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}
	a := actor(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	ok, err := h.Movies.Exists(ctx, req.MovieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}

	id, err := h.Lists.AddListEntry(ctx, a.ID, req.MovieID, kind)
	if err != nil {
		if err == repository.ErrDuplicateListEntry {
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie already on this list"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add list entry failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// RemoveListEntry deletes one typed list entry.
func (h *MovieListHandler) RemoveListEntry(c echo.Context) error {
	kind := strings.ToUpper(c.Param("kind"))
	if !model.ValidListKind(kind) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown list kind"})
	}
	movieID, err := pathID(c, "movie_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Lists.RemoveListEntry(ctx, actor(c).ID, movieID, kind); err != nil {
		if err == repository.ErrListEntryNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not on this list"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove list entry failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListEntries returns the caller's typed list entries, optionally
// filtered by kind via the ?kind= query parameter.
func (h *MovieListHandler) ListEntries(c echo.Context) error {
	kind := strings.ToUpper(c.QueryParam("kind"))
	if kind != "" && !model.ValidListKind(kind) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown list kind"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	entries, err := h.Lists.ListEntries(ctx, actor(c).ID, kind)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list entries failed"})
	}
	out := make([]listEntryResp, 0, len(entries))
	for _, e := range entries {
		out = append(out, listEntryResp{ID: e.ID, MovieID: e.MovieID, ListKind: e.ListKind, AddedAt: e.AddedAt})
	}
	return c.JSON(http.StatusOK, out)
}
