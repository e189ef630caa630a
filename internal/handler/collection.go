package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// CollectionHandler bundles dependencies for collection endpoints.
// Collections are user-owned: the owner is stamped from the
// authenticated actor on create and all writes require ownership (or
// staff). Private collections are invisible to other users' lists
// but answer 403, not 404, on direct access.
type CollectionHandler struct {
	Collections *repository.CollectionRepo
	Movies      *repository.MovieRepo
}

func NewCollectionHandler(col *repository.CollectionRepo, m *repository.MovieRepo) *CollectionHandler {
	return &CollectionHandler{Collections: col, Movies: m}
}

type collectionReq struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
	IsPublic    bool   `json:"is_public"`
}

type collectionResp struct {
	ID          uint64    `json:"id"`
	OwnerID     uint64    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCollectionResp(c model.Collection) collectionResp {
	return collectionResp{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		Name:        c.Name,
		Description: c.Description,
		IsPublic:    c.IsPublic,
		CreatedAt:   c.CreatedAt,
	}
}

// Create makes a new collection owned by the caller.
func (h *CollectionHandler) Create(c echo.Context) error {
	var req collectionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	col := model.Collection{
		OwnerID:     actor(c).ID,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	if _, err := h.Collections.Create(ctx, &col); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create collection failed"})
	}
	return c.JSON(http.StatusCreated, toCollectionResp(col))
}

// List returns every collection visible to the caller: all public
// ones plus the caller's own.
func (h *CollectionHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cols, err := h.Collections.ListVisible(ctx, actor(c).ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list collections failed"})
	}
	out := make([]collectionResp, 0, len(cols))
	for _, col := range cols {
		out = append(out, toCollectionResp(col))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one collection with its movies.
func (h *CollectionHandler) Get(c echo.Context) error {
	col, errResp := h.load(c)
	if errResp != nil {
		return errResp(c)
	}
	if !service.CanViewCollection(actor(c), col) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	movies, err := h.Collections.ListMovies(ctx, col.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movies failed"})
	}
	items := make([]movieResp, 0, len(movies))
	for _, m := range movies {
		items = append(items, toMovieResp(m))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"collection": toCollectionResp(col),
		"movies":     items,
	})
}

// Update rewrites a collection's name, description and visibility.
func (h *CollectionHandler) Update(c echo.Context) error {
	col, errResp := h.load(c)
	if errResp != nil {
		return errResp(c)
	}
	if !service.CanModifyOwned(actor(c), col.OwnerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var req collectionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	col.Name = req.Name
	col.Description = req.Description
	col.IsPublic = req.IsPublic
	if err := h.Collections.Update(ctx, &col); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update collection failed"})
	}
	return c.JSON(http.StatusOK, toCollectionResp(col))
}

// Delete removes a collection.
func (h *CollectionHandler) Delete(c echo.Context) error {
	col, errResp := h.load(c)
	if errResp != nil {
		return errResp(c)
	}
	if !service.CanModifyOwned(actor(c), col.OwnerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Collections.Delete(ctx, col.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete collection failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type collectionMovieReq struct {
	MovieID uint64 `json:"movie_id" validate:"required"`
}

// AddMovie places a movie in a collection; re-adding answers 409.
func (h *CollectionHandler) AddMovie(c echo.Context) error {
	col, errResp := h.load(c)
	if errResp != nil {
		return errResp(c)
	}
	if !service.CanModifyOwned(actor(c), col.OwnerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var req collectionMovieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ok, err := h.Movies.Exists(ctx, req.MovieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}

	if err := h.Collections.AddMovie(ctx, col.ID, req.MovieID); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie already in collection"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add movie failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveMovie takes a movie out of a collection.
func (h *CollectionHandler) RemoveMovie(c echo.Context) error {
	col, errResp := h.load(c)
	if errResp != nil {
		return errResp(c)
	}
	if !service.CanModifyOwned(actor(c), col.OwnerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	movieID, err := pathID(c, "movie_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Collections.RemoveMovie(ctx, col.ID, movieID); err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not in collection"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove movie failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// load fetches the collection named by the :id path parameter. On
// failure it returns a function that writes the error response.
func (h *CollectionHandler) load(c echo.Context) (model.Collection, func(echo.Context) error) {
	id, err := pathID(c, "id")
	if err != nil {
		return model.Collection{}, func(c echo.Context) error {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid collection id"})
		}
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	col, err := h.Collections.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrCollectionNotFound {
			return model.Collection{}, func(c echo.Context) error {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "collection not found"})
			}
		}
		return model.Collection{}, func(c echo.Context) error {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load collection failed"})
		}
	}
	return col, nil
}
