package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// CatalogHandler covers the reference-data tables: genres, countries
// and awards. Reads are public; writes are staff-only via the router.
// Duplicate names answer 409 since the tables carry unique keys.
type CatalogHandler struct {
	Catalog *repository.CatalogRepo
	Movies  *repository.MovieRepo
}

func NewCatalogHandler(cat *repository.CatalogRepo, m *repository.MovieRepo) *CatalogHandler {
	return &CatalogHandler{Catalog: cat, Movies: m}
}

type nameReq struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ----- genres -----

func (h *CatalogHandler) ListGenres(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	genres, err := h.Catalog.ListGenres(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list genres failed"})
	}
	return c.JSON(http.StatusOK, genreRefs(genres))
}

func (h *CatalogHandler) CreateGenre(c echo.Context) error {
	var req nameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	id, err := h.Catalog.CreateGenre(ctx, req.Name)
	if err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create genre failed"})
	}
	return c.JSON(http.StatusCreated, nameRef{ID: id, Name: req.Name})
}

func (h *CatalogHandler) UpdateGenre(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
	}
	var req nameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Catalog.UpdateGenre(ctx, id, req.Name); err != nil {
		switch err {
		case repository.ErrGenreNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update genre failed"})
	}
	return c.JSON(http.StatusOK, nameRef{ID: id, Name: req.Name})
}

func (h *CatalogHandler) DeleteGenre(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Catalog.DeleteGenre(ctx, id); err != nil {
		if err == repository.ErrGenreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete genre failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- countries -----

func (h *CatalogHandler) ListCountries(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	countries, err := h.Catalog.ListCountries(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list countries failed"})
	}
	return c.JSON(http.StatusOK, countryRefs(countries))
}

func (h *CatalogHandler) CreateCountry(c echo.Context) error {
	var req nameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	id, err := h.Catalog.CreateCountry(ctx, req.Name)
	if err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "country already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create country failed"})
	}
	return c.JSON(http.StatusCreated, nameRef{ID: id, Name: req.Name})
}

func (h *CatalogHandler) UpdateCountry(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid country id"})
	}
	var req nameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Catalog.UpdateCountry(ctx, id, req.Name); err != nil {
		switch err {
		case repository.ErrCountryNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "country not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "country already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update country failed"})
	}
	return c.JSON(http.StatusOK, nameRef{ID: id, Name: req.Name})
}

func (h *CatalogHandler) DeleteCountry(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid country id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Catalog.DeleteCountry(ctx, id); err != nil {
		if err == repository.ErrCountryNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "country not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete country failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- awards -----

type awardReq struct {
	Name         string `json:"name" validate:"required,max=255"`
	Organization string `json:"organization" validate:"max=255"`
	Description  string `json:"description" validate:"max=2000"`
}

type awardResp struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Description  string `json:"description"`
}

func (h *CatalogHandler) ListAwards(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	awards, err := h.Catalog.ListAwards(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list awards failed"})
	}
	out := make([]awardResp, 0, len(awards))
	for _, a := range awards {
		out = append(out, awardResp{ID: a.ID, Name: a.Name, Organization: a.Organization, Description: a.Description})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) CreateAward(c echo.Context) error {
	var req awardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	a := model.Award{Name: req.Name, Organization: req.Organization, Description: req.Description}
	id, err := h.Catalog.CreateAward(ctx, &a)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create award failed"})
	}
	return c.JSON(http.StatusCreated, awardResp{ID: id, Name: a.Name, Organization: a.Organization, Description: a.Description})
}

func (h *CatalogHandler) UpdateAward(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid award id"})
	}
	var req awardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	a := model.Award{ID: id, Name: req.Name, Organization: req.Organization, Description: req.Description}
	if err := h.Catalog.UpdateAward(ctx, &a); err != nil {
		if err == repository.ErrAwardNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "award not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update award failed"})
	}
	return c.JSON(http.StatusOK, awardResp{ID: id, Name: a.Name, Organization: a.Organization, Description: a.Description})
}

func (h *CatalogHandler) DeleteAward(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid award id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Catalog.DeleteAward(ctx, id); err != nil {
		if err == repository.ErrAwardNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "award not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete award failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- movie awards -----

type movieAwardReq struct {
	AwardID  uint64 `json:"award_id" validate:"required"`
	Year     uint16 `json:"year" validate:"required,min=1900,max=2100"`
	Category string `json:"category" validate:"required,max=255"`
	Winner   bool   `json:"winner"`
}

// AddMovieAward records a nomination or win for a movie.
func (h *CatalogHandler) AddMovieAward(c echo.Context) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieAwardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ok, err := h.Movies.Exists(ctx, movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}
	if _, err := h.Catalog.GetAward(ctx, req.AwardID); err != nil {
		if err == repository.ErrAwardNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "award not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load award failed"})
	}

	ma := model.MovieAward{MovieID: movieID, AwardID: req.AwardID, Year: req.Year, Category: req.Category, Winner: req.Winner}
	id, err := h.Catalog.AddMovieAward(ctx, &ma)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add movie award failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}
