package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/storage"
)

// MovieHandler bundles dependencies for the movie catalog endpoints.
// Catalog writes are staff-only; the router mounts them behind
// RequireRole(STAFF).
type MovieHandler struct {
	Movies  *repository.MovieRepo
	Catalog *repository.CatalogRepo
	Files   *storage.FileStore
}

func NewMovieHandler(m *repository.MovieRepo, cat *repository.CatalogRepo, fs *storage.FileStore) *MovieHandler {
	return &MovieHandler{Movies: m, Catalog: cat, Files: fs}
}

const dateLayout = "2006-01-02"

// ----- DTOs -----

type movieReq struct {
	Title         string `json:"title" validate:"required,max=255"`
	OriginalTitle string `json:"original_title" validate:"max=255"`
	Description   string `json:"description"`
	ReleaseDate   string `json:"release_date" validate:"required"`
	DurationMin   uint32 `json:"duration_min" validate:"required,min=1"`
	Language      string `json:"language" validate:"required"`
	AgeRating     string `json:"age_rating" validate:"required"`
	IsFeatured    bool   `json:"is_featured"`
}

type movieResp struct {
	ID            uint64  `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Description   string  `json:"description"`
	ReleaseDate   string  `json:"release_date"`
	DurationMin   uint32  `json:"duration_min"`
	Rating        float64 `json:"rating"`
	PosterPath    string  `json:"poster_path"`
	TrailerPath   string  `json:"trailer_path"`
	Language      string  `json:"language"`
	AgeRating     string  `json:"age_rating"`
	IsFeatured    bool    `json:"is_featured"`
	ViewsCount    uint64  `json:"views_count"`
}

func toMovieResp(m model.Movie) movieResp {
	return movieResp{
		ID:            m.ID,
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		Description:   m.Description,
		ReleaseDate:   m.ReleaseDate.Format(dateLayout),
		DurationMin:   m.DurationMin,
		Rating:        m.Rating,
		PosterPath:    m.PosterPath,
		TrailerPath:   m.TrailerPath,
		Language:      m.Language,
		AgeRating:     m.AgeRating,
		IsFeatured:    m.IsFeatured,
		ViewsCount:    m.ViewsCount,
	}
}

func (r movieReq) toModel() (model.Movie, error) {
	rel, err := time.Parse(dateLayout, r.ReleaseDate)
	if err != nil {
		return model.Movie{}, err
	}
	return model.Movie{
		Title:         r.Title,
		OriginalTitle: r.OriginalTitle,
		Description:   r.Description,
		ReleaseDate:   rel,
		DurationMin:   r.DurationMin,
		Language:      r.Language,
		AgeRating:     r.AgeRating,
		IsFeatured:    r.IsFeatured,
	}, nil
}

// parseMovieFilter translates list query parameters into a
// MovieFilter. Malformed numeric values are ignored rather than
// rejected, matching how browsing UIs retry with partial input.
func parseMovieFilter(c echo.Context) repository.MovieFilter {
	var f repository.MovieFilter
	if v, err := strconv.ParseFloat(c.QueryParam("min_rating"), 64); err == nil {
		f.MinRating = &v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("max_rating"), 64); err == nil {
		f.MaxRating = &v
	}
	if v, err := strconv.Atoi(c.QueryParam("min_year")); err == nil {
		f.MinYear = &v
	}
	if v, err := strconv.Atoi(c.QueryParam("max_year")); err == nil {
		f.MaxYear = &v
	}
	if v := c.QueryParam("featured"); v != "" {
		b := v == "true" || v == "1"
		f.Featured = &b
	}
	f.Genre = c.QueryParam("genre")
	f.Director = c.QueryParam("director")
	f.Actor = c.QueryParam("actor")
	f.Country = c.QueryParam("country")
	f.Language = c.QueryParam("language")
	f.AgeRating = c.QueryParam("age_rating")
	f.Search = c.QueryParam("search")
	f.SortBy = c.QueryParam("sort_by")
	f.Page, f.PageSize = pagination(c)
	return f
}

// List returns a filtered, sorted, paginated page of movies.
func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	f := parseMovieFilter(c)
	movies, total, err := h.Movies.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list movies failed"})
	}
	items := make([]movieResp, 0, len(movies))
	for _, m := range movies {
		items = append(items, toMovieResp(m))
	}
	return c.JSON(http.StatusOK, pagedResp{Total: total, Page: f.Page, PageSize: f.PageSize, Items: items})
}

// Get returns one movie with its relations and bumps the view
// counter. The counter bump is best-effort; a failed UPDATE must not
// hide the movie.
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}
	if err := h.Movies.IncrementViews(ctx, id); err != nil {
		log.Printf("movie: increment views for %d failed: %v", id, err)
	} else {
		m.ViewsCount++
	}

	genres, err := h.Movies.GetGenres(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load relations failed"})
	}
	countries, err := h.Movies.GetCountries(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load relations failed"})
	}
	directors, err := h.Movies.GetPeople(ctx, id, model.PersonRoleDirector)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load relations failed"})
	}
	cast, err := h.Movies.GetCast(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load relations failed"})
	}
	awards, err := h.Catalog.ListMovieAwards(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load relations failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"movie":     toMovieResp(m),
		"genres":    genreRefs(genres),
		"countries": countryRefs(countries),
		"directors": personRefs(directors),
		"cast":      cast,
		"awards":    movieAwardResps(awards),
	})
}

// nameRef is the compact {id, name} shape used for reference data in
// detail responses.
type nameRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func genreRefs(genres []model.Genre) []nameRef {
	refs := make([]nameRef, 0, len(genres))
	for _, g := range genres {
		refs = append(refs, nameRef{ID: g.ID, Name: g.Name})
	}
	return refs
}

func countryRefs(countries []model.Country) []nameRef {
	refs := make([]nameRef, 0, len(countries))
	for _, c := range countries {
		refs = append(refs, nameRef{ID: c.ID, Name: c.Name})
	}
	return refs
}

func personRefs(people []model.Person) []nameRef {
	refs := make([]nameRef, 0, len(people))
	for _, p := range people {
		refs = append(refs, nameRef{ID: p.ID, Name: p.Name})
	}
	return refs
}

type movieAwardResp struct {
	ID       uint64 `json:"id"`
	AwardID  uint64 `json:"award_id"`
	Year     uint16 `json:"year"`
	Category string `json:"category"`
	Winner   bool   `json:"winner"`
}

func movieAwardResps(list []model.MovieAward) []movieAwardResp {
	out := make([]movieAwardResp, 0, len(list))
	for _, ma := range list {
		out = append(out, movieAwardResp{ID: ma.ID, AwardID: ma.AwardID, Year: ma.Year, Category: ma.Category, Winner: ma.Winner})
	}
	return out
}

// Create adds a movie to the catalog and publishes a movie.published
// event. The publish is fire-and-forget: a broker outage never fails
// the create.
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}
	if !model.ValidLanguage(req.Language) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown language code"})
	}
	if !model.ValidAgeRating(req.AgeRating) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown age rating"})
	}
	m, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "release_date must be YYYY-MM-DD"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Movies.Create(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}

	_ = queue.PublishMoviePublished(ctx, queue.MoviePublishedEvent{
		MovieID:     m.ID,
		Title:       m.Title,
		Language:    m.Language,
		AgeRating:   m.AgeRating,
		ReleaseDate: m.ReleaseDate.Format(dateLayout),
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, toMovieResp(m))
}

// Update rewrites a movie's client-writable fields. Rating and view
// count are derived and cannot be set here.
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}
	if !model.ValidLanguage(req.Language) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown language code"})
	}
	if !model.ValidAgeRating(req.AgeRating) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown age rating"})
	}
	m, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "release_date must be YYYY-MM-DD"})
	}
	m.ID = id

	ctx, cancel := reqCtx(c)
	defer cancel()

	// Preserve the stored media paths; they only change via upload.
	cur, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}
	m.PosterPath = cur.PosterPath
	m.TrailerPath = cur.TrailerPath

	if err := h.Movies.Update(ctx, &m); err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}
	m.Rating = cur.Rating
	m.ViewsCount = cur.ViewsCount
	return c.JSON(http.StatusOK, toMovieResp(m))
}

// Delete removes a movie and its dependent rows.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Movies.Delete(ctx, id); err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- relation writes -----

type idsReq struct {
	IDs []uint64 `json:"ids" validate:"required"`
}

// SetGenres replaces the genre set of a movie.
func (h *MovieHandler) SetGenres(c echo.Context) error {
	return h.setRelation(c, h.Movies.ReplaceGenres, repository.ErrGenreNotFound, "unknown genre id")
}

// SetCountries replaces the country set of a movie.
func (h *MovieHandler) SetCountries(c echo.Context) error {
	return h.setRelation(c, h.Movies.ReplaceCountries, repository.ErrCountryNotFound, "unknown country id")
}

func (h *MovieHandler) setRelation(c echo.Context, replace func(context.Context, uint64, []uint64) error, notFound error, notFoundMsg string) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req idsReq
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

	if err := replace(ctx, movieID, req.IDs); err != nil {
		if err == notFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": notFoundMsg})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update relations failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// SetPeople replaces the credits of one role (director, writer or
// producer) on a movie.
func (h *MovieHandler) SetPeople(c echo.Context) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	role := strings.ToUpper(c.Param("role"))
	if !model.ValidPersonRole(role) || role == model.PersonRoleActor {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be director, writer or producer"})
	}
	var req idsReq
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

	if err := h.Movies.ReplacePeople(ctx, movieID, role, req.IDs); err != nil {
		if err == repository.ErrPersonRoleMismatch {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "person missing or role mismatch"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update credits failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type castReq struct {
	Cast []castEntryReq `json:"cast" validate:"required,dive"`
}
type castEntryReq struct {
	PersonID        uint64 `json:"person_id" validate:"required"`
	CharacterName   string `json:"character_name" validate:"required,max=255"`
	IsMainCharacter bool   `json:"is_main_character"`
}

// SetCast replaces the acting credits of a movie.
func (h *MovieHandler) SetCast(c echo.Context) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req castReq
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

	cast := make([]model.MovieCast, 0, len(req.Cast))
	for _, e := range req.Cast {
		cast = append(cast, model.MovieCast{
			PersonID:        e.PersonID,
			CharacterName:   e.CharacterName,
			IsMainCharacter: e.IsMainCharacter,
		})
	}
	if err := h.Movies.ReplaceCast(ctx, movieID, cast); err != nil {
		if err == repository.ErrPersonRoleMismatch {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "person missing or not an actor"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update cast failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- uploads -----

// UploadPoster validates and stores a poster image for a movie.
func (h *MovieHandler) UploadPoster(c echo.Context) error {
	return h.upload(c, storage.KindPoster, h.Movies.SetPosterPath)
}

// UploadTrailer validates and stores a trailer video for a movie.
func (h *MovieHandler) UploadTrailer(c echo.Context) error {
	return h.upload(c, storage.KindTrailer, h.Movies.SetTrailerPath)
}

func (h *MovieHandler) upload(c echo.Context, kind storage.Kind, persist func(ctx context.Context, id uint64, path string) error) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file field required"})
	}
	if err := storage.Validate(kind, fh.Filename, fh.Size); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
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

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read upload failed"})
	}
	defer src.Close()

	path, err := h.Files.Save(kind, fh.Filename, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store upload failed"})
	}
	if err := persist(ctx, movieID, path); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save path failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"path": path})
}
