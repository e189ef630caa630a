package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/storage"
)

// SeriesHandler covers seasons, episodes and subtitles of episodic
// titles. Reads are public; writes are staff-only via the router.
// Duplicate positions (season number, episode number, subtitle
// language) answer 409.
type SeriesHandler struct {
	Series *repository.SeriesRepo
	Movies *repository.MovieRepo
	Files  *storage.FileStore
}

func NewSeriesHandler(s *repository.SeriesRepo, m *repository.MovieRepo, fs *storage.FileStore) *SeriesHandler {
	return &SeriesHandler{Series: s, Movies: m, Files: fs}
}

// ----- seasons -----

type seasonReq struct {
	SeasonNumber uint32 `json:"season_number" validate:"required,min=1"`
	Title        string `json:"title" validate:"max=255"`
	Description  string `json:"description" validate:"max=5000"`
	ReleaseDate  string `json:"release_date" validate:"required"`
}

type seasonResp struct {
	ID           uint64 `json:"id"`
	MovieID      uint64 `json:"movie_id"`
	SeasonNumber uint32 `json:"season_number"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ReleaseDate  string `json:"release_date"`
}

func toSeasonResp(s model.MovieSeason) seasonResp {
	return seasonResp{
		ID:           s.ID,
		MovieID:      s.MovieID,
		SeasonNumber: s.SeasonNumber,
		Title:        s.Title,
		Description:  s.Description,
		ReleaseDate:  s.ReleaseDate.Format(dateLayout),
	}
}

// CreateSeason adds a season to a movie.
func (h *SeriesHandler) CreateSeason(c echo.Context) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req seasonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}
	rel, err := time.Parse(dateLayout, req.ReleaseDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "release_date must be YYYY-MM-DD"})
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

	s := model.MovieSeason{
		MovieID:      movieID,
		SeasonNumber: req.SeasonNumber,
		Title:        req.Title,
		Description:  req.Description,
		ReleaseDate:  rel,
	}
	if err := h.Series.CreateSeason(ctx, &s); err != nil {
		if err == repository.ErrDuplicateSeason {
			return c.JSON(http.StatusConflict, echo.Map{"error": "season number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create season failed"})
	}
	return c.JSON(http.StatusCreated, toSeasonResp(s))
}

// ListSeasons returns a movie's seasons in season order.
func (h *SeriesHandler) ListSeasons(c echo.Context) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
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

	seasons, err := h.Series.ListSeasons(ctx, movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list seasons failed"})
	}
	out := make([]seasonResp, 0, len(seasons))
	for _, s := range seasons {
		out = append(out, toSeasonResp(s))
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteSeason removes a season and its episodes.
func (h *SeriesHandler) DeleteSeason(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid season id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Series.DeleteSeason(ctx, id); err != nil {
		if err == repository.ErrSeasonNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "season not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete season failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- episodes -----

type episodeReq struct {
	EpisodeNumber uint32 `json:"episode_number" validate:"required,min=1"`
	Title         string `json:"title" validate:"required,max=255"`
	Description   string `json:"description" validate:"max=5000"`
	DurationMin   uint32 `json:"duration_min" validate:"required,min=1"`
	AirDate       string `json:"air_date" validate:"required"`
}

type episodeResp struct {
	ID            uint64 `json:"id"`
	SeasonID      uint64 `json:"season_id"`
	EpisodeNumber uint32 `json:"episode_number"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	DurationMin   uint32 `json:"duration_min"`
	VideoPath     string `json:"video_path"`
	AirDate       string `json:"air_date"`
}

func toEpisodeResp(e model.MovieEpisode) episodeResp {
	return episodeResp{
		ID:            e.ID,
		SeasonID:      e.SeasonID,
		EpisodeNumber: e.EpisodeNumber,
		Title:         e.Title,
		Description:   e.Description,
		DurationMin:   e.DurationMin,
		VideoPath:     e.VideoPath,
		AirDate:       e.AirDate.Format(dateLayout),
	}
}

// CreateEpisode adds an episode to a season.
func (h *SeriesHandler) CreateEpisode(c echo.Context) error {
	seasonID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid season id"})
	}
	var req episodeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}
	air, err := time.Parse(dateLayout, req.AirDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "air_date must be YYYY-MM-DD"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Series.GetSeason(ctx, seasonID); err != nil {
		if err == repository.ErrSeasonNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "season not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load season failed"})
	}

	e := model.MovieEpisode{
		SeasonID:      seasonID,
		EpisodeNumber: req.EpisodeNumber,
		Title:         req.Title,
		Description:   req.Description,
		DurationMin:   req.DurationMin,
		AirDate:       air,
	}
	if err := h.Series.CreateEpisode(ctx, &e); err != nil {
		if err == repository.ErrDuplicateEpisode {
			return c.JSON(http.StatusConflict, echo.Map{"error": "episode number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create episode failed"})
	}
	return c.JSON(http.StatusCreated, toEpisodeResp(e))
}

// ListEpisodes returns a season's episodes in episode order.
func (h *SeriesHandler) ListEpisodes(c echo.Context) error {
	seasonID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid season id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Series.GetSeason(ctx, seasonID); err != nil {
		if err == repository.ErrSeasonNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "season not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load season failed"})
	}

	episodes, err := h.Series.ListEpisodes(ctx, seasonID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list episodes failed"})
	}
	out := make([]episodeResp, 0, len(episodes))
	for _, e := range episodes {
		out = append(out, toEpisodeResp(e))
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteEpisode removes an episode.
func (h *SeriesHandler) DeleteEpisode(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid episode id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Series.DeleteEpisode(ctx, id); err != nil {
		if err == repository.ErrEpisodeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "episode not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete episode failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- subtitles -----

type subtitleResp struct {
	ID       uint64 `json:"id"`
	MovieID  uint64 `json:"movie_id"`
	Language string `json:"language"`
	FilePath string `json:"file_path"`
}

// UploadSubtitle stores a subtitle file for a movie. The language
// comes from the form; one subtitle per (movie, language).
func (h *SeriesHandler) UploadSubtitle(c echo.Context) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	language := strings.ToUpper(strings.TrimSpace(c.FormValue("language")))
	if !model.ValidLanguage(language) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown language code"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file field required"})
	}
	if err := storage.Validate(storage.KindSubtitle, fh.Filename, fh.Size); err != nil {
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

	path, err := h.Files.Save(storage.KindSubtitle, fh.Filename, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store upload failed"})
	}

	s := model.Subtitle{MovieID: movieID, Language: language, FilePath: path}
	if err := h.Series.CreateSubtitle(ctx, &s); err != nil {
		if err == repository.ErrDuplicateSubtitle {
			return c.JSON(http.StatusConflict, echo.Map{"error": "subtitle for this language already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create subtitle failed"})
	}
	return c.JSON(http.StatusCreated, subtitleResp{ID: s.ID, MovieID: s.MovieID, Language: s.Language, FilePath: s.FilePath})
}

// ListSubtitles returns a movie's subtitles.
func (h *SeriesHandler) ListSubtitles(c echo.Context) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
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

	subs, err := h.Series.ListSubtitles(ctx, movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list subtitles failed"})
	}
	out := make([]subtitleResp, 0, len(subs))
	for _, s := range subs {
		out = append(out, subtitleResp{ID: s.ID, MovieID: s.MovieID, Language: s.Language, FilePath: s.FilePath})
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteSubtitle removes a subtitle.
func (h *SeriesHandler) DeleteSubtitle(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid subtitle id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Series.DeleteSubtitle(ctx, id); err != nil {
		if err == repository.ErrSubtitleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subtitle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete subtitle failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadEpisodeVideo validates and stores the video file of an
// episode.
func (h *SeriesHandler) UploadEpisodeVideo(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid episode id"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file field required"})
	}
	if err := storage.Validate(storage.KindEpisode, fh.Filename, fh.Size); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read upload failed"})
	}
	defer src.Close()

	path, err := h.Files.Save(storage.KindEpisode, fh.Filename, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store upload failed"})
	}
	if err := h.Series.SetEpisodeVideo(ctx, id, path); err != nil {
		if err == repository.ErrEpisodeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "episode not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save path failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"path": path})
}
