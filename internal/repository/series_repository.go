package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// SeriesRepo covers the episodic tables: movie_seasons,
// movie_episodes and subtitles. Position uniqueness — one season per
// (movie, season_number), one episode per (season, episode_number),
// one subtitle per (movie, language) — is enforced by unique keys
// and surfaced as ErrDuplicate* sentinels.
type SeriesRepo struct{ DB *sql.DB }

func NewSeriesRepo(db *sql.DB) *SeriesRepo { return &SeriesRepo{DB: db} }

// CreateSeason inserts a season. A duplicate (movie, season_number)
// maps to ErrDuplicateSeason.
func (r *SeriesRepo) CreateSeason(ctx context.Context, s *model.MovieSeason) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO movie_seasons (movie_id, season_number, title, description, release_date) VALUES (?,?,?,?,?)",
		s.MovieID, s.SeasonNumber, s.Title, s.Description, s.ReleaseDate)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateSeason
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetSeason returns a single season or ErrSeasonNotFound.
func (r *SeriesRepo) GetSeason(ctx context.Context, id uint64) (model.MovieSeason, error) {
	var s model.MovieSeason
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, movie_id, season_number, title, description, release_date FROM movie_seasons WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.MovieID, &s.SeasonNumber, &s.Title, &s.Description, &s.ReleaseDate)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrSeasonNotFound
	}
	return s, err
}

// ListSeasons returns a movie's seasons in season order.
func (r *SeriesRepo) ListSeasons(ctx context.Context, movieID uint64) ([]model.MovieSeason, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, movie_id, season_number, title, description, release_date FROM movie_seasons WHERE movie_id=? ORDER BY season_number",
		movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seasons := make([]model.MovieSeason, 0)
	for rows.Next() {
		var s model.MovieSeason
		if err := rows.Scan(&s.ID, &s.MovieID, &s.SeasonNumber, &s.Title, &s.Description, &s.ReleaseDate); err != nil {
			return nil, err
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

// DeleteSeason removes a season and, via foreign keys, its episodes.
func (r *SeriesRepo) DeleteSeason(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM movie_seasons WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res, ErrSeasonNotFound)
}

// CreateEpisode inserts an episode. A duplicate (season,
// episode_number) maps to ErrDuplicateEpisode.
func (r *SeriesRepo) CreateEpisode(ctx context.Context, e *model.MovieEpisode) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO movie_episodes (season_id, episode_number, title, description, duration_min, video_path, air_date) VALUES (?,?,?,?,?,?,?)",
		e.SeasonID, e.EpisodeNumber, e.Title, e.Description, e.DurationMin, e.VideoPath, e.AirDate)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateEpisode
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// ListEpisodes returns a season's episodes in episode order.
func (r *SeriesRepo) ListEpisodes(ctx context.Context, seasonID uint64) ([]model.MovieEpisode, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, season_id, episode_number, title, description, duration_min, video_path, air_date FROM movie_episodes WHERE season_id=? ORDER BY episode_number",
		seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	episodes := make([]model.MovieEpisode, 0)
	for rows.Next() {
		var e model.MovieEpisode
		if err := rows.Scan(&e.ID, &e.SeasonID, &e.EpisodeNumber, &e.Title, &e.Description, &e.DurationMin, &e.VideoPath, &e.AirDate); err != nil {
			return nil, err
		}
		episodes = append(episodes, e)
	}
	return episodes, rows.Err()
}

// SetEpisodeVideo stores the storage reference of an uploaded
// episode video.
func (r *SeriesRepo) SetEpisodeVideo(ctx context.Context, id uint64, path string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE movie_episodes SET video_path=? WHERE id=?", path, id)
	if err != nil {
		return err
	}
	return requireRow(res, ErrEpisodeNotFound)
}

// DeleteEpisode removes an episode.
func (r *SeriesRepo) DeleteEpisode(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM movie_episodes WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res, ErrEpisodeNotFound)
}

// CreateSubtitle inserts a subtitle. A duplicate (movie, language)
// maps to ErrDuplicateSubtitle.
func (r *SeriesRepo) CreateSubtitle(ctx context.Context, s *model.Subtitle) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO subtitles (movie_id, language, file_path) VALUES (?,?,?)",
		s.MovieID, s.Language, s.FilePath)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateSubtitle
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// ListSubtitles returns a movie's subtitles ordered by language.
func (r *SeriesRepo) ListSubtitles(ctx context.Context, movieID uint64) ([]model.Subtitle, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, movie_id, language, file_path FROM subtitles WHERE movie_id=? ORDER BY language",
		movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	subs := make([]model.Subtitle, 0)
	for rows.Next() {
		var s model.Subtitle
		if err := rows.Scan(&s.ID, &s.MovieID, &s.Language, &s.FilePath); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// DeleteSubtitle removes a subtitle.
func (r *SeriesRepo) DeleteSubtitle(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM subtitles WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res, ErrSubtitleNotFound)
}
