package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// MovieRepo provides CRUD operations for movies and their
// relations to genres, countries and people. The derived rating
// column is never written here; only the rating service updates it,
// inside the transaction of the triggering review mutation.
type MovieRepo struct{ DB *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

const movieColumns = `id, title, original_title, description, release_date, duration_min,
       rating, poster_path, trailer_path, language, age_rating, is_featured,
       views_count, created_at, updated_at`

// MovieFilter carries the structured criteria accepted by the movie
// listing endpoint. Nil pointer fields mean "not filtered".
type MovieFilter struct {
	MinRating *float64 // rating >= value
	MaxRating *float64 // rating <= value
	MinYear   *int     // release year >= value
	MaxYear   *int     // release year <= value
	Genre     string   // genre name, exact, case-insensitive
	Director  string   // director name, substring, case-insensitive
	Actor     string   // actor name, substring, case-insensitive
	Country   string   // country name, exact, case-insensitive
	Language  string   // language code, exact
	AgeRating string   // age rating code, exact
	Featured  *bool    // is_featured flag
	Search    string   // title/description substring
	SortBy    string   // release_date|rating|created_at|views_count, optional _desc suffix
	Page      int      // 1-based page number
	PageSize  int      // rows per page
}

// buildMovieWhere translates a MovieFilter into a WHERE clause and
// its arguments. Relation filters use EXISTS subqueries so the outer
// query never duplicates movie rows.
func buildMovieWhere(f MovieFilter) (string, []interface{}) {
	conds := make([]string, 0, 8)
	args := make([]interface{}, 0, 8)
	if f.MinRating != nil {
		conds = append(conds, "m.rating >= ?")
		args = append(args, *f.MinRating)
	}
	if f.MaxRating != nil {
		conds = append(conds, "m.rating <= ?")
		args = append(args, *f.MaxRating)
	}
	if f.MinYear != nil {
		conds = append(conds, "YEAR(m.release_date) >= ?")
		args = append(args, *f.MinYear)
	}
	if f.MaxYear != nil {
		conds = append(conds, "YEAR(m.release_date) <= ?")
		args = append(args, *f.MaxYear)
	}
	if f.Genre != "" {
		conds = append(conds, `EXISTS (SELECT 1 FROM movie_genres mg
            JOIN genres g ON g.id = mg.genre_id
            WHERE mg.movie_id = m.id AND LOWER(g.name) = LOWER(?))`)
		args = append(args, f.Genre)
	}
	if f.Director != "" {
		conds = append(conds, `EXISTS (SELECT 1 FROM movie_people mp
            JOIN people p ON p.id = mp.person_id
            WHERE mp.movie_id = m.id AND mp.role = 'DIRECTOR'
              AND LOWER(p.name) LIKE CONCAT('%', LOWER(?), '%'))`)
		args = append(args, f.Director)
	}
	if f.Actor != "" {
		conds = append(conds, `EXISTS (SELECT 1 FROM movie_cast mc
            JOIN people p ON p.id = mc.person_id
            WHERE mc.movie_id = m.id
              AND LOWER(p.name) LIKE CONCAT('%', LOWER(?), '%'))`)
		args = append(args, f.Actor)
	}
	if f.Country != "" {
		conds = append(conds, `EXISTS (SELECT 1 FROM movie_countries mc2
            JOIN countries c ON c.id = mc2.country_id
            WHERE mc2.movie_id = m.id AND LOWER(c.name) = LOWER(?))`)
		args = append(args, f.Country)
	}
	if f.Language != "" {
		conds = append(conds, "m.language = ?")
		args = append(args, f.Language)
	}
	if f.AgeRating != "" {
		conds = append(conds, "m.age_rating = ?")
		args = append(args, f.AgeRating)
	}
	if f.Featured != nil {
		conds = append(conds, "m.is_featured = ?")
		args = append(args, *f.Featured)
	}
	if f.Search != "" {
		conds = append(conds, "(LOWER(m.title) LIKE CONCAT('%', LOWER(?), '%') OR LOWER(m.description) LIKE CONCAT('%', LOWER(?), '%'))")
		args = append(args, f.Search, f.Search)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// movieOrderBy maps a sort key to an ORDER BY clause. Unknown keys
// fall back to newest-first so client input can never inject SQL.
func movieOrderBy(sortBy string) string {
	col := strings.TrimSuffix(sortBy, "_desc")
	desc := strings.HasSuffix(sortBy, "_desc")
	switch col {
	case "release_date", "rating", "created_at", "views_count":
	default:
		return "m.created_at DESC"
	}
	if desc {
		return "m." + col + " DESC"
	}
	return "m." + col + " ASC"
}

// List returns a page of movies matching the filter plus the total
// number of matches.
func (r *MovieRepo) List(ctx context.Context, f MovieFilter) ([]model.Movie, int, error) {
	where, args := buildMovieWhere(f)

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies m"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.Movie{}, 0, nil
	}

	query := "SELECT " + prefixColumns("m", movieColumns) + " FROM movies m" + where +
		" ORDER BY " + movieOrderBy(f.SortBy) +
		fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (f.Page-1)*f.PageSize)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	movies := make([]model.Movie, 0, f.PageSize)
	for rows.Next() {
		var m model.Movie
		if err := scanMovie(rows, &m); err != nil {
			return nil, 0, err
		}
		movies = append(movies, m)
	}
	return movies, total, rows.Err()
}

// prefixColumns qualifies each column in a comma-separated list with
// a table alias.
func prefixColumns(alias, cols string) string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// rowScanner lets scanMovie work with both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row rowScanner, m *model.Movie) error {
	return row.Scan(&m.ID, &m.Title, &m.OriginalTitle, &m.Description, &m.ReleaseDate,
		&m.DurationMin, &m.Rating, &m.PosterPath, &m.TrailerPath, &m.Language,
		&m.AgeRating, &m.IsFeatured, &m.ViewsCount, &m.CreatedAt, &m.UpdatedAt)
}

// GetByID returns a single movie or ErrMovieNotFound.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	var m model.Movie
	err := scanMovie(r.DB.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE id=? LIMIT 1", id), &m)
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrMovieNotFound
	}
	return m, err
}

// Exists reports whether a movie with the given id exists.
func (r *MovieRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM movies WHERE id=? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a movie and returns its ID. The rating column
// starts at 0 and is owned by the rating service from then on.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO movies (title, original_title, description, release_date, duration_min,
             rating, poster_path, trailer_path, language, age_rating, is_featured)
         VALUES (?,?,?,?,?,0,?,?,?,?,?)`,
		m.Title, m.OriginalTitle, m.Description, m.ReleaseDate, m.DurationMin,
		m.PosterPath, m.TrailerPath, m.Language, m.AgeRating, m.IsFeatured)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	m.ID = uint64(id)
	return m.ID, nil
}

// Update rewrites the client-writable columns of a movie. The rating
// and views_count columns are deliberately excluded.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE movies SET title=?, original_title=?, description=?, release_date=?,
             duration_min=?, poster_path=?, trailer_path=?, language=?, age_rating=?,
             is_featured=? WHERE id=?`,
		m.Title, m.OriginalTitle, m.Description, m.ReleaseDate, m.DurationMin,
		m.PosterPath, m.TrailerPath, m.Language, m.AgeRating, m.IsFeatured, m.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// Delete removes a movie. Dependent rows (reviews, relations, list
// entries) cascade via foreign keys.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM movies WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// IncrementViews bumps the view counter for a movie detail request.
func (r *MovieRepo) IncrementViews(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE movies SET views_count = views_count + 1 WHERE id=?", id)
	return err
}

// SetPosterPath stores the storage reference of an uploaded poster.
func (r *MovieRepo) SetPosterPath(ctx context.Context, id uint64, path string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE movies SET poster_path=? WHERE id=?", path, id)
	return err
}

// SetTrailerPath stores the storage reference of an uploaded trailer.
func (r *MovieRepo) SetTrailerPath(ctx context.Context, id uint64, path string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE movies SET trailer_path=? WHERE id=?", path, id)
	return err
}
