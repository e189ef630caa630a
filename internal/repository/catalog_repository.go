package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// CatalogRepo covers the small reference-data tables owned by the
// system: genres, countries and awards. All writes behind these
// methods are staff-only, enforced at the handler layer by the
// authorization gate.
type CatalogRepo struct{ DB *sql.DB }

func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{DB: db} }

// ----- genres -----

func (r *CatalogRepo) ListGenres(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM genres ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	genres := make([]model.Genre, 0)
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func (r *CatalogRepo) GetGenre(ctx context.Context, id uint64) (model.Genre, error) {
	var g model.Genre
	err := r.DB.QueryRowContext(ctx, "SELECT id, name FROM genres WHERE id=? LIMIT 1", id).
		Scan(&g.ID, &g.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return g, ErrGenreNotFound
	}
	return g, err
}

func (r *CatalogRepo) CreateGenre(ctx context.Context, name string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO genres (name) VALUES (?)", normalizeName(name))
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

func (r *CatalogRepo) UpdateGenre(ctx context.Context, id uint64, name string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE genres SET name=? WHERE id=?", normalizeName(name), id)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	return requireRow(res, ErrGenreNotFound)
}

func (r *CatalogRepo) DeleteGenre(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM genres WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res, ErrGenreNotFound)
}

// ----- countries -----

func (r *CatalogRepo) ListCountries(ctx context.Context) ([]model.Country, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM countries ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	countries := make([]model.Country, 0)
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (r *CatalogRepo) GetCountry(ctx context.Context, id uint64) (model.Country, error) {
	var c model.Country
	err := r.DB.QueryRowContext(ctx, "SELECT id, name FROM countries WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrCountryNotFound
	}
	return c, err
}

func (r *CatalogRepo) CreateCountry(ctx context.Context, name string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO countries (name) VALUES (?)", normalizeName(name))
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

func (r *CatalogRepo) UpdateCountry(ctx context.Context, id uint64, name string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE countries SET name=? WHERE id=?", normalizeName(name), id)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	return requireRow(res, ErrCountryNotFound)
}

func (r *CatalogRepo) DeleteCountry(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM countries WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res, ErrCountryNotFound)
}

// ----- awards -----

func (r *CatalogRepo) ListAwards(ctx context.Context) ([]model.Award, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, organization, description FROM awards ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	awards := make([]model.Award, 0)
	for rows.Next() {
		var a model.Award
		if err := rows.Scan(&a.ID, &a.Name, &a.Organization, &a.Description); err != nil {
			return nil, err
		}
		awards = append(awards, a)
	}
	return awards, rows.Err()
}

func (r *CatalogRepo) GetAward(ctx context.Context, id uint64) (model.Award, error) {
	var a model.Award
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, organization, description FROM awards WHERE id=? LIMIT 1", id).
		Scan(&a.ID, &a.Name, &a.Organization, &a.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrAwardNotFound
	}
	return a, err
}

func (r *CatalogRepo) CreateAward(ctx context.Context, a *model.Award) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO awards (name, organization, description) VALUES (?,?,?)",
		a.Name, a.Organization, a.Description)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

func (r *CatalogRepo) UpdateAward(ctx context.Context, a *model.Award) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE awards SET name=?, organization=?, description=? WHERE id=?",
		a.Name, a.Organization, a.Description, a.ID)
	if err != nil {
		return err
	}
	return requireRow(res, ErrAwardNotFound)
}

func (r *CatalogRepo) DeleteAward(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM awards WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res, ErrAwardNotFound)
}

// AddMovieAward records a nomination or win for a movie.
func (r *CatalogRepo) AddMovieAward(ctx context.Context, ma *model.MovieAward) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO movie_awards (movie_id, award_id, year, category, winner) VALUES (?,?,?,?,?)",
		ma.MovieID, ma.AwardID, ma.Year, ma.Category, ma.Winner)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// ListMovieAwards returns the award records of a movie, newest year first.
func (r *CatalogRepo) ListMovieAwards(ctx context.Context, movieID uint64) ([]model.MovieAward, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, movie_id, award_id, year, category, winner FROM movie_awards WHERE movie_id=? ORDER BY year DESC",
		movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]model.MovieAward, 0)
	for rows.Next() {
		var ma model.MovieAward
		if err := rows.Scan(&ma.ID, &ma.MovieID, &ma.AwardID, &ma.Year, &ma.Category, &ma.Winner); err != nil {
			return nil, err
		}
		list = append(list, ma)
	}
	return list, rows.Err()
}

// requireRow converts a zero-rows-affected result into the given
// not-found sentinel.
func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
