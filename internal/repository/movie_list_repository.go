package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// MovieListRepo provides access to the watchlist and movie_lists
// tables. Both enforce their uniqueness constraints in the schema;
// duplicate inserts map to the corresponding sentinel errors so
// handlers can answer 409 instead of silently overwriting.
type MovieListRepo struct{ DB *sql.DB }

func NewMovieListRepo(db *sql.DB) *MovieListRepo { return &MovieListRepo{DB: db} }

// AddWatchlist inserts a (user, movie) watchlist entry. A second
// insert for the same pair maps to ErrDuplicateWatchlist.
func (r *MovieListRepo) AddWatchlist(ctx context.Context, userID, movieID uint64) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO watchlist (user_id, movie_id) VALUES (?,?)", userID, movieID)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicateWatchlist
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// RemoveWatchlist deletes a user's watchlist entry for a movie.
func (r *MovieListRepo) RemoveWatchlist(ctx context.Context, userID, movieID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM watchlist WHERE user_id=? AND movie_id=?", userID, movieID)
	if err != nil {
		return err
	}
	return requireRow(res, ErrListEntryNotFound)
}

// ListWatchlist returns the user's watchlist entries, newest first.
func (r *MovieListRepo) ListWatchlist(ctx context.Context, userID uint64) ([]model.Watchlist, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, movie_id, added_at FROM watchlist WHERE user_id=? ORDER BY added_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]model.Watchlist, 0)
	for rows.Next() {
		var w model.Watchlist
		if err := rows.Scan(&w.ID, &w.UserID, &w.MovieID, &w.AddedAt); err != nil {
			return nil, err
		}
		entries = append(entries, w)
	}
	return entries, rows.Err()
}

// AddListEntry inserts a typed list entry. A second insert for the
// same (user, movie, kind) triple maps to ErrDuplicateListEntry.
func (r *MovieListRepo) AddListEntry(ctx context.Context, userID, movieID uint64, kind string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO movie_lists (user_id, movie_id, list_kind) VALUES (?,?,?)",
		userID, movieID, kind)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicateListEntry
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// RemoveListEntry deletes a typed list entry by its triple.
func (r *MovieListRepo) RemoveListEntry(ctx context.Context, userID, movieID uint64, kind string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM movie_lists WHERE user_id=? AND movie_id=? AND list_kind=?",
		userID, movieID, kind)
	if err != nil {
		return err
	}
	return requireRow(res, ErrListEntryNotFound)
}

// ListEntries returns the user's typed list entries, optionally
// filtered by kind, newest first.
func (r *MovieListRepo) ListEntries(ctx context.Context, userID uint64, kind string) ([]model.MovieList, error) {
	query := "SELECT id, user_id, movie_id, list_kind, added_at FROM movie_lists WHERE user_id=?"
	args := []interface{}{userID}
	if kind != "" {
		query += " AND list_kind=?"
		args = append(args, kind)
	}
	query += " ORDER BY added_at DESC"
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]model.MovieList, 0)
	for rows.Next() {
		var e model.MovieList
		if err := rows.Scan(&e.ID, &e.UserID, &e.MovieID, &e.ListKind, &e.AddedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
