package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// CollectionRepo provides CRUD operations for collections and their
// movie membership. Visibility rules (public collections readable by
// anyone, private ones only by the owner) are decided by the
// authorization gate; this layer only stores and fetches.
type CollectionRepo struct{ DB *sql.DB }

func NewCollectionRepo(db *sql.DB) *CollectionRepo { return &CollectionRepo{DB: db} }

const collectionColumns = "id, owner_id, name, description, is_public, created_at"

func scanCollection(row rowScanner, c *model.Collection) error {
	return row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.IsPublic, &c.CreatedAt)
}

// Create inserts a collection and returns its ID. The owner is
// stamped by the handler from the authenticated actor.
func (r *CollectionRepo) Create(ctx context.Context, c *model.Collection) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO collections (owner_id, name, description, is_public) VALUES (?,?,?,?)",
		c.OwnerID, c.Name, c.Description, c.IsPublic)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	c.ID = uint64(id)
	return c.ID, nil
}

// GetByID returns a single collection or ErrCollectionNotFound.
func (r *CollectionRepo) GetByID(ctx context.Context, id uint64) (model.Collection, error) {
	var c model.Collection
	err := scanCollection(r.DB.QueryRowContext(ctx,
		"SELECT "+collectionColumns+" FROM collections WHERE id=? LIMIT 1", id), &c)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrCollectionNotFound
	}
	return c, err
}

// ListVisible returns all collections the given user may see: every
// public collection plus the user's own private ones, newest first.
func (r *CollectionRepo) ListVisible(ctx context.Context, userID uint64) ([]model.Collection, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+collectionColumns+" FROM collections WHERE is_public=1 OR owner_id=? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]model.Collection, 0)
	for rows.Next() {
		var c model.Collection
		if err := scanCollection(rows, &c); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update rewrites the name, description and visibility of a collection.
func (r *CollectionRepo) Update(ctx context.Context, c *model.Collection) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE collections SET name=?, description=?, is_public=? WHERE id=?",
		c.Name, c.Description, c.IsPublic, c.ID)
	if err != nil {
		return err
	}
	return requireRow(res, ErrCollectionNotFound)
}

// Delete removes a collection and, via foreign keys, its membership rows.
func (r *CollectionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM collections WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res, ErrCollectionNotFound)
}

// AddMovie places a movie in a collection. Adding the same movie
// twice maps to ErrConflict.
func (r *CollectionRepo) AddMovie(ctx context.Context, collectionID, movieID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO collection_movies (collection_id, movie_id) VALUES (?,?)",
		collectionID, movieID)
	if isDuplicateKey(err) {
		return ErrConflict
	}
	return err
}

// RemoveMovie takes a movie out of a collection.
func (r *CollectionRepo) RemoveMovie(ctx context.Context, collectionID, movieID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM collection_movies WHERE collection_id=? AND movie_id=?",
		collectionID, movieID)
	if err != nil {
		return err
	}
	return requireRow(res, ErrMovieNotFound)
}

// ListMovies returns the movies of a collection in insertion order.
func (r *CollectionRepo) ListMovies(ctx context.Context, collectionID uint64) ([]model.Movie, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+prefixColumns("m", movieColumns)+
			" FROM collection_movies cm JOIN movies m ON m.id = cm.movie_id WHERE cm.collection_id=? ORDER BY cm.added_at",
		collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	movies := make([]model.Movie, 0)
	for rows.Next() {
		var m model.Movie
		if err := scanMovie(rows, &m); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}
