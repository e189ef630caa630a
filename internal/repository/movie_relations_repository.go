package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// Relation accessors for MovieRepo: genres, countries, credited
// people and cast. Write methods replace the full relation set for a
// movie; role-tagged relations verify the person's role at the
// boundary so an actor can never be linked as a director.

// ReplaceGenres rewrites the genre set of a movie.
func (r *MovieRepo) ReplaceGenres(ctx context.Context, movieID uint64, genreIDs []uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, "DELETE FROM movie_genres WHERE movie_id=?", movieID); err != nil {
		return err
	}
	for _, gid := range genreIDs {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO movie_genres (movie_id, genre_id) SELECT ?, id FROM genres WHERE id=?",
			movieID, gid)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return ErrGenreNotFound
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ReplaceCountries rewrites the country set of a movie.
func (r *MovieRepo) ReplaceCountries(ctx context.Context, movieID uint64, countryIDs []uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, "DELETE FROM movie_countries WHERE movie_id=?", movieID); err != nil {
		return err
	}
	for _, cid := range countryIDs {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO movie_countries (movie_id, country_id) SELECT ?, id FROM countries WHERE id=?",
			movieID, cid)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return ErrCountryNotFound
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ReplacePeople rewrites the credits of a movie for one role
// (DIRECTOR, WRITER or PRODUCER). The INSERT joins through people
// filtered by role, so a person whose role does not match inserts
// zero rows and the call fails with ErrPersonRoleMismatch.
func (r *MovieRepo) ReplacePeople(ctx context.Context, movieID uint64, role string, personIDs []uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM movie_people WHERE movie_id=? AND role=?", movieID, role); err != nil {
		return err
	}
	for _, pid := range personIDs {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO movie_people (movie_id, person_id, role) SELECT ?, id, role FROM people WHERE id=? AND role=?",
			movieID, pid, role)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return ErrPersonRoleMismatch
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ReplaceCast rewrites the acting credits of a movie, including
// character names and the main-character flag. Non-actor people are
// rejected the same way as in ReplacePeople.
func (r *MovieRepo) ReplaceCast(ctx context.Context, movieID uint64, cast []model.MovieCast) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, "DELETE FROM movie_cast WHERE movie_id=?", movieID); err != nil {
		return err
	}
	for _, c := range cast {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO movie_cast (movie_id, person_id, character_name, is_main_character)
             SELECT ?, id, ?, ? FROM people WHERE id=? AND role='ACTOR'`,
			movieID, c.CharacterName, c.IsMainCharacter, c.PersonID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return ErrPersonRoleMismatch
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetGenres returns the genres linked to a movie.
func (r *MovieRepo) GetGenres(ctx context.Context, movieID uint64) ([]model.Genre, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT g.id, g.name FROM movie_genres mg
         JOIN genres g ON g.id = mg.genre_id
         WHERE mg.movie_id=? ORDER BY g.name`, movieID)
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

// GetCountries returns the countries linked to a movie.
func (r *MovieRepo) GetCountries(ctx context.Context, movieID uint64) ([]model.Country, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.id, c.name FROM movie_countries mc
         JOIN countries c ON c.id = mc.country_id
         WHERE mc.movie_id=? ORDER BY c.name`, movieID)
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

// GetPeople returns the people credited on a movie for one role.
func (r *MovieRepo) GetPeople(ctx context.Context, movieID uint64, role string) ([]model.Person, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT p.id, p.name, p.bio, p.birth_date, p.photo_path, p.role, p.created_at
         FROM movie_people mp JOIN people p ON p.id = mp.person_id
         WHERE mp.movie_id=? AND mp.role=? ORDER BY p.name`, movieID, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	people := make([]model.Person, 0)
	for rows.Next() {
		var p model.Person
		var birth sql.NullTime
		if err := rows.Scan(&p.ID, &p.Name, &p.Bio, &birth, &p.PhotoPath, &p.Role, &p.CreatedAt); err != nil {
			return nil, err
		}
		if birth.Valid {
			t := birth.Time
			p.BirthDate = &t
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

// CastEntry pairs an actor with the character played, for movie
// detail responses.
type CastEntry struct {
	PersonID        uint64 `json:"person_id"`
	Name            string `json:"name"`
	CharacterName   string `json:"character_name"`
	IsMainCharacter bool   `json:"is_main_character"`
}

// GetCast returns the acting credits of a movie, main characters first.
func (r *MovieRepo) GetCast(ctx context.Context, movieID uint64) ([]CastEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT mc.person_id, p.name, mc.character_name, mc.is_main_character
         FROM movie_cast mc JOIN people p ON p.id = mc.person_id
         WHERE mc.movie_id=? ORDER BY mc.is_main_character DESC, p.name`, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cast := make([]CastEntry, 0)
	for rows.Next() {
		var e CastEntry
		if err := rows.Scan(&e.PersonID, &e.Name, &e.CharacterName, &e.IsMainCharacter); err != nil {
			return nil, err
		}
		cast = append(cast, e)
	}
	return cast, rows.Err()
}

// normalizeName trims and collapses inner whitespace for
// case-insensitive reference-data comparisons.
func normalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
