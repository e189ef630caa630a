package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// PersonRepo provides CRUD operations for the people table. People
// are reference data; writes are staff-only, enforced by the
// authorization gate in the handler layer.
type PersonRepo struct{ DB *sql.DB }

func NewPersonRepo(db *sql.DB) *PersonRepo { return &PersonRepo{DB: db} }

const personColumns = "id, name, bio, birth_date, photo_path, role, created_at"

func scanPerson(row rowScanner, p *model.Person) error {
	var birth sql.NullTime
	if err := row.Scan(&p.ID, &p.Name, &p.Bio, &birth, &p.PhotoPath, &p.Role, &p.CreatedAt); err != nil {
		return err
	}
	if birth.Valid {
		t := birth.Time
		p.BirthDate = &t
	}
	return nil
}

// List returns a page of people, optionally filtered by role.
func (r *PersonRepo) List(ctx context.Context, role string, page, pageSize int) ([]model.Person, int, error) {
	where := ""
	args := []interface{}{}
	if role != "" {
		where = " WHERE role=?"
		args = append(args, role)
	}
	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM people"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.Person{}, 0, nil
	}
	query := "SELECT " + personColumns + " FROM people" + where +
		fmt.Sprintf(" ORDER BY name LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	people := make([]model.Person, 0, pageSize)
	for rows.Next() {
		var p model.Person
		if err := scanPerson(rows, &p); err != nil {
			return nil, 0, err
		}
		people = append(people, p)
	}
	return people, total, rows.Err()
}

// GetByID returns a single person or ErrPersonNotFound.
func (r *PersonRepo) GetByID(ctx context.Context, id uint64) (model.Person, error) {
	var p model.Person
	err := scanPerson(r.DB.QueryRowContext(ctx,
		"SELECT "+personColumns+" FROM people WHERE id=? LIMIT 1", id), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrPersonNotFound
	}
	return p, err
}

// Create inserts a person and returns its ID.
func (r *PersonRepo) Create(ctx context.Context, p *model.Person) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO people (name, bio, birth_date, photo_path, role) VALUES (?,?,?,?,?)",
		p.Name, p.Bio, p.BirthDate, p.PhotoPath, p.Role)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	p.ID = uint64(id)
	return p.ID, nil
}

// Update rewrites a person's fields. The role is intentionally
// mutable so staff can correct miscategorized entries; existing
// relation rows keep their recorded role.
func (r *PersonRepo) Update(ctx context.Context, p *model.Person) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE people SET name=?, bio=?, birth_date=?, photo_path=?, role=? WHERE id=?",
		p.Name, p.Bio, p.BirthDate, p.PhotoPath, p.Role, p.ID)
	if err != nil {
		return err
	}
	return requireRow(res, ErrPersonNotFound)
}

// SetPhotoPath stores the storage reference of an uploaded portrait.
func (r *PersonRepo) SetPhotoPath(ctx context.Context, id uint64, path string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE people SET photo_path=? WHERE id=?", path, id)
	if err != nil {
		return err
	}
	return requireRow(res, ErrPersonNotFound)
}

// Delete removes a person. Relation rows cascade via foreign keys.
func (r *PersonRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM people WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res, ErrPersonNotFound)
}
