package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// ReportRepo provides access to the movie_reports table. Resolution
// is a one-way transition guarded in SQL: the UPDATE only matches
// unresolved rows, so a second resolve attempt affects zero rows and
// maps to ErrConflict.
type ReportRepo struct{ DB *sql.DB }

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

const reportColumns = "id, movie_id, user_id, report_kind, description, is_resolved, created_at, resolved_at"

func scanReport(row rowScanner, rep *model.MovieReport) error {
	var resolved sql.NullTime
	if err := row.Scan(&rep.ID, &rep.MovieID, &rep.UserID, &rep.ReportKind,
		&rep.Description, &rep.IsResolved, &rep.CreatedAt, &resolved); err != nil {
		return err
	}
	if resolved.Valid {
		t := resolved.Time
		rep.ResolvedAt = &t
	}
	return nil
}

// Create inserts a report and populates the generated ID.
func (r *ReportRepo) Create(ctx context.Context, rep *model.MovieReport) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO movie_reports (movie_id, user_id, report_kind, description) VALUES (?,?,?,?)",
		rep.MovieID, rep.UserID, rep.ReportKind, rep.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rep.ID = uint64(id)
	return nil
}

// GetByID returns a single report or ErrReportNotFound.
func (r *ReportRepo) GetByID(ctx context.Context, id uint64) (model.MovieReport, error) {
	var rep model.MovieReport
	err := scanReport(r.DB.QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM movie_reports WHERE id=? LIMIT 1", id), &rep)
	if errors.Is(err, sql.ErrNoRows) {
		return rep, ErrReportNotFound
	}
	return rep, err
}

// ListOpen returns all unresolved reports, oldest first, for the
// staff moderation queue.
func (r *ReportRepo) ListOpen(ctx context.Context) ([]model.MovieReport, error) {
	return r.listWhere(ctx, "is_resolved=0 ORDER BY created_at")
}

// ListByUser returns the reports filed by a user, newest first.
func (r *ReportRepo) ListByUser(ctx context.Context, userID uint64) ([]model.MovieReport, error) {
	return r.listWhere(ctx, "user_id=? ORDER BY created_at DESC", userID)
}

func (r *ReportRepo) listWhere(ctx context.Context, tail string, args ...interface{}) ([]model.MovieReport, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reportColumns+" FROM movie_reports WHERE "+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reports := make([]model.MovieReport, 0)
	for rows.Next() {
		var rep model.MovieReport
		if err := scanReport(rows, &rep); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// Resolve marks a report resolved and stamps resolved_at. It returns
// ErrReportNotFound when no such report exists and ErrConflict when
// the report was already resolved.
func (r *ReportRepo) Resolve(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE movie_reports SET is_resolved=1, resolved_at=NOW() WHERE id=? AND is_resolved=0", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	// Zero rows: either the report does not exist or it is already
	// resolved. Distinguish so the handler can answer 404 vs 409.
	var one int
	err = r.DB.QueryRowContext(ctx, "SELECT 1 FROM movie_reports WHERE id=? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReportNotFound
	}
	if err != nil {
		return err
	}
	return ErrConflict
}
