package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/service"
)

func newReviewEnv(t *testing.T) (*ReviewHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	rec := service.NewActivityRecorder(repository.NewActivityRepo(db))
	return NewReviewHandler(db, repository.NewReviewRepo(db), repository.NewMovieRepo(db), rec), mock
}

func jsonCtx(method, body string, userID uint64, paramName, paramValue string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(paramName)
	c.SetParamValues(paramValue)
	c.Set("user_id", userID)
	c.Set("role", model.RoleUser)
	return c, rec
}

// The review author always comes from the access token, so a user_id
// smuggled into the body must not survive into the INSERT, and the
// rating recompute must commit in the same transaction.
func TestReviewCreateStampsOwnerFromToken(t *testing.T) {
	h, mock := newReviewEnv(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM movies WHERE id=? LIMIT 1")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reviews (movie_id, user_id, rating, comment) VALUES (?,?,?,?)")).
		WithArgs(11, 42, 7, "solid").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(rating),0), COUNT(*) FROM reviews WHERE movie_id=? FOR UPDATE")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"sum", "count"}).AddRow(7, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE movies SET rating=? WHERE id=?")).
		WithArgs(7.0, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_activities")).
		WithArgs(42, model.ActivityReview, 11, 5, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := jsonCtx(http.MethodPost, `{"rating":7,"comment":"solid","user_id":999}`, 42, "id", "11")
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body)
	}

	var resp reviewResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.UserID != 42 {
		t.Errorf("user_id = %d, want the token subject 42", resp.UserID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReviewCreateDuplicateConflict(t *testing.T) {
	h, mock := newReviewEnv(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM movies WHERE id=? LIMIT 1")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reviews")).
		WithArgs(11, 42, 7, "again").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '11-42' for key 'reviews.uniq_movie_user'"))
	// No rating UPDATE: the transaction rolls back untouched.
	mock.ExpectRollback()

	c, rec := jsonCtx(http.MethodPost, `{"rating":7,"comment":"again"}`, 42, "id", "11")
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 (body %s)", rec.Code, rec.Body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReviewCreateRecomputeFailureRollsBack(t *testing.T) {
	h, mock := newReviewEnv(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM movies WHERE id=? LIMIT 1")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reviews")).
		WithArgs(11, 42, 7, "solid").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(rating),0), COUNT(*) FROM reviews WHERE movie_id=? FOR UPDATE")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"sum", "count"}).AddRow(7, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE movies SET rating=? WHERE id=?")).
		WithArgs(7.0, 11).
		WillReturnError(errors.New("lock wait timeout exceeded"))
	// The review INSERT must not survive a failed rating write.
	mock.ExpectRollback()

	c, rec := jsonCtx(http.MethodPost, `{"rating":7,"comment":"solid"}`, 42, "id", "11")
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 (body %s)", rec.Code, rec.Body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReviewUpdateRecomputesAndRecordsRate(t *testing.T) {
	h, mock := newReviewEnv(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, movie_id, user_id, rating, comment, created_at, updated_at FROM reviews WHERE id=? LIMIT 1")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "movie_id", "user_id", "rating", "comment", "created_at", "updated_at"}).
			AddRow(5, 11, 42, 6, "old take", now, now))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reviews SET rating=?, comment=? WHERE id=?")).
		WithArgs(8, "better on rewatch", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(rating),0), COUNT(*) FROM reviews WHERE movie_id=? FOR UPDATE")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"sum", "count"}).AddRow(8, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE movies SET rating=? WHERE id=?")).
		WithArgs(8.0, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_activities")).
		WithArgs(42, model.ActivityRate, 11, 5, nil).
		WillReturnResult(sqlmock.NewResult(2, 1))

	c, rec := jsonCtx(http.MethodPut, `{"rating":8,"comment":"better on rewatch"}`, 42, "id", "5")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReviewUpdateForbiddenForNonOwner(t *testing.T) {
	h, mock := newReviewEnv(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, movie_id, user_id, rating, comment, created_at, updated_at FROM reviews WHERE id=? LIMIT 1")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "movie_id", "user_id", "rating", "comment", "created_at", "updated_at"}).
			AddRow(5, 11, 1000, 6, "someone else's", now, now))

	c, rec := jsonCtx(http.MethodPut, `{"rating":1,"comment":"vandalism"}`, 42, "id", "5")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 (body %s)", rec.Code, rec.Body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
