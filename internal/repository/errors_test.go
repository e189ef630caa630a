package repository

import (
	"errors"
	"testing"
)

func TestIsDuplicateKey(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql duplicate entry", errors.New("Error 1062 (23000): Duplicate entry 'a@b.c' for key 'users.email'"), true},
		{"other mysql error", errors.New("Error 1452 (23000): Cannot add or update a child row"), false},
		{"plain error", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isDuplicateKey(tc.err); got != tc.want {
				t.Errorf("isDuplicateKey(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

// fakeResult implements sql.Result for requireRow tests.
type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestRequireRow(t *testing.T) {
	if err := requireRow(fakeResult{rows: 1}, ErrMovieNotFound); err != nil {
		t.Errorf("affected row returned error %v", err)
	}
	if err := requireRow(fakeResult{rows: 0}, ErrMovieNotFound); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("zero rows returned %v, want ErrMovieNotFound", err)
	}
	driverErr := errors.New("driver gone")
	if err := requireRow(fakeResult{err: driverErr}, ErrMovieNotFound); !errors.Is(err, driverErr) {
		t.Errorf("driver error returned %v, want %v", err, driverErr)
	}
}
