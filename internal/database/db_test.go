package database

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	got := dsn("app", "s3cret", "db.local", "3306", "movies")
	want := "app:s3cret@tcp(db.local:3306)/movies?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true"
	if got != want {
		t.Errorf("dsn = %q, want %q", got, want)
	}

	// Repositories map zero affected rows to not-found, so the
	// matched-rows flag must always be present: without it a no-op
	// UPDATE on an existing row reports zero and turns into a bogus
	// not-found.
	if !strings.Contains(got, "clientFoundRows=true") {
		t.Error("dsn missing clientFoundRows=true")
	}
}

func TestDSNEmptyPassword(t *testing.T) {
	got := dsn("app", "", "localhost", "3306", "movies")
	if !strings.HasPrefix(got, "app@tcp(") {
		t.Errorf("empty password must omit the colon, got %q", got)
	}
	if strings.Contains(got, ":@") {
		t.Errorf("dangling credential separator in %q", got)
	}
}
