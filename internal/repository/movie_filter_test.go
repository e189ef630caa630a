package repository

import (
	"strings"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestBuildMovieWhereEmpty(t *testing.T) {
	where, args := buildMovieWhere(MovieFilter{})
	if where != "" {
		t.Errorf("empty filter produced WHERE clause %q", where)
	}
	if len(args) != 0 {
		t.Errorf("empty filter produced %d args", len(args))
	}
}

func TestBuildMovieWherePlaceholdersMatchArgs(t *testing.T) {
	cases := []struct {
		name   string
		filter MovieFilter
		want   int // expected number of args
	}{
		{"rating range", MovieFilter{MinRating: floatPtr(7), MaxRating: floatPtr(9)}, 2},
		{"year range", MovieFilter{MinYear: intPtr(1990), MaxYear: intPtr(1999)}, 2},
		{"genre", MovieFilter{Genre: "Drama"}, 1},
		{"director", MovieFilter{Director: "kubrick"}, 1},
		{"actor", MovieFilter{Actor: "keaton"}, 1},
		{"country", MovieFilter{Country: "France"}, 1},
		{"language and age rating", MovieFilter{Language: "EN", AgeRating: "PG-13"}, 2},
		{"featured", MovieFilter{Featured: boolPtr(true)}, 1},
		{"search binds twice", MovieFilter{Search: "blade"}, 2},
		{
			"everything at once",
			MovieFilter{
				MinRating: floatPtr(5), MaxRating: floatPtr(10),
				MinYear: intPtr(2000), MaxYear: intPtr(2020),
				Genre: "Action", Director: "nolan", Actor: "bale",
				Country: "USA", Language: "EN", AgeRating: "R",
				Featured: boolPtr(false), Search: "dark",
			},
			13,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			where, args := buildMovieWhere(tc.filter)
			if len(args) != tc.want {
				t.Errorf("got %d args, want %d", len(args), tc.want)
			}
			if got := strings.Count(where, "?"); got != tc.want {
				t.Errorf("got %d placeholders, want %d (clause %q)", got, tc.want, where)
			}
			if !strings.HasPrefix(where, " WHERE ") {
				t.Errorf("clause %q does not start with WHERE", where)
			}
		})
	}
}

func TestMovieOrderBy(t *testing.T) {
	cases := []struct {
		sortBy string
		want   string
	}{
		{"", "m.created_at DESC"},
		{"rating", "m.rating ASC"},
		{"rating_desc", "m.rating DESC"},
		{"release_date", "m.release_date ASC"},
		{"views_count_desc", "m.views_count DESC"},
		{"created_at", "m.created_at ASC"},
		// Unknown or hostile keys must fall back, never interpolate.
		{"title", "m.created_at DESC"},
		{"rating; DROP TABLE movies", "m.created_at DESC"},
		{"rating_desc; --", "m.created_at DESC"},
	}
	for _, tc := range cases {
		if got := movieOrderBy(tc.sortBy); got != tc.want {
			t.Errorf("movieOrderBy(%q) = %q, want %q", tc.sortBy, got, tc.want)
		}
	}
}
