package handler

import "testing"

func TestParseMovieFilter(t *testing.T) {
	c := newCtx("/?min_rating=7.5&max_rating=9&min_year=1990&max_year=2000" +
		"&genre=Drama&director=kubrick&actor=keaton&country=USA" +
		"&language=EN&age_rating=R&featured=true&search=space" +
		"&sort_by=rating_desc&page=2&page_size=10")

	f := parseMovieFilter(c)
	if f.MinRating == nil || *f.MinRating != 7.5 {
		t.Errorf("MinRating = %v", f.MinRating)
	}
	if f.MaxRating == nil || *f.MaxRating != 9 {
		t.Errorf("MaxRating = %v", f.MaxRating)
	}
	if f.MinYear == nil || *f.MinYear != 1990 {
		t.Errorf("MinYear = %v", f.MinYear)
	}
	if f.MaxYear == nil || *f.MaxYear != 2000 {
		t.Errorf("MaxYear = %v", f.MaxYear)
	}
	if f.Genre != "Drama" || f.Director != "kubrick" || f.Actor != "keaton" || f.Country != "USA" {
		t.Errorf("relation filters = %q %q %q %q", f.Genre, f.Director, f.Actor, f.Country)
	}
	if f.Language != "EN" || f.AgeRating != "R" || f.Search != "space" || f.SortBy != "rating_desc" {
		t.Errorf("scalar filters = %q %q %q %q", f.Language, f.AgeRating, f.Search, f.SortBy)
	}
	if f.Featured == nil || !*f.Featured {
		t.Errorf("Featured = %v", f.Featured)
	}
	if f.Page != 2 || f.PageSize != 10 {
		t.Errorf("page = %d/%d", f.Page, f.PageSize)
	}
}

func TestParseMovieFilterIgnoresMalformed(t *testing.T) {
	f := parseMovieFilter(newCtx("/?min_rating=high&min_year=199x&featured=maybe"))
	if f.MinRating != nil {
		t.Errorf("malformed min_rating parsed to %v", *f.MinRating)
	}
	if f.MinYear != nil {
		t.Errorf("malformed min_year parsed to %v", *f.MinYear)
	}
	// Any non-true value for featured still filters, as false.
	if f.Featured == nil || *f.Featured {
		t.Errorf("featured = %v, want false filter", f.Featured)
	}
}

func TestParseMovieFilterEmpty(t *testing.T) {
	f := parseMovieFilter(newCtx("/"))
	if f.MinRating != nil || f.MaxRating != nil || f.MinYear != nil || f.MaxYear != nil || f.Featured != nil {
		t.Error("empty query produced non-nil numeric filters")
	}
	if f.Page != 1 || f.PageSize != 20 {
		t.Errorf("default page = %d/%d", f.Page, f.PageSize)
	}
}
