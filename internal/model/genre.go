package model

// Genre mirrors the `genres` table.  Genres are reference data
// owned by the system; writes are staff-only.
type Genre struct {
	ID   uint64 // genres.id
	Name string // genres.name
}

// Country mirrors the `countries` table.  Countries are reference
// data owned by the system; writes are staff-only.
type Country struct {
	ID   uint64 // countries.id
	Name string // countries.name
}

// MovieGenre links a movie to a genre in the `movie_genres` join table.
type MovieGenre struct {
	MovieID uint64 // movie_genres.movie_id
	GenreID uint64 // movie_genres.genre_id
}

// MovieCountry links a movie to a country in the `movie_countries` join table.
type MovieCountry struct {
	MovieID   uint64 // movie_countries.movie_id
	CountryID uint64 // movie_countries.country_id
}
