package model

import "time"

// Language codes accepted for movies.language.
const (
	LanguageEnglish = "EN"
	LanguageRussian = "RU"
	LanguageUzbek   = "UZ"
	LanguageKorean  = "KR"
	LanguageTurkish = "TR"
	LanguageOther   = "OTHER"
)

// ValidLanguage reports whether code is one of the accepted language codes.
func ValidLanguage(code string) bool {
	switch code {
	case LanguageEnglish, LanguageRussian, LanguageUzbek, LanguageKorean, LanguageTurkish, LanguageOther:
		return true
	}
	return false
}

// Age rating codes accepted for movies.age_rating.
const (
	AgeRatingG    = "G"
	AgeRatingPG   = "PG"
	AgeRatingPG13 = "PG-13"
	AgeRatingR    = "R"
	AgeRatingNC17 = "NC-17"
)

// ValidAgeRating reports whether code is one of the accepted age ratings.
func ValidAgeRating(code string) bool {
	switch code {
	case AgeRatingG, AgeRatingPG, AgeRatingPG13, AgeRatingR, AgeRatingNC17:
		return true
	}
	return false
}

// Movie mirrors the `movies` table.  The Rating column is derived
// data: it always holds the mean of the movie's review ratings
// rounded to one decimal place (0 when no reviews exist) and is
// written exclusively by the rating recompute inside the same
// transaction as the triggering review mutation.  Clients can never
// set it directly.
//
// Fields:
//
//	ID            – primary key identifier.
//	Title         – display title.
//	OriginalTitle – title in the original language, may be empty.
//	Description   – synopsis text.
//	ReleaseDate   – theatrical release date.
//	DurationMin   – runtime in minutes.
//	Rating        – derived mean review rating, one decimal.
//	PosterPath    – storage reference of the poster image.
//	TrailerPath   – storage reference of the trailer video.
//	Language      – language code (see Language constants).
//	AgeRating     – age rating code (see AgeRating constants).
//	IsFeatured    – editorial feature flag.
//	ViewsCount    – number of detail views.
//	CreatedAt     – creation timestamp.
//	UpdatedAt     – last update timestamp.
type Movie struct {
	ID            uint64    // movies.id
	Title         string    // movies.title
	OriginalTitle string    // movies.original_title
	Description   string    // movies.description
	ReleaseDate   time.Time // movies.release_date
	DurationMin   uint32    // movies.duration_min
	Rating        float64   // movies.rating (derived, read-only for clients)
	PosterPath    string    // movies.poster_path
	TrailerPath   string    // movies.trailer_path
	Language      string    // movies.language
	AgeRating     string    // movies.age_rating
	IsFeatured    bool      // movies.is_featured
	ViewsCount    uint64    // movies.views_count
	CreatedAt     time.Time // movies.created_at
	UpdatedAt     time.Time // movies.updated_at
}

// MovieCast links a movie to an actor together with the character
// played.  It backs the `movie_cast` join table; directors, writers
// and producers use the plain movie_people table instead since they
// carry no character information.
//
// Fields:
//
//	ID              – primary key identifier.
//	MovieID         – movie being cast.
//	PersonID        – actor playing the part.
//	CharacterName   – name of the character.
//	IsMainCharacter – whether the part is a lead role.
type MovieCast struct {
	ID              uint64 // movie_cast.id
	MovieID         uint64 // movie_cast.movie_id
	PersonID        uint64 // movie_cast.person_id
	CharacterName   string // movie_cast.character_name
	IsMainCharacter bool   // movie_cast.is_main_character
}
