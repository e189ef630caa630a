package model

import "time"

// MovieSeason mirrors the `movie_seasons` table.  Seasons are
// ordered by season_number, which is unique per movie.
type MovieSeason struct {
	ID           uint64    // movie_seasons.id
	MovieID      uint64    // movie_seasons.movie_id
	SeasonNumber uint32    // movie_seasons.season_number
	Title        string    // movie_seasons.title
	Description  string    // movie_seasons.description
	ReleaseDate  time.Time // movie_seasons.release_date
}

// MovieEpisode mirrors the `movie_episodes` table.  Episodes are
// ordered by episode_number, which is unique per season.
//
// Fields:
//
//	ID            – primary key identifier.
//	SeasonID      – season the episode belongs to.
//	EpisodeNumber – position within the season.
//	Title         – episode title.
//	Description   – episode synopsis.
//	DurationMin   – runtime in minutes.
//	VideoPath     – storage reference of the video file.
//	AirDate       – original air date.
type MovieEpisode struct {
	ID            uint64    // movie_episodes.id
	SeasonID      uint64    // movie_episodes.season_id
	EpisodeNumber uint32    // movie_episodes.episode_number
	Title         string    // movie_episodes.title
	Description   string    // movie_episodes.description
	DurationMin   uint32    // movie_episodes.duration_min
	VideoPath     string    // movie_episodes.video_path
	AirDate       time.Time // movie_episodes.air_date
}

// Subtitle mirrors the `subtitles` table.  At most one subtitle
// file may exist per (movie, language), enforced by a unique key.
type Subtitle struct {
	ID       uint64 // subtitles.id
	MovieID  uint64 // subtitles.movie_id
	Language string // subtitles.language
	FilePath string // subtitles.file_path
}
