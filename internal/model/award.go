package model

// Award mirrors the `awards` table.  Awards are reference data
// owned by the system; writes are staff-only.
type Award struct {
	ID           uint64 // awards.id
	Name         string // awards.name
	Organization string // awards.organization
	Description  string // awards.description
}

// MovieAward records an award nomination or win for a movie in the
// `movie_awards` table.
//
// Fields:
//
//	ID       – primary key identifier.
//	MovieID  – movie that was nominated.
//	AwardID  – award in question.
//	Year     – ceremony year.
//	Category – category the movie competed in.
//	Winner   – whether the movie won.
type MovieAward struct {
	ID       uint64 // movie_awards.id
	MovieID  uint64 // movie_awards.movie_id
	AwardID  uint64 // movie_awards.award_id
	Year     uint16 // movie_awards.year
	Category string // movie_awards.category
	Winner   bool   // movie_awards.winner
}
