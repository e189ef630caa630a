package model

import "time"

// List kinds stored in movie_lists.list_kind.
const (
	ListKindWatch    = "WATCH"    // want to watch
	ListKindWatching = "WATCHING" // currently watching
	ListKindWatched  = "WATCHED"  // finished watching
	ListKindFavorite = "FAVORITE" // favourites
)

// ValidListKind reports whether kind is one of the accepted list kinds.
func ValidListKind(kind string) bool {
	switch kind {
	case ListKindWatch, ListKindWatching, ListKindWatched, ListKindFavorite:
		return true
	}
	return false
}

// Watchlist mirrors the `watchlist` table: a flat "saved for later"
// list with one entry per (user, movie), enforced by a unique key.
type Watchlist struct {
	ID      uint64    // watchlist.id
	UserID  uint64    // watchlist.user_id
	MovieID uint64    // watchlist.movie_id
	AddedAt time.Time // watchlist.added_at
}

// MovieList mirrors the `movie_lists` table.  Each row places a
// movie on one of the user's typed lists; a user may have at most
// one entry per (movie, list_kind), enforced by a unique key on
// (user_id, movie_id, list_kind).
//
// Fields:
//
//	ID       – primary key identifier.
//	UserID   – owner of the list entry.
//	MovieID  – movie placed on the list.
//	ListKind – one of the ListKind constants.
//	AddedAt  – when the entry was created.
type MovieList struct {
	ID       uint64    // movie_lists.id
	UserID   uint64    // movie_lists.user_id
	MovieID  uint64    // movie_lists.movie_id
	ListKind string    // movie_lists.list_kind
	AddedAt  time.Time // movie_lists.added_at
}
