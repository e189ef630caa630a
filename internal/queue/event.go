// Package queue defines message payloads exchanged over the message
// broker and the background consumer that turns them into user
// notifications.
package queue

// MoviePublishedEvent is published when staff add a new movie to the
// catalog. It carries enough information for downstream consumers to
// notify users without querying the primary database.
type MoviePublishedEvent struct {
	MovieID     uint64 `json:"movie_id"`
	Title       string `json:"title"`
	Language    string `json:"language"`
	AgeRating   string `json:"age_rating"`
	ReleaseDate string `json:"release_date"`
	PublishedAt string `json:"published_at"`
}
