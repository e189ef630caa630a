package model

import "time"

// Collection mirrors the `collections` table.  A collection is a
// user-curated set of movies.  Reads by non-owners are allowed only
// when IsPublic is true; all writes are restricted to the owner.
//
// Fields:
//
//	ID          – primary key identifier.
//	OwnerID     – user who created the collection.
//	Name        – display name.
//	Description – free-text description, may be empty.
//	IsPublic    – whether non-owners may view the collection.
//	CreatedAt   – creation timestamp.
type Collection struct {
	ID          uint64    // collections.id
	OwnerID     uint64    // collections.owner_id
	Name        string    // collections.name
	Description string    // collections.description
	IsPublic    bool      // collections.is_public
	CreatedAt   time.Time // collections.created_at
}

// CollectionMovie links a collection to a movie in the
// `collection_movies` join table.  A movie appears at most once per
// collection.
type CollectionMovie struct {
	CollectionID uint64    // collection_movies.collection_id
	MovieID      uint64    // collection_movies.movie_id
	AddedAt      time.Time // collection_movies.added_at
}
