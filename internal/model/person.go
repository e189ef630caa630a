package model

import "time"

// Person roles stored in people.role.  A person is created with one
// role and attached to movies through role-specific relations; the
// role is checked at the boundary when linking, not inferred from
// the relation used.
const (
	PersonRoleActor    = "ACTOR"
	PersonRoleDirector = "DIRECTOR"
	PersonRoleProducer = "PRODUCER"
	PersonRoleWriter   = "WRITER"
)

// ValidPersonRole reports whether role is one of the accepted person roles.
func ValidPersonRole(role string) bool {
	switch role {
	case PersonRoleActor, PersonRoleDirector, PersonRoleProducer, PersonRoleWriter:
		return true
	}
	return false
}

// Person mirrors the `people` table.  People are catalog reference
// data owned by the system: only staff can create or modify them.
//
// Fields:
//
//	ID        – primary key identifier.
//	Name      – full name.
//	Bio       – free-text biography, may be empty.
//	BirthDate – date of birth (nullable).
//	PhotoPath – storage reference of the portrait photo.
//	Role      – one of the PersonRole constants.
//	CreatedAt – creation timestamp.
type Person struct {
	ID        uint64     // people.id
	Name      string     // people.name
	Bio       string     // people.bio
	BirthDate *time.Time // people.birth_date (nullable)
	PhotoPath string     // people.photo_path
	Role      string     // people.role
	CreatedAt time.Time  // people.created_at
}

// MoviePerson links a movie to a non-actor credit (director, writer
// or producer) in the `movie_people` table.  The Role column repeats
// the person's role so the relation can be filtered without a join.
type MoviePerson struct {
	ID       uint64 // movie_people.id
	MovieID  uint64 // movie_people.movie_id
	PersonID uint64 // movie_people.person_id
	Role     string // movie_people.role
}
