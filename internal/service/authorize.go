package service

import (
	"github.com/iliyamo/movie-catalog/internal/model"
)

// Actor is the authenticated caller of a request, taken from the JWT
// claims the auth middleware stored on the echo context.
type Actor struct {
	ID   uint64
	Role string
}

// IsStaff reports whether the actor holds the STAFF role.
func (a Actor) IsStaff() bool { return a.Role == model.RoleStaff }

// CanModifyOwned reports whether the actor may mutate a resource
// owned by ownerID. Owners may always mutate their own resources;
// staff may mutate anyone's. Callers answer 403 on a false result —
// never 404, since existence is not hidden from authenticated users.
func CanModifyOwned(a Actor, ownerID uint64) bool {
	return a.ID == ownerID || a.IsStaff()
}

// CanViewCollection reports whether the actor may read a collection.
// Public collections are visible to everyone; private ones only to
// their owner and staff.
func CanViewCollection(a Actor, c model.Collection) bool {
	return c.IsPublic || a.ID == c.OwnerID || a.IsStaff()
}
