// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while the ErrDuplicate* values signal that an
// insert collided with a uniqueness constraint (e.g. a second
// review for the same movie by the same user).
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed
// because of conflicting state, such as resolving a report that
// has already been resolved. Handlers should translate this into
// an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// Not-found sentinels, one per aggregate. Handlers translate these
// into HTTP 404 responses, distinct from permission errors.
var (
	ErrMovieNotFound        = errors.New("movie not found")
	ErrReviewNotFound       = errors.New("review not found")
	ErrCollectionNotFound   = errors.New("collection not found")
	ErrReportNotFound       = errors.New("report not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrGenreNotFound        = errors.New("genre not found")
	ErrPersonNotFound       = errors.New("person not found")
	ErrCountryNotFound      = errors.New("country not found")
	ErrAwardNotFound        = errors.New("award not found")
	ErrSeasonNotFound       = errors.New("season not found")
	ErrEpisodeNotFound      = errors.New("episode not found")
	ErrSubtitleNotFound     = errors.New("subtitle not found")
	ErrListEntryNotFound    = errors.New("list entry not found")
)

// Uniqueness sentinels. Each maps a MySQL duplicate-key error on a
// specific constraint to a conflict the handler can report per
// resource. Handlers translate these into HTTP 409 responses.
var (
	ErrEmailExists        = errors.New("email already exists")
	ErrDuplicateReview    = errors.New("review already exists for this movie and user")
	ErrDuplicateWatchlist = errors.New("movie already on watchlist")
	ErrDuplicateListEntry = errors.New("movie already on this list")
	ErrDuplicateSubtitle  = errors.New("subtitle already exists for this language")
	ErrDuplicateSeason    = errors.New("season number already exists for this movie")
	ErrDuplicateEpisode   = errors.New("episode number already exists for this season")
)

// ErrPersonRoleMismatch is returned when linking a person to a movie
// under a relation that does not match the person's role (e.g. adding
// an ACTOR as a director).
var ErrPersonRoleMismatch = errors.New("person role does not match relation")

// isDuplicateKey reports whether err is a MySQL duplicate-key error
// (error number 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
