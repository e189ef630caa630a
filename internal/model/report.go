package model

import "time"

// Report kinds stored in movie_reports.report_kind.
const (
	ReportKindBroken   = "BROKEN"   // broken video/audio
	ReportKindSubtitle = "SUBTITLE" // subtitle issue
	ReportKindContent  = "CONTENT"  // inappropriate content
	ReportKindOther    = "OTHER"    // anything else
)

// ValidReportKind reports whether kind is one of the accepted report kinds.
func ValidReportKind(kind string) bool {
	switch kind {
	case ReportKindBroken, ReportKindSubtitle, ReportKindContent, ReportKindOther:
		return true
	}
	return false
}

// MovieReport mirrors the `movie_reports` table.  A report is a
// user-filed issue against a movie.  Resolution is a one-way
// transition: is_resolved flips from false to true at most once,
// stamping resolved_at; only staff may resolve.
//
// Fields:
//
//	ID          – primary key identifier.
//	MovieID     – movie the report is about.
//	UserID      – user who filed the report (set server-side).
//	ReportKind  – one of the ReportKind constants.
//	Description – free-text description of the issue.
//	IsResolved  – whether the report has been resolved.
//	CreatedAt   – creation timestamp.
//	ResolvedAt  – when the report was resolved (null until then).
type MovieReport struct {
	ID          uint64     // movie_reports.id
	MovieID     uint64     // movie_reports.movie_id
	UserID      uint64     // movie_reports.user_id
	ReportKind  string     // movie_reports.report_kind
	Description string     // movie_reports.description
	IsResolved  bool       // movie_reports.is_resolved
	CreatedAt   time.Time  // movie_reports.created_at
	ResolvedAt  *time.Time // movie_reports.resolved_at (nullable)
}
