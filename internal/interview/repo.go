package interview

import (
	"context"

	"github.com/rsoni/hireview/internal/report"
)

// SessionRepo persists interview sessions as whole documents. The service
// serializes access per session, so implementations only need atomicity on
// SaveReportIfAbsent, which guards the once-only report write.
type SessionRepo interface {
	// Create stores a new session. Returns ErrExists if the id is taken.
	Create(ctx context.Context, s *Session) error

	// Get returns the session or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Save replaces the stored session. Returns ErrNotFound if it was
	// never created.
	Save(ctx context.Context, s *Session) error

	// SaveReportIfAbsent stores the report for the session unless one is
	// already present. It returns the canonical report (the stored one,
	// whichever write won) and whether this call performed the write.
	SaveReportIfAbsent(ctx context.Context, id string, r *report.Report) (*report.Report, bool, error)

	// List returns all sessions, newest first.
	List(ctx context.Context) ([]*Session, error)
}
