// Package audit keeps an append-only trail of the actions that change
// platform state: test lifecycle changes and student submissions. The
// trail is best-effort; a failed append is logged, never surfaced to
// the user.
package audit

import (
	"context"
	"database/sql"
	"time"
)

type Event struct {
	Action    string // test_created, test_toggled, test_deleted, result_submitted
	Subject   string // test code or result id
	Detail    string
	CreatedAt int64
}

type Recorder interface {
	Record(ctx context.Context, e Event) error
}

// SQLRecorder appends to the audit_log table.
type SQLRecorder struct{ db *sql.DB }

func NewSQLRecorder(db *sql.DB) *SQLRecorder { return &SQLRecorder{db: db} }

func (r *SQLRecorder) Record(ctx context.Context, e Event) error {
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (action, subject, detail, created_at)
		 VALUES ($1,$2,$3,$4)`,
		e.Action, e.Subject, e.Detail, e.CreatedAt)
	return err
}

type discard struct{}

func (discard) Record(context.Context, Event) error { return nil }

// Discard drops events; the default when auditing is not configured.
func Discard() Recorder { return discard{} }
