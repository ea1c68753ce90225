package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rsoni/hireview/internal/interview"
	"github.com/rsoni/hireview/internal/report"
)

// sqliteSessionRepo implements interview.SessionRepo on the interviews
// table. The session body lives in the data column with the report held
// out into its own column, which makes "write report once" a single
// guarded UPDATE.
type sqliteSessionRepo struct {
	db *sql.DB
}

// encodeSession marshals the session without its report. The report column
// is authoritative; keeping a second copy inside data would let the two
// disagree.
func encodeSession(s *interview.Session) ([]byte, error) {
	clone := *s
	clone.Report = nil
	return json.Marshal(&clone)
}

func decodeSession(data []byte, reportJSON sql.NullString) (*interview.Session, error) {
	var s interview.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if reportJSON.Valid {
		var r report.Report
		if err := json.Unmarshal([]byte(reportJSON.String), &r); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		s.Report = &r
	}
	return &s, nil
}

func (r *sqliteSessionRepo) Create(ctx context.Context, s *interview.Session) error {
	data, err := encodeSession(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO interviews (id, status, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		s.ID, string(s.Status), string(data),
		s.CreatedAt.Format(time.RFC3339Nano), s.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return interview.ErrExists
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *sqliteSessionRepo) Get(ctx context.Context, id string) (*interview.Session, error) {
	var data string
	var reportJSON sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT data, report FROM interviews WHERE id = ?`, id,
	).Scan(&data, &reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, interview.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	return decodeSession([]byte(data), reportJSON)
}

func (r *sqliteSessionRepo) Save(ctx context.Context, s *interview.Session) error {
	data, err := encodeSession(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE interviews SET status = ?, data = ?, updated_at = ? WHERE id = ?`,
		string(s.Status), string(data), s.UpdatedAt.Format(time.RFC3339Nano), s.ID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n == 0 {
		return interview.ErrNotFound
	}
	return nil
}

func (r *sqliteSessionRepo) SaveReportIfAbsent(ctx context.Context, id string, rep *report.Report) (*report.Report, bool, error) {
	data, err := json.Marshal(rep)
	if err != nil {
		return nil, false, fmt.Errorf("encode report: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE interviews SET report = ? WHERE id = ? AND report IS NULL`,
		string(data), id,
	)
	if err != nil {
		return nil, false, fmt.Errorf("store report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("store report: %w", err)
	}
	if n == 1 {
		return rep, true, nil
	}

	// Another writer got there first, or the session does not exist.
	var stored sql.NullString
	err = r.db.QueryRowContext(ctx, `SELECT report FROM interviews WHERE id = ?`, id).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, interview.ErrNotFound
	}
	if err != nil {
		return nil, false, fmt.Errorf("read stored report: %w", err)
	}
	if !stored.Valid {
		return nil, false, fmt.Errorf("report missing after guarded write")
	}
	var canonical report.Report
	if err := json.Unmarshal([]byte(stored.String), &canonical); err != nil {
		return nil, false, fmt.Errorf("decode stored report: %w", err)
	}
	return &canonical, false, nil
}

func (r *sqliteSessionRepo) List(ctx context.Context) ([]*interview.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT data, report FROM interviews ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*interview.Session
	for rows.Next() {
		var data string
		var reportJSON sql.NullString
		if err := rows.Scan(&data, &reportJSON); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s, err := decodeSession([]byte(data), reportJSON)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// isUniqueViolation matches the driver's primary key constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
