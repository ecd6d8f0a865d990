// Package activity records operator actions (calls, emails, card
// dispositions) in the local SQLite activity log and answers the count
// queries the dashboard needs.
package activity

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ironlung/pkg/protocol"

	_ "modernc.org/sqlite" // SQLite driver
)

// timeLayout is the stored created_at format. Fixed-width UTC so that text
// comparison orders chronologically.
const timeLayout = "2006-01-02T15:04:05Z"

// Activity is one row of the activity log.
type Activity struct {
	ID         int64
	Type       protocol.ActivityType
	ProspectID int64 // 0 when not tied to a prospect
	Notes      string
	CreatedAt  time.Time
}

// QueryOpts filters Recent.
type QueryOpts struct {
	// Type restricts results to one activity type.
	Type protocol.ActivityType

	// After filters activities created at or after this time.
	After *time.Time

	// Before filters activities created before this time (exclusive).
	Before *time.Time

	// Limit restricts the number of results (0 = no limit).
	Limit int
}

// Store is the activity log.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path with WAL and a
// 5-second busy timeout, and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s on %s: %w", pragma, path, err)
		}
	}

	if _, err := db.ExecContext(ctx, protocol.SchemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema to %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close releases the database connection.
// Safe to call multiple times.
func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Log inserts a and returns its row ID. A zero CreatedAt is stamped with the
// current time.
func (s *Store) Log(ctx context.Context, a Activity) (int64, error) {
	if !a.Type.Valid() {
		return 0, fmt.Errorf("log activity: unknown type %q", a.Type)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	var prospect any
	if a.ProspectID != 0 {
		prospect = a.ProspectID
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO activities (activity_type, prospect_id, notes, created_at) VALUES (?, ?, ?, ?)`,
		string(a.Type), prospect, a.Notes, a.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("log activity: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("log activity: last insert id: %w", err)
	}
	return id, nil
}

// CountByType counts activities per type for the calendar day containing
// day, in day's location. Types with no rows are absent from the map.
func (s *Store) CountByType(ctx context.Context, day time.Time) (map[protocol.ActivityType]int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	rows, err := s.db.QueryContext(ctx,
		`SELECT activity_type, COUNT(*) FROM activities
		 WHERE created_at >= ? AND created_at < ?
		 GROUP BY activity_type`,
		start.UTC().Format(timeLayout), end.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("count activities: %w", err)
	}
	defer rows.Close()

	counts := make(map[protocol.ActivityType]int)
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, fmt.Errorf("scan activity count: %w", err)
		}
		counts[protocol.ActivityType(typ)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity counts: %w", err)
	}
	return counts, nil
}

// Recent returns activities matching opts, newest first.
func (s *Store) Recent(ctx context.Context, opts QueryOpts) ([]Activity, error) {
	query, args := buildQuery(opts)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		var typ, createdAt string
		var prospect sql.NullInt64
		if err := rows.Scan(&a.ID, &typ, &prospect, &a.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Type = protocol.ActivityType(typ)
		a.ProspectID = prospect.Int64
		a.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return out, nil
}

// buildQuery constructs the SQL query and arguments from QueryOpts.
func buildQuery(opts QueryOpts) (string, []any) {
	var conditions []string
	var args []any

	query := "SELECT id, activity_type, prospect_id, notes, created_at FROM activities"

	if opts.Type != "" {
		conditions = append(conditions, "activity_type = ?")
		args = append(args, string(opts.Type))
	}
	if opts.After != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, opts.After.UTC().Format(timeLayout))
	}
	if opts.Before != nil {
		conditions = append(conditions, "created_at < ?")
		args = append(args, opts.Before.UTC().Format(timeLayout))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC, id DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	return query, args
}
