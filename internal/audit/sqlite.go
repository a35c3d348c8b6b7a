package audit

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/config"
)

// SQLiteRecorder persists events to SQLite asynchronously.
type SQLiteRecorder struct {
	db       *sql.DB
	buffer   chan Event
	done     chan struct{}
	wg       sync.WaitGroup
	config   config.AuditConfig
	stopOnce sync.Once
}

// NewSQLiteRecorder opens (or creates) the audit database and starts
// the flush worker.
func NewSQLiteRecorder(cfg config.AuditConfig) (*SQLiteRecorder, error) {
	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, err
	}

	// Configure SQLite for concurrent access
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, err
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	r := &SQLiteRecorder{
		db:     db,
		buffer: make(chan Event, cfg.BufferSize),
		done:   make(chan struct{}),
		config: cfg,
	}

	r.wg.Add(1)
	go r.worker()

	return r, nil
}

func runMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS security_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp INTEGER NOT NULL,
		kind TEXT NOT NULL,
		client_ip TEXT,
		username TEXT,
		user_id TEXT,
		origin TEXT,
		detail TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_events_timestamp ON security_events(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_events_kind ON security_events(kind);
	CREATE INDEX IF NOT EXISTS idx_events_username ON security_events(username) WHERE username IS NOT NULL AND username != '';
	`
	_, err := db.Exec(schema)
	return err
}

// Record queues an event for async writing. If the buffer is full the
// event is dropped rather than blocking the request path.
func (r *SQLiteRecorder) Record(ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	select {
	case r.buffer <- ev:
	default:
	}
}

// Close stops the worker, flushes remaining events and closes the
// database.
func (r *SQLiteRecorder) Close() error {
	r.stopOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
	})
	return r.db.Close()
}

func (r *SQLiteRecorder) worker() {
	defer r.wg.Done()

	batch := make([]Event, 0, r.config.BatchSize)
	ticker := time.NewTicker(r.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-r.buffer:
			batch = append(batch, ev)
			if len(batch) >= r.config.BatchSize {
				r.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				r.flush(batch)
				batch = batch[:0]
			}
		case <-r.done:
			// Drain remaining events
			for {
				select {
				case ev := <-r.buffer:
					batch = append(batch, ev)
				default:
					if len(batch) > 0 {
						r.flush(batch)
					}
					return
				}
			}
		}
	}
}

func (r *SQLiteRecorder) flush(events []Event) {
	if len(events) == 0 {
		return
	}

	tx, err := r.db.Begin()
	if err != nil {
		return
	}

	stmt, err := tx.Prepare(`
		INSERT INTO security_events (timestamp, kind, client_ip, username, user_id, origin, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return
	}
	defer stmt.Close()

	for _, ev := range events {
		_, err := stmt.Exec(
			ev.Timestamp.UnixMilli(),
			ev.Kind,
			ev.ClientIP,
			ev.Username,
			ev.UserID,
			ev.Origin,
			ev.Detail,
		)
		if err != nil {
			// Continue with other events on error
			continue
		}
	}

	tx.Commit()
}

// Query retrieves events matching the filter, newest first.
func (r *SQLiteRecorder) Query(ctx context.Context, filter QueryFilter) ([]Event, int64, error) {
	baseQuery := `FROM security_events WHERE 1=1`
	var args []interface{}

	if filter.Kind != nil && *filter.Kind != "" {
		baseQuery += ` AND kind = ?`
		args = append(args, *filter.Kind)
	}

	if filter.Username != nil && *filter.Username != "" {
		baseQuery += ` AND username = ?`
		args = append(args, *filter.Username)
	}

	if filter.StartTime != nil {
		baseQuery += ` AND timestamp >= ?`
		args = append(args, filter.StartTime.UnixMilli())
	}

	if filter.EndTime != nil {
		baseQuery += ` AND timestamp <= ?`
		args = append(args, filter.EndTime.UnixMilli())
	}

	var total int64
	countQuery := `SELECT COUNT(*) ` + baseQuery
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	selectQuery := `SELECT timestamp, kind, client_ip, username, user_id, origin, detail ` +
		baseQuery + ` ORDER BY timestamp DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var ts int64
		var clientIP, username, userID, origin, detail sql.NullString

		if err := rows.Scan(&ts, &ev.Kind, &clientIP, &username, &userID, &origin, &detail); err != nil {
			return nil, 0, err
		}

		ev.Timestamp = time.UnixMilli(ts)
		ev.ClientIP = clientIP.String
		ev.Username = username.String
		ev.UserID = userID.String
		ev.Origin = origin.String
		ev.Detail = detail.String

		events = append(events, ev)
	}

	return events, total, rows.Err()
}

// DeleteOlderThan removes events recorded before the given time.
func (r *SQLiteRecorder) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM security_events WHERE timestamp < ?`, before.UnixMilli())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// StartCleanupJob starts a background job that prunes events past the
// retention window.
func (r *SQLiteRecorder) StartCleanupJob(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		// Run immediately on start
		r.cleanup()

		for {
			select {
			case <-ticker.C:
				r.cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (r *SQLiteRecorder) cleanup() {
	cutoff := time.Now().AddDate(0, 0, -r.config.RetentionDays)
	r.DeleteOlderThan(context.Background(), cutoff)
}

// QueryFilter defines filters for querying security events.
type QueryFilter struct {
	Kind      *string
	Username  *string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Offset    int
}
