package request

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DelsinneJordan/BigFlix/internal/catalog"
)

// mapSQLiteError converts SQLite errors to package errors.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "PRIMARY KEY constraint failed") {
		return ErrDuplicate
	}
	return err
}

// Store persists requests and tracked items.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore creates a request store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

const requestColumns = `id, user_id, server_id, tmdb_id, media_type, title, year, seasons, status,
	processed_by, notes, created_at, updated_at, processed_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(row scanner) (*Request, error) {
	r := &Request{}
	var seasons string
	if err := row.Scan(&r.ID, &r.UserID, &r.ServerID, &r.TMDBID, &r.Kind, &r.Title, &r.Year, &seasons, &r.Status,
		&r.ProcessedBy, &r.Notes, &r.CreatedAt, &r.UpdatedAt, &r.ProcessedAt); err != nil {
		return nil, err
	}
	if seasons != "" {
		if err := json.Unmarshal([]byte(seasons), &r.Seasons); err != nil {
			return nil, fmt.Errorf("decode seasons: %w", err)
		}
	}
	return r, nil
}

// Add inserts r unless a pending or approved request exists for the same
// server, item and kind, in which case it returns ErrDuplicate.
func (s *Store) Add(ctx context.Context, r *Request) error {
	seasons, err := json.Marshal(r.Seasons)
	if err != nil {
		return fmt.Errorf("encode seasons: %w", err)
	}
	if r.Seasons == nil {
		seasons = []byte("[]")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := findOpen(ctx, tx, r.ServerID, r.TMDBID, r.Kind)
	if err == nil {
		return fmt.Errorf("%w: request %d is already open", ErrDuplicate, existing.ID)
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("check open requests: %w", err)
	}

	now := s.now()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO requests (user_id, server_id, tmdb_id, media_type, title, year, seasons, status,
			processed_by, notes, created_at, updated_at, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.UserID, r.ServerID, r.TMDBID, r.Kind, r.Title, r.Year, string(seasons), r.Status,
		r.ProcessedBy, r.Notes, now, now, r.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("insert request: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	r.ID = id
	r.CreatedAt = now
	r.UpdatedAt = now
	return nil
}

// Get retrieves a request by ID.
// Returns ErrNotFound if the request does not exist.
func (s *Store) Get(ctx context.Context, id int64) (*Request, error) {
	r, err := scanRequest(s.db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get request %d: %w", id, mapSQLiteError(err))
	}
	return r, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// findOpen returns the pending or approved request for an item on a server.
func findOpen(ctx context.Context, q queryRower, serverID string, tmdbID int64, kind catalog.Kind) (*Request, error) {
	r, err := scanRequest(q.QueryRowContext(ctx, `
		SELECT `+requestColumns+` FROM requests
		WHERE server_id = ? AND tmdb_id = ? AND media_type = ? AND status IN (?, ?)
		ORDER BY id LIMIT 1`,
		serverID, tmdbID, kind, StatusPending, StatusApproved,
	))
	if err != nil {
		return nil, fmt.Errorf("find open request for %d: %w", tmdbID, mapSQLiteError(err))
	}
	return r, nil
}

// List returns requests matching the filter, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]*Request, error) {
	var conditions []string
	var args []any

	if f.UserID != nil {
		conditions = append(conditions, "user_id = ?")
		args = append(args, *f.UserID)
	}
	if f.ServerID != nil {
		conditions = append(conditions, "server_id = ?")
		args = append(args, *f.ServerID)
	}
	if f.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *f.Status)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := s.db.QueryContext(ctx, "SELECT "+requestColumns+" FROM requests "+whereClause+" ORDER BY id DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	return results, nil
}

// Transition moves r to status to, stamping processor and notes. The update
// only applies if the stored status still equals r.Status.
func (s *Store) Transition(ctx context.Context, r *Request, to Status, processedBy string, notes *string) error {
	if !r.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidState, r.Status, to)
	}

	now := s.now()
	result, err := s.db.ExecContext(ctx, `
		UPDATE requests SET status = ?, processed_by = ?, notes = COALESCE(?, notes), processed_at = ?, updated_at = ?
		WHERE id = ? AND status = ?`,
		to, processedBy, notes, now, now, r.ID, r.Status,
	)
	if err != nil {
		return fmt.Errorf("update request %d: %w", r.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		if _, err := s.Get(ctx, r.ID); err != nil {
			return err
		}
		return fmt.Errorf("transition request %d: %w", r.ID, ErrInvalidState)
	}

	r.Status = to
	r.ProcessedBy = &processedBy
	if notes != nil {
		r.Notes = notes
	}
	r.ProcessedAt = &now
	r.UpdatedAt = now
	return nil
}

// Delete removes a request by ID.
// Returns ErrNotFound if the request does not exist.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM requests WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete request %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete request %d: %w", id, ErrNotFound)
	}
	return nil
}

// Track records that an item was pushed toward fulfillment.
// Tracking an already tracked item is a no-op.
func (s *Store) Track(ctx context.Context, t TrackedItem) error {
	if t.TrackedAt.IsZero() {
		t.TrackedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tracked_items (server_id, tmdb_id, media_type, requested_by, tracked_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (server_id, tmdb_id, media_type) DO NOTHING`,
		t.ServerID, t.TMDBID, t.Kind, t.RequestedBy, t.TrackedAt,
	)
	if err != nil {
		return fmt.Errorf("track item %d: %w", t.TMDBID, mapSQLiteError(err))
	}
	return nil
}

// IsTracked reports whether an item was pushed toward fulfillment on a server.
func (s *Store) IsTracked(ctx context.Context, serverID string, tmdbID int64, kind catalog.Kind) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tracked_items WHERE server_id = ? AND tmdb_id = ? AND media_type = ?`,
		serverID, tmdbID, kind,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check tracked item %d: %w", tmdbID, err)
	}
	return n > 0, nil
}
