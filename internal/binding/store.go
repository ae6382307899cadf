package binding

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"
)

// Assignment lists the servers one user may use.
type Assignment struct {
	UserID  string
	Servers []string
	Primary string // must be one of Servers; empty means the first
}

// Store persists bindings and user assignments.
type Store struct {
	db *sql.DB
}

// NewStore creates a binding store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const bindingColumns = `id, name, plex_url, plex_token, radarr_url, radarr_api_key, sonarr_url, sonarr_api_key`

type scanner interface {
	Scan(dest ...any) error
}

func scanBinding(row scanner) (*Binding, error) {
	b := &Binding{}
	var radarr, sonarr Endpoint
	if err := row.Scan(&b.ID, &b.Name, &b.Plex.URL, &b.Plex.APIKey,
		&radarr.URL, &radarr.APIKey, &sonarr.URL, &sonarr.APIKey); err != nil {
		return nil, err
	}
	if radarr.URL != "" {
		b.Radarr = &radarr
	}
	if sonarr.URL != "" {
		b.Sonarr = &sonarr
	}
	return b, nil
}

// Get returns the binding with the given ID.
// Returns ErrNotFound if it does not exist.
func (s *Store) Get(ctx context.Context, id string) (*Binding, error) {
	b, err := scanBinding(s.db.QueryRowContext(ctx, `SELECT `+bindingColumns+` FROM servers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get server %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get server %s: %w", id, err)
	}
	return b, nil
}

// List returns every binding ordered by ID.
func (s *Store) List(ctx context.Context) ([]Binding, error) {
	return s.query(ctx, `SELECT `+bindingColumns+` FROM servers ORDER BY id`)
}

// ForUser returns the bindings assigned to a user. A user without
// assignments gets an empty set and a nil Primary.
func (s *Store) ForUser(ctx context.Context, userID string) (UserServers, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.plex_url, s.plex_token, s.radarr_url, s.radarr_api_key,
			s.sonarr_url, s.sonarr_api_key, us.is_primary
		FROM user_servers us JOIN servers s ON s.id = us.server_id
		WHERE us.user_id = ?
		ORDER BY us.is_primary DESC, s.id`, userID)
	if err != nil {
		return UserServers{}, fmt.Errorf("list servers for %s: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	var out UserServers
	primary := -1
	for rows.Next() {
		var (
			b              Binding
			radarr, sonarr Endpoint
			isPrimary      bool
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Plex.URL, &b.Plex.APIKey,
			&radarr.URL, &radarr.APIKey, &sonarr.URL, &sonarr.APIKey, &isPrimary); err != nil {
			return UserServers{}, fmt.Errorf("scan server: %w", err)
		}
		if radarr.URL != "" {
			b.Radarr = &radarr
		}
		if sonarr.URL != "" {
			b.Sonarr = &sonarr
		}
		if isPrimary {
			primary = len(out.Bindings)
		}
		out.Bindings = append(out.Bindings, b)
	}
	if err := rows.Err(); err != nil {
		return UserServers{}, fmt.Errorf("iterate servers: %w", err)
	}
	if primary >= 0 {
		out.Primary = &out.Bindings[primary]
	}
	return out, nil
}

// Sync makes the stored bindings and assignments match the given set.
// Servers not in bindings are removed along with their assignments.
func (s *Store) Sync(ctx context.Context, bindings []Binding, assignments []Assignment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	ids := make([]string, 0, len(bindings))
	for _, b := range bindings {
		var radarr, sonarr Endpoint
		if b.Radarr != nil {
			radarr = *b.Radarr
		}
		if b.Sonarr != nil {
			sonarr = *b.Sonarr
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO servers (id, name, plex_url, plex_token, radarr_url, radarr_api_key, sonarr_url, sonarr_api_key, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				plex_url = excluded.plex_url,
				plex_token = excluded.plex_token,
				radarr_url = excluded.radarr_url,
				radarr_api_key = excluded.radarr_api_key,
				sonarr_url = excluded.sonarr_url,
				sonarr_api_key = excluded.sonarr_api_key,
				updated_at = excluded.updated_at`,
			b.ID, b.Name, b.Plex.URL, b.Plex.APIKey, radarr.URL, radarr.APIKey, sonarr.URL, sonarr.APIKey, now,
		)
		if err != nil {
			return fmt.Errorf("upsert server %s: %w", b.ID, err)
		}
		ids = append(ids, b.ID)
	}

	if err := deleteStale(ctx, tx, ids); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_servers`); err != nil {
		return fmt.Errorf("clear assignments: %w", err)
	}
	for _, a := range assignments {
		primary := a.Primary
		if primary == "" && len(a.Servers) > 0 {
			primary = a.Servers[0]
		}
		if primary != "" && !slices.Contains(a.Servers, primary) {
			return fmt.Errorf("user %s: primary server %s is not assigned", a.UserID, primary)
		}
		for _, id := range a.Servers {
			if !slices.Contains(ids, id) {
				return fmt.Errorf("user %s: server %s: %w", a.UserID, id, ErrNotFound)
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO user_servers (user_id, server_id, is_primary) VALUES (?, ?, ?)
				ON CONFLICT (user_id, server_id) DO NOTHING`,
				a.UserID, id, id == primary,
			)
			if err != nil {
				return fmt.Errorf("assign server %s to %s: %w", id, a.UserID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func deleteStale(ctx context.Context, tx *sql.Tx, keep []string) error {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM servers`)
	if err != nil {
		return fmt.Errorf("list servers: %w", err)
	}
	var stale []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan server id: %w", err)
		}
		if !slices.Contains(keep, id) {
			stale = append(stale, id)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("iterate server ids: %w", err)
	}
	_ = rows.Close()

	for _, id := range stale {
		if _, err := tx.ExecContext(ctx, `DELETE FROM servers WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete server %s: %w", id, err)
		}
	}
	return nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Binding, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list servers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Binding
	for rows.Next() {
		b, err := scanBinding(rows)
		if err != nil {
			return nil, fmt.Errorf("scan server: %w", err)
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate servers: %w", err)
	}
	return out, nil
}
