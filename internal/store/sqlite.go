package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/nhle/schedule/internal/model"
)

// DefaultKey is the KV entry holding the task list.
const DefaultKey = "schedules"

// corruptSuffix marks the entry an unreadable task list is moved to.
const corruptSuffix = ".corrupt"

// SQLiteStore implements Store on top of a single-table key-value schema
// in a local SQLite database.
type SQLiteStore struct {
	db  *sqlx.DB
	key string
	log zerolog.Logger
}

var _ Store = (*SQLiteStore)(nil)

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithKey sets the KV entry the task list is stored under.
func WithKey(key string) Option {
	return func(s *SQLiteStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for recoverable data problems.
func WithLogger(l zerolog.Logger) Option {
	return func(s *SQLiteStore) { s.log = l }
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string, opts ...Option) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// One connection: every handler runs to completion before the next, and
	// an in-memory database only exists on the connection that created it.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, key: DefaultKey, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Key returns the KV entry the task list is stored under.
func (s *SQLiteStore) Key() string {
	return s.key
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Load reads the task list. A missing entry yields an empty list; an
// unreadable one is moved aside to "<key>.corrupt" and also yields an
// empty list.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.Task, error) {
	raw, ok, err := s.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("loading task list: %w", err)
	}
	if !ok {
		s.log.Debug().Str("key", s.key).Msg("no stored task list")
		return []model.Task{}, nil
	}

	tasks, err := DecodeTasks([]byte(raw))
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("discarding unreadable task list")
		if err := s.Set(ctx, s.key+corruptSuffix, raw); err != nil {
			s.log.Error().Err(err).Str("key", s.key).Msg("failed to stash unreadable task list")
		}
		return []model.Task{}, nil
	}

	s.log.Debug().Str("key", s.key).Int("count", len(tasks)).Msg("loaded task list")
	return tasks, nil
}

// DropCorrupt deletes the copy Load set aside for an unreadable task list
// and reports whether there was one.
func (s *SQLiteStore) DropCorrupt(ctx context.Context) (bool, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return false, err
	}
	stash := s.key + corruptSuffix
	if !slices.Contains(keys, stash) {
		return false, nil
	}
	if err := s.Delete(ctx, stash); err != nil {
		return false, err
	}
	s.log.Info().Str("key", stash).Msg("dropped unreadable task list")
	return true, nil
}

// Save replaces the stored task list.
func (s *SQLiteStore) Save(ctx context.Context, tasks []model.Task) error {
	data, err := EncodeTasks(tasks)
	if err != nil {
		return fmt.Errorf("saving task list: %w", err)
	}
	if err := s.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("saving task list: %w", err)
	}
	s.log.Debug().Str("key", s.key).Int("count", len(tasks)).Msg("saved task list")
	return nil
}

// Get returns the raw value for key and whether it exists.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM kv WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or overwrites the raw value for key.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, value, now, now,
	)
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Keys lists all stored keys in sorted order.
func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.SelectContext(ctx, &keys, "SELECT key FROM kv ORDER BY key"); err != nil {
		return nil, fmt.Errorf("kv keys: %w", err)
	}
	return keys, nil
}
