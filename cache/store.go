// Package cache stores finished translations so unchanged inputs are not
// translated again.
//
// Entries are keyed by a hash of the translator settings and the Swift
// source, so changing either simply misses. Entries are never invalidated
// in place; Prune drops the ones not used for a while.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/swiftkotlin/db"
	"github.com/teranos/swiftkotlin/errors"
	"github.com/teranos/swiftkotlin/logger"
)

// Entry is one cached translation. Kotlin excludes the header line.
type Entry struct {
	Key    string
	Input  string
	Kotlin string
	Fixmes int
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries int64 `json:"entries"`
	Hits    int64 `json:"hits"`
	Bytes   int64 `json:"bytes"`
}

// Store is a SQLite-backed translation cache, safe for concurrent use.
type Store struct {
	db     *sql.DB
	owned  bool
	now    func() time.Time
	logger *zap.SugaredLogger
}

// New wraps an already migrated database.
func New(conn *sql.DB) *Store {
	return &Store{
		db:     conn,
		now:    time.Now,
		logger: logger.ComponentLogger("cache"),
	}
}

// Open opens or creates the cache database at path.
func Open(path string) (*Store, error) {
	conn, err := db.OpenWithMigrations(path, logger.ComponentLogger("cache.db"))
	if err != nil {
		return nil, err
	}
	s := New(conn)
	s.owned = true
	return s, nil
}

// DefaultPath is the cache file under the user cache directory.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(err, "no user cache directory")
	}
	return filepath.Join(dir, "swiftkotlin", "cache.db"), nil
}

// Key derives the cache key of source under translator settings
// fingerprint.
func Key(fingerprint string, source []byte) string {
	h := sha256.New()
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write(source)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the entry stored under key and records the hit.
func (s *Store) Get(ctx context.Context, key string) (Entry, bool, error) {
	e := Entry{Key: key}
	err := s.db.QueryRowContext(ctx,
		"SELECT input, kotlin, fixmes FROM translations WHERE key = ?", key,
	).Scan(&e.Input, &e.Kotlin, &e.Fixmes)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, s.wrap(err, "failed to read cache entry")
	}

	if _, err := s.db.ExecContext(ctx,
		"UPDATE translations SET hits = hits + 1, last_used_at = ? WHERE key = ?",
		s.now().UTC(), key,
	); err != nil {
		// the entry is still good
		s.logger.Debugw("Failed to record cache hit", logger.FieldError, err)
	}
	return e, true, nil
}

// Put stores e, replacing any entry with the same key.
func (s *Store) Put(ctx context.Context, e Entry) error {
	now := s.now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO translations (key, input, kotlin, fixmes, created_at, last_used_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			input = excluded.input,
			kotlin = excluded.kotlin,
			fixmes = excluded.fixmes,
			last_used_at = excluded.last_used_at`,
		e.Key, e.Input, e.Kotlin, e.Fixmes, now, now,
	)
	if err != nil {
		return s.wrap(err, "failed to write cache entry")
	}
	return nil
}

// Stats counts entries, recorded hits and stored Kotlin bytes.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(hits), 0), COALESCE(SUM(LENGTH(kotlin)), 0) FROM translations",
	).Scan(&st.Entries, &st.Hits, &st.Bytes)
	if err != nil {
		return Stats{}, s.wrap(err, "failed to read cache stats")
	}
	return st, nil
}

// Prune deletes entries last used before cutoff and returns how many.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM translations WHERE last_used_at < ?", cutoff.UTC())
	if err != nil {
		return 0, s.wrap(err, "failed to prune cache")
	}
	n, _ := res.RowsAffected()
	s.logger.Infow("Pruned cache", logger.FieldCount, n, "cutoff", cutoff)
	return n, nil
}

// Clear deletes every entry.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM translations")
	if err != nil {
		return 0, s.wrap(err, "failed to clear cache")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Close closes the database when the store opened it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

func (s *Store) wrap(err error, msg string) error {
	if db.IsDatabaseClosed(err) {
		return errors.Wrap(db.ErrDatabaseClosed, msg)
	}
	return errors.Wrap(err, msg)
}
