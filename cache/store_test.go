package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/swiftkotlin/db"
	"github.com/teranos/swiftkotlin/errors"
	testutil "github.com/teranos/swiftkotlin/internal/testing"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestKey(t *testing.T) {
	a := Key("indent=4", []byte("let a = 1"))
	assert.Len(t, a, 64)
	assert.Equal(t, a, Key("indent=4", []byte("let a = 1")))
	assert.NotEqual(t, a, Key("indent=2", []byte("let a = 1")))
	assert.NotEqual(t, a, Key("indent=4", []byte("let a = 2")))
	// the separator keeps settings and source apart
	assert.NotEqual(t, Key("ab", []byte("c")), Key("a", []byte("bc")))
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	e := Entry{Key: "k1", Input: "a.swift", Kotlin: "val a = 1\n", Fixmes: 2}
	require.NoError(t, s.Put(ctx, e))
	got, ok, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, e, got)

	// Put replaces
	e.Kotlin = "val a = 2\n"
	require.NoError(t, s.Put(ctx, e))
	got, _, err = s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "val a = 2\n", got.Kotlin)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Entries: 1, Hits: 2, Bytes: int64(len("val a = 2\n"))}, st)
}

func TestStorePruneAndClear(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return base }
	require.NoError(t, s.Put(ctx, Entry{Key: "old", Input: "a.swift"}))
	s.now = func() time.Time { return base.Add(48 * time.Hour) }
	require.NoError(t, s.Put(ctx, Entry{Key: "new", Input: "b.swift"}))

	n, err := s.Prune(ctx, base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, ok, err := s.Get(ctx, "old")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err = s.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, st)
}

func TestStoreClosedDatabase(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	s := New(conn)

	mock.ExpectQuery("SELECT input, kotlin, fixmes FROM translations WHERE key = ?").
		WithArgs("k").
		WillReturnError(errors.New("sql: database is closed"))

	_, _, err = s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrDatabaseClosed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorePutArguments(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	s := New(conn)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	mock.ExpectExec("INSERT INTO translations").
		WithArgs("k", "a.swift", "val a = 1\n", 1, now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Put(context.Background(), Entry{Key: "k", Input: "a.swift", Kotlin: "val a = 1\n", Fixmes: 1}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCloseLeavesSharedDatabaseOpen(t *testing.T) {
	conn := testutil.CreateTestDB(t)
	s := New(conn)
	require.NoError(t, s.Put(context.Background(), Entry{Key: "k", Input: "a.swift"}))

	require.NoError(t, s.Close())
	assert.NoError(t, conn.Ping())
	_, ok, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
}
