package authstub

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock is a settable clock for expiry tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func openTestStore(t *testing.T, ttl time.Duration, opts ...StoreOption) (*SQLStore, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "users.db")
	store, err := OpenSQLStore(dbPath, ttl, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, dbPath
}

func TestOpenSQLStore_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "users.db")

	store, err := OpenSQLStore(dbPath, 0)
	require.NoError(t, err)
	defer store.Close()

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err)
	require.True(t, info.IsDir())
	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	}

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file should exist")
}

func TestOpenSQLStore_RunsMigrations(t *testing.T) {
	store, _ := openTestStore(t, 0)

	var table string
	err := store.db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='users'`).Scan(&table)
	require.NoError(t, err)
	require.Equal(t, "users", table)

	var (
		version int
		dirty   bool
	)
	err = store.db.QueryRow(`SELECT version, dirty FROM ` + versionTable).Scan(&version, &dirty)
	require.NoError(t, err)
	require.Equal(t, 1, version)
	require.False(t, dirty)
}

func TestOpenSQLStore_ReopenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "users.db")

	first, err := OpenSQLStore(dbPath, 0)
	require.NoError(t, err)
	_, err = first.Add(context.Background(), "validuser")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenSQLStore(dbPath, 0)
	require.NoError(t, err)
	defer second.Close()

	_, ok, err := second.Get(context.Background(), "validuser")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestOpenSQLStore_WALMode(t *testing.T) {
	store, _ := openTestStore(t, 0)

	var mode string
	require.NoError(t, store.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	require.Equal(t, "wal", mode)
}

func TestSQLStore_AddAndGet(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)}
	store, _ := openTestStore(t, 0, WithClock(clock.Now))

	added, err := store.Add(ctx, "ValidUser")
	require.NoError(t, err)
	require.Len(t, added.ID, 36)
	require.True(t, added.CreatedAt.Equal(clock.Now()))

	got, ok, err := store.Get(ctx, "validuser")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, added.ID, got.ID)
	require.Equal(t, "ValidUser", got.Username)
	require.True(t, got.CreatedAt.Equal(clock.Now()), "CreatedAt %v", got.CreatedAt)

	_, err = store.Add(ctx, "VALIDUSER")
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, ok, err = store.Get(ctx, "someoneelse")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLStore_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	store, _ := openTestStore(t, time.Hour, WithClock(clock.Now))

	_, err := store.Add(ctx, "validuser")
	require.NoError(t, err)
	n, err := store.Len(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	clock.Advance(59 * time.Minute)
	_, err = store.Add(ctx, "validuser")
	require.ErrorIs(t, err, ErrUsernameTaken, "still live before the ttl")

	clock.Advance(time.Minute)
	_, ok, err := store.Get(ctx, "validuser")
	require.NoError(t, err)
	require.False(t, ok, "lapsed at the ttl")
	n, err = store.Len(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	again, err := store.Add(ctx, "validuser")
	require.NoError(t, err, "lapsed usernames can be registered again")
	require.True(t, again.CreatedAt.Equal(clock.Now()))
}

func TestMigrationDriver_Lock(t *testing.T) {
	store, _ := openTestStore(t, 0)
	d, err := newMigrationDriver(store.db)
	require.NoError(t, err)

	require.NoError(t, d.Lock())
	require.Error(t, d.Lock())
	require.NoError(t, d.Unlock())
	require.Error(t, d.Unlock())
}
