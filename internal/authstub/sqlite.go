package authstub

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"qkart/internal/log"
)

// SQLStore keeps users in a SQLite file so registrations survive restarts
// of "qkart stub".
type SQLStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

var _ UserStore = (*SQLStore)(nil)

// OpenSQLStore opens (creating if needed) the database at path and brings
// its schema up to date. A ttl of zero keeps users forever.
func OpenSQLStore(path string, ttl time.Duration, opts ...StoreOption) (*SQLStore, error) {
	o := applyStoreOptions(opts)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=journal_mode(wal)"
	log.Debug(log.CatStub, "Opening database", "path", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info(log.CatStub, "Connected to database", "path", path)
	return &SQLStore{db: db, ttl: max(ttl, 0), now: o.now}, nil
}

// Add registers username, replacing a lapsed registration of the same name.
func (s *SQLStore) Add(ctx context.Context, username string) (User, error) {
	now := s.now()
	u := User{ID: uuid.NewString(), Username: username, CreatedAt: now}

	var expiresAt sql.NullInt64
	if s.ttl > 0 {
		expiresAt = sql.NullInt64{Int64: now.Add(s.ttl).UnixNano(), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return User{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM users WHERE username_key = ? AND expires_at IS NOT NULL AND expires_at <= ?`,
		usernameKey(username), now.UnixNano(),
	); err != nil {
		return User{}, fmt.Errorf("clearing lapsed user: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO users (id, username, username_key, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(username_key) DO NOTHING`,
		u.ID, u.Username, usernameKey(username), now.UnixNano(), expiresAt,
	)
	if err != nil {
		return User{}, fmt.Errorf("inserting user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return User{}, fmt.Errorf("inserting user: %w", err)
	}
	if n == 0 {
		return User{}, ErrUsernameTaken
	}

	if err := tx.Commit(); err != nil {
		return User{}, fmt.Errorf("committing user: %w", err)
	}
	return u, nil
}

// Get looks up a live registration by name.
func (s *SQLStore) Get(ctx context.Context, username string) (User, bool, error) {
	var (
		u       User
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, created_at FROM users
		 WHERE username_key = ? AND (expires_at IS NULL OR expires_at > ?)`,
		usernameKey(username), s.now().UnixNano(),
	).Scan(&u.ID, &u.Username, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, fmt.Errorf("querying user: %w", err)
	}
	u.CreatedAt = time.Unix(0, created)
	return u, true, nil
}

// Len is the number of live registrations.
func (s *SQLStore) Len(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE expires_at IS NULL OR expires_at > ?`,
		s.now().UnixNano(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
