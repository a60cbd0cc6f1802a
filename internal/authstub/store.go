package authstub

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// ErrUsernameTaken is returned when the username is already registered.
var ErrUsernameTaken = errors.New("username already taken")

// User is a registered stub account. Passwords are never kept.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// UserStore remembers registered usernames. Usernames compare
// case-insensitively and registrations lapse after the store's ttl.
type UserStore interface {
	Add(ctx context.Context, username string) (User, error)
	Get(ctx context.Context, username string) (User, bool, error)
	Len(ctx context.Context) (int, error)
	Close() error
}

// StoreOption configures a store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	now func() time.Time
}

// WithClock replaces time.Now for CreatedAt and expiry.
func WithClock(now func() time.Time) StoreOption {
	return func(o *storeOptions) {
		if now != nil {
			o.now = now
		}
	}
}

func applyStoreOptions(opts []StoreOption) storeOptions {
	o := storeOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// MemoryStore keeps users in a go-cache with per-entry expiry. It is the
// default when no database path is configured.
type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration
	now   func() time.Time
}

var _ UserStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store. A ttl of zero keeps users forever.
// Expiry is driven by go-cache's own clock; WithClock only stamps CreatedAt.
func NewMemoryStore(ttl time.Duration, opts ...StoreOption) *MemoryStore {
	o := applyStoreOptions(opts)
	expiration := ttl
	if expiration <= 0 {
		expiration = gocache.NoExpiration
	}
	cleanup := expiration
	if cleanup == gocache.NoExpiration || cleanup > 10*time.Minute {
		cleanup = 10 * time.Minute
	}
	return &MemoryStore{
		cache: gocache.New(expiration, cleanup),
		ttl:   expiration,
		now:   o.now,
	}
}

// Add registers username.
func (s *MemoryStore) Add(_ context.Context, username string) (User, error) {
	u := User{ID: uuid.NewString(), Username: username, CreatedAt: s.now()}
	if err := s.cache.Add(cacheKey(username), u, s.ttl); err != nil {
		return User{}, ErrUsernameTaken
	}
	return u, nil
}

// Get looks a user up by name.
func (s *MemoryStore) Get(_ context.Context, username string) (User, bool, error) {
	v, ok := s.cache.Get(cacheKey(username))
	if !ok {
		return User{}, false, nil
	}
	u, ok := v.(User)
	return u, ok, nil
}

// Len is the number of live registrations.
func (s *MemoryStore) Len(context.Context) (int, error) {
	return s.cache.ItemCount(), nil
}

// Close drops every registration.
func (s *MemoryStore) Close() error {
	s.cache.Flush()
	return nil
}

func usernameKey(username string) string {
	return strings.ToLower(username)
}

func cacheKey(username string) string {
	return "user:" + usernameKey(username)
}
