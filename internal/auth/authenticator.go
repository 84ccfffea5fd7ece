package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Authenticator verifies a username/password pair. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*Identity, error)
}

// UserLister is implemented by credential stores that can enumerate accounts.
type UserLister interface {
	ListUsers(ctx context.Context) ([]User, error)
}

// FileAuthenticator compares plaintext passwords from a FileStore.
type FileAuthenticator struct {
	store *FileStore
}

func NewFileAuthenticator(store *FileStore) *FileAuthenticator {
	return &FileAuthenticator{store: store}
}

func (a *FileAuthenticator) Authenticate(_ context.Context, username, password string) (*Identity, error) {
	u, ok := a.store.Lookup(username)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) != 1 {
		return nil, ErrInvalidCredentials
	}
	return u.Identity(), nil
}

func (a *FileAuthenticator) ListUsers(context.Context) ([]User, error) {
	return a.store.Users(), nil
}

// UserStore is the lookup side of the users table.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
}

// DBAuthenticator verifies bcrypt hashes stored in a UserStore.
type DBAuthenticator struct {
	store        UserStore
	queryTimeout time.Duration
	dummyHash    []byte
}

// NewDBAuthenticator builds the dummy hash at cost, which must match the cost
// the stored hashes were generated with.
func NewDBAuthenticator(store UserStore, queryTimeout time.Duration, cost int) (*DBAuthenticator, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	// compared against when the username is unknown so both failures cost one bcrypt run
	dummy, err := bcrypt.GenerateFromPassword([]byte("shieldops-dummy"), cost)
	if err != nil {
		return nil, err
	}
	return &DBAuthenticator{store: store, queryTimeout: queryTimeout, dummyHash: dummy}, nil
}

func (a *DBAuthenticator) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	user, err := a.lookup(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user.Identity(), nil
}

func (a *DBAuthenticator) ListUsers(ctx context.Context) ([]User, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	users, err := a.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	return users, nil
}

func (a *DBAuthenticator) lookup(ctx context.Context, username string) (*User, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	return a.store.GetByUsername(ctx, username)
}

func (a *DBAuthenticator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.queryTimeout)
}
