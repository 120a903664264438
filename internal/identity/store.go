package identity

import (
	"context"
	"errors"
	"sync"
	"time"
)

// User is a registered account.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// ErrUserNotFound is returned by stores when no account matches.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned by stores when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// UserStore persists accounts for the identity service.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// MemoryUserStore is an in-process UserStore for tests and single-node
// development setups.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byEmail map[string]*User
}

// NewMemoryUserStore creates an empty in-memory store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{byEmail: make(map[string]*User)}
}

// Create implements UserStore.
func (s *MemoryUserStore) Create(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[u.Email]; ok {
		return ErrEmailTaken
	}
	cp := *u
	s.byEmail[u.Email] = &cp
	return nil
}

// FindByEmail implements UserStore.
func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}
