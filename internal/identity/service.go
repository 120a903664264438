package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitalhq/vital-gateway/internal/apperr"
)

// Credential is the result of a successful register or login.
type Credential struct {
	UserID string
	Email  string
	Name   string
	Role   Role
	Token  string
}

// Service registers accounts and exchanges credentials for tokens.
type Service struct {
	store  UserStore
	tokens *TokenService
}

// NewService creates an identity service over the given store.
func NewService(store UserStore, tokens *TokenService) *Service {
	return &Service{store: store, tokens: tokens}
}

// Register creates an account and issues its first token. New accounts
// always start with the user role.
func (s *Service) Register(ctx context.Context, email, password, name string) (*Credential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperr.New(apperr.CodeValidation, "Email is already registered")
		}
		return nil, fmt.Errorf("failed to store user: %w", err)
	}

	return s.issue(u)
}

// Login verifies email+password and issues a token. Unknown accounts and
// wrong passwords produce the same error so login cannot be used to probe
// for registered emails.
func (s *Service) Login(ctx context.Context, email, password string) (*Credential, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.New(apperr.CodeAuth, "Invalid email or password")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(apperr.CodeAuth, "Invalid email or password")
	}

	return s.issue(u)
}

func (s *Service) issue(u *User) (*Credential, error) {
	token, err := s.tokens.Issue(Identity{UserID: u.ID, Role: u.Role})
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &Credential{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
		Token:  token,
	}, nil
}
