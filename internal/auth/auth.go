// Package auth implements the local email/password identity backend.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/abhisek/edusticker/internal/store"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Identity is an authenticated user.
type Identity struct {
	ID          string
	Email       string
	DisplayName string
}

// Service registers and authenticates accounts.
type Service struct {
	accounts store.AccountRepo
	cost     int
}

// NewService creates a Service. A cost of 0 uses bcrypt.DefaultCost.
func NewService(accounts store.AccountRepo, cost int) *Service {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{accounts: accounts, cost: cost}
}

// Register creates a new account and returns its identity.
func (s *Service) Register(ctx context.Context, email, password, displayName string) (*Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acct := &store.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(displayName),
	}
	if err := s.accounts.Create(ctx, acct); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	return &Identity{ID: acct.ID, Email: acct.Email, DisplayName: acct.DisplayName}, nil
}

// Login checks credentials and returns the identity.
func (s *Service) Login(ctx context.Context, email, password string) (*Identity, error) {
	acct, err := s.accounts.ByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if acct == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &Identity{ID: acct.ID, Email: acct.Email, DisplayName: acct.DisplayName}, nil
}

// UpdateDisplayName changes the display name stored with the account.
func (s *Service) UpdateDisplayName(ctx context.Context, userID, name string) error {
	if err := s.accounts.UpdateDisplayName(ctx, userID, name); err != nil {
		return fmt.Errorf("update display name: %w", err)
	}
	return nil
}
