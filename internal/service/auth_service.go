package service

import (
	"context"
	"errors"
	"fmt"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
)

// AuthService handles login and registration.
type AuthService struct {
	users     UserStore
	passwords PasswordVerifier
}

func NewAuthService(users UserStore, passwords PasswordVerifier) *AuthService {
	return &AuthService{users: users, passwords: passwords}
}

// Login returns the user when email exists and password matches.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !s.passwords.Verify(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Register creates an account. Email is stored exactly as submitted.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}
