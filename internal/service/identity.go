package service

import (
	"context"
	"errors"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
)

// IdentityResolver maps a session value to the user it names.
type IdentityResolver struct {
	users UserStore
	codec SessionCodec
}

func NewIdentityResolver(users UserStore, codec SessionCodec) *IdentityResolver {
	return &IdentityResolver{users: users, codec: codec}
}

// Resolve returns the user for the cookie value. Empty or undecodable
// values and emails with no account yield ErrUnauthenticated.
func (r *IdentityResolver) Resolve(ctx context.Context, cookie string) (*domain.User, error) {
	if cookie == "" {
		return nil, ErrUnauthenticated
	}
	email, err := r.codec.Decode(cookie)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	u, err := r.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
