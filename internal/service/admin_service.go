package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
)

// AdminService provides the admin panel queries.
type AdminService struct {
	users         UserStore
	tasks         TaskStore
	adminEmail    string
	adminPassword string
}

// NewAdminService creates a new admin service
func NewAdminService(users UserStore, tasks TaskStore, adminEmail, adminPassword string) *AdminService {
	return &AdminService{
		users:         users,
		tasks:         tasks,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

// IsAdmin reports whether u is the configured administrator.
func (s *AdminService) IsAdmin(u *domain.User) bool {
	return u != nil && u.Email == s.adminEmail
}

// ListUsers returns every user ordered by id, gated on the admin identity.
func (s *AdminService) ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if !s.IsAdmin(actor) {
		return nil, ErrAccessDenied
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// VerifyPassword compares against the configured admin password in
// constant time.
func (s *AdminService) VerifyPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
}

// ListUsersWithStats returns per-user task counts for every user.
func (s *AdminService) ListUsersWithStats(ctx context.Context) ([]domain.UserTaskStats, error) {
	stats, err := s.tasks.StatsByUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats by user: %w", err)
	}
	return stats, nil
}

// GetUserTasks returns the user and their tasks ordered by due date.
func (s *AdminService) GetUserTasks(ctx context.Context, userID int64) (*domain.User, []*domain.Task, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrUserNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	tasks, err := s.tasks.ListByOwner(ctx, u.ID, repository.OrderByDueDate)
	if err != nil {
		return nil, nil, fmt.Errorf("list tasks: %w", err)
	}
	return u, tasks, nil
}
