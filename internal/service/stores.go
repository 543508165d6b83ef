package service

import (
	"context"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
)

// UserStore is the subset of repository.UserRepository the services need.
// Implementations return repository.ErrNotFound and repository.ErrDuplicate.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
}

type TaskStore interface {
	ListByOwner(ctx context.Context, ownerID int64, order repository.TaskOrder) ([]*domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	SetStatus(ctx context.Context, id int64, status domain.TaskStatus) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	StatsByUser(ctx context.Context) ([]domain.UserTaskStats, error)
}

type AuditStore interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

var (
	_ UserStore  = (*repository.UserRepository)(nil)
	_ TaskStore  = (*repository.TaskRepository)(nil)
	_ AuditStore = (*repository.AuditRepository)(nil)
)
