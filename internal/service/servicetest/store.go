// Package servicetest provides in-memory stores that satisfy the service
// store interfaces and mirror the Postgres repositories' semantics.
package servicetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
)

// Store holds users, tasks and audit entries in memory.
// Setting Err makes every call fail with it.
type Store struct {
	mu       sync.Mutex
	users    []*domain.User
	tasks    []*domain.Task
	audit    []*domain.AuditLog
	nextUser int64
	nextTask int64

	Err error
	Now func() time.Time
}

func New() *Store {
	return &Store{Now: time.Now}
}

func (s *Store) Users() *Users { return &Users{s} }
func (s *Store) Tasks() *Tasks { return &Tasks{s} }
func (s *Store) Audit() *Audit { return &Audit{s} }

// AddUser inserts a user directly and returns it.
func (s *Store) AddUser(email, password string) *domain.User {
	u := &domain.User{Email: email, PasswordHash: password}
	_ = s.Users().Create(context.Background(), u)
	return u
}

// AddTask inserts a task directly and returns it.
func (s *Store) AddTask(ownerID int64, title string, status domain.TaskStatus, due *time.Time) *domain.Task {
	t := &domain.Task{Title: title, Status: status, DueDate: due, OwnerID: ownerID}
	_ = s.Tasks().Create(context.Background(), t)
	return t
}

// AuditLogs returns a snapshot of recorded audit entries.
func (s *Store) AuditLogs() []*domain.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.AuditLog(nil), s.audit...)
}

// Task returns a copy of the stored task or nil.
func (s *Store) Task(id int64) *domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			c := *t
			return &c
		}
	}
	return nil
}

type Users struct{ s *Store }

func (r *Users) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Users) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, u := range r.s.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Users) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.s.nextUser++
	u.ID = r.s.nextUser
	u.CreatedAt = r.s.Now()
	c := *u
	r.s.users = append(r.s.users, &c)
	return nil
}

func (r *Users) List(_ context.Context) ([]*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

type Tasks struct{ s *Store }

func (r *Tasks) ListByOwner(_ context.Context, ownerID int64, order repository.TaskOrder) ([]*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []*domain.Task
	for _, t := range r.s.tasks {
		if t.OwnerID == ownerID {
			c := *t
			out = append(out, &c)
		}
	}
	if order == repository.OrderByDueDate {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].DueDate, out[j].DueDate
			switch {
			case a == nil && b == nil:
				return out[i].ID < out[j].ID
			case a == nil:
				return true
			case b == nil:
				return false
			case !a.Equal(*b):
				return a.Before(*b)
			default:
				return out[i].ID < out[j].ID
			}
		})
	}
	return out, nil
}

func (r *Tasks) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	r.s.mu.Lock()
	err := r.s.Err
	r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if t := r.s.Task(id); t != nil {
		return t, nil
	}
	return nil, repository.ErrNotFound
}

func (r *Tasks) Create(_ context.Context, t *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if t.Status == "" {
		t.Status = domain.TaskStatusPending
	}
	r.s.nextTask++
	t.ID = r.s.nextTask
	t.CreatedAt = r.s.Now()
	c := *t
	r.s.tasks = append(r.s.tasks, &c)
	return nil
}

func (r *Tasks) SetStatus(_ context.Context, id int64, status domain.TaskStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	for _, t := range r.s.tasks {
		if t.ID == id {
			t.Status = status
			return true, nil
		}
	}
	return false, nil
}

func (r *Tasks) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	for i, t := range r.s.tasks {
		if t.ID == id {
			r.s.tasks = append(r.s.tasks[:i], r.s.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *Tasks) StatsByUser(_ context.Context) ([]domain.UserTaskStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]domain.UserTaskStats, 0, len(r.s.users))
	for _, u := range r.s.users {
		row := domain.UserTaskStats{ID: u.ID, Email: u.Email}
		for _, t := range r.s.tasks {
			if t.OwnerID != u.ID {
				continue
			}
			row.TotalTasks++
			switch t.Status {
			case domain.TaskStatusCompleted:
				row.CompletedTasks++
			case domain.TaskStatusPending:
				row.PendingTasks++
			}
		}
		out = append(out, row)
	}
	return out, nil
}

type Audit struct{ s *Store }

func (r *Audit) Create(_ context.Context, log *domain.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	c := *log
	r.s.audit = append(r.s.audit, &c)
	return nil
}

// Date returns a pointer to midnight of the given day in loc.
func Date(y int, m time.Month, d int, loc *time.Location) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return &t
}

// HasAction reports whether any recorded audit entry has the given action.
func (s *Store) HasAction(action string) bool {
	for _, l := range s.AuditLogs() {
		if strings.EqualFold(l.Action, action) {
			return true
		}
	}
	return false
}
