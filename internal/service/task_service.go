package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tasktracker/internal/domain"
	"tasktracker/internal/logger"
	"tasktracker/internal/repository"
)

const dueDateLayout = "2006-1-2"

// Dashboard is the data behind the dashboard page.
type Dashboard struct {
	Tasks    []*domain.Task
	Upcoming []*domain.Task
	Stats    domain.TaskStats
}

// TaskService owns the task queries and mutations.
type TaskService struct {
	tasks            TaskStore
	enforceOwnership bool

	// Now is the clock; today is taken from it once per call.
	Now func() time.Time
}

func NewTaskService(tasks TaskStore, enforceOwnership bool) *TaskService {
	return &TaskService{tasks: tasks, enforceOwnership: enforceOwnership, Now: time.Now}
}

func (s *TaskService) Dashboard(ctx context.Context, user *domain.User) (*Dashboard, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	tasks, err := s.tasks.ListByOwner(ctx, user.ID, repository.OrderByDueDate)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return &Dashboard{
		Tasks:    tasks,
		Upcoming: UpcomingTasks(tasks, s.Now(), UpcomingLimit),
		Stats:    ComputeStats(tasks),
	}, nil
}

func (s *TaskService) Schedule(ctx context.Context, user *domain.User) (*Timeline, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	tasks, err := s.tasks.ListByOwner(ctx, user.ID, repository.OrderByID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	tl := BucketTasks(tasks, s.Now())
	return &tl, nil
}

// ParseDueDate reads a YYYY-MM-DD date as local midnight. Anything else
// falls back to now.
func ParseDueDate(raw string, now time.Time) (time.Time, bool) {
	t, err := time.ParseInLocation(dueDateLayout, raw, now.Location())
	if err != nil {
		return now, false
	}
	return t, true
}

// AddTask creates a pending task owned by user.
func (s *TaskService) AddTask(ctx context.Context, user *domain.User, title, dueDate string) (*domain.Task, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}

	due, ok := ParseDueDate(dueDate, s.Now())
	if !ok {
		logger.WithContext(ctx).Debug("unparseable due date, using now", "due_date", dueDate)
	}

	t := &domain.Task{
		Title:   title,
		Status:  domain.TaskStatusPending,
		DueDate: &due,
		OwnerID: user.ID,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	taskEventsTotal.WithLabelValues("created").Inc()
	return t, nil
}

// CompleteTask marks the task Completed. ErrTaskNotFound covers both a
// missing task and, with ownership enforced, one the actor does not own.
func (s *TaskService) CompleteTask(ctx context.Context, actor *domain.User, id int64) error {
	if err := s.checkOwner(ctx, actor, id); err != nil {
		return err
	}
	ok, err := s.tasks.SetStatus(ctx, id, domain.TaskStatusCompleted)
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	if !ok {
		return ErrTaskNotFound
	}
	taskEventsTotal.WithLabelValues("completed").Inc()
	return nil
}

// DeleteTask removes the task and its comments.
func (s *TaskService) DeleteTask(ctx context.Context, actor *domain.User, id int64) error {
	if err := s.checkOwner(ctx, actor, id); err != nil {
		return err
	}
	ok, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !ok {
		return ErrTaskNotFound
	}
	taskEventsTotal.WithLabelValues("deleted").Inc()
	return nil
}

func (s *TaskService) checkOwner(ctx context.Context, actor *domain.User, id int64) error {
	if !s.enforceOwnership {
		return nil
	}
	if actor == nil {
		return ErrTaskNotFound
	}
	t, err := s.tasks.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}
	if t.OwnerID != actor.ID {
		return ErrTaskNotFound
	}
	return nil
}
