package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tasktracker/internal/domain"
	"tasktracker/internal/service/servicetest"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

var fixedNow = time.Date(2024, 3, 10, 14, 0, 0, 0, time.Local)

func newTaskService(store *servicetest.Store, enforce bool) *TaskService {
	s := NewTaskService(store.Tasks(), enforce)
	s.Now = func() time.Time { return fixedNow }
	return s
}

func TestParseDueDate(t *testing.T) {
	cases := []struct {
		raw  string
		ok   bool
		want time.Time
	}{
		{"2024-03-15", true, time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)},
		{"2024-3-5", true, time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)},
		{"", false, fixedNow},
		{"15/03/2024", false, fixedNow},
		{"2024-02-30", false, fixedNow},
	}
	for _, c := range cases {
		got, ok := ParseDueDate(c.raw, fixedNow)
		if ok != c.ok || !got.Equal(c.want) {
			t.Errorf("ParseDueDate(%q) = %v, %v; want %v, %v", c.raw, got, ok, c.want, c.ok)
		}
	}
}

func TestTaskServiceDashboard(t *testing.T) {
	store := servicetest.New()
	u := store.AddUser("a@example.com", "pw")
	other := store.AddUser("b@example.com", "pw")
	store.AddTask(u.ID, "later", domain.TaskStatusPending, servicetest.Date(2024, 3, 20, time.Local))
	store.AddTask(u.ID, "undated", domain.TaskStatusPending, nil)
	store.AddTask(u.ID, "soon", domain.TaskStatusPending, servicetest.Date(2024, 3, 11, time.Local))
	store.AddTask(u.ID, "done", domain.TaskStatusCompleted, servicetest.Date(2024, 3, 12, time.Local))
	store.AddTask(other.ID, "foreign", domain.TaskStatusPending, servicetest.Date(2024, 3, 11, time.Local))

	d, err := newTaskService(store, false).Dashboard(context.Background(), u)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int64{2, 3, 4, 1}; !equalIDs(ids(d.Tasks), want) {
		t.Fatalf("tasks = %v; want %v", ids(d.Tasks), want)
	}
	if want := []int64{3, 1}; !equalIDs(ids(d.Upcoming), want) {
		t.Fatalf("upcoming = %v; want %v", ids(d.Upcoming), want)
	}
	if d.Stats != (domain.TaskStats{Total: 4, Pending: 3, Completed: 1, CompletionRate: 25}) {
		t.Fatalf("stats = %+v", d.Stats)
	}
}

func TestTaskServiceScheduleUsesLoadOrder(t *testing.T) {
	store := servicetest.New()
	u := store.AddUser("a@example.com", "pw")
	store.AddTask(u.ID, "b", domain.TaskStatusPending, servicetest.Date(2024, 3, 20, time.Local))
	store.AddTask(u.ID, "a", domain.TaskStatusPending, servicetest.Date(2024, 3, 15, time.Local))
	store.AddTask(u.ID, "today", domain.TaskStatusPending, servicetest.Date(2024, 3, 10, time.Local))

	tl, err := newTaskService(store, false).Schedule(context.Background(), u)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int64{1, 2}; !equalIDs(ids(tl.Upcoming), want) {
		t.Fatalf("upcoming = %v; want %v", ids(tl.Upcoming), want)
	}
	if len(tl.Today) != 1 || tl.Today[0].Title != "today" {
		t.Fatalf("today = %+v", tl.Today)
	}
}

func TestTaskServiceRequiresUser(t *testing.T) {
	s := newTaskService(servicetest.New(), false)
	ctx := context.Background()
	if _, err := s.Dashboard(ctx, nil); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("Dashboard err = %v", err)
	}
	if _, err := s.Schedule(ctx, nil); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("Schedule err = %v", err)
	}
	if _, err := s.AddTask(ctx, nil, "x", "2024-03-11"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("AddTask err = %v", err)
	}
}

func TestTaskServiceAddTask(t *testing.T) {
	store := servicetest.New()
	u := store.AddUser("a@example.com", "pw")
	s := newTaskService(store, false)
	before := testutil.ToFloat64(taskEventsTotal.WithLabelValues("created"))

	task, err := s.AddTask(context.Background(), u, "Write report", "2024-03-15")
	if err != nil {
		t.Fatal(err)
	}
	if task.Status != domain.TaskStatusPending || task.OwnerID != u.ID {
		t.Fatalf("unexpected task %+v", task)
	}
	if !task.DueDate.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("due = %v", task.DueDate)
	}

	fallback, err := s.AddTask(context.Background(), u, "No date", "not-a-date")
	if err != nil {
		t.Fatal(err)
	}
	if !fallback.DueDate.Equal(fixedNow) {
		t.Fatalf("fallback due = %v; want now", fallback.DueDate)
	}

	if got := testutil.ToFloat64(taskEventsTotal.WithLabelValues("created")) - before; got != 2 {
		t.Fatalf("created counter delta = %v; want 2", got)
	}
}

func TestTaskServiceCompleteAndDelete(t *testing.T) {
	store := servicetest.New()
	u := store.AddUser("a@example.com", "pw")
	task := store.AddTask(u.ID, "x", domain.TaskStatusPending, nil)
	s := newTaskService(store, false)
	ctx := context.Background()

	if err := s.CompleteTask(ctx, nil, task.ID); err != nil {
		t.Fatalf("complete without session: %v", err)
	}
	if got := store.Task(task.ID); got.Status != domain.TaskStatusCompleted {
		t.Fatalf("status = %q", got.Status)
	}
	if err := s.CompleteTask(ctx, nil, task.ID); err != nil {
		t.Fatalf("completing twice should succeed: %v", err)
	}
	if err := s.CompleteTask(ctx, u, 999); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("missing task err = %v", err)
	}

	if err := s.DeleteTask(ctx, nil, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if store.Task(task.ID) != nil {
		t.Fatal("task still present")
	}
	if err := s.DeleteTask(ctx, nil, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}

func TestTaskServiceOwnershipEnforced(t *testing.T) {
	store := servicetest.New()
	owner := store.AddUser("a@example.com", "pw")
	intruder := store.AddUser("b@example.com", "pw")
	task := store.AddTask(owner.ID, "x", domain.TaskStatusPending, nil)
	s := newTaskService(store, true)
	ctx := context.Background()

	for _, actor := range []*domain.User{nil, intruder} {
		if err := s.CompleteTask(ctx, actor, task.ID); !errors.Is(err, ErrTaskNotFound) {
			t.Fatalf("complete by %v err = %v", actor, err)
		}
		if err := s.DeleteTask(ctx, actor, task.ID); !errors.Is(err, ErrTaskNotFound) {
			t.Fatalf("delete by %v err = %v", actor, err)
		}
	}
	if got := store.Task(task.ID); got == nil || got.Status != domain.TaskStatusPending {
		t.Fatalf("task mutated by non-owner: %+v", got)
	}

	if err := s.CompleteTask(ctx, owner, task.ID); err != nil {
		t.Fatalf("owner complete: %v", err)
	}
	if err := s.DeleteTask(ctx, owner, task.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestTaskServiceAddThenDashboard(t *testing.T) {
	store := servicetest.New()
	u := store.AddUser("a@example.com", "pw")
	s := newTaskService(store, false)
	ctx := context.Background()

	if _, err := s.AddTask(ctx, u, "Buy milk", "2099-01-01"); err != nil {
		t.Fatal(err)
	}
	d, err := s.Dashboard(ctx, u)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Tasks) != 1 || d.Tasks[0].Title != "Buy milk" || d.Tasks[0].Status != domain.TaskStatusPending {
		t.Fatalf("dashboard tasks = %+v", d.Tasks)
	}
	if len(d.Upcoming) != 1 {
		t.Fatalf("far-future pending task should be upcoming, got %d", len(d.Upcoming))
	}
}
