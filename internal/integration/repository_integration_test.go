package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"tasktracker/internal/db"
	"tasktracker/internal/domain"
	"tasktracker/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func openDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.Migrate(context.Background(), pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

func newUser(t *testing.T, repo *repository.UserRepository) *domain.User {
	t.Helper()
	u := &domain.User{Email: uuid.NewString() + "@example.com", PasswordHash: "pw"}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestUserRepository(t *testing.T) {
	pool := openDB(t)
	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	u := newUser(t, repo)
	if u.ID == 0 || u.CreatedAt.IsZero() {
		t.Fatalf("create did not return id/created_at: %+v", u)
	}

	got, err := repo.GetByEmail(ctx, u.Email)
	if err != nil || got.ID != u.ID || got.PasswordHash != "pw" {
		t.Fatalf("GetByEmail = %+v, %v", got, err)
	}
	if _, err := repo.GetByID(ctx, -1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("missing id err = %v", err)
	}

	dup := &domain.User{Email: u.Email, PasswordHash: "other"}
	if err := repo.Create(ctx, dup); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("duplicate email err = %v", err)
	}
}

func TestTaskRepositoryOrderingAndStats(t *testing.T) {
	pool := openDB(t)
	users := repository.NewUserRepository(pool)
	tasks := repository.NewTaskRepository(pool)
	ctx := context.Background()

	owner := newUser(t, users)
	empty := newUser(t, users)

	later := time.Date(2030, 5, 2, 0, 0, 0, 0, time.Local)
	sooner := time.Date(2030, 5, 1, 0, 0, 0, 0, time.Local)
	created := []*domain.Task{
		{Title: "later", DueDate: &later, OwnerID: owner.ID},
		{Title: "undated", OwnerID: owner.ID},
		{Title: "sooner", DueDate: &sooner, OwnerID: owner.ID},
	}
	for _, task := range created {
		if err := tasks.Create(ctx, task); err != nil {
			t.Fatalf("create task: %v", err)
		}
		if task.Status != domain.TaskStatusPending {
			t.Fatalf("default status = %q", task.Status)
		}
	}

	byDue, err := tasks.ListByOwner(ctx, owner.ID, repository.OrderByDueDate)
	if err != nil {
		t.Fatal(err)
	}
	if len(byDue) != 3 || byDue[0].Title != "undated" || byDue[1].Title != "sooner" || byDue[2].Title != "later" {
		t.Fatalf("due order wrong: %+v", byDue)
	}
	if y, m, d := byDue[1].DueDate.Date(); y != 2030 || m != 5 || d != 1 {
		t.Fatalf("wall-clock date not preserved: %v", byDue[1].DueDate)
	}

	byID, err := tasks.ListByOwner(ctx, owner.ID, repository.OrderByID)
	if err != nil {
		t.Fatal(err)
	}
	if byID[0].Title != "later" || byID[2].Title != "sooner" {
		t.Fatalf("id order wrong: %+v", byID)
	}

	ok, err := tasks.SetStatus(ctx, created[0].ID, domain.TaskStatusCompleted)
	if err != nil || !ok {
		t.Fatalf("SetStatus = %v, %v", ok, err)
	}
	if ok, _ := tasks.SetStatus(ctx, -1, domain.TaskStatusCompleted); ok {
		t.Fatal("SetStatus on missing task reported a change")
	}

	stats, err := tasks.StatsByUser(ctx)
	if err != nil {
		t.Fatal(err)
	}
	found := map[int64]domain.UserTaskStats{}
	for _, s := range stats {
		found[s.ID] = s
	}
	if s := found[owner.ID]; s.TotalTasks != 3 || s.CompletedTasks != 1 || s.PendingTasks != 2 {
		t.Fatalf("owner stats = %+v", s)
	}
	if s, ok := found[empty.ID]; !ok || s.TotalTasks != 0 {
		t.Fatalf("user without tasks missing or wrong: %+v", s)
	}
}

func TestDeleteTaskCascadesComments(t *testing.T) {
	pool := openDB(t)
	users := repository.NewUserRepository(pool)
	tasks := repository.NewTaskRepository(pool)
	comments := repository.NewCommentRepository(pool)
	ctx := context.Background()

	owner := newUser(t, users)
	task := &domain.Task{Title: "with comments", OwnerID: owner.ID}
	if err := tasks.Create(ctx, task); err != nil {
		t.Fatal(err)
	}
	for _, text := range []string{"first", "second"} {
		if err := comments.Create(ctx, &domain.Comment{Text: text, TaskID: task.ID}); err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}
	list, err := comments.ListByTask(ctx, task.ID)
	if err != nil || len(list) != 2 {
		t.Fatalf("ListByTask = %d, %v", len(list), err)
	}

	ok, err := tasks.Delete(ctx, task.ID)
	if err != nil || !ok {
		t.Fatalf("Delete = %v, %v", ok, err)
	}
	if _, err := tasks.GetByID(ctx, task.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("deleted task err = %v", err)
	}
	list, err = comments.ListByTask(ctx, task.ID)
	if err != nil || len(list) != 0 {
		t.Fatalf("comments survived delete: %d, %v", len(list), err)
	}
	if ok, _ := tasks.Delete(ctx, task.ID); ok {
		t.Fatal("second delete reported a change")
	}
}

func TestAuditRepository(t *testing.T) {
	pool := openDB(t)
	users := repository.NewUserRepository(pool)
	audit := repository.NewAuditRepository(pool)
	ctx := context.Background()

	u := newUser(t, users)
	err := audit.Create(ctx, &domain.AuditLog{
		UserID:   u.ID,
		Action:   domain.AuditActionLogin,
		Category: domain.AuditCategoryAuth,
		Details:  map[string]interface{}{"source": "test"},
		IP:       "127.0.0.1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := audit.Create(ctx, &domain.AuditLog{Action: domain.AuditActionLoginFailed, Category: domain.AuditCategoryAuth}); err != nil {
		t.Fatalf("anonymous entry: %v", err)
	}

	logs, err := audit.GetByUserID(ctx, u.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].Action != domain.AuditActionLogin || logs[0].Details["source"] != "test" {
		t.Fatalf("unexpected logs %+v", logs)
	}
}
