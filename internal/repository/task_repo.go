package repository

import (
	"context"

	"tasktracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskOrder selects the ORDER BY of owner listings.
type TaskOrder int

const (
	// OrderByID is the store load order used by the schedule view.
	OrderByID TaskOrder = iota
	// OrderByDueDate sorts ascending with undated tasks first, id breaking ties.
	OrderByDueDate
)

const taskColumns = `id, title, status, due_date, owner_id, created_at`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64, order TaskOrder) ([]*domain.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1 ORDER BY id`
	if order == OrderByDueDate {
		q = `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1 ORDER BY due_date ASC NULLS FIRST, id ASC`
	}

	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id).
		Scan(&t.ID, &t.Title, &t.Status, &t.DueDate, &t.OwnerID, &t.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

// Create inserts t; Status defaults to Pending when empty.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	if t.Status == "" {
		t.Status = domain.TaskStatusPending
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO tasks (title, status, due_date, owner_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		t.Title, t.Status, t.DueDate, t.OwnerID,
	).Scan(&t.ID, &t.CreatedAt)
	return mapErr(err)
}

// SetStatus reports false when no task has the given id.
func (r *TaskRepository) SetStatus(ctx context.Context, id int64, status domain.TaskStatus) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE tasks SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes the task; its comments go with it via ON DELETE CASCADE.
func (r *TaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// StatsByUser returns task counters for every user, users without tasks included.
func (r *TaskRepository) StatsByUser(ctx context.Context) ([]domain.UserTaskStats, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.email,
		       COUNT(t.id) AS total,
		       COUNT(t.id) FILTER (WHERE t.status = 'Completed') AS completed,
		       COUNT(t.id) FILTER (WHERE t.status = 'Pending') AS pending
		FROM users u
		LEFT JOIN tasks t ON t.owner_id = u.id
		GROUP BY u.id, u.email
		ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.UserTaskStats
	for rows.Next() {
		var s domain.UserTaskStats
		if err := rows.Scan(&s.ID, &s.Email, &s.TotalTasks, &s.CompletedTasks, &s.PendingTasks); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	var res []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Status, &t.DueDate, &t.OwnerID, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}
