package domain

import "time"

// TaskStatus - состояние задачи. Переход только Pending -> Completed.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "Pending"
	TaskStatusCompleted TaskStatus = "Completed"
)

type Task struct {
	ID        int64      `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Status    TaskStatus `db:"status" json:"status"`
	DueDate   *time.Time `db:"due_date" json:"due_date"`
	OwnerID   int64      `db:"owner_id" json:"owner_id"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// IsCompleted reports whether the task has been marked done.
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}
