package domain

import "time"

// Comment is attached to a task and removed with it. No handler exposes
// comments yet.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	Text      string    `db:"text" json:"text"`
	TaskID    int64     `db:"task_id" json:"task_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
