package domain

// TaskStats - агрегаты по задачам одного пользователя (dashboard).
type TaskStats struct {
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	Completed      int `json:"completed"`
	CompletionRate int `json:"completion_rate"`
}

// UserTaskStats is the per-user row of the admin overview.
type UserTaskStats struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	TotalTasks     int    `json:"total_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
	PendingTasks   int    `json:"pending_tasks"`
}
