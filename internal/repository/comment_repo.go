package repository

import (
	"context"

	"tasktracker/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository struct {
	db *pgxpool.Pool
}

func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO comments (text, task_id) VALUES ($1, $2) RETURNING id, created_at`,
		c.Text, c.TaskID,
	).Scan(&c.ID, &c.CreatedAt)
	return mapErr(err)
}

func (r *CommentRepository) ListByTask(ctx context.Context, taskID int64) ([]*domain.Comment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, text, task_id, created_at FROM comments WHERE task_id = $1 ORDER BY id`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.TaskID, &c.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &c)
	}
	return res, rows.Err()
}
