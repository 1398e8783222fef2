package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mockmate/internal/domain"
)

// TaskRepository persiste tareas de carrera.
type TaskRepository interface {
	Create(ctx context.Context, task domain.CareerTask) error
	GetByID(ctx context.Context, id string) (domain.CareerTask, error)
	ListByUser(ctx context.Context, userID string) ([]domain.CareerTask, error)
	UpdateStatus(ctx context.Context, id string, status int, completedAt *time.Time) error
	Delete(ctx context.Context, id string) error
}

// PgTaskRepository implementa TaskRepository usando pgxpool.
type PgTaskRepository struct {
	pool *pgxpool.Pool
}

func NewPgTaskRepository(pool *pgxpool.Pool) *PgTaskRepository {
	return &PgTaskRepository{pool: pool}
}

const taskColumns = `
	id, user_id, COALESCE(session_id, ''), title, COALESCE(description, ''),
	COALESCE(resource_link, ''), status, deadline, completed_at
`

func (r *PgTaskRepository) Create(ctx context.Context, task domain.CareerTask) error {
	const query = `
		INSERT INTO career_tasks
			(id, user_id, session_id, title, description, resource_link, status, deadline)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		task.ID,
		task.UserID,
		task.SessionID,
		task.Title,
		task.Description,
		task.ResourceLink,
		task.Status,
		task.Deadline,
	)
	return err
}

func (r *PgTaskRepository) GetByID(ctx context.Context, id string) (domain.CareerTask, error) {
	query := `SELECT ` + taskColumns + ` FROM career_tasks WHERE id = $1`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *PgTaskRepository) ListByUser(ctx context.Context, userID string) ([]domain.CareerTask, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM career_tasks
		WHERE user_id = $1
		ORDER BY deadline NULLS LAST, title
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.CareerTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *PgTaskRepository) UpdateStatus(ctx context.Context, id string, status int, completedAt *time.Time) error {
	const query = `UPDATE career_tasks SET status = $2, completed_at = $3 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, status, completedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgTaskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM career_tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTask(row pgx.Row) (domain.CareerTask, error) {
	var t domain.CareerTask
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.SessionID,
		&t.Title,
		&t.Description,
		&t.ResourceLink,
		&t.Status,
		&t.Deadline,
		&t.CompletedAt,
	)
	if err != nil {
		return domain.CareerTask{}, err
	}
	return t, nil
}
