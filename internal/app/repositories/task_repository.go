package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/pkg/apperrors"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func selectTaskQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "scholar_id", "assigned_by", "title", "type", "priority",
		"due_date", "status", "completed_at", "created_at", "updated_at",
	).From("tasks").
		PlaceholderFormat(squirrel.Dollar)
}

func scanTask(row pgx.Row) (*models.Task, error) {
	var task models.Task
	err := row.Scan(
		&task.ID, &task.ScholarID, &task.AssignedBy, &task.Title, &task.Type, &task.Priority,
		&task.DueDate, &task.Status, &task.CompletedAt, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("error scanning task: %w", err)
	}
	return &task, nil
}

// Create inserts a new task and returns it with generated fields
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	sqlStr, args, err := squirrel.Insert("tasks").
		Columns("scholar_id", "assigned_by", "title", "type", "priority", "due_date", "status").
		Values(task.ScholarID, task.AssignedBy, task.Title, task.Type, task.Priority, task.DueDate, task.Status).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return task, nil
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	sqlStr, args, err := selectTaskQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return scanTask(r.db.QueryRow(ctx, sqlStr, args...))
}

// ListByScholar retrieves all tasks for a scholar, newest due first
func (r *TaskRepository) ListByScholar(ctx context.Context, scholarID int64) ([]*models.Task, error) {
	sqlStr, args, err := selectTaskQuery().
		Where(squirrel.Eq{"scholar_id": scholarID}).
		OrderBy("due_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return tasks, nil
}

func buildTaskStatusUpdate(id int64, status models.WorkStatus) squirrel.UpdateBuilder {
	builder := squirrel.Update("tasks").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, scholar_id, assigned_by, title, type, priority, due_date, status, completed_at, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)
	if status == models.WorkStatusCompleted {
		builder = builder.Set("completed_at", time.Now())
	}
	return builder
}

// UpdateStatus sets a task status. Moving to completed stamps
// completed_at; leaving completed keeps the old stamp untouched.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id int64, status models.WorkStatus) (*models.Task, error) {
	sqlStr, args, err := buildTaskStatusUpdate(id, status).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return scanTask(r.db.QueryRow(ctx, sqlStr, args...))
}

// Delete removes a task
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Delete("tasks").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
