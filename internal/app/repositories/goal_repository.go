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
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/pkg/apperrors"
)

// GoalRepository handles database operations for goals
type GoalRepository struct {
	db *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(db *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{db: db}
}

func selectGoalQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "scholar_id", "title", "category", "target_date",
		"progress", "status", "completed_at", "created_at", "updated_at",
	).From("goals").
		PlaceholderFormat(squirrel.Dollar)
}

func scanGoal(row pgx.Row) (*models.Goal, error) {
	var goal models.Goal
	err := row.Scan(
		&goal.ID, &goal.ScholarID, &goal.Title, &goal.Category, &goal.TargetDate,
		&goal.Progress, &goal.Status, &goal.CompletedAt, &goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, fmt.Errorf("error scanning goal: %w", err)
	}
	return &goal, nil
}

// Create inserts a new goal and returns it with generated fields
func (r *GoalRepository) Create(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	sqlStr, args, err := squirrel.Insert("goals").
		Columns("scholar_id", "title", "category", "target_date", "progress", "status").
		Values(goal.ScholarID, goal.Title, goal.Category, goal.TargetDate, goal.Progress, goal.Status).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating goal: %w", err)
	}
	return goal, nil
}

// GetByID retrieves a goal by ID
func (r *GoalRepository) GetByID(ctx context.Context, id int64) (*models.Goal, error) {
	sqlStr, args, err := selectGoalQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return scanGoal(r.db.QueryRow(ctx, sqlStr, args...))
}

// ListByScholar retrieves all goals for a scholar, nearest target first
func (r *GoalRepository) ListByScholar(ctx context.Context, scholarID int64) ([]*models.Goal, error) {
	sqlStr, args, err := selectGoalQuery().
		Where(squirrel.Eq{"scholar_id": scholarID}).
		OrderBy("target_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing goals: %w", err)
	}
	defer rows.Close()

	goals := make([]*models.Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return goals, nil
}

func buildGoalUpdate(id int64, patch dto.UpdateGoalRequest) squirrel.UpdateBuilder {
	builder := squirrel.Update("goals").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, scholar_id, title, category, target_date, progress, status, completed_at, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
	}
	if patch.Category != nil {
		builder = builder.Set("category", *patch.Category)
	}
	if patch.TargetDate != nil {
		builder = builder.Set("target_date", *patch.TargetDate)
	}
	if patch.Progress != nil {
		builder = builder.Set("progress", *patch.Progress)
	}
	if patch.Status != nil {
		builder = builder.Set("status", *patch.Status)
		if models.WorkStatus(*patch.Status) == models.WorkStatusCompleted {
			builder = builder.Set("completed_at", time.Now())
		}
	}
	return builder
}

// Update applies a partial goal update. Moving the status to completed
// stamps completed_at; the stamp is never cleared afterwards.
func (r *GoalRepository) Update(ctx context.Context, id int64, patch dto.UpdateGoalRequest) (*models.Goal, error) {
	sqlStr, args, err := buildGoalUpdate(id, patch).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return scanGoal(r.db.QueryRow(ctx, sqlStr, args...))
}

// Delete removes a goal
func (r *GoalRepository) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Delete("goals").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("error deleting goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}
