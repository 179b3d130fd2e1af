package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/db"
	"github.com/scholarbase/scholarbase/internal/pkg/apperrors"
	"github.com/scholarbase/scholarbase/internal/pkg/dberrors"
	"github.com/scholarbase/scholarbase/internal/pkg/helpers"
	"github.com/scholarbase/scholarbase/internal/pkg/logger"
)

// ScholarDetails is a scholar row joined with its owning user
type ScholarDetails struct {
	ID           int64                `db:"id" json:"id"`
	UserID       int64                `db:"user_id" json:"userId"`
	Name         string               `db:"name" json:"name"`
	Email        string               `db:"email" json:"email"`
	ImageURL     *string              `db:"image_url" json:"imageUrl,omitempty"`
	Program      string               `db:"program" json:"program"`
	Year         int                  `db:"year" json:"year"`
	University   string               `db:"university" json:"university"`
	Location     *string              `db:"location" json:"location,omitempty"`
	Status       models.ScholarStatus `db:"status" json:"status"`
	StartDate    time.Time            `db:"start_date" json:"startDate"`
	LastActivity *time.Time           `db:"last_activity" json:"lastActivity,omitempty"`
	CreatedAt    time.Time            `db:"created_at" json:"createdAt"`
}

// ScholarRepository handles database operations for scholars
type ScholarRepository struct {
	db *pgxpool.Pool
}

// NewScholarRepository creates a new ScholarRepository
func NewScholarRepository(db *pgxpool.Pool) *ScholarRepository {
	return &ScholarRepository{db: db}
}

// Allowed sort keys for the scholar list. Unknown keys fall back to the
// default column silently.
var scholarSortColumns = map[string]string{
	"name":         "u.name",
	"lastActivity": "s.last_activity",
	"createdAt":    "s.created_at",
}

func selectScholarDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"s.id", "s.user_id", "u.name", "u.email", "u.image_url",
		"s.program", "s.year", "s.university", "s.location", "s.status",
		"s.start_date", "s.last_activity", "s.created_at",
	).From("scholars s").
		Join("users u ON s.user_id = u.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanScholarDetails(row pgx.Row) (*ScholarDetails, error) {
	var s ScholarDetails
	err := row.Scan(
		&s.ID, &s.UserID, &s.Name, &s.Email, &s.ImageURL,
		&s.Program, &s.Year, &s.University, &s.Location, &s.Status,
		&s.StartDate, &s.LastActivity, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScholarNotFound
		}
		return nil, fmt.Errorf("error scanning scholar: %w", err)
	}
	return &s, nil
}

// applyScholarFilters appends the list filters to a builder. The search
// term is OR-combined across name/email/program/university and then AND-ed
// with the equality filters.
func applyScholarFilters(builder squirrel.SelectBuilder, params dto.ScholarListParams) squirrel.SelectBuilder {
	if params.Program != nil {
		builder = builder.Where(squirrel.Eq{"s.program": *params.Program})
	}
	if params.Year != nil {
		builder = builder.Where(squirrel.Eq{"s.year": *params.Year})
	}
	if params.University != nil {
		builder = builder.Where(squirrel.Eq{"s.university": *params.University})
	}
	if params.Status != nil {
		builder = builder.Where(squirrel.Eq{"s.status": *params.Status})
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"u.name": pattern},
			squirrel.ILike{"u.email": pattern},
			squirrel.ILike{"s.program": pattern},
			squirrel.ILike{"s.university": pattern},
		})
	}
	return builder
}

// buildListQuery builds the page query and the count query for List
func buildScholarListQuery(params dto.ScholarListParams) (squirrel.SelectBuilder, squirrel.SelectBuilder) {
	rowsBuilder := applyScholarFilters(selectScholarDetailsQuery(), params)
	countBuilder := applyScholarFilters(
		squirrel.Select("count(*)").
			From("scholars s").
			Join("users u ON s.user_id = u.id").
			PlaceholderFormat(squirrel.Dollar),
		params,
	)

	sortColumn, ok := scholarSortColumns[params.SortBy]
	if !ok {
		sortColumn = "s.created_at"
	}
	sortOrder := "DESC"
	if strings.ToUpper(params.SortOrder) == "ASC" {
		sortOrder = "ASC"
	}
	rowsBuilder = rowsBuilder.OrderBy(fmt.Sprintf("%s %s", sortColumn, sortOrder))

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Limit)
	rowsBuilder = rowsBuilder.Limit(uint64(limit)).Offset(offset)

	return rowsBuilder, countBuilder
}

// List retrieves a paginated, filtered, sorted page of scholars joined
// with their owning users.
func (r *ScholarRepository) List(ctx context.Context, params dto.ScholarListParams) ([]*ScholarDetails, dto.PaginationInfo, error) {
	rowsBuilder, countBuilder := buildScholarListQuery(params)

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error building count SQL: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error executing count query: %w", err)
	}

	pagination := helpers.NewPaginationInfo(totalItems, params.Page, params.Limit)

	if totalItems == 0 {
		return []*ScholarDetails{}, pagination, nil
	}

	sqlStr, args, err := rowsBuilder.ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error building list SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error executing list query: %w", err)
	}
	defer rows.Close()

	scholars := make([]*ScholarDetails, 0, params.Limit)
	for rows.Next() {
		s, err := scanScholarDetails(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		scholars = append(scholars, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("database iteration error: %w", err)
	}

	return scholars, pagination, nil
}

// GetByID retrieves one scholar with its owning user
func (r *ScholarRepository) GetByID(ctx context.Context, id int64) (*ScholarDetails, error) {
	sqlStr, args, err := selectScholarDetailsQuery().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return scanScholarDetails(r.db.QueryRow(ctx, sqlStr, args...))
}

// GoalSummaries computes the goal completion breakdown for a set of
// scholars with one grouped aggregation query.
func (r *ScholarRepository) GoalSummaries(ctx context.Context, scholarIDs []int64) (map[int64]dto.GoalSummary, error) {
	summaries := make(map[int64]dto.GoalSummary, len(scholarIDs))
	if len(scholarIDs) == 0 {
		return summaries, nil
	}

	sqlStr, args, err := squirrel.Select("scholar_id", "status", "count(*)").
		From("goals").
		Where(squirrel.Eq{"scholar_id": scholarIDs}).
		GroupBy("scholar_id", "status").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing goal summary query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var scholarID int64
		var status models.WorkStatus
		var count int
		if err := rows.Scan(&scholarID, &status, &count); err != nil {
			return nil, fmt.Errorf("error scanning goal summary: %w", err)
		}

		summary := summaries[scholarID]
		summary.Total += count
		switch status {
		case models.WorkStatusCompleted:
			summary.Completed += count
		case models.WorkStatusInProgress:
			summary.InProgress += count
		case models.WorkStatusPending:
			summary.Pending += count
		}
		summaries[scholarID] = summary
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return summaries, nil
}

// TaskSummaries computes the task breakdown for a set of scholars. Overdue
// is derived against the supplied evaluation time.
func (r *ScholarRepository) TaskSummaries(ctx context.Context, scholarIDs []int64, now time.Time) (map[int64]dto.TaskSummary, error) {
	summaries := make(map[int64]dto.TaskSummary, len(scholarIDs))
	if len(scholarIDs) == 0 {
		return summaries, nil
	}

	sqlStr, args, err := squirrel.Select("scholar_id", "count(*)").
		Column("count(*) FILTER (WHERE status = 'completed')").
		Column(squirrel.Expr("count(*) FILTER (WHERE status <> 'completed' AND due_date < ?)", now)).
		From("tasks").
		Where(squirrel.Eq{"scholar_id": scholarIDs}).
		GroupBy("scholar_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing task summary query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var scholarID int64
		var summary dto.TaskSummary
		if err := rows.Scan(&scholarID, &summary.Total, &summary.Completed, &summary.Overdue); err != nil {
			return nil, fmt.Errorf("error scanning task summary: %w", err)
		}
		summaries[scholarID] = summary
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return summaries, nil
}

// FilterOptions returns the distinct filter value sets for the scholar
// list UI, deduplicated at the database level.
func (r *ScholarRepository) FilterOptions(ctx context.Context) (*dto.ScholarFilterOptions, error) {
	options := &dto.ScholarFilterOptions{
		Programs:     []string{},
		Years:        []int{},
		Universities: []string{},
		Statuses:     []string{},
	}

	collectStrings := func(column string, dest *[]string) error {
		sqlStr, args, err := squirrel.Select("DISTINCT " + column).
			From("scholars").
			OrderBy(column + " ASC").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		rows, err := r.db.Query(ctx, sqlStr, args...)
		if err != nil {
			return fmt.Errorf("error executing distinct query: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var value string
			if err := rows.Scan(&value); err != nil {
				return fmt.Errorf("error scanning distinct value: %w", err)
			}
			*dest = append(*dest, value)
		}
		return rows.Err()
	}

	if err := collectStrings("program", &options.Programs); err != nil {
		return nil, err
	}
	if err := collectStrings("university", &options.Universities); err != nil {
		return nil, err
	}

	if err := collectStrings("status", &options.Statuses); err != nil {
		return nil, err
	}

	sqlStr, args, err := squirrel.Select("DISTINCT year").
		From("scholars").
		OrderBy("year ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing distinct year query: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("error scanning year: %w", err)
		}
		options.Years = append(options.Years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return options, nil
}

// ListForTargeting loads the whole scholar population with the attributes
// announcement filters match against.
func (r *ScholarRepository) ListForTargeting(ctx context.Context) ([]models.Scholar, error) {
	sqlStr, args, err := squirrel.Select("id", "user_id", "program", "year", "university", "location", "status", "start_date", "last_activity", "created_at", "updated_at").
		From("scholars").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing targeting query: %w", err)
	}
	defer rows.Close()

	scholars := make([]models.Scholar, 0)
	for rows.Next() {
		var s models.Scholar
		err := rows.Scan(
			&s.ID, &s.UserID, &s.Program, &s.Year, &s.University,
			&s.Location, &s.Status, &s.StartDate, &s.LastActivity,
			&s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning scholar: %w", err)
		}
		scholars = append(scholars, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return scholars, nil
}

// UpdateProfile applies a partial profile update. Name and email live on
// the users table, the rest on scholars, so both writes run in one
// transaction.
func (r *ScholarRepository) UpdateProfile(ctx context.Context, scholarID int64, patch dto.UpdateScholarProfileRequest) error {
	scholar, err := r.GetByID(ctx, scholarID)
	if err != nil {
		return err
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if patch.Name != nil || patch.Email != nil {
			userUpdate := squirrel.Update("users").
				Set("updated_at", time.Now()).
				Where(squirrel.Eq{"id": scholar.UserID}).
				PlaceholderFormat(squirrel.Dollar)
			if patch.Name != nil {
				userUpdate = userUpdate.Set("name", *patch.Name)
			}
			if patch.Email != nil {
				userUpdate = userUpdate.Set("email", *patch.Email)
			}

			sqlStr, args, err := userUpdate.ToSql()
			if err != nil {
				return fmt.Errorf("error building user update SQL: %w", err)
			}
			if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
				if dberrors.IsUniqueViolation(err) {
					return apperrors.ErrEmailAlreadyExists
				}
				return fmt.Errorf("error updating user: %w", err)
			}
		}

		scholarUpdate := squirrel.Update("scholars").
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{"id": scholarID}).
			PlaceholderFormat(squirrel.Dollar)
		if patch.Program != nil {
			scholarUpdate = scholarUpdate.Set("program", *patch.Program)
		}
		if patch.Year != nil {
			scholarUpdate = scholarUpdate.Set("year", *patch.Year)
		}
		if patch.University != nil {
			scholarUpdate = scholarUpdate.Set("university", *patch.University)
		}
		if patch.Location != nil {
			scholarUpdate = scholarUpdate.Set("location", *patch.Location)
		}
		if patch.Status != nil {
			scholarUpdate = scholarUpdate.Set("status", *patch.Status)
		}

		sqlStr, args, err := scholarUpdate.ToSql()
		if err != nil {
			return fmt.Errorf("error building scholar update SQL: %w", err)
		}
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("error updating scholar: %w", err)
		}

		return nil
	})
}

// TouchLastActivity records scholar activity. Failures are logged only.
func (r *ScholarRepository) TouchLastActivity(ctx context.Context, scholarID int64) {
	sqlStr, args, err := squirrel.Update("scholars").
		Set("last_activity", time.Now()).
		Where(squirrel.Eq{"id": scholarID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building last activity SQL")
		return
	}
	if _, err := r.db.Exec(ctx, sqlStr, args...); err != nil {
		logger.Warn().Err(err).Int64("scholarId", scholarID).Msg("Failed to update last activity")
	}
}

// CreateScholarTx inserts a scholar profile within an existing transaction
func CreateScholarTx(ctx context.Context, tx pgx.Tx, scholar *models.Scholar) (int64, error) {
	sqlStr, args, err := squirrel.Insert("scholars").
		Columns("user_id", "program", "year", "university", "location", "status", "start_date").
		Values(scholar.UserID, scholar.Program, scholar.Year, scholar.University, scholar.Location, scholar.Status, scholar.StartDate).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating scholar: %w", err)
	}
	return id, nil
}
