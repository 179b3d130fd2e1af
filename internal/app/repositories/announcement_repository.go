package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/db"
	"github.com/scholarbase/scholarbase/internal/pkg/apperrors"
	"github.com/scholarbase/scholarbase/internal/pkg/helpers"
)

// AnnouncementRepository handles database operations for announcements,
// their filters and their recipient snapshots.
type AnnouncementRepository struct {
	db *pgxpool.Pool
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// Create persists an announcement together with its filters and the
// recipient snapshot in one transaction.
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement, filters []models.AnnouncementFilter, recipientIDs []int64) (*models.Announcement, error) {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sqlStr, args, err := squirrel.Insert("announcements").
			Columns("title", "content", "created_by").
			Values(announcement.Title, announcement.Content, announcement.CreatedBy).
			Suffix("RETURNING id, created_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&announcement.ID, &announcement.CreatedAt); err != nil {
			return fmt.Errorf("error creating announcement: %w", err)
		}

		if len(filters) > 0 {
			builder := squirrel.Insert("announcement_filters").
				Columns("announcement_id", "filter_type", "filter_value").
				PlaceholderFormat(squirrel.Dollar)
			for _, f := range filters {
				builder = builder.Values(announcement.ID, f.FilterType, f.FilterValue)
			}
			sqlStr, args, err := builder.ToSql()
			if err != nil {
				return fmt.Errorf("error building filter SQL: %w", err)
			}
			if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
				return fmt.Errorf("error creating announcement filters: %w", err)
			}
		}

		if len(recipientIDs) > 0 {
			builder := squirrel.Insert("announcement_recipients").
				Columns("announcement_id", "scholar_id").
				PlaceholderFormat(squirrel.Dollar)
			for _, scholarID := range recipientIDs {
				builder = builder.Values(announcement.ID, scholarID)
			}
			sqlStr, args, err := builder.ToSql()
			if err != nil {
				return fmt.Errorf("error building recipient SQL: %w", err)
			}
			if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
				return fmt.Errorf("error creating announcement recipients: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return announcement, nil
}

// List retrieves a page of announcements, newest first
func (r *AnnouncementRepository) List(ctx context.Context, page, limit int) ([]*models.Announcement, dto.PaginationInfo, error) {
	countSql, countArgs, err := squirrel.Select("count(*)").
		From("announcements").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error building count SQL: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error executing count query: %w", err)
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, limit)

	if totalItems == 0 {
		return []*models.Announcement{}, pagination, nil
	}

	offset, pageSize := helpers.CalculateOffsetLimit(page, limit)
	sqlStr, args, err := squirrel.Select("id", "title", "content", "created_by", "created_at").
		From("announcements").
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(offset).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error building list SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error executing list query: %w", err)
	}
	defer rows.Close()

	announcements := make([]*models.Announcement, 0, pageSize)
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, dto.PaginationInfo{}, fmt.Errorf("error scanning announcement: %w", err)
		}
		announcements = append(announcements, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("database iteration error: %w", err)
	}

	return announcements, pagination, nil
}

// GetByID retrieves one announcement
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	sqlStr, args, err := squirrel.Select("id", "title", "content", "created_by", "created_at").
		From("announcements").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var a models.Announcement
	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(&a.ID, &a.Title, &a.Content, &a.CreatedBy, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("error scanning announcement: %w", err)
	}
	return &a, nil
}

// FiltersByAnnouncementIDs bulk-loads filters for a set of announcements
func (r *AnnouncementRepository) FiltersByAnnouncementIDs(ctx context.Context, announcementIDs []int64) (map[int64][]models.AnnouncementFilter, error) {
	filters := make(map[int64][]models.AnnouncementFilter, len(announcementIDs))
	if len(announcementIDs) == 0 {
		return filters, nil
	}

	sqlStr, args, err := squirrel.Select("id", "announcement_id", "filter_type", "filter_value").
		From("announcement_filters").
		Where(squirrel.Eq{"announcement_id": announcementIDs}).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error loading announcement filters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f models.AnnouncementFilter
		if err := rows.Scan(&f.ID, &f.AnnouncementID, &f.FilterType, &f.FilterValue); err != nil {
			return nil, fmt.Errorf("error scanning announcement filter: %w", err)
		}
		filters[f.AnnouncementID] = append(filters[f.AnnouncementID], f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return filters, nil
}

// RecipientCounts bulk-counts snapshot sizes for a set of announcements
func (r *AnnouncementRepository) RecipientCounts(ctx context.Context, announcementIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(announcementIDs))
	if len(announcementIDs) == 0 {
		return counts, nil
	}

	sqlStr, args, err := squirrel.Select("announcement_id", "count(*)").
		From("announcement_recipients").
		Where(squirrel.Eq{"announcement_id": announcementIDs}).
		GroupBy("announcement_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error loading recipient counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var announcementID int64
		var count int
		if err := rows.Scan(&announcementID, &count); err != nil {
			return nil, fmt.Errorf("error scanning recipient count: %w", err)
		}
		counts[announcementID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return counts, nil
}

// ListForScholar retrieves the announcements whose snapshot includes a
// scholar, newest first.
func (r *AnnouncementRepository) ListForScholar(ctx context.Context, scholarID int64) ([]*models.Announcement, error) {
	sqlStr, args, err := squirrel.Select("a.id", "a.title", "a.content", "a.created_by", "a.created_at").
		From("announcements a").
		Join("announcement_recipients ar ON ar.announcement_id = a.id").
		Where(squirrel.Eq{"ar.scholar_id": scholarID}).
		OrderBy("a.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing announcements: %w", err)
	}
	defer rows.Close()

	announcements := make([]*models.Announcement, 0)
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning announcement: %w", err)
		}
		announcements = append(announcements, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return announcements, nil
}
