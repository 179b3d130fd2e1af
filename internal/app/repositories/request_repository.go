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
	"github.com/scholarbase/scholarbase/internal/db"
	"github.com/scholarbase/scholarbase/internal/pkg/apperrors"
	"github.com/scholarbase/scholarbase/internal/pkg/helpers"
)

// requestStatusRank orders the list so actionable requests surface first.
// Unknown statuses sink to the bottom.
const requestStatusRank = "CASE r.status " +
	"WHEN 'pending' THEN 0 " +
	"WHEN 'reviewed' THEN 1 " +
	"WHEN 'commented' THEN 2 " +
	"WHEN 'approved' THEN 3 " +
	"WHEN 'rejected' THEN 4 " +
	"ELSE 5 END"

// RequestDetails is a request row joined through its scholar to the
// owning user.
type RequestDetails struct {
	models.Request
	ScholarName  string `db:"scholar_name"`
	ScholarEmail string `db:"scholar_email"`
}

// RequestRepository handles database operations for requests, their
// attachments and their audit log.
type RequestRepository struct {
	db *pgxpool.Pool
}

// NewRequestRepository creates a new RequestRepository
func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{db: db}
}

func selectRequestDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"r.id", "r.scholar_id", "u.name", "u.email",
		"r.type", "r.description", "r.priority", "r.status",
		"r.submitted_date", "r.reviewed_by", "r.review_comment", "r.review_date",
		"r.created_at", "r.updated_at",
	).From("requests r").
		Join("scholars s ON r.scholar_id = s.id").
		Join("users u ON s.user_id = u.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanRequestDetails(row pgx.Row) (*RequestDetails, error) {
	var r RequestDetails
	err := row.Scan(
		&r.ID, &r.ScholarID, &r.ScholarName, &r.ScholarEmail,
		&r.Type, &r.Description, &r.Priority, &r.Status,
		&r.SubmittedDate, &r.ReviewedBy, &r.ReviewComment, &r.ReviewDate,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("error scanning request: %w", err)
	}
	return &r, nil
}

func applyRequestFilters(builder squirrel.SelectBuilder, params dto.RequestListParams) squirrel.SelectBuilder {
	if params.ScholarID != nil {
		builder = builder.Where(squirrel.Eq{"r.scholar_id": *params.ScholarID})
	}
	if params.Status != nil {
		builder = builder.Where(squirrel.Eq{"r.status": *params.Status})
	}
	if params.Type != nil {
		builder = builder.Where(squirrel.Eq{"r.type": *params.Type})
	}
	if params.Priority != nil {
		builder = builder.Where(squirrel.Eq{"r.priority": *params.Priority})
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"r.description": pattern},
			squirrel.ILike{"u.name": pattern},
		})
	}
	return builder
}

// buildRequestListQuery builds the page and count queries for List
func buildRequestListQuery(params dto.RequestListParams) (squirrel.SelectBuilder, squirrel.SelectBuilder) {
	rowsBuilder := applyRequestFilters(selectRequestDetailsQuery(), params).
		OrderBy(requestStatusRank, "r.submitted_date DESC")

	countBuilder := applyRequestFilters(
		squirrel.Select("count(*)").
			From("requests r").
			Join("scholars s ON r.scholar_id = s.id").
			Join("users u ON s.user_id = u.id").
			PlaceholderFormat(squirrel.Dollar),
		params,
	)

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Limit)
	rowsBuilder = rowsBuilder.Limit(uint64(limit)).Offset(offset)

	return rowsBuilder, countBuilder
}

// List retrieves a page of requests ordered by status rank then recency
func (r *RequestRepository) List(ctx context.Context, params dto.RequestListParams) ([]*RequestDetails, dto.PaginationInfo, error) {
	rowsBuilder, countBuilder := buildRequestListQuery(params)

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
		return []*RequestDetails{}, pagination, nil
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

	requests := make([]*RequestDetails, 0, params.Limit)
	for rows.Next() {
		req, err := scanRequestDetails(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("database iteration error: %w", err)
	}

	return requests, pagination, nil
}

// GetByID retrieves one request with its scholar identity
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*RequestDetails, error) {
	sqlStr, args, err := selectRequestDetailsQuery().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return scanRequestDetails(r.db.QueryRow(ctx, sqlStr, args...))
}

// Create inserts a new request and returns it with generated fields
func (r *RequestRepository) Create(ctx context.Context, request *models.Request) (*models.Request, error) {
	sqlStr, args, err := squirrel.Insert("requests").
		Columns("scholar_id", "type", "description", "priority", "status", "submitted_date").
		Values(request.ScholarID, request.Type, request.Description, request.Priority, request.Status, request.SubmittedDate).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	return request, nil
}

// Review applies a status change and appends the matching audit entry in
// one transaction.
func (r *RequestRepository) Review(ctx context.Context, requestID int64, previousStatus, newStatus models.RequestStatus, reviewerID int64, comment *string) error {
	now := time.Now()

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sqlStr, args, err := squirrel.Update("requests").
			Set("status", newStatus).
			Set("reviewed_by", reviewerID).
			Set("review_comment", comment).
			Set("review_date", now).
			Set("updated_at", now).
			Where(squirrel.Eq{"id": requestID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building review SQL: %w", err)
		}

		tag, err := tx.Exec(ctx, sqlStr, args...)
		if err != nil {
			return fmt.Errorf("error updating request: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrRequestNotFound
		}

		sqlStr, args, err = squirrel.Insert("request_audit_log").
			Columns("request_id", "changed_by", "previous_status", "new_status", "comment").
			Values(requestID, reviewerID, previousStatus, newStatus, comment).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building audit SQL: %w", err)
		}
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("error writing audit entry: %w", err)
		}

		return nil
	})
}

// AddAttachment records object-storage metadata against a request
func (r *RequestRepository) AddAttachment(ctx context.Context, attachment *models.Attachment) (*models.Attachment, error) {
	sqlStr, args, err := squirrel.Insert("request_attachments").
		Columns("request_id", "file_name", "file_key", "file_url", "file_size", "mime_type").
		Values(attachment.RequestID, attachment.FileName, attachment.FileKey, attachment.FileURL, attachment.FileSize, attachment.MimeType).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(&attachment.ID, &attachment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating attachment: %w", err)
	}
	return attachment, nil
}

// AttachmentsByRequestIDs bulk-loads attachments for a set of requests
func (r *RequestRepository) AttachmentsByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]models.Attachment, error) {
	attachments := make(map[int64][]models.Attachment, len(requestIDs))
	if len(requestIDs) == 0 {
		return attachments, nil
	}

	sqlStr, args, err := squirrel.Select("id", "request_id", "file_name", "file_key", "file_url", "file_size", "mime_type", "created_at").
		From("request_attachments").
		Where(squirrel.Eq{"request_id": requestIDs}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error loading attachments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Attachment
		err := rows.Scan(&a.ID, &a.RequestID, &a.FileName, &a.FileKey, &a.FileURL, &a.FileSize, &a.MimeType, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning attachment: %w", err)
		}
		attachments[a.RequestID] = append(attachments[a.RequestID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return attachments, nil
}

// AuditByRequestIDs bulk-loads audit history for a set of requests,
// oldest change first.
func (r *RequestRepository) AuditByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]models.AuditLogEntry, error) {
	entries := make(map[int64][]models.AuditLogEntry, len(requestIDs))
	if len(requestIDs) == 0 {
		return entries, nil
	}

	sqlStr, args, err := squirrel.Select("id", "request_id", "changed_by", "previous_status", "new_status", "comment", "created_at").
		From("request_audit_log").
		Where(squirrel.Eq{"request_id": requestIDs}).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error loading audit log: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.AuditLogEntry
		err := rows.Scan(&e.ID, &e.RequestID, &e.ChangedBy, &e.PreviousStatus, &e.NewStatus, &e.Comment, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning audit entry: %w", err)
		}
		entries[e.RequestID] = append(entries[e.RequestID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return entries, nil
}

// Stats counts the request population by status
func (r *RequestRepository) Stats(ctx context.Context) (*dto.RequestStats, error) {
	sqlStr, args, err := squirrel.Select(
		"count(*)",
		"count(*) FILTER (WHERE status = 'pending')",
		"count(*) FILTER (WHERE status = 'approved')",
		"count(*) FILTER (WHERE status = 'rejected')",
	).From("requests").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var stats dto.RequestStats
	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(&stats.Total, &stats.Pending, &stats.Approved, &stats.Rejected)
	if err != nil {
		return nil, fmt.Errorf("error loading request stats: %w", err)
	}
	return &stats, nil
}
