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
	"github.com/scholarbase/scholarbase/internal/pkg/dberrors"
	"github.com/scholarbase/scholarbase/internal/pkg/helpers"
)

// InvitationRepository handles database operations for invitations
type InvitationRepository struct {
	db *pgxpool.Pool
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *pgxpool.Pool) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func selectInvitationQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "email", "user_type", "token", "status", "invited_by",
		"expires_at", "resent_count", "scholar_data", "accepted_by",
		"created_at", "updated_at",
	).From("invitations").
		PlaceholderFormat(squirrel.Dollar)
}

func scanInvitation(row pgx.Row) (*models.Invitation, error) {
	var inv models.Invitation
	err := row.Scan(
		&inv.ID, &inv.Email, &inv.UserType, &inv.Token, &inv.Status, &inv.InvitedBy,
		&inv.ExpiresAt, &inv.ResentCount, &inv.ScholarData, &inv.AcceptedBy,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("error scanning invitation: %w", err)
	}
	return &inv, nil
}

// Create inserts a new invitation and returns it with generated fields
func (r *InvitationRepository) Create(ctx context.Context, inv *models.Invitation) (*models.Invitation, error) {
	sqlStr, args, err := squirrel.Insert("invitations").
		Columns("email", "user_type", "token", "status", "invited_by", "expires_at", "scholar_data").
		Values(inv.Email, inv.UserType, inv.Token, inv.Status, inv.InvitedBy, inv.ExpiresAt, inv.ScholarData).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		// A concurrent create can slip past the service-level pending check;
		// the partial unique index is the authority
		if dberrors.IsDuplicateConstraintError(err, "idx_invitations_pending_email") {
			return nil, apperrors.ErrInvitationPending
		}
		return nil, fmt.Errorf("error creating invitation: %w", err)
	}
	return inv, nil
}

// GetByID retrieves an invitation by ID
func (r *InvitationRepository) GetByID(ctx context.Context, id int64) (*models.Invitation, error) {
	sqlStr, args, err := selectInvitationQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return scanInvitation(r.db.QueryRow(ctx, sqlStr, args...))
}

// GetByToken retrieves an invitation by its signup token
func (r *InvitationRepository) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	sqlStr, args, err := selectInvitationQuery().Where(squirrel.Eq{"token": token}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return scanInvitation(r.db.QueryRow(ctx, sqlStr, args...))
}

// GetPendingByEmail retrieves the pending invitation for an email, if any
func (r *InvitationRepository) GetPendingByEmail(ctx context.Context, email string) (*models.Invitation, error) {
	sqlStr, args, err := selectInvitationQuery().
		Where(squirrel.Eq{"email": email, "status": models.InvitationStatusPending}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return scanInvitation(r.db.QueryRow(ctx, sqlStr, args...))
}

// MarkExpired flips a stale pending invitation to expired. Expiry is
// enforced lazily on read, not by a background job.
func (r *InvitationRepository) MarkExpired(ctx context.Context, id int64) error {
	return r.UpdateStatus(ctx, id, models.InvitationStatusExpired)
}

// UpdateStatus sets an invitation status
func (r *InvitationRepository) UpdateStatus(ctx context.Context, id int64, status models.InvitationStatus) error {
	sqlStr, args, err := squirrel.Update("invitations").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("error updating invitation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvitationNotFound
	}
	return nil
}

// IncrementResend bumps the resend counter. The token and expiry are left
// untouched on resend.
func (r *InvitationRepository) IncrementResend(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Update("invitations").
		Set("resent_count", squirrel.Expr("resent_count + 1")).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("error incrementing resend count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvitationNotFound
	}
	return nil
}

// Accept creates the invited account and marks the invitation accepted in
// one transaction. For scholar invitations the pre-filled profile is
// materialized as a scholars row.
func (r *InvitationRepository) Accept(ctx context.Context, inv *models.Invitation, user *models.User, prefill *dto.ScholarPrefill) (int64, error) {
	var userID int64

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		id, err := CreateUserTx(ctx, tx, user)
		if err != nil {
			return err
		}
		userID = id

		if inv.UserType == models.UserTypeScholar {
			scholar := &models.Scholar{
				UserID:    userID,
				Status:    models.ScholarStatusActive,
				StartDate: time.Now(),
			}
			if prefill != nil {
				scholar.Program = prefill.Program
				scholar.Year = prefill.Year
				scholar.University = prefill.University
				scholar.Location = prefill.Location
			}
			if _, err := CreateScholarTx(ctx, tx, scholar); err != nil {
				return err
			}
		}

		sqlStr, args, err := squirrel.Update("invitations").
			Set("status", models.InvitationStatusAccepted).
			Set("accepted_by", userID).
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{"id": inv.ID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("error accepting invitation: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// List retrieves a page of invitations, newest first, optionally filtered
// by status.
func (r *InvitationRepository) List(ctx context.Context, status *models.InvitationStatus, page, limit int) ([]*models.Invitation, dto.PaginationInfo, error) {
	countBuilder := squirrel.Select("count(*)").
		From("invitations").
		PlaceholderFormat(squirrel.Dollar)
	rowsBuilder := selectInvitationQuery()

	if status != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"status": *status})
		rowsBuilder = rowsBuilder.Where(squirrel.Eq{"status": *status})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error building count SQL: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error executing count query: %w", err)
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, limit)

	if totalItems == 0 {
		return []*models.Invitation{}, pagination, nil
	}

	offset, pageSize := helpers.CalculateOffsetLimit(page, limit)
	sqlStr, args, err := rowsBuilder.
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error building list SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error executing list query: %w", err)
	}
	defer rows.Close()

	invitations := make([]*models.Invitation, 0, pageSize)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("database iteration error: %w", err)
	}

	return invitations, pagination, nil
}
