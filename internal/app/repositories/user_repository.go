package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/pkg/apperrors"
	"github.com/scholarbase/scholarbase/internal/pkg/dberrors"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetStaffByUserID(ctx context.Context, userID int64) (*models.Staff, error)
}

// UserRepository handles database operations for users and staff profiles
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func selectUserQuery() squirrel.SelectBuilder {
	return squirrel.Select("id", "email", "password", "name", "user_type", "image_url", "created_at", "updated_at").
		From("users").
		PlaceholderFormat(squirrel.Dollar)
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.Name,
		&user.UserType, &user.ImageURL, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	sqlStr, args, err := selectUserQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return scanUser(r.db.QueryRow(ctx, sqlStr, args...))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sqlStr, args, err := selectUserQuery().Where(squirrel.Eq{"email": email}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return scanUser(r.db.QueryRow(ctx, sqlStr, args...))
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	sqlStr, args, err := squirrel.Select().
		Column(squirrel.Expr("EXISTS(SELECT 1 FROM users WHERE email = ?)", email)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// GetStaffByUserID retrieves the staff profile owned by a user
func (r *UserRepository) GetStaffByUserID(ctx context.Context, userID int64) (*models.Staff, error) {
	sqlStr, args, err := squirrel.Select("id", "user_id", "role", "is_active", "department").
		From("staff").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var staff models.Staff
	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(
		&staff.ID, &staff.UserID, &staff.Role, &staff.IsActive, &staff.Department,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStaffNotFound
		}
		return nil, fmt.Errorf("error scanning staff: %w", err)
	}
	return &staff, nil
}

// CreateUserTx inserts a user within an existing transaction and returns
// the new ID. Used by invitation acceptance.
func CreateUserTx(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error) {
	sqlStr, args, err := squirrel.Insert("users").
		Columns("email", "password", "name", "user_type", "image_url").
		Values(user.Email, user.Password, user.Name, user.UserType, user.ImageURL).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}
	return id, nil
}
