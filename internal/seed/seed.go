package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/scholarbase/scholarbase/internal/config"
	"github.com/scholarbase/scholarbase/internal/pkg/auth"
)

// CreateDefaultData seeds the default admin account when no staff user
// exists yet. Credentials come from ADMIN_EMAIL/ADMIN_PASSWORD, with
// development fallbacks.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	adminEmail := config.GetEnv("ADMIN_EMAIL", "admin@scholarbase.app")
	adminPassword := config.GetEnv("ADMIN_PASSWORD", "changeme123")

	var existingID int64
	err := dbPool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, adminEmail).Scan(&existingID)
	if err == nil {
		lgr.Debug().Str("email", adminEmail).Msg("Default admin already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	tx, err := dbPool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var userID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO users (email, password, name, user_type) VALUES ($1, $2, $3, 'staff') RETURNING id`,
		adminEmail, hashedPassword, "Administrator").Scan(&userID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO staff (user_id, role, is_active) VALUES ($1, 'admin', TRUE)`, userID)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	lgr.Info().Str("email", adminEmail).Msg("Default admin account created")
	return nil
}
