package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/domain"
)

const adminColumns = `id, username, password_hash, created_at, updated_at`

// AdminRepo implements domain.AdminRepository backed by PostgreSQL.
type AdminRepo struct {
	pool *pgxpool.Pool
}

func NewAdminRepo(pool *pgxpool.Pool) *AdminRepo {
	return &AdminRepo{pool: pool}
}

func scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var admin domain.Admin
	err := row.Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	admin, err := scanAdmin(r.pool.QueryRow(ctx, `
		SELECT `+adminColumns+`
		FROM admins
		WHERE username = $1`, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by username: %w", err)
	}
	return admin, nil
}

func (r *AdminRepo) Upsert(ctx context.Context, username, passwordHash string) (*domain.Admin, error) {
	admin, err := scanAdmin(r.pool.QueryRow(ctx, `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			updated_at = NOW()
		RETURNING `+adminColumns, username, passwordHash))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert admin: %w", err)
	}
	return admin, nil
}
