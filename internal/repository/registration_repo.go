package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dudussm91/NuksEdition/internal/domain"
)

// RegistrationRepository persiste cadastros pendentes, no maximo um por email.
type RegistrationRepository interface {
	Upsert(ctx context.Context, reg domain.PendingRegistration) error
	GetByEmail(ctx context.Context, email string) (domain.PendingRegistration, error)
	Delete(ctx context.Context, email string) error
}

// PgRegistrationRepository implementa RegistrationRepository usando pgxpool.
type PgRegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewPgRegistrationRepository(pool *pgxpool.Pool) *PgRegistrationRepository {
	return &PgRegistrationRepository{pool: pool}
}

func (r *PgRegistrationRepository) Upsert(ctx context.Context, reg domain.PendingRegistration) error {
	const query = `
		INSERT INTO pending_registrations (email, username, password_hash, code_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE
		SET username = EXCLUDED.username,
		    password_hash = EXCLUDED.password_hash,
		    code_hash = EXCLUDED.code_hash,
		    expires_at = EXCLUDED.expires_at,
		    created_at = EXCLUDED.created_at
	`
	_, err := r.pool.Exec(ctx, query,
		reg.Email,
		reg.Username,
		reg.PasswordHash,
		reg.CodeHash,
		reg.ExpiresAt,
		reg.CreatedAt,
	)
	return err
}

func (r *PgRegistrationRepository) GetByEmail(ctx context.Context, email string) (domain.PendingRegistration, error) {
	const query = `
		SELECT email, username, password_hash, code_hash, expires_at, created_at
		FROM pending_registrations
		WHERE email = $1
	`
	var reg domain.PendingRegistration
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&reg.Email,
		&reg.Username,
		&reg.PasswordHash,
		&reg.CodeHash,
		&reg.ExpiresAt,
		&reg.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PendingRegistration{}, err
	}
	return reg, err
}

func (r *PgRegistrationRepository) Delete(ctx context.Context, email string) error {
	const query = `DELETE FROM pending_registrations WHERE email = $1`
	_, err := r.pool.Exec(ctx, query, email)
	return err
}
