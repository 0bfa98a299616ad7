package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dudussm91/NuksEdition/internal/domain"
)

// AccountRepository define o contrato de persistencia para contas confirmadas.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) error
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	UpdateDeletionCode(ctx context.Context, email, codeHash string, expiresAt time.Time) error
	Delete(ctx context.Context, email string) error
}

// PgAccountRepository implementa AccountRepository usando pgxpool.
type PgAccountRepository struct {
	pool *pgxpool.Pool
}

func NewPgAccountRepository(pool *pgxpool.Pool) *PgAccountRepository {
	return &PgAccountRepository{pool: pool}
}

func (r *PgAccountRepository) Create(ctx context.Context, account domain.Account) error {
	const query = `
		INSERT INTO accounts (id, email, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET username = EXCLUDED.username, password_hash = EXCLUDED.password_hash
	`
	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.Email,
		account.Username,
		account.PasswordHash,
		account.CreatedAt,
	)
	return err
}

func (r *PgAccountRepository) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	const query = `
		SELECT id, email, username, password_hash, delete_code_hash, delete_code_expires_at, created_at
		FROM accounts
		WHERE email = $1
	`
	var a domain.Account
	var deleteHash *string
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&a.ID,
		&a.Email,
		&a.Username,
		&a.PasswordHash,
		&deleteHash,
		&a.DeleteCodeExpiresAt,
		&a.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Account{}, err
	}
	if deleteHash != nil {
		a.DeleteCodeHash = *deleteHash
	}
	return a, err
}

func (r *PgAccountRepository) UpdateDeletionCode(ctx context.Context, email, codeHash string, expiresAt time.Time) error {
	const query = `
		UPDATE accounts
		SET delete_code_hash = $2, delete_code_expires_at = $3
		WHERE email = $1
	`
	tag, err := r.pool.Exec(ctx, query, email, codeHash, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgAccountRepository) Delete(ctx context.Context, email string) error {
	const query = `DELETE FROM accounts WHERE email = $1`
	tag, err := r.pool.Exec(ctx, query, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
