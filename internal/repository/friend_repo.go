package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dudussm91/NuksEdition/internal/domain"
)

// FriendRepository persiste convites pendentes e o grafo de amizades.
type FriendRepository interface {
	// CreateInvite insere o convite de forma atomica. Devolve false quando
	// ja existia um convite para o mesmo par ordenado.
	CreateInvite(ctx context.Context, fromEmail, toEmail string) (bool, error)
	DeleteInvite(ctx context.Context, fromEmail, toEmail string) error
	ListInvitesTo(ctx context.Context, toEmail string) ([]domain.FriendInvite, error)

	// CreateFriendship grava as duas linhas espelhadas na mesma transacao.
	CreateFriendship(ctx context.Context, aEmail, bEmail string) error
	AreFriends(ctx context.Context, aEmail, bEmail string) (bool, error)
	ListFriends(ctx context.Context, email string) ([]string, error)
	DeleteFriendship(ctx context.Context, aEmail, bEmail string) error

	// DeleteAllFor remove convites e amizades nas duas direcoes.
	DeleteAllFor(ctx context.Context, email string) error
}

// PgFriendRepository implementa FriendRepository usando pgxpool.
type PgFriendRepository struct {
	pool *pgxpool.Pool
}

func NewPgFriendRepository(pool *pgxpool.Pool) *PgFriendRepository {
	return &PgFriendRepository{pool: pool}
}

func (r *PgFriendRepository) CreateInvite(ctx context.Context, fromEmail, toEmail string) (bool, error) {
	// A chave primaria (from_email, to_email) faz o check-and-insert
	// ser um passo unico; dois envios concorrentes nunca geram dois convites.
	const query = `
		INSERT INTO friend_invites (from_email, to_email, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (from_email, to_email) DO NOTHING
	`
	tag, err := r.pool.Exec(ctx, query, fromEmail, toEmail, time.Now().UTC())
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgFriendRepository) DeleteInvite(ctx context.Context, fromEmail, toEmail string) error {
	const query = `DELETE FROM friend_invites WHERE from_email = $1 AND to_email = $2`
	_, err := r.pool.Exec(ctx, query, fromEmail, toEmail)
	return err
}

func (r *PgFriendRepository) ListInvitesTo(ctx context.Context, toEmail string) ([]domain.FriendInvite, error) {
	const query = `
		SELECT from_email, to_email, created_at
		FROM friend_invites
		WHERE to_email = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, toEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []domain.FriendInvite
	for rows.Next() {
		var inv domain.FriendInvite
		if err := rows.Scan(&inv.FromEmail, &inv.ToEmail, &inv.CreatedAt); err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

func (r *PgFriendRepository) CreateFriendship(ctx context.Context, aEmail, bEmail string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `
		INSERT INTO friendships (user_email, friend_email, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_email, friend_email) DO NOTHING
	`
	now := time.Now().UTC()
	if _, err := tx.Exec(ctx, query, aEmail, bEmail, now); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, bEmail, aEmail, now); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PgFriendRepository) AreFriends(ctx context.Context, aEmail, bEmail string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM friendships WHERE user_email = $1 AND friend_email = $2
		)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, aEmail, bEmail).Scan(&exists)
	return exists, err
}

func (r *PgFriendRepository) ListFriends(ctx context.Context, email string) ([]string, error) {
	const query = `
		SELECT friend_email
		FROM friendships
		WHERE user_email = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friends []string
	for rows.Next() {
		var friend string
		if err := rows.Scan(&friend); err != nil {
			return nil, err
		}
		friends = append(friends, friend)
	}
	return friends, rows.Err()
}

func (r *PgFriendRepository) DeleteFriendship(ctx context.Context, aEmail, bEmail string) error {
	// Cada direcao é apagada de forma independente; a ausencia de um dos
	// lados é tolerada.
	const query = `
		DELETE FROM friendships
		WHERE (user_email = $1 AND friend_email = $2)
		   OR (user_email = $2 AND friend_email = $1)
	`
	_, err := r.pool.Exec(ctx, query, aEmail, bEmail)
	return err
}

func (r *PgFriendRepository) DeleteAllFor(ctx context.Context, email string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM friend_invites WHERE from_email = $1 OR to_email = $1`, email); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM friendships WHERE user_email = $1 OR friend_email = $1`, email); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
