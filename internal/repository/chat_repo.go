package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dudussm91/NuksEdition/internal/domain"
)

// ChatRepository persiste as mensagens do chat entre duas contas.
type ChatRepository interface {
	Create(ctx context.Context, msg domain.ChatMessage) error
	ListConversation(ctx context.Context, aEmail, bEmail string) ([]domain.ChatMessage, error)
	DeleteAllFor(ctx context.Context, email string) error
}

// PgChatRepository implementa ChatRepository usando pgxpool.
type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

func (r *PgChatRepository) Create(ctx context.Context, msg domain.ChatMessage) error {
	const query = `
		INSERT INTO chat_messages (id, from_email, to_email, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		msg.ID,
		msg.FromEmail,
		msg.ToEmail,
		msg.Content,
		msg.CreatedAt,
	)
	return err
}

func (r *PgChatRepository) ListConversation(ctx context.Context, aEmail, bEmail string) ([]domain.ChatMessage, error) {
	const query = `
		SELECT id, from_email, to_email, content, created_at
		FROM chat_messages
		WHERE (from_email = $1 AND to_email = $2)
		   OR (from_email = $2 AND to_email = $1)
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, aEmail, bEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.FromEmail, &msg.ToEmail, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *PgChatRepository) DeleteAllFor(ctx context.Context, email string) error {
	const query = `DELETE FROM chat_messages WHERE from_email = $1 OR to_email = $1`
	_, err := r.pool.Exec(ctx, query, email)
	return err
}
