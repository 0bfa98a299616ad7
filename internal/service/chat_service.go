package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Dudussm91/NuksEdition/internal/domain"
	"github.com/Dudussm91/NuksEdition/internal/repository"
)

// ChatService coordena o chat entre duas contas.
type ChatService struct {
	logger   *zap.Logger
	accounts repository.AccountRepository
	chat     repository.ChatRepository
}

func NewChatService(logger *zap.Logger, accounts repository.AccountRepository, chat repository.ChatRepository) *ChatService {
	return &ChatService{
		logger:   logger,
		accounts: accounts,
		chat:     chat,
	}
}

// Send grava uma mensagem do remetente autenticado para outra conta.
func (s *ChatService) Send(ctx context.Context, fromEmail, toEmail, content string) (domain.ChatMessage, error) {
	fromEmail = normalizeEmail(fromEmail)
	toEmail = normalizeEmail(toEmail)
	content = strings.TrimSpace(content)
	if fromEmail == "" || toEmail == "" || content == "" || fromEmail == toEmail {
		return domain.ChatMessage{}, ErrInvalidInput
	}

	if _, err := s.accounts.GetByEmail(ctx, toEmail); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ChatMessage{}, ErrUnknownUser
		}
		return domain.ChatMessage{}, err
	}

	msg := domain.ChatMessage{
		ID:        uuid.NewString(),
		FromEmail: fromEmail,
		ToEmail:   toEmail,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.chat.Create(ctx, msg); err != nil {
		return domain.ChatMessage{}, err
	}
	return msg, nil
}

// Conversation devolve o historico entre as duas contas em ordem
// cronologica. O handler garante que o chamador é um dos participantes.
func (s *ChatService) Conversation(ctx context.Context, aEmail, bEmail string) ([]domain.ChatMessage, error) {
	aEmail = normalizeEmail(aEmail)
	bEmail = normalizeEmail(bEmail)
	if aEmail == "" || bEmail == "" {
		return nil, ErrInvalidInput
	}
	return s.chat.ListConversation(ctx, aEmail, bEmail)
}
