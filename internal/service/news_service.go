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

var ErrNotAdmin = errors.New("admin only")

// NewsService coordena o feed de noticias. Publicar e apagar sao acoes
// restritas aos administradores configurados; a checagem sempre usa a
// identidade verificada do chamador, nunca um campo do payload.
type NewsService struct {
	logger *zap.Logger
	news   repository.NewsRepository
	admins map[string]bool
}

func NewNewsService(logger *zap.Logger, news repository.NewsRepository, adminEmails []string) *NewsService {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		e = normalizeEmail(e)
		if e != "" {
			admins[e] = true
		}
	}
	return &NewsService{
		logger: logger,
		news:   news,
		admins: admins,
	}
}

// IsAdmin responde se o email verificado pode administrar noticias.
func (s *NewsService) IsAdmin(emailAddr string) bool {
	return s.admins[normalizeEmail(emailAddr)]
}

// Publish cria uma noticia em nome do administrador autenticado.
func (s *NewsService) Publish(ctx context.Context, authorEmail, title, description, imageURL string) (domain.NewsPost, error) {
	authorEmail = normalizeEmail(authorEmail)
	if !s.IsAdmin(authorEmail) {
		return domain.NewsPost{}, ErrNotAdmin
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.NewsPost{}, ErrInvalidInput
	}

	post := domain.NewsPost{
		ID:          uuid.NewString(),
		AuthorEmail: authorEmail,
		Title:       title,
		Description: strings.TrimSpace(description),
		ImageURL:    strings.TrimSpace(imageURL),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.news.Create(ctx, post); err != nil {
		return domain.NewsPost{}, err
	}
	return post, nil
}

// List devolve as noticias, mais recentes primeiro.
func (s *NewsService) List(ctx context.Context) ([]domain.NewsPost, error) {
	return s.news.List(ctx)
}

// Delete apaga uma noticia pelo id.
func (s *NewsService) Delete(ctx context.Context, callerEmail, id string) error {
	if !s.IsAdmin(callerEmail) {
		return ErrNotAdmin
	}
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	if err := s.news.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
