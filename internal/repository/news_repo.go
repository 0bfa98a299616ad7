package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dudussm91/NuksEdition/internal/domain"
)

// NewsRepository persiste as noticias do feed.
type NewsRepository interface {
	Create(ctx context.Context, post domain.NewsPost) error
	List(ctx context.Context) ([]domain.NewsPost, error)
	Delete(ctx context.Context, id string) error
	DeleteByAuthor(ctx context.Context, email string) error
}

// PgNewsRepository implementa NewsRepository usando pgxpool.
type PgNewsRepository struct {
	pool *pgxpool.Pool
}

func NewPgNewsRepository(pool *pgxpool.Pool) *PgNewsRepository {
	return &PgNewsRepository{pool: pool}
}

func (r *PgNewsRepository) Create(ctx context.Context, post domain.NewsPost) error {
	const query = `
		INSERT INTO news_posts (id, author_email, title, description, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.AuthorEmail,
		post.Title,
		post.Description,
		post.ImageURL,
		post.CreatedAt,
	)
	return err
}

func (r *PgNewsRepository) List(ctx context.Context) ([]domain.NewsPost, error) {
	const query = `
		SELECT id, author_email, title, description, image_url, created_at
		FROM news_posts
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.NewsPost
	for rows.Next() {
		var p domain.NewsPost
		if err := rows.Scan(&p.ID, &p.AuthorEmail, &p.Title, &p.Description, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PgNewsRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM news_posts WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgNewsRepository) DeleteByAuthor(ctx context.Context, email string) error {
	const query = `DELETE FROM news_posts WHERE author_email = $1`
	_, err := r.pool.Exec(ctx, query, email)
	return err
}
