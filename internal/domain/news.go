package domain

import "time"

// NewsPost é uma noticia publicada por um administrador.
type NewsPost struct {
	ID          string    `json:"id"`
	AuthorEmail string    `json:"author_email"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
