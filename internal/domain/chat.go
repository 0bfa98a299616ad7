package domain

import "time"

// ChatMessage é uma mensagem trocada entre duas contas.
type ChatMessage struct {
	ID        string    `json:"id"`
	FromEmail string    `json:"from_email"`
	ToEmail   string    `json:"to_email"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
