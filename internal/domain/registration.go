package domain

import "time"

// PendingRegistration guarda um cadastro aguardando o codigo de confirmacao.
// Existe no maximo um por email; um novo cadastro sobrescreve o anterior.
type PendingRegistration struct {
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CodeHash     string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}
