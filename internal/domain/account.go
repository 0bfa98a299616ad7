package domain

import "time"

// Account representa uma conta confirmada, identificada pelo email.
type Account struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	Username            string     `json:"username"`
	PasswordHash        string     `json:"-"`
	DeleteCodeHash      string     `json:"-"`
	DeleteCodeExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
}
