package domain

import "time"

// FriendInvite é um pedido de amizade pendente, direcionado.
type FriendInvite struct {
	FromEmail string    `json:"from_email"`
	ToEmail   string    `json:"to_email"`
	CreatedAt time.Time `json:"created_at"`
}

// Friendship é uma aresta do grafo de amizades. A relacao é simetrica:
// cada amizade existe como duas linhas espelhadas (a->b e b->a).
type Friendship struct {
	UserEmail   string    `json:"user_email"`
	FriendEmail string    `json:"friend_email"`
	CreatedAt   time.Time `json:"created_at"`
}

// FriendEntry é um item de listagem resolvido para exibicao.
type FriendEntry struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}
