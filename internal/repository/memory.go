package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Dudussm91/NuksEdition/internal/domain"
)

// MemoryStore guarda todos os dados em mapas protegidos por mutex.
// Substitui os antigos mapas globais: cada instancia tem ciclo de vida
// proprio, o que permite isolar testes com um store novo. As visoes
// Accounts(), Registrations(), Friends(), News() e Chat() implementam os
// mesmos contratos que as versoes Postgres.
type MemoryStore struct {
	mu sync.Mutex

	accounts      map[string]domain.Account
	registrations map[string]domain.PendingRegistration
	invites       map[inviteKey]domain.FriendInvite
	friendships   map[string]map[string]time.Time
	news          []domain.NewsPost
	messages      []domain.ChatMessage
}

type inviteKey struct {
	from string
	to   string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:      make(map[string]domain.Account),
		registrations: make(map[string]domain.PendingRegistration),
		invites:       make(map[inviteKey]domain.FriendInvite),
		friendships:   make(map[string]map[string]time.Time),
	}
}

func (s *MemoryStore) Accounts() AccountRepository           { return &memoryAccounts{s: s} }
func (s *MemoryStore) Registrations() RegistrationRepository { return &memoryRegistrations{s: s} }
func (s *MemoryStore) Friends() FriendRepository             { return &memoryFriends{s: s} }
func (s *MemoryStore) News() NewsRepository                  { return &memoryNews{s: s} }
func (s *MemoryStore) Chat() ChatRepository                  { return &memoryChat{s: s} }

type memoryAccounts struct{ s *MemoryStore }

func (r *memoryAccounts) Create(_ context.Context, account domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.accounts[account.Email] = account
	return nil
}

func (r *memoryAccounts) GetByEmail(_ context.Context, email string) (domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	account, ok := r.s.accounts[email]
	if !ok {
		return domain.Account{}, pgx.ErrNoRows
	}
	return account, nil
}

func (r *memoryAccounts) UpdateDeletionCode(_ context.Context, email, codeHash string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	account, ok := r.s.accounts[email]
	if !ok {
		return pgx.ErrNoRows
	}
	account.DeleteCodeHash = codeHash
	account.DeleteCodeExpiresAt = &expiresAt
	r.s.accounts[email] = account
	return nil
}

func (r *memoryAccounts) Delete(_ context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[email]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.accounts, email)
	return nil
}

type memoryRegistrations struct{ s *MemoryStore }

func (r *memoryRegistrations) Upsert(_ context.Context, reg domain.PendingRegistration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.registrations[reg.Email] = reg
	return nil
}

func (r *memoryRegistrations) GetByEmail(_ context.Context, email string) (domain.PendingRegistration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.registrations[email]
	if !ok {
		return domain.PendingRegistration{}, pgx.ErrNoRows
	}
	return reg, nil
}

func (r *memoryRegistrations) Delete(_ context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.registrations, email)
	return nil
}

type memoryFriends struct{ s *MemoryStore }

func (r *memoryFriends) CreateInvite(_ context.Context, fromEmail, toEmail string) (bool, error) {
	// O insert acontece sob o mesmo mutex da checagem; dois envios
	// concorrentes nunca geram dois convites.
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := inviteKey{from: fromEmail, to: toEmail}
	if _, ok := r.s.invites[key]; ok {
		return false, nil
	}
	r.s.invites[key] = domain.FriendInvite{
		FromEmail: fromEmail,
		ToEmail:   toEmail,
		CreatedAt: time.Now().UTC(),
	}
	return true, nil
}

func (r *memoryFriends) DeleteInvite(_ context.Context, fromEmail, toEmail string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.invites, inviteKey{from: fromEmail, to: toEmail})
	return nil
}

func (r *memoryFriends) ListInvitesTo(_ context.Context, toEmail string) ([]domain.FriendInvite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var invites []domain.FriendInvite
	for key, inv := range r.s.invites {
		if key.to == toEmail {
			invites = append(invites, inv)
		}
	}
	sort.Slice(invites, func(i, j int) bool {
		if invites[i].CreatedAt.Equal(invites[j].CreatedAt) {
			return invites[i].FromEmail < invites[j].FromEmail
		}
		return invites[i].CreatedAt.Before(invites[j].CreatedAt)
	})
	return invites, nil
}

func (r *memoryFriends) CreateFriendship(_ context.Context, aEmail, bEmail string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now().UTC()
	r.s.addEdge(aEmail, bEmail, now)
	r.s.addEdge(bEmail, aEmail, now)
	return nil
}

func (s *MemoryStore) addEdge(from, to string, at time.Time) {
	if s.friendships[from] == nil {
		s.friendships[from] = make(map[string]time.Time)
	}
	if _, ok := s.friendships[from][to]; !ok {
		s.friendships[from][to] = at
	}
}

func (r *memoryFriends) AreFriends(_ context.Context, aEmail, bEmail string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.friendships[aEmail][bEmail]
	return ok, nil
}

func (r *memoryFriends) ListFriends(_ context.Context, email string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	edges := r.s.friendships[email]
	friends := make([]string, 0, len(edges))
	for friend := range edges {
		friends = append(friends, friend)
	}
	sort.Slice(friends, func(i, j int) bool {
		if edges[friends[i]].Equal(edges[friends[j]]) {
			return friends[i] < friends[j]
		}
		return edges[friends[i]].Before(edges[friends[j]])
	})
	return friends, nil
}

func (r *memoryFriends) DeleteFriendship(_ context.Context, aEmail, bEmail string) error {
	// Cada direcao some de forma independente; a ausencia de um dos lados
	// é tolerada.
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.friendships[aEmail], bEmail)
	delete(r.s.friendships[bEmail], aEmail)
	return nil
}

func (r *memoryFriends) DeleteAllFor(_ context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key := range r.s.invites {
		if key.from == email || key.to == email {
			delete(r.s.invites, key)
		}
	}
	for friend := range r.s.friendships[email] {
		delete(r.s.friendships[friend], email)
	}
	delete(r.s.friendships, email)
	return nil
}

type memoryNews struct{ s *MemoryStore }

func (r *memoryNews) Create(_ context.Context, post domain.NewsPost) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.news = append(r.s.news, post)
	return nil
}

func (r *memoryNews) List(_ context.Context) ([]domain.NewsPost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	posts := make([]domain.NewsPost, len(r.s.news))
	copy(posts, r.s.news)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *memoryNews) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, post := range r.s.news {
		if post.ID == id {
			r.s.news = append(r.s.news[:i], r.s.news[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memoryNews) DeleteByAuthor(_ context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.news[:0]
	for _, post := range r.s.news {
		if post.AuthorEmail != email {
			kept = append(kept, post)
		}
	}
	r.s.news = kept
	return nil
}

type memoryChat struct{ s *MemoryStore }

func (r *memoryChat) Create(_ context.Context, msg domain.ChatMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.messages = append(r.s.messages, msg)
	return nil
}

func (r *memoryChat) ListConversation(_ context.Context, aEmail, bEmail string) ([]domain.ChatMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var conv []domain.ChatMessage
	for _, msg := range r.s.messages {
		if (msg.FromEmail == aEmail && msg.ToEmail == bEmail) ||
			(msg.FromEmail == bEmail && msg.ToEmail == aEmail) {
			conv = append(conv, msg)
		}
	}
	return conv, nil
}

func (r *memoryChat) DeleteAllFor(_ context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.messages[:0]
	for _, msg := range r.s.messages {
		if msg.FromEmail != email && msg.ToEmail != email {
			kept = append(kept, msg)
		}
	}
	r.s.messages = kept
	return nil
}
