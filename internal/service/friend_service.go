package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Dudussm91/NuksEdition/internal/domain"
	"github.com/Dudussm91/NuksEdition/internal/repository"
)

var (
	ErrUnknownUser     = errors.New("unknown user")
	ErrAlreadyFriends  = errors.New("already friends")
	ErrDuplicateInvite = errors.New("invite already sent")
)

// FriendService coordena convites e o grafo de amizades.
//
// Maquina de estados por par de contas:
//
//	NoRelation -> (SendInvite) -> InvitePending -> (AcceptInvite) -> Friends
//	InvitePending -> (RejectInvite) -> NoRelation
//	Friends -> (RemoveFriend) -> NoRelation
type FriendService struct {
	logger   *zap.Logger
	accounts repository.AccountRepository
	friends  repository.FriendRepository
}

func NewFriendService(logger *zap.Logger, accounts repository.AccountRepository, friends repository.FriendRepository) *FriendService {
	return &FriendService{
		logger:   logger,
		accounts: accounts,
		friends:  friends,
	}
}

// SendInvite cria o convite pendente fromEmail -> toEmail.
func (s *FriendService) SendInvite(ctx context.Context, fromEmail, toEmail string) error {
	fromEmail = normalizeEmail(fromEmail)
	toEmail = normalizeEmail(toEmail)
	if fromEmail == "" || toEmail == "" || fromEmail == toEmail {
		return ErrInvalidInput
	}

	if _, err := s.accounts.GetByEmail(ctx, toEmail); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUnknownUser
		}
		return err
	}

	friends, err := s.friends.AreFriends(ctx, fromEmail, toEmail)
	if err != nil {
		return err
	}
	if friends {
		return ErrAlreadyFriends
	}

	created, err := s.friends.CreateInvite(ctx, fromEmail, toEmail)
	if err != nil {
		return err
	}
	if !created {
		return ErrDuplicateInvite
	}
	return nil
}

// ListPendingInvites lista os convites recebidos, resolvidos para o nome de
// quem convidou. Se a conta de quem convidou sumiu, o proprio email serve
// de nome.
func (s *FriendService) ListPendingInvites(ctx context.Context, forEmail string) ([]domain.FriendEntry, error) {
	forEmail = normalizeEmail(forEmail)
	if forEmail == "" {
		return nil, ErrInvalidInput
	}

	invites, err := s.friends.ListInvitesTo(ctx, forEmail)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.FriendEntry, 0, len(invites))
	for _, inv := range invites {
		entries = append(entries, domain.FriendEntry{
			Email:    inv.FromEmail,
			Username: s.resolveName(ctx, inv.FromEmail),
		})
	}
	return entries, nil
}

// AcceptInvite consome o convite, se existir, e cria a amizade simetrica.
func (s *FriendService) AcceptInvite(ctx context.Context, accepterEmail, inviterEmail string) error {
	accepterEmail = normalizeEmail(accepterEmail)
	inviterEmail = normalizeEmail(inviterEmail)
	if accepterEmail == "" || inviterEmail == "" || accepterEmail == inviterEmail {
		return ErrInvalidInput
	}

	if err := s.friends.DeleteInvite(ctx, inviterEmail, accepterEmail); err != nil {
		return err
	}
	return s.friends.CreateFriendship(ctx, accepterEmail, inviterEmail)
}

// RejectInvite descarta o convite. Convite ausente nao é erro.
func (s *FriendService) RejectInvite(ctx context.Context, accepterEmail, inviterEmail string) error {
	accepterEmail = normalizeEmail(accepterEmail)
	inviterEmail = normalizeEmail(inviterEmail)
	if accepterEmail == "" || inviterEmail == "" {
		return ErrInvalidInput
	}
	return s.friends.DeleteInvite(ctx, inviterEmail, accepterEmail)
}

// ListFriends lista os amigos resolvidos para nome de exibicao.
func (s *FriendService) ListFriends(ctx context.Context, forEmail string) ([]domain.FriendEntry, error) {
	forEmail = normalizeEmail(forEmail)
	if forEmail == "" {
		return nil, ErrInvalidInput
	}

	friends, err := s.friends.ListFriends(ctx, forEmail)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.FriendEntry, 0, len(friends))
	for _, friendEmail := range friends {
		entries = append(entries, domain.FriendEntry{
			Email:    friendEmail,
			Username: s.resolveName(ctx, friendEmail),
		})
	}
	return entries, nil
}

// RemoveFriend desfaz a amizade nas duas direcoes. Remover quem nao é
// amigo é um no-op.
func (s *FriendService) RemoveFriend(ctx context.Context, aEmail, bEmail string) error {
	aEmail = normalizeEmail(aEmail)
	bEmail = normalizeEmail(bEmail)
	if aEmail == "" || bEmail == "" {
		return ErrInvalidInput
	}
	return s.friends.DeleteFriendship(ctx, aEmail, bEmail)
}

func (s *FriendService) resolveName(ctx context.Context, emailAddr string) string {
	account, err := s.accounts.GetByEmail(ctx, emailAddr)
	if err != nil || account.Username == "" {
		return emailAddr
	}
	return account.Username
}
