package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dudussm91/NuksEdition/internal/domain"
	"github.com/Dudussm91/NuksEdition/internal/email"
	"github.com/Dudussm91/NuksEdition/internal/repository"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrAlreadyRegistered     = errors.New("email already registered")
	ErrNoPendingRegistration = errors.New("no pending registration")
	ErrCodeExpired           = errors.New("code expired")
	ErrInvalidCode           = errors.New("invalid code")
	ErrNoDeletionRequest     = errors.New("deletion not requested")
	ErrNotRegistered         = errors.New("email not registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrNotFound              = errors.New("not found")
	ErrEmailDelivery         = errors.New("email delivery failed")
	ErrRateLimited           = errors.New("rate limited")
)

const (
	codeTTL           = 15 * time.Minute
	minPasswordLength = 6
)

// AccountService coordena cadastro, confirmacao, login e exclusao de contas.
type AccountService struct {
	logger        *zap.Logger
	accounts      repository.AccountRepository
	registrations repository.RegistrationRepository
	friends       repository.FriendRepository
	news          repository.NewsRepository
	chat          repository.ChatRepository
	emailSender   email.Sender
	codeLimiter   CodeRateLimiter
}

func NewAccountService(
	logger *zap.Logger,
	accounts repository.AccountRepository,
	registrations repository.RegistrationRepository,
	friends repository.FriendRepository,
	news repository.NewsRepository,
	chat repository.ChatRepository,
	emailSender email.Sender,
	codeLimiter CodeRateLimiter,
) *AccountService {
	if codeLimiter == nil {
		codeLimiter = NewCodeRateLimiter(10*time.Minute, 3)
	}
	return &AccountService{
		logger:        logger,
		accounts:      accounts,
		registrations: registrations,
		friends:       friends,
		news:          news,
		chat:          chat,
		emailSender:   emailSender,
		codeLimiter:   codeLimiter,
	}
}

// Register cria ou sobrescreve o cadastro pendente do email e envia o
// codigo de confirmacao. O pendente sobrevive a uma falha de envio, entao
// cadastrar de novo reenvia um codigo novo.
func (s *AccountService) Register(ctx context.Context, username, emailAddr, password string) (string, error) {
	emailAddr = normalizeEmail(emailAddr)
	username = strings.TrimSpace(username)

	if emailAddr == "" || username == "" || len(password) < minPasswordLength {
		return "", ErrInvalidInput
	}

	if s.codeLimiter != nil && !s.codeLimiter.Allow(emailAddr) {
		return "", ErrRateLimited
	}

	_, err := s.accounts.GetByEmail(ctx, emailAddr)
	if err == nil {
		return "", ErrAlreadyRegistered
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	code, hash, expiresAt, err := generateCode()
	if err != nil {
		return "", err
	}

	reg := domain.PendingRegistration{
		Email:        emailAddr,
		Username:     username,
		PasswordHash: string(passwordHash),
		CodeHash:     hash,
		ExpiresAt:    expiresAt,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.registrations.Upsert(ctx, reg); err != nil {
		return "", err
	}

	if s.emailSender == nil {
		return "", ErrEmailDelivery
	}
	if err := s.emailSender.SendConfirmationCode(ctx, emailAddr, code, expiresAt); err != nil {
		if s.logger != nil {
			s.logger.Warn("send confirmation code failed", zap.Error(err), zap.String("email", emailAddr))
		}
		return "", ErrEmailDelivery
	}

	return emailAddr, nil
}

// Confirm consome o cadastro pendente e cria a conta confirmada.
func (s *AccountService) Confirm(ctx context.Context, emailAddr, code string) (domain.Account, error) {
	emailAddr = normalizeEmail(emailAddr)
	code = strings.TrimSpace(code)
	if emailAddr == "" {
		return domain.Account{}, ErrInvalidInput
	}
	if !isValidCode(code) {
		return domain.Account{}, ErrInvalidCode
	}

	reg, err := s.registrations.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, ErrNoPendingRegistration
		}
		return domain.Account{}, err
	}

	if time.Now().UTC().After(reg.ExpiresAt) {
		return domain.Account{}, ErrCodeExpired
	}
	// Codigo errado deixa o pendente intacto; o codigo certo ainda vale.
	if !verifyCode(code, reg.CodeHash) {
		return domain.Account{}, ErrInvalidCode
	}

	account := domain.Account{
		ID:           uuid.NewString(),
		Email:        reg.Email,
		Username:     reg.Username,
		PasswordHash: reg.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return domain.Account{}, err
	}
	if err := s.registrations.Delete(ctx, emailAddr); err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// Login autentica uma conta confirmada.
func (s *AccountService) Login(ctx context.Context, emailAddr, password string) (domain.Account, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return domain.Account{}, ErrInvalidCredentials
	}

	account, err := s.accounts.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, ErrNotRegistered
		}
		return domain.Account{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return domain.Account{}, ErrInvalidCredentials
	}
	return account, nil
}

// RequestDeletion envia por email um codigo para excluir a conta.
func (s *AccountService) RequestDeletion(ctx context.Context, emailAddr string) error {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return ErrInvalidInput
	}

	if s.codeLimiter != nil && !s.codeLimiter.Allow(emailAddr) {
		return ErrRateLimited
	}

	if _, err := s.accounts.GetByEmail(ctx, emailAddr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	code, hash, expiresAt, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.accounts.UpdateDeletionCode(ctx, emailAddr, hash, expiresAt); err != nil {
		return err
	}

	if s.emailSender == nil {
		return ErrEmailDelivery
	}
	if err := s.emailSender.SendDeletionCode(ctx, emailAddr, code, expiresAt); err != nil {
		if s.logger != nil {
			s.logger.Warn("send deletion code failed", zap.Error(err), zap.String("email", emailAddr))
		}
		return ErrEmailDelivery
	}
	return nil
}

// ConfirmDeletion valida o codigo e remove a conta com tudo que a
// referencia: convites, amizades, mensagens e noticias publicadas.
func (s *AccountService) ConfirmDeletion(ctx context.Context, emailAddr, code string) error {
	emailAddr = normalizeEmail(emailAddr)
	code = strings.TrimSpace(code)
	if emailAddr == "" {
		return ErrInvalidInput
	}
	if !isValidCode(code) {
		return ErrInvalidCode
	}

	account, err := s.accounts.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if account.DeleteCodeHash == "" || account.DeleteCodeExpiresAt == nil {
		return ErrNoDeletionRequest
	}
	if time.Now().UTC().After(*account.DeleteCodeExpiresAt) {
		return ErrCodeExpired
	}
	if !verifyCode(code, account.DeleteCodeHash) {
		return ErrInvalidCode
	}

	if err := s.friends.DeleteAllFor(ctx, emailAddr); err != nil {
		return err
	}
	if err := s.chat.DeleteAllFor(ctx, emailAddr); err != nil {
		return err
	}
	if err := s.news.DeleteByAuthor(ctx, emailAddr); err != nil {
		return err
	}
	return s.accounts.Delete(ctx, emailAddr)
}

// generateCode sorteia um codigo de 6 digitos (100000-999999) e devolve
// tambem o hash salgado que vai para o banco.
func generateCode() (string, string, time.Time, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", "", time.Time{}, err
	}
	code := fmt.Sprintf("%06d", n.Int64()+100000)

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", "", time.Time{}, err
	}
	saltStr := base64.StdEncoding.EncodeToString(salt)
	hashBytes := sha256.Sum256([]byte(saltStr + ":" + code))
	hash := base64.StdEncoding.EncodeToString(hashBytes[:])

	expiresAt := time.Now().UTC().Add(codeTTL)
	return code, saltStr + ":" + hash, expiresAt, nil
}

func verifyCode(code, stored string) bool {
	parts := strings.Split(stored, ":")
	if len(parts) != 2 {
		return false
	}
	saltStr := parts[0]
	expectedHash := parts[1]
	hashBytes := sha256.Sum256([]byte(saltStr + ":" + code))
	hash := base64.StdEncoding.EncodeToString(hashBytes[:])
	return subtle.ConstantTimeCompare([]byte(hash), []byte(expectedHash)) == 1
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// CodeRateLimiter limita a frequencia de geracao de codigos por chave.
type CodeRateLimiter interface {
	Allow(key string) bool
}

type codeRateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
}

// NewCodeRateLimiter cria um rate limiter em memoria.
func NewCodeRateLimiter(window time.Duration, max int) CodeRateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &codeRateLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
	}
}

func (l *codeRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now().UTC()
	cutoff := now.Add(-l.window)
	entries := l.hits[key]
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	kept = append(kept, now)
	l.hits[key] = kept
	return true
}
