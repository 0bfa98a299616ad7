package email

import (
	"context"
	"errors"
	"time"
)

// Sender define a interface de envio dos codigos por email.
type Sender interface {
	SendConfirmationCode(ctx context.Context, toEmail string, code string, expiresAt time.Time) error
	SendDeletionCode(ctx context.Context, toEmail string, code string, expiresAt time.Time) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendConfirmationCode(_ context.Context, _ string, _ string, _ time.Time) error {
	return s.fail()
}

func (s *disabledSender) SendDeletionCode(_ context.Context, _ string, _ string, _ time.Time) error {
	return s.fail()
}

func (s *disabledSender) fail() error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
