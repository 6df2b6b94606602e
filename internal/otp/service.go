// Package otp issues and verifies the one-time passcodes used to confirm
// phone or email ownership before a form submission proceeds.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/notify"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/pkg/contact"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/ratelimit"
	"golang.org/x/crypto/bcrypt"
)

// CodeStore persists issued codes until verified or expired.
type CodeStore interface {
	Put(ctx context.Context, v *domain.VerificationCode) error
	Get(ctx context.Context, identity string) (*domain.VerificationCode, error)
	Delete(ctx context.Context, identity string) error
}

// Notifier delivers the code over SMS and/or email.
type Notifier interface {
	Dispatch(ctx context.Context, n notify.Notification) (notify.DispatchResult, error)
}

// RateLimitedError carries the retry window for the 429 response body.
type RateLimitedError struct {
	MinutesRemaining int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("Too many verification attempts. Please try again in %d minutes.", e.MinutesRemaining)
}

func (e *RateLimitedError) Unwrap() error { return domain.ErrRateLimited }

type Service struct {
	codes    CodeStore
	limiter  *ratelimit.Limiter
	notifier Notifier
	codeTTL  time.Duration

	now func() time.Time
}

func NewService(codes CodeStore, limiter *ratelimit.Limiter, notifier Notifier, codeTTL time.Duration) *Service {
	return &Service{
		codes:    codes,
		limiter:  limiter,
		notifier: notifier,
		codeTTL:  codeTTL,
		now:      time.Now,
	}
}

// RequestCode validates the supplied identity, applies the sliding-window
// limiter, then generates, stores, and dispatches a 6-digit code. Delivery
// failure does not surface to the caller; the code is stored either way and
// staff can fall back to manual verification.
func (s *Service) RequestCode(ctx context.Context, phone, email, clientIP string) error {
	identity, n, err := s.buildNotification(phone, email)
	if err != nil {
		return err
	}

	if out := s.limiter.CheckAndRecord(identity, clientIP); !out.Allowed {
		return &RateLimitedError{MinutesRemaining: out.MinutesRemaining}
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.codes.Put(ctx, &domain.VerificationCode{
		Identity:  identity,
		CodeHash:  string(hash),
		ExpiresAt: s.now().Add(s.codeTTL).Unix(),
	}); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}

	fillCode(&n, code, s.codeTTL)
	if _, err := s.notifier.Dispatch(ctx, n); err != nil {
		slog.Warn("verification code not dispatched", "err", err)
	}
	return nil
}

// VerifyCode checks a submitted code against the stored hash. Codes are
// single-use: a successful match deletes the record.
func (s *Service) VerifyCode(ctx context.Context, phone, email, code string) error {
	identity, err := resolveIdentity(phone, email)
	if err != nil {
		return err
	}
	v, err := s.codes.Get(ctx, identity)
	if err != nil {
		return fmt.Errorf("no verification in progress: %w", domain.ErrNotFound)
	}
	if v.ExpiresAt < s.now().Unix() {
		return fmt.Errorf("verification code expired: %w", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(v.CodeHash), []byte(code)) != nil {
		return fmt.Errorf("invalid verification code: %w", domain.ErrUnauthorized)
	}
	if err := s.codes.Delete(ctx, identity); err != nil {
		slog.Warn("failed to delete verification code", "identity", identity, "err", err)
	}
	return nil
}

// buildNotification validates the contact fields and prepares the channels
// the code will go out on. Phone takes precedence as the rate-limit identity
// when both are supplied.
func (s *Service) buildNotification(phone, email string) (string, notify.Notification, error) {
	var n notify.Notification
	identity, err := resolveIdentity(phone, email)
	if err != nil {
		return "", n, err
	}
	if phone != "" {
		n.SMS = &notify.SMSMessage{To: []string{contact.NormalizePhone(phone)}}
	}
	if email != "" {
		n.Email = &notify.EmailMessage{To: []string{email}, Subject: "Your verification code"}
	}
	return identity, n, nil
}

func resolveIdentity(phone, email string) (string, error) {
	switch {
	case phone != "":
		if !contact.ValidUSPhone(phone) {
			return "", fmt.Errorf("invalid phone number: %w", domain.ErrBadRequest)
		}
		return contact.NormalizePhone(phone), nil
	case email != "":
		if !contact.ValidEmail(email) {
			return "", fmt.Errorf("invalid email address: %w", domain.ErrBadRequest)
		}
		return email, nil
	default:
		return "", fmt.Errorf("phone or email required: %w", domain.ErrBadRequest)
	}
}

func fillCode(n *notify.Notification, code string, ttl time.Duration) {
	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(ttl.Minutes()))
	if n.SMS != nil {
		n.SMS.Body = body
	}
	if n.Email != nil {
		n.Email.Body = body
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
