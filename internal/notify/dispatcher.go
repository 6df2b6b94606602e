// Package notify fans a notification out over email and SMS, treating each
// channel's failure as independent and non-fatal: staff must still hear
// through whichever channel works.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
)

// Mailer sends emails.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// SMSSender sends SMS messages.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// EmailMessage is the email half of a notification.
type EmailMessage struct {
	To      []string
	Subject string
	Body    string
}

// SMSMessage is the SMS half of a notification.
type SMSMessage struct {
	To   []string
	Body string
}

// Notification carries at least one channel's message.
type Notification struct {
	Email *EmailMessage
	SMS   *SMSMessage
}

// DispatchResult records per-channel outcomes. Delivery failures live here,
// never in Dispatch's error return.
type DispatchResult struct {
	EmailSent           bool
	EmailErr            string
	SMSFailedRecipients []string
}

// EmailFailed reports whether an email channel was present and failed.
func (r DispatchResult) EmailFailed() bool { return r.EmailErr != "" }

// Dispatcher attempts delivery over the configured channels with a bounded
// timeout per outbound call.
type Dispatcher struct {
	mailer  Mailer
	sms     SMSSender
	timeout time.Duration
}

func NewDispatcher(mailer Mailer, sms SMSSender, timeout time.Duration) *Dispatcher {
	return &Dispatcher{mailer: mailer, sms: sms, timeout: timeout}
}

// Dispatch attempts each present channel in turn. It returns an error only
// for configuration problems (no channel present, channel present but no
// sender wired) or malformed recipients; delivery failures are recorded in
// the result and logged.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) (DispatchResult, error) {
	var res DispatchResult

	if n.Email == nil && n.SMS == nil {
		return res, fmt.Errorf("notification has no channels: %w", domain.ErrConfig)
	}
	if err := checkRecipients(n); err != nil {
		return res, err
	}

	if n.Email != nil {
		if d.mailer == nil {
			return res, fmt.Errorf("email channel requested but no mailer configured: %w", domain.ErrConfig)
		}
		if err := d.sendEmail(ctx, n.Email); err != nil {
			res.EmailErr = err.Error()
			slog.Warn("email dispatch failed", "recipients", len(n.Email.To), "err", err)
		} else {
			res.EmailSent = true
		}
	}

	if n.SMS != nil {
		if d.sms == nil {
			return res, fmt.Errorf("sms channel requested but no sender configured: %w", domain.ErrConfig)
		}
		for _, to := range n.SMS.To {
			if err := d.sendSMS(ctx, to, n.SMS.Body); err != nil {
				res.SMSFailedRecipients = append(res.SMSFailedRecipients, to)
				slog.Warn("sms dispatch failed", "to", to, "err", err)
			}
		}
	}

	return res, nil
}

func (d *Dispatcher) sendEmail(ctx context.Context, m *EmailMessage) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	// net/smtp has no context support, so the send runs in a goroutine and
	// the timeout is treated identically to a delivery failure.
	done := make(chan error, 1)
	go func() {
		var firstErr error
		for _, to := range m.To {
			if err := d.mailer.SendEmail(to, m.Subject, m.Body); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		done <- firstErr
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) sendSMS(ctx context.Context, to, body string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.sms.SendSMS(ctx, to, body)
}

func checkRecipients(n Notification) error {
	if n.Email != nil {
		if len(n.Email.To) == 0 {
			return fmt.Errorf("email channel has no recipients: %w", domain.ErrBadRequest)
		}
		for _, to := range n.Email.To {
			if to == "" {
				return fmt.Errorf("empty email recipient: %w", domain.ErrBadRequest)
			}
		}
	}
	if n.SMS != nil {
		if len(n.SMS.To) == 0 {
			return fmt.Errorf("sms channel has no recipients: %w", domain.ErrBadRequest)
		}
		for _, to := range n.SMS.To {
			if to == "" {
				return fmt.Errorf("empty sms recipient: %w", domain.ErrBadRequest)
			}
		}
	}
	return nil
}
