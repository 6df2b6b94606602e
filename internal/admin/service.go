// Package admin serves the staff-facing read and action endpoints:
// submission export, weekend-pass decisions, and handbook sign-off review.
package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
)

// SubmissionReader lists stored submissions, newest first.
type SubmissionReader interface {
	List(ctx context.Context) ([]domain.IntakeSubmission, error)
}

// PassAdmin reads and transitions weekend pass requests.
type PassAdmin interface {
	List(ctx context.Context) ([]domain.WeekendPassRequest, error)
	Get(ctx context.Context, passID string) (*domain.WeekendPassRequest, error)
	Decide(ctx context.Context, passID string, status domain.PassStatus, decidedBy string, decidedAt time.Time) error
}

// HandbookReader lists handbook acknowledgment records.
type HandbookReader interface {
	List(ctx context.Context) ([]domain.HandbookAcknowledgment, error)
}

// ExportArchiver keeps a copy of every CSV export for record retention.
type ExportArchiver interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

type Service struct {
	submissions SubmissionReader
	passes      PassAdmin
	handbook    HandbookReader
	archive     ExportArchiver

	now func() time.Time
}

func NewService(submissions SubmissionReader, passes PassAdmin, handbook HandbookReader, archive ExportArchiver) *Service {
	return &Service{
		submissions: submissions,
		passes:      passes,
		handbook:    handbook,
		archive:     archive,
		now:         time.Now,
	}
}

func (s *Service) ListSubmissions(ctx context.Context) ([]domain.IntakeSubmission, error) {
	return s.submissions.List(ctx)
}

// ExportCSV renders all submissions as CSV and archives a copy. An archive
// failure does not block the download; the bytes are served either way.
func (s *Service) ExportCSV(ctx context.Context) ([]byte, string, error) {
	subs, err := s.submissions.List(ctx)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"submission_id", "form_type", "status", "submitted_at", "payload"})
	for _, sub := range subs {
		payload, err := json.Marshal(sub.Payload)
		if err != nil {
			return nil, "", fmt.Errorf("marshal payload for %s: %w", sub.SubmissionID, err)
		}
		_ = w.Write([]string{
			sub.SubmissionID,
			string(sub.FormType),
			string(sub.Status),
			sub.SubmittedAt.Format(time.RFC3339),
			string(payload),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("submissions-%s.csv", s.now().UTC().Format("20060102-150405"))
	if s.archive != nil {
		key := "exports/" + filename
		if _, err := s.archive.Upload(ctx, key, bytes.NewReader(buf.Bytes()), "text/csv"); err != nil {
			slog.Warn("export archive upload failed", "key", key, "err", err)
		}
	}
	return buf.Bytes(), filename, nil
}

func (s *Service) ListPasses(ctx context.Context) ([]domain.WeekendPassRequest, error) {
	return s.passes.List(ctx)
}

// DecidePass transitions a pending pass to approved or denied, stamping the
// approver identity and time. Non-pending passes cannot be re-decided.
func (s *Service) DecidePass(ctx context.Context, passID, action, decidedBy string) (*domain.WeekendPassRequest, error) {
	var status domain.PassStatus
	switch action {
	case "approve":
		status = domain.PassApproved
	case "deny":
		status = domain.PassDenied
	default:
		return nil, fmt.Errorf("unknown action %q: %w", action, domain.ErrBadRequest)
	}

	pass, err := s.passes.Get(ctx, passID)
	if err != nil {
		return nil, err
	}
	if pass.Status != domain.PassPending {
		return nil, fmt.Errorf("pass already %s: %w", pass.Status, domain.ErrConflict)
	}

	decidedAt := s.now().UTC()
	if err := s.passes.Decide(ctx, passID, status, decidedBy, decidedAt); err != nil {
		return nil, err
	}
	pass.Status = status
	pass.DecidedBy = decidedBy
	pass.DecidedAt = &decidedAt
	return pass, nil
}

func (s *Service) ListHandbookAcks(ctx context.Context) ([]domain.HandbookAcknowledgment, error) {
	return s.handbook.List(ctx)
}
