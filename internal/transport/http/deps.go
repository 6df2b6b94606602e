package http

import (
	"context"
	"time"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
)

// SubmissionRepository is the minimal interface the router requires from the
// submission store.
type SubmissionRepository interface {
	Put(ctx context.Context, sub *domain.IntakeSubmission) error
	UpdateStatus(ctx context.Context, submissionID string, status domain.SubmissionStatus) error
	List(ctx context.Context) ([]domain.IntakeSubmission, error)
}

// PassRepository is the minimal interface the router requires from the
// weekend pass store.
type PassRepository interface {
	Put(ctx context.Context, pass *domain.WeekendPassRequest) error
	Get(ctx context.Context, passID string) (*domain.WeekendPassRequest, error)
	List(ctx context.Context) ([]domain.WeekendPassRequest, error)
	Decide(ctx context.Context, passID string, status domain.PassStatus, decidedBy string, decidedAt time.Time) error
}

// VerificationRepository is the minimal interface the router requires from
// the OTP code store.
type VerificationRepository interface {
	Put(ctx context.Context, v *domain.VerificationCode) error
	Get(ctx context.Context, identity string) (*domain.VerificationCode, error)
	Delete(ctx context.Context, identity string) error
}

// HandbookRepository is the minimal interface the router requires from the
// handbook acknowledgment store.
type HandbookRepository interface {
	Put(ctx context.Context, ack *domain.HandbookAcknowledgment) error
	List(ctx context.Context) ([]domain.HandbookAcknowledgment, error)
}
