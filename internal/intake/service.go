// Package intake runs the per-form-type submission pipeline: validate the
// payload, persist it, notify staff, confirm to the submitter, and hand the
// HTTP layer one normalized result.
package intake

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/forms"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/notify"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/pkg/contact"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/pkg/id"
)

// SubmissionStore persists submissions. Status updates after the initial put
// are best-effort; the record of intent is the priority.
type SubmissionStore interface {
	Put(ctx context.Context, sub *domain.IntakeSubmission) error
	UpdateStatus(ctx context.Context, submissionID string, status domain.SubmissionStatus) error
}

// PassStore persists weekend pass requests.
type PassStore interface {
	Put(ctx context.Context, pass *domain.WeekendPassRequest) error
}

// HandbookStore persists handbook acknowledgments.
type HandbookStore interface {
	Put(ctx context.Context, ack *domain.HandbookAcknowledgment) error
}

// Notifier is the dispatch fan-out the pipeline calls twice per submission.
type Notifier interface {
	Dispatch(ctx context.Context, n notify.Notification) (notify.DispatchResult, error)
}

// PipelineResult is the normalized outcome handed to the HTTP layer.
type PipelineResult struct {
	Success    bool                     `json:"success"`
	Message    string                   `json:"message,omitempty"`
	PassID     string                   `json:"passId,omitempty"`
	MockResult *domain.CoverageEstimate `json:"mockResult,omitempty"`
}

// StaffDirectory maps a form type to its internal distribution lists.
type StaffDirectory struct {
	Emails map[string][]string
	Phones map[string][]string
}

type Service struct {
	submissions SubmissionStore
	passes      PassStore
	handbook    HandbookStore
	notifier    Notifier
	staff       StaffDirectory

	now func() time.Time
}

func NewService(submissions SubmissionStore, passes PassStore, handbook HandbookStore, notifier Notifier, staff StaffDirectory) *Service {
	return &Service{
		submissions: submissions,
		passes:      passes,
		handbook:    handbook,
		notifier:    notifier,
		staff:       staff,
		now:         time.Now,
	}
}

// Process validates payload against formType's schema, persists it, then
// runs the two dispatches. Delivery failures inside dispatch never flip
// Success: the pipeline's contract is "staff was asked to be notified", not
// "notification provably arrived". Validation, persistence, and missing
// configuration do fail the submission.
func (s *Service) Process(ctx context.Context, formType domain.FormType, payload domain.Payload) (*PipelineResult, error) {
	schema, ok := forms.ByType(formType)
	if !ok {
		return nil, fmt.Errorf("unknown form type %q: %w", formType, domain.ErrBadRequest)
	}
	if missing := schema.MissingFields(payload); len(missing) > 0 {
		return nil, &domain.ValidationError{Missing: missing}
	}

	staffEmails := s.staff.Emails[string(formType)]
	staffPhones := s.staff.Phones[string(formType)]
	if len(staffEmails) == 0 && len(staffPhones) == 0 {
		return nil, fmt.Errorf("no staff destination configured for %s: %w", formType, domain.ErrConfig)
	}

	sub := &domain.IntakeSubmission{
		SubmissionID: id.New(),
		FormType:     formType,
		Payload:      payload,
		Status:       domain.StatusReceived,
		SubmittedAt:  s.now().UTC(),
	}

	result := &PipelineResult{Success: true, Message: confirmationMessage(formType)}

	switch formType {
	case domain.FormWeekendPass:
		pass := passFromPayload(payload, sub.SubmittedAt)
		if err := s.passes.Put(ctx, pass); err != nil {
			return nil, fmt.Errorf("store weekend pass: %w", err)
		}
		result.PassID = pass.PassID
	case domain.FormHandbookAck:
		if err := s.handbook.Put(ctx, ackFromPayload(payload, sub.SubmittedAt)); err != nil {
			return nil, fmt.Errorf("store handbook acknowledgment: %w", err)
		}
	case domain.FormInsuranceVerification:
		estimate := EstimateCoverage(payload.Str("insuranceProvider"))
		result.MockResult = &estimate
	}

	if err := s.submissions.Put(ctx, sub); err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}

	// Staff notification always goes first; the submitter confirmation may
	// reference that staff has been alerted.
	staffRes, err := s.notifier.Dispatch(ctx, s.staffNotification(formType, sub, staffEmails, staffPhones))
	if err != nil {
		return nil, err
	}
	status := domain.StatusStaffNotified
	if staffRes.EmailFailed() || len(staffRes.SMSFailedRecipients) > 0 {
		status = domain.StatusFailedPartial
	}

	if n, ok := s.submitterConfirmation(formType, payload, result); ok {
		confRes, err := s.notifier.Dispatch(ctx, n)
		if err != nil {
			// A submitter-side configuration problem must not undo the staff
			// notification that already went out.
			slog.Warn("submitter confirmation not dispatched", "form_type", formType, "err", err)
		} else if !confRes.EmailFailed() && len(confRes.SMSFailedRecipients) == 0 && status == domain.StatusStaffNotified {
			status = domain.StatusSubmitterNotified
		}
	}

	if err := s.submissions.UpdateStatus(ctx, sub.SubmissionID, status); err != nil {
		slog.Warn("submission status update failed", "submission_id", sub.SubmissionID, "err", err)
	}

	return result, nil
}

func (s *Service) staffNotification(formType domain.FormType, sub *domain.IntakeSubmission, emails, phones []string) notify.Notification {
	var n notify.Notification
	if len(emails) > 0 {
		n.Email = &notify.EmailMessage{
			To:      emails,
			Subject: fmt.Sprintf("New %s submission", formType),
			Body:    staffBody(sub),
		}
	}
	if len(phones) > 0 {
		n.SMS = &notify.SMSMessage{
			To:   phones,
			Body: fmt.Sprintf("New %s submission received (%s). Check email for details.", formType, sub.SubmissionID),
		}
	}
	return n
}

func (s *Service) submitterConfirmation(formType domain.FormType, payload domain.Payload, result *PipelineResult) (notify.Notification, bool) {
	var n notify.Notification
	body := result.Message
	if email := payload.Str("email"); contact.ValidEmail(email) {
		n.Email = &notify.EmailMessage{
			To:      []string{email},
			Subject: "We received your submission",
			Body:    body,
		}
	}
	if phone := payload.Str("phone"); contact.ValidUSPhone(phone) {
		n.SMS = &notify.SMSMessage{
			To:   []string{contact.NormalizePhone(phone)},
			Body: body,
		}
	}
	// No contact info means the confirmation is simply skipped, not an error.
	return n, n.Email != nil || n.SMS != nil
}

func staffBody(sub *domain.IntakeSubmission) string {
	body := fmt.Sprintf("Form: %s\nSubmission: %s\nReceived: %s\n\n",
		sub.FormType, sub.SubmissionID, sub.SubmittedAt.Format(time.RFC1123))
	for key, value := range sub.Payload {
		body += fmt.Sprintf("%s: %v\n", key, value)
	}
	return body
}

func confirmationMessage(formType domain.FormType) string {
	switch formType {
	case domain.FormWeekendPass:
		return "Your weekend pass request has been submitted and is pending staff review."
	case domain.FormYouthServices:
		return "Thank you for your referral. Our youth services team has been notified and will reach out shortly."
	case domain.FormInsuranceVerification:
		return "Thank you. Your insurance information has been received; a coverage estimate is included below."
	case domain.FormProgressReport:
		return "Progress report received."
	case domain.FormHandbookAck:
		return "Handbook acknowledgment recorded."
	default:
		return "Thank you for reaching out. Our admissions team has been notified and will contact you soon."
	}
}

func passFromPayload(p domain.Payload, submittedAt time.Time) *domain.WeekendPassRequest {
	agreements := make([]string, 0, len(forms.RequiredAgreements))
	for _, a := range forms.RequiredAgreements {
		if p.Bool(a) {
			agreements = append(agreements, a)
		}
	}
	return &domain.WeekendPassRequest{
		PassID:           id.New(),
		ResidentName:     p.Str("residentName"),
		RoomNumber:       p.Str("roomNumber"),
		Phone:            p.Str("phone"),
		DepartureDate:    p.Str("departureDate"),
		DepartureTime:    p.Str("departureTime"),
		ReturnDate:       p.Str("returnDate"),
		ReturnTime:       p.Str("returnTime"),
		Destination:      p.Str("destination"),
		Transportation:   p.Str("transportation"),
		EmergencyContact: p.Str("emergencyContact"),
		EmergencyPhone:   p.Str("emergencyPhone"),
		Agreements:       agreements,
		Signature:        p.Str("signature"),
		Status:           domain.PassPending,
		SubmittedAt:      submittedAt,
	}
}

func ackFromPayload(p domain.Payload, signedAt time.Time) *domain.HandbookAcknowledgment {
	var sections []string
	if raw, ok := p["sections"].([]interface{}); ok {
		for _, s := range raw {
			if str, ok := s.(string); ok {
				sections = append(sections, str)
			}
		}
	}
	return &domain.HandbookAcknowledgment{
		AckID:        id.New(),
		ResidentName: p.Str("residentName"),
		RoomNumber:   p.Str("roomNumber"),
		Sections:     sections,
		Signature:    p.Str("signature"),
		SignedAt:     signedAt,
	}
}
