package domain

import (
	"strings"
	"time"
)

// FormType tags a submission with the pipeline that produced it.
type FormType string

const (
	FormIntake                FormType = "intake"
	FormYouthServices         FormType = "youth-services"
	FormWeekendPass           FormType = "weekend-pass"
	FormInsuranceVerification FormType = "insurance-verification"
	FormProgressReport        FormType = "progress-report"
	FormHandbookAck           FormType = "handbook-acknowledgment"
)

// SubmissionStatus tracks how far notification got for one submission.
// It reflects notification outcomes only; persistence is tracked separately.
type SubmissionStatus string

const (
	StatusReceived          SubmissionStatus = "received"
	StatusStaffNotified     SubmissionStatus = "staff-notified"
	StatusSubmitterNotified SubmissionStatus = "submitter-notified"
	StatusFailedPartial     SubmissionStatus = "failed-partial"
	StatusFailed            SubmissionStatus = "failed"
)

// Payload is a form-type-specific field map as decoded from the request body.
type Payload map[string]interface{}

// Str returns the payload value for key as a trimmed string, or "" when the
// key is absent or not a string.
func (p Payload) Str(key string) string {
	if v, ok := p[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Bool returns the payload value for key as a bool. Accepts the string
// forms "true"/"false" since some form clients serialize checkboxes that way.
func (p Payload) Bool(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// Has reports whether the payload carries a non-empty value for key.
func (p Payload) Has(key string) bool {
	switch v := p[key].(type) {
	case string:
		return strings.TrimSpace(v) != ""
	case bool:
		return v
	case nil:
		return false
	}
	return true
}

// IntakeSubmission is one stored form submission.
// PK: submission_id. The form_type-submitted_at GSI serves the admin export.
type IntakeSubmission struct {
	SubmissionID string           `json:"submission_id" dynamodbav:"submission_id"`
	FormType     FormType         `json:"form_type" dynamodbav:"form_type"`
	Payload      Payload          `json:"payload" dynamodbav:"payload"`
	Status       SubmissionStatus `json:"status" dynamodbav:"status"`
	SubmittedAt  time.Time        `json:"submitted_at" dynamodbav:"submitted_at"`
}
