package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/admin"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
	jwtinfra "github.com/KaneTraylor/empowertreatment-sub000/internal/infrastructure/jwt"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmissionReader struct {
	subs []domain.IntakeSubmission
}

func (f *fakeSubmissionReader) List(context.Context) ([]domain.IntakeSubmission, error) {
	return f.subs, nil
}

type fakePassAdmin struct {
	passes map[string]*domain.WeekendPassRequest
}

func (f *fakePassAdmin) List(context.Context) ([]domain.WeekendPassRequest, error) {
	out := make([]domain.WeekendPassRequest, 0, len(f.passes))
	for _, p := range f.passes {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePassAdmin) Get(_ context.Context, passID string) (*domain.WeekendPassRequest, error) {
	p, ok := f.passes[passID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePassAdmin) Decide(_ context.Context, passID string, status domain.PassStatus, decidedBy string, decidedAt time.Time) error {
	p := f.passes[passID]
	p.Status = status
	p.DecidedBy = decidedBy
	p.DecidedAt = &decidedAt
	return nil
}

type fakeHandbookReader struct {
	acks []domain.HandbookAcknowledgment
}

func (f *fakeHandbookReader) List(context.Context) ([]domain.HandbookAcknowledgment, error) {
	return f.acks, nil
}

func newAdminHandler(subs *fakeSubmissionReader, passes *fakePassAdmin, acks *fakeHandbookReader) *AdminHandler {
	if subs == nil {
		subs = &fakeSubmissionReader{}
	}
	if passes == nil {
		passes = &fakePassAdmin{passes: map[string]*domain.WeekendPassRequest{}}
	}
	if acks == nil {
		acks = &fakeHandbookReader{}
	}
	return NewAdminHandler(admin.NewService(subs, passes, acks, nil))
}

func withClaims(req *http.Request, user string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.ClaimsKey, &jwtinfra.Claims{User: user})
	return req.WithContext(ctx)
}

func TestAdminSubmissions_JSON(t *testing.T) {
	h := newAdminHandler(&fakeSubmissionReader{subs: []domain.IntakeSubmission{
		{SubmissionID: "01ABC", FormType: domain.FormIntake, Status: domain.StatusStaffNotified},
	}}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/submissions", nil)
	rec := httptest.NewRecorder()
	h.Submissions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env SubmissionsEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "01ABC", env.Data[0].SubmissionID)
}

func TestAdminSubmissions_EmptyListIsArray(t *testing.T) {
	h := newAdminHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/submissions", nil)
	rec := httptest.NewRecorder()
	h.Submissions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestAdminSubmissions_CSV(t *testing.T) {
	h := newAdminHandler(&fakeSubmissionReader{subs: []domain.IntakeSubmission{
		{SubmissionID: "01ABC", FormType: domain.FormIntake, Payload: domain.Payload{"firstName": "Alex"}},
	}}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/submissions?format=csv", nil)
	rec := httptest.NewRecorder()
	h.Submissions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "submission_id,form_type,status,submitted_at,payload")
	assert.Contains(t, rec.Body.String(), "01ABC")
}

func TestAdminDecidePass_Approve(t *testing.T) {
	passes := &fakePassAdmin{passes: map[string]*domain.WeekendPassRequest{
		"pass-1": {PassID: "pass-1", ResidentName: "Jane Doe", Status: domain.PassPending},
	}}
	h := newAdminHandler(nil, passes, nil)

	body, _ := json.Marshal(map[string]string{"passId": "pass-1", "action": "approve"})
	req := withClaims(httptest.NewRequest(http.MethodPost, "/v1/admin/weekend-passes/decide", bytes.NewReader(body)), "staff@example.com")
	rec := httptest.NewRecorder()
	h.DecidePass(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env PassDecisionEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	require.NotNil(t, env.Pass)
	assert.Equal(t, domain.PassApproved, env.Pass.Status)
	assert.Equal(t, "staff@example.com", env.Pass.DecidedBy)
}

func TestAdminDecidePass_AlreadyDecidedConflicts(t *testing.T) {
	passes := &fakePassAdmin{passes: map[string]*domain.WeekendPassRequest{
		"pass-1": {PassID: "pass-1", Status: domain.PassDenied},
	}}
	h := newAdminHandler(nil, passes, nil)

	body, _ := json.Marshal(map[string]string{"passId": "pass-1", "action": "approve"})
	req := withClaims(httptest.NewRequest(http.MethodPost, "/v1/admin/weekend-passes/decide", bytes.NewReader(body)), "staff@example.com")
	rec := httptest.NewRecorder()
	h.DecidePass(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdminDecidePass_InvalidAction(t *testing.T) {
	h := newAdminHandler(nil, nil, nil)

	body, _ := json.Marshal(map[string]string{"passId": "pass-1", "action": "escalate"})
	req := withClaims(httptest.NewRequest(http.MethodPost, "/v1/admin/weekend-passes/decide", bytes.NewReader(body)), "staff@example.com")
	rec := httptest.NewRecorder()
	h.DecidePass(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminDecidePass_NoClaims(t *testing.T) {
	h := newAdminHandler(nil, nil, nil)

	body, _ := json.Marshal(map[string]string{"passId": "pass-1", "action": "approve"})
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/weekend-passes/decide", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.DecidePass(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminHandbookAcks(t *testing.T) {
	h := newAdminHandler(nil, nil, &fakeHandbookReader{acks: []domain.HandbookAcknowledgment{
		{AckID: "ack-1", ResidentName: "Jane Doe", Signature: "Jane Doe"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/handbook-acknowledgments", nil)
	rec := httptest.NewRecorder()
	h.HandbookAcks(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env AcksEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "ack-1", env.Data[0].AckID)
}
