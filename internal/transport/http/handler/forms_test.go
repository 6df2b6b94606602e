package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/intake"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPipeline struct{ mock.Mock }

func (m *mockPipeline) Process(ctx context.Context, formType domain.FormType, payload domain.Payload) (*intake.PipelineResult, error) {
	args := m.Called(ctx, formType, payload)
	if r, _ := args.Get(0).(*intake.PipelineResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func newFormsRouter(pipeline *mockPipeline) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/v1/forms/{formType}", NewFormsHandler(pipeline).Submit)
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSubmit_Success(t *testing.T) {
	pipeline := &mockPipeline{}
	pipeline.On("Process", mock.Anything, domain.FormIntake, mock.Anything).
		Return(&intake.PipelineResult{Success: true, Message: "Thank you for reaching out."}, nil)

	rec := postJSON(t, newFormsRouter(pipeline), "/v1/forms/intake", map[string]string{
		"firstName": "Alex", "lastName": "Morgan", "phone": "5552345678", "reason": "treatment",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var result intake.PipelineResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "Thank you for reaching out.", result.Message)
}

func TestSubmit_InsuranceResultPassesThrough(t *testing.T) {
	pipeline := &mockPipeline{}
	pipeline.On("Process", mock.Anything, domain.FormInsuranceVerification, mock.Anything).
		Return(&intake.PipelineResult{
			Success: true,
			MockResult: &domain.CoverageEstimate{
				IsAccepted: true,
				Provider:   "medicaid",
				CoverageDetails: domain.CoverageDetails{
					EstimatedCoverage: "100%",
					Deductible:        "$0",
				},
			},
		}, nil)

	rec := postJSON(t, newFormsRouter(pipeline), "/v1/forms/insurance-verification", map[string]string{
		"firstName": "Alex", "lastName": "Morgan", "insuranceProvider": "medicaid",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"estimatedCoverage":"100%"`)
	assert.Contains(t, rec.Body.String(), `"isAccepted":true`)
}

func TestSubmit_ValidationError(t *testing.T) {
	pipeline := &mockPipeline{}
	pipeline.On("Process", mock.Anything, domain.FormIntake, mock.Anything).
		Return(nil, &domain.ValidationError{Missing: []string{"phone", "reason"}})

	rec := postJSON(t, newFormsRouter(pipeline), "/v1/forms/intake", map[string]string{"firstName": "Alex"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "phone")
	assert.Contains(t, env.Message, "reason")
}

func TestSubmit_InvalidBody(t *testing.T) {
	pipeline := &mockPipeline{}
	r := newFormsRouter(pipeline)

	req := httptest.NewRequest(http.MethodPost, "/v1/forms/intake", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	pipeline.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_ConfigErrorIsOpaque(t *testing.T) {
	pipeline := &mockPipeline{}
	pipeline.On("Process", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("no staff destination configured for intake: %w", domain.ErrConfig))

	rec := postJSON(t, newFormsRouter(pipeline), "/v1/forms/intake", map[string]string{"firstName": "Alex"})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "something went wrong on our end")
	assert.NotContains(t, rec.Body.String(), "staff")
}
