package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/notify"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/otp"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCodeStore struct {
	codes map[string]*domain.VerificationCode
}

func (f *fakeCodeStore) Put(_ context.Context, v *domain.VerificationCode) error {
	f.codes[v.Identity] = v
	return nil
}

func (f *fakeCodeStore) Get(_ context.Context, identity string) (*domain.VerificationCode, error) {
	v, ok := f.codes[identity]
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

func (f *fakeCodeStore) Delete(_ context.Context, identity string) error {
	delete(f.codes, identity)
	return nil
}

type noopNotifier struct{}

func (noopNotifier) Dispatch(context.Context, notify.Notification) (notify.DispatchResult, error) {
	return notify.DispatchResult{}, nil
}

func newOTPHandler() *OTPHandler {
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), 5, time.Hour)
	svc := otp.NewService(&fakeCodeStore{codes: map[string]*domain.VerificationCode{}}, limiter, noopNotifier{}, 10*time.Minute)
	return NewOTPHandler(svc)
}

func otpPost(h http.HandlerFunc, body map[string]string, ip string) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/v1/otp/request", bytes.NewReader(b))
	req.Header.Set("X-Forwarded-For", ip)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestOTPRequest_Success(t *testing.T) {
	h := newOTPHandler()
	rec := otpPost(h.Request, map[string]string{"phone": "5551234567"}, "1.2.3.4")

	require.Equal(t, http.StatusOK, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "verification code sent", env.Message)
}

func TestOTPRequest_RateLimited(t *testing.T) {
	h := newOTPHandler()
	for i := 0; i < 5; i++ {
		rec := otpPost(h.Request, map[string]string{"phone": "5551234567"}, "1.2.3.4")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := otpPost(h.Request, map[string]string{"phone": "5551234567"}, "1.2.3.4")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "Too many verification attempts")
	assert.Contains(t, env.Message, "60 minutes")
}

func TestOTPRequest_MissingContact(t *testing.T) {
	h := newOTPHandler()
	rec := otpPost(h.Request, map[string]string{}, "1.2.3.4")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOTPRequest_InvalidBody(t *testing.T) {
	h := newOTPHandler()
	req := httptest.NewRequest(http.MethodPost, "/v1/otp/request", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	h.Request(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOTPVerify_WrongCode(t *testing.T) {
	h := newOTPHandler()
	rec := otpPost(h.Request, map[string]string{"phone": "5551234567"}, "1.2.3.4")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = otpPost(h.Verify, map[string]string{"phone": "5551234567", "code": "000000"}, "1.2.3.4")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOTPVerify_MalformedCodeRejectedBeforeService(t *testing.T) {
	h := newOTPHandler()
	rec := otpPost(h.Verify, map[string]string{"phone": "5551234567", "code": "12ab"}, "1.2.3.4")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
